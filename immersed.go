/*
Copyright © 2026 the euler3d authors.
This file is part of euler3d.

euler3d is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

euler3d is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with euler3d.  If not, see <http://www.gnu.org/licenses/>.
*/

package euler3d

import (
	"log"
	"math"
	"runtime"
	"sync"
)

// Triangle is one facet of a triangulated solid surface. The normal points
// from the solid into the fluid.
type Triangle struct {
	Nr    [3]float64 // normal vector
	AbsNr float64    // normal magnitude
	P1    [3]float64
	P2    [3]float64
	P3    [3]float64

	// IMin and IMax bound the cells the facet can tag, clamped to the
	// grid.
	IMin, IMax [3]int

	// Outside is set when a vertex lies beyond the domain; such facets
	// are excluded from ghost tagging.
	Outside bool
}

// SolidBody is a closed triangulated surface immersed in the grid.
type SolidBody struct {
	Name      string
	Triangles []*Triangle

	XMin, XMax [3]float64
	IMin, IMax [3]int
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// AddSolids returns a function that registers the given solids with the
// domain and precomputes the facet bounding boxes in cell indices. Facet
// boxes narrower than the stencil are widened so the tagging passes see
// enough cells; facets reaching beyond the domain are flagged and excluded
// from tagging.
func AddSolids(solids ...*SolidBody) DomainManipulator {
	return func(d *Domain) error {
		cfg := &d.Config
		ncell := [3]int{cfg.XCells, cfg.YCells, cfg.ZCells}
		delta := [3]float64{d.dx, d.dy, d.dz}
		size := [3]float64{cfg.Lx, cfg.Ly, cfg.Lz}

		for _, s := range solids {
			for q := 0; q < 3; q++ {
				s.XMin[q] = math.Inf(1)
				s.XMax[q] = math.Inf(-1)
			}
			for _, t := range s.Triangles {
				t.AbsNr = math.Sqrt(dot(t.Nr, t.Nr))
				t.Outside = false
				for q := 0; q < 3; q++ {
					lo := math.Min(t.P1[q], math.Min(t.P2[q], t.P3[q]))
					hi := math.Max(t.P1[q], math.Max(t.P2[q], t.P3[q]))
					s.XMin[q] = math.Min(s.XMin[q], lo)
					s.XMax[q] = math.Max(s.XMax[q], hi)

					imin := int(lo / delta[q])
					imax := int(hi / delta[q])
					if imax-imin < max(cfg.Order-1, 1) {
						imin = int((lo+hi)/(2.0*delta[q])) - (cfg.Order-1)/2
						imax = imin + cfg.Order
					}
					t.IMin[q] = min(max(imin, 0), ncell[q]-1)
					t.IMax[q] = min(max(imax, 0), ncell[q]-1)
					if lo < 0.0 || hi > size[q] {
						t.Outside = true
					}
				}
			}
			for q := 0; q < 3; q++ {
				s.IMin[q] = min(max(int(s.XMin[q]/delta[q]), 0), ncell[q]-1)
				s.IMax[q] = min(max(int(s.XMax[q]/delta[q]), 0), ncell[q]-1)
			}
		}
		d.solids = append(d.solids, solids...)
		return nil
	}
}

// ClassifyCells returns a function that tags the cells covered by the
// immersed solids: first the ghost layer along the surface, then the solid
// interior by axis-aligned ray casting, and finally the per-axis distances
// from every fluid cell to the nearest solid cell.
func ClassifyCells() DomainManipulator {
	return func(d *Domain) error {
		for i := range d.cells {
			c := &d.cells[i]
			c.Kind = Fluid
			c.Ghost = false
		}
		if len(d.solids) == 0 {
			return nil
		}
		d.markGhostCells()
		d.markSolidCells()
		d.computeSolidDistances()
		return nil
	}
}

// markGhostCells walks every facet's cell bounding box and tags the cells
// whose center lies just below the surface. A cell revisited from the
// outside of a different facet loses its tag; among tagging facets the
// closest one wins and defines the image point.
func (d *Domain) markGhostCells() {
	dp := d.Config.STol * math.Max(d.dx, math.Max(d.dy, d.dz))

	for _, s := range d.solids {
		for _, tri := range s.Triangles {
			if tri.Outside {
				continue
			}
			v1 := [3]float64{tri.P2[0] - tri.P1[0], tri.P2[1] - tri.P1[1], tri.P2[2] - tri.P1[2]}
			v2 := [3]float64{tri.P3[0] - tri.P2[0], tri.P3[1] - tri.P2[1], tri.P3[2] - tri.P2[2]}
			v3 := [3]float64{tri.P1[0] - tri.P3[0], tri.P1[1] - tri.P3[1], tri.P1[2] - tri.P3[2]}

			for i := tri.IMin[0]; i <= tri.IMax[0]; i++ {
				for j := tri.IMin[1]; j <= tri.IMax[1]; j++ {
					for k := tri.IMin[2]; k <= tri.IMax[2]; k++ {
						c := d.CellAt(i, j, k)
						dif := [3]float64{c.Xc - tri.P1[0], c.Yc - tri.P1[1], c.Zc - tri.P1[2]}
						proj := dot(dif, tri.Nr)
						dist := proj / tri.AbsNr

						if proj > 0 && c.Ghost && math.Abs(dist) < c.DistAbs {
							// Surface revisit from the outside.
							c.Ghost = false
						}
						if proj > 0 || c.out {
							c.out = true
							continue
						}
						if math.Abs(dist) >= dp {
							continue
						}
						// Intersection of the normal through the cell
						// center with the facet plane.
						xc := [3]float64{
							c.Xc - dist*tri.Nr[0],
							c.Yc - dist*tri.Nr[1],
							c.Zc - dist*tri.Nr[2],
						}
						dc1 := [3]float64{xc[0] - tri.P1[0], xc[1] - tri.P1[1], xc[2] - tri.P1[2]}
						dc2 := [3]float64{xc[0] - tri.P2[0], xc[1] - tri.P2[1], xc[2] - tri.P2[2]}
						dc3 := [3]float64{xc[0] - tri.P3[0], xc[1] - tri.P3[1], xc[2] - tri.P3[2]}
						vp1 := cross(v1, dc1)
						vp2 := cross(v2, dc2)
						vp3 := cross(v3, dc3)
						if dot(vp1, vp2) <= 0 || dot(vp2, vp3) <= 0 || dot(vp3, vp1) <= 0 {
							continue
						}
						if math.Abs(dist) < c.DistAbs {
							c.Ghost = true
							c.Tri = tri
							if math.Abs(dist) < tol14 {
								// dist may be ±0; force it below the surface.
								dist = -tol14
							}
							c.DistAbs = math.Abs(dist)
							c.XIm = xc[0] - dist*tri.Nr[0]
							c.YIm = xc[1] - dist*tri.Nr[1]
							c.ZIm = xc[2] - dist*tri.Nr[2]
						}
					}
				}
			}
		}
	}
}

// markSolidCells casts one ray per axis from every untagged cell inside a
// solid's bounding box. An axis votes "inside" when its nearest ghost cell's
// facet normal points along the direction from the cell to the ghost, away
// from the cell; two votes tag the
// cell Solid. A second pass reverts orphans, solid cells with at most one
// solid face-neighbor.
func (d *Domain) markSolidCells() {
	for _, s := range d.solids {
		for i := s.IMin[0]; i <= s.IMax[0]; i++ {
			for j := s.IMin[1]; j <= s.IMax[1]; j++ {
				for k := s.IMin[2]; k <= s.IMax[2]; k++ {
					c := d.CellAt(i, j, k)
					if c.Ghost {
						continue
					}
					votes := 0

					// Requiring at least two ghost cells per line keeps
					// isolated ghosts from generating solid streaks.
					if q, ct := d.ghostOnLine(c, AxisX); q != nil && ct > 1 {
						if (q.Xc-c.Xc)*q.Tri.Nr[0] > 0 {
							votes++
						}
					}
					if q, ct := d.ghostOnLine(c, AxisY); q != nil && ct > 1 {
						if (q.Yc-c.Yc)*q.Tri.Nr[1] > 0 {
							votes++
						}
					}
					if q, ct := d.ghostOnLine(c, AxisZ); q != nil && ct > 1 {
						if (q.Zc-c.Zc)*q.Tri.Nr[2] > 0 {
							votes++
						}
					}
					if votes >= 2 {
						c.Kind = Solid
					}
				}
			}
		}
	}

	for _, s := range d.solids {
		for i := s.IMin[0]; i <= s.IMax[0]; i++ {
			for j := s.IMin[1]; j <= s.IMax[1]; j++ {
				for k := s.IMin[2]; k <= s.IMax[2]; k++ {
					c := d.CellAt(i, j, k)
					if c.Ghost || c.Kind != Solid {
						continue
					}
					ct := 0
					if d.cells[d.wall(c, wallYMinus).CellL].Kind == Solid {
						ct++
					}
					if d.cells[d.wall(c, wallXPlus).CellR].Kind == Solid {
						ct++
					}
					if d.cells[d.wall(c, wallYPlus).CellR].Kind == Solid {
						ct++
					}
					if d.cells[d.wall(c, wallXMinus).CellL].Kind == Solid {
						ct++
					}
					if d.cells[d.wall(c, wallZMinus).CellL].Kind == Solid {
						ct++
					}
					if d.cells[d.wall(c, wallZPlus).CellR].Kind == Solid {
						ct++
					}
					if ct < 2 {
						c.Kind = Fluid
					}
				}
			}
		}
	}
}

// ghostOnLine scans the full grid line through c along the given axis and
// returns the ghost cell nearest to c together with the number of ghost
// cells on the line.
func (d *Domain) ghostOnLine(c *Cell, a Axis) (*Cell, int) {
	var n int
	var at func(i int) *Cell
	var pos int
	switch a {
	case AxisX:
		n, pos = d.Config.XCells, c.L
		at = func(i int) *Cell { return d.CellAt(i, c.M, c.N) }
	case AxisY:
		n, pos = d.Config.YCells, c.M
		at = func(i int) *Cell { return d.CellAt(c.L, i, c.N) }
	case AxisZ:
		n, pos = d.Config.ZCells, c.N
		at = func(i int) *Cell { return d.CellAt(c.L, c.M, i) }
	}
	var best *Cell
	df0 := n
	ct := 0
	for i := 0; i < n; i++ {
		q := at(i)
		if !q.Ghost {
			continue
		}
		ct++
		if df := abs(i - pos); df <= df0 {
			df0 = df
			best = q
		}
	}
	return best, ct
}

// computeSolidDistances records, for every non-solid cell, the Cartesian
// distance in cell units to the nearest solid cell along each axis. The
// stencil assignment clamps against these.
func (d *Domain) computeSolidDistances() {
	for i := range d.cells {
		c := &d.cells[i]
		if c.Kind == Solid {
			continue
		}
		for l := 0; l < d.Config.XCells; l++ {
			if d.CellAt(l, c.M, c.N).Kind == Solid {
				c.DistSolX = min(c.DistSolX, abs(c.L-l))
			}
		}
		for m := 0; m < d.Config.YCells; m++ {
			if d.CellAt(c.L, m, c.N).Kind == Solid {
				c.DistSolY = min(c.DistSolY, abs(c.M-m))
			}
		}
		for n := 0; n < d.Config.ZCells; n++ {
			if d.CellAt(c.L, c.M, n).Kind == Solid {
				c.DistSolZ = min(c.DistSolZ, abs(c.N-n))
			}
		}
	}
}

// AssignImagePoints returns a function that locates, for every ghost cell,
// the 2×2×2 block of cells surrounding its image point and computes the
// inverse-square-distance interpolation weights. Neighbors that are
// themselves ghosts carry zero weight; a ghost whose weights all vanish, or
// whose image point falls outside the domain, is demoted to a solid cell.
func AssignImagePoints() DomainManipulator {
	return func(d *Domain) error {
		if len(d.solids) == 0 {
			return nil
		}
		cfg := &d.Config
		for i := range d.cells {
			c := &d.cells[i]
			if !c.Ghost {
				continue
			}
			if !(c.XIm > 0 && c.XIm < cfg.Lx &&
				c.YIm > 0 && c.YIm < cfg.Ly &&
				c.ZIm > 0 && c.ZIm < cfg.Lz) {
				c.Kind = Solid
				c.Ghost = false
				continue
			}

			imin := int(math.Max((c.XIm-d.dx/2.0)/d.dx, 0))
			imax := min(imin+1, cfg.XCells-1)
			jmin := int(math.Max((c.YIm-d.dy/2.0)/d.dy, 0))
			jmax := min(jmin+1, cfg.YCells-1)
			kmin := int(math.Max((c.ZIm-d.dz/2.0)/d.dz, 0))
			kmax := min(kmin+1, cfg.ZCells-1)

			c.INbr[0] = d.cellIndex(imin, jmin, kmin)
			c.INbr[1] = d.cellIndex(imax, jmin, kmin)
			c.INbr[2] = d.cellIndex(imax, jmax, kmin)
			c.INbr[3] = d.cellIndex(imin, jmax, kmin)
			c.INbr[4] = d.cellIndex(imin, jmin, kmax)
			c.INbr[5] = d.cellIndex(imax, jmin, kmax)
			c.INbr[6] = d.cellIndex(imax, jmax, kmax)
			c.INbr[7] = d.cellIndex(imin, jmax, kmax)

			sum := 0.0
			var li [8]float64
			for q := 0; q < 8; q++ {
				nb := &d.cells[c.INbr[q]]
				dx := c.XIm - nb.Xc
				dy := c.YIm - nb.Yc
				dz := c.ZIm - nb.Zc
				d2 := dx*dx + dy*dy + dz*dz
				if !nb.Ghost {
					li[q] = 1.0 / (d2 + tol14)
				}
				sum += li[q]
			}
			if sum < tol14 {
				log.Printf("euler3d: ghost cell %d has no fluid interpolation neighbors; demoting to solid", c.ID)
				c.Kind = Solid
				c.Ghost = false
				continue
			}
			for q := 0; q < 8; q++ {
				c.WNbr[q] = li[q] / sum
			}
		}
		return nil
	}
}

// updateGhostCells recomputes every ghost cell's state as a reflection of
// the interpolated image-point state: the velocity component normal to the
// associated facet is reversed (zero normal velocity at the surface, free
// tangential slip) and all non-vector components are copied.
func (d *Domain) updateGhostCells() {
	if len(d.solids) == 0 {
		return
	}
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for i := pp; i < len(d.cells); i += nprocs {
				c := &d.cells[i]
				if !c.Ghost {
					continue
				}
				var aux State
				for k := 0; k < NVar; k++ {
					for q := 0; q < 8; q++ {
						aux[k] += c.WNbr[q] * d.cells[c.INbr[q]].U[k]
					}
				}
				nr := c.Tri.Nr
				dotprod := nr[0]*aux[1] + nr[1]*aux[2] + nr[2]*aux[3]
				c.U = aux
				c.U[1] = aux[1] - 2.0*dotprod*nr[0]
				c.U[2] = aux[2] - 2.0*dotprod*nr[1]
				c.U[3] = aux[3] - 2.0*dotprod*nr[2]
			}
		}(pp)
	}
	wg.Wait()
}

// RepairGhostCells returns a function that seeds the ghost-cell states from
// the current solution; the integrator repeats the repair after every
// sub-step.
func RepairGhostCells() DomainManipulator {
	return func(d *Domain) error {
		d.updateGhostCells()
		return nil
	}
}

// DeactivateInteriorWalls returns a function that reclassifies the walls
// after the image-point pass may have demoted ghosts, and then deactivates
// the walls buried between ghost and solid cells so no Riemann problem is
// solved inside the body.
func DeactivateInteriorWalls() DomainManipulator {
	classify := ClassifyWalls()
	return func(d *Domain) error {
		if err := classify(d); err != nil {
			return err
		}
		for k := range d.walls {
			w := &d.walls[k]
			cl := &d.cells[w.CellL]
			cr := &d.cells[w.CellR]
			switch {
			case cl.Ghost && cr.Ghost:
				w.Kind = WallInactive
			case cr.Kind == Solid && cl.Ghost:
				w.Kind = WallInactive
			case cl.Kind == Solid && cr.Ghost:
				w.Kind = WallInactive
			}
		}
		return nil
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
