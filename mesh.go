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
	"fmt"
	"log"
)

// Axis identifies the orientation of a wall normal. All walls are aligned
// with one of the coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// CellKind distinguishes computed cells from solid (excluded) cells.
type CellKind int

const (
	// Fluid cells are evolved by the integrator.
	Fluid CellKind = iota
	// Solid cells lie inside an immersed body and are never computed.
	Solid
)

// WallKind tells each wall which flux routine applies to it. The numeric
// values of the boundary kinds coincide with the BC codes so that boundary
// walls can adopt their face's code directly.
type WallKind int

const (
	// WallInactive marks walls between two non-fluid cells; they carry
	// zero flux.
	WallInactive WallKind = 0
	// WallInner walls solve a Riemann problem between two fluid cells.
	WallInner WallKind = 1
	// WallDirichlet walls belong to a user-defined boundary; their flux
	// is transmissive and the adjacent cell averages are imposed by a
	// user manipulator.
	WallDirichlet WallKind = 2
	// WallTransmissive walls copy the inner flux outward.
	WallTransmissive WallKind = 3
	// WallSolid walls mirror the inner state.
	WallSolid WallKind = 4
)

// Wall face positions within a cell, in the storage order inherited from the
// mesh layout: −y, +x, +y, −x, −z, +z.
const (
	wallYMinus = iota
	wallXPlus
	wallYPlus
	wallXMinus
	wallZMinus
	wallZPlus
)

// Cell holds the state of a single grid cell.
type Cell struct {
	ID      int
	L, M, N int // index in the Cartesian reference

	Xc, Yc, Zc float64 // cell center
	Dx, Dy, Dz float64 // cell extents

	// W holds the ids of the six walls in the order −y, +x, +y, −x, −z, +z.
	W [6]int
	// Nodes holds the ids of the eight corner nodes, bottom face first,
	// counterclockwise.
	Nodes [8]int

	U    State // conserved variables
	UAux State // scratch state for the multi-stage integrator
	Ue   State // hydrostatic equilibrium state
	S    State // source accumulator
	SCorr State // equilibrium-preserving source correction

	// Pe is the equilibrium pressure at the cell center.
	Pe float64

	Kind  CellKind
	Ghost bool

	// Image-point data for ghost cells.
	XIm, YIm, ZIm float64
	DistAbs       float64
	INbr          [8]int     // ids of the image-point interpolation neighbors
	WNbr          [8]float64 // normalized interpolation weights
	Tri           *Triangle
	out           bool // cell center found outside a surface during tagging

	// Cartesian distance (in cell units) to the nearest solid cell along
	// each axis.
	DistSolX, DistSolY, DistSolZ int

	// Per-axis stencil sizes and member cell ids. Only the first StSize*
	// entries of each list are valid.
	StSizeX, StSizeY, StSizeZ int
	StX, StY, StZ             [9]int
}

// Wall is the interface between two cells. It references its cells by index
// into the domain arena; it never owns them.
type Wall struct {
	ID   int
	Axis Axis

	// Z is the height of the face center, used by the gravity terms.
	Z float64

	// CellL and CellR are the ids of the left and right cells along the
	// wall axis.
	CellL, CellR int

	// Reconstructed interface states and, for the well-balanced modes,
	// their equilibrium counterparts.
	UL, UR   State
	ULe, URe State
	PLe, PRe float64

	// FL and FR are the fluxes seen by the left and right cell. HLLS
	// splits them; all other solvers set them equal.
	FL, FR State

	Kind WallKind
	// BoundID identifies the domain face (1..6) for boundary walls and
	// the fluid side for immersed solid walls; it is zero elsewhere.
	BoundID int
}

// Node is a mesh vertex; it is used only by the output geometry.
type Node struct {
	ID      int
	X, Y, Z float64
}

// NCells returns the number of cells in the domain.
func (d *Domain) NCells() int { return len(d.cells) }

// Nodes returns the mesh vertices for the output writers.
func (d *Domain) Nodes() []Node { return d.nodes }

// NWalls returns the number of walls in the domain.
func (d *Domain) NWalls() int { return len(d.walls) }

// CellAt returns the cell with Cartesian index (l,m,n).
func (d *Domain) CellAt(l, m, n int) *Cell {
	return &d.cells[d.cellIndex(l, m, n)]
}

func (d *Domain) cellIndex(l, m, n int) int {
	return l + m*d.Config.XCells + n*d.Config.XCells*d.Config.YCells
}

// wall returns the wall at the given face position of cell c.
func (d *Domain) wall(c *Cell, face int) *Wall {
	return &d.walls[c.W[face]]
}

// BuildMesh returns a function that allocates the cell, wall and node
// arenas and wires their connectivity. Wall neighbors are laid out
// periodically by default; non-periodic boundary codes retag the boundary
// walls afterwards in ClassifyWalls. Periodic axes whose cell count cannot
// support the requested stencil are downgraded to transmissive with a
// warning.
func BuildMesh() DomainManipulator {
	return func(d *Domain) error {
		cfg := &d.Config
		xcells, ycells, zcells := cfg.XCells, cfg.YCells, cfg.ZCells

		semiSt := (cfg.Order - 1) / 2
		if cfg.BC[FaceXMax] == BCPeriodic && xcells <= semiSt {
			log.Printf("euler3d: the number of cells in X is too small for periodic boundaries; using transmissive instead")
			cfg.BC[FaceXMax] = BCTransmissive
			cfg.BC[FaceXMin] = BCTransmissive
		}
		if cfg.BC[FaceYMin] == BCPeriodic && ycells <= semiSt {
			log.Printf("euler3d: the number of cells in Y is too small for periodic boundaries; using transmissive instead")
			cfg.BC[FaceYMin] = BCTransmissive
			cfg.BC[FaceYMax] = BCTransmissive
		}
		if cfg.BC[FaceZMin] == BCPeriodic && zcells <= semiSt {
			log.Printf("euler3d: the number of cells in Z is too small for periodic boundaries; using transmissive instead")
			cfg.BC[FaceZMin] = BCTransmissive
			cfg.BC[FaceZMax] = BCTransmissive
		}

		d.periodicX = cfg.BC[FaceXMax] == BCPeriodic && cfg.BC[FaceXMin] == BCPeriodic
		d.periodicY = cfg.BC[FaceYMin] == BCPeriodic && cfg.BC[FaceYMax] == BCPeriodic
		d.periodicZ = cfg.BC[FaceZMin] == BCPeriodic && cfg.BC[FaceZMax] == BCPeriodic

		d.dx = cfg.Lx / float64(xcells)
		d.dy = cfg.Ly / float64(ycells)
		d.dz = cfg.Lz / float64(zcells)

		ncells := xcells * ycells * zcells
		nwalls := 3*ncells + xcells*zcells + ycells*zcells + xcells*ycells
		d.cells = make([]Cell, ncells)
		d.walls = make([]Wall, nwalls)

		// Each z-layer owns three walls per cell plus one extra +x wall
		// per row and one extra +y wall per column; the +z walls of the
		// top layer sit at the end of the arena.
		wallsPerLayer := 3*xcells*ycells + xcells + ycells

		for n := 0; n < zcells; n++ {
			for m := 0; m < ycells; m++ {
				for l := 0; l < xcells; l++ {
					k := d.cellIndex(l, m, n)
					k2d := l + m*xcells
					c := &d.cells[k]
					c.ID = k
					c.L, c.M, c.N = l, m, n
					c.Dx, c.Dy, c.Dz = d.dx, d.dy, d.dz
					c.Xc = (float64(l) + 0.5) * d.dx
					c.Yc = (float64(m) + 0.5) * d.dy
					c.Zc = (float64(n) + 0.5) * d.dz
					c.DistAbs = 9.999999e12
					c.DistSolX = 9999999
					c.DistSolY = 9999999
					c.DistSolZ = 9999999

					c.W[wallYMinus] = 3*k2d + m + n*wallsPerLayer
					c.W[wallXMinus] = c.W[wallYMinus] + 1
					c.W[wallZMinus] = c.W[wallYMinus] + 2
					if l == xcells-1 {
						c.W[wallXPlus] = c.W[wallYMinus] + 3
					} else {
						c.W[wallXPlus] = c.W[wallYMinus] + 4
					}
					if m == ycells-1 {
						c.W[wallYPlus] = wallsPerLayer*(n+1) - xcells + l
					} else {
						c.W[wallYPlus] = c.W[wallYMinus] + 3*xcells + 1
					}
					if n == zcells-1 {
						c.W[wallZPlus] = nwalls - xcells*ycells + l + m*xcells
					} else {
						c.W[wallZPlus] = c.W[wallZMinus] + wallsPerLayer
					}

					nodesPerLayer := (xcells + 1) * (ycells + 1)
					c.Nodes[0] = k2d + m + n*nodesPerLayer
					c.Nodes[1] = c.Nodes[0] + 1
					c.Nodes[2] = c.Nodes[1] + xcells + 1
					c.Nodes[3] = c.Nodes[1] + xcells
					c.Nodes[4] = c.Nodes[0] + nodesPerLayer
					c.Nodes[5] = c.Nodes[4] + 1
					c.Nodes[6] = c.Nodes[5] + xcells + 1
					c.Nodes[7] = c.Nodes[5] + xcells
				}
			}
		}

		for k := range d.walls {
			d.walls[k].ID = k
			d.walls[k].Kind = WallInner
		}

		// Wall orientation, face heights and neighbor wiring. The
		// neighbor assignment lays periodic wrap by default; boundary
		// walls are retagged by ClassifyWalls when a face is not
		// periodic.
		for k := range d.cells {
			c := &d.cells[k]
			d.wall(c, wallYMinus).Axis = AxisY
			d.wall(c, wallYPlus).Axis = AxisY
			d.wall(c, wallXMinus).Axis = AxisX
			d.wall(c, wallXPlus).Axis = AxisX
			d.wall(c, wallZMinus).Axis = AxisZ
			d.wall(c, wallZPlus).Axis = AxisZ

			d.wall(c, wallYMinus).Z = c.Zc
			d.wall(c, wallYPlus).Z = c.Zc
			d.wall(c, wallXMinus).Z = c.Zc
			d.wall(c, wallXPlus).Z = c.Zc
			d.wall(c, wallZMinus).Z = c.Zc - 0.5*c.Dz
			d.wall(c, wallZPlus).Z = c.Zc + 0.5*c.Dz

			d.wall(c, wallYMinus).CellR = c.ID
			d.wall(c, wallXMinus).CellR = c.ID
			d.wall(c, wallZMinus).CellR = c.ID
			d.wall(c, wallXPlus).CellL = c.ID
			d.wall(c, wallYPlus).CellL = c.ID
			d.wall(c, wallZPlus).CellL = c.ID

			if c.M == 0 {
				d.wall(c, wallYMinus).CellL = c.ID + (ycells-1)*xcells
			}
			if c.M == ycells-1 {
				d.wall(c, wallYPlus).CellR = c.ID - c.M*xcells
			}
			if c.L == 0 {
				d.wall(c, wallXMinus).CellL = c.ID + xcells - 1
			}
			if c.L == xcells-1 {
				d.wall(c, wallXPlus).CellR = c.ID - (xcells - 1)
			}
			if c.N == 0 {
				d.wall(c, wallZMinus).CellL = c.ID + (zcells-1)*xcells*ycells
			}
			if c.N == zcells-1 {
				d.wall(c, wallZPlus).CellR = c.ID - (zcells-1)*xcells*ycells
			}
		}

		// Nodes.
		d.nodes = make([]Node, (xcells+1)*(ycells+1)*(zcells+1))
		for n := 0; n < zcells+1; n++ {
			for m := 0; m < ycells+1; m++ {
				for l := 0; l < xcells+1; l++ {
					k := (xcells+1)*(ycells+1)*n + (xcells+1)*m + l
					d.nodes[k] = Node{
						ID: k,
						X:  float64(l) * d.dx,
						Y:  float64(m) * d.dy,
						Z:  float64(n) * d.dz,
					}
				}
			}
		}

		d.buildCellIndex()
		return nil
	}
}

// ClassifyWalls returns a function that assigns each wall its flux kind:
// immersed solid-boundary walls first, then the domain faces according to
// the configured boundary codes. It must run after the cell classification.
func ClassifyWalls() DomainManipulator {
	return func(d *Domain) error {
		for k := range d.walls {
			w := &d.walls[k]
			w.Kind = WallInner
			w.BoundID = 0

			cl := &d.cells[w.CellL]
			cr := &d.cells[w.CellR]
			if cl.Kind == Solid && cr.Kind == Solid {
				w.Kind = WallInactive
				continue
			}
			if cl.Kind == Solid || cr.Kind == Solid {
				w.Kind = WallSolid
				// The BoundID tells the flux routine which side
				// holds the fluid state, using the face numbering
				// of the mirrored boundary.
				switch w.Axis {
				case AxisX:
					if cl.Kind == Solid {
						w.BoundID = 4
					} else {
						w.BoundID = 2
					}
				case AxisY:
					if cl.Kind == Solid {
						w.BoundID = 1
					} else {
						w.BoundID = 3
					}
				case AxisZ:
					if cl.Kind == Solid {
						w.BoundID = 5
					} else {
						w.BoundID = 6
					}
				}
			}
		}

		xcells, ycells, zcells := d.Config.XCells, d.Config.YCells, d.Config.ZCells
		setFace := func(c *Cell, face int, boundID int) {
			w := d.wall(c, face)
			if c.Kind == Solid {
				w.Kind = WallInactive
				return
			}
			w.Kind = WallKind(d.Config.BC[boundID-1])
			w.BoundID = boundID
		}
		for l := 0; l < xcells; l++ {
			for n := 0; n < zcells; n++ {
				setFace(d.CellAt(l, 0, n), wallYMinus, 1)
				setFace(d.CellAt(l, ycells-1, n), wallYPlus, 3)
			}
		}
		for m := 0; m < ycells; m++ {
			for n := 0; n < zcells; n++ {
				setFace(d.CellAt(xcells-1, m, n), wallXPlus, 2)
				setFace(d.CellAt(0, m, n), wallXMinus, 4)
			}
		}
		for l := 0; l < xcells; l++ {
			for m := 0; m < ycells; m++ {
				setFace(d.CellAt(l, m, 0), wallZMinus, 5)
				setFace(d.CellAt(l, m, zcells-1), wallZPlus, 6)
			}
		}

		// Periodic faces stay inner walls; their neighbor wrap is
		// already in place.
		for k := range d.walls {
			w := &d.walls[k]
			if w.Kind == WallKind(BCPeriodic) {
				w.Kind = WallInner
			}
			if w.Kind != WallInner && w.Kind != WallInactive && w.BoundID == 0 {
				return fmt.Errorf("euler3d: wall %d has kind %d but no boundary face", w.ID, w.Kind)
			}
		}
		return nil
	}
}
