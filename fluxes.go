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
	"runtime"
	"sync"

	"github.com/spatialmodel/euler3d/reconstruct"
)

// stencilFor returns the stencil of cell c along axis a.
func stencilFor(c *Cell, a Axis) (size int, st *[9]int) {
	switch a {
	case AxisX:
		return c.StSizeX, &c.StX
	case AxisY:
		return c.StSizeY, &c.StY
	case AxisZ:
		return c.StSizeZ, &c.StZ
	}
	return 1, nil
}

// reconstructSide fills one interface state from the 1-D stencil of the
// owning cell, reading the per-cell field selected by get.
func (d *Domain) reconstructSide(c *Cell, a Axis, left bool, get func(*Cell) *State, out *State) {
	size, st := stencilFor(c, a)
	if size == 1 {
		*out = *get(c)
		return
	}
	var phi [9]float64
	for k := 0; k < NVar; k++ {
		for i := 0; i < size; i++ {
			phi[i] = get(&d.cells[st[i]])[k]
		}
		if left {
			out[k] = reconstruct.Left(d.Config.Scheme, phi[:size])
		} else {
			out[k] = reconstruct.Right(d.Config.Scheme, phi[:size])
		}
	}
}

func cellU(c *Cell) *State  { return &c.U }
func cellUe(c *Cell) *State { return &c.Ue }

// computeFluxes reconstructs both interface states of every active wall,
// solves the configured Riemann problem and assigns the passive-scalar
// transport flux. Each wall is owned by exactly one worker; the global
// maximum wave speed is a max-reduction over per-worker partials.
func (d *Domain) computeFluxes() {
	nprocs := runtime.GOMAXPROCS(0)
	partial := make([]float64, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			lambda := 0.0
			for n := pp; n < len(d.walls); n += nprocs {
				wl := &d.walls[n]
				if wl.Kind == WallInactive {
					wl.FL = State{}
					wl.FR = State{}
					continue
				}

				d.reconstructSide(&d.cells[wl.CellR], wl.Axis, false, cellU, &wl.UR)
				d.reconstructSide(&d.cells[wl.CellL], wl.Axis, true, cellU, &wl.UL)

				var maxS float64
				switch wl.Kind {
				case WallInner:
					switch d.Config.Solver {
					case HLLE:
						maxS = d.hlleFlux(wl)
					case HLLC:
						maxS = d.hllcFlux(wl)
					case HLLS:
						maxS = d.hllsFlux(wl)
					}
				case WallTransmissive, WallDirichlet:
					d.transmissiveFlux(wl)
				case WallSolid:
					maxS = d.solidWallFlux(wl)
				}
				if maxS > lambda {
					lambda = maxS
				}

				d.transportFlux(wl)
			}
			partial[pp] = lambda
		}(pp)
	}
	wg.Wait()

	d.lambdaMax = 0.0
	for _, l := range partial {
		if l > d.lambdaMax {
			d.lambdaMax = l
		}
	}
}

// reconstructEquilibrium recomputes the equilibrium interface states and
// pressures of every active wall from the hydrostatic column, and from them
// the per-cell well-balancing correction applied by the augmented source
// mode.
func (d *Domain) reconstructEquilibrium() {
	cfg := &d.Config
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for n := pp; n < len(d.walls); n += nprocs {
				wl := &d.walls[n]
				if wl.Kind == WallInactive {
					continue
				}
				d.reconstructSide(&d.cells[wl.CellR], wl.Axis, false, cellUe, &wl.URe)
				d.reconstructSide(&d.cells[wl.CellL], wl.Axis, true, cellUe, &wl.ULe)

				uL := wl.ULe[1] / wl.ULe[0]
				uR := wl.URe[1] / wl.URe[0]
				vL := wl.ULe[2] / wl.ULe[0]
				vR := wl.URe[2] / wl.URe[0]
				sL := wl.ULe[3] / wl.ULe[0]
				sR := wl.URe[3] / wl.URe[0]
				wl.PLe = cfg.pressureFromEnergy(cfg.Gamma, wl.ULe[4], uL, vL, sL, wl.ULe[0], wl.Z)
				wl.PRe = cfg.pressureFromEnergy(cfg.Gamma, wl.URe[4], uR, vR, sR, wl.URe[0], wl.Z)
			}
		}(pp)
	}
	wg.Wait()

	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for i := pp; i < len(d.cells); i += nprocs {
				c := &d.cells[i]
				if c.Kind == Solid {
					continue
				}
				up := d.wall(c, wallZPlus)
				down := d.wall(c, wallZMinus)
				c.SCorr[3] = (up.PLe-down.PRe)/c.Dz + cfg.Gravity*c.Ue[0]
			}
		}(pp)
	}
	wg.Wait()
}

// ReconstructEquilibrium returns a function that performs the equilibrium
// reconstruction once the hydrostatic state is in place. It must run before
// the first time step whenever a source mode is active.
func ReconstructEquilibrium() DomainManipulator {
	return func(d *Domain) error {
		if d.Config.Source != SourceNone {
			d.reconstructEquilibrium()
		}
		return nil
	}
}
