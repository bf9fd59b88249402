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
	"math"
	"runtime"
	"sync"
)

// setTimestepCFL sets the time step from the Courant–Friedrichs–Lewy
// condition using the largest wave speed of the current flux sweep, clipped
// so the run lands on the final time.
func (d *Domain) setTimestepCFL() {
	dl := math.Min(d.dx, math.Min(d.dy, d.dz))
	d.Dt = d.Config.CFL * dl / d.lambdaMax
	if d.Dt+d.T > d.Config.TFinal {
		d.Dt = d.Config.TFinal - d.T + tol14
	}
}

// rkStage applies one update stage. The new state is
// cAux·U_aux + cU·U − cDt·Δt·(divF − S), which covers the forward-Euler
// stage and both SSP-RK3 combination stages. Solid and ghost cells are
// skipped; ghosts are repaired afterwards.
func (d *Domain) rkStage(cAux, cU, cDt float64, saveAux bool) error {
	nprocs := runtime.GOMAXPROCS(0)
	errs := make([]error, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for i := pp; i < len(d.cells); i += nprocs {
				c := &d.cells[i]
				if c.Kind == Solid || c.Ghost {
					continue
				}
				xp := &d.walls[c.W[wallXPlus]]
				xm := &d.walls[c.W[wallXMinus]]
				yp := &d.walls[c.W[wallYPlus]]
				ym := &d.walls[c.W[wallYMinus]]
				zp := &d.walls[c.W[wallZPlus]]
				zm := &d.walls[c.W[wallZMinus]]

				if saveAux {
					c.UAux = c.U
				}
				for k := 0; k < NVar; k++ {
					div := (xp.FL[k]-xm.FR[k])/c.Dx +
						(yp.FL[k]-ym.FR[k])/c.Dy +
						(zp.FL[k]-zm.FR[k])/c.Dz
					c.U[k] = cAux*c.UAux[k] + cU*c.U[k] - cDt*d.Dt*(div-c.S[k])
				}
				if c.U[0] < tol14 {
					errs[pp] = fmt.Errorf("euler3d: negative density %g in cell %d (%d,%d,%d) at t=%g",
						c.U[0], c.ID, c.L, c.M, c.N, d.T)
					return
				}
				u := c.U[1] / c.U[0]
				v := c.U[2] / c.U[0]
				w := c.U[3] / c.U[0]
				gm := d.Config.gammaOf(&c.U)
				if p := d.Config.pressureFromEnergy(gm, c.U[4], u, v, w, c.U[0], c.Zc); p <= 0 || math.IsNaN(p) {
					errs[pp] = fmt.Errorf("euler3d: negative pressure %g in cell %d (%d,%d,%d) at t=%g",
						p, c.ID, c.L, c.M, c.N, d.T)
					return
				}
			}
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// AdvanceTimestep returns a function that advances the solution by one full
// time step: a single forward-Euler step at first order, the three-stage
// strong-stability-preserving Runge–Kutta scheme of Shu–Osher otherwise.
// Every sub-step reconstructs, solves the wall Riemann problems, refreshes
// the source term and repairs the ghost cells.
func AdvanceTimestep() DomainManipulator {
	return func(d *Domain) error {
		for stage := 1; stage <= d.rkSteps; stage++ {
			d.computeFluxes()
			if d.Config.Source != SourceNone {
				d.computeSource()
			}
			if stage == 1 {
				d.setTimestepCFL()
			}

			var err error
			switch {
			case d.rkSteps == 1:
				err = d.rkStage(0, 1, 1, false)
			case stage == 1:
				err = d.rkStage(0, 1, 1, true)
			case stage == 2:
				err = d.rkStage(0.75, 0.25, 0.25, false)
			default:
				err = d.rkStage(1.0/3.0, 2.0/3.0, 2.0/3.0, false)
			}
			if err != nil {
				return err
			}
			d.updateGhostCells()
		}
		d.T += d.Dt
		return nil
	}
}

// DirichletBoundary returns a function that imposes user-defined cell
// averages after every time step; which cells to overwrite is up to the
// caller.
func DirichletBoundary(set func(c *Cell)) DomainManipulator {
	return func(d *Domain) error {
		for i := range d.cells {
			set(&d.cells[i])
		}
		return nil
	}
}
