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
	"io"
	"runtime"
	"sync"

	"github.com/GaryBoone/GoStats/stats"
)

// Mass returns the total mass of the fluid cells.
func (d *Domain) Mass() float64 {
	vol := d.dx * d.dy * d.dz
	d.mass = d.sumCells(func(c *Cell) float64 {
		return c.U[0] * vol
	})
	return d.mass
}

// Energy returns the total energy of the fluid cells. In the source modes
// whose energy variable excludes the gravitational potential, the potential
// is added back so the total is conserved.
func (d *Domain) Energy() float64 {
	vol := d.dx * d.dy * d.dz
	g := d.Config.Gravity
	withPotential := d.Config.Source == SourceAugmented || d.Config.Source == SourcePerturbation
	d.energy = d.sumCells(func(c *Cell) float64 {
		e := c.U[4]
		if withPotential {
			e += c.U[0] * g * c.Zc
		}
		return e * vol
	})
	return d.energy
}

// TKE returns the volume-averaged kinetic energy of the fluid cells.
func (d *Domain) TKE() float64 {
	vol := d.dx * d.dy * d.dz
	var volT float64
	ke := d.sumCells(func(c *Cell) float64 {
		u := c.U[1] / c.U[0]
		v := c.U[2] / c.U[0]
		w := c.U[3] / c.U[0]
		return 0.5 * c.U[0] * (u*u + v*v + w*w) * vol
	})
	for i := range d.cells {
		if d.cells[i].Kind != Solid {
			volT += vol
		}
	}
	d.tke = ke / volT
	return d.tke
}

// VelocityStatistics accumulates the velocity components of all fluid cells
// into one incremental statistics collector per direction.
func (d *Domain) VelocityStatistics() (u, v, w stats.Stats) {
	for i := range d.cells {
		c := &d.cells[i]
		if c.Kind == Solid {
			continue
		}
		u.Update(c.U[1] / c.U[0])
		v.Update(c.U[2] / c.U[0])
		w.Update(c.U[3] / c.U[0])
	}
	return u, v, w
}

// sumCells reduces f over the fluid cells with per-worker partial sums.
func (d *Domain) sumCells(f func(c *Cell) float64) float64 {
	nprocs := runtime.GOMAXPROCS(0)
	partial := make([]float64, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			sum := 0.0
			for i := pp; i < len(d.cells); i += nprocs {
				c := &d.cells[i]
				if c.Kind == Solid {
					continue
				}
				sum += f(c)
			}
			partial[pp] = sum
		}(pp)
	}
	wg.Wait()
	total := 0.0
	for _, s := range partial {
		total += s
	}
	return total
}

// WriteTKE returns a function that appends the volume-averaged kinetic
// energy to w on the given cadence, producing a time series of the domain
// turbulence decay.
func WriteTKE(w io.Writer, interval float64) DomainManipulator {
	timeac := 0.0
	return func(d *Domain) error {
		timeac += d.Dt
		if timeac <= interval {
			return nil
		}
		timeac = 0.0
		_, err := fmt.Fprintf(w, "%14.14e %14.14e\n", d.T, d.TKE())
		return err
	}
}
