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
)

// computeSource fills the per-cell gravity source for the configured mode.
// Gravity acts in −z, so the source touches the vertical momentum and, in
// the modes whose energy excludes the potential, the energy equation.
func (d *Domain) computeSource() {
	cfg := &d.Config
	g := cfg.Gravity
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for i := pp; i < len(d.cells); i += nprocs {
				c := &d.cells[i]
				if c.Kind == Solid {
					continue
				}
				switch cfg.Source {
				case SourceAugmented:
					// Cells whose vertical stencil collapsed to
					// first order have no equilibrium
					// reconstruction to balance against.
					if c.StSizeZ > 1 {
						c.S[3] = -g*c.U[0] + c.SCorr[3]
						c.S[4] = -g * c.U[3]
					}
				case SourcePerturbation:
					c.S[3] = -g * (c.U[0] - c.Ue[0])
					c.S[4] = -g * c.U[3]
				case SourcePerturbationEnergy:
					c.S[3] = -g * (c.U[0] - c.Ue[0])
					c.S[4] = 0.0
				}
			}
		}(pp)
	}
	wg.Wait()
}
