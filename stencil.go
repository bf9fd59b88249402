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

// AssignStencils returns a function that gives every cell its three 1-D
// reconstruction stencils. The stencil size per axis starts from the
// requested order and is clamped near non-periodic boundaries to 2d+1 cells
// (d the distance to the edge) and near immersed solids to 2d−1 cells (d the
// Cartesian distance to the nearest solid cell). Stencil entries wrap around
// on periodic axes.
//
// It must run after the cell classification so the solid distances are
// known.
func AssignStencils() DomainManipulator {
	return func(d *Domain) error {
		cfg := &d.Config
		xcells, ycells, zcells := cfg.XCells, cfg.YCells, cfg.ZCells
		semiSt := (cfg.Order - 1) / 2

		for k := range d.cells {
			c := &d.cells[k]
			c.StSizeX = cfg.Order
			c.StSizeY = cfg.Order
			c.StSizeZ = cfg.Order

			if !d.periodicX {
				if c.L < semiSt {
					c.StSizeX = min(c.StSizeX, 2*c.L+1)
				} else if xcells-(c.L+1) < semiSt {
					c.StSizeX = min(c.StSizeX, 2*(xcells-(c.L+1))+1)
				}
			}
			c.StSizeX = min(c.StSizeX, 2*c.DistSolX-1)
			if !d.periodicY {
				if c.M < semiSt {
					c.StSizeY = min(c.StSizeY, 2*c.M+1)
				} else if ycells-(c.M+1) < semiSt {
					c.StSizeY = min(c.StSizeY, 2*(ycells-(c.M+1))+1)
				}
			}
			c.StSizeY = min(c.StSizeY, 2*c.DistSolY-1)
			if !d.periodicZ {
				if c.N < semiSt {
					c.StSizeZ = min(c.StSizeZ, 2*c.N+1)
				} else if zcells-(c.N+1) < semiSt {
					c.StSizeZ = min(c.StSizeZ, 2*(zcells-(c.N+1))+1)
				}
			}
			c.StSizeZ = min(c.StSizeZ, 2*c.DistSolZ-1)

			for p := range c.StX {
				c.StX[p] = -1
				c.StY[p] = -1
				c.StZ[p] = -1
			}

			for p := 0; p < c.StSizeX; p++ {
				i := c.L - (c.StSizeX-1)/2 + p
				if d.periodicX {
					if i < 0 {
						i += xcells
					}
					if i > xcells-1 {
						i -= xcells
					}
				}
				c.StX[p] = d.cellIndex(i, c.M, c.N)
			}
			for p := 0; p < c.StSizeY; p++ {
				j := c.M - (c.StSizeY-1)/2 + p
				if d.periodicY {
					if j < 0 {
						j += ycells
					}
					if j > ycells-1 {
						j -= ycells
					}
				}
				c.StY[p] = d.cellIndex(c.L, j, c.N)
			}
			for p := 0; p < c.StSizeZ; p++ {
				n := c.N - (c.StSizeZ-1)/2 + p
				if d.periodicZ {
					if n < 0 {
						n += zcells
					}
					if n > zcells-1 {
						n -= zcells
					}
				}
				c.StZ[p] = d.cellIndex(c.L, c.M, n)
			}
		}
		return nil
	}
}
