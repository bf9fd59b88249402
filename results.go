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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/sparse"
)

// OutputVariables lists the variable names Results accepts.
var OutputVariables = []string{
	"rho", "u", "v", "w", "energy", "pressure", "overpressure",
	"theta", "scalar", "tke",
}

// Results collects the named variables into one dense gridded array per
// variable, shaped (zcells, ycells, xcells). Solid cells hold zero. With no
// arguments, all output variables are returned.
func (d *Domain) Results(vars ...string) (map[string]*sparse.DenseArray, error) {
	if len(vars) == 0 {
		vars = OutputVariables
	}
	cfg := &d.Config
	out := make(map[string]*sparse.DenseArray)
	for _, name := range vars {
		arr := sparse.ZerosDense(cfg.ZCells, cfg.YCells, cfg.XCells)
		for i := range d.cells {
			c := &d.cells[i]
			if c.Kind == Solid {
				continue
			}
			v, err := d.cellValue(c, name)
			if err != nil {
				return nil, err
			}
			arr.Set(v, c.N, c.M, c.L)
		}
		out[name] = arr
	}
	return out, nil
}

// cellValue derives one named scalar from a cell's conserved state.
func (d *Domain) cellValue(c *Cell, name string) (float64, error) {
	cfg := &d.Config
	rho := c.U[0]
	u := c.U[1] / rho
	v := c.U[2] / rho
	w := c.U[3] / rho
	switch name {
	case "rho":
		return rho, nil
	case "u":
		return u, nil
	case "v":
		return v, nil
	case "w":
		return w, nil
	case "energy":
		return c.U[4], nil
	case "scalar":
		return c.U[5] / rho, nil
	case "tke":
		return 0.5 * rho * (u*u + v*v + w*w), nil
	}

	gm := cfg.gammaOf(&c.U)
	p := cfg.pressureFromEnergy(gm, c.U[4], u, v, w, rho, c.Zc)
	switch name {
	case "pressure":
		return p, nil
	case "overpressure":
		return p - c.Pe, nil
	case "theta":
		// Potential temperature from the Exner function.
		t := p / (cfg.GasConstant * rho)
		return t * math.Pow(p/cfg.P0, -(gm-1.0)/gm), nil
	}
	return 0, fmt.Errorf("euler3d: unknown output variable %q", name)
}

// GetGeometry returns the cell footprint polygons of the given vertical
// layer, for use by the output writers.
func (d *Domain) GetGeometry(layer int) []geom.Polygonal {
	cfg := &d.Config
	o := make([]geom.Polygonal, 0, cfg.XCells*cfg.YCells)
	for m := 0; m < cfg.YCells; m++ {
		for l := 0; l < cfg.XCells; l++ {
			c := d.CellAt(l, m, layer)
			x0, y0 := c.Xc-0.5*c.Dx, c.Yc-0.5*c.Dy
			x1, y1 := c.Xc+0.5*c.Dx, c.Yc+0.5*c.Dy
			o = append(o, geom.Polygon{{
				{X: x0, Y: y0},
				{X: x1, Y: y0},
				{X: x1, Y: y1},
				{X: x0, Y: y1},
				{X: x0, Y: y0},
			}})
		}
	}
	return o
}

// cellRef adapts a cell footprint to the spatial index. The embedded Polygon
// supplies the full geom.Geom implementation required by the rtree.
type cellRef struct {
	cell *Cell
	geom.Polygon
}

func (d *Domain) buildCellIndex() {
	d.index = rtree.NewTree(25, 50)
	for i := range d.cells {
		c := &d.cells[i]
		x0, y0 := c.Xc-0.5*c.Dx, c.Yc-0.5*c.Dy
		x1, y1 := c.Xc+0.5*c.Dx, c.Yc+0.5*c.Dy
		d.index.Insert(&cellRef{
			cell: c,
			Polygon: geom.Polygon{{
				{X: x0, Y: y0},
				{X: x1, Y: y0},
				{X: x1, Y: y1},
				{X: x0, Y: y1},
				{X: x0, Y: y0},
			}},
		})
	}
}

// CellsIntersecting returns the cells whose horizontal footprint overlaps
// the given bounds, across all vertical layers. Output writers use it to
// sample probe regions.
func (d *Domain) CellsIntersecting(b *geom.Bounds) []*Cell {
	var cells []*Cell
	for _, item := range d.index.SearchIntersect(b) {
		cells = append(cells, item.(*cellRef).cell)
	}
	return cells
}
