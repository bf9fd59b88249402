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
	"testing"

	"github.com/ctessum/geom"
)

func TestResultsArrays(t *testing.T) {
	cfg := testConfig(4, 3, 2, BCTransmissive)
	d := buildDomain(t, cfg, InitialConditions(func(x, y, z float64) PrimitiveState {
		return PrimitiveState{Rho: 1 + x, U: 2, P: 1, Phi: 0.25}
	}))

	res, err := d.Results("rho", "u", "pressure", "scalar")
	if err != nil {
		t.Fatal(err)
	}
	rho := res["rho"]
	if len(rho.Shape) != 3 || rho.Shape[0] != 2 || rho.Shape[1] != 3 || rho.Shape[2] != 4 {
		t.Fatalf("result shape %v", rho.Shape)
	}
	c := d.CellAt(2, 1, 1)
	if different(rho.Get(1, 1, 2), c.U[0], 1e-14) {
		t.Errorf("rho(1,1,2) = %g, want %g", rho.Get(1, 1, 2), c.U[0])
	}
	if different(res["u"].Get(0, 0, 0), 2.0, 1e-12) {
		t.Errorf("u = %g, want 2", res["u"].Get(0, 0, 0))
	}
	if different(res["scalar"].Get(0, 0, 0), 0.25, 1e-12) {
		t.Errorf("scalar = %g, want 0.25", res["scalar"].Get(0, 0, 0))
	}
	if different(res["pressure"].Get(0, 0, 0), 1.0, 1e-10) {
		t.Errorf("pressure = %g, want 1", res["pressure"].Get(0, 0, 0))
	}

	if _, err := d.Results("vorticity"); err == nil {
		t.Error("unknown variable accepted")
	}
}

// Potential temperature on an adiabatic column is the surface temperature
// everywhere.
func TestPotentialTemperature(t *testing.T) {
	cfg := atmosphereConfig(SourcePerturbation, HLLE)
	d := buildDomain(t, cfg, HydrostaticEquilibrium(cfg.AdiabaticColumn(300)))
	res, err := d.Results("theta")
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < cfg.ZCells; n++ {
		if th := res["theta"].Get(n, 0, 0); different(th, 300, 0.01) {
			t.Fatalf("theta at level %d: got %g, want 300", n, th)
		}
	}
}

func TestGeometryAndIntersections(t *testing.T) {
	cfg := testConfig(4, 4, 2, BCTransmissive)
	d := buildDomain(t, cfg, InitialConditions(func(x, y, z float64) PrimitiveState {
		return PrimitiveState{Rho: 1, P: 1}
	}))

	polys := d.GetGeometry(0)
	if len(polys) != 16 {
		t.Fatalf("got %d footprint polygons, want 16", len(polys))
	}

	// A probe box over the first quadrant must find the cells of both
	// layers there.
	b := &geom.Bounds{Min: geom.Point{X: 0.01, Y: 0.01}, Max: geom.Point{X: 0.49, Y: 0.49}}
	cells := d.CellsIntersecting(b)
	if len(cells) != 2*2*2 {
		t.Errorf("probe found %d cells, want 8", len(cells))
	}
}
