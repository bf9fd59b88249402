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
	"bytes"
	"strings"
	"testing"
)

func TestDiagnosticsUniformState(t *testing.T) {
	cfg := testConfig(4, 4, 4, BCTransmissive)
	d := buildDomain(t, cfg, InitialConditions(func(x, y, z float64) PrimitiveState {
		return PrimitiveState{Rho: 2.0, U: 3.0, V: 0, W: -4.0, P: 1.0}
	}))

	if got := d.Mass(); different(got, 2.0, 1e-12) {
		t.Errorf("mass: got %g, want 2", got)
	}
	// tke = ½·ρ·|v|² averaged over the unit volume.
	if got := d.TKE(); different(got, 0.5*2.0*25.0, 1e-10) {
		t.Errorf("tke: got %g, want 25", got)
	}
	e := cfg.energyFromPressure(DefaultGamma, 1.0, 3, 0, -4, 2, 0)
	if got := d.Energy(); different(got, e, 1e-10) {
		t.Errorf("energy: got %g, want %g", got, e)
	}

	u, v, w := d.VelocityStatistics()
	if different(u.Mean(), 3.0, 1e-12) || different(v.Mean(), 0, 1e-12) ||
		different(w.Mean(), -4.0, 1e-12) {
		t.Errorf("velocity means: %g %g %g", u.Mean(), v.Mean(), w.Mean())
	}
	if u.Count() != 64 {
		t.Errorf("statistics over %d cells, want 64", u.Count())
	}
}

// Energy must include the gravitational potential in the source modes whose
// energy variable excludes it.
func TestEnergyIncludesPotential(t *testing.T) {
	cfg := atmosphereConfig(SourcePerturbation, HLLE)
	d := buildDomain(t, cfg, HydrostaticEquilibrium(cfg.IsothermalColumn(300)))
	eWith := d.Energy()

	var eInternal, ePotential float64
	vol := d.dx * d.dy * d.dz
	for i := range d.cells {
		c := &d.cells[i]
		eInternal += c.U[4] * vol
		ePotential += c.U[0] * d.Config.Gravity * c.Zc * vol
	}
	if different(eWith, eInternal+ePotential, 1e-6*eWith) {
		t.Errorf("energy %g does not include the potential %g", eWith, ePotential)
	}
}

func TestLogOutput(t *testing.T) {
	cfg := testConfig(8, 1, 1, BCTransmissive)
	cfg.TFinal = 0.1
	d := buildDomain(t, cfg, InitialConditions(func(x, y, z float64) PrimitiveState {
		return PrimitiveState{Rho: 1, P: 1}
	}))
	var buf bytes.Buffer
	d.RunFuncs = []DomainManipulator{
		AdvanceTimestep(),
		CheckFinished(),
		Log(&buf),
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Iteration") || !strings.Contains(out, "mass=") {
		t.Errorf("log output missing fields:\n%s", out)
	}
	if !strings.Contains(out, "kg") {
		t.Errorf("mass not reported with units:\n%s", out)
	}
}

func TestWriteTKESeries(t *testing.T) {
	cfg := testConfig(8, 1, 1, BCTransmissive)
	cfg.TFinal = 0.2
	d := buildDomain(t, cfg, InitialConditions(func(x, y, z float64) PrimitiveState {
		return PrimitiveState{Rho: 1, U: 0.5, P: 1}
	}))
	var buf bytes.Buffer
	d.RunFuncs = []DomainManipulator{
		AdvanceTimestep(),
		CheckFinished(),
		WriteTKE(&buf, 0.01),
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("tke series has %d lines", len(lines))
	}
	for _, l := range lines {
		if len(strings.Fields(l)) != 2 {
			t.Errorf("malformed tke line %q", l)
		}
	}
}
