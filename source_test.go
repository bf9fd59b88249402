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
	"math"
	"testing"

	"github.com/spatialmodel/euler3d/reconstruct"
)

func atmosphereConfig(src SourceMode, solver RiemannSolver) Config {
	return Config{
		TFinal: 1, TOut: 10, CFL: 0.8, Order: 3,
		XCells: 1, YCells: 1, ZCells: 50,
		Lx: 100, Ly: 100, Lz: 5000,
		BC: [6]BC{BCTransmissive, BCTransmissive, BCTransmissive, BCTransmissive,
			BCSolidWall, BCSolidWall},
		Scheme: reconstruct.WENO,
		Solver: solver,
		Source: src,
	}
}

// The perturbation source forms vanish on the equilibrium state and reduce
// to -gρ' off it.
func TestPerturbationSource(t *testing.T) {
	for _, src := range []SourceMode{SourcePerturbation, SourcePerturbationEnergy} {
		cfg := atmosphereConfig(src, HLLE)
		d := buildDomain(t, cfg, HydrostaticEquilibrium(cfg.IsothermalColumn(300)))
		d.computeSource()
		for i := range d.cells {
			c := &d.cells[i]
			if c.S[3] != 0 {
				t.Fatalf("mode %d: nonzero momentum source %g on equilibrium", src, c.S[3])
			}
		}

		c := d.CellAt(0, 0, 25)
		c.U[0] = c.Ue[0] + 0.01
		c.U[3] = 0.5
		d.computeSource()
		g := d.Config.Gravity
		if different(c.S[3], -g*0.01, 1e-12) {
			t.Errorf("mode %d: momentum source %g, want %g", src, c.S[3], -g*0.01)
		}
		wantE := -g * 0.5
		if src == SourcePerturbationEnergy {
			wantE = 0
		}
		if different(c.S[4], wantE, 1e-12) {
			t.Errorf("mode %d: energy source %g, want %g", src, c.S[4], wantE)
		}
	}
}

// The well-balancing correction must cancel -gρe up to the reconstruction
// truncation error: the reconstructed equilibrium pressure gradient is a
// high-order approximation of the hydrostatic balance.
func TestEquilibriumCorrection(t *testing.T) {
	cfg := atmosphereConfig(SourceAugmented, HLLS)
	d := buildDomain(t, cfg, HydrostaticEquilibrium(cfg.IsothermalColumn(300)))

	g := d.Config.Gravity
	for n := 5; n < 45; n++ { // away from the clamped boundary stencils
		c := d.CellAt(0, 0, n)
		scale := g * c.Ue[0]
		if math.Abs(c.SCorr[3]) > 1e-3*scale {
			t.Errorf("cell %d: correction %g not small against gρe=%g", n, c.SCorr[3], scale)
		}
	}

	// The augmented source on the equilibrium state must then cancel
	// against the equilibrium pressure gradient that the HLLS flux pair
	// carries: S[3] = -gρe + SCorr = (pLe(+z) - pRe(-z))/dz.
	d.computeSource()
	c := d.CellAt(0, 0, 25)
	grad := (d.wall(c, wallZPlus).PLe - d.wall(c, wallZMinus).PRe) / c.Dz
	if math.Abs(c.S[3]-grad) > 1e-3*g*c.Ue[0] {
		t.Errorf("augmented source %g does not balance the equilibrium pressure gradient %g", c.S[3], grad)
	}
}

// Augmented sourcing skips cells whose vertical stencil has collapsed to
// first order.
func TestAugmentedSourceSkipsCollapsedStencils(t *testing.T) {
	cfg := atmosphereConfig(SourceAugmented, HLLS)
	d := buildDomain(t, cfg, HydrostaticEquilibrium(cfg.IsothermalColumn(300)))
	d.computeSource()
	bottom := d.CellAt(0, 0, 0) // boundary cell, stencil size 1
	if bottom.StSizeZ != 1 {
		t.Fatalf("bottom stencil size %d", bottom.StSizeZ)
	}
	if bottom.S[3] != 0 || bottom.S[4] != 0 {
		t.Error("collapsed-stencil cell received an augmented source")
	}
}
