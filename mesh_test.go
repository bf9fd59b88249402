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

func different(a, b, tol float64) bool {
	return math.Abs(a-b) > tol
}

func testConfig(x, y, z int, bc BC) Config {
	return Config{
		TFinal: 1.0, TOut: 1.0, CFL: 0.8, Order: 3,
		XCells: x, YCells: y, ZCells: z,
		Lx: 1.0, Ly: 1.0, Lz: 1.0,
		BC: [6]BC{bc, bc, bc, bc, bc, bc},
	}
}

func buildDomain(t *testing.T, cfg Config, init ...DomainManipulator) *Domain {
	return buildDomainWithSolids(t, cfg, nil, init...)
}

func buildDomainWithSolids(t *testing.T, cfg Config, solids []*SolidBody, init ...DomainManipulator) *Domain {
	t.Helper()
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	d.InitFuncs = append([]DomainManipulator{
		BuildMesh(),
		AddSolids(solids...),
		ClassifyCells(),
		AssignStencils(),
		ClassifyWalls(),
	}, init...)
	d.InitFuncs = append(d.InitFuncs,
		AssignImagePoints(),
		RepairGhostCells(),
		DeactivateInteriorWalls(),
		ReconstructEquilibrium(),
	)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	return d
}

// Tests whether the cells and walls correctly reference each other.
func TestCellWallAlignment(t *testing.T) {
	d, err := NewDomain(testConfig(4, 3, 2, BCPeriodic))
	if err != nil {
		t.Fatal(err)
	}
	d.InitFuncs = []DomainManipulator{BuildMesh(), ClassifyCells(), AssignStencils(), ClassifyWalls()}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}

	wantWalls := 3*4*3*2 + 4*2 + 3*2 + 4*3
	if d.NWalls() != wantWalls {
		t.Fatalf("wall count: got %d, want %d", d.NWalls(), wantWalls)
	}
	if got := len(d.Nodes()); got != 5*4*3 {
		t.Fatalf("node count: got %d, want %d", got, 5*4*3)
	}

	for i := range d.cells {
		c := &d.cells[i]
		if got := d.wall(c, wallXPlus).CellL; got != c.ID {
			t.Fatalf("cell %d: +x wall cellL = %d", c.ID, got)
		}
		if got := d.wall(c, wallXMinus).CellR; got != c.ID {
			t.Fatalf("cell %d: -x wall cellR = %d", c.ID, got)
		}
		if got := d.wall(c, wallYPlus).CellL; got != c.ID {
			t.Fatalf("cell %d: +y wall cellL = %d", c.ID, got)
		}
		if got := d.wall(c, wallYMinus).CellR; got != c.ID {
			t.Fatalf("cell %d: -y wall cellR = %d", c.ID, got)
		}
		if got := d.wall(c, wallZPlus).CellL; got != c.ID {
			t.Fatalf("cell %d: +z wall cellL = %d", c.ID, got)
		}
		if got := d.wall(c, wallZMinus).CellR; got != c.ID {
			t.Fatalf("cell %d: -z wall cellR = %d", c.ID, got)
		}

		// Shared walls: inside the mesh this cell's +x wall is the next
		// cell's -x wall. Every domain face has its own wall, so on the last
		// cell of a line the +face wall reaches the wrapped neighbor only
		// through its CellR.
		next := d.CellAt((c.L+1)%4, c.M, c.N)
		if c.L < 3 && c.W[wallXPlus] != next.W[wallXMinus] {
			t.Fatalf("cell %d: +x wall %d is not cell %d's -x wall %d",
				c.ID, c.W[wallXPlus], next.ID, next.W[wallXMinus])
		}
		if got := d.wall(c, wallXPlus).CellR; got != next.ID {
			t.Fatalf("cell %d: +x wall cellR = %d, want %d", c.ID, got, next.ID)
		}
		next = d.CellAt(c.L, (c.M+1)%3, c.N)
		if c.M < 2 && c.W[wallYPlus] != next.W[wallYMinus] {
			t.Fatalf("cell %d: +y wall mismatch", c.ID)
		}
		if got := d.wall(c, wallYPlus).CellR; got != next.ID {
			t.Fatalf("cell %d: +y wall cellR = %d, want %d", c.ID, got, next.ID)
		}
		next = d.CellAt(c.L, c.M, (c.N+1)%2)
		if c.N < 1 && c.W[wallZPlus] != next.W[wallZMinus] {
			t.Fatalf("cell %d: +z wall mismatch", c.ID)
		}
		if got := d.wall(c, wallZPlus).CellR; got != next.ID {
			t.Fatalf("cell %d: +z wall cellR = %d, want %d", c.ID, got, next.ID)
		}
	}

	// Interior walls are referenced by two cell faces and domain-face walls
	// by one: 3·6 + 2·8 + 1·12 = 46 shared walls among the 98.
	refs := make([]int, d.NWalls())
	for i := range d.cells {
		for _, w := range d.cells[i].W {
			refs[w]++
		}
	}
	shared := 0
	for w, n := range refs {
		if n != 1 && n != 2 {
			t.Fatalf("wall %d referenced %d times", w, n)
		}
		if n == 2 {
			shared++
		}
	}
	if shared != 46 {
		t.Fatalf("%d walls shared by two cells, want 46", shared)
	}
}

func TestWallOrientationAndHeight(t *testing.T) {
	d, err := NewDomain(testConfig(3, 3, 3, BCTransmissive))
	if err != nil {
		t.Fatal(err)
	}
	d.InitFuncs = []DomainManipulator{BuildMesh(), ClassifyCells(), AssignStencils(), ClassifyWalls()}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	c := d.CellAt(1, 1, 1)
	if d.wall(c, wallXPlus).Axis != AxisX || d.wall(c, wallYPlus).Axis != AxisY ||
		d.wall(c, wallZPlus).Axis != AxisZ {
		t.Fatal("wall axes are wrong")
	}
	if different(d.wall(c, wallZMinus).Z, c.Zc-0.5*c.Dz, 1e-14) {
		t.Fatal("-z wall height is wrong")
	}
	if different(d.wall(c, wallZPlus).Z, c.Zc+0.5*c.Dz, 1e-14) {
		t.Fatal("+z wall height is wrong")
	}
	if different(d.wall(c, wallXPlus).Z, c.Zc, 1e-14) {
		t.Fatal("x wall height is wrong")
	}
}

func TestStencilsPeriodic(t *testing.T) {
	cfg := testConfig(8, 8, 8, BCPeriodic)
	cfg.Order = 5
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	d.InitFuncs = []DomainManipulator{BuildMesh(), ClassifyCells(), AssignStencils(), ClassifyWalls()}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	c := d.CellAt(0, 4, 4)
	if c.StSizeX != 5 {
		t.Fatalf("periodic stencil size: got %d, want 5", c.StSizeX)
	}
	want := []int{6, 7, 0, 1, 2}
	for p, l := range want {
		if c.StX[p] != d.cellIndex(l, 4, 4) {
			t.Fatalf("wrapped stencil entry %d: got cell %d, want cell %d",
				p, c.StX[p], d.cellIndex(l, 4, 4))
		}
	}
}

func TestStencilsClampedAtBoundary(t *testing.T) {
	cfg := testConfig(8, 8, 8, BCTransmissive)
	cfg.Order = 7
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	d.InitFuncs = []DomainManipulator{BuildMesh(), ClassifyCells(), AssignStencils(), ClassifyWalls()}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	for l, want := range map[int]int{0: 1, 1: 3, 2: 5, 3: 7, 4: 7, 6: 3, 7: 1} {
		if got := d.CellAt(l, 4, 4).StSizeX; got != want {
			t.Errorf("cell l=%d: stencil size %d, want %d", l, got, want)
		}
	}
}

func TestPeriodicDowngradeWarning(t *testing.T) {
	cfg := testConfig(2, 8, 8, BCPeriodic)
	cfg.Order = 5
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	d.InitFuncs = []DomainManipulator{BuildMesh(), ClassifyCells(), AssignStencils(), ClassifyWalls()}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if d.Config.BC[FaceXMax] != BCTransmissive || d.Config.BC[FaceXMin] != BCTransmissive {
		t.Error("x axis was not downgraded to transmissive")
	}
	if d.periodicX {
		t.Error("x axis still flagged periodic")
	}
	if !d.periodicY || !d.periodicZ {
		t.Error("y and z axes must remain periodic")
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := testConfig(4, 4, 4, BCTransmissive)
	cfg.Solver = HLLS
	if _, err := NewDomain(cfg); err == nil {
		t.Error("HLLS without the augmented source mode must be rejected")
	}

	cfg = testConfig(4, 4, 4, BCTransmissive)
	cfg.BC[FaceXMax] = BCPeriodic
	if _, err := NewDomain(cfg); err == nil {
		t.Error("half-periodic axis must be rejected")
	}

	cfg = testConfig(4, 4, 4, BCTransmissive)
	cfg.Order = 4
	if _, err := NewDomain(cfg); err == nil {
		t.Error("even order must be rejected")
	}

	cfg = testConfig(4, 4, 4, BCTransmissive)
	cfg.Scheme = reconstruct.TENO
	if _, err := NewDomain(cfg); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
}

func TestGammaRecovery(t *testing.T) {
	cfg := testConfig(2, 2, 2, BCTransmissive)
	cfg.setDefaults()

	u := State{2, 0, 0, 0, 10, 2 * 1.6}
	cfg.MultiGamma = MultiGammaDirect
	if got := cfg.gammaOf(&u); different(got, 1.6, 1e-14) {
		t.Errorf("direct gamma: got %g", got)
	}
	u[5] = 2 * (1.0 / 0.6)
	cfg.MultiGamma = MultiGammaRatio
	if got := cfg.gammaOf(&u); different(got, 1.6, 1e-12) {
		t.Errorf("ratio gamma: got %g", got)
	}
	cfg.MultiGamma = MultiGammaOff
	if got := cfg.gammaOf(&u); got != cfg.Gamma {
		t.Errorf("constant gamma: got %g", got)
	}
}

func TestPressureEnergyRoundTrip(t *testing.T) {
	for _, src := range []SourceMode{SourceNone, SourceAugmented, SourcePerturbation, SourcePerturbationEnergy} {
		cfg := testConfig(2, 2, 2, BCTransmissive)
		cfg.Source = src
		cfg.setDefaults()
		const (
			p, u, v, w, rho, z = 87315.2, 3.5, -1.25, 0.75, 1.05, 1250.0
		)
		e := cfg.energyFromPressure(cfg.Gamma, p, u, v, w, rho, z)
		back := cfg.pressureFromEnergy(cfg.Gamma, e, u, v, w, rho, z)
		if different(back, p, 1e-6) {
			t.Errorf("source mode %d: pressure round trip %g != %g", src, back, p)
		}
	}
}
