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

	"github.com/spatialmodel/euler3d/reconstruct"
)

// NVar is the number of conserved variables carried per cell:
// ρ, ρu, ρv, ρw, E and ρφ.
const NVar = 6

// State is the conserved-variable vector of one cell or one reconstructed
// interface.
type State [NVar]float64

// Default physical constants.
const (
	DefaultGravity     = 9.8      // m/s²
	DefaultGamma       = 1.4      // ratio of specific heats
	DefaultGasConstant = 287.058  // J/(kg·K)
	DefaultP0          = 1.0e5    // reference pressure [Pa]
)

const tol14 = 1.0e-14

// RiemannSolver selects the approximate Riemann solver applied at inner
// walls.
type RiemannSolver int

const (
	// HLLE is the two-wave Harten–Lax–van Leer–Einfeldt solver.
	HLLE RiemannSolver = iota
	// HLLC adds the contact wave (Toro 2009 star states).
	HLLC
	// HLLS augments the two-wave fan with a source integral and produces
	// distinct left and right wall fluxes; it requires SourceAugmented.
	HLLS
)

func (s RiemannSolver) String() string {
	switch s {
	case HLLE:
		return "HLLE"
	case HLLC:
		return "HLLC"
	case HLLS:
		return "HLLS"
	}
	return "unknown"
}

// SourceMode selects the treatment of the gravitational source term.
type SourceMode int

const (
	// SourceNone switches gravity off.
	SourceNone SourceMode = iota
	// SourceAugmented balances gravity through the HLLS source integral
	// plus the equilibrium correction term.
	SourceAugmented
	// SourcePerturbation subtracts the hydrostatic equilibrium from the
	// density in the momentum source.
	SourcePerturbation
	// SourcePerturbationEnergy is the perturbation form with the
	// gravitational potential included in the total energy, so the energy
	// equation carries no source.
	SourcePerturbationEnergy
)

// MultiGammaMode selects how the passive scalar doubles as an indicator for
// a second species with its own ratio of specific heats.
type MultiGammaMode int

const (
	// MultiGammaOff treats the scalar as inert.
	MultiGammaOff MultiGammaMode = iota
	// MultiGammaDirect stores γ itself in φ.
	MultiGammaDirect
	// MultiGammaRatio stores 1/(γ−1) in φ (Abgrall & Karni 2001); this is
	// the recommended formulation.
	MultiGammaRatio
)

// BC is a per-face boundary condition code.
type BC int

const (
	// BCPeriodic wraps the face to the opposite face.
	BCPeriodic BC = 1
	// BCDirichlet imposes user-supplied cell averages next to the face.
	BCDirichlet BC = 2
	// BCTransmissive copies the inner flux to the face.
	BCTransmissive BC = 3
	// BCSolidWall mirrors the inner state across the face.
	BCSolidWall BC = 4
)

// Face identifiers, numbered as in the configuration file.
const (
	FaceYMin = iota // face 1: −y
	FaceXMax        // face 2: +x
	FaceYMax        // face 3: +y
	FaceXMin        // face 4: −x
	FaceZMin        // face 5: −z
	FaceZMax        // face 6: +z
)

// Config holds the solver selection flags and physical constants that the C
// ancestry of this scheme fixed at compile time. It is threaded through the
// core as an immutable value; inner loops dispatch on it once per sub-step.
type Config struct {
	// TFinal is the simulation end time and TOut the output cadence [s].
	TFinal, TOut float64
	// CFL bounds the time step [-].
	CFL float64
	// Order is the requested reconstruction order: 1, 3, 5 or 7.
	Order int

	// Grid size.
	XCells, YCells, ZCells int
	Lx, Ly, Lz             float64

	// BC holds one boundary code per face in the order
	// −y, +x, +y, −x, −z, +z.
	BC [6]BC

	Scheme     reconstruct.Scheme
	Solver     RiemannSolver
	Source     SourceMode
	MultiGamma MultiGammaMode

	// TransportVelocity is the uniform advection velocity used by the
	// linear-transport initial states.
	TransportVelocity [3]float64

	// STol is the ghost-layer tolerance in cell widths (2 gives two ghost
	// layers).
	STol float64

	// Physical constants; zero values take the package defaults.
	Gravity     float64
	Gamma       float64
	GasConstant float64
	P0          float64
}

func (c *Config) setDefaults() {
	if c.Gravity == 0 {
		c.Gravity = DefaultGravity
	}
	if c.Gamma == 0 {
		c.Gamma = DefaultGamma
	}
	if c.GasConstant == 0 {
		c.GasConstant = DefaultGasConstant
	}
	if c.P0 == 0 {
		c.P0 = DefaultP0
	}
	if c.STol == 0 {
		c.STol = 2.0
	}
}

// Validate reports configuration combinations that cannot be run. It is
// fatal at startup; the time loop performs no further configuration checks.
func (c *Config) Validate() error {
	switch c.Order {
	case 1, 3, 5, 7:
	default:
		return fmt.Errorf("euler3d: invalid reconstruction order %d; must be 1, 3, 5 or 7", c.Order)
	}
	if c.XCells < 1 || c.YCells < 1 || c.ZCells < 1 {
		return fmt.Errorf("euler3d: invalid grid size %d×%d×%d", c.XCells, c.YCells, c.ZCells)
	}
	if c.Lx <= 0 || c.Ly <= 0 || c.Lz <= 0 {
		return fmt.Errorf("euler3d: invalid domain size %g×%g×%g", c.Lx, c.Ly, c.Lz)
	}
	if c.CFL <= 0 {
		return fmt.Errorf("euler3d: CFL must be positive, got %g", c.CFL)
	}
	if c.Solver == HLLS && c.Source != SourceAugmented {
		return fmt.Errorf("euler3d: the HLLS solver requires the augmented source mode")
	}
	for _, pair := range [3][2]int{
		{FaceXMax, FaceXMin},
		{FaceYMin, FaceYMax},
		{FaceZMin, FaceZMax},
	} {
		a, b := c.BC[pair[0]], c.BC[pair[1]]
		if (a == BCPeriodic) != (b == BCPeriodic) {
			return fmt.Errorf("euler3d: periodic boundaries must be set in pairs; faces %d and %d differ",
				pair[0]+1, pair[1]+1)
		}
	}
	for i, bc := range c.BC {
		if bc < BCPeriodic || bc > BCSolidWall {
			return fmt.Errorf("euler3d: invalid boundary code %d on face %d", bc, i+1)
		}
	}
	return nil
}

// gammaOf recovers the ratio of specific heats from a conserved state in
// multi-component mode, or the configured constant otherwise.
func (c *Config) gammaOf(u *State) float64 {
	switch c.MultiGamma {
	case MultiGammaDirect:
		return u[5] / u[0]
	case MultiGammaRatio:
		return 1.0 + 1.0/(u[5]/u[0])
	}
	return c.Gamma
}

// energyFromPressure converts pressure to total energy. In the total-energy
// convention the gravitational potential is part of E.
func (c *Config) energyFromPressure(gm, p, u, v, w, rho, z float64) float64 {
	e := p/(gm-1.0) + 0.5*rho*(u*u+v*v+w*w)
	if c.Source == SourcePerturbationEnergy {
		e += rho * c.Gravity * z
	}
	return e
}

// pressureFromEnergy is the inverse of energyFromPressure.
func (c *Config) pressureFromEnergy(gm, E, u, v, w, rho, z float64) float64 {
	p := (gm - 1.0) * (E - 0.5*rho*(u*u+v*v+w*w))
	if c.Source == SourcePerturbationEnergy {
		p -= (gm - 1.0) * rho * c.Gravity * z
	}
	return p
}
