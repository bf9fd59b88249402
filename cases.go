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

import "math"

// PrimitiveState is one point of an initial condition in primitive
// variables.
type PrimitiveState struct {
	Rho, U, V, W, P, Phi float64
}

// conserved converts a primitive state to the conserved vector at height z.
func (c *Config) conserved(s PrimitiveState, z float64) State {
	gm := c.Gamma
	switch c.MultiGamma {
	case MultiGammaDirect:
		gm = s.Phi
	case MultiGammaRatio:
		if s.Phi != 0 {
			gm = 1.0 + 1.0/s.Phi
		}
	}
	var u State
	u[0] = s.Rho
	u[1] = s.U * s.Rho
	u[2] = s.V * s.Rho
	u[3] = s.W * s.Rho
	u[4] = c.energyFromPressure(gm, s.P, s.U, s.V, s.W, s.Rho, z)
	u[5] = s.Phi * s.Rho
	return u
}

// InitialConditions returns a function that sets the initial state of every
// fluid cell from f, evaluated at the cell center. The equilibrium state is
// left untouched; pair it with one of the hydrostatic builders when a
// source mode is active.
func InitialConditions(f func(x, y, z float64) PrimitiveState) DomainManipulator {
	return func(d *Domain) error {
		for i := range d.cells {
			c := &d.cells[i]
			if c.Kind == Solid {
				continue
			}
			c.U = d.Config.conserved(f(c.Xc, c.Yc, c.Zc), c.Zc)
		}
		return nil
	}
}

// HydrostaticEquilibrium returns a function that fills the equilibrium
// state of every fluid cell from a column profile returning pressure and
// density at height z, and starts the solution at rest on that column.
func HydrostaticEquilibrium(profile func(z float64) (p, rho float64)) DomainManipulator {
	return func(d *Domain) error {
		for i := range d.cells {
			c := &d.cells[i]
			if c.Kind == Solid {
				c.Ue = State{}
				c.U = c.Ue
				continue
			}
			p, rho := profile(c.Zc)
			c.Ue = d.Config.conserved(PrimitiveState{Rho: rho, P: p}, c.Zc)
			c.Pe = p
			c.U = c.Ue
		}
		return nil
	}
}

// IsothermalColumn returns the hydrostatic pressure and density profile of
// an isothermal atmosphere at temperature t0.
func (c *Config) IsothermalColumn(t0 float64) func(z float64) (p, rho float64) {
	cc := *c
	cc.setDefaults()
	return func(z float64) (float64, float64) {
		p := cc.P0 * math.Exp(-cc.Gravity*z/(cc.GasConstant*t0))
		return p, p / (cc.GasConstant * t0)
	}
}

// AdiabaticColumn returns the hydrostatic profile of a constant potential
// temperature (neutrally stratified) atmosphere at surface temperature t0.
func (c *Config) AdiabaticColumn(t0 float64) func(z float64) (p, rho float64) {
	cc := *c
	cc.setDefaults()
	return func(z float64) (float64, float64) {
		rho0 := cc.P0 / (cc.GasConstant * t0)
		a := (cc.Gamma - 1.0) / cc.Gamma * cc.Gravity / (cc.GasConstant * t0)
		p := cc.P0 * math.Pow(1.0-a*z, cc.Gamma/(cc.Gamma-1.0))
		rho := rho0 * math.Pow(1.0-a*z, 1.0/(cc.Gamma-1.0))
		return p, rho
	}
}

// WarmBubble returns a function that superimposes a warm-air perturbation
// on an adiabatic hydrostatic column: inside radius r around (xc, zc) the
// potential temperature rises by up to dTheta with a linear taper, which
// lowers the density at unchanged pressure and lets the bubble rise.
func WarmBubble(t0, xc, zc, r, dTheta float64) DomainManipulator {
	return func(d *Domain) error {
		cfg := &d.Config
		if err := HydrostaticEquilibrium(cfg.AdiabaticColumn(t0))(d); err != nil {
			return err
		}
		a := (cfg.Gamma - 1.0) / cfg.Gamma * cfg.Gravity / (cfg.GasConstant * t0)
		for i := range d.cells {
			c := &d.cells[i]
			if c.Kind == Solid {
				continue
			}
			dist := math.Hypot(c.Xc-xc, c.Zc-zc)
			tt := t0 + dTheta*math.Max(r-dist, 0.0)/r
			p := cfg.P0 * math.Pow(1.0-a*c.Zc, cfg.Gamma/(cfg.Gamma-1.0))
			rho := cfg.P0 / (cfg.GasConstant * tt) * math.Pow(1.0-a*c.Zc, 1.0/(cfg.Gamma-1.0))
			c.U = cfg.conserved(PrimitiveState{Rho: rho, P: p}, c.Zc)
		}
		return nil
	}
}

// SodShockTube returns a function that sets the classical Sod shock-tube
// state split at the middle of the x axis: (ρ, p) = (1, 1) on the left and
// (0.125, 0.1) on the right, at rest.
func SodShockTube() DomainManipulator {
	return func(d *Domain) error {
		mid := 0.5 * d.Config.Lx
		return InitialConditions(func(x, y, z float64) PrimitiveState {
			if x < mid {
				return PrimitiveState{Rho: 1.0, P: 1.0}
			}
			return PrimitiveState{Rho: 0.125, P: 0.1}
		})(d)
	}
}

// DensityWave returns a function that sets a smooth density sine wave of
// the given amplitude advected by the configured transport velocity at
// uniform unit pressure. One flow-through period returns the exact initial
// state, which makes it the reference case for order-of-accuracy studies.
func DensityWave(amplitude float64) DomainManipulator {
	return func(d *Domain) error {
		u := d.Config.TransportVelocity
		lx := d.Config.Lx
		return InitialConditions(func(x, y, z float64) PrimitiveState {
			return PrimitiveState{
				Rho: 1.0 + amplitude*math.Sin(2.0*math.Pi*x/lx),
				U:   u[0], V: u[1], W: u[2],
				P: 1.0,
			}
		})(d)
	}
}
