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

// Package euler3dutil provides configuration parsing and the command-line
// interface for the euler3d solver.
package euler3dutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/euler3d"
	"github.com/spatialmodel/euler3d/reconstruct"
	"github.com/spf13/cast"
)

// CaseFile mirrors the TOML layout of a simulation case description.
type CaseFile struct {
	Simulation struct {
		TFinal float64 `toml:"tf"`
		TOut   float64 `toml:"tVolc"`
		CFL    float64 `toml:"CFL"`
		Order  int     `toml:"order"`
	} `toml:"simulation"`

	Mesh struct {
		XCells, YCells, ZCells int
		Lx, Ly, Lz             float64

		// Boundaries holds one code per face in the order −y, +x, +y, −x,
		// −z, +z: 1=periodic, 2=user, 3=transmissive, 4=solid wall.
		Boundaries [6]int `toml:"boundaries"`
	} `toml:"mesh"`

	Solver struct {
		Scheme     string `toml:"scheme"`     // WENO, TENO or UWC
		Riemann    string `toml:"riemann"`    // HLLE, HLLC or HLLS
		Source     int    `toml:"source"`     // 0..3
		MultiGamma int    `toml:"multigamma"` // 0..2
	} `toml:"solver"`

	Transport struct {
		Ux, Uy, Uz float64
	} `toml:"transport"`

	InitialState string `toml:"initialState"`
}

// ReadCaseFile loads a TOML case description, expanding environment
// variables in the path.
func ReadCaseFile(path string) (*CaseFile, error) {
	path = os.ExpandEnv(path)
	cf := new(CaseFile)
	if _, err := toml.DecodeFile(path, cf); err != nil {
		return nil, fmt.Errorf("euler3dutil: parsing case file %s: %v", path, err)
	}
	return cf, nil
}

// Config converts a case description into a solver configuration.
func (cf *CaseFile) Config() (euler3d.Config, error) {
	var cfg euler3d.Config
	cfg.TFinal = cf.Simulation.TFinal
	cfg.TOut = cf.Simulation.TOut
	cfg.CFL = cf.Simulation.CFL
	cfg.Order = cf.Simulation.Order
	cfg.XCells = cf.Mesh.XCells
	cfg.YCells = cf.Mesh.YCells
	cfg.ZCells = cf.Mesh.ZCells
	cfg.Lx, cfg.Ly, cfg.Lz = cf.Mesh.Lx, cf.Mesh.Ly, cf.Mesh.Lz
	for i, bc := range cf.Mesh.Boundaries {
		cfg.BC[i] = euler3d.BC(bc)
	}
	scheme, err := ParseScheme(cf.Solver.Scheme)
	if err != nil {
		return cfg, err
	}
	cfg.Scheme = scheme
	solver, err := ParseSolver(cf.Solver.Riemann)
	if err != nil {
		return cfg, err
	}
	cfg.Solver = solver
	cfg.Source = euler3d.SourceMode(cf.Solver.Source)
	cfg.MultiGamma = euler3d.MultiGammaMode(cf.Solver.MultiGamma)
	cfg.TransportVelocity = [3]float64{cf.Transport.Ux, cf.Transport.Uy, cf.Transport.Uz}
	return cfg, cfg.Validate()
}

// ParseScheme converts a reconstruction scheme name to its flag.
func ParseScheme(name string) (reconstruct.Scheme, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "WENO":
		return reconstruct.WENO, nil
	case "TENO":
		return reconstruct.TENO, nil
	case "UWC":
		return reconstruct.UWC, nil
	}
	return 0, fmt.Errorf("euler3dutil: unknown reconstruction scheme %q", name)
}

// ParseSolver converts a Riemann solver name to its flag.
func ParseSolver(name string) (euler3d.RiemannSolver, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "HLLE":
		return euler3d.HLLE, nil
	case "HLLC":
		return euler3d.HLLC, nil
	case "HLLS":
		return euler3d.HLLS, nil
	}
	return 0, fmt.Errorf("euler3dutil: unknown Riemann solver %q", name)
}

// BuildInitialState builds the initial-state manipulator named by the case
// file. The recognized names correspond to the built-in cases; the empty
// name leaves initialization to the caller.
func (cf *CaseFile) BuildInitialState(cfg euler3d.Config) (euler3d.DomainManipulator, error) {
	name, args := splitStateName(cf.InitialState)
	switch name {
	case "":
		return func(*euler3d.Domain) error { return nil }, nil
	case "sod":
		return euler3d.SodShockTube(), nil
	case "densityWave":
		amplitude := 0.5
		if len(args) > 0 {
			amplitude = cast.ToFloat64(args[0])
		}
		return euler3d.DensityWave(amplitude), nil
	case "isothermalAtmosphere":
		t0 := 300.0
		if len(args) > 0 {
			t0 = cast.ToFloat64(args[0])
		}
		return euler3d.HydrostaticEquilibrium(cfg.IsothermalColumn(t0)), nil
	case "adiabaticAtmosphere":
		t0 := 300.0
		if len(args) > 0 {
			t0 = cast.ToFloat64(args[0])
		}
		return euler3d.HydrostaticEquilibrium(cfg.AdiabaticColumn(t0)), nil
	case "warmBubble":
		if len(args) != 5 {
			return nil, fmt.Errorf("euler3dutil: warmBubble takes t0, xc, zc, r, dTheta")
		}
		return euler3d.WarmBubble(
			cast.ToFloat64(args[0]), cast.ToFloat64(args[1]),
			cast.ToFloat64(args[2]), cast.ToFloat64(args[3]),
			cast.ToFloat64(args[4])), nil
	}
	return nil, fmt.Errorf("euler3dutil: unknown initial state %q", name)
}

func splitStateName(s string) (string, []string) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
