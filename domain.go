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

// Package euler3d is a three-dimensional compressible-flow solver on a
// structured Cartesian grid. It evolves the Euler equations, optionally with
// a gravitational source term, passive-scalar transport and a second species
// with its own ratio of specific heats, in finite-volume form using
// high-order WENO/TENO/UWC reconstruction and approximate Riemann solvers,
// with an immersed-boundary ghost-cell treatment for solid geometries
// supplied as triangulated surfaces.
package euler3d

import (
	"fmt"
	"io"
	"time"

	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/unit"
)

// Version gives the version number.
const Version = "0.3.0-dev"

// Domain holds the current state of the model.
type Domain struct {

	// InitFuncs are functions to be called in the given order
	// at the beginning of the simulation.
	InitFuncs []DomainManipulator

	// RunFuncs are functions to be called in the given order repeatedly
	// until "Done" is true. Therefore, the simulation will not end until
	// one of RunFuncs sets "Done" to true.
	RunFuncs []DomainManipulator

	// CleanupFuncs are functions to be run in the given order after the
	// simulation has completed.
	CleanupFuncs []DomainManipulator

	// Config holds the solver selection and the physical constants. It is
	// set once at creation and treated as immutable afterwards except for
	// the boundary-condition downgrade applied by BuildMesh.
	Config Config

	cells []Cell
	walls []Wall
	nodes []Node

	solids []*SolidBody

	// index is a spatial index of the cell footprints.
	index *rtree.Rtree

	dx, dy, dz float64

	periodicX, periodicY, periodicZ bool

	rkSteps int

	// Done specifies whether the simulation is finished.
	Done bool

	// T is the current simulation time and Dt the current time step [s].
	T, Dt float64

	lambdaMax float64

	mass, energy, tke float64
}

// DomainManipulator is a class of functions that operate on the entire
// model domain.
type DomainManipulator func(d *Domain) error

// CellManipulator is a class of functions that operate on a single grid
// cell, using the given timestep Dt.
type CellManipulator func(c *Cell, Dt float64)

// NewDomain creates a model domain for the given configuration. The
// returned domain has no pipeline; callers append to InitFuncs, RunFuncs
// and CleanupFuncs before calling Init and Run.
func NewDomain(cfg Config) (*Domain, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Domain{Config: cfg}
	if cfg.Order == 1 {
		d.rkSteps = 1
	} else {
		d.rkSteps = 3
	}
	return d, nil
}

// Init initializes the simulation by running d.InitFuncs.
func (d *Domain) Init() error {
	for _, f := range d.InitFuncs {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}

// Run carries out the simulation by running d.RunFuncs until d.Done is true.
func (d *Domain) Run() error {
	for !d.Done {
		for _, f := range d.RunFuncs {
			if err := f(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Cleanup finishes the simulation by running d.CleanupFuncs.
func (d *Domain) Cleanup() error {
	for _, f := range d.CleanupFuncs {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}

// CheckFinished returns a function that sets the Done flag once the
// simulation time has reached the configured final time.
func CheckFinished() DomainManipulator {
	return func(d *Domain) error {
		if d.T >= d.Config.TFinal {
			d.Done = true
		}
		return nil
	}
}

// Log writes simulation status messages to w at every time step, including
// the relative drift of the conserved totals since the start of the run.
func Log(w io.Writer) DomainManipulator {
	startTime := time.Now()
	timeStepTime := time.Now()

	iteration := 0
	var mass0, energy0 float64

	return func(d *Domain) error {
		if iteration == 0 {
			mass0 = d.Mass()
			energy0 = d.Energy()
		}
		iteration++
		mass := unit.New(d.Mass(), unit.Kilogram)
		energy := unit.New(d.Energy(), unit.Joule)
		fmt.Fprintf(w, "Iteration %-4d  walltime=%6.3gh  Δwalltime=%4.2gs  "+
			"timestep=%.3gs  t=%.6g  mass=%v  energy=%v  "+
			"Δm/m0=%.3e  ΔE/E0=%.3e\n",
			iteration, time.Since(startTime).Hours(),
			time.Since(timeStepTime).Seconds(), d.Dt, d.T, mass, energy,
			(mass.Value()-mass0)/mass0, (energy.Value()-energy0)/energy0)
		timeStepTime = time.Now()
		return nil
	}
}

// Output returns a function that calls emit on the cadence configured by
// TOut: once at the start of the run and then every time the accumulated
// time since the previous emission exceeds TOut. It is the hook for the
// external output writers.
func Output(emit func(d *Domain) error) DomainManipulator {
	first := true
	timeac := 0.0
	return func(d *Domain) error {
		if first {
			first = false
			return emit(d)
		}
		timeac += d.Dt
		if timeac > d.Config.TOut || d.Done {
			timeac = 0.0
			return emit(d)
		}
		return nil
	}
}
