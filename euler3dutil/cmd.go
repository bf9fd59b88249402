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

package euler3dutil

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/ctessum/sparse"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/euler3d"
	"github.com/spf13/cobra"
)

// Cfg holds the command-line configuration.
type Cfg struct {
	*viper.Viper

	Root, versionCmd, runCmd *cobra.Command
}

// InitializeConfig creates the command tree and binds its flags.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
	}

	cfg.Root = &cobra.Command{
		Use:   "euler3d",
		Short: "A compressible-flow solver on structured Cartesian grids.",
		Long: `euler3d solves the three-dimensional Euler equations with high-order
WENO/TENO reconstruction, approximate Riemann solvers, optional
well-balanced gravity and immersed solid boundaries.

Configuration is read from a TOML case file (--config); individual
settings can be overridden through environment variables in the format
'EULER3D_var'.`,
		DisableAutoGenTag: true,
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("euler3d v%s\n", euler3d.Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a simulation case.",
		Long: `run executes the simulation described by the case file and writes the
gridded results to the output file in gob format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cfg.GetString("config"), cfg.GetString("output"),
				cfg.GetInt("nprocs"))
		},
		DisableAutoGenTag: true,
	}

	cfg.Root.PersistentFlags().String("config", "case.toml", "path to the TOML case file")
	cfg.Root.PersistentFlags().String("output", "results.gob", "path to the gob results file")
	cfg.Root.PersistentFlags().Int("nprocs", 0, "number of processors to use (0 = all)")
	cfg.BindPFlags(cfg.Root.PersistentFlags())
	cfg.SetEnvPrefix("EULER3D")
	cfg.AutomaticEnv()

	cfg.Root.AddCommand(cfg.versionCmd, cfg.runCmd)
	return cfg
}

// Run executes the case described by the configuration file and saves the
// results.
func Run(caseFile, outputFile string, nprocs int) error {
	if nprocs > 0 {
		runtime.GOMAXPROCS(nprocs)
	}

	log.Println("Reading case description...")
	cf, err := ReadCaseFile(caseFile)
	if err != nil {
		return err
	}
	cfg, err := cf.Config()
	if err != nil {
		return err
	}
	initialState, err := cf.BuildInitialState(cfg)
	if err != nil {
		return err
	}

	d, err := euler3d.NewDomain(cfg)
	if err != nil {
		return err
	}
	d.InitFuncs = []euler3d.DomainManipulator{
		euler3d.BuildMesh(),
		euler3d.ClassifyCells(),
		euler3d.AssignStencils(),
		euler3d.ClassifyWalls(),
		initialState,
		euler3d.AssignImagePoints(),
		euler3d.RepairGhostCells(),
		euler3d.DeactivateInteriorWalls(),
		euler3d.ReconstructEquilibrium(),
	}
	d.RunFuncs = []euler3d.DomainManipulator{
		euler3d.AdvanceTimestep(),
		euler3d.CheckFinished(),
		euler3d.Log(os.Stdout),
	}

	log.Println("Initializing model...")
	if err := d.Init(); err != nil {
		return err
	}
	log.Println("Starting the time loop...")
	if err := d.Run(); err != nil {
		return err
	}
	if err := d.Cleanup(); err != nil {
		return err
	}

	log.Println("Writing results...")
	results, err := d.Results()
	if err != nil {
		return err
	}
	return SaveResults(outputFile, results)
}

// SaveResults writes the gridded results to path in gob format.
func SaveResults(path string, results map[string]*sparse.DenseArray) error {
	f, err := os.Create(os.ExpandEnv(path))
	if err != nil {
		return fmt.Errorf("euler3dutil: creating results file: %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(results); err != nil {
		return fmt.Errorf("euler3dutil: encoding results: %v", err)
	}
	return nil
}

// LoadResults reads results previously written by SaveResults.
func LoadResults(path string) (map[string]*sparse.DenseArray, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("euler3dutil: opening results file: %v", err)
	}
	defer f.Close()
	var results map[string]*sparse.DenseArray
	if err := gob.NewDecoder(f).Decode(&results); err != nil {
		return nil, fmt.Errorf("euler3dutil: decoding results: %v", err)
	}
	for _, a := range results {
		a.Fix()
	}
	return results, nil
}
