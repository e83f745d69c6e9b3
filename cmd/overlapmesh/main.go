/*
Copyright © 2013 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command overlapmesh is a demo CLI that runs overlap-mesh construction
// against synthetically generated meshes (no mesh file reader is in scope,
// per the core package's own out-of-scope declaration).
package main

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/overlapmesh"
	"github.com/spatialmodel/overlapmesh/kernel"
)

// cfg holds configuration bound from the command-line flags, following the
// teacher CLI's viper/cobra wiring.
var cfg = viper.New()

var options = []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagset                *pflag.FlagSet
}{
	{
		name:       "verbosity",
		usage:      "verbosity sets how much progress logging generateOverlap emits (0, 1, or 2).",
		shorthand:  "v",
		defaultVal: 0,
		flagset:    root.PersistentFlags(),
	},
	{
		name:       "kernel",
		usage:      "kernel selects the geometric kernel: \"fuzzy\" or \"exact\".",
		defaultVal: "fuzzy",
		flagset:    root.PersistentFlags(),
	},
	{
		name:       "tolerance",
		usage:      "tolerance is the fuzzy kernel's node-equality tolerance; the exact kernel uses it for the checks it delegates to the fuzzy kernel.",
		defaultVal: kernel.DefaultTolerance,
		flagset:    root.PersistentFlags(),
	},
	{
		name:       "dedup",
		usage:      "dedup selects the post-assembly node merge strategy: \"retain-all\", \"hashed-grid\", or \"sorted-multimap\".",
		defaultVal: "retain-all",
		flagset:    root.PersistentFlags(),
	},
}

func init() {
	for _, o := range options {
		switch v := o.defaultVal.(type) {
		case int:
			o.flagset.IntP(o.name, o.shorthand, v, o.usage)
		case float64:
			o.flagset.Float64P(o.name, o.shorthand, v, o.usage)
		case string:
			o.flagset.StringP(o.name, o.shorthand, v, o.usage)
		}
		cfg.BindPFlag(o.name, o.flagset.Lookup(o.name))
	}

	root.AddCommand(identicalCmd, refineCmd, rotatedCmd)
}

var root = &cobra.Command{
	Use:   "overlapmesh",
	Short: "Build an overlap mesh from two synthetically generated spherical meshes.",
	Long: `overlapmesh runs the overlap-mesh construction core against one of a few
built-in synthetic mesh pairs and prints the resulting node and face counts.
Refer to https://github.com/spf13/viper for configuration-binding details.`,
	DisableAutoGenTag: true,
}

var identicalCmd = &cobra.Command{
	Use:   "identical",
	Short: "Overlay a cube mesh with itself.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := overlapmesh.CubeMesh()
		return run(f, overlapmesh.CubeMesh())
	},
}

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Overlay a cube mesh with its quadrisected refinement.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(overlapmesh.CubeMesh(), overlapmesh.QuadrisectedCubeMesh())
	},
}

var rotatedCmd = &cobra.Command{
	Use:   "rotated",
	Short: "Overlay a 4x2 lat-lon grid with a copy rotated 45 degrees about the z-axis.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(overlapmesh.LatLonGridMesh(4, 2, 0), overlapmesh.LatLonGridMesh(4, 2, 45))
	},
}

func run(first, second *overlapmesh.Mesh) error {
	k, err := selectKernel()
	if err != nil {
		return err
	}
	dedup, err := selectDedup()
	if err != nil {
		return err
	}

	o, err := overlapmesh.GenerateOverlap(first, second, overlapmesh.Options{
		Kernel:    k,
		Verbosity: cfg.GetInt("verbosity"),
		Dedup:     dedup,
	})
	if err != nil {
		return err
	}

	fmt.Printf("overlap mesh: %d nodes, %d faces\n", len(o.Nodes), len(o.Faces))
	return nil
}

func selectKernel() (kernel.Kernel, error) {
	switch cfg.GetString("kernel") {
	case "fuzzy", "":
		return kernel.NewFuzzy(cfg.GetFloat64("tolerance")), nil
	case "exact":
		return kernel.NewExact(cfg.GetFloat64("tolerance")), nil
	default:
		return nil, fmt.Errorf("overlapmesh: unknown kernel %q (want \"fuzzy\" or \"exact\")", cfg.GetString("kernel"))
	}
}

func selectDedup() (overlapmesh.DedupStrategy, error) {
	switch cfg.GetString("dedup") {
	case "retain-all", "":
		return overlapmesh.DedupRetainAll, nil
	case "hashed-grid":
		return overlapmesh.DedupHashedGrid, nil
	case "sorted-multimap":
		return overlapmesh.DedupSortedMultimap, nil
	default:
		return 0, fmt.Errorf("overlapmesh: unknown dedup strategy %q", cfg.GetString("dedup"))
	}
}

func main() {
	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
