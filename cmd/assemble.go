/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gonedelec/InputParameters"
	"github.com/notargets/gonedelec/mesh2D"
	"github.com/notargets/gonedelec/nedelec"
	"github.com/notargets/gonedelec/readfiles"
	"github.com/notargets/gonedelec/solver"
	"github.com/notargets/gonedelec/utils"
)

type ModelNedelec struct {
	GridFile string
	ICFile   string
	Profile  string
	Verbose  bool
}

type Report struct {
	Cells, Edges, BoundaryEdges int
	NNZ                         int
	A                           *utils.SparseMatrix
	B                           *utils.AccumVector
	X                           *mat.VecDense // Nil unless solved
	Iterations                  int
	Residual                    float64
}

// AssembleCmd represents the assemble command
var AssembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the Nedelec edge element system on a 2D triangle mesh",
	Long: `
Assembles the global curl-curl plus mass matrix and load vector of lowest order
Nedelec edge elements. The mesh is read from a Gambit neutral or SU2 file (-F)
or generated on a rectangle. Parameters come from a YAML file (-I), command line flags override them.

gonedelec assemble -F mesh.su2 -I input.yaml --solve`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mn := &ModelNedelec{
			GridFile: viper.GetString("gridFile"),
			ICFile:   viper.GetString("inputConditionsFile"),
			Profile:  viper.GetString("profile"),
			Verbose:  viper.GetBool("verbose"),
		}
		var ip *InputParameters.InputParametersNedelec
		if ip, err = processInput(mn); err != nil {
			return
		}
		switch mn.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile mode [%s], use cpu or mem", mn.Profile)
		}
		level := slog.LevelInfo
		if mn.Verbose {
			level = slog.LevelDebug
			ip.Print(os.Stdout)
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		_, err = RunAssemble(mn, ip, logger, os.Stdout)
		return
	},
}

var overrides = []struct {
	key   string
	apply func(ip *InputParameters.InputParametersNedelec)
}{
	{"nx", func(ip *InputParameters.InputParametersNedelec) { ip.Rectangle.Nx = viper.GetInt("nx") }},
	{"ny", func(ip *InputParameters.InputParametersNedelec) { ip.Rectangle.Ny = viper.GetInt("ny") }},
	{"refine", func(ip *InputParameters.InputParametersNedelec) { ip.Refine = viper.GetInt("refine") }},
	{"quadratureOrder", func(ip *InputParameters.InputParametersNedelec) { ip.QuadratureOrder = viper.GetInt("quadratureOrder") }},
	{"parallelDegree", func(ip *InputParameters.InputParametersNedelec) { ip.ParallelDegree = viper.GetInt("parallelDegree") }},
	{"solve", func(ip *InputParameters.InputParametersNedelec) { ip.Solve = viper.GetBool("solve") }},
	{"method", func(ip *InputParameters.InputParametersNedelec) { ip.Solver.Method = viper.GetString("method") }},
}

func processInput(mn *ModelNedelec) (ip *InputParameters.InputParametersNedelec, err error) {
	ip = InputParameters.NewInputParametersNedelec()
	if len(mn.ICFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(mn.ICFile); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", mn.ICFile, err)
		}
	}
	for _, o := range overrides {
		if viper.IsSet(o.key) {
			o.apply(ip)
		}
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

func init() {
	rootCmd.AddCommand(AssembleCmd)
	flags := AssembleCmd.Flags()
	flags.StringP("gridFile", "F", "", "Grid file in Gambit neutral (.neu) or SU2 (.su2) format, a rectangle is generated when empty")
	flags.StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- QuadratureOrder\n\t- Coefficients\n\t- Solver")
	flags.Int("nx", 4, "number of rectangle divisions along x")
	flags.Int("ny", 4, "number of rectangle divisions along y")
	flags.IntP("refine", "r", 0, "levels of uniform refinement applied to the mesh")
	flags.IntP("quadratureOrder", "q", 2, "order of the triangle quadrature rule, 1 to 5")
	flags.IntP("parallelDegree", "p", 0, "number of concurrent partitions, 0 uses all CPUs")
	flags.BoolP("solve", "s", false, "solve the assembled system")
	flags.String("method", "gmres", "iterative solver: gmres, cg or bicgstab")
	flags.String("profile", "", "write a cpu or mem profile to the current directory")
	flags.BoolP("verbose", "v", false, "print parameters, mesh statistics and debug events")
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// degenerateTol bounds |det Bk| of cells reported as degenerate in verbose mode
const degenerateTol = 1.e-12

// newMesh reads GridFile by its extension, .neu for Gambit neutral and .su2 for
// SU2, or generates the rectangle when GridFile is empty
func newMesh(mn *ModelNedelec, ip *InputParameters.InputParametersNedelec) (m *mesh2D.Mesh, err error) {
	if len(mn.GridFile) != 0 {
		switch ext := strings.ToLower(filepath.Ext(mn.GridFile)); ext {
		case ".neu":
			m, err = readfiles.ReadGambit2D(mn.GridFile, mn.Verbose)
		case ".su2":
			m, err = readfiles.ReadSU2(mn.GridFile, mn.Verbose)
		default:
			err = fmt.Errorf("unknown grid file type [%s], use .neu or .su2", ext)
		}
	} else {
		r := ip.Rectangle
		m, err = mesh2D.NewRectangle(r.Nx, r.Ny, r.XMin[0], r.XMax[0], r.XMin[1], r.XMax[1])
	}
	if err != nil {
		return
	}
	return m.Refine(ip.Refine)
}

// RunAssemble builds the mesh, assembles the global system and optionally solves it
func RunAssemble(mn *ModelNedelec, ip *InputParameters.InputParametersNedelec,
	logger *slog.Logger, out io.Writer) (rep *Report, err error) {
	var (
		inst = nedelec.NewSlogInstrumentation(logger)
		m    *mesh2D.Mesh
		fs   *nedelec.FunctionSpace
	)
	inst.EventBegin(nedelec.EventMeshGeneration)
	if m, err = newMesh(mn, ip); err != nil {
		inst.EventEnd(nedelec.EventMeshGeneration, "error", err)
		return
	}
	inst.EventEnd(nedelec.EventMeshGeneration, "cells", m.NumCells(), "edges", m.NumEdges())
	if mn.Verbose {
		m.PrintStatistics(out)
		if bad := m.DegenerateCells(degenerateTol); len(bad) != 0 {
			logger.Warn("degenerate cells", "count", len(bad), "first", bad[0])
		}
	}
	if fs, err = nedelec.NewFunctionSpace(ip.QuadratureOrder); err != nil {
		return
	}
	rep = &Report{
		Cells:         m.NumCells(),
		Edges:         m.NumEdges(),
		BoundaryEdges: m.NumBoundaryEdges(),
		A:             utils.NewSparseMatrix(m.NumEdges(), m.NumEdges(), "A"),
		B:             utils.NewAccumVector(m.NumEdges(), "b"),
	}
	co := ip.Coefficients
	cfg := nedelec.Config{
		Coefficients: nedelec.Coefficients{
			Stiffness: nedelec.Constant(co.Stiffness),
			Mass:      nedelec.Constant(co.Mass),
			Source:    nedelec.ConstantVector(co.Source),
		},
		ParallelDegree:  ip.ParallelDegree,
		Instrumentation: inst,
	}
	if err = nedelec.Assemble(m, fs, rep.A, rep.B, cfg); err != nil {
		return nil, err
	}
	rep.NNZ = rep.A.NNZ()
	fmt.Fprintf(out, "Assembled %d edges on %d cells, %d non zeros\n", rep.Edges, rep.Cells, rep.NNZ)
	if !ip.Solve {
		return
	}

	var (
		s   = solver.DefaultSettings()
		res *solver.Result
	)
	if s.Method, err = solver.NewMethod(ip.Solver.Method); err != nil {
		return
	}
	if ip.Solver.Tolerance != 0 {
		s.Tolerance = ip.Solver.Tolerance
	}
	s.MaxIterations = ip.Solver.MaxIterations
	inst.EventBegin(nedelec.EventSolving)
	b := rep.B.VecDense()
	res, err = solver.Solve(rep.A, b, s)
	if res != nil {
		rep.X = res.X
		rep.Iterations = res.Iterations
		rep.Residual = solver.Residual(rep.A, res.X, b)
		inst.EventEnd(nedelec.EventSolving, "method", string(s.Method),
			"iterations", res.Iterations, "residual", rep.Residual)
	}
	if err != nil {
		return rep, fmt.Errorf("solving with %s: %w", s.Method, err)
	}
	fmt.Fprintf(out, "Solved with %s in %d iterations, residual %8.2e\n", s.Method, rep.Iterations, rep.Residual)
	return
}
