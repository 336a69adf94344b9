package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
)

type RectangleParameters struct {
	Nx   int        `yaml:"Nx"`
	Ny   int        `yaml:"Ny"`
	XMin [2]float64 `yaml:"XMin"` // Lower left corner
	XMax [2]float64 `yaml:"XMax"` // Upper right corner
}

type CoefficientParameters struct {
	Stiffness float64    `yaml:"Stiffness"` // Multiplies the curl-curl term
	Mass      float64    `yaml:"Mass"`
	Source    [2]float64 `yaml:"Source"`
}

type SolverParameters struct {
	Method        string  `yaml:"Method"` // gmres, cg or bicgstab
	Tolerance     float64 `yaml:"Tolerance"`
	MaxIterations int     `yaml:"MaxIterations"`
}

// Parameters obtained from the YAML input file
type InputParametersNedelec struct {
	Title           string                `yaml:"Title"`
	QuadratureOrder int                   `yaml:"QuadratureOrder"`
	ParallelDegree  int                   `yaml:"ParallelDegree"`
	Refine          int                   `yaml:"Refine"`
	Rectangle       RectangleParameters   `yaml:"Rectangle"`
	Coefficients    CoefficientParameters `yaml:"Coefficients"`
	Solve           bool                  `yaml:"Solve"`
	Solver          SolverParameters      `yaml:"Solver"`
}

func NewInputParametersNedelec() *InputParametersNedelec {
	return &InputParametersNedelec{
		Title:           "Nedelec",
		QuadratureOrder: 2,
		Rectangle: RectangleParameters{
			Nx: 4, Ny: 4,
			XMax: [2]float64{1, 1},
		},
		Coefficients: CoefficientParameters{
			Stiffness: 1,
			Mass:      1,
			Source:    [2]float64{1, 1},
		},
		Solver: SolverParameters{
			Method:    "gmres",
			Tolerance: 1.e-10,
		},
	}
}

// Parse overlays the YAML data on the current values, fields missing from
// the data keep their values
func (ip *InputParametersNedelec) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.Validate()
}

func (ip *InputParametersNedelec) Validate() error {
	switch {
	case ip.QuadratureOrder < 1:
		return fmt.Errorf("QuadratureOrder must be positive, have %d", ip.QuadratureOrder)
	case ip.Refine < 0:
		return fmt.Errorf("Refine must not be negative, have %d", ip.Refine)
	case ip.Rectangle.Nx < 1 || ip.Rectangle.Ny < 1:
		return fmt.Errorf("Rectangle needs Nx, Ny >= 1, have %d, %d", ip.Rectangle.Nx, ip.Rectangle.Ny)
	case ip.Solver.Tolerance < 0 || ip.Solver.MaxIterations < 0:
		return fmt.Errorf("Solver Tolerance and MaxIterations must not be negative")
	}
	return nil
}

func (ip *InputParametersNedelec) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Quadrature Order\n", ip.QuadratureOrder)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Parallel Degree\n", ip.ParallelDegree)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Refinement Levels\n", ip.Refine)
	fmt.Fprintf(w, "[%d x %d] [%g,%g]x[%g,%g]\t= Rectangle\n", ip.Rectangle.Nx, ip.Rectangle.Ny,
		ip.Rectangle.XMin[0], ip.Rectangle.XMax[0], ip.Rectangle.XMin[1], ip.Rectangle.XMax[1])
	fmt.Fprintf(w, "%8.5f\t\t= Stiffness\n", ip.Coefficients.Stiffness)
	fmt.Fprintf(w, "%8.5f\t\t= Mass\n", ip.Coefficients.Mass)
	fmt.Fprintf(w, "%v\t\t\t= Source\n", ip.Coefficients.Source)
	if ip.Solve {
		fmt.Fprintf(w, "[%s]\t\t\t= Solver Method\n", ip.Solver.Method)
		fmt.Fprintf(w, "%8.2e\t\t= Solver Tolerance\n", ip.Solver.Tolerance)
		fmt.Fprintf(w, "[%d]\t\t\t\t= Solver Max Iterations\n", ip.Solver.MaxIterations)
	}
}
