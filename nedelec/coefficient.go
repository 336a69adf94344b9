package nedelec

import "github.com/notargets/gonedelec/geometry2D"

// Coefficient is a scalar material function of position
type Coefficient interface {
	Eval(x, y float64) float64
}

// VectorField is a 2-vector function of position
type VectorField interface {
	Eval(x, y float64) [2]float64
}

type Constant float64

func (c Constant) Eval(x, y float64) float64 { return float64(c) }

type ConstantVector [2]float64

func (c ConstantVector) Eval(x, y float64) [2]float64 { return c }

/*
Coefficients of curl(a curl E) + b E = F. Each is sampled once per cell at the
cell centroid and held constant over the cell, fields are not integrated over
the quadrature points.
*/
type Coefficients struct {
	Stiffness Coefficient // a
	Mass      Coefficient // b
	Source    VectorField // F
}

// DefaultCoefficients is a = b = 1, F = (1,1)
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Stiffness: Constant(1),
		Mass:      Constant(1),
		Source:    ConstantVector{1, 1},
	}
}

func (co Coefficients) withDefaults() Coefficients {
	def := DefaultCoefficients()
	if co.Stiffness == nil {
		co.Stiffness = def.Stiffness
	}
	if co.Mass == nil {
		co.Mass = def.Mass
	}
	if co.Source == nil {
		co.Source = def.Source
	}
	return co
}

type cellCoefficients struct {
	a, b float64
	f    [2]float64
}

func (co Coefficients) sample(x, y float64) cellCoefficients {
	return cellCoefficients{
		a: co.Stiffness.Eval(x, y),
		b: co.Mass.Eval(x, y),
		f: co.Source.Eval(x, y),
	}
}

func (co Coefficients) sampleCell(am geometry2D.AffineMap) cellCoefficients {
	centroid := am.Apply(1./3., 1./3.)
	return co.sample(centroid.X[0], centroid.X[1])
}
