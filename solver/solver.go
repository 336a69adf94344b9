package solver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/mat"
)

var ErrUnknownMethod = errors.New("unknown solver method")

type Method string

const (
	GMRES    Method = "gmres"
	CG       Method = "cg"
	BiCGStab Method = "bicgstab"
)

func NewMethod(label string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(label)))
	switch m {
	case "":
		return GMRES, nil
	case GMRES, CG, BiCGStab:
		return m, nil
	}
	return "", fmt.Errorf("%w: [%s], use one of gmres, cg, bicgstab", ErrUnknownMethod, label)
}

func (m Method) linsolve() (linsolve.Method, error) {
	switch m {
	case GMRES, "":
		return &linsolve.GMRES{}, nil
	case CG:
		return &linsolve.CG{}, nil
	case BiCGStab:
		return &linsolve.BiCGStab{}, nil
	}
	return nil, fmt.Errorf("%w: [%s]", ErrUnknownMethod, string(m))
}

type Settings struct {
	Method        Method
	Tolerance     float64 // Relative residual, zero takes the linsolve default
	MaxIterations int     // Zero takes the linsolve default
}

func DefaultSettings() Settings {
	return Settings{Method: GMRES, Tolerance: 1.e-10}
}

type Result struct {
	X            *mat.VecDense
	Iterations   int
	MulVec       int
	ResidualNorm float64
	Runtime      time.Duration
}

// Solve finds x with A x = b. A is any operator with a MulVecTo, such as a
// finalized utils.SparseMatrix. The result is returned alongside a non nil
// error when the iteration limit is reached.
func Solve(A linsolve.MulVecToer, b *mat.VecDense, s Settings) (res *Result, err error) {
	var (
		method linsolve.Method
		start  = time.Now()
	)
	if method, err = s.Method.linsolve(); err != nil {
		return
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("empty right hand side")
	}
	lr, err := linsolve.Iterative(A, b, method, &linsolve.Settings{
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
	})
	if lr == nil {
		return
	}
	res = &Result{
		X:            lr.X,
		Iterations:   lr.Stats.Iterations,
		MulVec:       lr.Stats.MulVec,
		ResidualNorm: lr.ResidualNorm,
		Runtime:      time.Since(start),
	}
	return
}

// Residual returns the 2-norm of b - A x
func Residual(A linsolve.MulVecToer, x, b *mat.VecDense) float64 {
	r := mat.NewVecDense(b.Len(), nil)
	A.MulVecTo(r, false, x)
	r.SubVec(b, r)
	return mat.Norm(r, 2)
}
