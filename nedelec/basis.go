package nedelec

import (
	"fmt"

	"github.com/notargets/gonedelec/quadrature"
	"github.com/notargets/gonedelec/utils"
)

// NBasis is the number of lowest order edge functions on a triangle, one per edge
const NBasis = 3

/*
Basis tabulates the lowest order Nedelec functions of the reference triangle
(0,0), (1,0), (0,1) at the points of a quadrature rule:

	psi_0(x,y) = (  -y,   x)
	psi_1(x,y) = (  -y, x-1)
	psi_2(x,y) = ( 1-y,   x)

psi_k has unit circulation along local edge k and zero along the other two.
The curl of each is the constant 2.
*/
type Basis struct {
	M    int          // Number of quadrature points
	Val  utils.Array3 // [basis][point][component]
	CVal [NBasis]float64
}

func NewBasis(q *quadrature.Rule) (b *Basis, err error) {
	var (
		M   = q.Size()
		val utils.Array3
	)
	if val, err = utils.NewArray3(NBasis, M, 2); err != nil {
		err = fmt.Errorf("%w: %v", ErrAllocation, err)
		return
	}
	for i := 0; i < M; i++ {
		x, y, _ := q.Point(i)
		val.Set(0, i, 0, -y)
		val.Set(0, i, 1, x)

		val.Set(1, i, 0, -y)
		val.Set(1, i, 1, x-1)

		val.Set(2, i, 0, 1-y)
		val.Set(2, i, 1, x)
	}
	b = &Basis{
		M:    M,
		Val:  val,
		CVal: [NBasis]float64{2, 2, 2},
	}
	return
}

// Value is the 2-vector of basis function k at quadrature point i
func (b *Basis) Value(k, i int) (v [2]float64) {
	v[0], v[1] = b.Val.At(k, i, 0), b.Val.At(k, i, 1)
	return
}

func (b *Basis) Curl(k int) float64 { return b.CVal[k] }

// FunctionSpace pairs a quadrature rule with the basis tabulated on it
type FunctionSpace struct {
	Q     *quadrature.Rule
	Basis *Basis
}

func NewFunctionSpace(quadOrder int) (fs *FunctionSpace, err error) {
	var (
		q *quadrature.Rule
		b *Basis
	)
	if q, err = quadrature.NewRule(quadOrder); err != nil {
		return
	}
	if b, err = NewBasis(q); err != nil {
		return
	}
	fs = &FunctionSpace{Q: q, Basis: b}
	return
}
