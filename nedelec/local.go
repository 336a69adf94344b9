package nedelec

import (
	"github.com/notargets/gonedelec/geometry2D"
)

// LocalMatrix and LocalVector are the element contributions of one triangle,
// indexed by local edge
type (
	LocalMatrix [NBasis][NBasis]float64
	LocalVector [NBasis]float64
)

// ElementInput is everything the element kernels need for one cell
type ElementInput struct {
	Geom     geometry2D.AffineMap
	Signs    [NBasis]int
	Boundary [NBasis]bool
}

/*
LocalSystem computes the element matrix and load vector of one cell. Rows and
columns of boundary edges are replaced by the constraint for a fixed zero
value: 1 where both edges are on the boundary, 0 where exactly one is, and a
zero load.
*/
func (fs *FunctionSpace) LocalSystem(in ElementInput, co Coefficients) (A LocalMatrix, b LocalVector) {
	return fs.localSystem(in, co.withDefaults().sampleCell(in.Geom))
}

func (fs *FunctionSpace) localSystem(in ElementInput, cc cellCoefficients) (A LocalMatrix, b LocalVector) {
	var (
		detBk = in.Geom.DetBk
		C     = invBkInvBkT(in.Geom.InvBk)
	)
	for k := 0; k < NBasis; k++ {
		for l := 0; l < NBasis; l++ {
			switch {
			case in.Boundary[k] && in.Boundary[l]:
				A[k][l] = 1
			case in.Boundary[k] || in.Boundary[l]:
				A[k][l] = 0
			default:
				A[k][l] = cc.a * stiffness(fs.Basis, detBk, in.Signs[k], in.Signs[l], k, l)
				A[k][l] += cc.b * mass(C, fs, detBk, in.Signs[k], in.Signs[l], k, l)
			}
		}
		if in.Boundary[k] {
			b[k] = 0
		} else {
			b[k] = load(in.Geom.InvBk, fs, detBk, k, in.Signs[k], cc.f)
		}
	}
	return
}
