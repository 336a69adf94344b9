package quadrature

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ReferenceArea is the area of the reference triangle (0,0), (1,0), (0,1)
const ReferenceArea = 0.5

const MaxOrder = 5

// Rule is a symmetric quadrature rule on the reference triangle. Points are
// immutable once generated and the weights sum to ReferenceArea.
type Rule struct {
	Order   int
	X, Y, W []float64
}

// NewRule returns a Dunavant rule integrating polynomials up to degree order
// exactly on the reference triangle with vertices (0,0), (1,0), (0,1)
func NewRule(order int) (q *Rule, err error) {
	var (
		bary [][3]float64
		w    []float64
	)
	switch order {
	case 1:
		// Centroid
		bary, w = centroid(1)
	case 2:
		// 3 interior points, exact for degree 2
		bary, w = orbit3(1./6., 1./3.)
	case 3:
		// 4 points including a negative centroid weight
		b1, w1 := centroid(-27. / 48.)
		b2, w2 := orbit3(0.2, 25./48.)
		bary, w = append(b1, b2...), append(w1, w2...)
	case 4:
		b1, w1 := orbit3(0.445948490915965, 0.223381589678011)
		b2, w2 := orbit3(0.091576213509771, 0.109951743655322)
		bary, w = append(b1, b2...), append(w1, w2...)
	case 5:
		b1, w1 := centroid(0.225)
		b2, w2 := orbit3(0.470142064105115, 0.132394152788506)
		b3, w3 := orbit3(0.101286507323456, 0.125939180544827)
		bary = append(append(b1, b2...), b3...)
		w = append(append(w1, w2...), w3...)
	default:
		err = fmt.Errorf("quadrature order %d not available, must be 1 to %d", order, MaxOrder)
		return
	}
	q = &Rule{
		Order: order,
		X:     make([]float64, len(w)),
		Y:     make([]float64, len(w)),
		W:     make([]float64, len(w)),
	}
	for i, b := range bary {
		// Barycentric (l0, l1, l2) against vertices (0,0), (1,0), (0,1)
		q.X[i], q.Y[i] = b[1], b[2]
	}
	// Tabulated weights are normalized to one, fold in the reference area
	floats.ScaleTo(q.W, ReferenceArea, w)
	return
}

// Size is the number of quadrature points M
func (q *Rule) Size() int { return len(q.W) }

func (q *Rule) Point(i int) (x, y, w float64) {
	return q.X[i], q.Y[i], q.W[i]
}

func (q *Rule) WeightSum() float64 { return floats.Sum(q.W) }

// Integrate applies the rule to f over the reference triangle
func (q *Rule) Integrate(f func(x, y float64) float64) (sum float64) {
	for i := range q.W {
		sum += q.W[i] * f(q.X[i], q.Y[i])
	}
	return
}

func centroid(w float64) ([][3]float64, []float64) {
	return [][3]float64{{1. / 3., 1. / 3., 1. / 3.}}, []float64{w}
}

// orbit3 expands the symmetric orbit (a, a, 1-2a) into its three permutations
func orbit3(a, w float64) ([][3]float64, []float64) {
	b := 1 - 2*a
	return [][3]float64{
			{a, a, b},
			{b, a, a},
			{a, b, a},
		},
		[]float64{w, w, w}
}
