package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factorial(n int) float64 {
	f := 1.
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// Exact integral of x^a y^b over the reference triangle
func monomialIntegral(a, b int) float64 {
	return factorial(a) * factorial(b) / factorial(a+b+2)
}

func TestRuleWeightsSumToReferenceArea(t *testing.T) {
	for order := 1; order <= MaxOrder; order++ {
		q, err := NewRule(order)
		require.NoError(t, err)
		assert.InDelta(t, ReferenceArea, q.WeightSum(), 1.e-12, "order %d", order)
		assert.Equal(t, len(q.X), q.Size())
		assert.Equal(t, len(q.Y), q.Size())
	}
}

func TestRuleExactness(t *testing.T) {
	for order := 1; order <= MaxOrder; order++ {
		q, err := NewRule(order)
		require.NoError(t, err)
		for deg := 0; deg <= order; deg++ {
			for a := 0; a <= deg; a++ {
				b := deg - a
				got := q.Integrate(func(x, y float64) float64 {
					return math.Pow(x, float64(a)) * math.Pow(y, float64(b))
				})
				assert.InDeltaf(t, monomialIntegral(a, b), got, 1.e-12,
					"order %d, monomial x^%d y^%d", order, a, b)
			}
		}
	}
}

func TestRulePointsInsideTriangle(t *testing.T) {
	q, err := NewRule(MaxOrder)
	require.NoError(t, err)
	for i := 0; i < q.Size(); i++ {
		x, y, _ := q.Point(i)
		assert.True(t, x > 0 && y > 0 && x+y < 1)
	}
}

func TestRuleUnsupportedOrder(t *testing.T) {
	for _, order := range []int{0, -1, MaxOrder + 1} {
		q, err := NewRule(order)
		assert.Error(t, err)
		assert.Nil(t, q)
	}
}
