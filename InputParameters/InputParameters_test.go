package InputParameters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
QuadratureOrder: 3
ParallelDegree: 4
Refine: 1
Rectangle:
  Nx: 8
  Ny: 2
  XMin: [-1, 0]
  XMax: [1, 0.5]
Coefficients:
  Stiffness: 2.
  Source: [0, 1.5]
Solve: true
Solver:
  Method: cg
  MaxIterations: 200
`)
	ip := NewInputParametersNedelec()
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Test Case", ip.Title)
	assert.Equal(t, 3, ip.QuadratureOrder)
	assert.Equal(t, 4, ip.ParallelDegree)
	assert.Equal(t, 1, ip.Refine)
	assert.Equal(t, RectangleParameters{Nx: 8, Ny: 2, XMin: [2]float64{-1, 0}, XMax: [2]float64{1, 0.5}}, ip.Rectangle)
	assert.Equal(t, 2., ip.Coefficients.Stiffness)
	// Unset values keep their defaults
	assert.Equal(t, 1., ip.Coefficients.Mass)
	assert.Equal(t, [2]float64{0, 1.5}, ip.Coefficients.Source)
	assert.True(t, ip.Solve)
	assert.Equal(t, "cg", ip.Solver.Method)
	assert.Equal(t, 200, ip.Solver.MaxIterations)
	assert.Equal(t, 1.e-10, ip.Solver.Tolerance)

	var buf bytes.Buffer
	ip.Print(&buf)
	assert.Contains(t, buf.String(), "\"Test Case\"")
	assert.Contains(t, buf.String(), "[cg]")
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"QuadratureOrder: 0",
		"Refine: -1",
		"Rectangle: {Nx: 0}",
		"Solver: {Tolerance: -1}",
		"Title: [unterminated",
	} {
		ip := NewInputParametersNedelec()
		assert.Error(t, ip.Parse([]byte(input)), input)
	}
	ip := NewInputParametersNedelec()
	require.NoError(t, ip.Validate())
	var buf bytes.Buffer
	ip.Print(&buf)
	assert.NotContains(t, buf.String(), "Solver")
}
