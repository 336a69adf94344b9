package mesh2D

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRectangleTopology(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 3}, {5, 4}} {
		nx, ny := dims[0], dims[1]
		m, err := NewRectangle(nx, ny, 0, 1, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Dimension())
		assert.Equal(t, (nx+1)*(ny+1), m.NumVertices())
		assert.Equal(t, 2*nx*ny, m.NumCells())
		assert.Equal(t, nx*(ny+1)+ny*(nx+1)+nx*ny, m.NumEdges())
		// Euler characteristic of a disk
		assert.Equal(t, 1, m.NumVertices()-m.NumEdges()+m.NumCells())
		assert.Equal(t, 2*(nx+ny), m.NumBoundaryEdges())
		for c := 0; c < m.NumCells(); c++ {
			assert.Greater(t, m.CellGeometry(c).DetBk, 0.)
		}
	}
}

func TestPointNumbering(t *testing.T) {
	m, err := NewRectangle(1, 1, 0, 1, 0, 1)
	require.NoError(t, err)
	cStart, cEnd := m.CellRange()
	vStart, vEnd := m.VertexRange()
	eStart, eEnd := m.EdgeRange()
	assert.Equal(t, [6]int{0, 2, 2, 6, 6, 11}, [6]int{cStart, cEnd, vStart, vEnd, eStart, eEnd})
	// Cell 0 = (0,1,3), cell 1 = (0,3,2), the diagonal 0-3 is shared
	diag := m.EdgeIndex[m.cellEdge(0, 1).GetKey()]
	assert.Equal(t, m.Cone(0)[1], diag+eStart)
	cone1 := m.Cone(1)
	assert.Contains(t, cone1[:], diag+eStart)
	assert.Equal(t, 2, m.SupportSize(diag+eStart))
	assert.Equal(t, [2]int{0, 1}, m.EdgeCells[diag])
	for _, e := range m.Cone(0) {
		if e != diag+eStart {
			assert.Equal(t, 1, m.SupportSize(e))
			assert.Equal(t, -1, m.EdgeCells[e-eStart][1])
		}
	}
}

func TestSigns(t *testing.T) {
	m, err := NewRectangle(3, 3, 0, 1, 0, 1)
	require.NoError(t, err)
	m, err = m.Refine(1)
	require.NoError(t, err)
	signs := m.BuildSigns()
	require.Len(t, signs, 3*m.NumCells())
	// Counterclockwise neighbors traverse a shared edge in opposite directions
	sum := make([]int, m.NumEdges())
	count := make([]int, m.NumEdges())
	for c := 0; c < m.NumCells(); c++ {
		for k, en := range m.EToE[c] {
			s := signs[3*c+k]
			assert.True(t, s == 1 || s == -1)
			sum[en] += s
			count[en]++
		}
	}
	for en := range m.Edges {
		if count[en] == 2 {
			assert.Equal(t, 0, sum[en])
		} else {
			assert.Equal(t, 1, count[en])
		}
	}
	// Cells (0,1,3) and (0,3,2)
	m1, err := NewRectangle(1, 1, 0, 1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1, 1, -1, -1, 1}, m1.BuildSigns())
}

func TestRefine(t *testing.T) {
	m, err := NewRectangle(2, 1, 0, 2, 0, 1)
	require.NoError(t, err)
	rm, err := m.Refine(2)
	require.NoError(t, err)
	assert.Equal(t, 16*m.NumCells(), rm.NumCells())
	assert.Equal(t, 1, rm.NumVertices()-rm.NumEdges()+rm.NumCells())
	// Every boundary edge ends up split in four
	assert.Equal(t, 4*m.NumBoundaryEdges(), rm.NumBoundaryEdges())
	var tagged int
	for _, tag := range rm.Tags() {
		for _, ek := range rm.BCEdges[tag] {
			en, ok := rm.EdgeIndex[ek]
			require.True(t, ok)
			assert.True(t, rm.IsBoundaryEdge(en))
			tagged++
		}
	}
	assert.Equal(t, rm.NumBoundaryEdges(), tagged)
	// Area is preserved and orientation kept
	var area float64
	for c := 0; c < rm.NumCells(); c++ {
		am := rm.CellGeometry(c)
		assert.Greater(t, am.DetBk, 0.)
		area += am.Area()
	}
	assert.InDelta(t, 2., area, 1.e-13)
	same, err := m.Refine(0)
	require.NoError(t, err)
	assert.Equal(t, m, same)
}

func TestDiscreteGradient(t *testing.T) {
	m, err := NewRectangle(2, 2, 0, 1, 0, 1)
	require.NoError(t, err)
	G := m.DiscreteGradient()
	nr, nc := G.Dims()
	assert.Equal(t, m.NumEdges(), nr)
	assert.Equal(t, m.NumVertices(), nc)
	assert.Equal(t, 2*m.NumEdges(), G.NNZ())
	// Constants are in the kernel of the gradient
	ones := mat.NewVecDense(nc, nil)
	for i := 0; i < nc; i++ {
		ones.SetVec(i, 1)
	}
	dst := mat.NewVecDense(nr, nil)
	G.MulVecTo(dst, false, ones)
	assert.Equal(t, 0., mat.Norm(dst, 2))
	// The gradient of x is the x extent of each edge
	x := mat.NewVecDense(nc, m.VX)
	G.MulVecTo(dst, false, x)
	for en, ek := range m.Edges {
		verts := ek.GetVertices(false)
		assert.InDelta(t, m.VX[verts[1]]-m.VX[verts[0]], dst.AtVec(en), 1.e-15)
	}
}

func TestNewMeshErrors(t *testing.T) {
	_, err := NewMesh([]float64{0, 1}, []float64{0}, nil)
	assert.Error(t, err)
	_, err = NewMesh([]float64{0, 1, 0}, []float64{0, 0, 1}, [][3]int{{0, 1, 3}})
	assert.Error(t, err)
	// Three triangles on one edge is not a manifold
	_, err = NewMesh(
		[]float64{0, 1, 0, 1, 0.5},
		[]float64{0, 0, 1, -1, 1},
		[][3]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}})
	assert.Error(t, err)
	_, err = NewRectangle(0, 1, 0, 1, 0, 1)
	assert.Error(t, err)
	_, err = NewRectangle(1, 1, 1, 0, 0, 1)
	assert.Error(t, err)
}

func TestPrintStatistics(t *testing.T) {
	m, err := NewRectangle(2, 2, 0, 1, 0, 1)
	require.NoError(t, err)
	var buf bytes.Buffer
	m.PrintStatistics(&buf)
	assert.Contains(t, buf.String(), "Cells: 8")
	assert.Contains(t, buf.String(), "[bottom]: 2")
	assert.Contains(t, buf.String(), "Bounding box: [0,1]x[0,1], centroid (0.5,0.5)")
	bb := m.BoundingBox()
	assert.Equal(t, [2]float64{1, 1}, bb.XMax)
}

func TestDegenerateCells(t *testing.T) {
	m, err := NewRectangle(2, 1, 0, 2, 0, 1)
	require.NoError(t, err)
	assert.Empty(t, m.DegenerateCells(1.e-12))
	// Vertex 4 = (1,1) dropped onto vertex 1 = (1,0) flattens cells (0,1,4) and (1,5,4)
	m.VY[4] = 0
	assert.Equal(t, []int{0, 3}, m.DegenerateCells(1.e-12))
}
