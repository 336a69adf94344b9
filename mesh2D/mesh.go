package mesh2D

import (
	"fmt"
	"io"
	"sort"

	"github.com/notargets/gonedelec/geometry2D"
	"github.com/notargets/gonedelec/types"
	"github.com/notargets/gonedelec/utils"
)

// NEdges is the number of edges of a triangle. The mesh, its cones and the
// sign table are triangle only.
const NEdges = 3

// LocalEdgeVertices lists the local vertices of each local edge in traversal
// order. Local edge k is the edge opposite vertex k, traversed counterclockwise
// for a counterclockwise triangle.
var LocalEdgeVertices = [NEdges][2]int{
	{1, 2},
	{2, 0},
	{0, 1},
}

/*
Mesh is an unstructured triangle mesh with its edge topology. Mesh entities are
numbered as points of a single DAG: cells in [0,K), vertices in [K,K+Nv) and
edges in [K+Nv,K+Nv+Ne). The cone of a cell is its three edges, the support of
an edge is the set of cells that share it.
*/
type Mesh struct {
	Dim     int // Topological dimension as reported by the source of the mesh
	VX, VY  []float64
	EToV    [][NEdges]int
	BCEdges map[types.BCTAG][]types.EdgeKey

	Edges     []types.EdgeKey       // Unique edges in order of first appearance
	EdgeIndex map[types.EdgeKey]int // Edge key to edge number
	EToE      [][NEdges]int         // Cell to edge number, by local edge
	EdgeCells [][2]int              // Edge number to adjacent cells, -1 where absent
}

// NewMesh builds the edge topology for the triangles in EToV, which index into VX, VY
func NewMesh(VX, VY []float64, EToV [][NEdges]int) (m *Mesh, err error) {
	if len(VX) != len(VY) {
		err = fmt.Errorf("vertex coordinate lengths differ: len(VX) = %d, len(VY) = %d", len(VX), len(VY))
		return
	}
	m = &Mesh{
		Dim:     2,
		VX:      VX,
		VY:      VY,
		EToV:    EToV,
		BCEdges: make(map[types.BCTAG][]types.EdgeKey),
	}
	if err = m.BuildConnectivity(); err != nil {
		m = nil
	}
	return
}

// BuildConnectivity numbers the unique edges and records the cells adjacent to each
func (m *Mesh) BuildConnectivity() (err error) {
	var (
		K  = len(m.EToV)
		Nv = len(m.VX)
	)
	m.Edges = make([]types.EdgeKey, 0, 3*K/2+1)
	m.EdgeIndex = make(map[types.EdgeKey]int, 3*K/2+1)
	m.EToE = make([][NEdges]int, K)
	m.EdgeCells = make([][2]int, 0, 3*K/2+1)
	for k, tri := range m.EToV {
		for _, v := range tri {
			if v < 0 || v >= Nv {
				return fmt.Errorf("cell %d references vertex %d, have %d vertices", k, v, Nv)
			}
		}
		for edge := 0; edge < NEdges; edge++ {
			ek := m.cellEdge(k, edge).GetKey()
			en, exists := m.EdgeIndex[ek]
			if !exists {
				en = len(m.Edges)
				m.EdgeIndex[ek] = en
				m.Edges = append(m.Edges, ek)
				m.EdgeCells = append(m.EdgeCells, [2]int{k, -1})
			} else {
				if m.EdgeCells[en][1] != -1 {
					verts := ek.GetVertices(false)
					return fmt.Errorf("edge [%d,%d] is shared by more than two cells", verts[0], verts[1])
				}
				m.EdgeCells[en][1] = k
			}
			m.EToE[k][edge] = en
		}
	}
	return
}

// cellEdge is local edge "edge" of cell k, directed in local traversal order
func (m *Mesh) cellEdge(k, edge int) types.EdgeInt {
	var (
		lv = LocalEdgeVertices[edge]
	)
	return types.NewEdgeInt([2]int{m.EToV[k][lv[0]], m.EToV[k][lv[1]]})
}

func (m *Mesh) NumCells() int    { return len(m.EToV) }
func (m *Mesh) NumVertices() int { return len(m.VX) }
func (m *Mesh) NumEdges() int    { return len(m.Edges) }

func (m *Mesh) Dimension() int { return m.Dim }

func (m *Mesh) CellRange() (cStart, cEnd int) { return 0, m.NumCells() }

func (m *Mesh) VertexRange() (vStart, vEnd int) {
	vStart = m.NumCells()
	return vStart, vStart + m.NumVertices()
}

func (m *Mesh) EdgeRange() (eStart, eEnd int) {
	_, eStart = m.VertexRange()
	return eStart, eStart + m.NumEdges()
}

// Cone returns the edge points of a cell, ordered by local edge
func (m *Mesh) Cone(cell int) (cone [NEdges]int) {
	eStart, _ := m.EdgeRange()
	for i, en := range m.EToE[cell] {
		cone[i] = en + eStart
	}
	return
}

// SupportSize is 1 for a boundary edge point and 2 for an interior one
func (m *Mesh) SupportSize(edge int) (n int) {
	eStart, _ := m.EdgeRange()
	n = 1
	if m.EdgeCells[edge-eStart][1] >= 0 {
		n = 2
	}
	return
}

func (m *Mesh) IsBoundaryEdge(en int) bool { return m.EdgeCells[en][1] < 0 }

func (m *Mesh) NumBoundaryEdges() (n int) {
	for en := range m.Edges {
		if m.IsBoundaryEdge(en) {
			n++
		}
	}
	return
}

func (m *Mesh) Vertex(v int) geometry2D.Point {
	return geometry2D.NewPoint(m.VX[v], m.VY[v])
}

// CellGeometry returns the affine map of the cell from the reference triangle
func (m *Mesh) CellGeometry(cell int) geometry2D.AffineMap {
	tri := m.EToV[cell]
	return geometry2D.NewAffineMap(m.Vertex(tri[0]), m.Vertex(tri[1]), m.Vertex(tri[2]))
}

// DegenerateCells lists the cells with |det Bk| <= tol in increasing order
func (m *Mesh) DegenerateCells(tol float64) (cells []int) {
	for c := 0; c < m.NumCells(); c++ {
		if m.CellGeometry(c).IsDegenerate(tol) {
			cells = append(cells, c)
		}
	}
	return
}

/*
BuildSigns returns the orientation of every local edge against its global
direction, which runs from the lower to the higher vertex index. The entry for
local edge k of cell c is at 3*(c-cStart)+k.
*/
func (m *Mesh) BuildSigns() (signs []int) {
	var (
		cStart, cEnd = m.CellRange()
	)
	signs = make([]int, NEdges*(cEnd-cStart))
	for c := cStart; c < cEnd; c++ {
		offset := NEdges * (c - cStart)
		for edge := 0; edge < NEdges; edge++ {
			signs[offset+edge] = m.cellEdge(c, edge).Orientation()
		}
	}
	return
}

/*
DiscreteGradient is the Ne x Nv incidence matrix G taking vertex values to edge
differences along each global edge direction: -1 at the tail vertex, +1 at the head.
*/
func (m *Mesh) DiscreteGradient() (G *utils.SparseMatrix) {
	G = utils.NewSparseMatrix(m.NumEdges(), m.NumVertices(), "G")
	for en, ek := range m.Edges {
		verts := ek.GetVertices(false)
		G.AddValues(utils.Index{en}, utils.Index{verts[0], verts[1]}, []float64{-1, 1})
	}
	G.Finalize()
	return
}

func (m *Mesh) BoundingBox() *geometry2D.BoundingBox {
	points := make([]geometry2D.Point, m.NumVertices())
	for v := range points {
		points[v] = m.Vertex(v)
	}
	return geometry2D.NewBoundingBox(points)
}

// Tags returns the boundary markers in sorted order
func (m *Mesh) Tags() (tags []types.BCTAG) {
	for tag := range m.BCEdges {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return
}

func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Dimension: %d\n", m.Dim)
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices())
	fmt.Fprintf(w, "  Cells: %d\n", m.NumCells())
	fmt.Fprintf(w, "  Edges: %d\n", m.NumEdges())
	fmt.Fprintf(w, "  Boundary edges: %d\n", m.NumBoundaryEdges())
	if bb := m.BoundingBox(); bb != nil {
		c := bb.Centroid()
		fmt.Fprintf(w, "  Bounding box: [%g,%g]x[%g,%g], centroid (%g,%g)\n",
			bb.XMin[0], bb.XMax[0], bb.XMin[1], bb.XMax[1], c.X[0], c.X[1])
	}
	for _, tag := range m.Tags() {
		fmt.Fprintf(w, "    [%s]: %d\n", tag, len(m.BCEdges[tag]))
	}
}
