package mesh2D

import (
	"fmt"

	"github.com/notargets/gonedelec/types"
)

// NewRectangle triangulates [xMin,xMax] x [yMin,yMax] with nx by ny squares,
// each split along its rising diagonal into two counterclockwise triangles.
// Boundary edges are tagged "bottom", "right", "top" and "left".
func NewRectangle(nx, ny int, xMin, xMax, yMin, yMax float64) (m *Mesh, err error) {
	if nx < 1 || ny < 1 {
		err = fmt.Errorf("rectangle needs at least one division per side, have nx = %d, ny = %d", nx, ny)
		return
	}
	if xMax <= xMin || yMax <= yMin {
		err = fmt.Errorf("empty rectangle [%g,%g] x [%g,%g]", xMin, xMax, yMin, yMax)
		return
	}
	var (
		Nv     = (nx + 1) * (ny + 1)
		VX, VY = make([]float64, Nv), make([]float64, Nv)
		EToV   = make([][NEdges]int, 0, 2*nx*ny)
		dx, dy = (xMax - xMin) / float64(nx), (yMax - yMin) / float64(ny)
		vert   = func(i, j int) int { return i + (nx+1)*j }
	)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			VX[vert(i, j)] = xMin + float64(i)*dx
			VY[vert(i, j)] = yMin + float64(j)*dy
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b, c, d := vert(i, j), vert(i+1, j), vert(i+1, j+1), vert(i, j+1)
			EToV = append(EToV, [NEdges]int{a, b, c}, [NEdges]int{a, c, d})
		}
	}
	if m, err = NewMesh(VX, VY, EToV); err != nil {
		return
	}
	for i := 0; i < nx; i++ {
		m.AddBoundaryEdge("bottom", vert(i, 0), vert(i+1, 0))
		m.AddBoundaryEdge("top", vert(i, ny), vert(i+1, ny))
	}
	for j := 0; j < ny; j++ {
		m.AddBoundaryEdge("left", vert(0, j), vert(0, j+1))
		m.AddBoundaryEdge("right", vert(nx, j), vert(nx, j+1))
	}
	return
}

func (m *Mesh) AddBoundaryEdge(label string, v1, v2 int) {
	tag := types.NewBCTAG(label)
	m.BCEdges[tag] = append(m.BCEdges[tag], types.NewEdgeKey([2]int{v1, v2}))
}

/*
Refine splits every triangle into four by connecting its edge midpoints, levels
times. Children keep the orientation of their parent and tagged boundary edges
are split with them.
*/
func (m *Mesh) Refine(levels int) (rm *Mesh, err error) {
	rm = m
	for l := 0; l < levels; l++ {
		if rm, err = rm.refineOnce(); err != nil {
			return nil, err
		}
	}
	return
}

func (m *Mesh) refineOnce() (rm *Mesh, err error) {
	var (
		Nv     = m.NumVertices()
		Ne     = m.NumEdges()
		VX, VY = make([]float64, Nv+Ne), make([]float64, Nv+Ne)
		EToV   = make([][NEdges]int, 0, 4*m.NumCells())
	)
	copy(VX, m.VX)
	copy(VY, m.VY)
	// The midpoint of edge en becomes vertex Nv+en
	for en, ek := range m.Edges {
		verts := ek.GetVertices(false)
		VX[Nv+en] = 0.5 * (m.VX[verts[0]] + m.VX[verts[1]])
		VY[Nv+en] = 0.5 * (m.VY[verts[0]] + m.VY[verts[1]])
	}
	for k, tri := range m.EToV {
		var mid [NEdges]int
		for edge, en := range m.EToE[k] {
			mid[edge] = Nv + en
		}
		EToV = append(EToV,
			[NEdges]int{tri[0], mid[2], mid[1]},
			[NEdges]int{mid[2], tri[1], mid[0]},
			[NEdges]int{mid[1], mid[0], tri[2]},
			[NEdges]int{mid[0], mid[1], mid[2]},
		)
	}
	if rm, err = NewMesh(VX, VY, EToV); err != nil {
		return
	}
	rm.Dim = m.Dim
	for _, tag := range m.Tags() {
		for _, ek := range m.BCEdges[tag] {
			en, ok := m.EdgeIndex[ek]
			if !ok {
				continue
			}
			verts := ek.GetVertices(false)
			rm.BCEdges[tag] = append(rm.BCEdges[tag],
				types.NewEdgeKey([2]int{verts[0], Nv + en}),
				types.NewEdgeKey([2]int{Nv + en, verts[1]}))
		}
	}
	return
}
