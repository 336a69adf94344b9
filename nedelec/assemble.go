package nedelec

import (
	"fmt"

	"github.com/notargets/gonedelec/geometry2D"
	"github.com/notargets/gonedelec/utils"
)

// Topology is the mesh connectivity consumed by assembly. Edge points are
// numbered contiguously in [eStart, eEnd), the degree of freedom of an edge
// is its point number minus eStart.
type Topology interface {
	Dimension() int
	CellRange() (cStart, cEnd int)
	EdgeRange() (eStart, eEnd int)
	Cone(cell int) [NBasis]int
	SupportSize(edge int) int
}

type Geometry interface {
	CellGeometry(cell int) geometry2D.AffineMap
}

type Mesh interface {
	Topology
	Geometry
}

// SignBuilder is implemented by meshes able to produce their own sign table
type SignBuilder interface {
	BuildSigns() []int
}

// MatrixTarget accumulates row major blocks additively. Finalize is called
// once, after the last block.
type MatrixTarget interface {
	AddValues(rows, cols utils.Index, vals []float64)
	Finalize()
}

type VectorTarget interface {
	AddValues(I utils.Index, vals []float64)
	Finalize()
}

type Config struct {
	// Signs holds the orientation of local edge k of cell c at 3*(c-cStart)+k.
	// When nil it is built by the mesh, if the mesh is a SignBuilder.
	Signs []int
	// Dim is the problem dimension, zero takes the dimension of the mesh
	Dim             int
	Coefficients    Coefficients
	ParallelDegree  int // Below one uses all CPUs
	Instrumentation Instrumentation
}

type cellContribution struct {
	dofs utils.Index
	A    [NBasis * NBasis]float64
	b    LocalVector
}

/*
Assemble computes the local system of every cell and adds it into A and b at
the degrees of freedom of the cell edges, then finalizes both targets.

Cells are computed concurrently over contiguous partitions. Contributions are
added to the targets in cell order after all partitions finish, so the result
does not depend on the parallel degree. On error nothing has been written to A
or b. The targets must be zero on entry.
*/
func Assemble(m Mesh, fs *FunctionSpace, A MatrixTarget, b VectorTarget, cfg Config) (err error) {
	var (
		in           = cfg.instrumentation()
		dim          = cfg.Dim
		co           = cfg.Coefficients.withDefaults()
		signs        = cfg.Signs
		cStart, cEnd = m.CellRange()
		eStart, _    = m.EdgeRange()
		K            = cEnd - cStart
	)
	if dim == 0 {
		dim = m.Dimension()
	}
	if dim != 2 || m.Dimension() != 2 {
		return fmt.Errorf("%w: mesh dimension %d, problem dimension %d, only 2D is supported",
			ErrUnsupportedDimension, m.Dimension(), dim)
	}
	if fs == nil || fs.Basis == nil {
		return fmt.Errorf("%w: function space has no basis tables", ErrAllocation)
	}
	if signs == nil {
		if sb, ok := m.(SignBuilder); ok {
			in.EventBegin(EventSignsGeneration)
			signs = sb.BuildSigns()
			in.EventEnd(EventSignsGeneration, "entries", len(signs))
		}
	}
	if len(signs) != NBasis*K {
		return fmt.Errorf("sign table has %d entries, need %d for %d cells", len(signs), NBasis*K, K)
	}

	in.EventBegin(EventMatrixAssembly)
	var (
		results = make([]cellContribution, K)
		pm      = utils.NewPartitionMapOffset(cfg.ParallelDegree, cStart, K)
	)
	pm.Run(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			var (
				ein    = ElementInput{Geom: m.CellGeometry(c)}
				cone   = m.Cone(c)
				offset = NBasis * (c - cStart)
				res    = &results[c-cStart]
			)
			res.dofs = utils.NewIndex(NBasis)
			for k, edge := range cone {
				ein.Boundary[k] = m.SupportSize(edge) == 1
				ein.Signs[k] = signs[offset+k]
				res.dofs[k] = edge - eStart
			}
			local, load := fs.localSystem(ein, co.sampleCell(ein.Geom))
			for k := 0; k < NBasis; k++ {
				copy(res.A[k*NBasis:(k+1)*NBasis], local[k][:])
			}
			res.b = load
		}
	})
	for i := range results {
		A.AddValues(results[i].dofs, results[i].dofs, results[i].A[:])
		b.AddValues(results[i].dofs, results[i].b[:])
	}
	A.Finalize()
	b.Finalize()
	in.EventEnd(EventMatrixAssembly, "cells", K, "partitions", pm.ParallelDegree)
	return
}

func (cfg Config) instrumentation() Instrumentation {
	if cfg.Instrumentation == nil {
		return noInstrumentation{}
	}
	return cfg.Instrumentation
}
