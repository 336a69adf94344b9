package utils

import (
	"fmt"
	"sort"
	"sync"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// SparseMatrix accumulates additive contributions into a DOK store and is
// converted once, by Finalize, into a read only CSR. Writers may call
// AddValues concurrently; reads are only valid after Finalize.
type SparseMatrix struct {
	mu       sync.Mutex
	dok      *sparse.DOK
	csr      *sparse.CSR
	nr, nc   int
	readOnly bool
	name     string
}

func NewSparseMatrix(nr, nc int, name ...string) (R *SparseMatrix) {
	R = &SparseMatrix{
		dok:  sparse.NewDOK(nr, nc),
		nr:   nr,
		nc:   nc,
		name: "unnamed",
	}
	if len(name) != 0 {
		R.name = name[0]
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m *SparseMatrix) Dims() (r, c int) { return m.nr, m.nc }
func (m *SparseMatrix) At(i, j int) float64 {
	m.checkFinalized()
	return m.csr.At(i, j)
}
func (m *SparseMatrix) T() mat.Matrix {
	m.checkFinalized()
	return m.csr.T()
}

// AddValues adds the row major block vals at (rows x cols)
func (m *SparseMatrix) AddValues(rows, cols Index, vals []float64) {
	if len(vals) != len(rows)*len(cols) {
		panic(fmt.Errorf("block of %d values does not fit %d rows by %d cols in matrix \"%s\"",
			len(vals), len(rows), len(cols), m.name))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkWritable()
	var ind int
	for _, i := range rows {
		for _, j := range cols {
			m.dok.Set(i, j, m.dok.At(i, j)+vals[ind])
			ind++
		}
	}
}

// Pending is the number of stored entries awaiting Finalize
func (m *SparseMatrix) Pending() (nnz int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return 0
	}
	return m.dok.NNZ()
}

// Finalize flushes the pending additive writes into the canonical CSR
// representation. Column indices within each row are sorted.
func (m *SparseMatrix) Finalize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkWritable()
	m.csr = m.dok.ToCSR()
	sortRows(m.csr.RawMatrix())
	m.dok = nil
	m.readOnly = true
}

// csrRow sorts the entries of one CSR row by column
type csrRow struct {
	ind  []int
	data []float64
}

func (r csrRow) Len() int           { return len(r.ind) }
func (r csrRow) Less(a, b int) bool { return r.ind[a] < r.ind[b] }
func (r csrRow) Swap(a, b int) {
	r.ind[a], r.ind[b] = r.ind[b], r.ind[a]
	r.data[a], r.data[b] = r.data[b], r.data[a]
}

// sortRows puts the columns of every row in increasing order, the DOK map
// hands them out in random order
func sortRows(raw *blas.SparseMatrix) {
	for i := 0; i+1 < len(raw.Indptr); i++ {
		p0, p1 := raw.Indptr[i], raw.Indptr[i+1]
		sort.Sort(csrRow{ind: raw.Ind[p0:p1], data: raw.Data[p0:p1]})
	}
}

func (m *SparseMatrix) IsFinalized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readOnly
}

func (m *SparseMatrix) NNZ() int {
	m.checkFinalized()
	return m.csr.NNZ()
}

func (m *SparseMatrix) CSR() *sparse.CSR {
	m.checkFinalized()
	return m.csr
}

func (m *SparseMatrix) RawMatrix() *blas.SparseMatrix {
	m.checkFinalized()
	return m.csr.RawMatrix()
}

// MulVecTo computes dst = A x or dst = A^T x, satisfying linsolve.MulVecToer
func (m *SparseMatrix) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	m.checkFinalized()
	n := m.nr
	if trans {
		n = m.nc
	}
	if dst.IsEmpty() {
		dst.ReuseAsVec(n)
	}
	// The CSR product accumulates into dst
	dst.Zero()
	xData := contiguous(x)
	if raw := dst.RawVector(); raw.Inc == 1 {
		m.csr.MulVecTo(raw.Data[:n], trans, xData)
		return
	}
	tmp := make([]float64, n)
	m.csr.MulVecTo(tmp, trans, xData)
	for i, v := range tmp {
		dst.SetVec(i, v)
	}
}

func contiguous(x mat.Vector) []float64 {
	if xd, ok := x.(*mat.VecDense); ok {
		if raw := xd.RawVector(); raw.Inc == 1 {
			return raw.Data[:xd.Len()]
		}
	}
	return mat.VecDenseCopyOf(x).RawVector().Data
}

func (m *SparseMatrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a finalized matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m *SparseMatrix) checkFinalized() {
	if !m.IsFinalized() {
		err := fmt.Errorf("attempt to read matrix named: \"%v\" before Finalize", m.name)
		panic(err)
	}
}
