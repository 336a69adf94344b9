package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSparseMatrixAccumulate(t *testing.T) {
	A := NewSparseMatrix(4, 4, "A")
	assert.Panics(t, func() { A.At(0, 0) })
	A.AddValues(Index{0, 2}, Index{0, 2}, []float64{1, 2, 3, 4})
	A.AddValues(Index{2, 3}, Index{2, 3}, []float64{10, 20, 30, 40})
	assert.Equal(t, 7, A.Pending())
	A.Finalize()
	assert.True(t, A.IsFinalized())
	assert.Equal(t, 0, A.Pending())
	assert.Equal(t, 7, A.NNZ())
	assert.Equal(t, 1., A.At(0, 0))
	assert.Equal(t, 2., A.At(0, 2))
	assert.Equal(t, 3., A.At(2, 0))
	assert.Equal(t, 14., A.At(2, 2))
	assert.Equal(t, 20., A.At(2, 3))
	assert.Equal(t, 0., A.At(1, 1))
	assert.Panics(t, func() { A.AddValues(Index{0}, Index{0}, []float64{1}) })
	assert.Panics(t, func() { A.Finalize() })
	// Canonical CSR has sorted columns within each row
	raw := A.RawMatrix()
	for i := 0; i < 4; i++ {
		for p := raw.Indptr[i] + 1; p < raw.Indptr[i+1]; p++ {
			assert.Less(t, raw.Ind[p-1], raw.Ind[p])
		}
	}
}

func TestSparseMatrixBlockShape(t *testing.T) {
	A := NewSparseMatrix(2, 2)
	assert.Panics(t, func() { A.AddValues(Index{0, 1}, Index{0}, []float64{1}) })
}

func TestSparseMatrixConcurrentAdd(t *testing.T) {
	var (
		A  = NewSparseMatrix(3, 3)
		wg = sync.WaitGroup{}
		N  = 64
	)
	for n := 0; n < N; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			A.AddValues(Index{0, 1, 2}, Index{0, 1, 2}, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1})
		}()
	}
	wg.Wait()
	A.Finalize()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, float64(N), A.At(i, j))
		}
	}
}

func TestSparseMatrixMulVecTo(t *testing.T) {
	var (
		A     = NewSparseMatrix(2, 3)
		dense = mat.NewDense(2, 3, []float64{1, 0, 2, 0, 3, 4})
	)
	A.AddValues(Index{0, 1}, Index{0, 1, 2}, dense.RawMatrix().Data)
	A.Finalize()
	x := mat.NewVecDense(3, []float64{1, 2, 3})
	dst := mat.NewVecDense(2, nil)
	A.MulVecTo(dst, false, x)
	expected := mat.NewVecDense(2, nil)
	expected.MulVec(dense, x)
	assert.True(t, mat.Equal(expected, dst))

	y := mat.NewVecDense(2, []float64{1, -1})
	dstT := mat.NewVecDense(3, nil)
	A.MulVecTo(dstT, true, y)
	expected = mat.NewVecDense(3, nil)
	expected.MulVec(dense.T(), y)
	assert.True(t, mat.Equal(expected, dstT))

	// Stale values in dst are overwritten, strided views are honored
	stale := mat.NewVecDense(2, []float64{100, -100})
	A.MulVecTo(stale, false, x)
	assert.Equal(t, []float64{7, 18}, stale.RawVector().Data)
	var (
		backing = mat.NewDense(3, 2, []float64{1, 9, 2, 9, 3, 9})
		xCol    = backing.ColView(0)
		dstCol  = mat.NewDense(2, 2, []float64{5, 5, 5, 5}).ColView(1).(*mat.VecDense)
	)
	A.MulVecTo(dstCol, false, xCol)
	assert.Equal(t, 7., dstCol.AtVec(0))
	assert.Equal(t, 18., dstCol.AtVec(1))
	assert.Panics(t, func() { NewSparseMatrix(2, 2).MulVecTo(mat.NewVecDense(2, nil), false, x) })
}

func TestSparseMatrixFinalizeSortsRows(t *testing.T) {
	A := NewSparseMatrix(3, 40, "wide")
	// Insert columns in decreasing order so any map order is exercised
	for j := 39; j >= 0; j-- {
		A.AddValues(Index{j % 3}, Index{j}, []float64{float64(j + 1)})
	}
	A.Finalize()
	raw := A.RawMatrix()
	for i := 0; i < 3; i++ {
		for p := raw.Indptr[i]; p < raw.Indptr[i+1]; p++ {
			assert.Equal(t, i, raw.Ind[p]%3)
			assert.Equal(t, float64(raw.Ind[p]+1), raw.Data[p])
			if p > raw.Indptr[i] {
				assert.Less(t, raw.Ind[p-1], raw.Ind[p])
			}
		}
	}
	assert.Equal(t, 40, A.NNZ())
}

func TestAccumVector(t *testing.T) {
	v := NewAccumVector(3, "b")
	assert.Panics(t, func() { v.AtVec(0) })
	v.AddValues(Index{0, 2}, []float64{1, 2})
	v.AddValues(Index{2, 1}, []float64{3, 4})
	assert.Equal(t, 4, v.Pending())
	v.Finalize()
	assert.Equal(t, []float64{1, 4, 5}, v.VecDense().RawVector().Data)
	assert.Panics(t, func() { v.AddValues(Index{0}, []float64{1}) })
}
