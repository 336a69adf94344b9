package utils

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// AccumVector is the vector counterpart of SparseMatrix: additive writes from
// any goroutine until Finalize, read only afterward.
type AccumVector struct {
	mu       sync.Mutex
	data     []float64
	touched  int
	readOnly bool
	name     string
}

func NewAccumVector(n int, name ...string) (V *AccumVector) {
	V = &AccumVector{
		data: make([]float64, n),
		name: "unnamed",
	}
	if len(name) != 0 {
		V.name = name[0]
	}
	return
}

func (v *AccumVector) Len() int { return len(v.data) }

func (v *AccumVector) AddValues(I Index, vals []float64) {
	if len(I) != len(vals) {
		panic(fmt.Errorf("length of index and values are not equal: len(I) = %v, len(Val) = %v", len(I), len(vals)))
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.checkWritable()
	for ii, i := range I {
		v.data[i] += vals[ii]
	}
	v.touched += len(I)
}

// Pending is the count of additive writes received since creation
func (v *AccumVector) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.touched
}

func (v *AccumVector) Finalize() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.checkWritable()
	v.readOnly = true
}

func (v *AccumVector) IsFinalized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.readOnly
}

func (v *AccumVector) AtVec(i int) float64 {
	v.checkFinalized()
	return v.data[i]
}

// VecDense returns a copy of the finalized data
func (v *AccumVector) VecDense() *mat.VecDense {
	v.checkFinalized()
	d := make([]float64, len(v.data))
	copy(d, v.data)
	return mat.NewVecDense(len(d), d)
}

func (v *AccumVector) checkWritable() {
	if v.readOnly {
		panic(fmt.Errorf("attempt to write to a finalized vector named: \"%v\"", v.name))
	}
}

func (v *AccumVector) checkFinalized() {
	if !v.IsFinalized() {
		panic(fmt.Errorf("attempt to read vector named: \"%v\" before Finalize", v.name))
	}
}
