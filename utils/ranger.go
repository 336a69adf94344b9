package utils

import "fmt"

// Array3 is a dense, bounds checked three dimensional array of float64.
// Storage is row major with the last dimension varying fastest.
type Array3 struct {
	Ni, Nj, Nk int
	data       []float64
}

func NewArray3(ni, nj, nk int) (a Array3, err error) {
	var (
		size int
	)
	if size, err = Size3(ni, nj, nk); err != nil {
		return
	}
	a = Array3{
		Ni: ni, Nj: nj, Nk: nk,
		data: make([]float64, size),
	}
	return
}

// Size3 returns the storage needed for an ni x nj x nk array, failing for
// empty or overflowing shapes
func Size3(ni, nj, nk int) (size int, err error) {
	const maxSize = 1 << 40
	if ni <= 0 || nj <= 0 || nk <= 0 {
		err = fmt.Errorf("invalid array shape [%d,%d,%d]", ni, nj, nk)
		return
	}
	if ni > maxSize/nj || ni*nj > maxSize/nk {
		err = fmt.Errorf("array shape [%d,%d,%d] exceeds %d elements", ni, nj, nk, maxSize)
		return
	}
	size = ni * nj * nk
	return
}

func (a Array3) Dims() (ni, nj, nk int) { return a.Ni, a.Nj, a.Nk }

func (a Array3) index(i, j, k int) int {
	if uint(i) >= uint(a.Ni) || uint(j) >= uint(a.Nj) || uint(k) >= uint(a.Nk) {
		panic(fmt.Errorf("index [%d,%d,%d] out of range for array of shape [%d,%d,%d]",
			i, j, k, a.Ni, a.Nj, a.Nk))
	}
	return k + a.Nk*(j+a.Nj*i)
}

func (a Array3) At(i, j, k int) float64 { return a.data[a.index(i, j, k)] }

func (a Array3) Set(i, j, k int, val float64) { a.data[a.index(i, j, k)] = val }

// Slice returns the k-vector stored at (i, j), sharing storage
func (a Array3) Slice(i, j int) []float64 {
	ind := a.index(i, j, 0)
	return a.data[ind : ind+a.Nk : ind+a.Nk]
}
