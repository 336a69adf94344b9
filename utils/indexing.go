package utils

// Index lists row or column positions of a block written into a target
type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}
