package nedelec

import "errors"

var (
	// ErrUnsupportedDimension is returned when the mesh is not two dimensional.
	// Nothing has been written to the targets when it is returned.
	ErrUnsupportedDimension = errors.New("unsupported dimension")
	// ErrAllocation is returned when storage for the basis tables cannot be sized
	ErrAllocation = errors.New("basis table allocation failed")
)
