// Package ndarray provides the index arithmetic for dense N-dimensional
// arrays over externally-owned contiguous memory.
//
// Arrays are first-major: element (i0, ..., i_{d-1}) of an array with extent
// (s0, ..., s_{d-1}) lives at linear offset i0*s1*...*s_{d-1} + ... + i_{d-1}.
// The last axis is therefore the contiguous one.
package ndarray

import (
	"errors"
	"fmt"
)

// Sample is a floating-point element type the coder understands.
type Sample interface {
	~float32 | ~float64
}

var ErrInvalidExtent = errors.New("invalid extent")

// Extent is the ordered tuple of axis sizes of an N-D array, first-major.
type Extent []int

// Validate reports whether the extent has between 1 and 3 axes, all of them
// positive. It returns ErrInvalidExtent otherwise.
func (e Extent) Validate() error {
	if len(e) < 1 || len(e) > 3 {
		return fmt.Errorf("%w: %d dimensions, want 1-3", ErrInvalidExtent, len(e))
	}
	for i, s := range e {
		if s <= 0 {
			return fmt.Errorf("%w: axis %d has size %d", ErrInvalidExtent, i, s)
		}
	}

	return nil
}

// Dims returns the number of axes.
func (e Extent) Dims() int {
	return len(e)
}

// Elements returns the total element count, the product of all axis sizes.
func (e Extent) Elements() int {
	n := 1
	for _, s := range e {
		n *= s
	}

	return n
}

// LinearIndex converts N-D coordinates to the linear offset within an array
// of this extent. len(coords) must equal len(e).
func (e Extent) LinearIndex(coords []int) int {
	offset := 0
	for k := 0; k < len(e); k++ {
		offset = offset*e[k] + coords[k]
	}

	return offset
}

// Coords decomposes a linear offset into N-D coordinates, writing them into
// the provided slice. len(coords) must equal len(e).
func (e Extent) Coords(linear int, coords []int) {
	for k := len(e) - 1; k >= 0; k-- {
		coords[k] = linear % e[k]
		linear /= e[k]
	}
}

// Clone returns an independent copy of the extent.
func (e Extent) Clone() Extent {
	out := make(Extent, len(e))
	copy(out, e)

	return out
}

// Slice is a non-owning view of a dense first-major N-D array. Readers and
// writers never touch elements beyond Extent.Elements().
type Slice[D Sample] struct {
	Data   []D
	Extent Extent
}

// NewSlice wraps externally-owned data in a slice view.
//
// Returns ErrInvalidExtent when the extent is malformed or the backing data
// is shorter than the extent's element count.
func NewSlice[D Sample](data []D, extent Extent) (Slice[D], error) {
	if err := extent.Validate(); err != nil {
		return Slice[D]{}, err
	}
	if len(data) < extent.Elements() {
		return Slice[D]{}, fmt.Errorf("%w: data holds %d elements, extent needs %d",
			ErrInvalidExtent, len(data), extent.Elements())
	}

	return Slice[D]{Data: data, Extent: extent}, nil
}
