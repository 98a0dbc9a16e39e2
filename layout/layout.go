// Package layout computes the on-stream geometry of a compressed array: the
// grid of full hypercubes carved out of the input extent, the border region
// left over, and the position and size of the offset table.
//
// A hypercube is only emitted for a fully-covered region; every element with
// any coordinate at or beyond grid[k]*side belongs to the border and travels
// verbatim at the tail of the stream.
package layout

import (
	"fmt"

	"github.com/cubezip/cubezip/ndarray"
	"github.com/cubezip/cubezip/profile"
)

// OffsetEntrySize is the byte width of one offset table entry on the wire.
const OffsetEntrySize = 8

// Layout binds a profile and an extent to the derived stream geometry.
// Layouts are plain values computed once per compress or decompress call.
type Layout struct {
	Profile profile.Profile
	Extent  ndarray.Extent

	// Grid holds the number of full hypercubes along each axis.
	Grid []int

	// NumHypercubes is the product of all Grid entries.
	NumHypercubes int

	// BorderElements is the number of samples outside the covered grid.
	BorderElements int
}

// New validates the extent against the profile and computes the layout.
//
// Returns ndarray.ErrInvalidExtent when the extent is malformed or its
// dimensionality does not match the profile.
func New(p profile.Profile, ext ndarray.Extent) (Layout, error) {
	if err := ext.Validate(); err != nil {
		return Layout{}, err
	}
	if ext.Dims() != p.Dims {
		return Layout{}, fmt.Errorf("%w: %d dimensions for a %dD profile",
			ndarray.ErrInvalidExtent, ext.Dims(), p.Dims)
	}

	grid := make([]int, p.Dims)
	numHC := 1
	covered := 1
	for k := 0; k < p.Dims; k++ {
		grid[k] = ext[k] / p.Side
		numHC *= grid[k]
		covered *= grid[k] * p.Side
	}

	return Layout{
		Profile:        p,
		Extent:         ext.Clone(),
		Grid:           grid,
		NumHypercubes:  numHC,
		BorderElements: ext.Elements() - covered,
	}, nil
}

// OffsetTableBytes returns the byte length of the offset table at the head
// of the stream: one entry per hypercube.
func (l Layout) OffsetTableBytes() int {
	return l.NumHypercubes * OffsetEntrySize
}

// BorderBytes returns the byte length of the border region.
func (l Layout) BorderBytes() int {
	return l.BorderElements * l.Profile.WordSize
}

// Origin writes the N-D coordinates of hypercube hcIndex's first element
// into origin. Hypercubes are numbered first-major over the grid.
func (l Layout) Origin(hcIndex int, origin []int) {
	for k := l.Profile.Dims - 1; k >= 0; k-- {
		origin[k] = (hcIndex % l.Grid[k]) * l.Profile.Side
		hcIndex /= l.Grid[k]
	}
}

// ForEachBorderRun invokes fn once per row-local run of border elements, in
// first-major order. offset is the linear element offset of the run within
// the array, length its element count. Runs never span two rows, so border
// elements that are contiguous across a row boundary arrive as separate
// runs.
//
// Within a row (all coordinates fixed except the last) the covered columns
// form a prefix, so every run is either a row suffix or a whole row.
func (l Layout) ForEachBorderRun(fn func(offset, length int)) {
	side := l.Profile.Side
	ext := l.Extent

	switch l.Profile.Dims {
	case 1:
		covered := l.Grid[0] * side
		if covered < ext[0] {
			fn(covered, ext[0]-covered)
		}
	case 2:
		covered0 := l.Grid[0] * side
		covered1 := l.Grid[1] * side
		for i0 := 0; i0 < ext[0]; i0++ {
			base := i0 * ext[1]
			if i0 < covered0 {
				if covered1 < ext[1] {
					fn(base+covered1, ext[1]-covered1)
				}
			} else {
				fn(base, ext[1])
			}
		}
	case 3:
		covered0 := l.Grid[0] * side
		covered1 := l.Grid[1] * side
		covered2 := l.Grid[2] * side
		for i0 := 0; i0 < ext[0]; i0++ {
			for i1 := 0; i1 < ext[1]; i1++ {
				base := (i0*ext[1] + i1) * ext[2]
				if i0 < covered0 && i1 < covered1 {
					if covered2 < ext[2] {
						fn(base+covered2, ext[2]-covered2)
					}
				} else {
					fn(base, ext[2])
				}
			}
		}
	}
}
