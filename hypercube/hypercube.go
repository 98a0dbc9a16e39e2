// Package hypercube moves 4096-element hypercubes between a strided N-D
// source or destination slice and a flat word buffer, bit-casting samples to
// wire words on the way in and back on the way out.
//
// Within a cube, local linear index i decomposes into base-side digits with
// the least significant digit addressing the innermost (last) array axis, so
// consecutive local indices touch consecutive global offsets along that
// axis. The loops below copy one contiguous innermost row at a time.
package hypercube

import (
	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/internal/bitcast"
	"github.com/cubezip/cubezip/layout"
	"github.com/cubezip/cubezip/ndarray"
)

// Load copies hypercube hcIndex out of src into cube, bit-casting each
// sample to its wire word. cube must hold side^dims words.
func Load[D ndarray.Sample, U bitops.Word](src ndarray.Slice[D], lay layout.Layout, hcIndex int, cube []U) {
	side := lay.Profile.Side
	var origin [3]int
	lay.Origin(hcIndex, origin[:lay.Profile.Dims])

	switch lay.Profile.Dims {
	case 1:
		base := origin[0]
		for i := 0; i < side; i++ {
			cube[i] = bitcast.ToWord[U](src.Data[base+i])
		}
	case 2:
		ext1 := src.Extent[1]
		for r := 0; r < side; r++ {
			srcBase := (origin[0]+r)*ext1 + origin[1]
			cubeBase := r * side
			for i := 0; i < side; i++ {
				cube[cubeBase+i] = bitcast.ToWord[U](src.Data[srcBase+i])
			}
		}
	case 3:
		ext1 := src.Extent[1]
		ext2 := src.Extent[2]
		for i0 := 0; i0 < side; i0++ {
			for i1 := 0; i1 < side; i1++ {
				srcBase := ((origin[0]+i0)*ext1+origin[1]+i1)*ext2 + origin[2]
				cubeBase := (i0*side + i1) * side
				for i := 0; i < side; i++ {
					cube[cubeBase+i] = bitcast.ToWord[U](src.Data[srcBase+i])
				}
			}
		}
	}
}

// Store copies cube back into hypercube hcIndex of dst, bit-casting each
// wire word to a sample. It is the inverse of Load.
func Store[D ndarray.Sample, U bitops.Word](cube []U, lay layout.Layout, hcIndex int, dst ndarray.Slice[D]) {
	side := lay.Profile.Side
	var origin [3]int
	lay.Origin(hcIndex, origin[:lay.Profile.Dims])

	switch lay.Profile.Dims {
	case 1:
		base := origin[0]
		for i := 0; i < side; i++ {
			dst.Data[base+i] = bitcast.ToSample[D](cube[i])
		}
	case 2:
		ext1 := dst.Extent[1]
		for r := 0; r < side; r++ {
			dstBase := (origin[0]+r)*ext1 + origin[1]
			cubeBase := r * side
			for i := 0; i < side; i++ {
				dst.Data[dstBase+i] = bitcast.ToSample[D](cube[cubeBase+i])
			}
		}
	case 3:
		ext1 := dst.Extent[1]
		ext2 := dst.Extent[2]
		for i0 := 0; i0 < side; i0++ {
			for i1 := 0; i1 < side; i1++ {
				dstBase := ((origin[0]+i0)*ext1+origin[1]+i1)*ext2 + origin[2]
				cubeBase := (i0*side + i1) * side
				for i := 0; i < side; i++ {
					dst.Data[dstBase+i] = bitcast.ToSample[D](cube[cubeBase+i])
				}
			}
		}
	}
}

// LoadRange copies the cube elements in [lo, hi) of hypercube hcIndex out of
// src. The work-group backend uses it to split a load across cooperating
// threads; Load is equivalent to LoadRange(0, side^dims).
func LoadRange[D ndarray.Sample, U bitops.Word](src ndarray.Slice[D], lay layout.Layout, hcIndex, lo, hi int, cube []U) {
	side := lay.Profile.Side
	var origin [3]int
	var coords [3]int
	dims := lay.Profile.Dims
	lay.Origin(hcIndex, origin[:dims])

	for i := lo; i < hi; i++ {
		local := i
		for k := dims - 1; k >= 0; k-- {
			coords[k] = origin[k] + local%side
			local /= side
		}
		cube[i] = bitcast.ToWord[U](src.Data[src.Extent.LinearIndex(coords[:dims])])
	}
}

// StoreRange is the inverse of LoadRange.
func StoreRange[D ndarray.Sample, U bitops.Word](cube []U, lay layout.Layout, hcIndex, lo, hi int, dst ndarray.Slice[D]) {
	side := lay.Profile.Side
	var origin [3]int
	var coords [3]int
	dims := lay.Profile.Dims
	lay.Origin(hcIndex, origin[:dims])

	for i := lo; i < hi; i++ {
		local := i
		for k := dims - 1; k >= 0; k-- {
			coords[k] = origin[k] + local%side
			local /= side
		}
		dst.Data[dst.Extent.LinearIndex(coords[:dims])] = bitcast.ToSample[D](cube[i])
	}
}
