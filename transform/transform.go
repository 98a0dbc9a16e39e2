// Package transform implements the reversible block transform applied to a
// hypercube before zero-bit-plane coding.
//
// The forward transform is the composition of three steps, in order:
//
//  1. Rotate: every word is rotated left by one bit, moving the IEEE sign
//     bit out of the MSB so near-zero values difference into small words.
//  2. Difference: along each axis, every line of side elements is replaced
//     by its backward differences.
//  3. Remap: words with the MSB set have their remaining bits flipped,
//     clustering small signed deltas near zero.
//
// The inverse undoes the remap (an involution), prefix-sums each axis in
// reverse order, and rotates right.
//
// The per-line and per-range pieces are exported separately so that the
// work-group backend can distribute lines across cooperating threads with a
// barrier between consecutive axis passes.
package transform

import "github.com/cubezip/cubezip/bitops"

// Rotate rotates every word left by one bit.
func Rotate[U bitops.Word](words []U) {
	for i := range words {
		words[i] = bitops.RotateLeft1(words[i])
	}
}

// Unrotate rotates every word right by one bit, undoing Rotate.
func Unrotate[U bitops.Word](words []U) {
	for i := range words {
		words[i] = bitops.RotateRight1(words[i])
	}
}

// Remap applies the sign-magnitude complement to every word. It is its own
// inverse.
func Remap[U bitops.Word](words []U) {
	for i := range words {
		words[i] = bitops.ComplementNegative(words[i])
	}
}

// LineBase returns the base offset of line number line for the axis pass
// with the given stride. Lines of a pass are numbered densely in [0,
// len(cube)/side).
func LineBase(stride, side, line int) int {
	return (line/stride)*(stride*side) + line%stride
}

// DiffLine replaces the side elements at base, base+stride, ... with their
// backward differences. The loop runs high to low so each step reads an
// unmodified predecessor.
func DiffLine[U bitops.Word](cube []U, base, stride, side int) {
	for i := side - 1; i >= 1; i-- {
		cube[base+i*stride] -= cube[base+(i-1)*stride]
	}
}

// SumLine prefix-sums the side elements at base, base+stride, ..., undoing
// DiffLine.
func SumLine[U bitops.Word](cube []U, base, stride, side int) {
	for i := 1; i < side; i++ {
		cube[base+i*stride] += cube[base+(i-1)*stride]
	}
}

// Forward applies the full block transform in place. cube must hold
// side^dims words.
func Forward[U bitops.Word](cube []U, dims, side int) {
	Rotate(cube)

	switch dims {
	case 1:
		DiffLine(cube, 0, 1, side)
	case 2:
		forward2D(cube, side)
	case 3:
		forward3D(cube, side)
	}

	Remap(cube)
}

// Inverse undoes Forward in place.
func Inverse[U bitops.Word](cube []U, dims, side int) {
	Remap(cube)

	switch dims {
	case 1:
		SumLine(cube, 0, 1, side)
	case 2:
		inverse2D(cube, side)
	case 3:
		inverse3D(cube, side)
	}

	Unrotate(cube)
}

func forward2D[U bitops.Word](cube []U, side int) {
	// Contiguous axis first, then the strided one.
	for r := 0; r < side; r++ {
		DiffLine(cube, r*side, 1, side)
	}
	for c := 0; c < side; c++ {
		DiffLine(cube, c, side, side)
	}
}

func inverse2D[U bitops.Word](cube []U, side int) {
	for c := 0; c < side; c++ {
		SumLine(cube, c, side, side)
	}
	for r := 0; r < side; r++ {
		SumLine(cube, r*side, 1, side)
	}
}

func forward3D[U bitops.Word](cube []U, side int) {
	plane := side * side
	for i0 := 0; i0 < side; i0++ {
		for i1 := 0; i1 < side; i1++ {
			DiffLine(cube, (i0*side+i1)*side, 1, side)
		}
	}
	for i0 := 0; i0 < side; i0++ {
		for i2 := 0; i2 < side; i2++ {
			DiffLine(cube, i0*plane+i2, side, side)
		}
	}
	for i1 := 0; i1 < side; i1++ {
		for i2 := 0; i2 < side; i2++ {
			DiffLine(cube, i1*side+i2, plane, side)
		}
	}
}

func inverse3D[U bitops.Word](cube []U, side int) {
	plane := side * side
	for i1 := 0; i1 < side; i1++ {
		for i2 := 0; i2 < side; i2++ {
			SumLine(cube, i1*side+i2, plane, side)
		}
	}
	for i0 := 0; i0 < side; i0++ {
		for i2 := 0; i2 < side; i2++ {
			SumLine(cube, i0*plane+i2, side, side)
		}
	}
	for i0 := 0; i0 < side; i0++ {
		for i1 := 0; i1 < side; i1++ {
			SumLine(cube, (i0*side+i1)*side, 1, side)
		}
	}
}
