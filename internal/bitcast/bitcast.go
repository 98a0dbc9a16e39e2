// Package bitcast converts between floating-point samples and the unsigned
// words that carry their bit patterns on the wire.
//
// The conversion is a bitwise identity. Callers pair float32 with uint32 and
// float64 with uint64; Check enforces the pairing once per codec so the hot
// per-element helpers can stay branch-free.
package bitcast

import (
	"unsafe"

	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/ndarray"
)

// Check panics when D and U differ in width. Codecs call it at construction
// time so a mispaired instantiation fails immediately rather than corrupting
// data.
func Check[D ndarray.Sample, U bitops.Word]() {
	var d D
	var u U
	if unsafe.Sizeof(d) != unsafe.Sizeof(u) {
		panic("bitcast: sample and word types differ in width")
	}
}

// ToWord returns the bit pattern of v as a word of the same width.
func ToWord[U bitops.Word, D ndarray.Sample](v D) U {
	return *(*U)(unsafe.Pointer(&v))
}

// ToSample reinterprets a word as a sample of the same width.
func ToSample[D ndarray.Sample, U bitops.Word](w U) D {
	return *(*D)(unsafe.Pointer(&w))
}
