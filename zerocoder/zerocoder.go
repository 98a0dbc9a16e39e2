// Package zerocoder implements the zero-bit-plane entropy coder.
//
// A hypercube of 4096 words is split into contiguous chunks of B words each
// (B = word width in bits). Each chunk is transposed into bit-planes; a
// B-bit header records which planes are non-zero, and only those planes are
// emitted, in ascending bit index. An all-zero chunk costs exactly one
// header word.
//
// Chunks are processed in natural memory order, so the encoded length of a
// hypercube is the sum over chunks of (1 + popcount(header)) words.
package zerocoder

import (
	"errors"

	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/bitplane"
)

var ErrTruncatedPayload = errors.New("hypercube payload truncated")

// Header computes the plane bitmap of an already-transposed chunk: bit j is
// set iff plane word j is non-zero.
func Header[U bitops.Word](chunk []U) U {
	var header U
	for j, w := range chunk {
		if w != 0 {
			header |= U(1) << uint(j)
		}
	}

	return header
}

// EmitPlanes writes the header word followed by the non-zero planes of a
// transposed chunk into dst, ascending bit index first. It returns the
// number of words written, 1 + popcount(header).
func EmitPlanes[U bitops.Word](chunk []U, header U, dst []U) int {
	dst[0] = header
	n := 1
	for _, w := range chunk {
		if w != 0 {
			dst[n] = w
			n++
		}
	}

	return n
}

// Encode encodes a full hypercube into dst and returns the number of words
// written. cube is transposed chunk by chunk in place; dst must hold at
// least len(cube) + len(cube)/B words, the worst case of all planes present.
func Encode[U bitops.Word](cube []U, dst []U) int {
	b := bitops.WordBits[U]()
	n := 0
	for base := 0; base < len(cube); base += b {
		chunk := cube[base : base+b]
		bitplane.Transpose(chunk)
		n += EmitPlanes(chunk, Header(chunk), dst[n:])
	}

	return n
}

// DecodeChunk reads one chunk's header and planes from src into chunk and
// transposes it back to the original words. It returns the number of source
// words consumed, or ErrTruncatedPayload if src ends early.
func DecodeChunk[U bitops.Word](src []U, chunk []U) (int, error) {
	if len(src) == 0 {
		return 0, ErrTruncatedPayload
	}
	header := src[0]
	pos := 1
	for j := range chunk {
		if header>>uint(j)&1 != 0 {
			if pos >= len(src) {
				return 0, ErrTruncatedPayload
			}
			chunk[j] = src[pos]
			pos++
		} else {
			chunk[j] = 0
		}
	}
	bitplane.Transpose(chunk)

	return pos, nil
}

// Decode decodes a full hypercube from src into cube, returning the number
// of source words consumed.
func Decode[U bitops.Word](src []U, cube []U) (int, error) {
	b := bitops.WordBits[U]()
	pos := 0
	for base := 0; base < len(cube); base += b {
		n, err := DecodeChunk(src[pos:], cube[base:base+b])
		if err != nil {
			return 0, err
		}
		pos += n
	}

	return pos, nil
}
