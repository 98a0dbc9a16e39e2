// Package bitplane transposes chunks of B words, where B is the word width
// in bits, so that each output word holds one bit-plane of the chunk.
//
// Viewing the chunk as a BxB bit matrix with word i as row i and the MSB as
// column 0, Transpose swaps rows and columns: output word j collects bit
// B-1-j of every input word, MSB-first. The operation is an involution.
package bitplane

import "github.com/cubezip/cubezip/bitops"

// Transpose transposes the BxB bit matrix held in chunk, in place. chunk
// must hold exactly B words, B = bitops.WordBits[U]().
//
// The implementation is the classic recursive block swap: at step j it
// exchanges the off-diagonal jxj sub-blocks of every 2jx2j tile, using a
// mask of alternating j-bit groups.
func Transpose[U bitops.Word](chunk []U) {
	b := bitops.WordBits[U]()
	for j := b / 2; j != 0; j >>= 1 {
		// Alternating groups of j set bits, starting at the LSB.
		m := ^U(0) / ((U(1) << uint(j)) + 1)
		for k := 0; k < b; k = (k + j + 1) &^ j {
			t := (chunk[k] ^ (chunk[k+j] >> uint(j))) & m
			chunk[k] ^= t
			chunk[k+j] ^= t << uint(j)
		}
	}
}
