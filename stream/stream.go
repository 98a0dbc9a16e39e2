// Package stream assembles and disassembles the on-wire byte stream:
//
//	[offset table: one uint64 per hypercube]
//	[hypercube payloads, variable length]
//	[border: uncompressed samples, first-major order]
//
// Entry i of the offset table is the absolute byte offset of the END of
// hypercube i's payload, equivalently the start of payload i+1. The start of
// payload 0 is implied by the table size, so the conceptual offsets array
// offsets[0..num_hc] has offsets[0] = num_hc*8 and its last entry, the
// sentinel, equal to the absolute offset one past the last payload (table
// bytes plus all payload bytes). The border begins at the sentinel and runs
// to the end of the stream.
//
// All multi-byte fields are written in wire order (endian.Wire,
// little-endian); the order is threaded explicitly so tests can exercise
// the byte-swap path.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/internal/bitcast"
	"github.com/cubezip/cubezip/layout"
	"github.com/cubezip/cubezip/ndarray"
	"github.com/cubezip/cubezip/profile"
)

var (
	ErrBufferTooSmall  = errors.New("output buffer too small")
	ErrMalformedStream = errors.New("malformed stream")
)

// Bound returns the compressed size bound in bytes for the given profile and
// extent: worst-case payloads, the offset table, one sentinel entry of
// slack, and the border.
func Bound(p profile.Profile, ext ndarray.Extent) (int, error) {
	lay, err := layout.New(p, ext)
	if err != nil {
		return 0, err
	}

	return BoundFor(lay), nil
}

// BoundFor is Bound for an already-computed layout.
func BoundFor(lay layout.Layout) int {
	return lay.NumHypercubes*lay.Profile.CompressedBlockSizeBound() +
		lay.OffsetTableBytes() + layout.OffsetEntrySize + lay.BorderBytes()
}

// PutWords serializes words into dst, which must hold at least
// len(words) * word size bytes.
func PutWords[U bitops.Word](dst []byte, order binary.ByteOrder, words []U) {
	switch ws := any(words).(type) {
	case []uint32:
		for i, w := range ws {
			order.PutUint32(dst[i*4:], w)
		}
	case []uint64:
		for i, w := range ws {
			order.PutUint64(dst[i*8:], w)
		}
	}
}

// ReadWords deserializes len(words) words from src.
func ReadWords[U bitops.Word](src []byte, order binary.ByteOrder, words []U) {
	switch ws := any(words).(type) {
	case []uint32:
		for i := range ws {
			ws[i] = order.Uint32(src[i*4:])
		}
	case []uint64:
		for i := range ws {
			ws[i] = order.Uint64(src[i*8:])
		}
	}
}

// PutOffsetTable writes the end offset of every hypercube payload at the
// head of out. ends[i] must be the absolute offset one past payload i.
func PutOffsetTable(out []byte, order binary.ByteOrder, ends []uint64) {
	for i, end := range ends {
		order.PutUint64(out[i*layout.OffsetEntrySize:], end)
	}
}

// ReadOffsetTable parses and validates the offset table of in.
//
// The returned slice holds the full conceptual offsets array of
// lay.NumHypercubes+1 entries: offsets[0] is the implied table size,
// offsets[i+1] is stored entry i, and the last entry is the sentinel where
// the border begins. Payload i occupies in[offsets[i]:offsets[i+1]].
//
// Returns ErrMalformedStream when the table does not fit, offsets are not
// strictly increasing, an offset is not word-aligned relative to the payload
// region, or the region past the sentinel does not match the border length.
func ReadOffsetTable(in []byte, order binary.ByteOrder, lay layout.Layout) ([]uint64, error) {
	numHC := lay.NumHypercubes
	tableBytes := lay.OffsetTableBytes()
	if len(in) < tableBytes {
		return nil, fmt.Errorf("%w: %d bytes cannot hold a %d-entry offset table",
			ErrMalformedStream, len(in), numHC)
	}

	offsets := make([]uint64, numHC+1)
	offsets[0] = uint64(tableBytes)
	for i := 0; i < numHC; i++ {
		offsets[i+1] = order.Uint64(in[i*layout.OffsetEntrySize:])
	}

	wordSize := uint64(lay.Profile.WordSize)
	for i := 0; i < numHC; i++ {
		if offsets[i+1] <= offsets[i] {
			return nil, fmt.Errorf("%w: offset table not monotonic at entry %d",
				ErrMalformedStream, i)
		}
		if offsets[i+1] > uint64(len(in)) {
			return nil, fmt.Errorf("%w: entry %d points past the stream",
				ErrMalformedStream, i)
		}
		if (offsets[i+1]-offsets[i])%wordSize != 0 {
			return nil, fmt.Errorf("%w: payload %d is not word-aligned",
				ErrMalformedStream, i)
		}
	}

	if offsets[numHC]+uint64(lay.BorderBytes()) != uint64(len(in)) {
		return nil, fmt.Errorf("%w: border region is %d bytes, expected %d",
			ErrMalformedStream, uint64(len(in))-offsets[numHC], lay.BorderBytes())
	}

	return offsets, nil
}

// PutBorder appends the border region to out: every element outside the
// covered grid, bit-cast and serialized in first-major order. It returns the
// number of bytes written, lay.BorderBytes().
func PutBorder[D ndarray.Sample](out []byte, order binary.ByteOrder, lay layout.Layout, src ndarray.Slice[D]) int {
	n := 0
	switch data := any(src.Data).(type) {
	case []float32:
		lay.ForEachBorderRun(func(offset, length int) {
			for _, v := range data[offset : offset+length] {
				order.PutUint32(out[n:], bitcast.ToWord[uint32](v))
				n += 4
			}
		})
	case []float64:
		lay.ForEachBorderRun(func(offset, length int) {
			for _, v := range data[offset : offset+length] {
				order.PutUint64(out[n:], bitcast.ToWord[uint64](v))
				n += 8
			}
		})
	}

	return n
}

// ReadBorder restores the border region from in into dst, the inverse of
// PutBorder. It returns the number of bytes consumed.
func ReadBorder[D ndarray.Sample](in []byte, order binary.ByteOrder, lay layout.Layout, dst ndarray.Slice[D]) (int, error) {
	if len(in) < lay.BorderBytes() {
		return 0, fmt.Errorf("%w: border truncated to %d of %d bytes",
			ErrMalformedStream, len(in), lay.BorderBytes())
	}

	n := 0
	switch data := any(dst.Data).(type) {
	case []float32:
		lay.ForEachBorderRun(func(offset, length int) {
			for i := 0; i < length; i++ {
				data[offset+i] = bitcast.ToSample[float32](order.Uint32(in[n:]))
				n += 4
			}
		})
	case []float64:
		lay.ForEachBorderRun(func(offset, length int) {
			for i := 0; i < length; i++ {
				data[offset+i] = bitcast.ToSample[float64](order.Uint64(in[n:]))
				n += 8
			}
		})
	}

	return n, nil
}
