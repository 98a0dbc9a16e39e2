package backend

import (
	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/internal/pool"
	"github.com/cubezip/cubezip/layout"
	"github.com/cubezip/cubezip/ndarray"
	"github.com/cubezip/cubezip/profile"
	"github.com/cubezip/cubezip/stream"
)

// Serial processes hypercubes one at a time on the calling goroutine.
//
// Payloads are encoded directly at their final stream position: the running
// byte cursor after hypercube i is exactly offset entry i, so the table is
// filled in on the way and written once at the head of the stream.
type Serial[D ndarray.Sample, U bitops.Word] struct {
	codecBase[D, U]
}

var _ Codec[float32] = (*Serial[float32, uint32])(nil)

// NewSerial creates a single-threaded codec for the given dimensionality.
// D and U must be width-matched (float32/uint32 or float64/uint64).
func NewSerial[D ndarray.Sample, U bitops.Word](dims int) (*Serial[D, U], error) {
	base, err := newBase[D, U](dims)
	if err != nil {
		return nil, err
	}

	return &Serial[D, U]{codecBase: base}, nil
}

// Compress encodes src into out and returns the bytes written.
func (c *Serial[D, U]) Compress(src ndarray.Slice[D], out []byte) (int, error) {
	lay, err := layout.New(c.profile, src.Extent)
	if err != nil {
		return 0, err
	}
	if len(out) < stream.BoundFor(lay) {
		return 0, stream.ErrBufferTooSmall
	}

	cube, putCube := getWords[U](profile.HypercubeSize)
	defer putCube()
	payload, putPayload := getWords[U](c.profile.CompressedBlockWordBound())
	defer putPayload()
	ends, putEnds := pool.GetUint64Slice(lay.NumHypercubes)
	defer putEnds()

	cursor := lay.OffsetTableBytes()
	for hc := 0; hc < lay.NumHypercubes; hc++ {
		words := encodeHC(src, lay, hc, cube, payload)
		stream.PutWords(out[cursor:], c.order, payload[:words])
		cursor += words * c.profile.WordSize
		ends[hc] = uint64(cursor)
	}
	stream.PutOffsetTable(out, c.order, ends)
	cursor += stream.PutBorder(out[cursor:], c.order, lay, src)

	return cursor, nil
}

// Decompress decodes a stream produced by any backend into dst and returns
// the bytes consumed, len(in) for a well-formed stream.
func (c *Serial[D, U]) Decompress(in []byte, dst ndarray.Slice[D]) (int, error) {
	lay, err := layout.New(c.profile, dst.Extent)
	if err != nil {
		return 0, err
	}
	offsets, err := stream.ReadOffsetTable(in, c.order, lay)
	if err != nil {
		return 0, err
	}

	cube, putCube := getWords[U](profile.HypercubeSize)
	defer putCube()
	payload, putPayload := getWords[U](c.profile.CompressedBlockWordBound())
	defer putPayload()

	for hc := 0; hc < lay.NumHypercubes; hc++ {
		start, end, words, err := payloadSpan(offsets, hc, lay)
		if err != nil {
			return 0, err
		}
		stream.ReadWords(in[start:end], c.order, payload[:words])
		if err := decodeHC(payload[:words], lay, hc, cube, dst); err != nil {
			return 0, err
		}
	}

	borderStart := int(offsets[lay.NumHypercubes])
	n, err := stream.ReadBorder(in[borderStart:], c.order, lay, dst)
	if err != nil {
		return 0, err
	}

	return borderStart + n, nil
}
