package backend

import (
	"sync"

	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/internal/pool"
	"github.com/cubezip/cubezip/layout"
	"github.com/cubezip/cubezip/ndarray"
	"github.com/cubezip/cubezip/profile"
	"github.com/cubezip/cubezip/stream"
)

// Parallel partitions hypercube indices statically across a pool of
// workers.
//
// Each worker owns its scratch buffers and encodes its tiles into a
// reserved region of a staging buffer; a single-threaded prefix sum over
// the lengths then fixes every payload's final offset, and the workers copy
// their payloads into the output concurrently, each to a disjoint range.
type Parallel[D ndarray.Sample, U bitops.Word] struct {
	codecBase[D, U]
	workers int
}

var _ Codec[float64] = (*Parallel[float64, uint64])(nil)

// NewParallel creates a multi-threaded codec for the given dimensionality.
// D and U must be width-matched (float32/uint32 or float64/uint64).
func NewParallel[D ndarray.Sample, U bitops.Word](dims int, opts ...Option) (*Parallel[D, U], error) {
	base, err := newBase[D, U](dims)
	if err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Parallel[D, U]{codecBase: base, workers: cfg.Parallelism}, nil
}

// Compress encodes src into out and returns the bytes written. The stream
// is byte-identical to the Serial backend's for the same input.
func (c *Parallel[D, U]) Compress(src ndarray.Slice[D], out []byte) (int, error) {
	lay, err := layout.New(c.profile, src.Extent)
	if err != nil {
		return 0, err
	}
	if len(out) < stream.BoundFor(lay) {
		return 0, stream.ErrBufferTooSmall
	}

	numHC := lay.NumHypercubes
	blockBound := c.profile.CompressedBlockSizeBound()

	staging := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(staging)
	staging.Resize(numHC * blockBound)
	scratch := staging.Bytes()

	lengths, putLengths := pool.GetIntSlice(numHC)
	defer putLengths()

	workers := min(c.workers, numHC)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			cube, putCube := getWords[U](profile.HypercubeSize)
			defer putCube()
			payload, putPayload := getWords[U](c.profile.CompressedBlockWordBound())
			defer putPayload()

			lo, hi := tile(w, workers, numHC)
			for hc := lo; hc < hi; hc++ {
				words := encodeHC(src, lay, hc, cube, payload)
				stream.PutWords(scratch[hc*blockBound:], c.order, payload[:words])
				lengths[hc] = words * c.profile.WordSize
			}
		}(w)
	}
	wg.Wait()

	ends, putEnds := pool.GetUint64Slice(numHC)
	defer putEnds()
	cursor := lay.OffsetTableBytes()
	for hc := 0; hc < numHC; hc++ {
		cursor += lengths[hc]
		ends[hc] = uint64(cursor)
	}

	// Compaction: every payload's destination range is disjoint now that
	// offsets are known.
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			lo, hi := tile(w, workers, numHC)
			for hc := lo; hc < hi; hc++ {
				start := int(ends[hc]) - lengths[hc]
				copy(out[start:], scratch[hc*blockBound:hc*blockBound+lengths[hc]])
			}
		}(w)
	}
	wg.Wait()

	stream.PutOffsetTable(out, c.order, ends)
	cursor += stream.PutBorder(out[cursor:], c.order, lay, src)

	return cursor, nil
}

// Decompress decodes a stream produced by any backend into dst and returns
// the bytes consumed. Hypercubes decode concurrently into disjoint regions
// of dst.
func (c *Parallel[D, U]) Decompress(in []byte, dst ndarray.Slice[D]) (int, error) {
	lay, err := layout.New(c.profile, dst.Extent)
	if err != nil {
		return 0, err
	}
	offsets, err := stream.ReadOffsetTable(in, c.order, lay)
	if err != nil {
		return 0, err
	}

	numHC := lay.NumHypercubes
	workers := min(c.workers, numHC)
	workerErrs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			cube, putCube := getWords[U](profile.HypercubeSize)
			defer putCube()
			payload, putPayload := getWords[U](c.profile.CompressedBlockWordBound())
			defer putPayload()

			lo, hi := tile(w, workers, numHC)
			for hc := lo; hc < hi; hc++ {
				start, end, words, err := payloadSpan(offsets, hc, lay)
				if err != nil {
					workerErrs[w] = err
					return
				}
				stream.ReadWords(in[start:end], c.order, payload[:words])
				if err := decodeHC(payload[:words], lay, hc, cube, dst); err != nil {
					workerErrs[w] = err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	for _, err := range workerErrs {
		if err != nil {
			return 0, err
		}
	}

	borderStart := int(offsets[numHC])
	n, err := stream.ReadBorder(in[borderStart:], c.order, lay, dst)
	if err != nil {
		return 0, err
	}

	return borderStart + n, nil
}
