package backend

import (
	"sync"

	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/bitplane"
	"github.com/cubezip/cubezip/hypercube"
	"github.com/cubezip/cubezip/internal/pool"
	"github.com/cubezip/cubezip/layout"
	"github.com/cubezip/cubezip/ndarray"
	"github.com/cubezip/cubezip/profile"
	"github.com/cubezip/cubezip/stream"
	"github.com/cubezip/cubezip/transform"
	"github.com/cubezip/cubezip/zerocoder"
)

// WorkGroup models the GPU execution schedule: one work group per
// hypercube, a fixed number of cooperating threads per group sharing the
// cube buffer, and barriers between the phases that hand data across
// threads (axis passes of the transform, transpose versus header build,
// scan steps).
//
// Groups never synchronize with each other inside a kernel. Compression
// runs as three passes: an encode kernel that stages every group's payload
// and length, an inclusive scan over the lengths, and a compaction pass
// that copies payloads to their final offsets. The resulting stream is
// byte-identical to the other backends'.
type WorkGroup[D ndarray.Sample, U bitops.Word] struct {
	codecBase[D, U]
	groupThreads     int
	concurrentGroups int
}

var _ Codec[float32] = (*WorkGroup[float32, uint32])(nil)

// NewWorkGroup creates a work-group codec for the given dimensionality.
// D and U must be width-matched (float32/uint32 or float64/uint64).
func NewWorkGroup[D ndarray.Sample, U bitops.Word](dims int, opts ...Option) (*WorkGroup[D, U], error) {
	base, err := newBase[D, U](dims)
	if err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &WorkGroup[D, U]{
		codecBase:        base,
		groupThreads:     cfg.GroupThreads,
		concurrentGroups: cfg.ConcurrentGroups,
	}, nil
}

// runGroup launches the group's threads and blocks until all have finished
// body, which receives the thread id and the group barrier.
func (c *WorkGroup[D, U]) runGroup(body func(t int, bar *barrier)) {
	bar := newBarrier(c.groupThreads)
	var wg sync.WaitGroup
	for t := 0; t < c.groupThreads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			body(t, bar)
		}(t)
	}
	wg.Wait()
}

// encodeGroup runs the cooperative compress pipeline for one hypercube and
// returns the payload length in words. cube, headers and the two scan
// buffers play the role of work-group local memory.
func (c *WorkGroup[D, U]) encodeGroup(src ndarray.Slice[D], lay layout.Layout, g int,
	cube, payload, headers []U, lensA, lensB []int) int {
	size := c.groupThreads
	dims := lay.Profile.Dims
	side := lay.Profile.Side
	wordBits := lay.Profile.BitsPerWord
	numChunks := lay.Profile.NumChunks()
	numLines := profile.HypercubeSize / side

	var totalWords int
	c.runGroup(func(t int, bar *barrier) {
		lo, hi := tile(t, size, profile.HypercubeSize)
		hypercube.LoadRange(src, lay, g, lo, hi, cube)
		bar.wait()

		transform.Rotate(cube[lo:hi])
		bar.wait()

		// Separable difference passes; threads own whole lines, and a
		// barrier separates consecutive axes because the next pass reads
		// across this one's lines.
		llo, lhi := tile(t, size, numLines)
		stride := 1
		for axis := 0; axis < dims; axis++ {
			for l := llo; l < lhi; l++ {
				transform.DiffLine(cube, transform.LineBase(stride, side, l), stride, side)
			}
			stride *= side
			bar.wait()
		}

		transform.Remap(cube[lo:hi])
		bar.wait()

		// Transpose each owned chunk in place, then publish its header and
		// word count for the scan.
		clo, chi := tile(t, size, numChunks)
		for ch := clo; ch < chi; ch++ {
			chunk := cube[ch*wordBits : (ch+1)*wordBits]
			bitplane.Transpose(chunk)
			h := zerocoder.Header(chunk)
			headers[ch] = h
			lensA[ch] = 1 + bitops.PopCount(h)
		}
		bar.wait()

		// Hillis-Steele inclusive scan over the chunk lengths. Every thread
		// performs the same swap sequence, so cur/next stay consistent.
		cur, next := lensA, lensB
		for step := 1; step < numChunks; step <<= 1 {
			for ch := clo; ch < chi; ch++ {
				v := cur[ch]
				if ch >= step {
					v += cur[ch-step]
				}
				next[ch] = v
			}
			bar.wait()
			cur, next = next, cur
		}

		// Emit each owned chunk at its scanned offset.
		for ch := clo; ch < chi; ch++ {
			start := cur[ch] - (1 + bitops.PopCount(headers[ch]))
			zerocoder.EmitPlanes(cube[ch*wordBits:(ch+1)*wordBits], headers[ch], payload[start:])
		}

		if t == 0 {
			totalWords = cur[numChunks-1]
		}
	})

	return totalWords
}

// decodeGroup runs the cooperative decompress pipeline for one hypercube.
// chunkOff is numChunks+1 scratch for the payload walk.
func (c *WorkGroup[D, U]) decodeGroup(payload []U, lay layout.Layout, g int,
	cube []U, chunkOff []int, dst ndarray.Slice[D]) error {
	size := c.groupThreads
	dims := lay.Profile.Dims
	side := lay.Profile.Side
	wordBits := lay.Profile.BitsPerWord
	numChunks := lay.Profile.NumChunks()
	numLines := profile.HypercubeSize / side

	var groupErr error
	threadErrs := make([]error, size)
	c.runGroup(func(t int, bar *barrier) {
		// Chunk boundaries depend on every preceding header, so one thread
		// walks the payload and publishes the offsets.
		if t == 0 {
			pos := 0
			for ch := 0; ch < numChunks; ch++ {
				chunkOff[ch] = pos
				if pos >= len(payload) {
					groupErr = zerocoder.ErrTruncatedPayload
					break
				}
				pos += 1 + bitops.PopCount(payload[pos])
			}
			chunkOff[numChunks] = pos
			if groupErr == nil && pos != len(payload) {
				groupErr = stream.ErrMalformedStream
			}
		}
		bar.wait()
		if groupErr != nil {
			return
		}

		clo, chi := tile(t, size, numChunks)
		for ch := clo; ch < chi; ch++ {
			if _, err := zerocoder.DecodeChunk(payload[chunkOff[ch]:], cube[ch*wordBits:(ch+1)*wordBits]); err != nil {
				// Unreachable after the walk above validated the spans.
				threadErrs[t] = err
			}
		}
		bar.wait()

		lo, hi := tile(t, size, profile.HypercubeSize)
		transform.Remap(cube[lo:hi])
		bar.wait()

		llo, lhi := tile(t, size, numLines)
		stride := 1
		for axis := 0; axis < dims-1; axis++ {
			stride *= side
		}
		for axis := dims - 1; axis >= 0; axis-- {
			for l := llo; l < lhi; l++ {
				transform.SumLine(cube, transform.LineBase(stride, side, l), stride, side)
			}
			stride /= side
			bar.wait()
		}

		transform.Unrotate(cube[lo:hi])
		bar.wait()

		hypercube.StoreRange(cube, lay, g, lo, hi, dst)
	})

	if groupErr != nil {
		return groupErr
	}
	for _, err := range threadErrs {
		if err != nil {
			return err
		}
	}

	return nil
}

// Compress encodes src into out and returns the bytes written. The stream
// is byte-identical to the Serial backend's for the same input.
func (c *WorkGroup[D, U]) Compress(src ndarray.Slice[D], out []byte) (int, error) {
	lay, err := layout.New(c.profile, src.Extent)
	if err != nil {
		return 0, err
	}
	if len(out) < stream.BoundFor(lay) {
		return 0, stream.ErrBufferTooSmall
	}

	numHC := lay.NumHypercubes
	blockBound := c.profile.CompressedBlockSizeBound()
	numChunks := c.profile.NumChunks()

	staging := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(staging)
	staging.Resize(numHC * blockBound)
	scratch := staging.Bytes()

	lengths, putLengths := pool.GetIntSlice(numHC)
	defer putLengths()

	// Encode kernel: one group per hypercube, no cross-group
	// synchronization; residency is bounded by the semaphore.
	sem := make(chan struct{}, c.concurrentGroups)
	var wg sync.WaitGroup
	for g := 0; g < numHC; g++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			defer func() { <-sem }()

			cube, putCube := getWords[U](profile.HypercubeSize)
			defer putCube()
			payload, putPayload := getWords[U](c.profile.CompressedBlockWordBound())
			defer putPayload()
			headers, putHeaders := getWords[U](numChunks)
			defer putHeaders()
			lensA, putLensA := pool.GetIntSlice(numChunks)
			defer putLensA()
			lensB, putLensB := pool.GetIntSlice(numChunks)
			defer putLensB()

			words := c.encodeGroup(src, lay, g, cube, payload, headers, lensA, lensB)
			stream.PutWords(scratch[g*blockBound:], c.order, payload[:words])
			lengths[g] = words * c.profile.WordSize
		}(g)
	}
	wg.Wait()

	// Scan kernel: inclusive scan over per-group byte lengths.
	ends, putEnds := pool.GetUint64Slice(numHC)
	defer putEnds()
	scanLengths(lengths, uint64(lay.OffsetTableBytes()), ends)

	// Compaction kernel: with offsets fixed, copies cannot collide.
	workers := min(c.concurrentGroups, numHC)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			lo, hi := tile(w, workers, numHC)
			for g := lo; g < hi; g++ {
				start := int(ends[g]) - lengths[g]
				copy(out[start:], scratch[g*blockBound:g*blockBound+lengths[g]])
			}
		}(w)
	}
	wg.Wait()

	stream.PutOffsetTable(out, c.order, ends)
	cursor := lay.OffsetTableBytes()
	if numHC > 0 {
		cursor = int(ends[numHC-1])
	}
	cursor += stream.PutBorder(out[cursor:], c.order, lay, src)

	return cursor, nil
}

// Decompress decodes a stream produced by any backend into dst and returns
// the bytes consumed.
func (c *WorkGroup[D, U]) Decompress(in []byte, dst ndarray.Slice[D]) (int, error) {
	lay, err := layout.New(c.profile, dst.Extent)
	if err != nil {
		return 0, err
	}
	offsets, err := stream.ReadOffsetTable(in, c.order, lay)
	if err != nil {
		return 0, err
	}

	numHC := lay.NumHypercubes
	numChunks := c.profile.NumChunks()
	groupErrs := make([]error, numHC)

	sem := make(chan struct{}, c.concurrentGroups)
	var wg sync.WaitGroup
	for g := 0; g < numHC; g++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			defer func() { <-sem }()

			start, end, words, err := payloadSpan(offsets, g, lay)
			if err != nil {
				groupErrs[g] = err
				return
			}

			cube, putCube := getWords[U](profile.HypercubeSize)
			defer putCube()
			payload, putPayload := getWords[U](c.profile.CompressedBlockWordBound())
			defer putPayload()
			chunkOff, putChunkOff := pool.GetIntSlice(numChunks + 1)
			defer putChunkOff()

			stream.ReadWords(in[start:end], c.order, payload[:words])
			groupErrs[g] = c.decodeGroup(payload[:words], lay, g, cube, chunkOff, dst)
		}(g)
	}
	wg.Wait()
	for _, err := range groupErrs {
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

// scanLengths performs a double-buffered log-step inclusive scan over the
// byte lengths, mirroring the hierarchical device scan, and adds base (the
// offset table size) to every element to yield absolute end offsets.
func scanLengths(lengths []int, base uint64, ends []uint64) {
	n := len(lengths)
	if n == 0 {
		return
	}
	cur, putCur := pool.GetIntSlice(n)
	defer putCur()
	next, putNext := pool.GetIntSlice(n)
	defer putNext()
	copy(cur, lengths)

	for step := 1; step < n; step <<= 1 {
		for i := 0; i < n; i++ {
			v := cur[i]
			if i >= step {
				v += cur[i-step]
			}
			next[i] = v
		}
		cur, next = next, cur
	}

	for i := 0; i < n; i++ {
		ends[i] = base + uint64(cur[i])
	}
}
