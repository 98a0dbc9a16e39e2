// Package backend provides the three execution backends of the compressor:
// Serial (single thread), Parallel (worker pool) and WorkGroup (a software
// model of the cooperative GPU work-group schedule).
//
// All backends implement the same Codec contract and produce byte-identical
// streams for the same input; they differ only in how hypercubes are
// scheduled. A stream compressed by one backend decompresses with any other.
package backend

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/cubezip/cubezip/bitops"
	"github.com/cubezip/cubezip/endian"
	"github.com/cubezip/cubezip/hypercube"
	"github.com/cubezip/cubezip/internal/bitcast"
	"github.com/cubezip/cubezip/internal/options"
	"github.com/cubezip/cubezip/internal/pool"
	"github.com/cubezip/cubezip/layout"
	"github.com/cubezip/cubezip/ndarray"
	"github.com/cubezip/cubezip/profile"
	"github.com/cubezip/cubezip/stream"
	"github.com/cubezip/cubezip/transform"
	"github.com/cubezip/cubezip/zerocoder"
)

// Codec is the capability set shared by all backends.
//
// Compress writes the stream into out, which must hold at least
// CompressedSizeBound bytes, and returns the bytes written. Decompress
// consumes a well-formed stream entirely and returns the bytes consumed; a
// malformed stream yields an error and leaves dst unspecified.
type Codec[D ndarray.Sample] interface {
	CompressedSizeBound(ext ndarray.Extent) (int, error)
	Compress(src ndarray.Slice[D], out []byte) (int, error)
	Decompress(in []byte, dst ndarray.Slice[D]) (int, error)
}

// Config holds the tunables of the concurrent backends. Zero values select
// the defaults.
type Config struct {
	// Parallelism is the worker count of the Parallel backend.
	Parallelism int

	// GroupThreads is the number of cooperating threads per work group in
	// the WorkGroup backend.
	GroupThreads int

	// ConcurrentGroups bounds how many work groups are resident at once.
	ConcurrentGroups int
}

// Option configures a backend at construction time.
type Option = options.Option[*Config]

// WithParallelism sets the worker count of the Parallel backend.
func WithParallelism(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("parallelism must be positive, got %d", n)
		}
		c.Parallelism = n

		return nil
	}
}

// WithGroupThreads sets the cooperating thread count per work group.
func WithGroupThreads(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("group threads must be positive, got %d", n)
		}
		c.GroupThreads = n

		return nil
	}
}

// WithConcurrentGroups bounds the number of simultaneously resident work
// groups of the WorkGroup backend.
func WithConcurrentGroups(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("concurrent groups must be positive, got %d", n)
		}
		c.ConcurrentGroups = n

		return nil
	}
}

func newConfig(opts ...Option) (Config, error) {
	cfg := Config{
		Parallelism:      runtime.GOMAXPROCS(0),
		GroupThreads:     32,
		ConcurrentGroups: runtime.GOMAXPROCS(0),
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// dataTypeOf maps the sample type parameter to its profile data type.
func dataTypeOf[D ndarray.Sample]() profile.DataType {
	switch any([]D(nil)).(type) {
	case []float64:
		return profile.Float64
	default:
		return profile.Float32
	}
}

// codecBase carries the pieces every backend shares: the profile and the
// wire byte order.
type codecBase[D ndarray.Sample, U bitops.Word] struct {
	profile profile.Profile
	order   binary.ByteOrder
}

func newBase[D ndarray.Sample, U bitops.Word](dims int) (codecBase[D, U], error) {
	bitcast.Check[D, U]()
	p, err := profile.For(dataTypeOf[D](), dims)
	if err != nil {
		return codecBase[D, U]{}, err
	}

	return codecBase[D, U]{
		profile: p,
		order:   endian.Wire(),
	}, nil
}

// Profile returns the profile the codec was constructed for.
func (c *codecBase[D, U]) Profile() profile.Profile {
	return c.profile
}

// CompressedSizeBound returns the worst-case stream size for the extent.
func (c *codecBase[D, U]) CompressedSizeBound(ext ndarray.Extent) (int, error) {
	return stream.Bound(c.profile, ext)
}

// getWords draws a word slice of the right width from the scratch pools.
func getWords[U bitops.Word](n int) ([]U, func()) {
	var zero U
	switch any(zero).(type) {
	case uint64:
		s, cleanup := pool.GetUint64Slice(n)
		return any(s).([]U), cleanup
	default:
		s, cleanup := pool.GetUint32Slice(n)
		return any(s).([]U), cleanup
	}
}

// encodeHC runs the per-hypercube compress pipeline: load, block transform,
// zero-bit coding. It returns the payload length in words. cube is clobbered.
func encodeHC[D ndarray.Sample, U bitops.Word](src ndarray.Slice[D], lay layout.Layout, hc int, cube, payload []U) int {
	hypercube.Load(src, lay, hc, cube)
	transform.Forward(cube, lay.Profile.Dims, lay.Profile.Side)

	return zerocoder.Encode(cube, payload)
}

// decodeHC runs the inverse pipeline for one hypercube. The payload must be
// consumed exactly; trailing words mean the offset table and the coded
// stream disagree.
func decodeHC[D ndarray.Sample, U bitops.Word](payload []U, lay layout.Layout, hc int, cube []U, dst ndarray.Slice[D]) error {
	n, err := zerocoder.Decode(payload, cube)
	if err != nil {
		return fmt.Errorf("hypercube %d: %w", hc, err)
	}
	if n != len(payload) {
		return fmt.Errorf("%w: hypercube %d leaves %d trailing words",
			stream.ErrMalformedStream, hc, len(payload)-n)
	}
	transform.Inverse(cube, lay.Profile.Dims, lay.Profile.Side)
	hypercube.Store(cube, lay, hc, dst)

	return nil
}

// payloadSpan returns the byte range of hypercube hc's payload and its word
// count, rejecting spans larger than the per-block bound.
func payloadSpan(offsets []uint64, hc int, lay layout.Layout) (start, end, words int, err error) {
	start = int(offsets[hc])
	end = int(offsets[hc+1])
	words = (end - start) / lay.Profile.WordSize
	if words > lay.Profile.CompressedBlockWordBound() {
		return 0, 0, 0, fmt.Errorf("%w: hypercube %d spans %d words, bound is %d",
			stream.ErrMalformedStream, hc, words, lay.Profile.CompressedBlockWordBound())
	}

	return start, end, words, nil
}

// tile splits n work items across size threads, returning the half-open
// range owned by thread t. Leading threads take the remainder.
func tile(t, size, n int) (lo, hi int) {
	per := n / size
	rem := n % size
	lo = t*per + min(t, rem)
	hi = lo + per
	if t < rem {
		hi++
	}

	return lo, hi
}
