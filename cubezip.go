// Package cubezip provides a lossless compressor for dense multidimensional
// arrays of IEEE-754 floating-point samples (single and double precision,
// 1D/2D/3D).
//
// The input is partitioned into fixed-side hypercubes of 4096 elements. Each
// hypercube passes through a reversible block transform (per-axis
// differencing plus a sign-magnitude remap) and a zero-bit-plane coder that
// transposes the cube into bit-planes and emits only the non-zero ones. The
// per-hypercube payloads are assembled behind an offset table; input that
// does not fill a whole hypercube travels verbatim in a border region. The
// stream is little-endian and self-contained.
//
// # Core Features
//
//   - Bit-exact round trip, including NaN payloads and signed zeros
//   - Three execution backends (serial, worker pool, cooperative work
//     groups) producing byte-identical streams
//   - One uniform wire format across all profiles and backends
//   - Pooled scratch buffers: cube, payload and staging buffers are reused
//     across calls; small per-call allocations (layout geometry, offset
//     tables) remain
//
// # Basic Usage
//
// Compressing a 2D float32 array:
//
//	codec, _ := cubezip.NewSerialFloat32(2)
//	compressed, _ := cubezip.Compress(codec, data, ndarray.Extent{rows, cols})
//
//	restored, _ := cubezip.Decompress(codec, compressed, ndarray.Extent{rows, cols})
//
// For full control over buffers and backend tuning, use the backend package
// directly; this package provides convenience wrappers for the common
// cases.
package cubezip

import (
	"github.com/cubezip/cubezip/backend"
	"github.com/cubezip/cubezip/internal/fingerprint"
	"github.com/cubezip/cubezip/ndarray"
)

// NewSerialFloat32 creates a single-threaded codec for float32 arrays of
// the given dimensionality (1, 2 or 3).
func NewSerialFloat32(dims int) (backend.Codec[float32], error) {
	return backend.NewSerial[float32, uint32](dims)
}

// NewSerialFloat64 creates a single-threaded codec for float64 arrays of
// the given dimensionality (1, 2 or 3).
func NewSerialFloat64(dims int) (backend.Codec[float64], error) {
	return backend.NewSerial[float64, uint64](dims)
}

// NewParallelFloat32 creates a multi-threaded codec for float32 arrays.
//
// Available options:
//   - backend.WithParallelism(n)
func NewParallelFloat32(dims int, opts ...backend.Option) (backend.Codec[float32], error) {
	return backend.NewParallel[float32, uint32](dims, opts...)
}

// NewParallelFloat64 creates a multi-threaded codec for float64 arrays.
func NewParallelFloat64(dims int, opts ...backend.Option) (backend.Codec[float64], error) {
	return backend.NewParallel[float64, uint64](dims, opts...)
}

// NewWorkGroupFloat32 creates a codec for float32 arrays that executes the
// cooperative work-group schedule: one group of synchronized threads per
// hypercube, a separate scan pass over payload lengths, and a compaction
// pass. Its output is byte-identical to the other backends'.
//
// Available options:
//   - backend.WithGroupThreads(n)
//   - backend.WithConcurrentGroups(n)
func NewWorkGroupFloat32(dims int, opts ...backend.Option) (backend.Codec[float32], error) {
	return backend.NewWorkGroup[float32, uint32](dims, opts...)
}

// NewWorkGroupFloat64 creates a work-group codec for float64 arrays.
func NewWorkGroupFloat64(dims int, opts ...backend.Option) (backend.Codec[float64], error) {
	return backend.NewWorkGroup[float64, uint64](dims, opts...)
}

// Compress compresses data interpreted as an array of the given extent and
// returns a freshly allocated stream of exactly the compressed size.
//
// data must hold at least extent.Elements() samples. Callers that manage
// their own buffers should use codec.Compress directly with a buffer of
// codec.CompressedSizeBound bytes.
func Compress[D ndarray.Sample](codec backend.Codec[D], data []D, extent ndarray.Extent) ([]byte, error) {
	src, err := ndarray.NewSlice(data, extent)
	if err != nil {
		return nil, err
	}
	bound, err := codec.CompressedSizeBound(extent)
	if err != nil {
		return nil, err
	}

	out := make([]byte, bound)
	n, err := codec.Compress(src, out)
	if err != nil {
		return nil, err
	}

	return out[:n:n], nil
}

// Decompress decompresses a stream into a freshly allocated array of the
// given extent. The extent must match the one the stream was compressed
// with; it is not part of the stream.
func Decompress[D ndarray.Sample](codec backend.Codec[D], in []byte, extent ndarray.Extent) ([]D, error) {
	if err := extent.Validate(); err != nil {
		return nil, err
	}
	data := make([]D, extent.Elements())
	dst, err := ndarray.NewSlice(data, extent)
	if err != nil {
		return nil, err
	}
	if _, err := codec.Decompress(in, dst); err != nil {
		return nil, err
	}

	return data, nil
}

// Fingerprint returns the xxHash64 digest of a compressed stream. It is a
// convenience for logging and cross-backend sanity checks, not part of the
// wire format.
func Fingerprint(stream []byte) uint64 {
	return fingerprint.Sum(stream)
}
