// Package baseline wraps general-purpose byte compressors used as reference
// points when measuring the zero-bit-plane coder.
//
// The baselines never touch the wire format: layering a generic compressor
// over the coded stream would break the fixed offset-table layout and the
// byte-identical cross-backend guarantee. They exist so benchmarks can
// report the coder's ratio and throughput against a fast (LZ4, S2) and a
// dense (Zstd) generic coder over the same bytes.
package baseline

// Codec compresses and decompresses a byte payload.
//
// Memory management follows one rule throughout: returned slices are newly
// allocated and owned by the caller; input slices are never modified.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Codecs returns every baseline codec keyed by display name.
func Codecs() map[string]Codec {
	return map[string]Codec{
		"s2":   S2{},
		"lz4":  LZ4{},
		"zstd": Zstd{},
	}
}
