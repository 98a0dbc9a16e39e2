package baseline

import "github.com/klauspost/compress/s2"

// S2 is the Snappy-compatible S2 baseline: very fast, moderate ratio.
type S2 struct{}

var _ Codec = S2{}

// Compress compresses the input data using S2 block compression.
func (S2) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 block data.
func (S2) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
