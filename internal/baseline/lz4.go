package baseline

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor keeps
// internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 is the LZ4 block baseline: trades ratio for speed.
type LZ4 struct{}

var _ Codec = LZ4{}

// Compress compresses the input data as a single LZ4 block.
func (LZ4) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible input is stored raw with a marker so Decompress
		// can tell the two apart.
		out := make([]byte, len(data)+1)
		out[0] = 1
		copy(out[1:], data)

		return out, nil
	}

	out := make([]byte, n+1)
	copy(out[1:], dst[:n])

	return out, nil
}

// Decompress decompresses a block produced by Compress.
func (LZ4) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == 1 {
		out := make([]byte, len(data)-1)
		copy(out, data[1:])

		return out, nil
	}

	// Grow the destination geometrically until the block fits.
	size := len(data) * 4
	for {
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(data[1:], dst)
		if err == nil {
			return dst[:n], nil
		}
		if size > 1<<30 {
			return nil, errors.New("lz4 block does not fit in 1GiB")
		}
		size *= 2
	}
}
