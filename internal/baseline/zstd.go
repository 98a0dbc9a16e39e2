package baseline

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Pooled encoder/decoder instances: the zstd library is designed to operate
// without allocations after warmup when instances are reused.
var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}
			return encoder
		},
	}
	zstdDecoderPool = sync.Pool{
		New: func() any {
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
			}
			return decoder
		},
	}
)

// Zstd is the Zstandard baseline: the dense reference point.
type Zstd struct{}

var _ Codec = Zstd{}

// Compress compresses the input data with Zstandard at the default level.
func (Zstd) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstandard data.
func (Zstd) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	return decoder.DecodeAll(data, nil)
}
