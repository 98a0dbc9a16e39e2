package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFor_DerivedConstants(t *testing.T) {
	tests := []struct {
		name     string
		dataType DataType
		dims     int
		side     int
		wordSize int
	}{
		{"float32 1D", Float32, 1, 4096, 4},
		{"float32 2D", Float32, 2, 64, 4},
		{"float32 3D", Float32, 3, 16, 4},
		{"float64 1D", Float64, 1, 4096, 8},
		{"float64 2D", Float64, 2, 64, 8},
		{"float64 3D", Float64, 3, 16, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := For(tt.dataType, tt.dims)
			require.NoError(t, err)
			require.Equal(t, tt.side, p.Side)
			require.Equal(t, tt.wordSize, p.WordSize)
			require.Equal(t, tt.wordSize*8, p.BitsPerWord)

			// Every profile covers exactly 4096 elements per hypercube.
			volume := 1
			for i := 0; i < p.Dims; i++ {
				volume *= p.Side
			}
			require.Equal(t, HypercubeSize, volume)
		})
	}
}

func TestFor_InvalidCombinations(t *testing.T) {
	_, err := For(Float32, 0)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = For(Float32, 4)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = For(DataType(0xFF), 2)
	require.ErrorIs(t, err, ErrInvalidDataType)
}

func TestCompressedBlockSizeBound(t *testing.T) {
	p := MustFor(Float32, 2)
	// 4096 words + 128 chunk headers, 4 bytes each.
	require.Equal(t, (4096+128)*4, p.CompressedBlockSizeBound())
	require.Equal(t, 4096+128, p.CompressedBlockWordBound())

	p = MustFor(Float64, 3)
	// 4096 words + 64 chunk headers, 8 bytes each.
	require.Equal(t, (4096+64)*8, p.CompressedBlockSizeBound())
	require.Equal(t, 64, p.NumChunks())
}

func TestProfileString(t *testing.T) {
	p := MustFor(Float64, 3)
	require.Equal(t, "Float64/3D(side=16)", p.String())
	require.Equal(t, "Unknown", DataType(0).String())
}
