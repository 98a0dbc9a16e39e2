package bitcast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToWord_MatchesMathBits(t *testing.T) {
	values32 := []float32{0, 1.5, -1.5, float32(math.Inf(1)), float32(math.NaN())}
	for _, v := range values32 {
		require.Equal(t, math.Float32bits(v), ToWord[uint32](v))
	}

	values64 := []float64{0, math.Copysign(0, -1), 1e300, math.Inf(-1)}
	for _, v := range values64 {
		require.Equal(t, math.Float64bits(v), ToWord[uint64](v))
	}
}

func TestRoundTrip(t *testing.T) {
	w := uint64(0x7FF8000000000001) // a NaN payload must survive bit-exactly
	require.Equal(t, w, ToWord[uint64](ToSample[float64](w)))

	v := float32(math.Copysign(0, -1))
	require.Equal(t, uint32(0x80000000), ToWord[uint32](v))
}

func TestCheck(t *testing.T) {
	require.NotPanics(t, func() { Check[float32, uint32]() })
	require.NotPanics(t, func() { Check[float64, uint64]() })
	require.Panics(t, func() { Check[float32, uint64]() })
	require.Panics(t, func() { Check[float64, uint32]() })
}
