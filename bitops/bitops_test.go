package bitops

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordBits(t *testing.T) {
	require.Equal(t, 32, WordBits[uint32]())
	require.Equal(t, 64, WordBits[uint64]())
}

func TestRotateLeft1_Inverse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		x32 := rng.Uint32()
		require.Equal(t, x32, RotateRight1(RotateLeft1(x32)))

		x64 := rng.Uint64()
		require.Equal(t, x64, RotateRight1(RotateLeft1(x64)))
	}
}

func TestRotateLeft1_KnownValues(t *testing.T) {
	require.Equal(t, uint32(0x00000001), RotateLeft1(uint32(0x80000000)))
	require.Equal(t, uint32(0x00000002), RotateLeft1(uint32(0x00000001)))
	require.Equal(t, uint64(0x0000000000000001), RotateLeft1(uint64(0x8000000000000000)))
	require.Equal(t, uint64(0x8000000000000000), RotateRight1(uint64(0x0000000000000001)))
}

func TestComplementNegative_Involution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		x32 := rng.Uint32()
		require.Equal(t, x32, ComplementNegative(ComplementNegative(x32)))

		x64 := rng.Uint64()
		require.Equal(t, x64, ComplementNegative(ComplementNegative(x64)))
	}
}

func TestComplementNegative_KnownValues(t *testing.T) {
	// Sign bit clear: identity.
	require.Equal(t, uint32(0x12345678), ComplementNegative(uint32(0x12345678)))

	// Sign bit set: lower bits flipped, sign bit preserved.
	require.Equal(t, uint32(0xFFFFFFFF), ComplementNegative(uint32(0x80000000)))
	require.Equal(t, uint32(0x80000000), ComplementNegative(uint32(0xFFFFFFFF)))
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), ComplementNegative(uint64(0x8000000000000000)))
}

func TestPopCount(t *testing.T) {
	require.Equal(t, 0, PopCount(uint32(0)))
	require.Equal(t, 32, PopCount(uint32(0xFFFFFFFF)))
	require.Equal(t, 64, PopCount(uint64(0xFFFFFFFFFFFFFFFF)))
	require.Equal(t, 1, PopCount(uint64(0x8000000000000000)))
	require.Equal(t, 8, PopCount(uint32(0xFF)))
}

func TestIPow(t *testing.T) {
	require.Equal(t, 1, IPow(4096, 0))
	require.Equal(t, 4096, IPow(4096, 1))
	require.Equal(t, 4096, IPow(64, 2))
	require.Equal(t, 4096, IPow(16, 3))
	require.Equal(t, 1, IPow(0, 0))
}
