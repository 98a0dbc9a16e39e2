package transform

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubezip/cubezip/profile"
)

func randomCube32(t *testing.T, seed int64) []uint32 {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	cube := make([]uint32, profile.HypercubeSize)
	for i := range cube {
		cube[i] = rng.Uint32()
	}

	return cube
}

func randomCube64(t *testing.T, seed int64) []uint64 {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	cube := make([]uint64, profile.HypercubeSize)
	for i := range cube {
		cube[i] = rng.Uint64()
	}

	return cube
}

func TestForward_Reversible(t *testing.T) {
	configs := []struct {
		dims int
		side int
	}{
		{1, 4096},
		{2, 64},
		{3, 16},
	}

	for _, cfg := range configs {
		cube := randomCube32(t, int64(cfg.dims))
		orig := make([]uint32, len(cube))
		copy(orig, cube)

		Forward(cube, cfg.dims, cfg.side)
		Inverse(cube, cfg.dims, cfg.side)
		require.Equal(t, orig, cube, "dims=%d", cfg.dims)

		cube64 := randomCube64(t, int64(cfg.dims))
		orig64 := make([]uint64, len(cube64))
		copy(orig64, cube64)

		Forward(cube64, cfg.dims, cfg.side)
		Inverse(cube64, cfg.dims, cfg.side)
		require.Equal(t, orig64, cube64, "dims=%d", cfg.dims)
	}
}

func TestForward_ChangesData(t *testing.T) {
	cube := randomCube32(t, 99)
	orig := make([]uint32, len(cube))
	copy(orig, cube)

	Forward(cube, 3, 16)
	require.NotEqual(t, orig, cube)
}

func TestForward_AllZeroStaysZero(t *testing.T) {
	cube := make([]uint64, profile.HypercubeSize)
	Forward(cube, 3, 16)
	for i, w := range cube {
		require.Zero(t, w, "word %d", i)
	}
}

func TestDiffLine_SumLine(t *testing.T) {
	line := []uint32{10, 13, 11, 30}
	DiffLine(line, 0, 1, 4)
	require.Equal(t, []uint32{10, 3, 0xFFFFFFFE, 19}, line)

	SumLine(line, 0, 1, 4)
	require.Equal(t, []uint32{10, 13, 11, 30}, line)
}

func TestDiffLine_Strided(t *testing.T) {
	// Two interleaved lines of stride 2; only the even one is touched.
	data := []uint32{1, 100, 2, 200, 4, 400}
	DiffLine(data, 0, 2, 3)
	require.Equal(t, []uint32{1, 100, 1, 200, 2, 400}, data)
}

func TestLineBase(t *testing.T) {
	// Contiguous axis: consecutive lines start side elements apart.
	require.Equal(t, 0, LineBase(1, 64, 0))
	require.Equal(t, 64, LineBase(1, 64, 1))

	// Stride-16 pass in a 16^3 cube: lines 0..15 sit in the first plane,
	// line 16 starts the next plane.
	require.Equal(t, 15, LineBase(16, 16, 15))
	require.Equal(t, 256, LineBase(16, 16, 16))

	// Outermost axis: line l starts at offset l.
	require.Equal(t, 37, LineBase(256, 16, 37))
}

func TestLineBase_CoversAllLines(t *testing.T) {
	// Every pass must touch each cube element exactly once.
	const side = 16
	const hcSize = side * side * side
	for _, stride := range []int{1, side, side * side} {
		touched := make([]int, hcSize)
		for l := 0; l < hcSize/side; l++ {
			base := LineBase(stride, side, l)
			for i := 0; i < side; i++ {
				touched[base+i*stride]++
			}
		}
		for i, n := range touched {
			require.Equal(t, 1, n, "stride=%d element=%d", stride, i)
		}
	}
}

func TestForward_MatchesLinePrimitives(t *testing.T) {
	// The whole-cube routine and the exported line-level pieces must agree,
	// since the work-group backend is built from the latter.
	cube := randomCube64(t, 123)
	viaForward := make([]uint64, len(cube))
	copy(viaForward, cube)
	Forward(viaForward, 3, 16)

	manual := make([]uint64, len(cube))
	copy(manual, cube)
	Rotate(manual)
	side := 16
	stride := 1
	for axis := 0; axis < 3; axis++ {
		for l := 0; l < len(manual)/side; l++ {
			DiffLine(manual, LineBase(stride, side, l), stride, side)
		}
		stride *= side
	}
	Remap(manual)

	require.Equal(t, viaForward, manual)
}
