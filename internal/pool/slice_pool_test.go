package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUint32Slice(t *testing.T) {
	s, cleanup := GetUint32Slice(4096)
	require.Len(t, s, 4096)
	cleanup()

	// A second acquisition reuses the grown backing array.
	s2, cleanup2 := GetUint32Slice(128)
	defer cleanup2()
	require.Len(t, s2, 128)
	require.GreaterOrEqual(t, cap(s2), 128)
}

func TestGetUint64Slice(t *testing.T) {
	s, cleanup := GetUint64Slice(64)
	defer cleanup()
	require.Len(t, s, 64)
}

func TestGetIntSlice(t *testing.T) {
	s, cleanup := GetIntSlice(27)
	defer cleanup()
	require.Len(t, s, 27)
}

func TestGetUint32Slice_Zero(t *testing.T) {
	s, cleanup := GetUint32Slice(0)
	defer cleanup()
	require.Len(t, s, 0)
}
