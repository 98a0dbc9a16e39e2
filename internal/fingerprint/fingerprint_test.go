package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	a := Sum([]byte("stream-a"))
	b := Sum([]byte("stream-b"))
	require.NotEqual(t, a, b)
	require.Equal(t, a, Sum([]byte("stream-a")))

	// Empty input has a stable digest too.
	require.Equal(t, Sum(nil), Sum([]byte{}))
}
