package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Resize(t *testing.T) {
	bb := NewByteBuffer(16)
	require.Equal(t, 0, bb.Len())

	bb.Resize(8)
	require.Equal(t, 8, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 16)

	bb.Resize(1024)
	require.Equal(t, 1024, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestStreamBufferPool_RoundTrip(t *testing.T) {
	buf := GetStreamBuffer()
	require.NotNil(t, buf)
	require.Equal(t, 0, buf.Len())

	buf.Resize(1024)
	PutStreamBuffer(buf)

	again := GetStreamBuffer()
	require.Equal(t, 0, again.Len())
	PutStreamBuffer(again)
}

func TestPutStreamBuffer_DropsOversized(t *testing.T) {
	big := NewByteBuffer(StreamBufferMaxThreshold + 1)
	// Must not panic; the buffer is simply not pooled.
	PutStreamBuffer(big)
	PutStreamBuffer(nil)
}
