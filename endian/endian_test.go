package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNative(t *testing.T) {
	result := Native()

	// Verify the result against an independent probe.
	var probe uint16 = 0x0102
	probeBytes := (*[2]byte)(unsafe.Pointer(&probe))

	switch probeBytes[0] {
	case 0x01:
		require.Equal(t, binary.BigEndian, result)
	case 0x02:
		require.Equal(t, binary.LittleEndian, result)
	default:
		require.Failf(t, "unexpected byte value", "got: %v", probeBytes[0])
	}
}

func TestNativeIsWire(t *testing.T) {
	require.Equal(t, Native() == binary.LittleEndian, NativeIsWire())
}

func TestWire_IsLittleEndian(t *testing.T) {
	order := Wire()
	require.Equal(t, binary.LittleEndian, order)

	// The wire format depends on LSB-first ordering.
	buf := make([]byte, 8)
	order.PutUint64(buf, 0x0102030405060708)
	require.Equal(t, byte(0x08), buf[0])
	require.Equal(t, byte(0x01), buf[7])
	require.Equal(t, uint64(0x0102030405060708), order.Uint64(buf))
}
