// Package endian pins the byte order of the wire format and probes the
// host's native order.
//
// The compressed stream is little-endian throughout; Wire returns that
// order, and every serializer in the repository writes through it. Native
// lets a big-endian host detect that wire words must be byte-swapped at the
// stream boundary; on little-endian hosts the wire order's loads and stores
// compile to plain moves, so the swap is free where it is not needed.
//
// All functions are safe for concurrent use; the returned byte orders are
// the immutable instances from encoding/binary.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Wire returns the byte order of the compressed stream: little-endian.
func Wire() binary.ByteOrder {
	return binary.LittleEndian
}

// Native returns the host's byte order, determined from a fixed probe
// value.
func Native() binary.ByteOrder {
	// 0x0100 is 256. On a little-endian host the LSB (0x00) sits at the
	// lowest address; on a big-endian host the MSB (0x01) does.
	var probe uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&probe))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// NativeIsWire reports whether the host already stores integers in wire
// order, making the stream-boundary byte swap a no-op.
func NativeIsWire() bool {
	return Native() == binary.LittleEndian
}
