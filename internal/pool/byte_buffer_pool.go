package pool

import "sync"

const (
	// StreamBufferDefaultSize is the initial capacity of a pooled stream
	// buffer, sized for a handful of worst-case hypercube payloads.
	StreamBufferDefaultSize = 1024 * 64

	// StreamBufferMaxThreshold caps the capacity of buffers returned to the
	// pool; compaction scratch for very large inputs is released to the GC
	// instead of pinning memory between calls.
	StreamBufferMaxThreshold = 1024 * 1024 * 16
)

// ByteBuffer is a reusable byte slice wrapper handed out by the stream
// buffer pool. The multi-thread and work-group backends stage per-hypercube
// payloads in one before the compaction pass copies them to final offsets.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocation for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Resize sets the buffer length to n, reallocating when the current
// capacity is insufficient. Contents are unspecified after growth.
func (bb *ByteBuffer) Resize(n int) {
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
		return
	}
	bb.B = bb.B[:n]
}

var streamBufferPool = sync.Pool{
	New: func() any { return NewByteBuffer(StreamBufferDefaultSize) },
}

// GetStreamBuffer retrieves an empty ByteBuffer from the stream buffer pool.
func GetStreamBuffer() *ByteBuffer {
	buf, _ := streamBufferPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutStreamBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped so the pool holds at most StreamBufferMaxThreshold bytes each.
func PutStreamBuffer(buf *ByteBuffer) {
	if buf == nil || buf.Cap() > StreamBufferMaxThreshold {
		return
	}
	streamBufferPool.Put(buf)
}
