package pool

import "sync"

// Slice pools for efficient reuse of typed scratch slices.
// Backends draw their hypercube and payload buffers from these pools so that
// repeated compress/decompress calls do not reallocate per call.
var (
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	uint64SlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetUint32Slice retrieves and resizes a uint32 slice from the pool.
//
// The returned slice has length size; contents are unspecified. The caller
// must call the returned cleanup function (typically with defer) to return
// the slice to the pool.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint32SlicePool.Put(ptr) }
}

// GetUint64Slice retrieves and resizes a uint64 slice from the pool.
//
// The returned slice has length size; contents are unspecified. The caller
// must call the returned cleanup function (typically with defer) to return
// the slice to the pool.
func GetUint64Slice(size int) ([]uint64, func()) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint64SlicePool.Put(ptr) }
}

// GetIntSlice retrieves and resizes an int slice from the pool.
//
// The returned slice has length size; contents are unspecified. The caller
// must call the returned cleanup function (typically with defer) to return
// the slice to the pool.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { intSlicePool.Put(ptr) }
}
