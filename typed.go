package malloc

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Alloc returns a pointer to a zeroed T stored inside the heap, or nil
// when the heap cannot satisfy the request (or T is zero-sized).
// The pointer stays valid until it is freed or the heap is Reset.
func Alloc[T any](h *Heap) *T {
	var zero T
	b := h.AllocBytes(int(unsafe.Sizeof(zero)))
	if b == nil {
		return nil
	}
	clear(b)
	return (*T)(unsafe.Pointer(&b[0]))
}

// Free returns memory obtained from Alloc to the heap. Freeing nil is a
// no-op. Misuse is reported the same way as Heap.Free.
func Free[T any](h *Heap, p *T) error {
	if p == nil {
		return nil
	}
	var zero T
	n := int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return h.Free(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

// AllocSlice returns a zeroed slice of n elements of T backed by heap
// memory, or nil when n <= 0 or the heap cannot satisfy the request.
func AllocSlice[T any, N constraints.Integer](h *Heap, n N) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	b := h.AllocBytes(elemSize * int(n))
	if b == nil {
		return nil
	}
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), int(n))
}

// FreeSlice returns a slice obtained from AllocSlice to the heap. Freeing
// a nil or empty slice is a no-op.
func FreeSlice[T any](h *Heap, s []T) error {
	if cap(s) == 0 {
		return nil
	}
	var zero T
	n := int(unsafe.Sizeof(zero)) * cap(s)
	if n == 0 {
		return nil
	}
	return h.Free(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n))
}
