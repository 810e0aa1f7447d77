package malloc

import (
	"io"
	"sync"

	"golang.org/x/exp/constraints"
)

// SafeHeap is a mutex-protected wrapper around Heap for concurrent access.
// All operations are goroutine-safe but come with the overhead of mutex
// locking; the underlying allocator itself carries no synchronization.
type SafeHeap struct {
	mu sync.Mutex
	h  *Heap
}

// NewSafeHeap creates a new goroutine-safe heap.
func NewSafeHeap() *SafeHeap {
	return &SafeHeap{h: NewHeap()}
}

// AllocBytes thread-safely allocates n bytes. Returns nil when n <= 0 or
// the heap is exhausted.
func (s *SafeHeap) AllocBytes(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.AllocBytes(n)
}

// Free thread-safely returns a payload to the heap.
func (s *SafeHeap) Free(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Free(p)
}

// Reset thread-safely re-initializes the heap.
func (s *SafeHeap) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Reset()
}

// Walk thread-safely visits every block in address order. The lock is held
// for the whole walk, so fn must not call back into the same SafeHeap.
func (s *SafeHeap) Walk(fn func(BlockInfo) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Walk(fn)
}

// Blocks thread-safely returns the region's blocks in address order.
func (s *SafeHeap) Blocks() ([]BlockInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Blocks()
}

// DumpState thread-safely writes a human-readable description of the heap
// to w.
func (s *SafeHeap) DumpState(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.DumpState(w)
}

// Generic allocation functions for SafeHeap

// SafeAlloc thread-safely returns a pointer to a zeroed T stored inside
// the heap.
func SafeAlloc[T any](s *SafeHeap) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.h)
}

// SafeFree thread-safely returns memory obtained from SafeAlloc.
func SafeFree[T any](s *SafeHeap, p *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Free(s.h, p)
}

// SafeAllocSlice thread-safely allocates a zeroed slice of n elements of T.
func SafeAllocSlice[T any, N constraints.Integer](s *SafeHeap, n N) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.h, n)
}

// SafeFreeSlice thread-safely returns a slice obtained from SafeAllocSlice.
func SafeFreeSlice[T any](s *SafeHeap, sl []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FreeSlice(s.h, sl)
}
