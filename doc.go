// Package malloc implements a first-fit free-list allocator over a fixed
// 1 MiB memory region (the heap).
//
// # Overview
//
// The heap is a single contiguous byte region carved into blocks. Every
// block carries a small in-band header holding its total size, its
// free/used status, and a link threading the free blocks into a singly
// linked list. No metadata is kept outside the region itself: the
// allocator's entire state lives in those headers plus the offset of the
// first free block. This is the classic embedded-bookkeeping design used
// by C mallocs, useful for:
//
//   - Managing a fixed memory budget with individual frees
//   - Studying fragmentation behavior (every stat is recomputed on demand)
//   - Sub-allocating a region without touching the Go allocator per object
//
// # Basic Usage
//
//	h := malloc.NewHeap()
//
//	buf := h.AllocBytes(1024) // nil when the heap is exhausted
//	copy(buf, data)
//
//	if err := h.Free(buf); err != nil {
//	    // ErrInvalidPointer or ErrDoubleFree; the heap is untouched
//	}
//
//	// Typed helpers
//	p := malloc.Alloc[MyStruct](h)
//	defer malloc.Free(h, p)
//
// # Memory Layout
//
// Each block is a 24-byte header followed by its payload. Payload sizes
// are rounded up to AlignSize (8 bytes). Allocation is first-fit over the
// free list; an oversized free block is split when the remainder can stand
// as a block of its own. Free coalesces the returned block with a free
// right-hand neighbor and then with a free left-hand neighbor, so no two
// adjacent blocks are ever both free. Finding the left-hand neighbor walks
// the region from its start, an O(n) cost per Free that keeps the header
// down to a single forward link.
//
// # Error Handling
//
// The allocator never panics on caller misuse. AllocBytes reports
// exhaustion by returning nil. Free validates its argument and returns
// ErrInvalidPointer or ErrDoubleFree without touching the region. Walk and
// Blocks stop with ErrCorruptedHeap instead of looping when the region's
// structure has been damaged (typically by a write past a payload end).
//
// # Thread Safety
//
// Heap is not goroutine-safe; every operation assumes it owns the region
// until it returns. Use SafeHeap for a mutex-guarded equivalent:
//
//	s := malloc.NewSafeHeap()
//	buf := s.AllocBytes(1024)
//	s.Free(buf)
//
// # Introspection
//
// UsedBytes, FreeBytes and FreeBlockCount are linear scans computed on
// demand, Metrics bundles them into one snapshot, and Walk/Blocks
// enumerate the region in address order for presentation layers such as
// DumpState.
package malloc
