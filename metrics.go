package malloc

// Nothing here is cached: every stat is recomputed by a linear scan, so
// the numbers always reflect the region as it is right now.

// UsedBytes returns the total payload bytes of allocated blocks, computed
// by walking the region in address order.
func (h *Heap) UsedBytes() int {
	used := 0
	for off := 0; off < HeapSize; {
		size := h.blockSize(off)
		if size <= 0 || size > HeapSize-off {
			break
		}
		if !h.blockIsFree(off) {
			used += size - headerSize
		}
		off += size
	}
	return used
}

// FreeBytes returns the total payload bytes available across free blocks,
// computed by walking the free list.
func (h *Heap) FreeBytes() int {
	free := 0
	for off, n := h.freeHead, 0; off != nilOffset && n < maxBlocks; off, n = h.blockNext(off), n+1 {
		free += h.blockSize(off) - headerSize
	}
	return free
}

// FreeBlockCount returns the length of the free list. It doubles as a
// fragmentation measure: 1 means all free space is contiguous.
func (h *Heap) FreeBlockCount() int {
	count := 0
	for off := h.freeHead; off != nilOffset && count < maxBlocks; off = h.blockNext(off) {
		count++
	}
	return count
}

// Utilization returns the ratio of used payload bytes to region capacity
// (0.0 to 1.0).
func (h *Heap) Utilization() float64 {
	return float64(h.UsedBytes()) / float64(HeapSize)
}

// Metrics returns a snapshot of heap statistics.
func (h *Heap) Metrics() HeapMetrics {
	return HeapMetrics{
		UsedBytes:   h.UsedBytes(),
		FreeBytes:   h.FreeBytes(),
		FreeBlocks:  h.FreeBlockCount(),
		Capacity:    HeapSize,
		Utilization: h.Utilization(),
	}
}

// HeapMetrics contains statistical information about a heap.
type HeapMetrics struct {
	UsedBytes   int     // Payload bytes currently allocated
	FreeBytes   int     // Payload bytes available for allocation
	FreeBlocks  int     // Number of blocks on the free list
	Capacity    int     // Fixed region capacity (HeapSize)
	Utilization float64 // Ratio of used bytes to capacity (0.0-1.0)
}

// Thread-safe metrics for SafeHeap

// UsedBytes thread-safely returns the total payload bytes of allocated blocks.
func (s *SafeHeap) UsedBytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.UsedBytes()
}

// FreeBytes thread-safely returns the total payload bytes of free blocks.
func (s *SafeHeap) FreeBytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.FreeBytes()
}

// FreeBlockCount thread-safely returns the length of the free list.
func (s *SafeHeap) FreeBlockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.FreeBlockCount()
}

// Utilization thread-safely returns the ratio of used bytes to capacity.
func (s *SafeHeap) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Utilization()
}

// Metrics thread-safely returns a snapshot of heap statistics.
func (s *SafeHeap) Metrics() HeapMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Metrics()
}
