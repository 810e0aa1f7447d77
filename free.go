package malloc

// Free returns a payload previously obtained from AllocBytes to the heap.
// Freeing nil is a no-op.
//
// A pointer that does not resolve to a block boundary inside the region
// yields ErrInvalidPointer; a block that is already free yields
// ErrDoubleFree. In both cases the region is left untouched.
//
// The freed block is merged with a free right-hand neighbor first and a
// free left-hand neighbor second, so two address-adjacent free blocks
// never survive a Free.
func (h *Heap) Free(p []byte) error {
	if p == nil {
		return nil
	}
	off, ok := h.offsetOf(p)
	if !ok || off%AlignSize != 0 {
		return ErrInvalidPointer
	}
	if h.blockIsFree(off) {
		return ErrDoubleFree
	}

	h.setBlockFree(off, true)
	h.setBlockNext(off, nilOffset)

	// Forward merge: absorb a free right-hand neighbor. A neighbor can
	// only start at least minBlockSize before the region end.
	if end := off + h.blockSize(off); end <= HeapSize-minBlockSize && h.blockIsFree(end) {
		h.unlink(end)
		h.setBlockSize(off, h.blockSize(off)+h.blockSize(end))
	}

	// Backward merge: a free left-hand neighbor is already on the free
	// list, so it just grows and the freed block disappears into it.
	if prev := h.predecessor(off); prev != nilOffset && h.blockIsFree(prev) {
		h.setBlockSize(prev, h.blockSize(prev)+h.blockSize(off))
		return nil
	}

	// No backward merge: the block goes to the head of the free list.
	h.setBlockNext(off, h.freeHead)
	h.freeHead = off
	return nil
}

// unlink removes the free block at off from the free list.
func (h *Heap) unlink(off int) {
	if h.freeHead == nilOffset {
		return
	}
	if h.freeHead == off {
		h.freeHead = h.blockNext(off)
		return
	}
	for cur := h.freeHead; cur != nilOffset; cur = h.blockNext(cur) {
		if h.blockNext(cur) == off {
			h.setBlockNext(cur, h.blockNext(off))
			return
		}
	}
}

// predecessor returns the offset of the block whose end lands exactly on
// off, found by walking the region from its start, or nilOffset when off
// is the first block. The single forward link in the header makes this an
// O(n) scan per Free; that cost is accepted to keep the header minimal.
// The walk gives up on a damaged header instead of spinning.
func (h *Heap) predecessor(off int) int {
	cur := 0
	for cur < off {
		size := h.blockSize(cur)
		if size <= 0 {
			return nilOffset
		}
		next := cur + size
		if next == off {
			return cur
		}
		if next > off {
			return nilOffset
		}
		cur = next
	}
	return nilOffset
}
