package malloc

// AllocBytes allocates n bytes from the heap and returns a slice pointing
// at them, or nil when n <= 0 or no free block is large enough. The slice
// has length n; its capacity is the block's full payload.
//
// The search is first-fit over the free list: the first block that can
// hold a header plus the aligned payload wins, regardless of better fits
// further down the list.
func (h *Heap) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	needed := headerSize + alignUp(n)

	prev := nilOffset
	for cur := h.freeHead; cur != nilOffset; cur = h.blockNext(cur) {
		if h.blockSize(cur) < needed {
			prev = cur
			continue
		}

		h.split(cur, needed)

		// Unlink from the free list. After a split the remainder is
		// cur's list successor, so it inherits cur's slot here.
		if prev == nilOffset {
			h.freeHead = h.blockNext(cur)
		} else {
			h.setBlockNext(prev, h.blockNext(cur))
		}
		h.setBlockFree(cur, false)
		h.setBlockNext(cur, nilOffset)

		return h.payload(cur, n)
	}
	return nil
}

// split shrinks the free block at off to needed bytes and stands the rest
// up as a new free block, threaded into the list right after off. Blocks
// whose remainder would fall below minBlockSize are left whole; no
// unusable fragment is ever created.
func (h *Heap) split(off, needed int) {
	if h.blockSize(off) < needed+minBlockSize {
		return
	}
	rest := off + needed
	h.setBlockSize(rest, h.blockSize(off)-needed)
	h.setBlockFree(rest, true)
	h.setBlockNext(rest, h.blockNext(off))
	h.setBlockSize(off, needed)
	h.setBlockNext(off, rest)
}
