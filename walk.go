package malloc

// BlockInfo describes one block of the region, as reported by Walk and
// Blocks.
type BlockInfo struct {
	Offset      int  // distance of the block's header from the region start
	Size        int  // total block size, header included
	PayloadSize int  // Size minus the header
	Free        bool // free/used status
}

// Walk visits every block in address order and calls fn for each, stopping
// early when fn returns false. Every call starts a fresh scan; Walk never
// mutates the heap.
//
// The walk is bounded: a zero-size header, a block overrunning the region
// end, or more steps than the region could possibly hold terminate it with
// ErrCorruptedHeap rather than looping or reading out of bounds.
func (h *Heap) Walk(fn func(BlockInfo) bool) error {
	off, steps := 0, 0
	for off < HeapSize {
		size := h.blockSize(off)
		if size <= 0 || size > HeapSize-off || steps >= maxBlocks {
			return ErrCorruptedHeap
		}
		b := BlockInfo{
			Offset:      off,
			Size:        size,
			PayloadSize: size - headerSize,
			Free:        h.blockIsFree(off),
		}
		if !fn(b) {
			return nil
		}
		off += size
		steps++
	}
	return nil
}

// Blocks returns the region's blocks in address order. On a corrupted
// region it returns the blocks seen before the damage along with
// ErrCorruptedHeap.
func (h *Heap) Blocks() ([]BlockInfo, error) {
	var blocks []BlockInfo
	err := h.Walk(func(b BlockInfo) bool {
		blocks = append(blocks, b)
		return true
	})
	return blocks, err
}
