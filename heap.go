package malloc

// HeapSize is the fixed capacity of the managed region (1 MiB). Changing
// it requires a rebuild; the region never grows or shrinks at runtime.
const HeapSize = 1 << 20

// AlignSize is the payload alignment boundary. Requested sizes are rounded
// up to a multiple of it and every block starts on such a boundary.
const AlignSize = 8

const (
	// minBlockSize is the smallest block the allocator will ever create:
	// a header plus one alignment unit of payload. Splitting never leaves
	// a remainder below this.
	minBlockSize = headerSize + AlignSize

	// maxBlocks bounds any address-order walk. A well-formed region can
	// never hold more blocks than this, so exceeding it means the headers
	// have been damaged.
	maxBlocks = HeapSize / minBlockSize

	// nilOffset is the in-code "no block" value for offsets and free-list
	// links.
	nilOffset = -1
)

// Heap manages a fixed-size byte region with an embedded free-list
// allocator. The zero value is not usable; call NewHeap.
//
// Heap is not goroutine-safe. See SafeHeap.
type Heap struct {
	buf      []byte // the managed region; len is always HeapSize
	freeHead int    // offset of the first free block, nilOffset when none
}

// NewHeap allocates and initializes a heap: the whole region becomes a
// single free block and the free list points at it.
func NewHeap() *Heap {
	h := &Heap{buf: make([]byte, HeapSize)}
	h.Reset()
	return h
}

// Reset re-initializes the heap in place: the region is zeroed and becomes
// one free block again. Any payload previously handed out is invalidated;
// it is the caller's responsibility not to free or use it afterwards.
func (h *Heap) Reset() {
	clear(h.buf)
	h.setBlockSize(0, HeapSize)
	h.setBlockFree(0, true)
	h.setBlockNext(0, nilOffset)
	h.freeHead = 0
}

// alignUp rounds n up to the next multiple of AlignSize.
func alignUp(n int) int {
	return (n + AlignSize - 1) &^ (AlignSize - 1)
}
