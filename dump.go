package malloc

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// DumpState writes a human-readable description of the heap to w: a
// summary line, the block table in address order, and the free list in
// list order. It is a debugging aid built entirely on the public
// introspection surface.
//
// On a damaged region the table holds the blocks seen before the damage
// and ErrCorruptedHeap is returned after the dump completes.
func (h *Heap) DumpState(w io.Writer) error {
	fmt.Fprintf(w, "heap: %d bytes capacity, %d used, %d free, %d free block(s)\n",
		HeapSize, h.UsedBytes(), h.FreeBytes(), h.FreeBlockCount())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tSIZE\tPAYLOAD\tSTATUS")
	walkErr := h.Walk(func(b BlockInfo) bool {
		status := "used"
		if b.Free {
			status = "free"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", b.Offset, b.Size, b.PayloadSize, status)
		return true
	})
	tw.Flush()
	if walkErr != nil {
		fmt.Fprintf(w, "block table truncated: %v\n", walkErr)
	}

	fmt.Fprintln(w, "free list:")
	n := 0
	for off := h.freeHead; off != nilOffset && n < maxBlocks; off = h.blockNext(off) {
		fmt.Fprintf(w, "  [%d] offset %d, %d bytes\n", n, off, h.blockSize(off))
		n++
	}
	if n == 0 {
		fmt.Fprintln(w, "  (empty)")
	}
	return walkErr
}
