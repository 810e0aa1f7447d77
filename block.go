package malloc

import (
	"encoding/binary"
	"unsafe"
)

// In-band block header, written at the start of every block:
//
//	[0,8)   total block size in bytes, header included
//	[8,16)  free flag (nonzero = free)
//	[16,24) offset of the next free block, nextNone when there is none
//
// Fields are little-endian. Everything above this file addresses blocks by
// their offset into the region; the only pointer arithmetic in the package
// is offsetOf, which maps a caller's payload slice back to an offset.

// headerSize is the fixed per-block overhead. It is a multiple of
// AlignSize so payloads stay aligned.
const headerSize = 24

// nextNone is the encoded form of nilOffset in a header's link field.
const nextNone = ^uint64(0)

func (h *Heap) blockSize(off int) int {
	return int(binary.LittleEndian.Uint64(h.buf[off:]))
}

func (h *Heap) setBlockSize(off, size int) {
	binary.LittleEndian.PutUint64(h.buf[off:], uint64(size))
}

func (h *Heap) blockIsFree(off int) bool {
	return binary.LittleEndian.Uint64(h.buf[off+8:]) != 0
}

func (h *Heap) setBlockFree(off int, free bool) {
	var v uint64
	if free {
		v = 1
	}
	binary.LittleEndian.PutUint64(h.buf[off+8:], v)
}

func (h *Heap) blockNext(off int) int {
	v := binary.LittleEndian.Uint64(h.buf[off+16:])
	if v == nextNone {
		return nilOffset
	}
	return int(v)
}

func (h *Heap) setBlockNext(off, next int) {
	v := nextNone
	if next != nilOffset {
		v = uint64(next)
	}
	binary.LittleEndian.PutUint64(h.buf[off+16:], v)
}

// payload returns n usable bytes of the block at off. The slice's capacity
// is clipped to the block's end so an append cannot silently spill into
// the neighbor's header.
func (h *Heap) payload(off, n int) []byte {
	start := off + headerSize
	return h.buf[start : start+n : off+h.blockSize(off)]
}

// offsetOf recovers the header offset for a payload slice previously
// returned by AllocBytes. ok is false when p's data does not give a header
// inside the region.
func (h *Heap) offsetOf(p []byte) (int, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(h.buf)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	if addr < base+headerSize || addr >= base+HeapSize {
		return 0, false
	}
	return int(addr-base) - headerSize, true
}
