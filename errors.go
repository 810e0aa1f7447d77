package malloc

import "errors"

var (
	// ErrInvalidPointer is returned by Free when the pointer does not
	// address a block inside the heap.
	ErrInvalidPointer = errors.New("malloc: invalid pointer")

	// ErrDoubleFree is returned by Free when the block is already free.
	ErrDoubleFree = errors.New("malloc: double free")

	// ErrCorruptedHeap is returned by a region walk that finds a zero-size
	// block or runs past the maximum possible block count. It indicates a
	// prior invariant violation, typically a write past a payload end, and
	// is not recoverable.
	ErrCorruptedHeap = errors.New("malloc: corrupted heap")
)
