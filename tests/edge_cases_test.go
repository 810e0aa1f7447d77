package tests

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	malloc "github.com/matth5330/free-list-allocator"
)

// checkPartition verifies, through the public enumeration surface alone,
// that the region partitions exactly into blocks and that no two adjacent
// blocks are both free.
func checkPartition(t *testing.T, h *malloc.Heap) {
	t.Helper()

	blocks, err := h.Blocks()
	require.NoError(t, err)
	require.NotEmpty(t, blocks)

	overhead := blocks[0].Size - blocks[0].PayloadSize
	off := 0
	prevFree := false
	for i, b := range blocks {
		require.Equal(t, off, b.Offset, "block %d offset", i)
		require.Equal(t, overhead, b.Size-b.PayloadSize, "block %d header overhead", i)
		require.Positive(t, b.PayloadSize, "block %d payload", i)
		if i > 0 {
			require.False(t, prevFree && b.Free, "adjacent free blocks at %d and %d", blocks[i-1].Offset, b.Offset)
		}
		prevFree = b.Free
		off += b.Size
	}
	require.Equal(t, malloc.HeapSize, off, "blocks must cover the region exactly")
}

func TestChurnKeepsRegionConsistent(t *testing.T) {
	h := malloc.NewHeap()
	rng := rand.New(rand.NewSource(1))

	live := make([][]byte, 0, 128)
	for i := 0; i < 2000; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			j := rng.Intn(len(live))
			require.NoError(t, h.Free(live[j]))
			live = append(live[:j], live[j+1:]...)
		} else {
			b := h.AllocBytes(1 + rng.Intn(2048))
			if b == nil {
				continue
			}
			live = append(live, b)
		}
	}
	checkPartition(t, h)

	for _, b := range live {
		require.NoError(t, h.Free(b))
	}
	checkPartition(t, h)
	require.Equal(t, 1, h.FreeBlockCount())
	require.Zero(t, h.UsedBytes())
}

func TestExhaustionAndRecovery(t *testing.T) {
	h := malloc.NewHeap()

	var live [][]byte
	for {
		b := h.AllocBytes(32 << 10)
		if b == nil {
			break
		}
		live = append(live, b)
	}
	require.NotEmpty(t, live)
	require.Nil(t, h.AllocBytes(32<<10), "heap must stay exhausted")

	// Freeing one block makes the same size allocatable again.
	require.NoError(t, h.Free(live[0]))
	b := h.AllocBytes(32 << 10)
	require.NotNil(t, b, "freed space must be reusable")
	live[0] = b

	for _, p := range live {
		require.NoError(t, h.Free(p))
	}
	require.Equal(t, 1, h.FreeBlockCount())
	checkPartition(t, h)
}

func TestStatsBalance(t *testing.T) {
	h := malloc.NewHeap()

	// Used payload + free payload + header overhead always equals the
	// region capacity.
	sizes := []int{100, 5000, 64, 333, 8192}
	var live [][]byte
	for _, n := range sizes {
		b := h.AllocBytes(n)
		require.NotNil(t, b)
		live = append(live, b)
	}

	blocks, err := h.Blocks()
	require.NoError(t, err)
	overhead := len(blocks) * (blocks[0].Size - blocks[0].PayloadSize)
	require.Equal(t, malloc.HeapSize, h.UsedBytes()+h.FreeBytes()+overhead)

	for _, b := range live {
		require.NoError(t, h.Free(b))
	}
	require.Equal(t, malloc.HeapSize, h.FreeBytes()+h.FreeBlockCount()*(blocks[0].Size-blocks[0].PayloadSize))
}

func TestPayloadAlignment(t *testing.T) {
	h := malloc.NewHeap()

	for _, n := range []int{1, 3, 9, 17, 100, 1023} {
		b := h.AllocBytes(n)
		require.NotNil(t, b, "AllocBytes(%d)", n)
		require.Len(t, b, n)
	}

	blocks, err := h.Blocks()
	require.NoError(t, err)
	for _, blk := range blocks {
		require.Zero(t, blk.Offset%malloc.AlignSize, "block at %d not aligned", blk.Offset)
		require.Zero(t, blk.PayloadSize%malloc.AlignSize, "payload of block at %d not aligned", blk.Offset)
	}
}

func TestAppendCannotSpillIntoNeighbor(t *testing.T) {
	h := malloc.NewHeap()

	a := h.AllocBytes(16)
	b := h.AllocBytes(16)
	require.NotNil(t, a)
	require.NotNil(t, b)
	copy(b, "sentinel........")

	// Appending past the payload capacity must reallocate outside the
	// heap instead of overwriting b's header.
	grown := append(a, make([]byte, 1024)...)
	grown[len(grown)-1] = 0xFF

	require.Equal(t, []byte("sentinel........"), b[:16])
	require.NoError(t, h.Free(a))
	require.NoError(t, h.Free(b))
	checkPartition(t, h)
}

func TestResetInvalidatesOutstandingPointers(t *testing.T) {
	h := malloc.NewHeap()

	a := h.AllocBytes(100)
	require.NotNil(t, a)
	h.Reset()

	// The old payload now points into the re-initialized region; freeing
	// it is caller misuse and must be flagged, not honored.
	err := h.Free(a)
	require.Error(t, err)
	require.Equal(t, 1, h.FreeBlockCount())
}

func TestMixedTypedAndRawAllocations(t *testing.T) {
	type record struct {
		ID    int64
		Score float64
	}

	h := malloc.NewHeap()

	r := malloc.Alloc[record](h)
	require.NotNil(t, r)
	r.ID, r.Score = 42, 9.5

	raw := h.AllocBytes(256)
	require.NotNil(t, raw)

	s := malloc.AllocSlice[record](h, 16)
	require.Len(t, s, 16)
	s[15].ID = 7

	require.Equal(t, int64(42), r.ID)
	require.Equal(t, 9.5, r.Score)

	require.NoError(t, malloc.Free(h, r))
	require.NoError(t, h.Free(raw))
	require.NoError(t, malloc.FreeSlice(h, s))
	require.Equal(t, 1, h.FreeBlockCount())
	checkPartition(t, h)
}
