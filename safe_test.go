package malloc

import (
	"sync"
	"testing"
)

func TestSafeHeapBasics(t *testing.T) {
	s := NewSafeHeap()

	b := s.AllocBytes(100)
	if b == nil {
		t.Fatal("AllocBytes(100) = nil")
	}
	if got, want := s.UsedBytes(), alignUp(100); got != want {
		t.Errorf("UsedBytes() = %d, want %d", got, want)
	}
	if err := s.Free(b); err != nil {
		t.Fatalf("Free = %v", err)
	}
	if got := s.FreeBlockCount(); got != 1 {
		t.Errorf("FreeBlockCount() = %d, want 1", got)
	}

	m := s.Metrics()
	if m.UsedBytes != 0 || m.Capacity != HeapSize {
		t.Errorf("Metrics() = %+v", m)
	}
}

func TestSafeHeapConcurrent(t *testing.T) {
	s := NewSafeHeap()

	const workers = 8
	const rounds = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				b := s.AllocBytes(64 + id*8)
				if b == nil {
					continue // exhausted under contention is fine
				}
				b[0] = byte(id)
				if err := s.Free(b); err != nil {
					t.Errorf("worker %d free: %v", id, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := s.UsedBytes(); got != 0 {
		t.Errorf("UsedBytes() after all frees = %d, want 0", got)
	}
	if got := s.FreeBlockCount(); got != 1 {
		t.Errorf("FreeBlockCount() = %d, want 1", got)
	}
	checkInvariants(t, s.h)
}

func TestSafeHeapTyped(t *testing.T) {
	s := NewSafeHeap()

	p := SafeAlloc[point](s)
	if p == nil {
		t.Fatal("SafeAlloc = nil")
	}
	p.X = 7
	if err := SafeFree(s, p); err != nil {
		t.Fatalf("SafeFree = %v", err)
	}

	sl := SafeAllocSlice[point](s, 4)
	if len(sl) != 4 {
		t.Fatalf("SafeAllocSlice len = %d, want 4", len(sl))
	}
	if err := SafeFreeSlice(s, sl); err != nil {
		t.Fatalf("SafeFreeSlice = %v", err)
	}
	if got := s.UsedBytes(); got != 0 {
		t.Errorf("UsedBytes() = %d, want 0", got)
	}
}

func TestSafeHeapWalk(t *testing.T) {
	s := NewSafeHeap()
	s.AllocBytes(128)

	blocks, err := s.Blocks()
	if err != nil {
		t.Fatalf("Blocks() = %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("len(Blocks()) = %d, want 2", len(blocks))
	}
}
