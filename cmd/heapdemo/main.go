// Command heapdemo exercises the allocator with canned allocation
// patterns and prints the heap state after each step.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	malloc "github.com/matth5330/free-list-allocator"
)

var verbose = flag.Bool("v", false, "dump the full block table after every step")

func dump(h *malloc.Heap) {
	if *verbose {
		if err := h.DumpState(os.Stdout); err != nil {
			log.Printf("dump: %v", err)
		}
		return
	}
	m := h.Metrics()
	fmt.Printf("used %d, free %d, %d free block(s)\n", m.UsedBytes, m.FreeBytes, m.FreeBlocks)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("heapdemo: ")
	flag.Parse()

	h := malloc.NewHeap()
	fmt.Printf("heap initialized, %d KiB\n", malloc.HeapSize/1024)
	dump(h)

	basicAllocation(h)
	freeAndReuse(h)
	splitting(h)
	coalescing(h)
	misuse(h)
	fragmentation(h)

	fmt.Println("\ndone")
	dump(h)
}

func basicAllocation(h *malloc.Heap) {
	fmt.Println("\n--- basic allocation ---")
	a := h.AllocBytes(100)
	b := h.AllocBytes(200)
	c := h.AllocBytes(50)
	copy(a, "Hello")
	copy(b, "World")
	copy(c, "Test")
	fmt.Printf("wrote %q %q %q\n", a[:5], b[:5], c[:4])
	dump(h)
	mustFree(h, a, b, c)
	dump(h)
}

func freeAndReuse(h *malloc.Heap) {
	fmt.Println("\n--- free and reuse ---")
	a := h.AllocBytes(100)
	b := h.AllocBytes(200)
	c := h.AllocBytes(50)
	mustFree(h, b)
	fmt.Println("freed middle block")
	dump(h)
	d := h.AllocBytes(150)
	if d == nil {
		log.Fatal("reuse allocation failed")
	}
	fmt.Println("reallocated into freed space")
	dump(h)
	mustFree(h, a, c, d)
}

func splitting(h *malloc.Heap) {
	fmt.Println("\n--- splitting ---")
	large := h.AllocBytes(5000)
	mustFree(h, large)
	fmt.Println("allocated and freed a 5000-byte block")
	s1 := h.AllocBytes(100)
	s2 := h.AllocBytes(200)
	s3 := h.AllocBytes(300)
	fmt.Println("carved three small blocks out of it")
	dump(h)
	mustFree(h, s1, s2, s3)
}

func coalescing(h *malloc.Heap) {
	fmt.Println("\n--- coalescing ---")
	a := h.AllocBytes(100)
	b := h.AllocBytes(200)
	c := h.AllocBytes(150)
	d := h.AllocBytes(250)
	fmt.Println("allocated four blocks")
	dump(h)
	mustFree(h, b)
	mustFree(h, d)
	fmt.Println("freed two non-adjacent blocks")
	dump(h)
	mustFree(h, a)
	mustFree(h, c)
	fmt.Println("freed the rest; everything should have merged")
	dump(h)
}

func misuse(h *malloc.Heap) {
	fmt.Println("\n--- misuse detection ---")
	if p := h.AllocBytes(0); p != nil {
		log.Fatal("AllocBytes(0) returned memory")
	}
	fmt.Println("AllocBytes(0) returns nil")

	if err := h.Free(nil); err != nil {
		log.Fatalf("Free(nil): %v", err)
	}
	fmt.Println("Free(nil) is a no-op")

	p := h.AllocBytes(100)
	mustFree(h, p)
	if err := h.Free(p); err != nil {
		log.Printf("double free detected: %v", err)
	}

	outside := make([]byte, 16)
	if err := h.Free(outside); err != nil {
		log.Printf("invalid pointer detected: %v", err)
	}
	dump(h)
}

func fragmentation(h *malloc.Heap) {
	fmt.Println("\n--- fragmentation ---")
	blocks := make([][]byte, 10)
	for i := range blocks {
		blocks[i] = h.AllocBytes(100 + i*50)
		if blocks[i] == nil {
			log.Fatalf("allocation %d failed", i)
		}
	}
	fmt.Println("allocated 10 blocks")
	for i := 1; i < len(blocks); i += 2 {
		mustFree(h, blocks[i])
	}
	fmt.Printf("freed every other block, fragmentation count: %d\n", h.FreeBlockCount())
	dump(h)
	for i := 0; i < len(blocks); i += 2 {
		mustFree(h, blocks[i])
	}
	fmt.Println("freed the rest")
	dump(h)
}

func mustFree(h *malloc.Heap, ps ...[]byte) {
	for _, p := range ps {
		if err := h.Free(p); err != nil {
			log.Fatalf("free: %v", err)
		}
	}
}
