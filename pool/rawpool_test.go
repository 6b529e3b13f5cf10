package pool_test

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/momentics/typedpool/api"
	"github.com/momentics/typedpool/fake"
	"github.com/momentics/typedpool/pool"
)

var wordLayout = api.LayoutOf[uint64]()

// TestRawPool_SlotWidening verifies shapes smaller than a pointer are
// widened so a free slot can always hold a free-list link.
func TestRawPool_SlotWidening(t *testing.T) {
	p := pool.NewRawPool(1, api.Layout{Size: 1, Align: 1}, pool.WithRegion(pool.HeapRegion()))
	defer p.Close()

	slot := p.SlotLayout()
	if slot.Size != int(unsafe.Sizeof(uintptr(0))) {
		t.Errorf("slot size = %d, want pointer size %d", slot.Size, unsafe.Sizeof(uintptr(0)))
	}
	if slot.Align != int(unsafe.Alignof(uintptr(0))) {
		t.Errorf("slot align = %d, want pointer align %d", slot.Align, unsafe.Alignof(uintptr(0)))
	}
}

// TestRawPool_SlotSizeRounding verifies the slot size is rounded up to a
// multiple of the alignment so stride arithmetic stays exact.
func TestRawPool_SlotSizeRounding(t *testing.T) {
	p := pool.NewRawPool(1, api.Layout{Size: 12, Align: 8}, pool.WithRegion(pool.HeapRegion()))
	defer p.Close()

	if slot := p.SlotLayout(); slot.Size != 16 || slot.Align != 8 {
		t.Errorf("slot = %+v, want size 16 align 8", slot)
	}
}

// TestRawPool_DistinctAddresses allocates to capacity and checks all slot
// addresses are pairwise distinct and inside the reservation.
func TestRawPool_DistinctAddresses(t *testing.T) {
	const capacity = 64
	p := pool.NewRawPool(capacity, wordLayout)
	defer p.Close()

	seen := make(map[uintptr]bool, capacity)
	for i := 0; i < capacity; i++ {
		ptr, err := p.Allocate(wordLayout)
		if err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
		if !p.Contains(ptr) {
			t.Fatalf("allocation %d returned %p outside the reservation", i, ptr)
		}
		addr := uintptr(ptr)
		if seen[addr] {
			t.Fatalf("allocation %d returned duplicate address %#x", i, addr)
		}
		seen[addr] = true
	}
}

// TestRawPool_Exhaustion checks the allocation past capacity fails with a
// typed error instead of handing out foreign memory.
func TestRawPool_Exhaustion(t *testing.T) {
	const capacity = 256
	p := pool.NewRawPool(capacity, wordLayout)
	defer p.Close()

	for i := 0; i < capacity; i++ {
		if _, err := p.Allocate(wordLayout); err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
	}
	if _, err := p.Allocate(wordLayout); !errors.Is(err, api.ErrPoolExhausted) {
		t.Errorf("allocation %d returned %v, want ErrPoolExhausted", capacity, err)
	}
}

// TestRawPool_LIFOReuse checks freed slots are handed out again, most
// recently freed first, before any untouched slot.
func TestRawPool_LIFOReuse(t *testing.T) {
	p := pool.NewRawPool(4, wordLayout)
	defer p.Close()

	var ptrs [3]unsafe.Pointer
	for i := range ptrs {
		ptr, err := p.Allocate(wordLayout)
		if err != nil {
			t.Fatal(err)
		}
		ptrs[i] = ptr
	}

	if err := p.Deallocate(ptrs[0], wordLayout); err != nil {
		t.Fatal(err)
	}
	if err := p.Deallocate(ptrs[2], wordLayout); err != nil {
		t.Fatal(err)
	}

	first, err := p.Allocate(wordLayout)
	if err != nil {
		t.Fatal(err)
	}
	if first != ptrs[2] {
		t.Errorf("first reuse = %p, want most recently freed %p", first, ptrs[2])
	}
	second, err := p.Allocate(wordLayout)
	if err != nil {
		t.Fatal(err)
	}
	if second != ptrs[0] {
		t.Errorf("second reuse = %p, want %p", second, ptrs[0])
	}

	// The fourth slot is still virgin; after it the pool is exhausted.
	if _, err := p.Allocate(wordLayout); err != nil {
		t.Fatalf("virgin slot allocation failed: %v", err)
	}
	if _, err := p.Allocate(wordLayout); !errors.Is(err, api.ErrPoolExhausted) {
		t.Errorf("got %v, want ErrPoolExhausted", err)
	}
}

// TestRawPool_LayoutMismatch checks shapes the slot cannot subsume are
// rejected, never silently truncated or misaligned.
func TestRawPool_LayoutMismatch(t *testing.T) {
	p := pool.NewRawPool(4, wordLayout)
	defer p.Close()

	cases := []struct {
		name string
		l    api.Layout
	}{
		{"oversized", api.Layout{Size: 64, Align: 8}},
		{"overaligned", api.Layout{Size: 8, Align: 64}},
		{"non-power-of-two align", api.Layout{Size: 8, Align: 3}},
		{"zero align", api.Layout{Size: 8, Align: 0}},
		{"negative size", api.Layout{Size: -1, Align: 8}},
	}
	for _, tc := range cases {
		if _, err := p.Allocate(tc.l); !errors.Is(err, api.ErrLayoutMismatch) {
			t.Errorf("%s: got %v, want ErrLayoutMismatch", tc.name, err)
		}
	}

	// Smaller-but-compatible layouts are permitted by default; the slot
	// already reserves the padding.
	if _, err := p.Allocate(api.Layout{Size: 4, Align: 4}); err != nil {
		t.Errorf("compatible smaller layout rejected: %v", err)
	}
}

// TestRawPool_StrictLayout checks strict mode only admits the exact
// construction shape.
func TestRawPool_StrictLayout(t *testing.T) {
	p := pool.NewRawPool(4, wordLayout, pool.WithStrictLayout())
	defer p.Close()

	if _, err := p.Allocate(api.Layout{Size: 4, Align: 4}); !errors.Is(err, api.ErrLayoutMismatch) {
		t.Errorf("strict pool admitted a smaller layout: %v", err)
	}
	if _, err := p.Allocate(wordLayout); err != nil {
		t.Errorf("strict pool rejected its own shape: %v", err)
	}
}

// TestRawPool_DeallocateForeign checks pointers outside the pool or off a
// slot boundary are refused.
func TestRawPool_DeallocateForeign(t *testing.T) {
	p := pool.NewRawPool(4, wordLayout)
	defer p.Close()

	var outside uint64
	if err := p.Deallocate(unsafe.Pointer(&outside), wordLayout); !errors.Is(err, api.ErrForeignPointer) {
		t.Errorf("foreign pointer: got %v, want ErrForeignPointer", err)
	}

	ptr, err := p.Allocate(wordLayout)
	if err != nil {
		t.Fatal(err)
	}
	interior := unsafe.Pointer(uintptr(ptr) + 1)
	if err := p.Deallocate(interior, wordLayout); !errors.Is(err, api.ErrForeignPointer) {
		t.Errorf("interior pointer: got %v, want ErrForeignPointer", err)
	}
}

// TestRawPool_ZeroCapacity checks an empty pool is born exhausted and
// refuses everything gracefully.
func TestRawPool_ZeroCapacity(t *testing.T) {
	region := &fake.Region{}
	p := pool.NewRawPool(0, wordLayout, pool.WithRegion(region))
	defer p.Close()

	if got := p.Capacity(); got != 0 {
		t.Errorf("capacity = %d, want 0", got)
	}
	if _, err := p.Allocate(wordLayout); !errors.Is(err, api.ErrPoolExhausted) {
		t.Errorf("got %v, want ErrPoolExhausted", err)
	}
	if region.Reserves != 0 {
		t.Errorf("empty pool reserved memory: %d calls", region.Reserves)
	}
}

// TestRawPool_Close checks the reservation is released exactly once and
// later operations fail with ErrPoolClosed.
func TestRawPool_Close(t *testing.T) {
	region := &fake.Region{}
	p := pool.NewRawPool(8, wordLayout, pool.WithRegion(region))

	ptr, err := p.Allocate(wordLayout)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if region.Releases != 1 {
		t.Errorf("region released %d times, want 1", region.Releases)
	}
	if region.Reserved != 0 {
		t.Errorf("region still has %d bytes outstanding", region.Reserved)
	}

	if _, err := p.Allocate(wordLayout); !errors.Is(err, api.ErrPoolClosed) {
		t.Errorf("allocate after close: got %v, want ErrPoolClosed", err)
	}
	if err := p.Deallocate(ptr, wordLayout); !errors.Is(err, api.ErrPoolClosed) {
		t.Errorf("deallocate after close: got %v, want ErrPoolClosed", err)
	}
}

// TestRawPool_Stats checks the accounting counters track the slot churn.
func TestRawPool_Stats(t *testing.T) {
	p := pool.NewRawPool(8, wordLayout)
	defer p.Close()

	a, _ := p.Allocate(wordLayout)
	b, _ := p.Allocate(wordLayout)
	_ = p.Deallocate(a, wordLayout)

	stats := p.Stats()
	if stats.TotalAlloc != 2 || stats.TotalFree != 1 || stats.InUse != 1 {
		t.Errorf("stats = %+v, want alloc 2 free 1 inuse 1", stats)
	}
	_ = p.Deallocate(b, wordLayout)
	if stats := p.Stats(); stats.InUse != 0 {
		t.Errorf("in-use = %d after freeing everything", stats.InUse)
	}
}

// TestRawPool_ConstructionFailures checks configuration errors are fatal.
func TestRawPool_ConstructionFailures(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	mustPanic("reservation overflow", func() {
		pool.NewRawPool(math.MaxInt/2, api.Layout{Size: 1024, Align: 8})
	})
	mustPanic("negative capacity", func() {
		pool.NewRawPool(-1, wordLayout)
	})
	mustPanic("invalid alignment", func() {
		pool.NewRawPool(1, api.Layout{Size: 8, Align: 3})
	})
	mustPanic("region failure", func() {
		pool.NewRawPool(1, wordLayout, pool.WithRegion(&fake.Region{FailNext: true}))
	})
	mustPanic("bounded region exhausted", func() {
		pool.NewRawPool(1024, wordLayout, pool.WithRegion(&fake.Region{Limit: 64}))
	})
}
