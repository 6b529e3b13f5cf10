// File: api/alloc.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract allocation APIs: the raw allocator capability exposed
// by pools, and the backing region capability pools reserve memory from.

package api

import "unsafe"

// Allocator is a layout-checked allocation capability. A fixed-shape pool
// exposes this interface so external smart-pointer style constructs can
// place values into pool-backed storage without going through the typed
// facade.
type Allocator interface {
	// Allocate returns a pointer to storage for one value of the given
	// layout. The layout must fit the allocator's slot shape. Fails with
	// ErrPoolExhausted when no slot is available and ErrLayoutMismatch
	// when the layout is not compatible.
	Allocate(l Layout) (unsafe.Pointer, error)

	// Deallocate returns previously allocated storage. The pointer must
	// have been produced by Allocate on the same allocator and the layout
	// must match the one it was allocated with.
	Deallocate(ptr unsafe.Pointer, l Layout) error
}

// Region is the backing memory provider a pool reserves its slot storage
// from. Injected explicitly so the engine stays testable against bounded
// or failing providers instead of depending on a process-wide default.
type Region interface {
	// Reserve returns a zero-initialized contiguous byte region of the
	// requested size. Zeroing is load-bearing: a zeroed slot decodes as
	// "no free-list link".
	Reserve(size int) ([]byte, error)

	// Release returns a region previously handed out by Reserve. Called
	// exactly once per Reserve, with the exact slice Reserve returned.
	Release(b []byte) error
}

// PoolStats aggregates slot allocation/reuse accounting.
// Counters are plain integers: pools are single-threaded by contract.
type PoolStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
}
