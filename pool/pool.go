// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dedicated-type facade over the free-list engine. This API shape
// promises success or nothing: Alloc panics on exhaustion, construction
// panics on configuration errors. Callers that want typed errors use the
// RawPool / api.Allocator surface instead.

package pool

import (
	"fmt"
	"unsafe"

	"github.com/momentics/typedpool/api"
)

// Pool is a fixed-capacity pool of values of type T. T must not contain
// pointer-like data (pointers, slices, maps, strings, channels, funcs,
// interfaces): slot storage is invisible to the garbage collector.
//
// Not safe for concurrent use.
type Pool[T any] struct {
	raw     *RawPool
	item    api.Layout
	release func(*T)
}

// New creates a pool holding up to capacity values of T. Zero-sized types
// are legal and still occupy one pointer-sized slot each. Panics on
// pointer-bearing T, negative capacity, reservation overflow, or backing
// region failure.
func New[T any](capacity int, opts ...Option) *Pool[T] {
	if err := assertNoPointers[T](); err != nil {
		panic(fmt.Sprintf("typedpool: %v", err))
	}
	item := api.LayoutOf[T]()
	return &Pool[T]{
		raw:  NewRawPool(capacity, item, opts...),
		item: item,
	}
}

// SetRelease registers a hook run on the contained value right before its
// slot is reclaimed by Handle.Free. The analogue of a destructor for
// values that own external resources.
func (p *Pool[T]) SetRelease(fn func(*T)) { p.release = fn }

// Capacity returns the fixed slot count.
func (p *Pool[T]) Capacity() int { return p.raw.Capacity() }

// Contains reports whether ptr addresses storage inside this pool.
// Bounds check only; it cannot verify that the slot is occupied.
func (p *Pool[T]) Contains(ptr *T) bool {
	return p.raw.Contains(unsafe.Pointer(ptr))
}

// Alloc places v into a free slot and returns the owning handle. The slot
// is fully overwritten with v before the handle is exposed; no prior
// bytes survive. Panics when the pool is exhausted or closed.
func (p *Pool[T]) Alloc(v T) Handle[T] {
	ptr, err := p.raw.Allocate(p.item)
	if err != nil {
		panic(fmt.Sprintf("typedpool: alloc: %v", err))
	}
	value := (*T)(ptr)
	*value = v
	return Handle[T]{value: value, pool: p}
}

// Raw exposes the underlying engine as a layout-generic allocator.
func (p *Pool[T]) Raw() *RawPool { return p.raw }

// Stats exposes slot accounting for diagnostics.
func (p *Pool[T]) Stats() api.PoolStats { return p.raw.Stats() }

// Close releases the reservation in one call. Live values are not
// released individually; free their handles first if the release hook
// matters. Idempotent.
func (p *Pool[T]) Close() error { return p.raw.Close() }
