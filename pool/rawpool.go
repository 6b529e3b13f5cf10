// File: pool/rawpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Free-list allocation engine and layout-generic allocator capability.
// One engine serves both facades; see pool.go for the typed one.

package pool

import (
	"fmt"
	"unsafe"

	"github.com/momentics/typedpool/api"
)

// RawPool is a fixed-capacity pool of equally shaped slots with an
// intrusive free list. A free slot's first word holds the address of the
// next free slot, or zero meaning "no explicit link; the adjacent
// never-yet-touched slot follows". The cursor is the address the next
// allocation will return; it equals limit once the pool is exhausted.
//
// RawPool implements api.Allocator. It is not safe for concurrent use.
type RawPool struct {
	shape    api.Layout // value shape given at construction
	slot     api.Layout // shape widened to the effective slot layout
	capacity int
	strict   bool

	region  api.Region
	mapping []byte // exactly what region.Reserve returned; nil after Close

	base   uintptr
	limit  uintptr
	cursor uintptr

	closed bool
	stats  api.PoolStats
}

// NewRawPool creates a pool of capacity slots shaped to hold one value of
// the given layout. The effective slot shape is widened to at least a
// pointer's shape (see slotLayout). Construction failures (invalid
// layout, reservation overflow, backing region exhaustion) are fatal and
// panic; they are configuration errors, not runtime conditions.
func NewRawPool(capacity int, shape api.Layout, opts ...Option) *RawPool {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	slot, err := slotLayout(shape)
	if err != nil {
		panic(fmt.Sprintf("typedpool: %v", err))
	}
	total, err := reservationSize(capacity, slot)
	if err != nil {
		panic(fmt.Sprintf("typedpool: %v", err))
	}

	p := &RawPool{
		shape:    shape,
		slot:     slot,
		capacity: capacity,
		strict:   cfg.strict,
		region:   cfg.region,
	}
	if capacity == 0 {
		// Nothing to reserve; the pool is born exhausted. The zero
		// cursor is outside the empty [0,0) range, so every allocation
		// fails the containment check.
		return p
	}

	mapping, err := p.region.Reserve(total)
	if err != nil {
		panic(fmt.Sprintf("typedpool: reserve %d bytes: %v", total, err))
	}
	if len(mapping) < total {
		panic(fmt.Sprintf("typedpool: region returned %d bytes, need %d", len(mapping), total))
	}
	p.mapping = mapping
	// The pool keeps mapping alive for its whole lifetime, so slot
	// addresses derived from it stay valid even for a heap-backed region.
	p.base = alignUp(uintptr(unsafe.Pointer(&mapping[0])), uintptr(slot.Align))
	p.limit = p.base + uintptr(capacity)*uintptr(slot.Size)
	p.cursor = p.base
	return p
}

// Capacity returns the fixed slot count set at construction.
func (p *RawPool) Capacity() int { return p.capacity }

// SlotLayout returns the effective per-slot layout.
func (p *RawPool) SlotLayout() api.Layout { return p.slot }

// Contains reports whether ptr falls inside the pool's reservation. It is
// a coarse bounds predicate only: it cannot tell an occupied slot from a
// free one and must never be used as a correctness guarantee.
func (p *RawPool) Contains(ptr unsafe.Pointer) bool {
	addr := uintptr(ptr)
	return addr >= p.base && addr < p.limit
}

// checkLayout verifies a requested layout against the slot shape. In the
// default mode any layout the slot subsumes is accepted; in strict mode
// the request must equal the value shape the pool was constructed with.
func (p *RawPool) checkLayout(l api.Layout) error {
	if !l.Valid() {
		return fmt.Errorf("invalid layout size=%d align=%d: %w", l.Size, l.Align, api.ErrLayoutMismatch)
	}
	if p.strict {
		if l != p.shape {
			return fmt.Errorf("layout size=%d align=%d is not the pool shape size=%d align=%d: %w",
				l.Size, l.Align, p.shape.Size, p.shape.Align, api.ErrLayoutMismatch)
		}
		return nil
	}
	if !l.Fits(p.slot) {
		return fmt.Errorf("layout size=%d align=%d exceeds slot size=%d align=%d: %w",
			l.Size, l.Align, p.slot.Size, p.slot.Align, api.ErrLayoutMismatch)
	}
	return nil
}

// Allocate hands out one slot in O(1). The slot's prior bytes are
// whatever the free-list left there; callers must fully initialize the
// value before reading it back.
func (p *RawPool) Allocate(l api.Layout) (unsafe.Pointer, error) {
	if p.closed {
		return nil, api.ErrPoolClosed
	}
	if err := p.checkLayout(l); err != nil {
		return nil, err
	}
	if p.cursor < p.base || p.cursor >= p.limit {
		return nil, api.ErrPoolExhausted
	}

	item := p.cursor
	// A freed slot carries an explicit link; a virgin slot is still
	// zeroed and falls through to its bump-adjacent neighbor. Explicit
	// links win, so reused slots are preferred over untouched memory.
	redirect := *(*uintptr)(unsafe.Pointer(item))
	if redirect != 0 {
		p.cursor = redirect
	} else {
		p.cursor = item + uintptr(p.slot.Size)
	}

	p.stats.TotalAlloc++
	p.stats.InUse++
	return unsafe.Pointer(item), nil
}

// Deallocate splices a slot back onto the free list in O(1) and rewinds
// the cursor to it. The pointer must have come from Allocate on this pool
// with a matching layout; bounds and stride are checked, anything subtler
// (double free, still-referenced value) is caller responsibility.
func (p *RawPool) Deallocate(ptr unsafe.Pointer, l api.Layout) error {
	if p.closed {
		return api.ErrPoolClosed
	}
	if err := p.checkLayout(l); err != nil {
		return err
	}
	addr := uintptr(ptr)
	if addr < p.base || addr >= p.limit {
		return fmt.Errorf("%#x outside [%#x,%#x): %w", addr, p.base, p.limit, api.ErrForeignPointer)
	}
	if (addr-p.base)%uintptr(p.slot.Size) != 0 {
		return fmt.Errorf("%#x is not a slot boundary: %w", addr, api.ErrForeignPointer)
	}

	// The cursor value may itself be the exhaustion sentinel (limit);
	// storing it is fine, the next Allocate re-checks containment.
	*(*uintptr)(ptr) = p.cursor
	p.cursor = addr

	p.stats.TotalFree++
	p.stats.InUse--
	return nil
}

// Stats exposes slot accounting for diagnostics.
func (p *RawPool) Stats() api.PoolStats { return p.stats }

// Close releases the whole reservation in one region call. Values still
// occupying slots are not finalized; that is the owner's job, via their
// handles, before Close. Close is idempotent.
func (p *RawPool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.base, p.limit, p.cursor = 0, 0, 0
	if p.mapping == nil {
		return nil
	}
	mapping := p.mapping
	p.mapping = nil
	return p.region.Release(mapping)
}

var _ api.Allocator = (*RawPool)(nil)
