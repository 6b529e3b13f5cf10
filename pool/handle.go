// File: pool/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ownership handle tying a live value to its pool slot.

package pool

import "unsafe"

// Handle owns one occupied slot. Exactly one live handle exists per
// occupied slot; copying a handle and freeing both copies is a double
// free the pool cannot detect. Free returns the slot to the free list
// exactly once: later calls on the same handle are no-ops, as are calls
// on a handle emptied by IntoRaw.
type Handle[T any] struct {
	value *T
	pool  *Pool[T]
}

// Get returns the contained value for reading and writing. Valid until
// Free or IntoRaw.
func (h *Handle[T]) Get() *T { return h.value }

// Set overwrites the contained value.
func (h *Handle[T]) Set(v T) { *h.value = v }

// Free runs the pool's release hook on the value, then returns the slot
// to the free list. Safe to call more than once; only the first call does
// anything. Freeing after the pool closed is a no-op: the reservation is
// already gone wholesale.
func (h *Handle[T]) Free() {
	if h.value == nil {
		return
	}
	value := h.value
	h.value = nil
	if h.pool.release != nil {
		h.pool.release(value)
	}
	_ = h.pool.raw.Deallocate(unsafe.Pointer(value), h.pool.item)
}

// IntoRaw detaches the slot pointer from the handle without freeing it.
// The handle becomes inert; the caller now owns the slot and must
// eventually reconstitute a handle with FromRaw (and Free it) or leak the
// slot deliberately. Escape hatch for advanced integration.
func (h *Handle[T]) IntoRaw() *T {
	value := h.value
	h.value = nil
	return value
}

// FromRaw reconstitutes a handle from a pointer previously produced by
// IntoRaw on the same pool. Reconstituting a foreign pointer, or the same
// pointer twice, is undefined caller error the pool cannot detect.
func FromRaw[T any](p *Pool[T], ptr *T) Handle[T] {
	return Handle[T]{value: ptr, pool: p}
}
