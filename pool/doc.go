// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity, single-granularity memory pool with constant-time
// allocation and deallocation.
//
// A pool reserves one contiguous region up front and thereafter services
// every request from an intrusive free list threaded through unused slots.
// It never grows, never shrinks, and never touches the backing allocator
// again until Close. The free list is LIFO: the most recently freed slot
// is the next one handed out, keeping the working set compact.
//
// Two facades share one engine. RawPool implements api.Allocator and
// returns typed errors on exhaustion or layout mismatch. Pool[T] is the
// dedicated-type facade on top of it: Alloc either succeeds or panics.
//
// Pools are NOT safe for concurrent use. The cursor is a single mutable
// cell with no locking; interleaved calls from multiple goroutines corrupt
// the free list. Callers that need sharing must add their own mutex or use
// one pool per goroutine. This trades thread-safety for uncontended O(1)
// operations.
package pool
