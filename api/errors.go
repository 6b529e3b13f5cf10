// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types for the typedpool library.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrPoolExhausted is returned when no free slot and no untouched
	// slot remains. Recoverable for Allocator callers; the typed facade
	// panics on it instead.
	ErrPoolExhausted = fmt.Errorf("pool exhausted")

	// ErrLayoutMismatch is returned when a requested layout is not
	// compatible with the pool's fixed slot shape.
	ErrLayoutMismatch = fmt.Errorf("layout mismatch")

	// ErrPoolClosed is returned by operations on a pool whose backing
	// region has already been released.
	ErrPoolClosed = fmt.Errorf("pool is closed")

	// ErrForeignPointer is returned when a pointer handed to Deallocate
	// does not address a slot of this pool.
	ErrForeignPointer = fmt.Errorf("pointer does not belong to pool")
)
