// File: pool/place.go
// Author: momentics <momentics@gmail.com>
//
// Generic placement helpers over any api.Allocator. These are the
// integration point for external smart-pointer style constructs: a value
// goes into pool-backed storage through the capability interface instead
// of the dedicated typed facade.

package pool

import (
	"unsafe"

	"github.com/momentics/typedpool/api"
)

// Place writes v into storage obtained from a. Returns ErrPoolExhausted
// or ErrLayoutMismatch untouched from the allocator.
func Place[T any](a api.Allocator, v T) (*T, error) {
	ptr, err := a.Allocate(api.LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	value := (*T)(ptr)
	*value = v
	return value, nil
}

// Evict returns storage previously obtained via Place on the same
// allocator. The value is not finalized; run any cleanup before Evict.
func Evict[T any](a api.Allocator, ptr *T) error {
	return a.Deallocate(unsafe.Pointer(ptr), api.LayoutOf[T]())
}
