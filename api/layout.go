// File: api/layout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Size/alignment shape descriptor for pool slots.

package api

import "unsafe"

// Layout describes the size and alignment requirement of one value.
// Align must be a positive power of two; Size must be non-negative.
type Layout struct {
	Size  int
	Align int
}

// LayoutOf returns the layout of type T as the Go compiler lays it out.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{
		Size:  int(unsafe.Sizeof(zero)),
		Align: int(unsafe.Alignof(zero)),
	}
}

// Valid reports whether the layout is well-formed: non-negative size and
// a positive power-of-two alignment.
func (l Layout) Valid() bool {
	return l.Size >= 0 && l.Align > 0 && l.Align&(l.Align-1) == 0
}

// Fits reports whether a value of layout l can be stored in a slot of
// layout slot: no larger and no more strictly aligned. Both layouts must
// be valid; for valid power-of-two alignments, l.Align <= slot.Align
// implies l.Align divides slot.Align.
func (l Layout) Fits(slot Layout) bool {
	return l.Size <= slot.Size && l.Align <= slot.Align
}
