// File: pool/layout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slot layout calculator. A free slot stores a free-list link, so the
// effective slot shape is the componentwise max of the value shape and a
// pointer's shape, with the size rounded up to the alignment so adjacent
// slots are reachable by plain stride arithmetic.

package pool

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"github.com/momentics/typedpool/api"
)

const (
	ptrSize  = int(unsafe.Sizeof(uintptr(0)))
	ptrAlign = int(unsafe.Alignof(uintptr(0)))
)

// slotLayout widens a value layout to the effective per-slot layout.
func slotLayout(l api.Layout) (api.Layout, error) {
	if !l.Valid() {
		return api.Layout{}, fmt.Errorf("invalid layout size=%d align=%d: %w", l.Size, l.Align, api.ErrLayoutMismatch)
	}
	size, align := l.Size, l.Align
	if size < ptrSize {
		size = ptrSize
	}
	if align < ptrAlign {
		align = ptrAlign
	}
	size = (size + align - 1) &^ (align - 1)
	return api.Layout{Size: size, Align: align}, nil
}

// reservationSize computes the byte count to reserve for capacity slots,
// over-reserving by one alignment unit so the base can always be aligned.
// Fails on arithmetic overflow; that is a caller configuration error.
func reservationSize(capacity int, slot api.Layout) (int, error) {
	if capacity < 0 {
		return 0, fmt.Errorf("negative capacity %d", capacity)
	}
	if capacity != 0 && slot.Size > (math.MaxInt-(slot.Align-1))/capacity {
		return 0, fmt.Errorf("capacity %d x slot size %d overflows", capacity, slot.Size)
	}
	return capacity*slot.Size + slot.Align - 1, nil
}

func alignUp(p, align uintptr) uintptr {
	return (p + align - 1) &^ (align - 1)
}

// assertNoPointers rejects types containing pointer-like data. Slot storage
// lives outside GC-scanned memory, so a pointer stored there would be
// invisible to the collector and its referent could be reclaimed while the
// slot is still live.
func assertNoPointers[T any]() error {
	return typeNoPointers(reflect.TypeFor[T]())
}

func typeNoPointers(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return typeNoPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := typeNoPointers(t.Field(i).Type); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}
		return nil
	case reflect.String, reflect.Slice, reflect.Map, reflect.Pointer,
		reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Errorf("type %s contains pointer-like data", t.String())
	default:
		return fmt.Errorf("unsupported kind %s (%s)", t.Kind(), t.String())
	}
}
