// File: pool/region.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral backing regions. The concrete system region is
// selected at build time through platform-specific factories in separate
// files; the heap region works everywhere and is the fallback.

package pool

import "github.com/momentics/typedpool/api"

// SystemRegion returns the platform's off-heap region provider:
// anonymous private mmap on unix, VirtualAlloc on windows, and the heap
// region on anything else. Reservations come back zero-initialized and
// page-aligned.
func SystemRegion() api.Region {
	return newSystemRegion()
}

// HeapRegion returns a region backed by the Go heap. Reservations are
// zeroed by the runtime; Release lets the garbage collector take over
// once the pool drops its reference. Useful for tests and for platforms
// without an off-heap path.
func HeapRegion() api.Region {
	return heapRegion{}
}

type heapRegion struct{}

func (heapRegion) Reserve(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (heapRegion) Release(b []byte) error {
	return nil
}
