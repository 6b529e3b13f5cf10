//go:build unix

// File: pool/region_unix.go
// Author: momentics <momentics@gmail.com>
//
// Unix system region: anonymous private mmap. The kernel hands the
// mapping back zero-filled, which the free-list engine relies on.

package pool

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/typedpool/api"
)

type mmapRegion struct{}

func newSystemRegion() api.Region { return mmapRegion{} }

func (mmapRegion) Reserve(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return b, nil
}

func (mmapRegion) Release(b []byte) error {
	if b == nil {
		return nil
	}
	return unix.Munmap(b)
}
