//go:build windows

// File: pool/region_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows system region via kernel32 VirtualAlloc/VirtualFree.
// Committed pages are zero-initialized by the OS.

package pool

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/momentics/typedpool/api"
)

var (
	kern32           = windows.NewLazySystemDLL("kernel32.dll")
	procVirtualAlloc = kern32.NewProc("VirtualAlloc")
	procVirtualFree  = kern32.NewProc("VirtualFree")
)

type virtualRegion struct{}

func newSystemRegion() api.Region { return virtualRegion{} }

func (virtualRegion) Reserve(size int) ([]byte, error) {
	addr, _, callErr := procVirtualAlloc.Call(
		0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE,
	)
	if addr == 0 {
		return nil, fmt.Errorf("VirtualAlloc %d bytes: %v", size, callErr)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (virtualRegion) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	ret, _, callErr := procVirtualFree.Call(
		uintptr(unsafe.Pointer(&b[0])), 0,
		windows.MEM_RELEASE,
	)
	if ret == 0 {
		return fmt.Errorf("VirtualFree: %v", callErr)
	}
	return nil
}
