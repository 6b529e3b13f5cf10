//go:build !unix && !windows

// File: pool/region_stub.go
// Author: momentics <momentics@gmail.com>
//
// Fallback system region for platforms without an off-heap path.

package pool

import "github.com/momentics/typedpool/api"

func newSystemRegion() api.Region { return heapRegion{} }
