// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides test doubles for the typedpool capabilities.
package fake

import (
	"fmt"

	"github.com/momentics/typedpool/api"
)

// Region is a bounded, failure-injectable backing region for tests.
// It hands out heap slices and records every call.
type Region struct {
	Limit    int  // total bytes the region may have outstanding; 0 = unbounded
	FailNext bool // makes the next Reserve fail once

	Reserved int // bytes currently outstanding
	Reserves int // Reserve calls seen
	Releases int // Release calls seen
}

func (r *Region) Reserve(size int) ([]byte, error) {
	r.Reserves++
	if r.FailNext {
		r.FailNext = false
		return nil, fmt.Errorf("fake region: injected failure")
	}
	if r.Limit > 0 && r.Reserved+size > r.Limit {
		return nil, fmt.Errorf("fake region: %d bytes over the %d byte limit", r.Reserved+size-r.Limit, r.Limit)
	}
	r.Reserved += size
	return make([]byte, size), nil
}

func (r *Region) Release(b []byte) error {
	r.Releases++
	r.Reserved -= len(b)
	return nil
}

var _ api.Region = (*Region)(nil)
