// File: pool/options.go
// Author: momentics <momentics@gmail.com>
//
// Construction options shared by both pool facades.

package pool

import "github.com/momentics/typedpool/api"

type options struct {
	region api.Region
	strict bool
}

func defaultOptions() options {
	return options{region: SystemRegion()}
}

// Option configures pool construction.
type Option func(*options)

// WithRegion injects the backing region the pool reserves from. The
// default is the platform system region (anonymous mmap on unix,
// VirtualAlloc on windows, heap elsewhere).
func WithRegion(r api.Region) Option {
	return func(o *options) { o.region = r }
}

// WithStrictLayout makes the allocator reject any request whose layout
// does not widen to exactly the pool's slot shape. The default accepts
// every layout the slot subsumes, wasting the already reserved padding
// instead of failing.
func WithStrictLayout() Option {
	return func(o *options) { o.strict = true }
}
