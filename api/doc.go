// Package api
// Author: momentics <momentics@gmail.com>
//
// Shared types and capability interfaces for the typedpool library.
//
// The api package carries no implementation: concrete pools live in the
// pool package, test doubles in the fake package. Everything here is a
// contract between the fixed-capacity pool engine and its callers.
package api
