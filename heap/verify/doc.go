// Package verify provides validation functions for arena images.
//
// # Overview
//
// The checks decode block headers straight from the raw arena bytes, without
// going through the allocator, so they catch corruption the allocator itself
// would walk past. They are used by the allocator's tests and by heapctl.
//
// Validation categories:
//   - Size: the image is exactly format.ArenaSize bytes
//   - Chain: headers in bounds, aligned sizes, next equals structural
//     adjacency, termination at the arena end, exact coverage
//   - Magic: every header on the chain carries format.HeaderMagic
//
// # Quick Start
//
//	if err := verify.AllInvariants(a.Bytes()); err != nil {
//	    fmt.Printf("arena corrupt: %v\n", err)
//	}
//
// Failures are reported as *ValidationError, carrying the offending header
// offset when one applies.
package verify
