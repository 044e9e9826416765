package alloc

// Allocator is the allocate/free contract of an arena.
//
// Implementations:
//   - Arena: first-fit allocator over a fixed-size arena
type Allocator interface {
	// Alloc reserves at least size bytes and returns the reference of the
	// usable region together with a slice over it. The slice has length
	// size and capacity equal to the granted usable size.
	Alloc(size int) (Ref, []byte, error)

	// Free returns a block obtained from Alloc.
	Free(ref Ref) error
}

var _ Allocator = (*Arena)(nil)
