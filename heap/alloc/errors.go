package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrInvalidSize indicates a request for zero or a negative number of bytes.
	ErrInvalidSize = errors.New("alloc: size must be positive")

	// ErrAcquire indicates that the operating system refused to provide the arena.
	ErrAcquire = errors.New("alloc: arena acquisition failed")

	// ErrBadRef indicates a reference that does not address a block header.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrNotInUse indicates an attempt to free a block that is already free.
	ErrNotInUse = errors.New("alloc: block not in use")

	// ErrCorrupt indicates the block chain could not be decoded.
	ErrCorrupt = errors.New("alloc: corrupt block chain")

	// ErrClosed indicates use of an arena after Close.
	ErrClosed = errors.New("alloc: arena closed")
)
