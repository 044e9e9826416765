package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrMisaligned indicates a header offset that is not on an Alignment boundary.
	ErrMisaligned = errors.New("format: misaligned header offset")
	// ErrBadMagic indicates a header whose magic tag does not match HeaderMagic.
	ErrBadMagic = errors.New("format: header magic mismatch")
)
