package format

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Header is the decoded form of a block header.
type Header struct {
	Offset int    // Offset of the header within the arena
	Size   int    // Usable bytes that follow the header
	Flags  uint16 // FlagInUse and reserved bits
	Magic  uint16 // HeaderMagic for headers written by this package
	Next   int64  // Header offset of the next block, NoNext for the last one
}

// InUse reports whether the block is handed out.
func (h Header) InUse() bool { return h.Flags&FlagInUse != 0 }

// HasNext reports whether another block follows in the chain.
func (h Header) HasNext() bool { return h.Next != NoNext }

// End returns the offset one past the block's usable region. For a well
// formed chain this is where the next header starts.
func (h Header) End() int { return h.Offset + PaddedHeaderSize + h.Size }

// DataOffset returns the offset of the first usable byte.
func (h Header) DataOffset() int { return h.Offset + PaddedHeaderSize }

// ReadHeader decodes the header stored at off.
func ReadHeader(b []byte, off int) (Header, error) {
	raw, ok := buf.Slice(b, off, HeaderSize)
	if !ok {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	return Header{
		Offset: off,
		Size:   int(buf.I32LE(raw[HeaderSizeOffset:])),
		Flags:  buf.U16LE(raw[HeaderFlagsOffset:]),
		Magic:  buf.U16LE(raw[HeaderMagicOffset:]),
		Next:   buf.I64LE(raw[HeaderNextOffset:]),
	}, nil
}

// WriteHeader encodes h at h.Offset. The magic tag is always stamped,
// whatever h.Magic holds.
func WriteHeader(b []byte, h Header) error {
	raw, ok := buf.Slice(b, h.Offset, HeaderSize)
	if !ok {
		return fmt.Errorf("header at %d: %w", h.Offset, ErrTruncated)
	}
	buf.PutI32LE(raw[HeaderSizeOffset:], int32(h.Size))
	buf.PutU16LE(raw[HeaderFlagsOffset:], h.Flags)
	buf.PutU16LE(raw[HeaderMagicOffset:], HeaderMagic)
	buf.PutI64LE(raw[HeaderNextOffset:], h.Next)
	return nil
}

// SetInUse rewrites only the flags word of the header at off.
func SetInUse(b []byte, off int, inUse bool) error {
	raw, ok := buf.Slice(b, off, HeaderSize)
	if !ok {
		return fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	flags := buf.U16LE(raw[HeaderFlagsOffset:])
	if inUse {
		flags |= FlagInUse
	} else {
		flags &^= FlagInUse
	}
	buf.PutU16LE(raw[HeaderFlagsOffset:], flags)
	return nil
}

// CheckHeader validates the parts of a header that can be judged in
// isolation: alignment of its offset, the magic tag, and its size.
func CheckHeader(h Header) error {
	if !IsAligned(h.Offset) {
		return fmt.Errorf("header at %d: %w", h.Offset, ErrMisaligned)
	}
	if h.Magic != HeaderMagic {
		return fmt.Errorf("header at %d: got 0x%04X: %w", h.Offset, h.Magic, ErrBadMagic)
	}
	if h.Size < 0 || !IsAligned(h.Size) {
		return fmt.Errorf("header at %d: bad usable size %d", h.Offset, h.Size)
	}
	return nil
}
