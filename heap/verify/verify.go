package verify

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// ValidationError describes the first invariant an arena image violates.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates all arena invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	if err := Size(data); err != nil {
		return err
	}
	if err := Chain(data); err != nil {
		return err
	}
	return Magic(data)
}

// Size validates the length of the image.
func Size(data []byte) error {
	if len(data) != format.ArenaSize {
		return &ValidationError{
			Type:    "Size",
			Message: fmt.Sprintf("arena is %d bytes, expected %d", len(data), format.ArenaSize),
			Offset:  -1,
		}
	}
	return nil
}

// Chain validates the block chain: every header is in bounds with an aligned,
// non-negative size, each next link points at the byte right after the
// block's usable region, and the last block ends exactly at the end of data.
func Chain(data []byte) error {
	if len(data) < format.HeaderSize {
		return &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("image too small for a header: %d bytes", len(data)),
			Offset:  -1,
		}
	}

	covered := 0
	off := 0
	for {
		h, err := format.ReadHeader(data, off)
		if err != nil {
			return &ValidationError{Type: "Chain", Message: err.Error(), Offset: off}
		}
		if h.Size < 0 || !format.IsAligned(h.Size) {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("usable size %d is negative or not %d-byte aligned", h.Size, format.Alignment),
				Offset:  off,
			}
		}

		end := h.End()
		if end > len(data) {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("block extends beyond arena: end=0x%X, arena=0x%X", end, len(data)),
				Offset:  off,
			}
		}
		covered += format.PaddedHeaderSize + h.Size

		if !h.HasNext() {
			if end != len(data) {
				return &ValidationError{
					Type:    "Chain",
					Message: fmt.Sprintf("chain ends at 0x%X, leaving %d bytes uncovered", end, len(data)-end),
					Offset:  off,
				}
			}
			break
		}
		if h.Next != int64(end) {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("next=0x%X does not follow block end 0x%X", h.Next, end),
				Offset:  off,
			}
		}
		off = end
	}

	// next == end makes offsets strictly increasing, so the walk cannot loop
	// and coverage only fails if the arithmetic above is wrong.
	if covered != len(data) {
		return &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("blocks cover %d bytes, expected %d", covered, len(data)),
			Offset:  -1,
		}
	}
	return nil
}

// Magic validates that every header on the chain carries the magic tag.
// It assumes Chain passed.
func Magic(data []byte) error {
	off := 0
	for {
		h, err := format.ReadHeader(data, off)
		if err != nil {
			return &ValidationError{Type: "Magic", Message: err.Error(), Offset: off}
		}
		if h.Magic != format.HeaderMagic {
			return &ValidationError{
				Type:    "Magic",
				Message: fmt.Sprintf("got 0x%04X, expected 0x%04X", h.Magic, format.HeaderMagic),
				Offset:  off,
			}
		}
		if !h.HasNext() || h.Next <= int64(off) {
			return nil
		}
		off = int(h.Next)
	}
}
