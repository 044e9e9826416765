package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Ref is the offset of a block's usable region within the arena.
type Ref int

// HeaderOffset returns the offset of the header that precedes r.
func (r Ref) HeaderOffset() int { return int(r) - format.PaddedHeaderSize }

func (r Ref) String() string { return fmt.Sprintf("0x%04X", int(r)) }

// Block is a read-only view of one block in the chain.
type Block struct {
	Offset int  // Header offset within the arena
	Size   int  // Usable bytes following the header
	InUse  bool // True when handed out by Alloc
	Next   int  // Header offset of the next block, -1 for the last one
}

// Ref returns the reference Alloc hands out for this block.
func (b Block) Ref() Ref { return Ref(b.Offset + format.PaddedHeaderSize) }

// HasNext reports whether another block follows b.
func (b Block) HasNext() bool { return b.Next >= 0 }

// State returns "used" or "free".
func (b Block) State() string {
	if b.InUse {
		return "used"
	}
	return "free"
}

func blockFromHeader(h format.Header) Block {
	return Block{
		Offset: h.Offset,
		Size:   h.Size,
		InUse:  h.InUse(),
		Next:   int(h.Next),
	}
}
