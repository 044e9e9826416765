// Package format describes the in-arena layout used by the heap allocator:
// fixed sizes, padding arithmetic, and the block header encoding. It has no
// knowledge of allocation policy so that the allocator, the printer, and the
// verifier all decode headers the same way.
package format

const (
	// ArenaSize is the fixed capacity of an arena in bytes. Arenas never grow.
	ArenaSize = 1024

	// Alignment is the boundary every header and usable region starts on.
	// Must be a power of two.
	Alignment = 16

	// AlignmentMask is used for rounding up to Alignment.
	AlignmentMask = Alignment - 1

	// HeaderSize is the encoded size of a block header.
	//
	//	Offset  Size  Description
	//	0x00    4     Usable size in bytes (header-exclusive), int32
	//	0x04    2     Flags (bit 0 = in use)
	//	0x06    2     Magic tag
	//	0x08    8     Header offset of the next block, -1 when last, int64
	HeaderSize = 16

	// PaddedHeaderSize is HeaderSize rounded up to Alignment. It is the
	// distance between a header and the usable region that follows it.
	PaddedHeaderSize = (HeaderSize + AlignmentMask) &^ AlignmentMask

	// MinSplitRemainder is the smallest remainder that is carved off as a new
	// free block: one alignment unit of usable space plus its own header.
	MinSplitRemainder = Alignment + PaddedHeaderSize

	// MaxUsable is the usable size of the single block covering a fresh arena.
	MaxUsable = ArenaSize - PaddedHeaderSize
)

// Header field offsets.
const (
	HeaderSizeOffset  = 0x00
	HeaderFlagsOffset = 0x04
	HeaderMagicOffset = 0x06
	HeaderNextOffset  = 0x08
)

const (
	// FlagInUse marks a block as handed out to a caller.
	FlagInUse uint16 = 1 << 0

	// HeaderMagic is stamped into every header when it is created. Free only
	// consults it when validation is enabled.
	HeaderMagic uint16 = 0xB10C

	// NoNext is the next-offset value of the last block in the chain.
	NoNext int64 = -1
)
