package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// maxBlocks bounds chain traversal. Every block occupies at least one header,
// so a longer walk means the chain loops.
const maxBlocks = format.ArenaSize / format.PaddedHeaderSize

// scan calls fn for each header in chain order until fn returns false.
func (a *Arena) scan(fn func(format.Header) bool) error {
	if a.data == nil {
		return nil
	}
	off := 0
	for range maxBlocks {
		h, err := format.ReadHeader(a.data, off)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if !fn(h) || !h.HasNext() {
			return nil
		}
		if h.Next <= int64(off) {
			return fmt.Errorf("%w: block at %d links back to %d", ErrCorrupt, off, h.Next)
		}
		off = int(h.Next)
	}
	return fmt.Errorf("%w: chain longer than %d blocks", ErrCorrupt, maxBlocks)
}

// Walk calls fn for each block in address order until fn returns false.
// It does nothing before the arena is acquired, and stops early if the chain
// cannot be decoded.
func (a *Arena) Walk(fn func(Block) bool) {
	_ = a.scan(func(h format.Header) bool {
		return fn(blockFromHeader(h))
	})
}

// Blocks returns a snapshot of the chain, or nil before the arena is acquired.
func (a *Arena) Blocks() []Block {
	var out []Block
	a.Walk(func(b Block) bool {
		out = append(out, b)
		return true
	})
	return out
}
