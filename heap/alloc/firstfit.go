package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Alloc reserves size bytes using first-fit over the block chain.
//
// The first call acquires the arena. The granted usable size is size rounded
// up to format.Alignment, or the whole block when splitting would leave a
// remainder too small to stand on its own.
func (a *Arena) Alloc(size int) (Ref, []byte, error) {
	a.stats.AllocCalls++
	if size <= 0 {
		a.stats.AllocFailures++
		return 0, nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if a.closed {
		a.stats.AllocFailures++
		return 0, nil, ErrClosed
	}
	if err := a.ensureArena(); err != nil {
		a.stats.AllocFailures++
		return 0, nil, err
	}

	need, ok := format.PadChecked(size)
	if !ok || need > format.MaxUsable {
		a.stats.AllocFailures++
		return 0, nil, fmt.Errorf("%w: need %d", ErrNoSpace, size)
	}

	blk, found, err := a.firstFit(need)
	if err != nil {
		a.stats.AllocFailures++
		return 0, nil, err
	}
	if !found {
		a.stats.AllocFailures++
		a.log.Debug("no free block", "size", size, "need", need)
		return 0, nil, fmt.Errorf("%w: need %d", ErrNoSpace, need)
	}

	split, err := a.carve(&blk, need)
	if err != nil {
		a.stats.AllocFailures++
		return 0, nil, err
	}

	ref := Ref(blk.DataOffset())
	a.log.Debug("alloc",
		"size", size, "need", need, "ref", ref, "granted", blk.Size, "split", split)

	start := int(ref)
	return ref, a.data[start : start+size : start+blk.Size], nil
}

// firstFit returns the first free block, in address order, with at least
// need usable bytes.
func (a *Arena) firstFit(need int) (format.Header, bool, error) {
	var (
		hit   format.Header
		found bool
	)
	err := a.scan(func(h format.Header) bool {
		if !h.InUse() && h.Size >= need {
			hit, found = h, true
			return false
		}
		return true
	})
	return hit, found, err
}

// carve marks blk used, splitting off a free tail when the remainder can hold
// a header plus one alignment unit. blk is updated to its new shape.
func (a *Arena) carve(blk *format.Header, need int) (bool, error) {
	remainder := blk.Size - need - format.PaddedHeaderSize
	if remainder < format.MinSplitRemainder {
		blk.Flags |= format.FlagInUse
		return false, format.SetInUse(a.data, blk.Offset, true)
	}

	tail := format.Header{
		Offset: blk.Offset + format.PaddedHeaderSize + need,
		Size:   remainder,
		Next:   blk.Next,
	}
	if err := format.WriteHeader(a.data, tail); err != nil {
		return false, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	blk.Size = need
	blk.Flags |= format.FlagInUse
	blk.Next = int64(tail.Offset)
	if err := format.WriteHeader(a.data, *blk); err != nil {
		return false, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	a.stats.Splits++
	return true, nil
}

// Free marks the block behind ref as free. Neighbouring free blocks are not
// merged.
//
// Unless the arena was created WithValidation, the only check is that the
// header lies inside the arena; freeing anything that did not come from Alloc
// overwrites whatever bytes sit where its flags would be.
func (a *Arena) Free(ref Ref) error {
	a.stats.FreeCalls++
	if a.data == nil {
		return fmt.Errorf("%w: %v: arena not initialized", ErrBadRef, ref)
	}
	off := ref.HeaderOffset()
	if !buf.Has(a.data, off, format.HeaderSize) {
		return fmt.Errorf("%w: %v out of range", ErrBadRef, ref)
	}
	if a.validate {
		if err := a.checkLive(off); err != nil {
			return fmt.Errorf("free %v: %w", ref, err)
		}
	}
	a.log.Debug("free", "ref", ref)
	return format.SetInUse(a.data, off, false)
}

// checkLive verifies that off is the header of an in-use block on the chain.
func (a *Arena) checkLive(off int) error {
	h, err := format.ReadHeader(a.data, off)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRef, err)
	}
	if err := format.CheckHeader(h); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRef, err)
	}

	onChain := false
	if err := a.scan(func(c format.Header) bool {
		if c.Offset == off {
			onChain = true
		}
		return c.Offset < off
	}); err != nil {
		return err
	}
	if !onChain {
		return fmt.Errorf("%w: no block at %d", ErrBadRef, off)
	}
	if !h.InUse() {
		return ErrNotInUse
	}
	return nil
}
