// Package alloc implements a first-fit heap allocator over a single fixed-size
// arena.
//
// # Overview
//
// An Arena owns one contiguous region of format.ArenaSize bytes, acquired from
// the operating system the first time Alloc is called. The region is carved
// into blocks, each a 16-byte header followed by a usable region. Headers are
// threaded into a singly linked chain in address order that always covers the
// whole arena with no gaps:
//
//	+--------+-------------+--------+-------------+--------+----------------+
//	| hdr 16 | usable (16) | hdr 16 | usable (32) | hdr 16 | usable (928)   |
//	+--------+-------------+--------+-------------+--------+----------------+
//	  used                   used                   free
//
// # Allocation
//
// Alloc rounds the request up to format.Alignment and picks the first free
// block large enough. When the surplus can host a header plus one alignment
// unit, the block is split and the tail becomes a new free block; otherwise
// the whole block is handed out and the surplus stays with it.
//
//	a := alloc.New()
//	defer a.Close()
//
//	ref, buf, err := a.Alloc(10)
//	if err != nil {
//	    return err
//	}
//	copy(buf, "0123456789")
//
//	err = a.Free(ref)
//
// # Freeing
//
// Free clears the in-use flag of the block and nothing else. Adjacent free
// blocks are never merged, so fragmentation is permanent for the lifetime of
// the arena. The arena never grows: once no free block is large enough, Alloc
// returns ErrNoSpace.
//
// By default Free trusts its argument beyond a bounds check. WithValidation
// enables checks for misaligned, foreign, and double-freed references.
//
// # References
//
// A Ref is the byte offset of a block's usable region within the arena. The
// header lives at Ref - format.PaddedHeaderSize. The zero Ref is never valid.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Callers must synchronize access
// externally.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/heap/printer: renders the block chain
//   - github.com/joshuapare/heapkit/heap/verify: checks chain invariants
//   - github.com/joshuapare/heapkit/internal/format: header layout constants
package alloc
