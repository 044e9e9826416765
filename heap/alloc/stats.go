package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Stats is a snapshot of an arena's counters and chain shape.
type Stats struct {
	// Cumulative operation counts.
	Acquisitions    int // Successful arena acquisitions (at most 1)
	AcquireFailures int // Failed acquisition attempts
	AllocCalls      int // Total Alloc calls
	AllocFailures   int // Alloc calls that returned an error
	FreeCalls       int // Total Free calls
	Splits          int // Allocations that split off a free tail

	// Chain summary at the time of the call.
	Blocks      int // Blocks on the chain
	UsedBlocks  int // Blocks in use
	FreeBlocks  int // Free blocks
	UsedBytes   int // Usable bytes held by in-use blocks
	FreeBytes   int // Usable bytes held by free blocks
	HeaderBytes int // Bytes consumed by headers
	LargestFree int // Largest single free block
}

// Fragmentation returns 1 - LargestFree/FreeBytes: 0 when all free space is
// one block, approaching 1 as it is scattered. Returns 0 when nothing is free.
func (s Stats) Fragmentation() float64 {
	if s.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(s.LargestFree)/float64(s.FreeBytes)
}

// Stats returns the current counters and a summary of the chain.
func (a *Arena) Stats() Stats {
	s := Stats{
		Acquisitions:    a.stats.Acquisitions,
		AcquireFailures: a.stats.AcquireFailures,
		AllocCalls:      a.stats.AllocCalls,
		AllocFailures:   a.stats.AllocFailures,
		FreeCalls:       a.stats.FreeCalls,
		Splits:          a.stats.Splits,
	}
	a.Walk(func(b Block) bool {
		s.Blocks++
		s.HeaderBytes += format.PaddedHeaderSize
		if b.InUse {
			s.UsedBlocks++
			s.UsedBytes += b.Size
		} else {
			s.FreeBlocks++
			s.FreeBytes += b.Size
			s.LargestFree = max(s.LargestFree, b.Size)
		}
		return true
	})
	return s
}
