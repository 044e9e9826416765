package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// runStatsDoc is the JSON form of allocator statistics.
type runStatsDoc struct {
	AllocCalls    int     `json:"alloc_calls"`
	AllocFailures int     `json:"alloc_failures"`
	FreeCalls     int     `json:"free_calls"`
	Splits        int     `json:"splits"`
	Blocks        int     `json:"blocks"`
	UsedBlocks    int     `json:"used_blocks"`
	FreeBlocks    int     `json:"free_blocks"`
	UsedBytes     int     `json:"used_bytes"`
	FreeBytes     int     `json:"free_bytes"`
	HeaderBytes   int     `json:"header_bytes"`
	LargestFree   int     `json:"largest_free"`
	Fragmentation float64 `json:"fragmentation"`
}

func newRunStatsDoc(s alloc.Stats) runStatsDoc {
	return runStatsDoc{
		AllocCalls:    s.AllocCalls,
		AllocFailures: s.AllocFailures,
		FreeCalls:     s.FreeCalls,
		Splits:        s.Splits,
		Blocks:        s.Blocks,
		UsedBlocks:    s.UsedBlocks,
		FreeBlocks:    s.FreeBlocks,
		UsedBytes:     s.UsedBytes,
		FreeBytes:     s.FreeBytes,
		HeaderBytes:   s.HeaderBytes,
		LargestFree:   s.LargestFree,
		Fragmentation: s.Fragmentation(),
	}
}

// printStats writes a human-readable summary of s.
func printStats(w io.Writer, s alloc.Stats) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "\nAllocator Statistics\n")
	p.Fprintf(w, "  Alloc calls:    %d (%d failed)\n", s.AllocCalls, s.AllocFailures)
	p.Fprintf(w, "  Free calls:     %d\n", s.FreeCalls)
	p.Fprintf(w, "  Splits:         %d\n", s.Splits)
	p.Fprintf(w, "  Blocks:         %d (%d used, %d free)\n", s.Blocks, s.UsedBlocks, s.FreeBlocks)
	p.Fprintf(w, "  Used bytes:     %d\n", s.UsedBytes)
	p.Fprintf(w, "  Free bytes:     %d (largest %d)\n", s.FreeBytes, s.LargestFree)
	p.Fprintf(w, "  Header bytes:   %d\n", s.HeaderBytes)
	p.Fprintf(w, "  Fragmentation:  %.1f%%\n", s.Fragmentation()*100)
}
