// Package printer renders the block chain of an arena for diagnostics.
//
// The text format is the one other tooling parses: each block becomes
// "[<usable size>,<used|free>]", blocks are joined by " -> ", and an arena
// that has not been acquired yet prints "[empty]".
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the bracketed one-line chain.
	FormatText Format = "text"

	// FormatJSON outputs a JSON document describing every block.
	FormatJSON Format = "json"
)

// Empty is printed in text format for an arena that was never acquired.
const Empty = "[empty]"

// Separator joins text tokens.
const Separator = " -> "

// Source is the read-only view of an allocator the printer needs.
type Source interface {
	Initialized() bool
	Capacity() int
	Walk(fn func(alloc.Block) bool)
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowOffsets prefixes each text token with its header offset,
	// e.g. "[0x0020:976,free]". JSON always includes offsets.
	// Default: false
	ShowOffsets bool
}

// DefaultOptions returns the options that produce the canonical dump.
func DefaultOptions() Options {
	return Options{Format: FormatText}
}

// Printer writes formatted arena state.
type Printer struct {
	opts   Options
	writer io.Writer
	src    Source
}

// New creates a Printer reading from src and writing to w.
//
// Example:
//
//	a := alloc.New()
//	p := printer.New(a, os.Stdout, printer.DefaultOptions())
//	p.Print()
func New(src Source, w io.Writer, opts Options) *Printer {
	return &Printer{src: src, writer: w, opts: opts}
}

// Print writes the current chain followed by a newline.
func (p *Printer) Print() error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON()
	case FormatText, "":
		_, err := fmt.Fprintln(p.writer, p.text())
		return err
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// Dump returns the canonical one-line rendering of src's chain.
func Dump(src Source) string {
	p := &Printer{src: src, opts: DefaultOptions()}
	return p.text()
}
