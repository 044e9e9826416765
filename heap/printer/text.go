package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// text renders the chain on one line without a trailing newline.
func (p *Printer) text() string {
	if !p.src.Initialized() {
		return Empty
	}
	var sb strings.Builder
	first := true
	p.src.Walk(func(b alloc.Block) bool {
		if !first {
			sb.WriteString(Separator)
		}
		first = false
		p.writeToken(&sb, b)
		return true
	})
	return sb.String()
}

func (p *Printer) writeToken(sb *strings.Builder, b alloc.Block) {
	if p.opts.ShowOffsets {
		fmt.Fprintf(sb, "[0x%04X:%d,%s]", b.Offset, b.Size, b.State())
		return
	}
	fmt.Fprintf(sb, "[%d,%s]", b.Size, b.State())
}
