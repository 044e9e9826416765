package printer

import (
	"encoding/json"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// jsonArena is the JSON form of an arena.
type jsonArena struct {
	Initialized bool        `json:"initialized"`
	Capacity    int         `json:"capacity"`
	Blocks      []jsonBlock `json:"blocks"`
}

// jsonBlock is the JSON form of one block.
type jsonBlock struct {
	Offset int    `json:"offset"`
	Ref    int    `json:"ref"`
	Size   int    `json:"size"`
	State  string `json:"state"`
}

func (p *Printer) printJSON() error {
	doc := jsonArena{
		Initialized: p.src.Initialized(),
		Capacity:    p.src.Capacity(),
		Blocks:      []jsonBlock{},
	}
	p.src.Walk(func(b alloc.Block) bool {
		doc.Blocks = append(doc.Blocks, jsonBlock{
			Offset: b.Offset,
			Ref:    int(b.Ref()),
			Size:   b.Size,
			State:  b.State(),
		})
		return true
	})
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
