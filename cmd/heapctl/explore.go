package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/printer"
	"github.com/joshuapare/heapkit/internal/format"
)

var (
	exploreFile string
	exploreDemo string
)

func init() {
	cmd := newExploreCmd()
	cmd.Flags().StringVarP(&exploreFile, "file", "f", "", "Read the script from a file ('-' for stdin)")
	cmd.Flags().StringVar(&exploreDemo, "demo", "", "Explore a built-in demo (1, 2 or 3)")
	rootCmd.AddCommand(cmd)
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [op arg]...",
		Short: "Step through an allocation script interactively",
		Long: `The explore command opens a terminal UI that replays a script one
operation at a time. The arena is drawn as a bar, one cell per 16 bytes,
above the chain dump and a summary of the block counts.

Example:
  heapctl explore alloc 10 alloc 20 alloc 30 free 2 alloc 40
  heapctl explore --demo 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := args
			switch {
			case exploreDemo != "":
				demo, ok := demos[exploreDemo]
				if !ok {
					return fmt.Errorf("unknown demo %q (want 1, 2 or 3)", exploreDemo)
				}
				tokens = demo
			case exploreFile != "":
				var err error
				tokens, err = loadScript(exploreFile)
				if err != nil {
					return err
				}
			}
			ops, err := parseScript(tokens)
			if err != nil {
				return err
			}

			m := newExploreModel(ops)
			final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			if fm, ok := final.(exploreModel); ok {
				fm.close()
			} else {
				m.close()
			}
			if err != nil {
				return fmt.Errorf("explorer: %w", err)
			}
			return nil
		},
	}
}

// exploreModel is the bubbletea model behind explore. Moving backwards
// replays the script from the start on a fresh arena, since Free never
// restores a split.
type exploreModel struct {
	ops   []op
	pos   int // ops applied so far
	arena *alloc.Arena
	r     *runner
	err   error // invariant failure during replay

	keys  exploreKeyMap
	help  help.Model
	width int
}

func newExploreModel(ops []op) exploreModel {
	m := exploreModel{
		ops:  ops,
		keys: defaultExploreKeys(),
		help: help.New(),
	}
	m.seek(0)
	return m
}

// seek rebuilds the arena with the first n ops applied.
func (m *exploreModel) seek(n int) {
	n = max(0, min(n, len(m.ops)))
	if m.arena != nil && n == m.pos {
		return
	}
	m.close()
	m.arena = alloc.New(alloc.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	m.r = newRunner(m.arena, printer.DefaultOptions(), true)
	m.pos = n
	m.err = m.r.run(m.ops[:n], nil)
}

func (m *exploreModel) close() {
	if m.arena != nil {
		_ = m.arena.Close()
	}
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.seek(m.pos + 1)
		case key.Matches(msg, m.keys.Prev):
			m.seek(m.pos - 1)
		case key.Matches(msg, m.keys.First):
			m.seek(0)
		case key.Matches(msg, m.keys.Last):
			m.seek(len(m.ops))
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	current := "start"
	if m.pos > 0 {
		current = m.ops[m.pos-1].String()
	}
	b.WriteString(titleStyle.Render("heapctl explore"))
	b.WriteString("  ")
	b.WriteString(stepStyle.Render(fmt.Sprintf("step %d/%d", m.pos, len(m.ops))))
	b.WriteString("  ")
	b.WriteString(opStyle.Render(current))
	b.WriteString("\n\n")

	b.WriteString(m.bar())
	b.WriteString("\n")
	b.WriteString(chainStyle.Render(printer.Dump(m.arena)))
	b.WriteString("\n")

	s := m.arena.Stats()
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"blocks %d (%d used, %d free)  free %d bytes  largest %d",
		s.Blocks, s.UsedBlocks, s.FreeBlocks, s.FreeBytes, s.LargestFree)))
	b.WriteString("\n")

	if m.pos > 0 {
		if last := m.r.steps[len(m.r.steps)-1]; last.Error != "" {
			b.WriteString(errorStyle.Render(last.Op + ": " + last.Error))
			b.WriteString("\n")
		}
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// bar draws the arena one cell per Alignment bytes, each block spanning its
// header and usable region.
func (m exploreModel) bar() string {
	if !m.arena.Initialized() {
		return emptyBarStyle.Render(strings.Repeat("·", format.ArenaSize/format.Alignment))
	}
	var b strings.Builder
	m.arena.Walk(func(blk alloc.Block) bool {
		cells := (format.PaddedHeaderSize + blk.Size) / format.Alignment
		label := fmt.Sprint(blk.Size)
		if len(label) > cells {
			label = ""
		}
		style := freeBlockStyle
		if blk.InUse {
			style = usedBlockStyle
		}
		b.WriteString(style.Width(cells).Render(label))
		return true
	})
	return b.String()
}
