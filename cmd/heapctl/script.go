package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/printer"
	"github.com/joshuapare/heapkit/heap/verify"
)

type opKind int

const (
	opAlloc opKind = iota
	opFree
)

// op is one script step. For opAlloc arg is the byte count; for opFree it is
// the 1-based index of an earlier alloc step.
type op struct {
	kind opKind
	arg  int
}

func (o op) String() string {
	if o.kind == opFree {
		return fmt.Sprintf("free %d", o.arg)
	}
	return fmt.Sprintf("alloc %d", o.arg)
}

// parseScript turns "alloc 10 alloc 20 free 1 ..." tokens into ops.
func parseScript(tokens []string) ([]op, error) {
	var ops []op
	allocs := 0
	for i := 0; i < len(tokens); i += 2 {
		word := strings.ToLower(tokens[i])
		if i+1 >= len(tokens) {
			return nil, fmt.Errorf("%q: missing argument", word)
		}
		n, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", word, tokens[i+1], err)
		}
		switch word {
		case "alloc", "a":
			allocs++
			ops = append(ops, op{kind: opAlloc, arg: n})
		case "free", "f":
			if n < 1 || n > allocs {
				return nil, fmt.Errorf("free %d: no such allocation (have %d)", n, allocs)
			}
			ops = append(ops, op{kind: opFree, arg: n})
		default:
			return nil, fmt.Errorf("unknown operation %q", tokens[i])
		}
	}
	return ops, nil
}

// readScript reads whitespace-separated tokens, ignoring '#' comments.
func readScript(r io.Reader) ([]string, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		tokens = append(tokens, strings.Fields(line)...)
	}
	return tokens, sc.Err()
}

// target is what a script runs against.
type target interface {
	alloc.Allocator
	printer.Source
	Bytes() []byte
}

// step records the outcome of one op.
type step struct {
	Op    string `json:"op"`
	Ref   int    `json:"ref,omitempty"`
	Error string `json:"error,omitempty"`
	State string `json:"state"`
}

// runner executes ops in order and reports the chain after each one.
type runner struct {
	arena  target
	opts   printer.Options
	check  bool
	refs   []alloc.Ref // by alloc index; zero when that alloc failed
	steps  []step
	failed int
}

func newRunner(a target, opts printer.Options, check bool) *runner {
	return &runner{arena: a, opts: opts, check: check}
}

// run executes ops. Allocation failures are recorded in the step and do not
// stop the script; a failed invariant check does.
func (r *runner) run(ops []op, w io.Writer) error {
	for _, o := range ops {
		s := step{Op: o.String()}
		if err := r.apply(o, &s); err != nil {
			s.Error = err.Error()
			r.failed++
		}

		var state strings.Builder
		if err := printer.New(r.arena, &state, r.opts).Print(); err != nil {
			return err
		}
		s.State = strings.TrimRight(state.String(), "\n")
		r.steps = append(r.steps, s)

		if w != nil {
			if s.Error != "" {
				fmt.Fprintf(w, "%s: %s\n", s.Op, s.Error)
			}
			fmt.Fprintln(w, s.State)
		}

		if r.check && r.arena.Initialized() {
			if err := verify.AllInvariants(r.arena.Bytes()); err != nil {
				return fmt.Errorf("after %s: %w", s.Op, err)
			}
		}
	}
	return nil
}

func (r *runner) apply(o op, s *step) error {
	switch o.kind {
	case opAlloc:
		ref, _, err := r.arena.Alloc(o.arg)
		r.refs = append(r.refs, ref)
		if err != nil {
			return err
		}
		s.Ref = int(ref)
		return nil
	case opFree:
		if o.arg < 1 || o.arg > len(r.refs) {
			return fmt.Errorf("no allocation #%d", o.arg)
		}
		ref := r.refs[o.arg-1]
		if ref == 0 {
			return errors.New("allocation failed, nothing to free")
		}
		s.Ref = int(ref)
		return r.arena.Free(ref)
	default:
		return fmt.Errorf("unknown op kind %d", o.kind)
	}
}
