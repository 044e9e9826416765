package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/printer"
)

var (
	runFile     string
	runOffsets  bool
	runStats    bool
	runCheck    bool
	runValidate bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVarP(&runFile, "file", "f", "", "Read the script from a file ('-' for stdin)")
	cmd.Flags().BoolVar(&runOffsets, "offsets", false, "Show header offsets in the dump")
	cmd.Flags().BoolVar(&runStats, "stats", false, "Print allocator statistics at the end")
	cmd.Flags().BoolVar(&runCheck, "check", false, "Verify chain invariants after every step")
	cmd.Flags().BoolVar(&runValidate, "validate", false, "Reject frees of blocks that are not live")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [op arg]...",
		Short: "Run an allocation script against a fresh arena",
		Long: `The run command executes alloc/free operations in order and prints the
block chain after each one. "alloc N" requests N bytes; "free K" frees the
block returned by the K-th alloc of the script.

Example:
  heapctl run alloc 10 alloc 20 alloc 30 free 2 alloc 40
  heapctl run --file script.txt --stats
  heapctl run a 512 f 1 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := args
			if runFile != "" {
				var err error
				tokens, err = loadScript(runFile)
				if err != nil {
					return err
				}
			}
			ops, err := parseScript(tokens)
			if err != nil {
				return err
			}
			return runScript(cmd.OutOrStdout(), ops, false)
		},
	}
	return cmd
}

func loadScript(path string) ([]string, error) {
	if path == "-" {
		return readScript(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return readScript(f)
}

// runScript executes ops on a new arena and writes the results to w
// according to the global and run flags. With showStart the chain is also
// printed once before the first op.
func runScript(w io.Writer, ops []op, showStart bool) error {
	a := alloc.New(alloc.WithLogger(newLogger()), alloc.WithValidation(runValidate))
	defer a.Close()

	opts := printer.DefaultOptions()
	opts.ShowOffsets = runOffsets

	out := w
	if jsonOut || quiet {
		out = nil
	}

	if showStart && out != nil {
		if err := printer.New(a, out, opts).Print(); err != nil {
			return err
		}
	}

	printVerbose("Running %d operations\n", len(ops))
	r := newRunner(a, opts, runCheck)
	if err := r.run(ops, out); err != nil {
		return err
	}

	if jsonOut {
		doc := struct {
			Steps []step       `json:"steps"`
			Stats *runStatsDoc `json:"stats,omitempty"`
		}{Steps: r.steps}
		if runStats {
			s := newRunStatsDoc(a.Stats())
			doc.Stats = &s
		}
		return printJSON(w, doc)
	}

	if runStats && !quiet {
		printStats(w, a.Stats())
	}
	return nil
}
