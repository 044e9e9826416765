package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/printer"
)

var (
	batchJobs  int
	batchCheck bool
)

func init() {
	cmd := newBatchCmd()
	cmd.Flags().IntVarP(&batchJobs, "jobs", "j", runtime.NumCPU(), "Maximum number of scripts run at once")
	cmd.Flags().BoolVar(&batchCheck, "check", false, "Verify chain invariants after every step")
	rootCmd.AddCommand(cmd)
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <script>...",
		Short: "Run several script files, each on its own arena",
		Long: `The batch command runs every script file on an independent arena. Scripts
run concurrently; results are printed in argument order once all have
finished. A script that fails to load, parse or verify aborts the batch.

Example:
  heapctl batch scripts/*.txt
  heapctl batch -j 2 --check a.txt b.txt --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

// batchResult is the outcome of one script in a batch.
type batchResult struct {
	Script string      `json:"script"`
	Steps  []step      `json:"steps"`
	Failed int         `json:"failed"`
	Stats  runStatsDoc `json:"stats"`
}

func runBatch(ctx context.Context, w io.Writer, paths []string) error {
	results := make([]batchResult, len(paths))
	log := newLogger()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, batchJobs))

	printVerbose("Running %d scripts\n", len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if path == "-" {
				return errors.New("batch: stdin is not supported, pass script files")
			}
			tokens, err := loadScript(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			ops, err := parseScript(tokens)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			a := alloc.New(alloc.WithLogger(log.With("script", path)))
			defer a.Close()

			r := newRunner(a, printer.DefaultOptions(), batchCheck)
			if err := r.run(ops, nil); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = batchResult{
				Script: path,
				Steps:  r.steps,
				Failed: r.failed,
				Stats:  newRunStatsDoc(a.Stats()),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(w, results)
	}
	if quiet {
		return nil
	}
	for _, res := range results {
		fmt.Fprintf(w, "== %s ==\n", res.Script)
		for _, s := range res.Steps {
			if s.Error != "" {
				fmt.Fprintf(w, "%s: %s\n", s.Op, s.Error)
			}
			fmt.Fprintln(w, s.State)
		}
		fmt.Fprintf(w, "%d ops, %d failed, %d bytes free (largest %d)\n\n",
			len(res.Steps), res.Failed, res.Stats.FreeBytes, res.Stats.LargestFree)
	}
	return nil
}
