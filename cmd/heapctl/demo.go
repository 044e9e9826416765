package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// demos are the reference allocation sequences.
var demos = map[string][]string{
	// Allocate half the arena and give it back.
	"1": strings.Fields("alloc 512 free 1"),
	// Increasing sizes, every allocation splits the tail.
	"2": strings.Fields("alloc 10 alloc 20 alloc 30 alloc 40 alloc 50"),
	// A freed block in the middle stays fragmented.
	"3": strings.Fields("alloc 10 alloc 20 alloc 30 free 2 alloc 40 alloc 10"),
}

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [1|2|3]",
		Short: "Run one of the built-in example sequences",
		Long: `The demo command runs a built-in script and prints the block chain after
every step, starting from the empty arena. Without an argument demo 2 runs.

  1  alloc 512, free it
  2  alloc 10, 20, 30, 40, 50
  3  alloc 10, 20, 30, free the second, alloc 40, 10`,
		Args: cobra.MaximumNArgs(1),
		ValidArgs: func() []string {
			keys := make([]string, 0, len(demos))
			for k := range demos {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			return keys
		}(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "2"
			if len(args) == 1 {
				name = args[0]
			}
			tokens, ok := demos[name]
			if !ok {
				return fmt.Errorf("unknown demo %q (want 1, 2 or 3)", name)
			}
			ops, err := parseScript(tokens)
			if err != nil {
				return err
			}
			printVerbose("Demo %s: %s\n", name, strings.Join(tokens, " "))
			return runScript(cmd.OutOrStdout(), ops, true)
		},
	}
}
