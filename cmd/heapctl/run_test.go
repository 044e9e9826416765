package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// resetFlags restores global flag state after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		verbose, quiet, jsonOut = false, false, false
		runFile, runOffsets, runStats, runCheck, runValidate = "", false, false, false, false
		exploreFile, exploreDemo = "", ""
	})
}

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestDemoCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "demo 1",
			args: []string{"demo", "1"},
			want: []string{
				"[empty]",
				"[512,used] -> [480,free]",
				"[512,free] -> [480,free]",
			},
		},
		{
			name: "default demo",
			args: []string{"demo"},
			want: []string{
				"[empty]",
				"[16,used] -> [976,free]",
				"[16,used] -> [32,used] -> [928,free]",
				"[16,used] -> [32,used] -> [32,used] -> [880,free]",
				"[16,used] -> [32,used] -> [32,used] -> [48,used] -> [816,free]",
				"[16,used] -> [32,used] -> [32,used] -> [48,used] -> [64,used] -> [736,free]",
			},
		},
		{
			name: "demo 3",
			args: []string{"demo", "3"},
			want: []string{
				"[empty]",
				"[16,used] -> [976,free]",
				"[16,used] -> [32,used] -> [928,free]",
				"[16,used] -> [32,used] -> [32,used] -> [880,free]",
				"[16,used] -> [32,free] -> [32,used] -> [880,free]",
				"[16,used] -> [32,free] -> [32,used] -> [48,used] -> [816,free]",
				"[16,used] -> [32,used] -> [32,used] -> [48,used] -> [816,free]",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, lines(out))
		})
	}
}

func TestDemoCommand_Unknown(t *testing.T) {
	_, err := executeCommand(t, "demo", "9")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown demo")
}

func TestDemoCommand_QuietSkipsStart(t *testing.T) {
	out, err := executeCommand(t, "demo", "1", "-q")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRunCommand_ReportsFailures(t *testing.T) {
	out, err := executeCommand(t, "run", "alloc", "2000", "alloc", "10", "free", "1", "--check")
	require.NoError(t, err)
	require.Equal(t, []string{
		"alloc 2000: alloc: no free block large enough: need 2000",
		"[1008,free]",
		"[16,used] -> [976,free]",
		"free 1: allocation failed, nothing to free",
		"[16,used] -> [976,free]",
	}, lines(out))
}

func TestRunCommand_Offsets(t *testing.T) {
	out, err := executeCommand(t, "run", "a", "10", "--offsets")
	require.NoError(t, err)
	require.Equal(t, "[0x0000:16,used] -> [0x0020:976,free]\n", out)
}

func TestRunCommand_Validate(t *testing.T) {
	out, err := executeCommand(t, "run", "alloc", "10", "free", "1", "free", "1", "--validate")
	require.NoError(t, err)
	require.Contains(t, out, "free 1: free 0x0010: alloc: block not in use")
}

func TestRunCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("alloc 10 # first\nalloc 20\nfree 1\n"), 0o644))

	out, err := executeCommand(t, "run", "--file", path)
	require.NoError(t, err)
	require.Equal(t, "[16,free] -> [32,used] -> [928,free]", lines(out)[2])
}

func TestRunCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "run", "--file", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open script")
}

func TestRunCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "run", "alloc", "10", "alloc", "5000", "--json", "--stats")
	require.NoError(t, err)

	var doc struct {
		Steps []step       `json:"steps"`
		Stats *runStatsDoc `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Steps, 2)
	require.Equal(t, step{Op: "alloc 10", Ref: 16, State: "[16,used] -> [976,free]"}, doc.Steps[0])
	require.Contains(t, doc.Steps[1].Error, "no free block")
	require.NotNil(t, doc.Stats)
	require.Equal(t, 2, doc.Stats.AllocCalls)
	require.Equal(t, 1, doc.Stats.AllocFailures)
	require.Equal(t, 976, doc.Stats.LargestFree)
}

func TestRunCommand_Stats(t *testing.T) {
	out, err := executeCommand(t, "run", "alloc", "10", "alloc", "20", "free", "1", "--stats")
	require.NoError(t, err)
	require.Contains(t, out, "Allocator Statistics")
	require.Contains(t, out, "Blocks:         3 (1 used, 2 free)")
	require.Contains(t, out, "Free bytes:     944 (largest 928)")
}

func TestRunCommand_Quiet(t *testing.T) {
	out, err := executeCommand(t, "run", "alloc", "10", "-q")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "heapctl dev")
}
