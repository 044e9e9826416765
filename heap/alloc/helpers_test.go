package alloc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

// errMapFailed stands in for an mmap error such as ENOMEM.
var errMapFailed = errors.New("cannot allocate memory")

// mapperStub is a Mapper backed by Go slices that can fail on demand.
type mapperStub struct {
	calls       int
	failures    int  // number of leading calls that fail
	failRelease bool // failed calls still return a release func
	short       bool
	released    int
}

func (m *mapperStub) Map(size int) ([]byte, func() error, error) {
	m.calls++
	if m.calls <= m.failures {
		if m.failRelease {
			return nil, m.release, errMapFailed
		}
		return nil, nil, errMapFailed
	}
	n := size
	if m.short {
		n = size / 2
	}
	return make([]byte, n), m.release, nil
}

func (m *mapperStub) release() error {
	m.released++
	return nil
}

// quietLogger discards all output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bufferLogger records output in buf at debug level.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newTestArena returns an Arena on Go memory with logging discarded.
func newTestArena(t testing.TB, opts ...Option) (*Arena, *mapperStub) {
	t.Helper()
	stub := &mapperStub{}
	all := append([]Option{WithMapper(stub.Map), WithLogger(quietLogger())}, opts...)
	a := New(all...)
	t.Cleanup(func() { _ = a.Close() })
	return a, stub
}

// shape renders the chain as "size,state" tokens.
func shape(a *Arena) []string {
	var out []string
	a.Walk(func(b Block) bool {
		out = append(out, fmt.Sprintf("%d,%s", b.Size, b.State()))
		return true
	})
	return out
}

// mustAlloc allocates size bytes and fails the test on error.
func mustAlloc(t testing.TB, a *Arena, size int) (Ref, []byte) {
	t.Helper()
	ref, buf, err := a.Alloc(size)
	require.NoError(t, err, "Alloc(%d)", size)
	require.NotZero(t, ref, "Alloc(%d) returned zero ref", size)
	return ref, buf
}

// assertInvariants checks the chain structure and exact arena coverage.
func assertInvariants(t testing.TB, a *Arena) {
	t.Helper()
	if !a.Initialized() {
		return
	}
	require.NoError(t, verify.AllInvariants(a.Bytes()))

	total := 0
	a.Walk(func(b Block) bool {
		require.True(t, format.IsAligned(b.Size), "block at %d has unaligned size %d", b.Offset, b.Size)
		total += format.PaddedHeaderSize + b.Size
		return true
	})
	require.Equal(t, format.ArenaSize, total, "chain must cover the arena exactly")
}
