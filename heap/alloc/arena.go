package alloc

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/internal/format"
)

// Arena is a first-fit allocator over one fixed-size region.
// The region is acquired lazily by the first Alloc and kept until Close.
type Arena struct {
	data    []byte       // nil until acquired
	release func() error // returned by the mapper
	closed  bool

	mapper   Mapper
	log      *slog.Logger
	validate bool

	stats counters
}

// counters holds the cumulative operation counts reported by Stats.
type counters struct {
	Acquisitions    int
	AcquireFailures int
	AllocCalls      int
	AllocFailures   int
	FreeCalls       int
	Splits          int
}

// New returns an Arena. No memory is acquired until the first Alloc.
func New(opts ...Option) *Arena {
	a := &Arena{
		mapper: defaultMapper(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialized reports whether the arena has been acquired.
func (a *Arena) Initialized() bool { return a.data != nil }

// Capacity returns the fixed size of the arena in bytes.
func (a *Arena) Capacity() int { return format.ArenaSize }

// Bytes returns the raw arena, or nil before the first Alloc. Callers must
// treat it as read-only; it is exposed for diagnostics and verification.
func (a *Arena) Bytes() []byte { return a.data }

// Close releases the arena's memory. It is idempotent. Any slice returned by
// Alloc must not be used afterwards.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	release := a.release
	a.data = nil
	a.release = nil
	if release != nil {
		return release()
	}
	return nil
}

// ensureArena acquires the arena on first use and lays down the single free
// block that spans it. A failed acquisition leaves the arena uninitialized so
// that the next call retries.
func (a *Arena) ensureArena() error {
	if a.data != nil {
		return nil
	}

	data, release, err := a.mapper(format.ArenaSize)
	if err == nil && len(data) < format.ArenaSize {
		err = fmt.Errorf("mapped %d bytes, need %d", len(data), format.ArenaSize)
	}
	if err != nil {
		// Mappers may hand back partial resources alongside an error.
		if release != nil {
			_ = release()
		}
		a.stats.AcquireFailures++
		a.log.Error("arena acquisition failed", "size", format.ArenaSize, "error", err)
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}

	data = data[:format.ArenaSize:format.ArenaSize]
	head := format.Header{
		Offset: 0,
		Size:   format.MaxUsable,
		Next:   format.NoNext,
	}
	if err := format.WriteHeader(data, head); err != nil {
		if release != nil {
			_ = release()
		}
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}

	a.data = data
	a.release = release
	a.stats.Acquisitions++
	a.log.Debug("arena acquired", "size", format.ArenaSize, "usable", head.Size)
	return nil
}
