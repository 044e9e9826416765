package alloc

import (
	"log/slog"

	"github.com/joshuapare/heapkit/internal/mmap"
)

// Mapper acquires size bytes of zeroed read/write memory and returns it with
// a function that releases it.
type Mapper func(size int) ([]byte, func() error, error)

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the logger used for diagnostics. Acquisition failures are
// logged at error level; allocation decisions at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.log = l
		}
	}
}

// WithMapper replaces the function used to acquire the arena.
// The default is an anonymous private memory mapping.
func WithMapper(m Mapper) Option {
	return func(a *Arena) {
		if m != nil {
			a.mapper = m
		}
	}
}

// WithValidation makes Free reject references that do not name a live block
// on the chain. Without it Free only checks that the header is addressable.
func WithValidation(enabled bool) Option {
	return func(a *Arena) {
		a.validate = enabled
	}
}

func defaultMapper() Mapper { return mmap.MapAnon }
