package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// buildArena lays out blocks with the given usable sizes back to back.
func buildArena(t *testing.T, sizes ...int) []byte {
	t.Helper()
	data := make([]byte, format.ArenaSize)
	off := 0
	for i, size := range sizes {
		next := int64(off + format.PaddedHeaderSize + size)
		if i == len(sizes)-1 {
			next = format.NoNext
		}
		require.NoError(t, format.WriteHeader(data, format.Header{Offset: off, Size: size, Next: next}))
		off += format.PaddedHeaderSize + size
	}
	return data
}

func requireValidationError(t *testing.T, err error, typ, contains string) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
	require.Equal(t, typ, ve.Type)
	require.Contains(t, err.Error(), contains)
}

// TestAllInvariants_Valid tests valid layouts.
func TestAllInvariants_Valid(t *testing.T) {
	require.NoError(t, AllInvariants(buildArena(t, 1008)))
	require.NoError(t, AllInvariants(buildArena(t, 16, 976)))
	require.NoError(t, AllInvariants(buildArena(t, 16, 32, 32, 48, 816)))
	require.NoError(t, AllInvariants(buildArena(t, 0, 992)))
}

// TestSize_Mismatch tests detection of wrong image length.
func TestSize_Mismatch(t *testing.T) {
	requireValidationError(t, Size(make([]byte, 512)), "Size", "expected 1024")
	requireValidationError(t, AllInvariants(nil), "Size", "arena is 0 bytes")
}

// TestChain_TooSmall tests images that cannot hold a header.
func TestChain_TooSmall(t *testing.T) {
	requireValidationError(t, Chain(make([]byte, 4)), "Chain", "too small")
}

// TestChain_UnalignedSize tests detection of an unaligned usable size.
func TestChain_UnalignedSize(t *testing.T) {
	data := buildArena(t, 16, 976)
	buf.PutI32LE(data[format.HeaderSizeOffset:], 20)

	err := Chain(data)
	requireValidationError(t, err, "Chain", "not 16-byte aligned")
	require.Equal(t, 0, err.(*ValidationError).Offset)
}

// TestChain_NegativeSize tests detection of a negative usable size.
func TestChain_NegativeSize(t *testing.T) {
	data := buildArena(t, 16, 976)
	buf.PutI32LE(data[32+format.HeaderSizeOffset:], -16)
	requireValidationError(t, Chain(data), "Chain", "negative")
}

// TestChain_NextMismatch tests detection of a link that skips memory.
func TestChain_NextMismatch(t *testing.T) {
	data := buildArena(t, 16, 32, 928)
	buf.PutI64LE(data[format.HeaderNextOffset:], 80)
	requireValidationError(t, Chain(data), "Chain", "does not follow block end")
}

// TestChain_ShortCoverage tests detection of a chain that ends early.
func TestChain_ShortCoverage(t *testing.T) {
	data := buildArena(t, 16, 976)
	buf.PutI64LE(data[32+format.HeaderNextOffset:], format.NoNext)
	buf.PutI32LE(data[32+format.HeaderSizeOffset:], 960)
	requireValidationError(t, Chain(data), "Chain", "uncovered")
}

// TestChain_Overrun tests detection of a block running past the arena.
func TestChain_Overrun(t *testing.T) {
	data := buildArena(t, 1008)
	buf.PutI32LE(data[format.HeaderSizeOffset:], 1024)
	requireValidationError(t, Chain(data), "Chain", "beyond arena")
}

// TestMagic_Mismatch tests detection of an overwritten magic tag.
func TestMagic_Mismatch(t *testing.T) {
	data := buildArena(t, 16, 976)
	buf.PutU16LE(data[32+format.HeaderMagicOffset:], 0)

	require.NoError(t, Chain(data))
	err := Magic(data)
	requireValidationError(t, err, "Magic", "expected 0xB10C")
	require.Equal(t, 32, err.(*ValidationError).Offset)
}

// TestValidationError_NoOffset tests formatting without an offset.
func TestValidationError_NoOffset(t *testing.T) {
	err := &ValidationError{Type: "Chain", Message: "boom", Offset: -1}
	require.Equal(t, "Chain: boom", err.Error())
	err.Offset = 0x20
	require.Equal(t, "Chain at offset 0x20: boom", err.Error())
}
