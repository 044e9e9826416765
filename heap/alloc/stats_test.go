package alloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAfterScenario(t *testing.T) {
	a, _ := newTestArena(t)
	assert.Equal(t, Stats{}, a.Stats())

	mustAlloc(t, a, 10)
	p, _ := mustAlloc(t, a, 20)
	mustAlloc(t, a, 30)
	require.NoError(t, a.Free(p))
	mustAlloc(t, a, 40)
	_, _, err := a.Alloc(5000)
	require.Error(t, err)

	s := a.Stats()
	assert.Equal(t, 1, s.Acquisitions)
	assert.Equal(t, 5, s.AllocCalls)
	assert.Equal(t, 1, s.AllocFailures)
	assert.Equal(t, 1, s.FreeCalls)
	assert.Equal(t, 4, s.Splits)

	assert.Equal(t, 5, s.Blocks)
	assert.Equal(t, 3, s.UsedBlocks)
	assert.Equal(t, 2, s.FreeBlocks)
	assert.Equal(t, 16+32+48, s.UsedBytes)
	assert.Equal(t, 32+816, s.FreeBytes)
	assert.Equal(t, 5*16, s.HeaderBytes)
	assert.Equal(t, 816, s.LargestFree)
	assert.Equal(t, a.Capacity(), s.UsedBytes+s.FreeBytes+s.HeaderBytes)
}

func TestFragmentationBounds(t *testing.T) {
	assert.Zero(t, Stats{}.Fragmentation())
	assert.Zero(t, Stats{FreeBytes: 100, LargestFree: 100}.Fragmentation())
	assert.InDelta(t, 0.5, Stats{FreeBytes: 100, LargestFree: 50}.Fragmentation(), 1e-9)
}

func TestDebugLogging(t *testing.T) {
	var logs bytes.Buffer
	stub := &mapperStub{}
	a := New(WithMapper(stub.Map), WithLogger(bufferLogger(&logs)))
	defer a.Close()

	ref, _ := mustAlloc(t, a, 10)
	require.NoError(t, a.Free(ref))

	out := logs.String()
	assert.Contains(t, out, "arena acquired")
	assert.Contains(t, out, "msg=alloc")
	assert.Contains(t, out, "split=true")
	assert.Contains(t, out, "msg=free")
	assert.Contains(t, out, "ref=0x0010")
}
