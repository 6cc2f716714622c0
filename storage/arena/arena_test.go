package arena

import (
	"testing"

	"github.com/joshuapare/strkit/internal/mmap"
	"github.com/joshuapare/strkit/storage"
	"github.com/joshuapare/strkit/storage/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type source struct {
	p storage.Processor
	h storage.Handle
	n int
}

func (s source) Processor() storage.Processor { return s.p }
func (s source) Handle() storage.Handle       { return s.h }
func (s source) Len() int                     { return s.n }
func (s source) UnitAt(i int) uint16          { return s.p.Read(s.h, i) }

func newArena(t *testing.T) *Processor {
	t.Helper()
	p, err := New(0)
	require.NoError(t, err)
	return p
}

// TestArena_SimpleAlloc tests basic bump allocation.
func TestArena_SimpleAlloc(t *testing.T) {
	p := newArena(t)

	h, err := p.AllocateFrom([]uint16{'a', 'b', 'c'})
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.SizeOf(h), "3 units = 6 bytes, aligned to 8")
	assert.Equal(t, uint16('b'), p.Read(h, 1))

	st := p.Stats()
	assert.Equal(t, 1, st.Chunks)
	assert.Equal(t, int64(1), st.LiveSlots)
	assert.Equal(t, int64(DefaultChunkSize), st.MappedBytes)
}

// TestArena_MultipleAllocs tests that sequential slots are contiguous and aligned.
func TestArena_MultipleAllocs(t *testing.T) {
	p := newArena(t)

	var prev storage.Handle
	for i := range 10 {
		h, err := p.Allocate(i + 1)
		require.NoError(t, err, "Allocate %d should succeed", i)
		assert.Zero(t, h.ID%slotAlign, "slot must be 8-byte aligned")
		if i > 0 {
			assert.Equal(t, prev.ID+uint64(prev.Size), h.ID, "slots should be bumped contiguously")
		}
		prev = h
	}
	assert.Equal(t, 1, p.Stats().Chunks)
}

// TestArena_Grow tests that a full chunk triggers a new mapping.
func TestArena_Grow(t *testing.T) {
	ps := mmap.PageSize()
	p, err := New(ps)
	require.NoError(t, err)

	a, err := p.Allocate(ps / 2) // fills the whole chunk
	require.NoError(t, err)
	b, err := p.Allocate(1)
	require.NoError(t, err)

	assert.NotSame(t, a.Base, b.Base)
	assert.Equal(t, 2, p.Stats().Chunks)

	// Releasing the only slot of a retired chunk unmaps it.
	require.NoError(t, p.Release(a))
	assert.Equal(t, 1, p.Stats().Chunks)
	require.NoError(t, p.Release(b))
	assert.Equal(t, 1, p.Stats().Chunks, "current chunk is rewound, not unmapped")
}

// TestArena_RewindCurrent tests reuse of the current chunk once it empties.
func TestArena_RewindCurrent(t *testing.T) {
	p := newArena(t)
	a, err := p.AllocateFrom([]uint16{1, 2, 3, 4})
	require.NoError(t, err)
	require.NoError(t, p.Release(a))

	b, err := p.Allocate(4)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID, "empty current chunk should be rewound")
	for i := range 4 {
		assert.Zero(t, p.Read(b, i), "reused slot must be cleared")
	}
}

// TestArena_LargeDedicatedChunk tests requests larger than the chunk size.
func TestArena_LargeDedicatedChunk(t *testing.T) {
	ps := mmap.PageSize()
	p, err := New(ps)
	require.NoError(t, err)

	small, err := p.Allocate(1)
	require.NoError(t, err)
	big, err := p.Allocate(ps) // 2*ps bytes
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stats().Chunks)

	next, err := p.Allocate(1)
	require.NoError(t, err)
	assert.Same(t, small.Base, next.Base, "current chunk keeps serving small requests")

	require.NoError(t, p.Release(big))
	assert.Equal(t, 1, p.Stats().Chunks)
}

func TestArena_CloneAndCompare(t *testing.T) {
	p := newArena(t)
	a, err := p.AllocateFrom([]uint16{'s', 'a', 'm', 'e'})
	require.NoError(t, err)

	b, err := p.Clone(source{p: p, h: a, n: 4})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, p.EqualRange(a, b, 4))

	hp := heap.New()
	hh, err := hp.AllocateFrom([]uint16{'s', 'a', 'm', 'x'})
	require.NoError(t, err)
	c, err := p.Clone(source{p: hp, h: hh, n: 4})
	require.NoError(t, err)
	assert.True(t, p.EqualRange(a, c, 3))
	assert.False(t, p.EqualRange(a, c, 4))
}

func TestArena_ReleaseBadHandle(t *testing.T) {
	p := newArena(t)
	require.ErrorIs(t, p.Release(storage.Invalid), storage.ErrBadHandle)

	other := newArena(t)
	h, err := other.Allocate(1)
	require.NoError(t, err)
	require.ErrorIs(t, p.Release(h), storage.ErrBadHandle, "handle from another arena")
}

func TestArena_BadChunkSize(t *testing.T) {
	_, err := New(mmap.PageSize() + 1)
	require.ErrorIs(t, err, ErrChunkSize)
	_, err = New(-mmap.PageSize())
	require.ErrorIs(t, err, ErrChunkSize)
}
