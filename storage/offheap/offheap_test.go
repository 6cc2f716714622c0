package offheap

import (
	"testing"

	"github.com/joshuapare/strkit/internal/mmap"
	"github.com/joshuapare/strkit/storage"
	"github.com/joshuapare/strkit/storage/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// source adapts a handle on some processor to storage.Source.
type source struct {
	p storage.Processor
	h storage.Handle
	n int
}

func (s source) Processor() storage.Processor { return s.p }
func (s source) Handle() storage.Handle       { return s.h }
func (s source) Len() int                     { return s.n }
func (s source) UnitAt(i int) uint16          { return s.p.Read(s.h, i) }

func TestAllocateRoundsToPage(t *testing.T) {
	p := New()
	h, err := p.Allocate(5)
	require.NoError(t, err)
	defer func() { require.NoError(t, p.Release(h)) }()

	assert.Equal(t, int64(mmap.PageSize()), p.SizeOf(h), "size is allocator granularity, not 2*length")
	assert.NotEqual(t, storage.InvalidID, h.ID)
	assert.Nil(t, h.Base)
}

func TestReadWriteCopy(t *testing.T) {
	p := New()
	h, err := p.AllocateFrom([]uint16{'H', 'e', 'l', 'l', 'o'})
	require.NoError(t, err)
	defer p.Release(h)

	assert.Equal(t, uint16('H'), p.Read(h, 0))
	assert.Equal(t, uint16('o'), p.Read(h, 4))

	p.Write(h, 0, 'J')
	assert.Equal(t, uint16('J'), p.Read(h, 0))

	dst := make([]uint16, 3)
	p.Copy(h, 1, dst)
	assert.Equal(t, []uint16{'e', 'l', 'l'}, dst)
}

func TestZeroLength(t *testing.T) {
	p := New()
	h, err := p.AllocateFrom(nil)
	require.NoError(t, err)
	assert.Zero(t, p.SizeOf(h))
	assert.True(t, p.EqualRange(h, h, 0))
	require.NoError(t, p.Release(h))
	assert.Zero(t, p.Stats().Live)
}

func TestCloneSameProcessorCopiesMemory(t *testing.T) {
	p := New()
	a, err := p.AllocateFrom([]uint16{'a', 'b', 'c'})
	require.NoError(t, err)
	defer p.Release(a)

	b, err := p.Clone(source{p: p, h: a, n: 3})
	require.NoError(t, err)
	defer p.Release(b)

	assert.NotEqual(t, a.ID, b.ID, "clone must own distinct storage")
	assert.True(t, p.EqualRange(a, b, 3))
}

func TestCloneForeignProcessor(t *testing.T) {
	hp := heap.New()
	src, err := hp.AllocateFrom([]uint16{'x', 0xD83D, 0xDE00})
	require.NoError(t, err)

	p := New()
	h, err := p.Clone(source{p: hp, h: src, n: 3})
	require.NoError(t, err)
	defer p.Release(h)

	dst := make([]uint16, 3)
	p.Copy(h, 0, dst)
	assert.Equal(t, []uint16{'x', 0xD83D, 0xDE00}, dst)
}

func TestEqualRange(t *testing.T) {
	p := New()
	a, _ := p.AllocateFrom([]uint16{'k', 'e', 'y', '1'})
	b, _ := p.AllocateFrom([]uint16{'k', 'e', 'y', '2'})
	defer p.Release(a)
	defer p.Release(b)

	assert.True(t, p.EqualRange(a, b, 3))
	assert.False(t, p.EqualRange(a, b, 4))
}

func TestStats(t *testing.T) {
	p := New()
	h1, _ := p.Allocate(10)
	h2, _ := p.Allocate(10)

	st := p.Stats()
	assert.Equal(t, int64(2), st.Live)
	assert.Equal(t, int64(2), st.TotalAlloc)
	assert.Equal(t, h1.Size+h2.Size, st.LiveBytes)

	require.NoError(t, p.Release(h1))
	require.NoError(t, p.Release(h2))
	st = p.Stats()
	assert.Zero(t, st.Live)
	assert.Zero(t, st.LiveBytes)
	assert.Equal(t, int64(2), st.TotalAlloc)
}

func TestReleaseInvalid(t *testing.T) {
	p := New()
	require.ErrorIs(t, p.Release(storage.Invalid), storage.ErrBadHandle)
}

func TestAllocateNegative(t *testing.T) {
	p := New()
	_, err := p.Allocate(-1)
	require.ErrorIs(t, err, storage.ErrTooLarge)
}

func TestLargeAllocation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large mapping in short mode")
	}
	p := New()
	const n = 1 << 20
	h, err := p.Allocate(n)
	require.NoError(t, err)
	defer p.Release(h)

	p.Write(h, n-1, 0xFFFF)
	assert.Equal(t, uint16(0xFFFF), p.Read(h, n-1))
	assert.GreaterOrEqual(t, p.SizeOf(h), int64(2*n))
}
