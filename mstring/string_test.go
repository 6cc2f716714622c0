package mstring_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/strkit/internal/testutil"
	"github.com/joshuapare/strkit/mstring"
	"github.com/joshuapare/strkit/storage"
	"github.com/joshuapare/strkit/storage/heap"
	"github.com/joshuapare/strkit/storage/offheap"
)

func TestHelloOffHeap(t *testing.T) {
	p := testutil.NewCountingProcessor(offheap.New())
	f := mstring.NewFactory(p)

	s, err := f.FromUnits(mstring.CharsOf("Hello"), 0, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Len())
	c, err := s.CharAt(0)
	require.NoError(t, err)
	assert.Equal(t, uint16('H'), c)
	assert.Equal(t, mstring.CharsOf("Hello").HashCode(), s.HashCode())
	assert.Equal(t, int32(69609650), s.HashCode())
	assert.Equal(t, "Hello", s.String())

	require.NoError(t, s.Release())
	require.NoError(t, s.Release())
	assert.True(t, s.Released())
	assert.Equal(t, int64(1), p.Counts().Releases)
	assert.Equal(t, storage.InvalidSize, s.StorageSize())
}

func TestFromUnitsBounds(t *testing.T) {
	f := newFactory(t, nil)
	v := mstring.CharsOf("abcde")

	tests := []struct {
		name          string
		offset, count int
		value         int
	}{
		{"negative offset", -1, 2, -1},
		{"negative count", 1, -2, -2},
		{"past end", 3, 4, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.FromUnits(v, tt.offset, tt.count)
			requireBounds(t, err, tt.value)
		})
	}

	s, err := f.FromUnits(v, 1, 3)
	require.NoError(t, err)
	defer s.Release()
	assert.Equal(t, "bcd", s.String())
}

func TestFromBytesHibyte(t *testing.T) {
	f := newFactory(t, nil)
	b := []byte("abc")

	s, err := f.FromBytesHibyte(b, 0, 0, 3)
	require.NoError(t, err)
	defer s.Release()
	assert.Equal(t, "abc", s.String())

	s2, err := f.FromBytesHibyte(b, 0x01, 1, 2)
	require.NoError(t, err)
	defer s2.Release()
	assert.Equal(t, []uint16{0x0162, 0x0163}, []uint16(s2.ToChars()))

	// count is checked before offset
	_, err = f.FromBytesHibyte(b, 0, -5, -1)
	requireBounds(t, err, -1)
	_, err = f.FromBytesHibyte(b, 0, -5, 1)
	requireBounds(t, err, -5)
	_, err = f.FromBytesHibyte(b, 0, 2, 2)
	requireBounds(t, err, 4)
}

func TestFactoryGate(t *testing.T) {
	active := false
	f := mstring.NewFactory(heap.New(), mstring.WithGate(func() bool { return active }))

	_, err := f.FromString("x")
	require.ErrorIs(t, err, mstring.ErrNotActive)
	_, err = f.FromUnits(nil, 0, 0)
	require.ErrorIs(t, err, mstring.ErrNotActive)
	_, err = f.FromText(mstring.CharsOf("x"))
	require.ErrorIs(t, err, mstring.ErrNotActive)

	active = true
	s, err := f.FromString("x")
	require.NoError(t, err)
	require.NoError(t, s.Release())
}

func TestFromTextAcrossBackends(t *testing.T) {
	src := mustString(t, newFactory(t, heap.New()), "cross backend")
	h := src.HashCode()

	p := testutil.NewCountingProcessor(offheap.New())
	dst, err := mstring.NewFactory(p).FromText(src)
	require.NoError(t, err)
	defer dst.Release()

	assert.True(t, dst.Equals(src))
	assert.Equal(t, int64(1), p.Counts().Clones)

	reads := p.Counts().Reads
	assert.Equal(t, h, dst.HashCode())
	assert.Equal(t, reads, p.Counts().Reads, "cached hash is copied")

	fromChars, err := mstring.NewFactory(p).FromText(mstring.CharsOf("plain"))
	require.NoError(t, err)
	defer fromChars.Release()
	assert.Equal(t, "plain", fromChars.String())

	_, err = mstring.NewFactory(p).FromText(nil)
	require.ErrorIs(t, err, mstring.ErrNullArgument)
}

func TestFromTextSameProcessor(t *testing.T) {
	p := testutil.NewCountingProcessor(offheap.New())
	f := mstring.NewFactory(p)
	src := mustString(t, f, "same backend")

	reads := p.Counts().Reads
	dst, err := f.FromText(src)
	require.NoError(t, err)
	defer dst.Release()

	assert.Equal(t, reads, p.Counts().Reads, "storage copied without element reads")
	assert.Equal(t, "same backend", dst.String())
	assert.NotEqual(t, src.Handle().ID, dst.Handle().ID)
}

func TestCodePoints(t *testing.T) {
	f := newFactory(t, nil)
	s := mustString(t, f, "a\U0001F600b") // a, D83D, DE00, b

	cp, err := s.CodePointAt(1)
	require.NoError(t, err)
	assert.Equal(t, rune(0x1F600), cp)
	cp, err = s.CodePointAt(2)
	require.NoError(t, err)
	assert.Equal(t, rune(0xDE00), cp, "lone low surrogate")
	_, err = s.CodePointAt(4)
	requireBounds(t, err, 4)

	cp, err = s.CodePointBefore(3)
	require.NoError(t, err)
	assert.Equal(t, rune(0x1F600), cp)
	cp, err = s.CodePointBefore(2)
	require.NoError(t, err)
	assert.Equal(t, rune(0xD83D), cp)
	_, err = s.CodePointBefore(0)
	requireBounds(t, err, 0)
	_, err = s.CodePointBefore(5)
	requireBounds(t, err, 5)

	n, err := s.CodePointCount(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = s.CodePointCount(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "pair cut by end counts as two")
	_, err = s.CodePointCount(-1, 2)
	requireBounds(t, err, -1)
	_, err = s.CodePointCount(0, 5)
	requireBounds(t, err, 5)
	_, err = s.CodePointCount(3, 1)
	requireBounds(t, err, -2)

	x, err := s.OffsetByCodePoints(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, x)
	x, err = s.OffsetByCodePoints(4, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, x)
	x, err = s.OffsetByCodePoints(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, x)
	_, err = s.OffsetByCodePoints(0, 4)
	requireBounds(t, err, 4)
	_, err = s.OffsetByCodePoints(4, -4)
	requireBounds(t, err, -4)
	_, err = s.OffsetByCodePoints(5, 0)
	requireBounds(t, err, 5)
}

func TestGetCharsAndBytes(t *testing.T) {
	s := mustString(t, newFactory(t, nil), "Hello")

	dst := make([]uint16, 5)
	require.NoError(t, s.GetChars(1, 3, dst, 2))
	assert.Equal(t, []uint16{0, 0, 'e', 'l', 0}, dst)

	requireBounds(t, s.GetChars(-1, 3, dst, 0), -1)
	requireBounds(t, s.GetChars(0, 9, dst, 0), 9)
	requireBounds(t, s.GetChars(3, 1, dst, 0), -2)
	requireBounds(t, s.GetChars(0, 3, dst, 3), 3)

	b := make([]byte, 3)
	require.NoError(t, s.GetBytesRange(2, 5, b, 0))
	assert.Equal(t, []byte("llo"), b)
	requireBounds(t, s.GetBytesRange(0, 6, b, 0), 6)

	c, err := s.CharAt(5)
	requireBounds(t, err, 5)
	assert.Zero(t, c)
}

func TestIterators(t *testing.T) {
	s := mustString(t, newFactory(t, nil), "a\U0001F600b")

	var units []uint16
	for i, u := range s.Units() {
		assert.Equal(t, len(units), i)
		units = append(units, u)
	}
	assert.Equal(t, []uint16{'a', 0xD83D, 0xDE00, 'b'}, units)

	type pos struct {
		i  int
		cp rune
	}
	var got []pos
	for i, cp := range s.CodePoints() {
		got = append(got, pos{i, cp})
	}
	assert.Equal(t, []pos{{0, 'a'}, {1, 0x1F600}, {3, 'b'}}, got)

	for i := range s.CodePoints() {
		if i > 0 {
			break
		}
	}
}

func TestStorageAccess(t *testing.T) {
	p := offheap.New()
	s := mustString(t, newFactory(t, p), "Hello")

	assert.Same(t, p, s.Processor())
	assert.True(t, s.Handle().Valid())
	assert.GreaterOrEqual(t, s.StorageSize(), int64(10))
	assert.False(t, s.IsEmpty())

	empty := mustString(t, newFactory(t, p), "")
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.String())
	assert.Equal(t, int32(0), empty.HashCode())
}

func TestErrorKinds(t *testing.T) {
	_, err := newFactory(t, nil).FromUnits(nil, 0, 1)
	require.Error(t, err)
	assert.Equal(t, "mstring: index out of range: 1", err.Error())
	assert.False(t, errors.Is(err, mstring.ErrEncoding))

	var e *mstring.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, mstring.ErrKindBounds, e.Kind)
	assert.Equal(t, "bounds", e.Kind.String())
	assert.Equal(t, "not active", mstring.ErrKindNotActive.String())
}
