package mmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapReadWrite(t *testing.T) {
	size := PageSize()
	data, err := Map(size)
	require.NoError(t, err)
	require.Len(t, data, size)

	for i := range data {
		if data[i] != 0 {
			t.Fatalf("byte %d not zeroed: 0x%x", i, data[i])
		}
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	copy(data, want)
	assert.Equal(t, want, data[:4])

	require.NoError(t, Unmap(data))
}

func TestMapInvalidSize(t *testing.T) {
	_, err := Map(0)
	require.Error(t, err)
	_, err = Map(-1)
	require.Error(t, err)
}

func TestUnmapEmpty(t *testing.T) {
	require.NoError(t, Unmap(nil))
}

func TestPageSizePowerOfTwo(t *testing.T) {
	ps := PageSize()
	require.Positive(t, ps)
	assert.Zero(t, ps&(ps-1), "page size %d is not a power of two", ps)
}
