package casing

import (
	"sync"
	"testing"

	"github.com/joshuapare/strkit/internal/unit"
	"github.com/stretchr/testify/assert"
)

func TestUpperFull(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{'a', "A"},
		{'Z', "Z"},
		{'1', "1"},
		{0x00E9, "\u00c9"},
		{0x00DF, "SS"},
		{0xFB01, "FI"},          // ﬁ ligature
		{0x10428, "\U00010400"}, // Deseret small long i
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unit.ToString(UpperFull(tt.in)), "UpperFull(%U)", tt.in)
	}
}

func TestUpperFullSurrogateUnchanged(t *testing.T) {
	assert.Equal(t, []uint16{0xD800}, UpperFull(0xD800))
}

func TestUpperFullCached(t *testing.T) {
	before := fullUpper.len()
	UpperFull(0x00E4)
	UpperFull(0x00E4)
	assert.LessOrEqual(t, fullUpper.len(), before+1)
	_, ok := fullUpper.lookup(0x00E4)
	assert.True(t, ok)
}

func TestUpperFullConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cp := rune(0xC0); cp < 0x180; cp++ {
				UpperFull(cp)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, "\u0100", unit.ToString(UpperFull(0x0101)))
}

func TestUnitFolding(t *testing.T) {
	assert.Equal(t, uint16('A'), UpperUnit('a'))
	assert.Equal(t, uint16('a'), LowerUnit('A'))
	assert.Equal(t, uint16(0xD801), UpperUnit(0xD801), "surrogates are not folded")
	assert.Equal(t, uint16(0x00C9), UpperUnit(0x00E9))
	assert.Equal(t, rune(0x0131), LowerRune(0x0131))
	assert.Equal(t, rune('I'), UpperRune(0x0131))
}

func TestLRUEviction(t *testing.T) {
	c := newCache(2)
	c.store('a', []uint16{'A'})
	c.store('b', []uint16{'B'})
	c.lookup('a') // a is now most recent
	c.store('c', []uint16{'C'})

	_, ok := c.lookup('b')
	assert.False(t, ok, "b should be evicted")
	_, ok = c.lookup('a')
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())

	disabled := newCache(0)
	disabled.store('x', []uint16{'X'})
	_, ok = disabled.lookup('x')
	assert.False(t, ok)
}
