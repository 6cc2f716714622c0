package casing

import "github.com/joshuapare/strkit/internal/unit"

// Units is the read-only view of a string the context conditions need.
type Units interface {
	Len() int
	UnitAt(i int) uint16
}

// Slice adapts a plain []uint16 to Units.
type Slice []uint16

func (s Slice) Len() int            { return len(s) }
func (s Slice) UnitAt(i int) uint16 { return s[i] }

// CodePointAt decodes the code point starting at i, combining a valid
// surrogate pair.
func CodePointAt(src Units, i int) rune {
	c1 := src.UnitAt(i)
	if unit.IsHighSurrogate(c1) && i+1 < src.Len() {
		if c2 := src.UnitAt(i + 1); unit.IsLowSurrogate(c2) {
			return unit.ToCodePoint(c1, c2)
		}
	}
	return rune(c1)
}

// CodePointBefore decodes the code point ending just before i.
func CodePointBefore(src Units, i int) rune {
	c2 := src.UnitAt(i - 1)
	if unit.IsLowSurrogate(c2) && i-1 > 0 {
		if c1 := src.UnitAt(i - 2); unit.IsHighSurrogate(c1) {
			return unit.ToCodePoint(c1, c2)
		}
	}
	return rune(c2)
}
