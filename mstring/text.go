package mstring

import "github.com/joshuapare/strkit/internal/unit"

// Sequence is any indexable run of UTF-16 code units.
type Sequence interface {
	Len() int
	UnitAt(i int) uint16
}

// Text is the closed set of string values the engine reads as operands:
// *String (read through its own processor) and Chars (a plain buffer).
type Text interface {
	Sequence
	String() string
	accessor() accessor
}

// Chars is a Go-managed UTF-16 string. Derived operations return Chars.
type Chars []uint16

// CharsOf converts a Go string to Chars.
func CharsOf(s string) Chars { return Chars(unit.FromString(s)) }

func (c Chars) Len() int            { return len(c) }
func (c Chars) UnitAt(i int) uint16 { return c[i] }
func (c Chars) String() string      { return unit.ToString(c) }

// HashCode returns the same polynomial hash String.HashCode computes for
// equal content.
func (c Chars) HashCode() int32 { return hashOf(c.accessor()) }

func (c Chars) accessor() accessor { return accessor{borrowed: c} }

// accessor reads a foreign operand either through its owning processor or
// directly from a borrowed buffer. Algorithms index through it and never
// inspect the operand's concrete type.
type accessor struct {
	owned    *String
	borrowed []uint16
}

func accessorOf(t Text) accessor {
	if t == nil {
		return accessor{}
	}
	return t.accessor()
}

func (a accessor) len() int {
	if a.owned != nil {
		return a.owned.length
	}
	return len(a.borrowed)
}

func (a accessor) at(i int) uint16 {
	if a.owned != nil {
		return a.owned.UnitAt(i)
	}
	return a.borrowed[i]
}

// copyOut fills dst from index begin.
func (a accessor) copyOut(begin int, dst []uint16) {
	if a.owned != nil {
		a.owned.copyOut(begin, dst)
		return
	}
	copy(dst, a.borrowed[begin:])
}

func hashOf(a accessor) int32 {
	var h int32
	for i, n := 0, a.len(); i < n; i++ {
		h = 31*h + int32(a.at(i))
	}
	return h
}
