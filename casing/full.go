package casing

import (
	"unicode"

	"github.com/joshuapare/strkit/internal/unit"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fullUpper caches context-free full uppercase mappings of non-ASCII code points.
var fullUpper = newShardedCache(defaultCapacity)

// LowerRune is the context-free, one-to-one lowercase mapping of cp.
// Surrogate code units map to themselves.
func LowerRune(cp rune) rune {
	if cp < 0x80 {
		if 'A' <= cp && cp <= 'Z' {
			return cp + ('a' - 'A')
		}
		return cp
	}
	if cp <= 0xFFFF && unit.IsSurrogate(uint16(cp)) {
		return cp
	}
	return unicode.ToLower(cp)
}

// UpperRune is the context-free, one-to-one uppercase mapping of cp.
func UpperRune(cp rune) rune {
	if cp < 0x80 {
		if 'a' <= cp && cp <= 'z' {
			return cp - ('a' - 'A')
		}
		return cp
	}
	if cp <= 0xFFFF && unit.IsSurrogate(uint16(cp)) {
		return cp
	}
	return unicode.ToUpper(cp)
}

// LowerUnit lowercases a single code unit. A mapping that leaves the Basic
// Multilingual Plane is ignored and u is returned unchanged.
func LowerUnit(u uint16) uint16 {
	r := LowerRune(rune(u))
	if r > 0xFFFF {
		return u
	}
	return uint16(r)
}

// UpperUnit uppercases a single code unit. A mapping that leaves the Basic
// Multilingual Plane is ignored and u is returned unchanged.
func UpperUnit(u uint16) uint16 {
	r := UpperRune(rune(u))
	if r > 0xFFFF {
		return u
	}
	return uint16(r)
}

// UpperFull returns the context-free full uppercase mapping of cp as UTF-16
// units. Most code points map to one code point; some expand (ß -> SS,
// ﬁ -> FI). The returned slice is shared and must not be modified.
func UpperFull(cp rune) []uint16 {
	if cp < 0x80 {
		return asciiUpper[cp]
	}
	if !unit.IsValidCodePoint(cp) || (cp <= 0xFFFF && unit.IsSurrogate(uint16(cp))) {
		return unit.AppendRune(nil, cp)
	}
	if m, ok := fullUpper.lookup(cp); ok {
		return m
	}
	// A Caser carries transform state and is not safe for concurrent use.
	mapped := cases.Upper(language.Und).String(string(cp))
	m := unit.FromString(mapped)
	fullUpper.store(cp, m)
	return m
}

// asciiUpper holds precomputed single-unit mappings for ASCII.
var asciiUpper = func() (t [0x80][]uint16) {
	for i := range t {
		t[i] = []uint16{uint16(UpperRune(rune(i)))}
	}
	return t
}()
