package mstring

import (
	"slices"

	"github.com/joshuapare/strkit/casing"
	"github.com/joshuapare/strkit/internal/unit"
	"golang.org/x/text/language"
)

// ToLower returns s lowercased under the rules of tag. Turkish, Azeri and
// Lithuanian apply their context-dependent mappings, and every locale maps
// final sigma and dotted capital I by context. When no code point changes
// s itself is returned.
func (s *String) ToLower(tag language.Tag) Text {
	first := 0
	for first < s.length {
		cp := casing.CodePointAt(s, first)
		if casing.LowerRune(cp) != cp {
			break
		}
		first += unit.Count(cp)
	}
	if first == s.length {
		return s
	}

	out := make(Chars, first, s.length+s.length/8)
	s.copyOut(0, out)

	conditional := casing.IsConditional(tag)
	for i := first; i < s.length; {
		cp := casing.CodePointAt(s, i)
		n := unit.Count(cp)
		if conditional || casing.IsConditionalRune(cp) {
			if m, ok := casing.Lookup(s, i, tag, casing.Lower); ok {
				out = append(out, m...)
				i += n
				continue
			}
		}
		out = unit.AppendRune(out, casing.LowerRune(cp))
		i += n
	}
	return out
}

// ToUpper returns s uppercased under the rules of tag. Mappings may expand
// (ß becomes SS). When no code point changes s itself is returned.
func (s *String) ToUpper(tag language.Tag) Text {
	first := 0
	for first < s.length {
		cp := casing.CodePointAt(s, first)
		if !unchanged(casing.UpperFull(cp), cp) {
			break
		}
		first += unit.Count(cp)
	}
	if first == s.length {
		return s
	}

	out := make(Chars, first, s.length+s.length/8)
	s.copyOut(0, out)

	conditional := casing.IsConditional(tag)
	for i := first; i < s.length; {
		cp := casing.CodePointAt(s, i)
		n := unit.Count(cp)
		if conditional {
			if m, ok := casing.Lookup(s, i, tag, casing.Upper); ok {
				out = append(out, m...)
				i += n
				continue
			}
		}
		out = append(out, casing.UpperFull(cp)...)
		i += n
	}
	return out
}

// unchanged reports whether mapped is exactly the encoding of cp.
func unchanged(mapped []uint16, cp rune) bool {
	var enc [2]uint16
	n := unit.PutRune(enc[:], 0, cp)
	return slices.Equal(mapped, enc[:n])
}
