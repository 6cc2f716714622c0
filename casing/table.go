package casing

import "golang.org/x/text/language"

// Direction selects the mapping a lookup returns.
type Direction int

const (
	Lower Direction = iota
	Upper
)

const (
	capitalSigma = 0x03A3
	smallSigma   = 0x03C2 // final form
	capitalIDot  = 0x0130
	smallDotless = 0x0131
)

type entry struct {
	cp    rune
	lower []uint16
	upper []uint16
	lang  string // "" applies to every locale
	cond  condition
}

// table lists locale-specific entries before the locale-neutral ones so that
// the first match wins.
var table = []entry{
	// Lithuanian
	{cp: 0x0307, lower: []uint16{0x0307}, upper: []uint16{}, lang: "lt", cond: afterSoftDotted},
	{cp: 'I', lower: []uint16{'i', 0x0307}, upper: []uint16{'I'}, lang: "lt", cond: moreAbove},
	{cp: 'J', lower: []uint16{'j', 0x0307}, upper: []uint16{'J'}, lang: "lt", cond: moreAbove},
	{cp: 0x012E, lower: []uint16{0x012F, 0x0307}, upper: []uint16{0x012E}, lang: "lt", cond: moreAbove},
	{cp: 0x00CC, lower: []uint16{'i', 0x0307, 0x0300}, upper: []uint16{0x00CC}, lang: "lt"},
	{cp: 0x00CD, lower: []uint16{'i', 0x0307, 0x0301}, upper: []uint16{0x00CD}, lang: "lt"},
	{cp: 0x0128, lower: []uint16{'i', 0x0307, 0x0303}, upper: []uint16{0x0128}, lang: "lt"},

	// Turkish and Azeri
	{cp: capitalIDot, lower: []uint16{'i'}, upper: []uint16{capitalIDot}, lang: "tr"},
	{cp: capitalIDot, lower: []uint16{'i'}, upper: []uint16{capitalIDot}, lang: "az"},
	{cp: 0x0307, lower: []uint16{}, upper: []uint16{0x0307}, lang: "tr", cond: afterI},
	{cp: 0x0307, lower: []uint16{}, upper: []uint16{0x0307}, lang: "az", cond: afterI},
	{cp: 'I', lower: []uint16{smallDotless}, upper: []uint16{'I'}, lang: "tr", cond: notBeforeDot},
	{cp: 'I', lower: []uint16{smallDotless}, upper: []uint16{'I'}, lang: "az", cond: notBeforeDot},
	{cp: 'i', lower: []uint16{'i'}, upper: []uint16{capitalIDot}, lang: "tr"},
	{cp: 'i', lower: []uint16{'i'}, upper: []uint16{capitalIDot}, lang: "az"},

	// Locale-neutral
	{cp: capitalSigma, lower: []uint16{smallSigma}, upper: []uint16{capitalSigma}, cond: finalCased},
	{cp: capitalIDot, lower: []uint16{'i', 0x0307}, upper: []uint16{capitalIDot}},
}

var byRune = func() map[rune][]int {
	m := make(map[rune][]int)
	for i, e := range table {
		m[e.cp] = append(m[e.cp], i)
	}
	return m
}()

// Lookup returns the conditional mapping of the code point starting at src[i]
// under tag. ok is false when no entry applies; the caller then falls back to
// the context-free mapping. The returned slice may be empty (the code point
// is removed) and must not be modified.
func Lookup(src Units, i int, tag language.Tag, dir Direction) (mapped []uint16, ok bool) {
	cp := CodePointAt(src, i)
	idx, found := byRune[cp]
	if !found {
		return nil, false
	}
	lang := Language(tag)
	for _, k := range idx {
		e := &table[k]
		if e.lang != "" && e.lang != lang {
			continue
		}
		if !met(e.cond, src, i) {
			continue
		}
		if dir == Upper {
			return e.upper, true
		}
		return e.lower, true
	}
	return nil, false
}

// Special returns the context-independent part of the table: the mapping of
// cp under tag when no surrounding text is known. Entries that need context
// are not consulted.
func Special(cp rune, tag language.Tag, dir Direction) ([]uint16, bool) {
	idx, found := byRune[cp]
	if !found {
		return nil, false
	}
	lang := Language(tag)
	for _, k := range idx {
		e := &table[k]
		if e.cond != always || (e.lang != "" && e.lang != lang) {
			continue
		}
		if dir == Upper {
			return e.upper, true
		}
		return e.lower, true
	}
	return nil, false
}
