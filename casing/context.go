package casing

import (
	"unicode"

	"github.com/joshuapare/strkit/internal/unit"
	"golang.org/x/text/unicode/norm"
)

// condition names the context a conditional mapping requires.
type condition int

const (
	always condition = iota
	finalCased
	afterSoftDotted
	moreAbove
	afterI
	notBeforeDot
)

const (
	cccNotReordered = 0
	cccAbove        = 230

	combiningDotAbove = 0x0307
)

// combiningClass returns the canonical combining class of cp.
func combiningClass(cp rune) uint8 {
	if cp < 0x0300 {
		return cccNotReordered
	}
	return norm.NFD.PropertiesString(string(cp)).CCC()
}

func isCased(cp rune) bool {
	return unicode.IsUpper(cp) || unicode.IsLower(cp) || unicode.IsTitle(cp) ||
		unicode.Is(unicode.Other_Lowercase, cp) || unicode.Is(unicode.Other_Uppercase, cp)
}

// isCaseIgnorable follows the Unicode Case_Ignorable property: Mn, Me, Cf,
// Lm, Sk and the word-break MidLetter/MidNumLet/Single_Quote characters.
func isCaseIgnorable(cp rune) bool {
	switch cp {
	case '\'', '.', ':', 0x00B7, 0x0387, 0x05F4, 0x2018, 0x2019, 0x2024, 0x2027,
		0xFE13, 0xFE52, 0xFE55, 0xFF07, 0xFF0E, 0xFF1A:
		return true
	}
	return unicode.In(cp, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk)
}

func met(c condition, src Units, i int) bool {
	switch c {
	case finalCased:
		return isFinalCased(src, i)
	case afterSoftDotted:
		return isAfterSoftDotted(src, i)
	case moreAbove:
		return isMoreAbove(src, i)
	case afterI:
		return isAfterI(src, i)
	case notBeforeDot:
		return !isBeforeDot(src, i)
	default:
		return true
	}
}

// isFinalCased: the code point at i is preceded by a cased letter (skipping
// case-ignorable code points) and not followed by one.
func isFinalCased(src Units, i int) bool {
	before := false
	for j := i; j > 0; {
		cp := CodePointBefore(src, j)
		j -= unit.Count(cp)
		if isCaseIgnorable(cp) {
			continue
		}
		before = isCased(cp)
		break
	}
	if !before {
		return false
	}

	n := src.Len()
	for j := i + unit.Count(CodePointAt(src, i)); j < n; {
		cp := CodePointAt(src, j)
		j += unit.Count(cp)
		if isCaseIgnorable(cp) {
			continue
		}
		return !isCased(cp)
	}
	return true
}

// isAfterSoftDotted: a Soft_Dotted code point precedes i with no intervening
// combining class 0 or 230.
func isAfterSoftDotted(src Units, i int) bool {
	for j := i; j > 0; {
		cp := CodePointBefore(src, j)
		j -= unit.Count(cp)
		if unicode.Is(unicode.Soft_Dotted, cp) {
			return true
		}
		if ccc := combiningClass(cp); ccc == cccNotReordered || ccc == cccAbove {
			return false
		}
	}
	return false
}

// isMoreAbove: a combining class 230 code point follows i with no
// intervening combining class 0.
func isMoreAbove(src Units, i int) bool {
	n := src.Len()
	for j := i + unit.Count(CodePointAt(src, i)); j < n; {
		cp := CodePointAt(src, j)
		j += unit.Count(cp)
		switch combiningClass(cp) {
		case cccAbove:
			return true
		case cccNotReordered:
			return false
		}
	}
	return false
}

// isAfterI: an uppercase I precedes i with no intervening combining class 0
// or 230.
func isAfterI(src Units, i int) bool {
	for j := i; j > 0; {
		cp := CodePointBefore(src, j)
		j -= unit.Count(cp)
		if cp == 'I' {
			return true
		}
		if ccc := combiningClass(cp); ccc == cccNotReordered || ccc == cccAbove {
			return false
		}
	}
	return false
}

// isBeforeDot: U+0307 follows i with no intervening combining class 0 or 230.
func isBeforeDot(src Units, i int) bool {
	n := src.Len()
	for j := i + unit.Count(CodePointAt(src, i)); j < n; {
		cp := CodePointAt(src, j)
		j += unit.Count(cp)
		if cp == combiningDotAbove {
			return true
		}
		if ccc := combiningClass(cp); ccc == cccNotReordered || ccc == cccAbove {
			return false
		}
	}
	return false
}
