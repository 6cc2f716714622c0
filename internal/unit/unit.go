// Package unit contains helpers for working with UTF-16 code units.
//
// Strings in strkit are sequences of uint16 code units. Supplementary code
// points (U+10000 and above) occupy two units: a high surrogate followed by a
// low surrogate. The helpers here never allocate.
package unit

import "unicode/utf16"

const (
	// UTF-16 surrogate pair ranges for encoding supplementary characters (U+10000 and above).
	MinHighSurrogate = 0xD800 // Start of high surrogate range
	MaxHighSurrogate = 0xDBFF // End of high surrogate range
	MinLowSurrogate  = 0xDC00 // Start of low surrogate range
	MaxLowSurrogate  = 0xDFFF // End of low surrogate range

	// MinSupplementary is the first code point that needs a surrogate pair.
	MinSupplementary = 0x10000
	// MaxCodePoint is the largest valid Unicode code point.
	MaxCodePoint = 0x10FFFF

	surrogateMask = 0x3FF
)

// IsHighSurrogate reports whether u is in the high surrogate range.
func IsHighSurrogate(u uint16) bool {
	return u >= MinHighSurrogate && u <= MaxHighSurrogate
}

// IsLowSurrogate reports whether u is in the low surrogate range.
func IsLowSurrogate(u uint16) bool {
	return u >= MinLowSurrogate && u <= MaxLowSurrogate
}

// IsSurrogate reports whether u is either kind of surrogate.
func IsSurrogate(u uint16) bool {
	return u >= MinHighSurrogate && u <= MaxLowSurrogate
}

// ToCodePoint combines a high and low surrogate. The caller must have
// validated both halves.
func ToCodePoint(hi, lo uint16) rune {
	return MinSupplementary + ((rune(hi)-MinHighSurrogate)<<10 | (rune(lo) - MinLowSurrogate))
}

// High returns the leading surrogate for a supplementary code point.
func High(cp rune) uint16 {
	return uint16((cp-MinSupplementary)>>10) + MinHighSurrogate
}

// Low returns the trailing surrogate for a supplementary code point.
func Low(cp rune) uint16 {
	return uint16(cp&surrogateMask) + MinLowSurrogate
}

// IsValidCodePoint reports whether cp is in [0, U+10FFFF].
func IsValidCodePoint(cp rune) bool {
	return cp >= 0 && cp <= MaxCodePoint
}

// Count returns the number of units needed to encode cp (1 or 2).
func Count(cp rune) int {
	if cp >= MinSupplementary {
		return 2
	}
	return 1
}

// AppendRune appends the UTF-16 encoding of cp to dst.
func AppendRune(dst []uint16, cp rune) []uint16 {
	if cp >= MinSupplementary {
		return append(dst, High(cp), Low(cp))
	}
	return append(dst, uint16(cp))
}

// PutRune writes cp at dst[i:] and returns the number of units written.
// dst must have room for Count(cp) units.
func PutRune(dst []uint16, i int, cp rune) int {
	if cp >= MinSupplementary {
		dst[i] = High(cp)
		dst[i+1] = Low(cp)
		return 2
	}
	dst[i] = uint16(cp)
	return 1
}

// FromString encodes a Go (UTF-8) string as UTF-16 units.
func FromString(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for _, r := range s {
		out = AppendRune(out, r)
	}
	return out
}

// ToString decodes UTF-16 units to a Go string. Unpaired surrogates become
// U+FFFD.
func ToString(units []uint16) string {
	if len(units) == 0 {
		return ""
	}

	// Fast path: all ASCII
	ascii := true
	for _, u := range units {
		if u >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		b := make([]byte, len(units))
		for i, u := range units {
			b[i] = byte(u)
		}
		return string(b)
	}
	return string(utf16.Decode(units))
}
