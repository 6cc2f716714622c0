// Package casing holds the locale- and context-sensitive case mappings that a
// per-code-point table cannot express.
//
// # Overview
//
// Most code points map to exactly one other code point regardless of where
// they appear. A handful do not:
//
//   - GREEK CAPITAL LETTER SIGMA lowercases to final sigma at the end of a word
//   - LATIN CAPITAL LETTER I WITH DOT ABOVE lowercases to "i" + U+0307
//   - Turkish and Azeri map i <-> İ and I <-> ı
//   - Lithuanian keeps the dot above i when other accents follow
//
// Lookup consults the conditional table for one position of a string. It
// reads the string only through the Units interface, so it works the same for
// every storage backend and can be tested on plain slices.
//
// Context-free mappings come from golang.org/x/text/cases (full mappings such
// as ß -> SS) and the unicode package (simple one-to-one mappings).
//
// # Usage
//
//	units := casing.Slice(unit.FromString("İstanbul"))
//	if m, ok := casing.Lookup(units, 0, language.Turkish, casing.Lower); ok {
//	    // m == []uint16{'i'}
//	}
package casing
