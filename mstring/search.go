package mstring

import "github.com/joshuapare/strkit/internal/unit"

// IndexRune returns the index of the first occurrence of cp at or after
// from, or -1. A supplementary cp matches its surrogate pair.
func (s *String) IndexRune(cp rune, from int) int {
	if from < 0 {
		from = 0
	} else if from >= s.length {
		return -1
	}
	if cp < unit.MinSupplementary {
		// BMP code points and negative (invalid) values.
		for i := from; i < s.length; i++ {
			if rune(s.UnitAt(i)) == cp {
				return i
			}
		}
		return -1
	}
	if !unit.IsValidCodePoint(cp) {
		return -1
	}
	hi, lo := unit.High(cp), unit.Low(cp)
	for i := from; i < s.length-1; i++ {
		if s.UnitAt(i) == hi && s.UnitAt(i+1) == lo {
			return i
		}
	}
	return -1
}

// LastIndexRune returns the index of the last occurrence of cp at or before
// from, or -1.
func (s *String) LastIndexRune(cp rune, from int) int {
	if cp < unit.MinSupplementary {
		for i := min(from, s.length-1); i >= 0; i-- {
			if rune(s.UnitAt(i)) == cp {
				return i
			}
		}
		return -1
	}
	if !unit.IsValidCodePoint(cp) {
		return -1
	}
	hi, lo := unit.High(cp), unit.Low(cp)
	for i := min(from, s.length-2); i >= 0; i-- {
		if s.UnitAt(i) == hi && s.UnitAt(i+1) == lo {
			return i
		}
	}
	return -1
}

// Index returns the index of the first occurrence of target at or after
// from, or -1. An empty target matches at from, clamped to [0, Len()].
func (s *String) Index(target Text, from int) int {
	if target == nil {
		return -1
	}
	return s.index(target.accessor(), from)
}

func (s *String) index(t accessor, from int) int {
	n, m := s.length, t.len()
	if from >= n {
		if m == 0 {
			return n
		}
		return -1
	}
	if from < 0 {
		from = 0
	}
	if m == 0 {
		return from
	}
	first := t.at(0)
	for i := from; i <= n-m; i++ {
		if s.UnitAt(i) != first {
			continue
		}
		j := 1
		for j < m && s.UnitAt(i+j) == t.at(j) {
			j++
		}
		if j == m {
			return i
		}
	}
	return -1
}

// LastIndex returns the index of the last occurrence of target starting at
// or before from, or -1. An empty target matches at min(from, Len()).
func (s *String) LastIndex(target Text, from int) int {
	if target == nil {
		return -1
	}
	t := target.accessor()
	m := t.len()
	right := s.length - m
	if from < 0 {
		return -1
	}
	if from > right {
		from = right
	}
	if m == 0 {
		return from
	}
	last := t.at(m - 1)
	for i := from; i >= 0; i-- {
		if s.UnitAt(i+m-1) != last {
			continue
		}
		j := m - 2
		for j >= 0 && s.UnitAt(i+j) == t.at(j) {
			j--
		}
		if j < 0 {
			return i
		}
	}
	return -1
}

// Contains reports whether target occurs in s.
func (s *String) Contains(target Text) bool {
	return s.Index(target, 0) >= 0
}
