package mstring

import (
	"runtime"

	"github.com/joshuapare/strkit/casing"
	"github.com/joshuapare/strkit/storage"
)

// Equals reports whether other holds the same code units as s. Two Strings
// of the same processor are compared by the processor when it implements
// storage.Comparer.
func (s *String) Equals(other Text) bool {
	if other == nil {
		return false
	}
	a := other.accessor()
	if a.owned == s {
		return true
	}
	n := s.length
	if a.len() != n {
		return false
	}
	if eq, ok := s.equalSameProcessor(a.owned, n); ok {
		return eq
	}
	for i := range n {
		if s.UnitAt(i) != a.at(i) {
			return false
		}
	}
	return true
}

func (s *String) equalSameProcessor(o *String, n int) (eq, ok bool) {
	if o == nil || o.c.proc != s.c.proc {
		return false, false
	}
	cmp, ok := s.c.proc.(storage.Comparer)
	if !ok {
		return false, false
	}
	eq = cmp.EqualRange(s.c.handle, o.c.handle, n)
	runtime.KeepAlive(s)
	runtime.KeepAlive(o)
	return eq, true
}

// ContentEquals reports whether seq holds the same code units as s.
func (s *String) ContentEquals(seq Sequence) bool {
	if seq == nil {
		return false
	}
	if t, ok := seq.(Text); ok {
		return s.Equals(t)
	}
	n := s.length
	if seq.Len() != n {
		return false
	}
	for i := range n {
		if s.UnitAt(i) != seq.UnitAt(i) {
			return false
		}
	}
	return true
}

// EqualsIgnoreCase reports whether other equals s ignoring case, unit by
// unit.
func (s *String) EqualsIgnoreCase(other Text) bool {
	if other == nil {
		return false
	}
	a := other.accessor()
	if a.owned == s {
		return true
	}
	return a.len() == s.length && s.regionMatches(true, 0, a, 0, s.length)
}

// CompareTo compares s and other lexicographically by code unit. It returns
// the difference of the first mismatching units, or the length difference
// when one is a prefix of the other.
func (s *String) CompareTo(other Text) (int, error) {
	if other == nil {
		return 0, nullArgument("other")
	}
	return compare(s.accessor(), other.accessor(), false), nil
}

// CompareToIgnoreCase is CompareTo with each mismatching pair folded first
// to upper case and then to lower case.
func (s *String) CompareToIgnoreCase(other Text) (int, error) {
	if other == nil {
		return 0, nullArgument("other")
	}
	return compare(s.accessor(), other.accessor(), true), nil
}

// CaseInsensitiveOrder orders two texts the way CompareToIgnoreCase does.
// A nil Text sorts as empty. It fits slices.SortFunc.
func CaseInsensitiveOrder(a, b Text) int {
	return compare(accessorOf(a), accessorOf(b), true)
}

func compare(a, b accessor, ignoreCase bool) int {
	n1, n2 := a.len(), b.len()
	for k := range min(n1, n2) {
		c1, c2 := a.at(k), b.at(k)
		if c1 == c2 {
			continue
		}
		if ignoreCase {
			c1, c2 = casing.UpperUnit(c1), casing.UpperUnit(c2)
			if c1 == c2 {
				continue
			}
			c1, c2 = casing.LowerUnit(c1), casing.LowerUnit(c2)
			if c1 == c2 {
				continue
			}
		}
		return int(c1) - int(c2)
	}
	return n1 - n2
}

// RegionMatches reports whether s[toffset:toffset+n] equals
// other[ooffset:ooffset+n]. Out-of-range regions report false.
func (s *String) RegionMatches(ignoreCase bool, toffset int, other Text, ooffset, n int) bool {
	if other == nil {
		return false
	}
	return s.regionMatches(ignoreCase, toffset, other.accessor(), ooffset, n)
}

func (s *String) regionMatches(ignoreCase bool, to int, a accessor, po, n int) bool {
	if po < 0 || to < 0 || to > s.length-n || po > a.len()-n {
		return false
	}
	for ; n > 0; n-- {
		c1, c2 := s.UnitAt(to), a.at(po)
		to++
		po++
		if c1 == c2 {
			continue
		}
		if ignoreCase {
			u1, u2 := casing.UpperUnit(c1), casing.UpperUnit(c2)
			if u1 == u2 {
				continue
			}
			// Some scripts (Georgian) do not round-trip through upper case.
			if casing.LowerUnit(u1) == casing.LowerUnit(u2) {
				continue
			}
		}
		return false
	}
	return true
}

// StartsWithAt reports whether prefix occurs in s at toffset.
func (s *String) StartsWithAt(prefix Text, toffset int) bool {
	if prefix == nil {
		return false
	}
	a := prefix.accessor()
	pc := a.len()
	if toffset < 0 || toffset > s.length-pc {
		return false
	}
	for po := range pc {
		if s.UnitAt(toffset+po) != a.at(po) {
			return false
		}
	}
	return true
}

// StartsWith reports whether s begins with prefix.
func (s *String) StartsWith(prefix Text) bool {
	return s.StartsWithAt(prefix, 0)
}

// EndsWith reports whether s ends with suffix.
func (s *String) EndsWith(suffix Text) bool {
	if suffix == nil {
		return false
	}
	return s.StartsWithAt(suffix, s.length-suffix.accessor().len())
}

// HashCode returns h = 31*h + u over all code units. The value is computed
// on first use and cached; racing callers may both compute it.
func (s *String) HashCode() int32 {
	if v := s.hash.Load(); v != 0 {
		return int32(uint32(v))
	}
	h := hashOf(s.accessor())
	s.hash.Store(uint64(uint32(h)) | hashSet)
	return h
}
