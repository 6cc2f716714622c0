package mstring

import "github.com/joshuapare/strkit/internal/unit"

// Substring returns units [begin, end). The whole range returns s itself;
// anything else is copied into Chars.
func (s *String) Substring(begin, end int) (Text, error) {
	if begin < 0 {
		return nil, boundsError(begin)
	}
	if end > s.length {
		return nil, boundsError(end)
	}
	if end-begin < 0 {
		return nil, boundsError(end - begin)
	}
	if begin == 0 && end == s.length {
		return s, nil
	}
	return s.slice(begin, end), nil
}

// SubstringFrom returns units [begin, Len()).
func (s *String) SubstringFrom(begin int) (Text, error) {
	if begin < 0 {
		return nil, boundsError(begin)
	}
	if sub := s.length - begin; sub < 0 {
		return nil, boundsError(sub)
	}
	if begin == 0 {
		return s, nil
	}
	return s.slice(begin, s.length), nil
}

// SubSequence is Substring returning the Sequence view.
func (s *String) SubSequence(begin, end int) (Sequence, error) {
	t, err := s.Substring(begin, end)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *String) slice(begin, end int) Chars {
	out := make(Chars, end-begin)
	s.copyOut(begin, out)
	return out
}

// Trim removes leading and trailing units <= U+0020.
func (s *String) Trim() Text {
	st, n := 0, s.length
	for st < n && s.UnitAt(st) <= ' ' {
		st++
	}
	for st < n && s.UnitAt(n-1) <= ' ' {
		n--
	}
	if st > 0 || n < s.length {
		return s.slice(st, n)
	}
	return s
}

// Concat returns s followed by other. An empty or nil other returns s.
func (s *String) Concat(other Text) Text {
	a := accessorOf(other)
	m := a.len()
	if m == 0 {
		return s
	}
	out := make(Chars, s.length+m)
	s.copyOut(0, out[:s.length])
	a.copyOut(0, out[s.length:])
	return out
}

// Replace returns s with every oldUnit replaced by newUnit. When nothing
// changes s itself is returned.
func (s *String) Replace(oldUnit, newUnit uint16) Text {
	if oldUnit == newUnit {
		return s
	}
	i := 0
	for i < s.length && s.UnitAt(i) != oldUnit {
		i++
	}
	if i == s.length {
		return s
	}
	out := make(Chars, s.length)
	s.copyOut(0, out[:i])
	for ; i < s.length; i++ {
		if c := s.UnitAt(i); c != oldUnit {
			out[i] = c
		} else {
			out[i] = newUnit
		}
	}
	return out
}

// ReplaceLiteral replaces every non-overlapping occurrence of target,
// scanning left to right, with replacement. An empty target inserts
// replacement before every code point and at the end.
func (s *String) ReplaceLiteral(target, replacement Text) (Text, error) {
	if target == nil {
		return nil, nullArgument("target")
	}
	if replacement == nil {
		return nil, nullArgument("replacement")
	}
	t, r := target.accessor(), replacement.accessor()
	m := t.len()
	rep := make([]uint16, r.len())
	r.copyOut(0, rep)

	if m == 0 {
		out := make(Chars, 0, s.length+(s.length+1)*len(rep))
		out = append(out, rep...)
		for _, cp := range s.CodePoints() {
			out = unit.AppendRune(out, cp)
			out = append(out, rep...)
		}
		return out, nil
	}

	next := s.index(t, 0)
	if next < 0 {
		return s, nil
	}
	out := make(Chars, 0, s.length)
	off := 0
	for next >= 0 {
		out = s.appendRange(out, off, next)
		out = append(out, rep...)
		off = next + m
		next = s.index(t, off)
	}
	return s.appendRange(out, off, s.length), nil
}

// appendRange appends units [begin, end) of s to dst.
func (s *String) appendRange(dst Chars, begin, end int) Chars {
	n := len(dst)
	dst = append(dst, make(Chars, end-begin)...)
	s.copyOut(begin, dst[n:])
	return dst
}
