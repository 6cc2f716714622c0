package mstring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joshuapare/strkit/internal/unit"
)

// Pattern operations run Go's regexp engine over the UTF-8 rendering of the
// string, so unpaired surrogates are seen as U+FFFD. Replacement strings use
// regexp.Expand syntax ($1, ${name}).

// regexMeta lists the units that make a one-unit pattern a real regex.
const regexMeta = ".$|()[{^?*+\\"

func compile(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("mstring: compile %q: %w", expr, err)
	}
	return re, nil
}

// literalDelimiter reports whether regex denotes a single literal unit:
// one non-meta unit, or a backslash followed by a non-alphanumeric unit.
// Surrogate units never qualify.
func literalDelimiter(regex string) (uint16, bool) {
	u := unit.FromString(regex)
	var ch uint16
	switch {
	case len(u) == 1 && !strings.ContainsRune(regexMeta, rune(u[0])):
		ch = u[0]
	case len(u) == 2 && u[0] == '\\' && !isASCIIAlnum(u[1]):
		ch = u[1]
	default:
		return 0, false
	}
	return ch, !unit.IsSurrogate(ch)
}

func isASCIIAlnum(c uint16) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Split splits s around matches of regex.
//
// limit > 0 yields at most limit pieces, the last holding the rest of s.
// limit < 0 yields every piece. limit == 0 yields every piece and drops
// trailing empty ones. When regex never matches the result is s itself.
// regex is a pattern, not a literal: split on `\.` to break at dots.
func (s *String) Split(regex string, limit int) ([]Text, error) {
	if ch, ok := literalDelimiter(regex); ok {
		return s.splitUnit(ch, limit), nil
	}
	re, err := compile(regex)
	if err != nil {
		return nil, err
	}
	str := s.String()
	if re.FindStringIndex(str) == nil {
		return []Text{s}, nil
	}
	n := limit
	if limit == 0 {
		n = -1
	}
	parts := re.Split(str, n)
	out := make([]Text, len(parts))
	for i, p := range parts {
		out[i] = CharsOf(p)
	}
	if limit == 0 {
		out = trimTrailingEmpty(out)
	}
	return out, nil
}

func (s *String) splitUnit(ch uint16, limit int) []Text {
	limited := limit > 0
	var list []Text
	off := 0
	for {
		next := s.IndexRune(rune(ch), off)
		if next < 0 {
			break
		}
		if !limited || len(list) < limit-1 {
			list = append(list, s.slice(off, next))
			off = next + 1
			continue
		}
		list = append(list, s.slice(off, s.length))
		off = s.length
		break
	}
	if off == 0 {
		return []Text{s}
	}
	if !limited || len(list) < limit {
		list = append(list, s.slice(off, s.length))
	}
	if limit == 0 {
		list = trimTrailingEmpty(list)
	}
	return list
}

func trimTrailingEmpty(list []Text) []Text {
	n := len(list)
	for n > 0 && list[n-1].Len() == 0 {
		n--
	}
	return list[:n]
}

// Matches reports whether regex matches the whole of s.
func (s *String) Matches(regex string) (bool, error) {
	re, err := compile(`^(?:` + regex + `)$`)
	if err != nil {
		return false, err
	}
	return re.MatchString(s.String()), nil
}

// ReplaceFirst replaces the first match of regex with replacement.
func (s *String) ReplaceFirst(regex, replacement string) (Text, error) {
	re, err := compile(regex)
	if err != nil {
		return nil, err
	}
	str := s.String()
	m := re.FindStringSubmatchIndex(str)
	if m == nil {
		return s, nil
	}
	dst := make([]byte, 0, len(str)+len(replacement))
	dst = append(dst, str[:m[0]]...)
	dst = re.ExpandString(dst, replacement, str, m)
	dst = append(dst, str[m[1]:]...)
	return CharsOf(string(dst)), nil
}

// ReplaceAll replaces every match of regex with replacement.
func (s *String) ReplaceAll(regex, replacement string) (Text, error) {
	re, err := compile(regex)
	if err != nil {
		return nil, err
	}
	str := s.String()
	if !re.MatchString(str) {
		return s, nil
	}
	return CharsOf(re.ReplaceAllString(str, replacement)), nil
}
