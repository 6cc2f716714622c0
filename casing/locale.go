package casing

import "golang.org/x/text/language"

// Language returns the ISO 639 base language of tag, or "" when the tag does
// not name one explicitly (language.Und, for instance).
func Language(tag language.Tag) string {
	base, conf := tag.Base()
	if conf != language.Exact {
		return ""
	}
	return base.String()
}

// IsConditional reports whether case mapping under tag depends on context.
// Turkish, Azeri and Lithuanian are the conditional casing locales.
func IsConditional(tag language.Tag) bool {
	switch Language(tag) {
	case "tr", "az", "lt":
		return true
	default:
		return false
	}
}

// IsConditionalRune reports whether cp needs the conditional table even under
// a locale-neutral lowercase mapping.
func IsConditionalRune(cp rune) bool {
	return cp == capitalSigma || cp == capitalIDot
}
