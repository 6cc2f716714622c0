package mstring

import (
	"errors"
	"strings"

	"github.com/joshuapare/strkit/internal/unit"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// aliases covers common names that are not IANA registered.
var aliases = map[string]encoding.Encoding{
	"utf8":     unicode.UTF8,
	"utf16":    unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf16le":  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf16be":  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"latin1":   charmap.ISO8859_1,
	"cp1252":   charmap.Windows1252,
	"cp437":    charmap.CodePage437,
	"cp850":    charmap.CodePage850,
	"koi8r":    charmap.KOI8R,
	"macroman": charmap.Macintosh,
}

var errNoCodec = errors.New("no codec for registered name")

// lookupEncoding resolves a character encoding name.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nullArgument("encoding")
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err == nil && enc != nil {
		return enc, nil
	}
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(name))
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	if err == nil {
		err = errNoCodec
	}
	return nil, encodingError(name, err)
}

func decode(b []byte, name string) ([]uint16, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	text, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, encodingError(name, err)
	}
	return unit.FromString(string(text)), nil
}

// Bytes encodes s with the named character encoding. Characters the
// encoding cannot represent are replaced with its replacement byte.
func (s *String) Bytes(name string) ([]byte, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(s.String()))
	if err != nil {
		return nil, encodingError(name, err)
	}
	return out, nil
}
