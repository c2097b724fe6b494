// Package charset converts between raw bytes and text using the
// charset names that appear in Content-Type headers. Names are
// resolved against the WHATWG encoding index, with a second lookup
// attempt that drops hyphens and underscores so spellings like
// "latin-1" or "utf_8" resolve too.
package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnknownCharset is returned when a charset name resolves to no
	// known encoding.
	ErrUnknownCharset = errors.New("unknown charset")

	// ErrInvalidUTF8 is returned by Decode when the charset is UTF-8
	// and the input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")
)

// lookup resolves a charset name to an encoding. Surrounding quotes
// and whitespace are stripped first; if the name is not a recognized
// label, a second attempt without hyphens and underscores is made.
func lookup(name string) (encoding.Encoding, error) {
	label := strings.Trim(strings.TrimSpace(name), `"'`)
	if enc, err := htmlindex.Get(label); err == nil {
		return enc, nil
	}
	stripped := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return -1
		}
		return r
	}, label)
	if enc, err := htmlindex.Get(stripped); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("charset %q: %w", name, ErrUnknownCharset)
}

// Known reports whether name resolves to a supported charset.
func Known(name string) bool {
	_, err := lookup(name)
	return err == nil
}

// Decode converts data from the named charset to a string. For UTF-8
// the input must be valid UTF-8; other charsets decode every input,
// substituting U+FFFD for byte sequences they cannot map.
func Decode(data []byte, name string) (string, error) {
	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	if enc == unicode.UTF8 {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("charset %q: %w", name, ErrInvalidUTF8)
		}
		return string(data), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode charset %q: %w", name, err)
	}
	return string(decoded), nil
}

// Encode converts text to the named charset. Encoding fails when the
// charset cannot represent a rune of the text. For UTF-8 the string's
// bytes are returned as they are, so text obtained from a lenient
// decode round-trips without loss.
func Encode(text string, name string) ([]byte, error) {
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return []byte(text), nil
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode charset %q: %w", name, err)
	}
	return encoded, nil
}
