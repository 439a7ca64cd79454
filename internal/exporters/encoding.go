package exporters

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset can represent every rune, so no substitution happens by default.
const DefaultCharset = "utf-8"

// Placeholder replaces every rune the output charset cannot represent.
const Placeholder = '?'

// ErrUnknownCharset is returned for charset names not registered with IANA
// or not supported by golang.org/x/text.
var ErrUnknownCharset = errors.New("unknown output charset")

// Encoder substitutes non-encodable runes instead of failing the whole render.
type Encoder struct {
	name string
	enc  *encoding.Encoder // nil when every rune is representable

	cache map[rune]bool
}

// NewEncoder looks charset up in the IANA registry. An empty name means DefaultCharset.
func NewEncoder(charset string) (*Encoder, error) {
	if charset == "" {
		charset = DefaultCharset
	}

	e, err := ianaindex.IANA.Encoding(charset)
	if err != nil || e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}

	name, err := ianaindex.IANA.Name(e)
	if err != nil {
		name = charset
	}

	encoder := &Encoder{name: name, cache: make(map[rune]bool)}
	if e != unicode.UTF8 {
		encoder.enc = e.NewEncoder()
	}
	return encoder, nil
}

// Name returns the canonical IANA name of the charset.
func (e *Encoder) Name() string {
	return e.name
}

// Sanitize replaces, rune by rune, whatever the charset cannot encode with Placeholder.
func (e *Encoder) Sanitize(s string) string {
	if e == nil || e.enc == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if e.canEncode(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(Placeholder)
		}
	}
	return b.String()
}

func (e *Encoder) canEncode(r rune) bool {
	ok, seen := e.cache[r]
	if !seen {
		_, err := e.enc.String(string(r))
		ok = err == nil
		e.cache[r] = ok
	}
	return ok
}
