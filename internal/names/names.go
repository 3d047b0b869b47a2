// Package names normalizes layer names. Every place that compares or
// writes a layer name goes through Sanitize so the two never disagree.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is the name used when sanitization leaves nothing.
const Fallback = "unnamed_layer"

// MaxEncodedLength is the longest name the container format stores.
const MaxEncodedLength = 255

// disallowed reports NUL and control characters other than tab, CR and LF.
func disallowed(r rune) bool {
	if r == '\t' || r == '\r' || r == '\n' {
		return false
	}
	return r == 0 || unicode.IsControl(r)
}

// Sanitize strips NUL bytes and control characters (except tab, CR and
// LF), trims surrounding whitespace, and returns Fallback if the result
// is empty.
func Sanitize(name string) string {
	out, _, err := transform.String(runes.Remove(runes.Predicate(disallowed)), name)
	if err != nil {
		out = strings.Map(func(r rune) rune {
			if disallowed(r) {
				return -1
			}
			return r
		}, name)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return Fallback
	}
	return out
}

// Key returns the comparison key for a name: sanitized and lower-cased.
func Key(name string) string {
	return strings.ToLower(Sanitize(name))
}

// Equal reports whether two names refer to the same layer.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// ASCII returns the sanitized name folded to printable ASCII for the
// container's single-byte name field. Accents are dropped by
// decomposition; any remaining non-ASCII rune becomes '_'. The result is
// truncated to MaxEncodedLength bytes.
func ASCII(name string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return '_'
			}
			return r
		}),
	)
	out, _, err := transform.String(t, Sanitize(name))
	if err != nil {
		out = Fallback
	}
	if len(out) > MaxEncodedLength {
		out = out[:MaxEncodedLength]
	}
	return out
}
