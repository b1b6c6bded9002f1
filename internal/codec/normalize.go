package codec

import (
	"strings"
	"unicode"
)

// Normalize prepares a raw Base64 string for decoding with the standard
// alphabet. All whitespace is removed, the URL-safe alphabet is mapped back
// to the standard one, and '=' padding is restored to a multiple of four.
// Normalize never fails; the output may still be invalid Base64.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()

	if strings.ContainsAny(out, "-_") {
		out = strings.Map(func(r rune) rune {
			switch r {
			case '-':
				return '+'
			case '_':
				return '/'
			default:
				return r
			}
		}, out)
	}

	if rem := len(out) % 4; rem != 0 {
		out += strings.Repeat("=", 4-rem)
	}
	return out
}
