package prettyfast

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var escapes = map[rune]string{
	'\\':     `\\`,
	'\n':     `\n`,
	'\r':     `\r`,
	'\t':     `\t`,
	'\v':     `\v`,
	'\f':     `\f`,
	0:        `\x00`,
	'\'':     `\'`,
	'\u2028': `\u2028`,
	'\u2029': `\u2029`,
}

// sanitize escapes the decoded contents of a string literal so it can be
// written between single quotes.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && w == 1 {
			if sur, ok := decodeSurrogate(s[i:]); ok {
				fmt.Fprintf(&b, `\u%X`, sur)
				i += 3
				continue
			}
			b.WriteByte(s[i])
			i++
			continue
		}
		if esc, ok := escapes[r]; ok {
			b.WriteString(esc)
		} else {
			b.WriteString(s[i : i+w])
		}
		i += w
	}
	return b.String()
}

// decodeSurrogate decodes a lone UTF-16 surrogate encoded in the three byte
// UTF-8 layout, which the scanner uses for string escapes that name one.
func decodeSurrogate(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xED || s[1] < 0xA0 || s[1] > 0xBF || s[2]&0xC0 != 0x80 {
		return 0, false
	}
	return 0xD000 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), true
}
