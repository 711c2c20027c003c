package re2

import "strings"

// QuoteMeta returns a pattern matching text literally. Every byte except
// [A-Za-z0-9_] and bytes of UTF-8 sequences is escaped with a backslash;
// NUL becomes \x00.
//
// Example:
//
//	re2.QuoteMeta("1.5-2.0?") // `1\.5\-2\.0\?`
func QuoteMeta(text string) string {
	var b strings.Builder
	b.Grow(2 * len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c >= 0x80:
		case c == 0:
			b.WriteString(`\x00`)
			continue
		default:
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Escape is QuoteMeta.
func Escape(text string) string {
	return QuoteMeta(text)
}

// Quote is QuoteMeta.
func Quote(text string) string {
	return QuoteMeta(text)
}
