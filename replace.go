package re2

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coregx/re2/nfa"
)

// Replace replaces the first match of re in text with rewrite and returns
// the result. Text without a match comes back unchanged.
//
// In rewrite, \0 stands for the whole match, \1 to \9 for the groups and
// \\ for a backslash. Referring to a group the pattern does not have is a
// *RewriteError, as is a backslash before anything else.
//
// Example:
//
//	out, _ := re2.Replace("hello there", re2.MustCompile(`(\w+) (\w+)`), `\2 \1`)
//	// out == "there hello"
func Replace(text string, re *Regexp, rewrite string) (string, error) {
	if err := re.checkRewrite(rewrite); err != nil {
		return text, err
	}
	m := re.FindString(text)
	if m == nil {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text) + len(rewrite))
	b.WriteString(text[:m.slots[0]])
	expand(&b, rewrite, text, m.slots)
	b.WriteString(text[m.slots[1]:])
	return b.String(), nil
}

// GlobalReplace replaces every non-overlapping match of re in text with
// rewrite and returns the result and the number of replacements.
//
// An empty match right where the previous match ended is skipped, and
// after an empty match the search resumes one character further.
func GlobalReplace(text string, re *Regexp, rewrite string) (string, int, error) {
	if err := re.checkRewrite(rewrite); err != nil {
		return text, 0, err
	}

	h := []byte(text)
	slots := make([]int, 2*(re.engine.NumCaptures()+1))
	var b strings.Builder
	count := 0
	lastEnd := -1
	p := 0
	for p <= len(h) {
		if !re.engine.Search(nfa.Input{Haystack: h, Start: p, End: len(h)}, slots) {
			break
		}
		start, end := slots[0], slots[1]
		b.WriteString(text[p:start])
		if start == end && start == lastEnd {
			n := 1
			if re.options.UTF8 && p < len(h) {
				_, n = utf8.DecodeRune(h[p:])
			}
			if p < len(h) {
				b.WriteString(text[p : p+n])
			}
			p += n
			continue
		}
		expand(&b, rewrite, text, slots)
		p = end
		lastEnd = end
		count++
	}
	if count == 0 {
		return text, 0, nil
	}
	if p < len(h) {
		b.WriteString(text[p:])
	}
	return b.String(), count, nil
}

// ReplaceString compiles pattern with the default options and calls
// Replace.
func ReplaceString(text, pattern, rewrite string) (string, error) {
	re, err := Compile(pattern)
	if err != nil {
		return text, err
	}
	return Replace(text, re, rewrite)
}

// GlobalReplaceString compiles pattern with the default options and calls
// GlobalReplace.
func GlobalReplaceString(text, pattern, rewrite string) (string, int, error) {
	re, err := Compile(pattern)
	if err != nil {
		return text, 0, err
	}
	return GlobalReplace(text, re, rewrite)
}

// checkRewrite validates rewrite against the groups of r. An invalid
// pattern reports its compile error.
func (r *Regexp) checkRewrite(rewrite string) error {
	if r.err != nil {
		return r.err
	}
	highest := -1
	for i := 0; i < len(rewrite); i++ {
		if rewrite[i] != '\\' {
			continue
		}
		i++
		switch {
		case i < len(rewrite) && rewrite[i] >= '0' && rewrite[i] <= '9':
			highest = max(highest, int(rewrite[i]-'0'))
		case i < len(rewrite) && rewrite[i] == '\\':
		default:
			return &RewriteError{Rewrite: rewrite, Message: "invalid rewrite pattern"}
		}
	}
	if groups := r.engine.NumCaptures(); highest > groups {
		return &RewriteError{
			Rewrite: rewrite,
			Message: fmt.Sprintf("rewrite string requests %d matches, but the regexp only has %d parenthesized subexpressions", highest, groups),
		}
	}
	return nil
}

// expand appends rewrite to b with group references filled in from slots.
// rewrite must have passed checkRewrite.
func expand(b *strings.Builder, rewrite, text string, slots []int) {
	for i := 0; i < len(rewrite); i++ {
		c := rewrite[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if rewrite[i] == '\\' {
			b.WriteByte('\\')
			continue
		}
		n := int(rewrite[i] - '0')
		if start, end := slots[2*n], slots[2*n+1]; start >= 0 {
			b.WriteString(text[start:end])
		}
	}
}
