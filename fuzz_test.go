package re2

import (
	"errors"
	"reflect"
	"regexp"
	"testing"
	"unicode/utf8"
)

// Run fuzz tests with:
//
//	go test -fuzz=FuzzMatchesStdlib -fuzztime=30s
//	go test -fuzz=FuzzFindStdlib -fuzztime=30s
//	go test -fuzz=FuzzGlobalReplaceStdlib -fuzztime=30s

var seedPatterns = []string{
	// Literals
	`hello`,
	`foo`,

	// Character classes
	`\d+`,
	`\D`,
	`\w+`,
	`\s+`,
	`[a-z]+`,
	`[^0-9]`,

	// Anchors
	`^hello`,
	`world$`,
	`^hello$`,
	`\bhello\b`,
	`(?m)^\w+$`,

	// Quantifiers
	`a*`,
	`a{2,5}`,
	`a*?`,
	`a??`,

	// Alternation
	`foo|bar|baz`,

	// Groups
	`(a)(b)`,
	`(?P<name>a)`,
	`(\w+)@(\w+)`,
	`(([a-z]+)(\d+))`,

	// Complex patterns
	`\d{3}-\d{4}`,
	`.*\.txt$`,
	`(?i)hello`,

	// Nullable repetition
	`(|a)*`,
	`(?:|a)*`,
	`((^|.)?)*`,
	`(a*|b)*`,
	`(\b|x)*?y`,

	// Overlapping literal alternations
	`hello|ll|xyz`,
	`abcd|bc`,
	`foobar|ob`,

	// Empty and edge cases
	``,
	`.`,
	`(.*)`,
	`^$`,

	// Unicode
	`[日本語]+`,
	`\p{L}+`,
}

var seedInputs = []string{
	"",
	"a",
	"hello world",
	"abc123def",
	"user@example.com",
	"file.txt",
	"日本語",
	"hello\nworld",
	"HELLO",
	"aaabbb",
	"555-1234",
	"aa",
	"xxbb",
	"xfoobar",
	"abcd",
}

// compilePair compiles pattern with both engines; ok is false when the
// pattern is not worth comparing.
func compilePair(t *testing.T, pattern, input string) (std *regexp.Regexp, re *Regexp, ok bool) {
	if !utf8.ValidString(input) {
		// invalid bytes never match a UTF-8 automaton, stdlib reads them as U+FFFD
		return nil, nil, false
	}
	std, err := regexp.Compile(pattern)
	if err != nil {
		return nil, nil, false
	}
	re, err = Compile(pattern)
	var rerr *Error
	if errors.As(err, &rerr) && rerr.Code == ErrorPatternTooLarge {
		return nil, nil, false
	}
	if err != nil {
		t.Fatalf("Compile(%q) failed on a valid pattern: %v", pattern, err)
	}
	return std, re, true
}

func seed(f *testing.F) {
	for _, p := range seedPatterns {
		for _, i := range seedInputs {
			f.Add(p, i)
		}
	}
}

func FuzzMatchesStdlib(f *testing.F) {
	seed(f)
	f.Fuzz(func(t *testing.T, pattern, input string) {
		std, re, ok := compilePair(t, pattern, input)
		if !ok {
			return
		}
		if want, got := std.MatchString(input), re.MatchesString(input); want != got {
			t.Errorf("MatchesString(%q, %q) = %v, stdlib %v", pattern, input, got, want)
		}
	})
}

func FuzzFindStdlib(f *testing.F) {
	seed(f)
	f.Fuzz(func(t *testing.T, pattern, input string) {
		std, re, ok := compilePair(t, pattern, input)
		if !ok {
			return
		}
		want := std.FindStringSubmatchIndex(input)
		m := re.FindString(input)
		if want == nil {
			if m != nil {
				t.Errorf("FindString(%q, %q) = %v, stdlib no match", pattern, input, m.slots)
			}
			return
		}
		if m == nil {
			t.Fatalf("FindString(%q, %q) = nil, stdlib %v", pattern, input, want)
		}
		if !reflect.DeepEqual(want, m.slots) {
			t.Errorf("FindString(%q, %q) = %v, stdlib %v", pattern, input, m.slots, want)
		}
	})
}

func FuzzGlobalReplaceStdlib(f *testing.F) {
	seed(f)
	f.Fuzz(func(t *testing.T, pattern, input string) {
		std, re, ok := compilePair(t, pattern, input)
		if !ok {
			return
		}
		want := std.ReplaceAllString(input, "<${0}>")
		got, _, err := GlobalReplace(input, re, `<\0>`)
		if err != nil {
			t.Fatalf("GlobalReplace(%q, %q): %v", pattern, input, err)
		}
		if want != got {
			t.Errorf("GlobalReplace(%q, %q) = %q, stdlib %q", pattern, input, got, want)
		}
	})
}
