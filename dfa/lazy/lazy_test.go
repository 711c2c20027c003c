package lazy

import (
	"errors"
	"regexp"
	"regexp/syntax"
	"testing"

	"github.com/coregx/re2/nfa"
)

func mustCompilePattern(t *testing.T, pattern string) *DFA {
	t.Helper()
	d, err := CompilePattern(pattern)
	if err != nil {
		t.Fatalf("CompilePattern(%q): %v", pattern, err)
	}
	return d
}

func TestIsMatch_AgreesWithStdlib(t *testing.T) {
	patterns := []string{
		"foo", "", "a+b", "^abc", "abc$", "^$", "(?m)^b$", `\bfoo\b`, `\Bo`,
		"[0-9]{3}-[0-9]{4}", "(a|ab)(c|bcd)", "x*", "(?i)straße", "[α-ω]+",
		"(?s)a.c", "a.c", `\w+@\w+\.com`, "(?m)$", `^\b`,
	}
	haystacks := []string{
		"", "foo", "a foo b", "foobar", "abc", "xabc", "abcx", "a\nb\nc",
		"555-1234", "abcd", "STRASSE", "STRAẞE", "αβγ", "a\nc", "mail bob@example.com",
		" ", "_", "o",
	}

	for _, pattern := range patterns {
		d := mustCompilePattern(t, pattern)
		cache := d.NewCache()
		std := regexp.MustCompile(pattern)
		for _, h := range haystacks {
			got, err := d.IsMatch(cache, nfa.NewInput([]byte(h)))
			if err != nil {
				t.Fatalf("%q on %q: %v", pattern, h, err)
			}
			if want := std.MatchString(h); got != want {
				t.Errorf("IsMatch(%q, %q) = %v, want %v", pattern, h, got, want)
			}
		}
	}
}

func TestIsMatch_Window(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		haystack   string
		start, end int
		anchored   bool
		anchorEnd  bool
		want       bool
	}{
		{name: "inside window", pattern: "bar", haystack: "foo bar", start: 2, end: 7, want: true},
		{name: "window cuts match", pattern: "bar", haystack: "foo bar", start: 0, end: 6},
		{name: "anchored", pattern: "bar", haystack: "foo bar", start: 4, end: 7, anchored: true, want: true},
		{name: "anchored misses", pattern: "bar", haystack: "foo bar", start: 3, end: 7, anchored: true},
		{name: "anchor end", pattern: "o+", haystack: "foo bar", start: 0, end: 3, anchorEnd: true, want: true},
		{name: "anchor end misses", pattern: "f", haystack: "foo bar", start: 0, end: 3, anchorEnd: true},
		{name: "anchor both", pattern: "o+", haystack: "foo", start: 1, end: 3, anchored: true, anchorEnd: true, want: true},
		{name: "text start is context", pattern: "^bar", haystack: "foo bar", start: 4, end: 7},
		{name: "text end is context", pattern: "foo$", haystack: "foo bar", start: 0, end: 3},
		{name: "word boundary at window end", pattern: `foo\b`, haystack: "foobar", start: 0, end: 3},
		{name: "word boundary before space", pattern: `foo\b`, haystack: "foo bar", start: 0, end: 3, want: true},
		{name: "line end before newline", pattern: `(?m)foo$`, haystack: "foo\nbar", start: 0, end: 3, want: true},
		{name: "empty window", pattern: "", haystack: "abc", start: 1, end: 1, want: true},
		{name: "inverted window", pattern: "", haystack: "abc", start: 2, end: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustCompilePattern(t, tt.pattern)
			in := nfa.Input{
				Haystack:  []byte(tt.haystack),
				Start:     tt.start,
				End:       tt.end,
				Anchored:  tt.anchored,
				AnchorEnd: tt.anchorEnd,
			}
			got, err := d.IsMatch(d.NewCache(), in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("IsMatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWhichMatches(t *testing.T) {
	patterns := []string{"foo", "bar", `\d+`, "^x", `z\b`}
	res := make([]*syntax.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := syntax.Parse(p, syntax.Perl)
		if err != nil {
			t.Fatal(err)
		}
		res[i] = re
	}
	config := nfa.DefaultCompilerConfig()
	config.Captures = false
	program, err := nfa.NewCompiler(config).CompileSet(res)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Compile(program)
	if err != nil {
		t.Fatal(err)
	}
	cache := d.NewCache()

	tests := []struct {
		haystack  string
		anchored  bool
		anchorEnd bool
		want      []bool
	}{
		{"foo 12 bar", false, false, []bool{true, true, true, false, false}},
		{"xfoo", false, false, []bool{true, false, false, true, false}},
		{"baz qux", false, false, []bool{false, false, false, false, true}},
		{"bazqux", false, false, []bool{false, false, false, false, false}},
		{"foo", true, false, []bool{true, false, false, false, false}},
		{"1foo", true, false, []bool{false, false, true, false, false}},
		{"foo1", true, true, []bool{false, false, false, false, false}},
		{"123", true, true, []bool{false, false, true, false, false}},
		{"", false, false, []bool{false, false, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.haystack, func(t *testing.T) {
			in := nfa.NewInput([]byte(tt.haystack))
			in.Anchored, in.AnchorEnd = tt.anchored, tt.anchorEnd
			found := make([]bool, len(patterns))
			n, err := d.WhichMatches(cache, in, found)
			if err != nil {
				t.Fatal(err)
			}
			want := 0
			for i := range found {
				if found[i] != tt.want[i] {
					t.Errorf("pattern %q: found = %v, want %v", patterns[i], found[i], tt.want[i])
				}
				if tt.want[i] {
					want++
				}
			}
			if n != want {
				t.Errorf("WhichMatches() = %d, want %d", n, want)
			}
		})
	}
}

func TestCacheFull(t *testing.T) {
	config := DefaultConfig().WithMaxMemory(1).WithMaxCacheClears(0)
	d, err := CompilePatternWithConfig(`[a-z]+\d`, config)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.IsMatch(d.NewCache(), nfa.NewInput([]byte("abcdef1")))
	if !errors.Is(err, ErrCacheFull) {
		t.Fatalf("IsMatch() error = %v, want ErrCacheFull", err)
	}
}

func TestCacheClearsAndRecovers(t *testing.T) {
	config := DefaultConfig().WithMaxMemory(1).WithMaxCacheClears(1000)
	d, err := CompilePatternWithConfig(`[a-z]+\d`, config)
	if err != nil {
		t.Fatal(err)
	}
	cache := d.NewCache()
	got, err := d.IsMatch(cache, nfa.NewInput([]byte("abc1")))
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("IsMatch() = false, want true")
	}
	if cache.ClearCount() == 0 {
		t.Error("expected the cache to be cleared")
	}
	if cache.Size() > 2 {
		t.Errorf("Size() = %d, want at most 2", cache.Size())
	}
}

func TestCacheReuse(t *testing.T) {
	d := mustCompilePattern(t, "ab+c")
	cache := d.NewCache()
	for i := 0; i < 3; i++ {
		got, err := d.IsMatch(cache, nfa.NewInput([]byte("xxabbbc")))
		if err != nil || !got {
			t.Fatalf("run %d: IsMatch() = %v, %v", i, got, err)
		}
	}
	size := cache.Size()
	if size == 0 || cache.MemoryUsage() == 0 {
		t.Fatal("cache should hold states")
	}
	if _, err := d.IsMatch(cache, nfa.NewInput([]byte("xxabbbc"))); err != nil {
		t.Fatal(err)
	}
	if cache.Size() != size {
		t.Errorf("Size() grew from %d to %d on a repeated search", size, cache.Size())
	}

	cache.Reset()
	if cache.Size() != 0 || cache.MemoryUsage() != 0 {
		t.Error("Reset() should drop all states")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero memory", DefaultConfig().WithMaxMemory(0), true},
		{"negative clears", DefaultConfig().WithMaxCacheClears(-1), true},
		{"no clears", DefaultConfig().WithMaxCacheClears(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v is not ErrInvalidConfig", err)
			}
		})
	}
}

func TestDFAError(t *testing.T) {
	cause := errors.New("boom")
	err := &DFAError{Kind: InvalidConfig, Message: "bad", Cause: cause}
	if err.Error() != "bad: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should unwrap to the cause")
	}
	if errors.Is(err, ErrCacheFull) {
		t.Error("InvalidConfig error should not match ErrCacheFull")
	}
	if CacheFull.String() != "CacheFull" || ErrorKind(9).String() != "UnknownErrorKind(9)" {
		t.Error("unexpected ErrorKind strings")
	}
}

func TestCompilePattern_Error(t *testing.T) {
	_, err := CompilePattern("a(")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("CompilePattern() error = %v", err)
	}
}

func TestStartKind(t *testing.T) {
	h := []byte("a\n_ ")
	want := []StartKind{StartText, StartWord, StartLineLF, StartWord, StartNonWord}
	for pos, k := range want {
		if got := kindAt(h, pos); got != k {
			t.Errorf("kindAt(%d) = %s, want %s", pos, got, k)
		}
	}
}
