package nfa

import (
	"errors"
	"regexp/syntax"
	"strings"
	"testing"
)

func mustCompile(t *testing.T, pattern string) *NFA {
	t.Helper()
	compiler := NewDefaultCompiler()
	nfa, err := compiler.Compile(pattern)
	if err != nil {
		t.Fatalf("failed to compile pattern %q: %v", pattern, err)
	}
	return nfa
}

func mustCompileLatin1(t *testing.T, pattern string) *NFA {
	t.Helper()
	config := DefaultCompilerConfig()
	config.UTF8 = false
	nfa, err := NewCompiler(config).Compile(pattern)
	if err != nil {
		t.Fatalf("failed to compile pattern %q: %v", pattern, err)
	}
	return nfa
}

func mustParse(t *testing.T, pattern string) *syntax.Regexp {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("failed to parse pattern %q: %v", pattern, err)
	}
	return re
}

func TestCompile_Patterns(t *testing.T) {
	patterns := []string{
		"", "a", "hello", "привет", "😀",
		"[a-z]", "[^a-z]", `\d+`, `\w*`, `\s?`,
		"a|b|c", "(a)(b)", "(?P<year>\\d{4})-(?P<month>\\d{2})",
		"^abc$", `\bfoo\b`, `\Bx`, "(?m)^a$", `\A\z`,
		"a{2,5}", "(?i)straße", "(?s).", "[^\\x00-\\x{10FFFF}]",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			nfa := mustCompile(t, pattern)
			if nfa.States() == 0 {
				t.Fatal("NFA has no states")
			}
			if nfa.StartAnchored() == InvalidState || nfa.StartUnanchored() == InvalidState {
				t.Fatal("NFA has invalid start state")
			}
			if nfa.PatternCount() != 1 {
				t.Errorf("PatternCount() = %d, want 1", nfa.PatternCount())
			}
		})
	}
}

func TestCompile_CaptureCountAndNames(t *testing.T) {
	nfa := mustCompile(t, `(?P<first>a)(b)(?P<third>c)`)
	if got := nfa.CaptureCount(); got != 4 {
		t.Fatalf("CaptureCount() = %d, want 4", got)
	}
	want := []string{"", "first", "", "third"}
	got := nfa.SubexpNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("SubexpNames() = %q, want %q", got, want)
	}

	config := DefaultCompilerConfig()
	config.Captures = false
	bare, err := NewCompiler(config).Compile(`(a)(b)`)
	if err != nil {
		t.Fatal(err)
	}
	if bare.CaptureCount() != 0 {
		t.Errorf("CaptureCount() without captures = %d, want 0", bare.CaptureCount())
	}
	for i := 0; i < bare.States(); i++ {
		if bare.State(StateID(i)).Kind() == StateCapture {
			t.Fatalf("state %d is a capture state", i)
		}
	}
}

func TestCompile_LookSet(t *testing.T) {
	tests := []struct {
		pattern string
		want    LookSet
	}{
		{"abc", 0},
		{"^abc", LookSet(LookStartText)},
		{"abc$", LookSet(LookEndText)},
		{"(?m)^a$", LookSet(LookStartLine).Insert(LookEndLine)},
		{`\bx\B`, LookSet(LookWordBoundary).Insert(LookNoWordBoundary)},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := mustCompile(t, tt.pattern).LookSet(); got != tt.want {
				t.Errorf("LookSet() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompile_MemoryLimit(t *testing.T) {
	config := DefaultCompilerConfig()
	config.MemoryLimit = 1024
	_, err := NewCompiler(config).Compile(`\w{50}`)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Compile() error = %v, want ErrTooLarge", err)
	}

	config.MemoryLimit = 1 << 20
	if _, err := NewCompiler(config).Compile(`\w{5}`); err != nil {
		t.Fatalf("Compile() under the limit failed: %v", err)
	}
}

func TestCompile_InvalidConfig(t *testing.T) {
	config := DefaultCompilerConfig()
	config.MemoryLimit = -1
	_, err := NewCompiler(config).Compile("a")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Compile() error = %v, want ErrInvalidConfig", err)
	}
}

func TestCompile_ParseError(t *testing.T) {
	_, err := NewDefaultCompiler().Compile("a(")
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Compile() error = %v, want *CompileError", err)
	}
	if ce.Pattern != "a(" {
		t.Errorf("Pattern = %q", ce.Pattern)
	}
}

func TestCompileSet(t *testing.T) {
	res := []*syntax.Regexp{mustParse(t, "foo"), mustParse(t, "bar"), mustParse(t, "[0-9]+")}
	config := DefaultCompilerConfig()
	config.Captures = false
	nfa, err := NewCompiler(config).CompileSet(res)
	if err != nil {
		t.Fatal(err)
	}
	if nfa.PatternCount() != 3 {
		t.Fatalf("PatternCount() = %d, want 3", nfa.PatternCount())
	}

	seen := map[int]bool{}
	for i := 0; i < nfa.States(); i++ {
		if p := nfa.State(StateID(i)).Pattern(); p >= 0 {
			seen[p] = true
		}
	}
	for i := 0; i < 3; i++ {
		if !seen[i] {
			t.Errorf("no match state for pattern %d", i)
		}
	}
}

func TestCompileSet_Empty(t *testing.T) {
	nfa, err := NewDefaultCompiler().CompileSet(nil)
	if err != nil {
		t.Fatal(err)
	}
	vm := NewPikeVM(nfa)
	if vm.WhichMatches(vm.NewState(), NewInput([]byte("abc")), nil) != 0 {
		t.Error("empty set matched")
	}
}

func TestByteClasses_FromProgram(t *testing.T) {
	nfa := mustCompile(t, "[a-z]+")
	bc := nfa.ByteClasses()
	if bc.Get('a') != bc.Get('z') {
		t.Error("'a' and 'z' should share a class")
	}
	if bc.Get('a') == bc.Get('A') {
		t.Error("'a' and 'A' should not share a class")
	}
	if bc.Get('{') == bc.Get('z') {
		t.Error("'{' and 'z' should not share a class")
	}

	// assertions split out the bytes they inspect
	words := mustCompile(t, `\bx`).ByteClasses()
	if words.Get('\n') == words.Get(' ') {
		t.Error("newline should have its own class when assertions are used")
	}
}

func TestState_Step(t *testing.T) {
	b := NewBuilder()
	target := b.AddMatch(0)
	sparse := b.AddSparse([]Transition{
		{Lo: 'a', Hi: 'c', Next: target},
		{Lo: 'x', Hi: 'x', Next: target},
	})
	rng := b.AddByteRange('0', '9', target)
	b.SetStarts(sparse, sparse)
	nfa, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		state StateID
		b     byte
		want  StateID
	}{
		{sparse, 'a', target},
		{sparse, 'c', target},
		{sparse, 'd', InvalidState},
		{sparse, 'x', target},
		{sparse, 'z', InvalidState},
		{rng, '5', target},
		{rng, 'a', InvalidState},
		{target, 'a', InvalidState},
	}
	for _, tt := range tests {
		if got := nfa.State(tt.state).Step(tt.b); got != tt.want {
			t.Errorf("State(%d).Step(%q) = %d, want %d", tt.state, tt.b, got, tt.want)
		}
	}
}

func TestBuilder_Validate(t *testing.T) {
	b := NewBuilder()
	if _, err := b.Build(); err == nil {
		t.Fatal("Build() without start states succeeded")
	}

	b = NewBuilder()
	eps := b.AddEpsilon(42)
	b.SetStarts(eps, eps)
	_, err := b.Build()
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("Build() error = %v, want *BuildError", err)
	}
	if be.StateID != eps {
		t.Errorf("StateID = %d, want %d", be.StateID, eps)
	}
}

func TestBuilder_Patch(t *testing.T) {
	b := NewBuilder()
	m := b.AddMatch(0)
	split := b.AddSplit(InvalidState, InvalidState)
	if err := b.Patch(split, m); err == nil {
		t.Error("Patch() on a split state succeeded")
	}
	if err := b.PatchSplit(m, m, m); err == nil {
		t.Error("PatchSplit() on a match state succeeded")
	}
	if err := b.Patch(99, m); err == nil {
		t.Error("Patch() out of bounds succeeded")
	}
}

func TestNFA_String(t *testing.T) {
	s := mustCompile(t, "ab").String()
	if !strings.Contains(s, "patterns: 1") || !strings.Contains(s, "utf8: true") {
		t.Errorf("String() = %q", s)
	}
	if mustCompile(t, "a").MemoryUsage() <= 0 {
		t.Error("MemoryUsage() should be positive")
	}
}
