package nfa

import (
	"regexp"
	"regexp/syntax"
	"testing"
)

// TestPikeVM_MatchesStdlib checks leftmost-first submatches against the
// standard library, which uses the same semantics.
func TestPikeVM_MatchesStdlib(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
	}{
		{"foo", "foo bar foo"},
		{"", "abc"},
		{"", ""},
		{"a+", "baaab"},
		{"a*?", "aaa"},
		{"a+?", "aaa"},
		{"(a|ab)(c|bcd)(d*)", "abcd"},
		{`(\d+)-(\d+)`, "tel: 555-1234"},
		{`(\w+)@(\w+)\.com`, "mail bob@example.com now"},
		{"(a)|(b)", "xb"},
		{"(a)?b", "b"},
		{"x*", "yyy"},
		{"^abc", "abcabc"},
		{"abc$", "abcabc"},
		{"(?m)^b", "a\nb"},
		{"(?m)a$", "a\nb"},
		{`\bfoo\b`, "afoo foo"},
		{`\Boo`, "foo"},
		{"[^a]+", "aabca"},
		{"(?i)hello", "HeLLo"},
		{"(?s)a.b", "a\nb"},
		{"a.b", "a\nb axb"},
		{"привет|мир", "всем мир"},
		{"[α-ω]+", "abc αβγ"},
		{`(?P<y>\d{4})-(?P<m>\d{2})`, "on 2024-05-01"},
		{"(a*)+", "b"},
		{"(a|b)*c", "ababc"},
		{"a{2,3}", "aaaa"},
		{"😀+", "x😀😀y"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.haystack, func(t *testing.T) {
			vm := NewPikeVM(mustCompile(t, tt.pattern))
			slots := make([]int, vm.SlotCount())
			found := vm.Search(vm.NewState(), NewInput([]byte(tt.haystack)), slots)

			want := regexp.MustCompile(tt.pattern).FindStringSubmatchIndex(tt.haystack)
			if found != (want != nil) {
				t.Fatalf("Search() = %v, stdlib found = %v", found, want != nil)
			}
			if !found {
				return
			}
			if len(slots) != len(want) {
				t.Fatalf("slots = %d, stdlib = %d", len(slots), len(want))
			}
			for i := range want {
				if slots[i] != want[i] {
					t.Fatalf("slots = %v, want %v", slots, want)
				}
			}
		})
	}
}

func TestPikeVM_Window(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		haystack   string
		start, end int
		anchored   bool
		anchorEnd  bool
		want       []int
	}{
		{name: "skip first match", pattern: "foo", haystack: "foo bar foo", start: 3, end: 11, want: []int{8, 11}},
		{name: "window cuts match", pattern: "foo", haystack: "foo", start: 0, end: 2},
		{name: "anchored at start", pattern: "b", haystack: "abc", start: 1, end: 3, anchored: true, want: []int{1, 2}},
		{name: "anchored misses", pattern: "c", haystack: "abc", start: 1, end: 3, anchored: true},
		{name: "anchor both", pattern: "b+", haystack: "abbbc", start: 1, end: 4, anchored: true, anchorEnd: true, want: []int{1, 4}},
		{name: "anchor end only", pattern: "b", haystack: "abab", start: 0, end: 4, anchorEnd: true, want: []int{3, 4}},
		{name: "anchor end misses", pattern: "a", haystack: "abab", start: 0, end: 4, anchorEnd: true},
		{name: "anchor end suffix", pattern: "b", haystack: "abab", start: 0, end: 2, anchorEnd: true, want: []int{1, 2}},
		// assertions see bytes outside the window
		{name: "start text inside window", pattern: "^b", haystack: "ab", start: 1, end: 2},
		{name: "end text inside window", pattern: "a$", haystack: "ab", start: 0, end: 1},
		{name: "word boundary context", pattern: `\bb`, haystack: "ab", start: 1, end: 2},
		{name: "line start context", pattern: "(?m)^b", haystack: "a\nb", start: 2, end: 3, want: []int{2, 3}},
		{name: "empty window", pattern: "", haystack: "abc", start: 2, end: 2, want: []int{2, 2}},
		{name: "inverted window", pattern: "", haystack: "abc", start: 2, end: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := NewPikeVM(mustCompile(t, tt.pattern))
			slots := make([]int, 2)
			in := Input{
				Haystack:  []byte(tt.haystack),
				Start:     tt.start,
				End:       tt.end,
				Anchored:  tt.anchored,
				AnchorEnd: tt.anchorEnd,
			}
			found := vm.Search(vm.NewState(), in, slots)
			if found != (tt.want != nil) {
				t.Fatalf("Search() = %v, want %v", found, tt.want != nil)
			}
			if found && (slots[0] != tt.want[0] || slots[1] != tt.want[1]) {
				t.Errorf("match = %v, want %v", slots, tt.want)
			}
			if got := vm.IsMatch(vm.NewState(), in); got != found {
				t.Errorf("IsMatch() = %v, Search() = %v", got, found)
			}
		})
	}
}

func TestPikeVM_Longest(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		want     []int
	}{
		{"a|ab", "ab", []int{0, 2}},
		{"(a|ab)(c|bcd)", "abcd", []int{0, 4, 0, 1, 1, 4}},
		{"a*?", "aaa", []int{0, 3}},
		{"b+|a+b+", "xaabb", []int{1, 5}},
		{"", "abc", []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			vm := NewPikeVMWithConfig(mustCompile(t, tt.pattern), PikeVMConfig{Longest: true})
			slots := make([]int, len(tt.want))
			if !vm.Search(vm.NewState(), NewInput([]byte(tt.haystack)), slots) {
				t.Fatal("no match")
			}
			for i := range tt.want {
				if slots[i] != tt.want[i] {
					t.Fatalf("slots = %v, want %v", slots, tt.want)
				}
			}
		})
	}
}

func TestPikeVM_Latin1(t *testing.T) {
	vm := NewPikeVM(mustCompileLatin1(t, "[à-ÿ]+"))
	slots := make([]int, 2)
	if !vm.Search(vm.NewState(), NewInput([]byte{'a', 0xE9, 0xE8, 'b'}), slots) {
		t.Fatal("no match")
	}
	if slots[0] != 1 || slots[1] != 3 {
		t.Errorf("match = %v, want [1 3]", slots)
	}

	// code points above 0xFF never match in Latin-1
	vm = NewPikeVM(mustCompileLatin1(t, "aĀ|b"))
	if !vm.Search(vm.NewState(), NewInput([]byte("ab")), slots) || slots[0] != 1 {
		t.Errorf("match = %v, want [1 2]", slots)
	}
}

func TestPikeVM_WhichMatches(t *testing.T) {
	res := []string{"foo", "bar", `\d+`, "^x", "z$"}
	parsed := make([]*syntax.Regexp, len(res))
	for i, p := range res {
		parsed[i] = mustParse(t, p)
	}
	config := DefaultCompilerConfig()
	config.Captures = false
	nfa, err := NewCompiler(config).CompileSet(parsed)
	if err != nil {
		t.Fatal(err)
	}
	vm := NewPikeVM(nfa)

	tests := []struct {
		haystack  string
		anchored  bool
		anchorEnd bool
		want      []bool
	}{
		{"foo 12 bar", false, false, []bool{true, true, true, false, false}},
		{"xfoo", false, false, []bool{true, false, false, true, false}},
		{"foo", true, false, []bool{true, false, false, false, false}},
		{"afoo", true, false, []bool{false, false, false, false, false}},
		{"foox", true, true, []bool{false, false, false, false, false}},
		{"12", true, true, []bool{false, false, true, false, false}},
		{"baz", false, false, []bool{false, false, false, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.haystack, func(t *testing.T) {
			found := make([]bool, len(res))
			in := NewInput([]byte(tt.haystack))
			in.Anchored, in.AnchorEnd = tt.anchored, tt.anchorEnd
			n := vm.WhichMatches(vm.NewState(), in, found)
			count := 0
			for i := range found {
				if found[i] != tt.want[i] {
					t.Errorf("pattern %q: found = %v, want %v", res[i], found[i], tt.want[i])
				}
				if tt.want[i] {
					count++
				}
			}
			if n != count {
				t.Errorf("WhichMatches() = %d, want %d", n, count)
			}
		})
	}
}

func TestPikeVM_StateReuse(t *testing.T) {
	vm := NewPikeVM(mustCompile(t, `(\w+)`))
	st := vm.NewState()
	slots := make([]int, vm.SlotCount())
	for _, h := range []string{"hello world", "  abc", "!!", "x"} {
		want := regexp.MustCompile(`(\w+)`).FindStringSubmatchIndex(h)
		found := vm.Search(st, NewInput([]byte(h)), slots)
		if found != (want != nil) {
			t.Fatalf("%q: Search() = %v", h, found)
		}
		if found && (slots[0] != want[0] || slots[1] != want[1]) {
			t.Fatalf("%q: slots = %v, want %v", h, slots, want)
		}
	}
}
