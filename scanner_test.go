package re2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll drains s and returns each match's groups.
func scanAll(s *Scanner) [][]any {
	var out [][]any
	for groups := range s.All() {
		out = append(out, groupStrings(groups))
	}
	return out
}

func TestScanner_Scan(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    [][]any
	}{
		{"groups", `(\w+)`, "It is a truth", [][]any{{"It"}, {"is"}, {"a"}, {"truth"}}},
		{"no groups", `\w+`, "Foo bar", [][]any{{}, {}}},
		{"no match", `\d+`, "Foo bar", nil},
		{"empty pattern empty text", ``, "", [][]any{{}}},
		{"empty group empty text", `()`, "", [][]any{{nil}}},
		{"empty pattern", ``, "Foo", [][]any{{}, {}, {}, {}}},
		{"empty group", `()`, "Foo", [][]any{{nil}, {nil}, {nil}, {nil}}},
		{"empty groups", `()()()`, "Foo", [][]any{{nil, nil, nil}, {nil, nil, nil}, {nil, nil, nil}, {nil, nil, nil}}},
		{"multibyte", `()€`, "€", [][]any{{nil}}},
		{"empty multibyte", `()`, "€€", [][]any{{nil}, {nil}, {nil}}},
		{"empty after match", `a*`, "baaa", [][]any{{}, {}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustCompile(tt.pattern).ScanString(tt.text)
			assert.Equal(t, tt.want, scanAll(s))

			groups, ok := s.Scan()
			assert.False(t, ok)
			assert.Nil(t, groups)
		})
	}
}

func TestScanner_Rewind(t *testing.T) {
	s := MustCompile(`(\d)`).ScanString("There are 1 some 2 numbers 3")

	groups, ok := s.Scan()
	require.True(t, ok)
	assert.Equal(t, "1", string(groups[0]))
	groups, ok = s.Scan()
	require.True(t, ok)
	assert.Equal(t, "2", string(groups[0]))

	s.Rewind()
	assert.Equal(t, 0, s.Pos())
	groups, ok = s.Scan()
	require.True(t, ok)
	assert.Equal(t, "1", string(groups[0]))

	// All resumes where Scan stopped
	assert.Equal(t, [][]any{{"2"}, {"3"}}, scanAll(s))
}

func TestScanner_EOF(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		scan    bool
		want    bool
	}{
		{"not consumed", `(\d)`, "1 2 3", false, false},
		{"consumed", `(\d)`, "1", true, true},
		{"no match", `(\d)`, "a", true, false},
		{"empty text not scanned", ``, "", false, false},
		{"empty text not matched", `(\d)`, "", true, false},
		{"empty text matched", ``, "", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustCompile(tt.pattern).ScanString(tt.text)
			if tt.scan {
				s.Scan()
			}
			assert.Equal(t, tt.want, s.EOF())
		})
	}

	s := MustCompile(`(\d)`).ScanString("1")
	s.Scan()
	require.True(t, s.EOF())
	s.Rewind()
	assert.False(t, s.EOF())
}

func TestScanner_Accessors(t *testing.T) {
	re := MustCompile(`b`)
	s := re.ScanString("abc")
	assert.Same(t, re, s.Regexp())
	assert.Equal(t, "abc", string(s.Text()))

	_, ok := s.Scan()
	require.True(t, ok)
	assert.Equal(t, 2, s.Pos())
}

func TestScanner_AllStops(t *testing.T) {
	s := MustCompile(`\d`).ScanString("1 2 3")
	for range s.All() {
		break
	}
	assert.Equal(t, 1, s.Pos())
	assert.Len(t, scanAll(s), 2)
}

func TestScanner_Invalid(t *testing.T) {
	s := New("(", quiet()).ScanString("abc")
	_, ok := s.Scan()
	assert.False(t, ok)
	assert.False(t, s.EOF())
}

func TestScanner_Latin1(t *testing.T) {
	re := New(``, quiet().WithUTF8(false))
	require.True(t, re.Ok())
	// every byte is a character
	assert.Len(t, scanAll(re.ScanString("€")), 4)
}
