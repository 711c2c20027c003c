package re2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
		rewrite string
		want    string
	}{
		{"woo", "o", "a", "wao"},
		{"woo", "x", "a", "woo"},
		{"hello there", `(\w+) (\w+)`, `\2 \1`, "there hello"},
		{"abc", `b`, `[\0]`, "a[b]c"},
		{"abc", `b`, `\\`, `a\c`},
		{"abc", `(x)?b`, `<\1>`, "a<>c"},
		{"日本語", `本`, "-", "日-語"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Replace(tt.text, MustCompile(tt.pattern), tt.rewrite)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGlobalReplace(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
		rewrite string
		want    string
		count   int
	}{
		{"woo", "o", "a", "waa", 2},
		{"woo", "x", "a", "woo", 0},
		{"abc", ``, "-", "-a-b-c-", 4},
		{"baaac", `a*`, "-", "-b-c-", 3},
		{"日本", ``, "-", "-日-本-", 3},
		{"a=1 b=2", `(\w)=(\d)`, `\2=\1`, "1=a 2=b", 2},
		{"aaa", `a`, "", "", 3},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, n, err := GlobalReplace(tt.text, MustCompile(tt.pattern), tt.rewrite)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, n)
		})
	}
}

func TestReplace_RewriteErrors(t *testing.T) {
	re := MustCompile(`(a)`)

	_, err := Replace("a", re, `\2`)
	var rerr *RewriteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "rewrite string requests 2 matches, but the regexp only has 1 parenthesized subexpressions", rerr.Error())
	assert.Equal(t, `\2`, rerr.Rewrite)

	_, _, err = GlobalReplace("a", re, `\x`)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "invalid rewrite pattern", rerr.Error())

	_, err = Replace("a", re, `trailing\`)
	assert.ErrorAs(t, err, &rerr)
}

func TestReplace_InvalidPattern(t *testing.T) {
	re := New("(", quiet())
	got, err := Replace("abc", re, "x")
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "abc", got)

	got, n, err := GlobalReplace("abc", re, "x")
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "abc", got)
	assert.Zero(t, n)
}

func TestReplaceString(t *testing.T) {
	got, err := ReplaceString("one two", `(\w+)`, `<\1>`)
	require.NoError(t, err)
	assert.Equal(t, "<one> two", got)

	got, n, err := GlobalReplaceString("one two", `(\w+)`, `<\1>`)
	require.NoError(t, err)
	assert.Equal(t, "<one> <two>", got)
	assert.Equal(t, 2, n)

	_, err = ReplaceString("x", `(`, "y")
	assert.Error(t, err)
	_, _, err = GlobalReplaceString("x", `(`, "y")
	assert.Error(t, err)
}
