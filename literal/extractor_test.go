package literal

import (
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, config ExtractorConfig, pattern string) *Seq {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	require.NoError(t, err)
	return New(config).ExtractPrefixes(re)
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern  string
		infinite bool
		want     []string
		exact    bool
	}{
		{pattern: "hello", want: []string{"hello"}, exact: true},
		{pattern: "(foo|bar)", want: []string{"foo", "bar"}, exact: true},
		{pattern: `(foo|bar)\w+`, want: []string{"foo", "bar"}},
		{pattern: "[ab]c", want: []string{"ac", "bc"}, exact: true},
		{pattern: "^foo", want: []string{"foo"}, exact: true},
		{pattern: `\bfoo\b`, want: []string{"foo"}, exact: true},
		{pattern: "ab*c", want: []string{"a"}},
		{pattern: "ab+c", want: []string{"ab"}},
		{pattern: "a{3}", want: []string{"a"}},
		{pattern: "a*b", infinite: true},
		{pattern: "a?b", infinite: true},
		{pattern: ".foo", infinite: true},
		{pattern: "[a-z]foo", infinite: true},
		{pattern: "(?i)ab", want: []string{"AB", "Ab", "aB", "ab"}, exact: true},
		{pattern: "foo|.*", infinite: true},
		{pattern: "héllo", want: []string{"héllo"}, exact: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq := extract(t, DefaultConfig(), tt.pattern)
			if tt.infinite {
				assert.False(t, seq.IsFinite(), "got %v", seq.Strings())
				return
			}
			require.True(t, seq.IsFinite())
			assert.ElementsMatch(t, tt.want, seq.Strings())
			assert.Equal(t, tt.exact, seq.IsExact())
		})
	}
}

func TestExtractPrefixes_EmptyAlternative(t *testing.T) {
	seq := extract(t, DefaultConfig(), `foo|\b`)
	require.True(t, seq.IsFinite())
	assert.True(t, seq.HasEmpty())
}

func TestExtractPrefixes_Limits(t *testing.T) {
	config := DefaultConfig()
	config.MaxLiterals = 4
	seq := extract(t, config, "[abc][def]")
	require.True(t, seq.IsFinite())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seq.Strings())
	assert.False(t, seq.IsExact())

	config = DefaultConfig()
	config.MaxLiteralLen = 3
	seq = extract(t, config, "abcdef")
	assert.Equal(t, []string{"abc"}, seq.Strings())
	assert.False(t, seq.IsExact())
}

func TestExtractPrefixes_Latin1(t *testing.T) {
	config := DefaultConfig()
	config.Latin1 = true

	seq := extract(t, config, "é")
	assert.Equal(t, []string{"\xe9"}, seq.Strings())

	// a code point without a Latin-1 encoding cannot match
	seq = extract(t, config, "aĀ")
	assert.True(t, seq.IsEmpty())

	seq = extract(t, config, "aĀ|b")
	assert.Equal(t, []string{"b"}, seq.Strings())
}
