package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScan(t *testing.T) {
	resetFlags(t)
	out, err := run(t, runScan, "a=1 b= c=3", `(\w)=(\d)?`)
	require.NoError(t, err)
	assert.Equal(t, "[\"a\", \"1\"]\n[\"b\", nil]\n[\"c\", \"3\"]\n", out)

	out, err = run(t, runScan, "Foo", `()`)
	require.NoError(t, err)
	assert.Equal(t, "[nil]\n[nil]\n[nil]\n[nil]\n", out)

	_, err = run(t, runScan, "abc", `\d`)
	assert.ErrorIs(t, err, errNoMatch)
}

func TestRunScan_File(t *testing.T) {
	resetFlags(t)
	path := writeFile(t, "in.txt", "x1 y2")
	out, err := run(t, runScan, "", `(\w)\d`, path)
	require.NoError(t, err)
	assert.Equal(t, "[\"x\"]\n[\"y\"]\n", out)
}

func TestFormatGroups(t *testing.T) {
	assert.Equal(t, "[]", formatGroups(nil))
	assert.Equal(t, `["a\n", nil]`, formatGroups([][]byte{[]byte("a\n"), nil}))
}

func TestRunReplace(t *testing.T) {
	tests := []struct {
		name    string
		global  bool
		pattern string
		rewrite string
		in      string
		want    string
	}{
		{"first", false, `(\w+)@(\w+)`, `\2 at \1`, "mail bob@example or amy@test", "mail example at bob or amy@test"},
		{"global", true, `(\w+)@(\w+)`, `\2 at \1`, "mail bob@example or amy@test", "mail example at bob or test at amy"},
		{"no match", true, `\d`, "#", "none", "none"},
		{"empty matches", true, ``, "-", "ab", "-a-b-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			replaceGlobal = tt.global
			out, err := run(t, runReplace, tt.in, tt.pattern, tt.rewrite)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRunReplace_BadRewrite(t *testing.T) {
	resetFlags(t)
	_, err := run(t, runReplace, "abc", `(b)`, `\2`)
	assert.ErrorContains(t, err, "rewrite string requests 2 matches")
}

func TestRunQuote(t *testing.T) {
	resetFlags(t)
	out, err := run(t, runQuote, "", "1.5-2.0?")
	require.NoError(t, err)
	assert.Equal(t, "1\\.5\\-2\\.0\\?\n", out)
}

func TestRunInspect(t *testing.T) {
	resetFlags(t)
	out, err := run(t, runInspect, "", `(?P<year>\d{4})-(?P<month>\d{2})`)
	require.NoError(t, err)

	assert.Regexp(t, `(?m)^ok\s+true$`, out)
	assert.Regexp(t, `(?m)^groups\s+2$`, out)
	assert.Regexp(t, `(?m)^named_groups\s+year=1 month=2$`, out)
	assert.Regexp(t, `(?m)^max_mem\s+8\.0 MB$`, out)
	assert.Regexp(t, `(?m)^options\s+utf8 case_sensitive$`, out)
	assert.Regexp(t, `(?m)^program_size\s+\d+$`, out)
	assert.NotContains(t, out, "error")
}

func TestRunInspect_Invalid(t *testing.T) {
	resetFlags(t)
	ignoreCase = true
	out, err := run(t, runInspect, "", `wo(o`)
	require.NoError(t, err)

	assert.Regexp(t, `(?m)^ok\s+false$`, out)
	assert.Regexp(t, `(?m)^error\s+missing \): wo\(o$`, out)
	assert.Regexp(t, `(?m)^error_arg\s+wo\(o$`, out)
	assert.Regexp(t, `(?m)^error_code\s+6 \(missing \)\)$`, out)
	assert.Regexp(t, `(?m)^program_size\s+-1$`, out)
	assert.Regexp(t, `(?m)^options\s+utf8$`, out)
}
