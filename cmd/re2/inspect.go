package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coregx/re2"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect PATTERN",
	Short: "Describe a compiled pattern",
	Long: `Compile PATTERN with the root flags and print what became of it: whether
it is valid, its diagnostics, program size, groups and options.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts, err := patternOptions()
	if err != nil {
		return err
	}
	re := patternCache.Get(args[0], opts)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "pattern\t%s\n", re.Inspect())
	fmt.Fprintf(w, "ok\t%t\n", re.Ok())
	if !re.Ok() {
		fmt.Fprintf(w, "error\t%s\n", re.Error())
		fmt.Fprintf(w, "error_arg\t%s\n", re.ErrorArg())
		fmt.Fprintf(w, "error_code\t%d (%s)\n", int(re.ErrorCode()), re.ErrorCode())
	}
	fmt.Fprintf(w, "program_size\t%d\n", re.ProgramSize())
	fmt.Fprintf(w, "groups\t%d\n", re.NumberOfCapturingGroups())
	fmt.Fprintf(w, "named_groups\t%s\n", formatNamed(re.NamedCapturingGroups()))
	fmt.Fprintf(w, "max_mem\t%s\n", re.Options().MaxMem.HumanReadable())
	fmt.Fprintf(w, "options\t%s\n", formatOptions(re))
	return w.Flush()
}

// formatNamed renders named groups by index, e.g. "year=1 month=2".
func formatNamed(named map[string]int) string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return named[names[i]] < named[names[j]] })

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, named[name])
	}
	return strings.Join(parts, " ")
}

// formatOptions lists the boolean options that are set.
func formatOptions(re *re2.Regexp) string {
	var set []string
	for _, o := range []struct {
		name string
		on   bool
	}{
		{"utf8", re.UTF8()},
		{"posix_syntax", re.PosixSyntax()},
		{"longest_match", re.LongestMatch()},
		{"literal", re.Literal()},
		{"never_nl", re.NeverNL()},
		{"dot_nl", re.DotNL()},
		{"never_capture", re.NeverCapture()},
		{"case_sensitive", re.CaseSensitive()},
		{"perl_classes", re.PerlClasses()},
		{"word_boundary", re.WordBoundary()},
		{"one_line", re.OneLine()},
	} {
		if o.on {
			set = append(set, o.name)
		}
	}
	return strings.Join(set, " ")
}
