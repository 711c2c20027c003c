package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coregx/re2"
)

var (
	matchAnchor     string
	matchSubmatches bool
	matchCount      bool
)

var matchCmd = &cobra.Command{
	Use:   "match PATTERN [FILE...]",
	Short: "Print lines that match a pattern",
	Long: `Print every line of the inputs that contains a match of PATTERN, with
the match highlighted. Reads standard input when no file is given. Exits
with status 1 when no line matched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchAnchor, "anchor", re2.Unanchored.String(), "Anchoring: unanchored, anchor_start, anchor_both")
	matchCmd.Flags().BoolVarP(&matchSubmatches, "submatches", "s", false, "Print the groups of every match")
	matchCmd.Flags().BoolVarP(&matchCount, "count", "c", false, "Print only the number of matching lines")
}

func runMatch(cmd *cobra.Command, args []string) error {
	re, err := compile(args[0])
	if err != nil {
		return err
	}
	anchor, err := re2.ParseAnchor(matchAnchor)
	if err != nil {
		return err
	}

	s := newStyles()
	out := cmd.OutOrStdout()
	paths := inputPaths(args[1:])
	opts := re2.MatchOptions{End: re2.EndOfText, Anchor: anchor, Submatches: re2.AllSubmatches}
	if matchCount {
		opts.Submatches = 0
	}

	total := 0
	for _, path := range paths {
		count := 0
		err := withInput(cmd, path, func(r io.Reader) error {
			return eachLine(r, func(n int, line []byte) error {
				res, err := re.Match(line, opts)
				if err != nil {
					return err
				}
				if !res.IsMatch() {
					return nil
				}
				count++
				if matchCount {
					return nil
				}
				if len(paths) > 1 {
					fmt.Fprint(out, s.name.Sprint(path), ":")
				}
				printMatch(out, s, line, res.Match)
				return nil
			})
		})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if matchCount {
			if len(paths) > 1 {
				fmt.Fprint(out, s.name.Sprint(path), ":")
			}
			fmt.Fprintln(out, count)
		}
		total += count
	}

	if total == 0 {
		return errNoMatch
	}
	return nil
}

// printMatch writes line with the match highlighted, then its groups when
// --submatches is set.
func printMatch(w io.Writer, s *styles, line []byte, m *re2.MatchResult) {
	begin, end, _ := m.Span(0)
	fmt.Fprintf(w, "%s%s%s\n", line[:begin], s.match.Sprint(string(line[begin:end])), line[end:])
	if !matchSubmatches {
		return
	}
	for i := 1; i < m.Len(); i++ {
		g, ok := m.GroupString(i)
		text := "nil"
		if ok {
			text = fmt.Sprintf("%q", g)
		}
		fmt.Fprintf(w, "\t%s %s\n", s.group.Sprintf("%d:", i), text)
	}
}
