package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan PATTERN [FILE]",
	Short: "Print the groups of every match",
	Long: `Step through the non-overlapping matches of PATTERN in the input and
print the capture groups of each, one match per line. Unset and empty
groups print as nil.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	re, err := compile(args[0])
	if err != nil {
		return err
	}
	path := stdinName
	if len(args) > 1 {
		path = args[1]
	}
	text, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	n := 0
	for groups := range re.Scan(text).All() {
		fmt.Fprintln(out, formatGroups(groups))
		n++
	}
	if n == 0 {
		return errNoMatch
	}
	return nil
}

// formatGroups renders groups as ["a", nil].
func formatGroups(groups [][]byte) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		if g == nil {
			parts[i] = "nil"
		} else {
			parts[i] = strconv.Quote(string(g))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
