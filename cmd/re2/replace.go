package main

import (
	"fmt"

	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"

	"github.com/coregx/re2"
)

var replaceGlobal bool

var replaceCmd = &cobra.Command{
	Use:   "replace PATTERN REWRITE [FILE]",
	Short: "Rewrite matches of a pattern",
	Long: `Replace the first match of PATTERN in the input with REWRITE, or every
match with --global, and print the result. In REWRITE, \0 is the whole
match, \1 to \9 are groups and \\ is a backslash.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().BoolVarP(&replaceGlobal, "global", "g", false, "Replace every match")
}

func runReplace(cmd *cobra.Command, args []string) error {
	re, err := compile(args[0])
	if err != nil {
		return err
	}
	path := stdinName
	if len(args) > 2 {
		path = args[2]
	}
	text, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	var out string
	if replaceGlobal {
		var n int
		out, n, err = re2.GlobalReplace(string(text), re, args[1])
		log.Debug("Replaced matches", "count", n)
	} else {
		out, err = re2.Replace(string(text), re, args[1])
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
