package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/re2"
)

var quoteCmd = &cobra.Command{
	Use:   "quote TEXT",
	Short: "Print a pattern matching TEXT literally",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), re2.QuoteMeta(args[0]))
	return err
}
