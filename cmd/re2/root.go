package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/c2h5oh/datasize"
	"github.com/fatih/color"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"

	"github.com/coregx/re2"
	"github.com/coregx/re2/simd"
)

// cacheSize bounds the patterns compiled during one run.
const cacheSize = 64

// errNoMatch makes the process exit with status 1 without a message, as
// grep does when nothing matched.
var errNoMatch = errors.New("no match")

var (
	verbose   bool
	quiet     bool
	colorMode string

	posix      bool
	longest    bool
	latin1     bool
	ignoreCase bool
	literal    bool
	neverNL    bool
	dotNL      bool
	oneLine    bool
	maxMem     string
)

var patternCache *re2.Cache

var rootCmd = &cobra.Command{
	Use:   "re2",
	Short: "Linear-time regular expressions",
	Long: `re2 matches, scans and rewrites text with regular expressions in RE2
syntax. Matching never backtracks: it runs in time linear in the size of
the input, whatever the pattern.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	flags.StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")

	flags.BoolVar(&posix, "posix", false, "Use the POSIX egrep dialect")
	flags.BoolVar(&longest, "longest", false, "Leftmost-longest instead of leftmost-first matches")
	flags.BoolVar(&latin1, "latin1", false, "Read patterns and text as Latin-1")
	flags.BoolVarP(&ignoreCase, "ignore-case", "i", false, "Fold case")
	flags.BoolVarP(&literal, "literal", "F", false, "Treat the pattern as a literal string")
	flags.BoolVar(&neverNL, "never-nl", false, "Never match a newline")
	flags.BoolVar(&dotNL, "dot-nl", false, "Let . match a newline")
	flags.BoolVar(&oneLine, "one-line", false, "POSIX ^ and $ match only at text boundaries")
	flags.StringVar(&maxMem, "max-mem", re2.DefaultMaxMem.String(), "Memory budget per pattern, e.g. 8MB")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(inspectCmd)

	var err error
	if patternCache, err = re2.NewCache(cacheSize); err != nil {
		panic(err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	setupLogging(cmd.ErrOrStderr())
	log.Debug("Byte search", "kernel", simd.Kernel())
	return setupColor()
}

// setupLogging sends the root logger to w, filtered by --verbose and
// --quiet.
func setupLogging(w io.Writer) {
	lvl := log.LvlWarn
	switch {
	case verbose:
		lvl = log.LvlDebug
	case quiet:
		lvl = log.LvlError
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(w, log.LogfmtFormat())))
}

func setupColor() error {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		// color decides from the terminal and NO_COLOR
	default:
		return fmt.Errorf("unknown color mode: %s", colorMode)
	}
	return nil
}

// patternOptions builds the options selected by the root flags.
func patternOptions() (re2.Options, error) {
	size, err := datasize.ParseString(maxMem)
	if err != nil {
		return re2.Options{}, fmt.Errorf("parsing --max-mem %q: %w", maxMem, err)
	}
	opts := re2.DefaultOptions().
		WithPosixSyntax(posix).
		WithLongestMatch(longest).
		WithUTF8(!latin1).
		WithCaseSensitive(!ignoreCase).
		WithLiteral(literal).
		WithNeverNL(neverNL).
		WithDotNL(dotNL).
		WithOneLine(oneLine).
		WithMaxMem(size).
		WithLogErrors(verbose)
	return opts, opts.Validate()
}

// compile returns the cached pattern for the root flags.
func compile(pattern string) (*re2.Regexp, error) {
	opts, err := patternOptions()
	if err != nil {
		return nil, err
	}
	re := patternCache.Get(pattern, opts)
	if !re.Ok() {
		return nil, fmt.Errorf("compiling %q: %w", pattern, re.Err())
	}
	log.Debug("Compiled pattern", "pattern", pattern, "program_size", re.ProgramSize(), "groups", re.NumberOfCapturingGroups())
	return re, nil
}

// styles holds the color formatters of match output.
type styles struct {
	name  *color.Color
	match *color.Color
	group *color.Color
}

func newStyles() *styles {
	return &styles{
		name:  color.New(color.FgMagenta),
		match: color.New(color.Bold, color.FgRed),
		group: color.New(color.FgHiBlue),
	}
}
