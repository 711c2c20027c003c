package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/coregx/re2"
)

var setJobs int

var setCmd = &cobra.Command{
	Use:   "set FILE.yaml [INPUT...]",
	Short: "Match a set of patterns at once",
	Long: `Load a pattern set from a YAML file and print, for every line of the
inputs, the names of the patterns that match it. Inputs are processed
concurrently. Reads standard input when no input is given.

The set file looks like:

  anchor: unanchored
  options:
    case_sensitive: false
    max_mem: 8MB
  patterns:
    - name: error
      pattern: 'error|fatal'
    - name: ip
      pattern: '\d+\.\d+\.\d+\.\d+'

Root pattern flags do not apply to sets; use options instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func init() {
	setCmd.Flags().IntVarP(&setJobs, "jobs", "j", runtime.GOMAXPROCS(0), "Inputs processed at once")
}

// setFile is the YAML layout of a pattern set.
type setFile struct {
	Anchor   re2.Anchor     `yaml:"anchor"`
	Options  map[string]any `yaml:"options"`
	Patterns []setPattern   `yaml:"patterns"`
}

// setPattern keeps the pattern as decoded so that a scalar YAML reads as a
// number or a bool is reported instead of silently stringified.
type setPattern struct {
	Name    string `yaml:"name"`
	Pattern any    `yaml:"pattern"`
}

// patternSet is a compiled set with the names of its patterns by ordinal.
type patternSet struct {
	set   *re2.Set
	names []string
}

func loadSet(path string) (*patternSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening set: %w", err)
	}
	defer f.Close()

	ps, err := decodeSet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info("Loaded pattern set", "file", path, "patterns", ps.set.Size(), "anchor", ps.set.Anchor())
	return ps, nil
}

// decodeSet reads and compiles a set file. Unknown keys are errors.
func decodeSet(r io.Reader) (*patternSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file setFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty set file")
		}
		return nil, fmt.Errorf("parsing set file: %w", err)
	}

	opts, err := re2.OptionsFromMap(file.Options)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	set, err := re2.NewSet(file.Anchor, opts)
	if err != nil {
		return nil, err
	}

	ps := &patternSet{set: set, names: make([]string, 0, len(file.Patterns))}
	for i, p := range file.Patterns {
		name := p.Name
		if name == "" {
			name = strconv.Itoa(i)
		}
		pattern, err := re2.Coerce(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", name, err)
		}
		if _, err := set.Add(string(pattern)); err != nil {
			return nil, fmt.Errorf("pattern %s: %w", name, err)
		}
		ps.names = append(ps.names, name)
	}
	if err := set.Compile(); err != nil {
		return nil, fmt.Errorf("compiling set: %w", err)
	}
	return ps, nil
}

// match returns the names of the patterns matching line.
func (ps *patternSet) match(line []byte) ([]string, error) {
	ids, err := ps.set.Match(line, re2.SetMatchOptions{})
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = ps.names[id]
	}
	return names, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	ps, err := loadSet(args[0])
	if err != nil {
		return err
	}
	paths := inputPaths(args[1:])

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(setJobs, 1))

	// results[i] holds the output lines of paths[i]
	results := make([][]string, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			err := withInput(cmd, path, func(r io.Reader) error {
				return eachLine(r, func(n int, line []byte) error {
					if err := ctx.Err(); err != nil {
						return err
					}
					names, err := ps.match(line)
					if err != nil || len(names) == 0 {
						return err
					}
					results[i] = append(results[i], fmt.Sprintf("%s:%d: %s", path, n, strings.Join(names, ",")))
					return nil
				})
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Debug("Matched input", "input", path, "lines", len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	matched := false
	for _, lines := range results {
		for _, line := range lines {
			fmt.Fprintln(out, line)
			matched = true
		}
	}
	if !matched {
		return errNoMatch
	}
	return nil
}
