package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
)

// maxLineSize bounds one line of line-oriented input.
const maxLineSize = 16 * datasize.MB

// stdinName stands for standard input in file arguments.
const stdinName = "-"

// inputPaths returns paths, or standard input when there are none.
func inputPaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{stdinName}
	}
	return paths
}

// withInput calls fn with the contents of path.
func withInput(cmd *cobra.Command, path string, fn func(r io.Reader) error) error {
	if path == stdinName {
		return fn(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()
	return fn(f)
}

// readInput returns the whole of path.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var data []byte
	err := withInput(cmd, path, func(r io.Reader) error {
		var err error
		data, err = io.ReadAll(r)
		return err
	})
	return data, err
}

// eachLine calls fn with every line of r and its 1-based number. The line
// excludes its terminator and is only valid during the call.
func eachLine(r io.Reader, fn func(n int, line []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*datasize.KB), int(maxLineSize.Bytes()))
	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, sc.Bytes()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", n+1, err)
	}
	return nil
}
