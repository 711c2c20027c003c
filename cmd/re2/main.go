package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, "re2:", err)
		}
		os.Exit(1)
	}
}
