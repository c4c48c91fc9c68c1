package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"reise/internal/cliflags"
)

func main() {
	cmd := newRootCommand()
	cmd.SetArgs(cliflags.Preprocess(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
