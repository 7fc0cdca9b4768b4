// Package main is the entry point for the globcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/globcheck/cmd/globcheck/commands"
	"github.com/thoreinstein/globcheck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitUser)
	}

	// A failed validation has already been reported on stdout.
	if exitErr.Err != nil && !errors.Is(exitErr.Err, errors.ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		if hint := errors.Hints(exitErr.Err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
	}
	if exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(exitErr.Code)
}
