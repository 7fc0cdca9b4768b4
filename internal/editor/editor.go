// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Streams are the terminal streams handed to the editor process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Command returns the editor invocation for path. The editor setting may
// carry arguments, e.g. EDITOR="code --wait".
func Command(ctx context.Context, path string) *exec.Cmd {
	argv := strings.Fields(detectEditor())
	return exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
}

// Open edits path and waits for the editor to exit.
func Open(ctx context.Context, path string, s Streams) error {
	cmd := Command(ctx, path)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Args[0])
	}
	return nil
}

// detectEditor returns the editor command line to use.
// Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// POSIX standard fallback
	return "vi"
}
