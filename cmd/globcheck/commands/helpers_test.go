package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/globcheck/internal/config"
)

// isolateConfig keeps the commands away from any real config file.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvPrefix+"_CONFIG_DIR", dir)
	t.Chdir(t.TempDir())
	return dir
}

// resetFlags restores every flag variable and clears the Changed markers
// cobra leaves behind between executions of rootCmd.
func resetFlags() {
	verbosity, quiet, logFormat, logFile, configPath = 0, false, "text", "", ""
	validateFormat, validateStrict, validateJSON, validateSuggest, validateDisallow = "", false, false, false, nil
	optionsJSON, optionsInteractive = false, false
	configInitForce = false

	clearChanged := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		clearChanged(c.Flags())
		clearChanged(c.PersistentFlags())
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// executeCommand runs rootCmd with args and returns what it wrote to stdout.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(stdin)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	if errOut.Len() > 0 {
		t.Logf("stderr:\n%s", errOut.String())
	}
	return out.String(), err
}

// writeDoc writes content to name inside a fresh temp directory.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
