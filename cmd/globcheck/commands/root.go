// Package commands implements the CLI commands for globcheck.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/globcheck/cmd"
	"github.com/thoreinstein/globcheck/internal/config"
	"github.com/thoreinstein/globcheck/internal/errors"
	"github.com/thoreinstein/globcheck/internal/logging"
	"github.com/thoreinstein/globcheck/internal/paths"
)

// debugEnv raises verbosity when no -v flag is given: "1" or "true" for
// debug, "2" for trace.
const debugEnv = config.EnvPrefix + "_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// loaded is the configuration read by initConfig.
var loaded *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml, then ~/.config/globcheck/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("globcheck version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()

	path := configPath
	if path != "" {
		expanded, err := paths.ExpandHome(path)
		if err != nil {
			loaded, configLoadErr = nil, err
			return
		}
		path = expanded
	}
	loaded, configLoadErr = config.Load(path)
}

// settings returns the loaded configuration, or the defaults when loading
// was skipped.
func settings() *config.Config {
	if loaded == nil {
		return config.Default()
	}
	return loaded
}

var rootCmd = &cobra.Command{
	Use:   "globcheck",
	Short: "Validate glob option documents",
	Long: `globcheck checks option objects meant for the glob file-matching engine
before they reach it.

Option documents are read from JSON, YAML or TOML files. Each option is
checked against the engine's schema: value types, cache entry shapes,
deprecated and misspelled option names, and conflicting combinations.`,
	Example: `  # Validate a document
  globcheck validate glob.json

  # Fail on warnings too, and report unknown option names
  globcheck validate --strict --suggest opts.yaml

  # Read from stdin
  cat opts.json | globcheck validate --format json -

  See Also: globcheck options, globcheck config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}

	if logFile != "" {
		path, err := paths.ExpandHome(logFile)
		if err != nil {
			return errors.NewUserError(err, "check the --log-file path")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		cfg.Mirror = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a broken config file, except to commands that do not
// read it.
func checkConfig(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "init", "edit":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	logging.FromContext(cmd.Context()).Debug("configuration loaded", "file", config.FileUsed())
	return nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
