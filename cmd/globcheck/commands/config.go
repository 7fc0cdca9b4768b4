package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/globcheck/internal/backup"
	"github.com/thoreinstein/globcheck/internal/config"
	"github.com/thoreinstein/globcheck/internal/editor"
	"github.com/thoreinstein/globcheck/internal/errors"
	"github.com/thoreinstein/globcheck/internal/logging"
	"github.com/thoreinstein/globcheck/internal/paths"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show globcheck configuration",
	Long: `Show the effective configuration: values from the config file, overridden
by GLOBCHECK_* environment variables, with defaults for anything unset.

Without a subcommand, prints the settings in YAML format followed by the
file they were read from.`,
	Example: `  # Show the effective configuration
  globcheck config

  # Create a config file with the defaults
  globcheck config init

See Also: globcheck validate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout(), settings(), config.FileUsed())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default settings",
	Long: `Write a config file holding the default settings.

The file is created at ~/.config/globcheck/config.yaml (or
$GLOBCHECK_CONFIG_DIR/config.yaml) unless a path is given. An existing file
is left alone unless --force is set.`,
	Example: `  # Create the user config
  globcheck config init

  # Create a project config
  globcheck config init ./config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(config.Dir(), config.FileName)
		if len(args) == 1 {
			path = args[0]
		}
		return runConfigInit(cmd.OutOrStdout(), path, configInitForce)
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration in $EDITOR",
	Long: `Open the configuration file in your default editor, creating it with the
default settings first if needed. The file is validated once the editor exits.

Uses $EDITOR, then $VISUAL, falling back to nano or vi.`,
	Example: `  # Open config in default editor
  globcheck config edit

  # Open with specific editor
  EDITOR=nano globcheck config edit

See Also: globcheck config init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := config.FileUsed()
		if path == "" {
			path = filepath.Join(config.Dir(), config.FileName)
		}
		streams := editor.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
		return runConfigEdit(cmd.Context(), path, streams)
	},
}

func runConfigShow(w io.Writer, cfg *config.Config, file string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding config")
	}

	if file == "" {
		fmt.Fprintln(w, "# no config file found; showing defaults")
	} else {
		fmt.Fprintf(w, "# read from %s\n", file)
	}
	return nil
}

func runConfigEdit(ctx context.Context, path string, streams editor.Streams) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Write(path, config.Default()); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "creating config"), "")
		}
	} else if err := backupConfig(streams.Out, path); err != nil {
		return err
	}

	fmt.Fprintf(streams.Out, "Location: %s\n", path)
	if err := editor.Open(ctx, path, streams); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your preferred editor")
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewUserError(
			errors.Wrapf(err, "%s is invalid", path),
			"Run: globcheck config edit")
	}
	logging.FromContext(ctx).Info("configuration saved", "file", path)
	return nil
}

func runConfigInit(w io.Writer, path string, force bool) error {
	path, err := paths.ExpandHome(path)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	if _, err := os.Stat(path); err == nil {
		if !force {
			return errors.NewUserError(
				errors.Newf("config file already exists at %s", path),
				"Use --force to overwrite it")
		}
		if err := backupConfig(w, path); err != nil {
			return err
		}
	}

	if err := config.Write(path, config.Default()); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config"), "")
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

// backupConfig snapshots path before a command overwrites it.
func backupConfig(w io.Writer, path string) error {
	snap, err := backup.NewManager(config.BackupDir()).Backup(path)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "backing up config"), "")
	}
	fmt.Fprintf(w, "Backed up %s to %s\n", path, snap.Path)
	return nil
}
