// Package config provides configuration management for globcheck using Viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	globerrors "github.com/thoreinstein/globcheck/internal/errors"
	"github.com/thoreinstein/globcheck/internal/paths"
	"github.com/thoreinstein/globcheck/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "globcheck"

// EnvPrefix prefixes every environment variable that overrides a setting.
const EnvPrefix = "GLOBCHECK"

// FileName is the base name of the configuration file.
const FileName = "config.yaml"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`
	// Format is the default report format, "text" or "json".
	Format string `mapstructure:"format" yaml:"format"`
	// Strict makes warnings fail validation.
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// SuggestUnknown reports option names the schema does not know.
	SuggestUnknown bool `mapstructure:"suggest_unknown" yaml:"suggest_unknown"`
	// Disallow lists options that are rejected even though they are valid.
	Disallow []string `mapstructure:"disallow" yaml:"disallow"`
	// MaxFileSize bounds how many bytes are read from one document.
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:     1,
		Format:      "text",
		Disallow:    []string{},
		MaxFileSize: fileutil.MaxFileSize,
	}
}

// Dir returns the directory searched for the configuration file.
// GLOBCHECK_CONFIG_DIR overrides the XDG location.
func Dir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	return paths.ConfigDir(AppName)
}

// BackupDir returns where copies of overwritten config files are kept.
func BackupDir() string {
	return filepath.Join(Dir(), "backups")
}

// Init initializes Viper with default configuration.
// It clears any state left by a previous Init or Load, so it is safe to call
// again (for example between tests).
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(Dir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("format", def.Format)
	viper.SetDefault("strict", def.Strict)
	viper.SetDefault("suggest_unknown", def.SuggestUnknown)
	viper.SetDefault("disallow", def.Disallow)
	viper.SetDefault("max_file_size", def.MaxFileSize)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), globerrors.ErrNotFound)
		}
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Real read error (parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
		// Implicit load without a file: defaults apply
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), globerrors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// FileUsed returns the configuration file that was read, if any.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// Write saves cfg as YAML at path, creating the parent directory.
func Write(path string, cfg *Config) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return errors.Mark(errors.Wrap(errs[0], "validating config"), globerrors.ErrInvalidConfig)
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	return fileutil.AtomicWriteYAMLWithPerm(path, cfg, 0o600)
}
