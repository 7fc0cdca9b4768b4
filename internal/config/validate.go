package config

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/globcheck/pkg/globopts"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates the version field is not one this build reads.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidFormat indicates an unknown report format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrUnknownOption indicates a disallow entry that is not a glob option.
	ErrUnknownOption = errors.New("unknown option in disallow")

	// ErrInvalidSize indicates a non-positive size limit.
	ErrInvalidSize = errors.New("max_file_size must be positive")
)

// CurrentVersion is the config file version this build reads.
const CurrentVersion = 1

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: cfg.Version, Err: ErrUnsupportedVersion})
	}

	switch cfg.Format {
	case "", "text", "json":
	default:
		errs = append(errs, &FieldError{Field: "format", Value: cfg.Format, Err: ErrInvalidFormat})
	}

	for _, name := range cfg.Disallow {
		if _, ok := globopts.Lookup(name); !ok {
			errs = append(errs, &FieldError{Field: "disallow", Value: name, Err: ErrUnknownOption})
		}
	}

	if cfg.MaxFileSize <= 0 {
		errs = append(errs, &FieldError{Field: "max_file_size", Value: cfg.MaxFileSize, Err: ErrInvalidSize})
	}

	return errs
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
