package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// New returns an error with a stack trace.
func New(msg string) error {
	return crdb.NewWithDepth(1, msg)
}

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...any) error {
	return crdb.NewWithDepthf(1, format, args...)
}

// Wrap annotates err with msg. It returns nil when err is nil.
func Wrap(err error, msg string) error {
	return crdb.WrapWithDepth(1, err, msg)
}

// Wrapf annotates err with a formatted message. It returns nil when err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.WrapWithDepthf(1, err, format, args...)
}

// WithHint attaches a user-facing hint to err.
func WithHint(err error, hint string) error {
	return crdb.WithHint(err, hint)
}

// Hints returns the hints attached anywhere in err's chain.
func Hints(err error) string {
	return crdb.FlattenHints(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return crdb.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return crdb.As(err, target)
}

// Mark makes err match reference under Is without changing its message.
func Mark(err, reference error) error {
	return crdb.Mark(err, reference)
}
