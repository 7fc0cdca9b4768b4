package globopts

import (
	"github.com/cockroachdb/errors"
)

// Kind is the severity class of a diagnostic.
type Kind int

const (
	// KindError marks a semantic or advisory problem.
	KindError Kind = iota
	// KindTypeError marks a structural or type mismatch.
	KindTypeError
)

func (k Kind) String() string {
	if k == KindTypeError {
		return "TypeError"
	}
	return "Error"
}

// Diagnostic reports one way a candidate deviates from the option schema.
type Diagnostic struct {
	// Kind separates type mismatches from semantic problems.
	Kind Kind
	// Option is the top-level option the diagnostic is about, if any.
	Option string
	// Key is the entry of a composite option at fault, if any.
	Key string
	// Value is the offending value.
	Value any
	// Message is the human-readable description.
	Message string
	// Err is the error an extension validator returned, if any.
	Err error
}

// NewTypeError returns a TypeError diagnostic, for use by extension validators.
func NewTypeError(message string) *Diagnostic {
	return &Diagnostic{Kind: KindTypeError, Message: message}
}

// NewError returns an Error diagnostic, for use by extension validators.
func NewError(message string) *Diagnostic {
	return &Diagnostic{Kind: KindError, Message: message}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Message
}

// String renders the diagnostic with its kind, e.g. "TypeError: ...".
func (d *Diagnostic) String() string {
	return d.Kind.String() + ": " + d.Message
}

// Unwrap returns the error an extension validator returned.
func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// IsTypeError reports whether the diagnostic is a type mismatch.
func (d *Diagnostic) IsTypeError() bool {
	return d.Kind == KindTypeError
}

// typeErrorReporter lets foreign error types classify themselves.
type typeErrorReporter interface {
	TypeError() bool
}

// fromError turns an extension validator's error into a diagnostic.
func fromError(err error) *Diagnostic {
	if d, ok := err.(*Diagnostic); ok {
		return d
	}

	kind := KindError
	var inner *Diagnostic
	var reporter typeErrorReporter
	switch {
	case errors.As(err, &inner):
		kind = inner.Kind
	case errors.As(err, &reporter) && reporter.TypeError():
		kind = KindTypeError
	}
	return &Diagnostic{Kind: kind, Message: err.Error(), Err: err}
}
