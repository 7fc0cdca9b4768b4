package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/globcheck/pkg/globopts"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue represents a single validation problem.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity `json:"severity"`
	// Kind is the diagnostic class, "TypeError" or "Error".
	Kind string `json:"kind,omitempty"`
	// Field identifies the option with the issue (optional).
	Field string `json:"field,omitempty"`
	// Message is a human-readable description of the problem.
	Message string `json:"message"`
	// Value is the printable form of the offending value (optional).
	Value any `json:"value,omitempty"`
	// Context carries extra detail such as the composite option key.
	Context map[string]string `json:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		sb.WriteString("field \"")
		sb.WriteString(i.Field)
		sb.WriteString("\": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates validation issues for one source document.
type Result struct {
	// Source names the validated document, usually a file path.
	Source string  `json:"source,omitempty"`
	Issues []Issue `json:"issues"`
}

// FromDiagnostics converts glob option diagnostics into a Result. Type
// mismatches are errors; everything else is a warning.
func FromDiagnostics(source string, diags []*globopts.Diagnostic) *Result {
	r := &Result{Source: source, Issues: []Issue{}}
	for _, d := range diags {
		issue := Issue{
			Severity: SeverityWarning,
			Kind:     d.Kind.String(),
			Field:    d.Option,
			Message:  d.Message,
		}
		if d.IsTypeError() {
			issue.Severity = SeverityError
		}
		if d.Value != nil {
			issue.Value = globopts.Inspect(d.Value)
		}
		if d.Key != "" {
			issue.Context = map[string]string{"key": d.Key}
		}
		r.Issues = append(r.Issues, issue)
	}
	return r
}

// Passed reports whether the result is acceptable. In strict mode warnings
// count as failures too.
func (r *Result) Passed(strict bool) bool {
	if r.HasErrors() {
		return false
	}
	return !strict || !r.HasWarnings()
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// AddInfo adds an informational note to the result. Notes never fail it.
func (r *Result) AddInfo(field, message string, value any) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityInfo,
		Field:    field,
		Message:  message,
		Value:    value,
	})
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns a slice of all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// Infos returns a slice of all issues with SeverityInfo.
func (r *Result) Infos() []Issue {
	return r.filter(SeverityInfo)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}
