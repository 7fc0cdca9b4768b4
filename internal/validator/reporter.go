package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat resolves a report format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Newf("unknown report format %q (want text or json)", name)
}

// maxValueWidth bounds how much of an offending value is printed in text output.
const maxValueWidth = 50

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
	strict bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithStrict makes warnings fail the validation.
func WithStrict(strict bool) ReporterOption {
	return func(r *Reporter) {
		r.strict = strict
	}
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		out:    out,
		format: format,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.encode(result)
	default:
		r.reportText(result)
		return nil
	}
}

// jsonSummary is the JSON document written for several results.
type jsonSummary struct {
	Passed  bool      `json:"passed"`
	Strict  bool      `json:"strict"`
	Results []*Result `json:"results"`
}

// ReportAll writes several results, one per validated document.
func (r *Reporter) ReportAll(results []*Result) error {
	if r.format == FormatJSON {
		return r.encode(jsonSummary{
			Passed:  AllPassed(results, r.strict),
			Strict:  r.strict,
			Results: results,
		})
	}

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.reportText(result)
	}
	return nil
}

// AllPassed reports whether every result passed.
func AllPassed(results []*Result, strict bool) bool {
	for _, res := range results {
		if !res.Passed(strict) {
			return false
		}
	}
	return true
}

func (r *Reporter) encode(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(v), "encoding JSON report")
}

// reportText writes the result as human-readable text.
func (r *Reporter) reportText(result *Result) {
	prefix := ""
	if result.Source != "" {
		prefix = result.Source + ": "
	}

	errs := result.Errors()
	warnings := result.Warnings()
	infos := result.Infos()

	if len(errs) == 0 && len(warnings) == 0 && len(infos) == 0 {
		fmt.Fprintln(r.out, prefix+color.GreenString("✓ Validation passed"))
		return
	}

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	if len(infos) > 0 {
		summary = append(summary, fmt.Sprintf("%d note(s)", len(infos)))
	}

	verdict := "Validation failed"
	if result.Passed(r.strict) {
		verdict = "Validation passed with findings"
	}
	fmt.Fprintf(r.out, "%s%s: %s\n\n", prefix, verdict, strings.Join(summary, ", "))

	r.printSection("Errors:", errs, color.FgRed)
	r.printSection("Warnings:", warnings, color.FgYellow)
	r.printSection("Notes:", infos, color.FgCyan)
}

func (r *Reporter) printSection(title string, issues []Issue, c color.Attribute) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(r.out, title)
	for _, i := range issues {
		r.printIssue(i, c)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • [field] message (context) [value]

	var sb strings.Builder
	sb.WriteString("  • ")

	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	}

	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		var ctxParts []string
		for k, v := range i.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%s", k, v))
		}
		// Sort for deterministic output
		sort.Strings(ctxParts)

		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(ctxParts, ", ")))
	}

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		if len(valStr) > maxValueWidth {
			valStr = valStr[:maxValueWidth-3] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
