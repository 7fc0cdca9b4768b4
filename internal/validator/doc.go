// Package validator turns glob option diagnostics into reportable results.
//
// It defines shared types for representing validation issues (errors,
// warnings, info) per validated document and writes them as text or JSON.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes between blocking errors and non-blocking warnings.
//   - [Issue]: Represents a single validation problem with option context.
//   - [Result]: Aggregates the issues of one document and provides helper methods.
//   - [Reporter]: Writes one or many results in a [Format].
//
// # Basic Usage
//
//	diags := globopts.Validate(opts)
//	result := validator.FromDiagnostics("opts.json", diags)
//
//	reporter := validator.NewReporter(os.Stdout, validator.FormatText)
//	if err := reporter.Report(result); err != nil {
//		return err
//	}
//
//	if !result.Passed(strict) {
//		// handle validation failure
//	}
//
// Type mismatches become [SeverityError] issues; semantic problems such as
// typos or deprecated options become [SeverityWarning] issues, which only fail
// validation in strict mode.
package validator
