// Package globopts validates glob search options before they are handed to a
// path-matching engine.
//
// The validator never mutates, coerces or repairs its input. It inspects an
// arbitrary value and reports every deviation from the option schema as a
// [Diagnostic], so a caller can collect all problems in one pass.
//
// # Basic Usage
//
//	opts := globopts.NewObject().
//		Set("cwd", "/src").
//		Set("nodir", true).
//		Set("ignore", []any{"node_modules/**"})
//
//	for _, d := range globopts.Validate(opts) {
//		fmt.Println(d)
//	}
//
// An empty result means no problems were found.
//
// # Diagnostics
//
// Each diagnostic has a [Kind]. [KindTypeError] marks structural or type
// mismatches (a Boolean option holding a number). [KindError] marks semantic
// or advisory problems: an invalid enum string, a typo, a deprecated option or
// a broken status record. Callers may fail hard on the first kind and warn on
// the second.
//
// # Value Model
//
// Options are usually a [*Object], which keeps keys in insertion order, but any
// Go map with string keys is accepted; its keys are visited in sorted order.
// Slices and arrays are arrays, except []byte which is treated as a byte
// buffer. [Undefined] stands for a key that is present but has no value. A nil
// interface is null.
//
// # Extension Validators
//
// Callers can append their own checks:
//
//	diags := globopts.Validate(opts,
//		globopts.SuggestUnknown(),
//		func(opts any) error {
//			return nil
//		},
//	)
//
// Extension diagnostics always follow the built-in ones, in the order the
// validators were passed.
//
// [ValidateArgs] is the dynamically typed entry point. It accepts positional
// arguments the way a scripting host would pass them and reports misuse of the
// call itself as an error marked with [ErrContractViolation] instead of a
// diagnostic.
package globopts
