package globopts

import (
	"fmt"
)

const (
	objectExpected   = "Expected glob options to be an object"
	cacheExpected    = "Expected every value in the `cache` option to be true, false, 'FILE', 'DIR' or an array"
	realpathExpected = "Expected every value in the `realpathCache` option to be a string"
	statExpected     = "Expected every value in the `statCache` option to be a file status"
	symlinkExpected  = "Expected every value in the `symlinks` option to be Boolean"
	ignoreExpected   = "Expected every value in the `ignore` option to be a string"
)

// Validator is an extension check run after the built-in ones. It returns nil
// when it has nothing to report. A returned *Diagnostic is kept as is; any
// other error becomes a KindError diagnostic.
type Validator func(opts any) error

// checker inspects one concern of an object-like candidate.
type checker func(opts any) []*Diagnostic

// pipeline is the fixed order in which field checks run.
var pipeline = []checker{
	checkDeprecated,
	checkPathOptions,
	checkBooleanOptions,
	checkMarkWithNodir,
	checkCache,
	checkRealpathCache,
	checkStatCache,
	checkSymlinks,
	checkIgnore,
	checkTypos,
}

// Validate reports every problem with opts, followed by the diagnostics of
// the given extension validators in order. Nil validators are skipped.
// The result is empty, never nil, when nothing is wrong.
func Validate(opts any, validators ...Validator) []*Diagnostic {
	diags, done := check(opts)
	if done {
		return diags
	}
	for _, v := range validators {
		if v == nil {
			continue
		}
		if err := v(opts); !isFalsy(err) {
			diags = append(diags, fromError(err))
		}
	}
	return diags
}

// ValidateArgs is the dynamically typed form of [Validate]. It takes up to two
// positional arguments, the options and a slice of validators, and returns an
// error marked with [ErrContractViolation] when the call itself is malformed.
//
// Validators may be a [Validator], a func(any) error or a func(any) any. The
// last form must return a falsy value or an error; anything else is a
// contract violation.
func ValidateArgs(args ...any) ([]*Diagnostic, error) {
	if len(args) > 2 {
		return nil, errArity(len(args))
	}

	var opts any = Undefined
	if len(args) > 0 {
		opts = args[0]
	}

	var exts []extension
	// A nil list means no validators.
	if len(args) == 2 && kindOf(args[1]) != kindNull {
		var err error
		if exts, err = extensions(args[1]); err != nil {
			return nil, err
		}
	}

	diags, done := check(opts)
	if done {
		return diags, nil
	}
	for _, ext := range exts {
		res := ext(opts)
		if isFalsy(res) {
			continue
		}
		err, ok := res.(error)
		if !ok {
			return nil, errReturnValue(res)
		}
		diags = append(diags, fromError(err))
	}
	return diags, nil
}

// check runs the shape guard and, for object-like candidates, every field
// checker. done reports that the shape guard already settled the result.
func check(opts any) (diags []*Diagnostic, done bool) {
	if d, stop := checkShape(opts); stop {
		if d == nil {
			return []*Diagnostic{}, true
		}
		return []*Diagnostic{d}, true
	}

	diags = []*Diagnostic{}
	for _, c := range pipeline {
		diags = append(diags, c(opts)...)
	}
	return diags, false
}

func checkShape(opts any) (*Diagnostic, bool) {
	if isString(opts) && stringValue(opts) == "" {
		return &Diagnostic{
			Kind:    KindTypeError,
			Value:   opts,
			Message: fmt.Sprintf("%s, but got %s.", objectExpected, emptyStringDesc),
		}, true
	}
	if isFalsy(opts) {
		return nil, true
	}
	if !isObjectLike(opts) || isArray(opts) {
		return &Diagnostic{
			Kind:    KindTypeError,
			Value:   opts,
			Message: fmt.Sprintf("%s, but got %s.", objectExpected, Inspect(opts)),
		}, true
	}
	return nil, false
}

func checkDeprecated(opts any) []*Diagnostic {
	val, ok := property(opts, deprecatedSync)
	if !ok {
		return nil
	}
	return []*Diagnostic{{
		Kind:   KindError,
		Option: deprecatedSync,
		Value:  val,
		Message: fmt.Sprintf("`sync` option is deprecated and there's no need to pass any values to that option, "+
			"but %s was provided.", Inspect(val)),
	}}
}

func checkPathOptions(opts any) []*Diagnostic {
	return checkScalars(opts, pathOptions, isString, OptionPath)
}

func checkBooleanOptions(opts any) []*Diagnostic {
	return checkScalars(opts, booleanOptions, isBool, OptionBoolean)
}

func checkScalars(opts any, names []string, valid func(any) bool, kind OptionKind) []*Diagnostic {
	var diags []*Diagnostic
	for _, name := range names {
		val, ok := property(opts, name)
		if !ok || valid(val) {
			continue
		}
		diags = append(diags, &Diagnostic{
			Kind:    KindTypeError,
			Option:  name,
			Value:   val,
			Message: fmt.Sprintf("glob expected `%s` option to be a %s, but got %s.", name, kind, Inspect(val)),
		})
	}
	return diags
}

// checkMarkWithNodir rejects mark, which only tags directories, together with
// nodir, which drops them.
func checkMarkWithNodir(opts any) []*Diagnostic {
	mark, _ := property(opts, "mark")
	nodir, _ := property(opts, "nodir")
	if !isTrue(mark) || !isTrue(nodir) {
		return nil
	}
	return []*Diagnostic{{
		Kind:   KindTypeError,
		Option: "mark",
		Value:  mark,
		Message: "Expected `mark` option not to be `true` when `nodir` option is `true`, because there is " +
			"no need to differentiate directory paths from file paths when `nodir` option is enabled, but got `true`.",
	}}
}

func isTrue(v any) bool {
	return isBool(v) && !isFalsy(v)
}

// mappingOption returns the value of a composite option, or a diagnostic when
// it is present but not a plain mapping.
func mappingOption(opts any, name string) (any, *Diagnostic) {
	val, ok := property(opts, name)
	if !ok {
		return nil, nil
	}
	if !isMapping(val) {
		return nil, &Diagnostic{
			Kind:    KindTypeError,
			Option:  name,
			Value:   val,
			Message: fmt.Sprintf("glob expected `%s` option to be an object, but got %s.", name, Inspect(val)),
		}
	}
	return val, nil
}

// eachEntry runs fn for every entry of the named composite option.
func eachEntry(opts any, name string, fn func(key string, val any) *Diagnostic) []*Diagnostic {
	m, d := mappingOption(opts, name)
	if d != nil {
		return []*Diagnostic{d}
	}
	if m == nil {
		return nil
	}

	var diags []*Diagnostic
	for _, key := range keys(m) {
		if d := fn(key, entry(m, key)); d != nil {
			d.Option, d.Key = name, key
			diags = append(diags, d)
		}
	}
	return diags
}

func checkCache(opts any) []*Diagnostic {
	return eachEntry(opts, "cache", func(key string, val any) *Diagnostic {
		switch {
		case isString(val):
			if s := stringValue(val); s == "FILE" || s == "DIR" {
				return nil
			}
			return &Diagnostic{
				Kind:    KindError,
				Value:   val,
				Message: fmt.Sprintf("%s, but found an invalid string %s in `%s` property.", cacheExpected, Inspect(val), key),
			}
		case isBool(val), isArray(val):
			return nil
		}
		return &Diagnostic{
			Kind:    KindTypeError,
			Value:   val,
			Message: fmt.Sprintf("%s, but found an invalid value %s in `%s` property.", cacheExpected, Inspect(val), key),
		}
	})
}

func checkRealpathCache(opts any) []*Diagnostic {
	return eachEntry(opts, "realpathCache", func(key string, val any) *Diagnostic {
		if isString(val) {
			return nil
		}
		return &Diagnostic{
			Kind:    KindTypeError,
			Value:   val,
			Message: fmt.Sprintf("%s, but found a non-string value %s in `%s` property.", realpathExpected, Inspect(val), key),
		}
	})
}

func checkStatCache(opts any) []*Diagnostic {
	return eachEntry(opts, "statCache", func(key string, val any) *Diagnostic {
		if !isObjectLike(val) || isArray(val) {
			return &Diagnostic{
				Kind:    KindTypeError,
				Value:   val,
				Message: fmt.Sprintf("%s, but found an invalid value %s in `%s` property.", statExpected, Inspect(val), key),
			}
		}
		if hasNumericMode(val) {
			return nil
		}
		return &Diagnostic{
			Kind:  KindError,
			Value: val,
			Message: fmt.Sprintf("%s, but found an invalid object %s in `%s` property, which doesn't have a valid file mode.",
				statExpected, Inspect(val), key),
		}
	})
}

func checkSymlinks(opts any) []*Diagnostic {
	return eachEntry(opts, "symlinks", func(key string, val any) *Diagnostic {
		if isBool(val) {
			return nil
		}
		return &Diagnostic{
			Kind:    KindTypeError,
			Value:   val,
			Message: fmt.Sprintf("%s, but found an invalid value %s in `%s` property.", symlinkExpected, Inspect(val), key),
		}
	})
}

func checkIgnore(opts any) []*Diagnostic {
	val, ok := property(opts, "ignore")
	if !ok || isString(val) {
		return nil
	}
	if !isArray(val) {
		return []*Diagnostic{{
			Kind:    KindTypeError,
			Option:  "ignore",
			Value:   val,
			Message: fmt.Sprintf("glob expected `ignore` option to be an array or string, but got %s.", Inspect(val)),
		}}
	}

	var diags []*Diagnostic
	for _, pattern := range elements(val) {
		if isString(pattern) {
			continue
		}
		diags = append(diags, &Diagnostic{
			Kind:    KindTypeError,
			Option:  "ignore",
			Value:   pattern,
			Message: fmt.Sprintf("%s, but the array includes a non-string value %s.", ignoreExpected, Inspect(pattern)),
		})
	}
	return diags
}

func checkTypos(opts any) []*Diagnostic {
	var diags []*Diagnostic
	for _, key := range keys(opts) {
		correct, ok := typos[key]
		if !ok {
			continue
		}
		diags = append(diags, &Diagnostic{
			Kind:    KindError,
			Option:  key,
			Value:   entry(opts, key),
			Message: fmt.Sprintf("glob doesn't have `%s` option. Probably you meant `%s`.", key, correct),
		})
	}
	return diags
}
