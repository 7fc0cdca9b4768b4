package globopts

// extension is the normalized form of a caller-supplied validator: it returns
// a falsy value or an error, and anything else is a contract violation.
type extension func(opts any) any

// extensions checks that list is an array of callable validators and
// normalizes them. Every offending element is reported at once.
func extensions(list any) ([]extension, error) {
	if !isArray(list) {
		return nil, errNotArray(list)
	}

	items := elements(list)
	exts := make([]extension, 0, len(items))
	var nonFuncs, unsupported []positioned
	for i, item := range items {
		if kindOf(item) != kindFunction {
			nonFuncs = append(nonFuncs, positioned{value: item, index: i})
			continue
		}
		ext, ok := asExtension(item)
		if !ok {
			unsupported = append(unsupported, positioned{value: item, index: i})
			continue
		}
		exts = append(exts, ext)
	}

	if len(nonFuncs) > 0 {
		return nil, errNonFunctions(nonFuncs)
	}
	if len(unsupported) > 0 {
		return nil, errUnsupportedFunctions(unsupported)
	}
	return exts, nil
}

func asExtension(fn any) (extension, bool) {
	switch f := fn.(type) {
	case Validator:
		return fromValidator(f), true
	case func(any) error:
		return fromValidator(f), true
	case func(any) *Diagnostic:
		return func(opts any) any { return f(opts) }, true
	case func(any) any:
		return f, true
	}
	return nil, false
}

func fromValidator(v Validator) extension {
	return func(opts any) any {
		if err := v(opts); !isFalsy(err) {
			return err
		}
		return nil
	}
}
