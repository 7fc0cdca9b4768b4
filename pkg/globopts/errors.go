package globopts

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrContractViolation marks errors caused by calling [ValidateArgs]
// incorrectly, as opposed to problems with the options themselves.
var ErrContractViolation = errors.New("globopts: contract violation")

func contractErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrContractViolation)
}

func errArity(n int) error {
	return contractErrorf("Expected 0, 1 or 2 arguments ([<object>, <array>]), but got %d.", n)
}

func errNotArray(v any) error {
	return contractErrorf("Expected an array of functions, but got a non-array value %s.", Inspect(v))
}

// errNonFunctions reports every element of the validator list that cannot be
// called, with its position.
func errNonFunctions(bad []positioned) error {
	if len(bad) == 1 {
		return contractErrorf("Expected an array of functions, but found a non-function value in the array: %s.",
			bad[0].String())
	}
	return contractErrorf("Expected an array of functions, but found non-function values in the array: %s.",
		joinList(bad))
}

func errUnsupportedFunctions(bad []positioned) error {
	noun := "an unsupported function value"
	if len(bad) > 1 {
		noun = "unsupported function values"
	}
	return contractErrorf("Expected every function in the array to take the options and return an error, "+
		"but found %s in the array: %s.", noun, joinList(bad))
}

func errReturnValue(v any) error {
	return contractErrorf("Expected an additional validation function to return an error, but returned %s.",
		Inspect(v))
}

type positioned struct {
	value any
	index int
}

func (p positioned) String() string {
	return fmt.Sprintf("%s (at %d)", inspect(p.value, 0), p.index)
}

// joinList joins items as an English list: "a", "a and b", "a, b and c".
func joinList[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return joinStrings(parts)
}

func joinStrings(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
