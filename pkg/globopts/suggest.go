package globopts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	maxRankDistance = 3
	maxEditDistance = 2
)

// SuggestUnknown returns a validator that reports every option name that is
// neither part of the schema nor a known misspelling, along with the closest
// real option when one is near enough.
func SuggestUnknown() Validator {
	return func(opts any) error {
		if !isMapping(opts) {
			return nil
		}

		var unknown []string
		for _, key := range keys(opts) {
			if _, ok := Lookup(key); ok {
				continue
			}
			if _, ok := typos[key]; ok {
				continue
			}
			if s := closestOption(key); s != "" {
				unknown = append(unknown, fmt.Sprintf("`%s` (did you mean `%s`?)", key, s))
			} else {
				unknown = append(unknown, "`"+key+"`")
			}
		}
		if len(unknown) == 0 {
			return nil
		}

		noun := "an unknown option"
		if len(unknown) > 1 {
			noun = "unknown options"
		}
		return &Diagnostic{
			Kind:    KindError,
			Message: fmt.Sprintf("glob options include %s: %s.", noun, joinStrings(unknown)),
		}
	}
}

// Disallow returns a validator that rejects the named options, for callers
// whose glob engine does not support them.
func Disallow(names ...string) Validator {
	return func(opts any) error {
		if !isMapping(opts) {
			return nil
		}

		var found []string
		for _, name := range names {
			if val, ok := property(opts, name); ok {
				found = append(found, fmt.Sprintf("`%s` (%s)", name, Inspect(val)))
			}
		}
		switch len(found) {
		case 0:
			return nil
		case 1:
			return &Diagnostic{
				Kind:    KindError,
				Message: fmt.Sprintf("glob option %s is not allowed here.", found[0]),
			}
		}
		return &Diagnostic{
			Kind:    KindError,
			Message: fmt.Sprintf("glob options %s are not allowed here.", joinStrings(found)),
		}
	}
}

// closestOption finds the schema option nearest to name: first by
// subsequence rank, then by edit distance.
func closestOption(name string) string {
	candidates := make([]string, 0, len(schema))
	for _, o := range schema {
		if o.Kind != OptionDeprecated {
			candidates = append(candidates, o.Name)
		}
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)
	if len(ranks) > 0 && ranks[0].Distance <= maxRankDistance {
		return ranks[0].Target
	}

	best, bestDist := "", maxEditDistance+1
	folded := strings.ToLower(name)
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(folded, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
