package globopts

import "slices"

// OptionKind describes the shape an option value must have.
type OptionKind int

const (
	// OptionPath is a directory path given as a string.
	OptionPath OptionKind = iota
	// OptionBoolean is a Boolean switch.
	OptionBoolean
	// OptionCache maps paths to true, false, "FILE", "DIR" or an array.
	OptionCache
	// OptionRealpathCache maps paths to resolved paths.
	OptionRealpathCache
	// OptionStatCache maps paths to file status records.
	OptionStatCache
	// OptionSymlinks maps paths to Booleans.
	OptionSymlinks
	// OptionPatterns is a pattern string or an array of pattern strings.
	OptionPatterns
	// OptionDeprecated is accepted by nobody and should be removed.
	OptionDeprecated
)

func (k OptionKind) String() string {
	switch k {
	case OptionPath:
		return "directory path (string)"
	case OptionBoolean:
		return "Boolean value"
	case OptionCache:
		return "object of true, false, 'FILE', 'DIR' or arrays"
	case OptionRealpathCache:
		return "object of strings"
	case OptionStatCache:
		return "object of file status records"
	case OptionSymlinks:
		return "object of Booleans"
	case OptionPatterns:
		return "array or string"
	case OptionDeprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// Option describes one option of the schema.
type Option struct {
	Name        string
	Kind        OptionKind
	Description string
}

var pathOptions = []string{"cwd", "root"}

var booleanOptions = []string{
	"dot",
	"nomount",
	"mark",
	"nosort",
	"stat",
	"silent",
	"strict",
	"nounique",
	"nonull",
	"debug",
	"nobrace",
	"noglobstar",
	"noext",
	"nocase",
	"matchBase",
	"nodir",
	"follow",
	"realpath",
	"absolute",
}

const deprecatedSync = "sync"

// typos maps commonly mistyped option names to the real ones.
var typos = map[string]string{
	"noMount":    "nomount",
	"nouniq":     "nounique",
	"noUnique":   "nounique",
	"noNull":     "nonull",
	"noBrace":    "nobrace",
	"noGlobStar": "noglobstar",
	"noExt":      "noext",
	"noCase":     "nocase",
	"matchbase":  "matchBase",
	"noDir":      "nodir",
	"realPath":   "realpath",
	"caches":     "cache",
	"statcache":  "statCache",
	"statCaches": "statCache",
	"symlink":    "symlinks",
}

var schema = []Option{
	{"cwd", OptionPath, "current working directory to search in"},
	{"root", OptionPath, "place where patterns starting with / are mounted"},
	{"dot", OptionBoolean, "include .dot files in normal matches and globstar matches"},
	{"nomount", OptionBoolean, "do not mount patterns starting with / onto the root"},
	{"mark", OptionBoolean, "add a / to directory matches"},
	{"nosort", OptionBoolean, "do not sort the results"},
	{"stat", OptionBoolean, "stat all results"},
	{"silent", OptionBoolean, "do not warn about unusual errors while reading directories"},
	{"strict", OptionBoolean, "abort on unusual errors while reading directories"},
	{"nounique", OptionBoolean, "do not deduplicate results"},
	{"nonull", OptionBoolean, "return the pattern itself when nothing matches"},
	{"debug", OptionBoolean, "print debugging information"},
	{"nobrace", OptionBoolean, "do not expand {a,b} and {1..3} braces"},
	{"noglobstar", OptionBoolean, "do not treat ** specially"},
	{"noext", OptionBoolean, "do not match +(a|b) extended patterns"},
	{"nocase", OptionBoolean, "match case-insensitively"},
	{"matchBase", OptionBoolean, "match patterns without slashes against the basename"},
	{"nodir", OptionBoolean, "do not match directories"},
	{"follow", OptionBoolean, "follow symlinked directories when expanding **"},
	{"realpath", OptionBoolean, "resolve all matches to their real paths"},
	{"absolute", OptionBoolean, "return absolute paths"},
	{"cache", OptionCache, "known existence of paths: true, false, 'FILE', 'DIR' or directory entries"},
	{"realpathCache", OptionRealpathCache, "known real paths of paths"},
	{"statCache", OptionStatCache, "known file status records of paths"},
	{"symlinks", OptionSymlinks, "known symbolic link state of paths"},
	{"ignore", OptionPatterns, "patterns to exclude from matches"},
	{deprecatedSync, OptionDeprecated, "synchronous mode switch; no longer needed"},
}

var optionIndex = func() map[string]Option {
	m := make(map[string]Option, len(schema))
	for _, o := range schema {
		m[o.Name] = o
	}
	return m
}()

// Options returns the options of the schema in declaration order.
func Options() []Option {
	return slices.Clone(schema)
}

// Lookup returns the schema entry for name.
func Lookup(name string) (Option, bool) {
	o, ok := optionIndex[name]
	return o, ok
}

// Correction returns the real option name for a known misspelling.
func Correction(name string) (string, bool) {
	c, ok := typos[name]
	return c, ok
}

// Misspellings returns the known misspellings of name, sorted.
func Misspellings(name string) []string {
	var out []string
	for typo, target := range typos {
		if target == name {
			out = append(out, typo)
		}
	}
	slices.Sort(out)
	return out
}
