// Package decode turns JSON, YAML and TOML documents into the value model
// understood by globopts: objects become *globopts.Object with their key order
// preserved where the format allows, arrays become []any and scalars keep
// their natural Go types.
package decode

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/globcheck/pkg/globopts"
)

// Format identifies a document syntax.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Sentinel errors for decoding failures.
var (
	// ErrUnsupportedFormat indicates a format name or file extension is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidDocument indicates the document could not be parsed.
	ErrInvalidDocument = errors.New("invalid document")
)

var extensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// Formats returns the supported formats in a stable order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat resolves a format name such as "json" or "yml".
func ParseFormat(name string) (Format, error) {
	f, ok := extensions["."+strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", errors.WithHintf(
			errors.Wrapf(ErrUnsupportedFormat, "cannot infer format of %s", path),
			"use one of the extensions %s or pass --format", strings.Join(knownExtensions(), ", "))
	}
	return f, nil
}

func knownExtensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// Decode parses data in the given format. A document with no content decodes
// to globopts.Undefined.
func Decode(data []byte, format Format) (any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return globopts.Undefined, nil
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", string(format))
}

// DecodeFile parses data whose format is inferred from path.
func DecodeFile(path string, data []byte) (any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, format)
}

func invalid(format Format, cause error) error {
	return errors.Mark(errors.Wrapf(cause, "parsing %s", format), ErrInvalidDocument)
}
