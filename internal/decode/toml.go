package decode

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/globcheck/pkg/globopts"
)

// decodeTOML unmarshals into plain maps, so tables come back with their keys
// sorted.
func decodeTOML(data []byte) (any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, invalid(FormatTOML, errors.Wrapf(err, "line %d, column %d", row, col))
		}
		return nil, invalid(FormatTOML, err)
	}
	return fromTOML(doc), nil
}

func fromTOML(v any) any {
	switch v := v.(type) {
	case map[string]any:
		ks := make([]string, 0, len(v))
		for k := range v {
			ks = append(ks, k)
		}
		slices.Sort(ks)

		obj := globopts.NewObject()
		for _, k := range ks {
			obj.Set(k, fromTOML(v[k]))
		}
		return obj
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = fromTOML(item)
		}
		return items
	}
	return v
}
