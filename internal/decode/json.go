package decode

import (
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/thoreinstein/globcheck/pkg/globopts"
)

// decodeJSON walks the document with gjson so object keys keep their
// document order. Later duplicates overwrite the value of the first key
// without moving it.
func decodeJSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, invalid(FormatJSON, errors.New("malformed JSON"))
	}
	return fromJSON(gjson.ParseBytes(data)), nil
}

func fromJSON(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	}

	if r.IsArray() {
		items := []any{}
		r.ForEach(func(_, v gjson.Result) bool {
			items = append(items, fromJSON(v))
			return true
		})
		return items
	}

	obj := globopts.NewObject()
	r.ForEach(func(k, v gjson.Result) bool {
		obj.Set(k.String(), fromJSON(v))
		return true
	})
	return obj
}
