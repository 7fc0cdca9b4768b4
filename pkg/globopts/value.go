package globopts

import (
	"math"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the value of a key that exists but holds nothing. Options set
// to Undefined are treated as absent, but their keys are still enumerated.
var Undefined any = undefined{}

// Object is an insertion-ordered mapping from option name to value.
// The zero value is not usable; create one with [NewObject].
type Object struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, any]()}
}

// Set stores value under key and returns the Object for chaining.
// Re-setting an existing key keeps its original position.
func (o *Object) Set(key string, value any) *Object {
	o.m.Set(key, value)
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	return o.m.Get(key)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return o.m.Len()
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, value any) bool) {
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// valueKind is the scripting-host view of a Go value.
type valueKind int

const (
	kindUndefined valueKind = iota
	kindNull
	kindBoolean
	kindNumber
	kindString
	kindFunction
	kindArray
	kindMapping
	kindObject
)

func kindOf(v any) valueKind {
	switch v := v.(type) {
	case nil:
		return kindNull
	case undefined:
		return kindUndefined
	case *Object:
		if v == nil {
			return kindNull
		}
		return kindMapping
	case []byte:
		return kindObject
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return kindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.String:
		return kindString
	case reflect.Func:
		if rv.IsNil() {
			return kindNull
		}
		return kindFunction
	case reflect.Slice, reflect.Array:
		return kindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return kindMapping
		}
		return kindObject
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return kindNull
		}
		return kindObject
	default:
		return kindObject
	}
}

// isObjectLike mirrors a `typeof v === 'object'` test: mappings, arrays and
// other objects, but not null.
func isObjectLike(v any) bool {
	switch kindOf(v) {
	case kindMapping, kindArray, kindObject:
		return true
	}
	return false
}

func isFalsy(v any) bool {
	switch kindOf(v) {
	case kindUndefined, kindNull:
		return true
	case kindBoolean:
		return !reflect.ValueOf(v).Bool()
	case kindString:
		return reflect.ValueOf(v).Len() == 0
	case kindNumber:
		f := toFloat(v)
		return f == 0 || math.IsNaN(f)
	}
	return false
}

func isString(v any) bool { return kindOf(v) == kindString }

func isBool(v any) bool { return kindOf(v) == kindBoolean }

func isArray(v any) bool { return kindOf(v) == kindArray }

func isMapping(v any) bool { return kindOf(v) == kindMapping }

func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return math.NaN()
}

func stringValue(v any) string {
	return reflect.ValueOf(v).String()
}

// property returns the value of key on a mapping. Keys holding Undefined are
// reported as absent.
func property(v any, key string) (any, bool) {
	var (
		val any
		ok  bool
	)
	switch m := v.(type) {
	case *Object:
		if m == nil {
			return nil, false
		}
		val, ok = m.Get(key)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		e := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !e.IsValid() {
			return nil, false
		}
		val, ok = e.Interface(), true
	}
	if !ok || kindOf(val) == kindUndefined {
		return nil, false
	}
	return val, true
}

// keys returns the enumerable keys of a mapping: insertion order for Objects,
// sorted order for Go maps.
func keys(v any) []string {
	if o, ok := v.(*Object); ok {
		if o == nil {
			return nil
		}
		return o.Keys()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	out := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		out = append(out, k.String())
	}
	sort.Strings(out)
	return out
}

// entry is like property but keeps Undefined values, for per-key checks.
func entry(v any, key string) any {
	if o, ok := v.(*Object); ok {
		val, _ := o.Get(key)
		return val
	}
	rv := reflect.ValueOf(v)
	e := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !e.IsValid() {
		return Undefined
	}
	return e.Interface()
}

func elements(v any) []any {
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// hasNumericMode reports whether v exposes a numeric file mode, either as a
// Mode() method, a `mode` mapping entry or a Mode struct field.
func hasNumericMode(v any) bool {
	if isMapping(v) {
		mode, ok := property(v, "mode")
		return ok && kindOf(mode) == kindNumber
	}

	rv := reflect.ValueOf(v)
	if m := rv.MethodByName("Mode"); m.IsValid() {
		t := m.Type()
		if t.NumIn() == 0 && t.NumOut() == 1 && isNumericKind(t.Out(0).Kind()) {
			return true
		}
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}
	f, ok := rv.Type().FieldByName("Mode")
	return ok && f.IsExported() && isNumericKind(f.Type.Kind())
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
