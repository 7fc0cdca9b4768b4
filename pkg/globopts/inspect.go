package globopts

import (
	"fmt"
	"io/fs"
	"math"
	"reflect"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	inspectDepth    = 2
	maxArrayItems   = 100
	maxBufferBytes  = 50
	anonymousFunc   = "[Function (anonymous)]"
	emptyStringDesc = "'' (empty string)"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	closureName       = regexp.MustCompile(`^(func)?\d+$`)
)

// Inspect returns the printable representation of v used in every diagnostic
// message. Numbers, arrays, regular expressions and dates carry a trailing
// kind hint, e.g. "1 (number)" or "[ 'b' ] (array)", because their rendering
// alone can be mistaken for another type.
func Inspect(v any) string {
	s := inspect(v, 0)

	switch kindOf(v) {
	case kindNumber:
		return s + " (number)"
	case kindArray:
		return s + " (array)"
	case kindString:
		if stringValue(v) == "" {
			return emptyStringDesc
		}
	case kindObject:
		switch v.(type) {
		case *regexp.Regexp:
			return s + " (regexp)"
		case time.Time, *time.Time:
			return s + " (date)"
		}
	}
	return s
}

func inspect(v any, depth int) string {
	switch kindOf(v) {
	case kindUndefined:
		return "undefined"
	case kindNull:
		return "null"
	case kindBoolean:
		return strconv.FormatBool(reflect.ValueOf(v).Bool())
	case kindNumber:
		return formatNumber(v)
	case kindString:
		return quote(stringValue(v))
	case kindFunction:
		return inspectFunc(v)
	case kindArray:
		return inspectArray(v, depth)
	case kindMapping:
		return inspectMapping(v, depth)
	}
	return inspectObject(v, depth)
}

func formatNumber(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	}

	bits := 64
	if rv.Kind() == reflect.Float32 {
		bits = 32
	}
	f := rv.Float()
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0 && math.Signbit(f):
		return "-0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 && abs != 0 {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func quote(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}

	var sb strings.Builder
	sb.WriteString(q)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		case string(r) == q:
			sb.WriteString(`\` + q)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteString(q)
	return sb.String()
}

func inspectFunc(v any) string {
	fn := runtime.FuncForPC(reflect.ValueOf(v).Pointer())
	if fn == nil {
		return anonymousFunc
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || closureName.MatchString(name) {
		return anonymousFunc
	}
	return "[Function: " + name + "]"
}

func inspectArray(v any, depth int) string {
	if depth > inspectDepth {
		return "[Array]"
	}
	items := elements(v)
	if len(items) == 0 {
		return "[]"
	}

	parts := make([]string, 0, min(len(items), maxArrayItems)+1)
	for i, item := range items {
		if i == maxArrayItems {
			parts = append(parts, fmt.Sprintf("... %d more items", len(items)-maxArrayItems))
			break
		}
		parts = append(parts, inspect(item, depth+1))
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

func inspectMapping(v any, depth int) string {
	if depth > inspectDepth {
		return "[Object]"
	}
	ks := keys(v)
	if len(ks) == 0 {
		return "{}"
	}

	parts := make([]string, 0, len(ks))
	for _, k := range ks {
		parts = append(parts, propertyName(k)+": "+inspect(entry(v, k), depth+1))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func propertyName(k string) string {
	if identifierPattern.MatchString(k) {
		return k
	}
	return quote(k)
}

func inspectObject(v any, depth int) string {
	switch o := v.(type) {
	case []byte:
		return inspectBuffer(o)
	case *regexp.Regexp:
		return "/" + o.String() + "/"
	case time.Time:
		return o.UTC().Format("2006-01-02T15:04:05.000Z")
	case *Diagnostic:
		return "[" + o.Kind.String() + ": " + o.Message + "]"
	case error:
		return "[Error: " + o.Error() + "]"
	case fs.FileInfo:
		return fmt.Sprintf("FileInfo { name: %s, size: %d, mode: %d, isDir: %t }",
			quote(o.Name()), o.Size(), uint32(o.Mode()), o.IsDir())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return inspect(rv.Elem().Interface(), depth)
	case reflect.Struct:
		return inspectStruct(rv, depth)
	case reflect.Map:
		return inspectGoMap(rv, depth)
	}
	return "[" + rv.Type().String() + "]"
}

func inspectBuffer(b []byte) string {
	var sb strings.Builder
	sb.WriteString("<Buffer")
	for i, c := range b {
		if i == maxBufferBytes {
			fmt.Fprintf(&sb, " ... %d more bytes", len(b)-maxBufferBytes)
			break
		}
		fmt.Fprintf(&sb, " %02x", c)
	}
	sb.WriteString(">")
	return sb.String()
}

func inspectStruct(rv reflect.Value, depth int) string {
	name := rv.Type().Name()
	prefix := ""
	if name != "" {
		prefix = name + " "
	}
	if depth > inspectDepth {
		return "[" + strings.TrimSpace(prefix+"Object") + "]"
	}

	var parts []string
	t := rv.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		parts = append(parts, f.Name+": "+inspect(rv.Field(i).Interface(), depth+1))
	}
	if len(parts) == 0 {
		return prefix + "{}"
	}
	return prefix + "{ " + strings.Join(parts, ", ") + " }"
}

// inspectGoMap renders maps with non-string keys.
func inspectGoMap(rv reflect.Value, depth int) string {
	head := fmt.Sprintf("Map(%d)", rv.Len())
	if depth > inspectDepth {
		return "[" + head + "]"
	}
	if rv.Len() == 0 {
		return head + " {}"
	}

	parts := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		parts = append(parts, inspect(k.Interface(), depth+1)+" => "+inspect(rv.MapIndex(k).Interface(), depth+1))
	}
	sort.Strings(parts)
	return head + " { " + strings.Join(parts, ", ") + " }"
}
