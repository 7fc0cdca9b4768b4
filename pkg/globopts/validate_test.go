package globopts

import (
	"math"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// statRecord mimics a raw stat structure that exposes its mode as a field.
type statRecord struct {
	Dev  uint64
	Mode uint32
}

func strs(diags []*Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

func TestValidate_Falsy(t *testing.T) {
	tests := []struct {
		name string
		opts any
	}{
		{"nil", nil},
		{"undefined", Undefined},
		{"false", false},
		{"zero", 0},
		{"zero float", 0.0},
		{"NaN", math.NaN()},
		{"nil object", (*Object)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.opts)
			if got == nil {
				t.Fatal("Validate() returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("Validate() = %v, want no diagnostics", strs(got))
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		opts any
	}{
		{"empty object", NewObject()},
		{"empty map", map[string]any{}},
		{"string ignore", NewObject().Set("ignore", "node_modules")},
		{
			name: "every option",
			opts: NewObject().
				Set("cwd", "/src").
				Set("root", "/").
				Set("dot", true).
				Set("nodir", true).
				Set("mark", false).
				Set("cache", NewObject().Set("/a", true).Set("/b", "DIR").Set("/c", []any{"x"})).
				Set("realpathCache", map[string]string{"/a": "/b"}).
				Set("statCache", NewObject().Set("/a", NewObject().Set("mode", 33188))).
				Set("symlinks", map[string]bool{"/a": false}).
				Set("ignore", []string{"a/**", "b"}),
		},
		{"undefined values are absent", NewObject().Set("dot", Undefined).Set("cwd", Undefined)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.opts); len(got) != 0 {
				t.Errorf("Validate() = %v, want no diagnostics", strs(got))
			}
		})
	}
}

func TestValidate_Shape(t *testing.T) {
	tests := []struct {
		name string
		opts any
		want string
	}{
		{
			name: "empty string",
			opts: "",
			want: "TypeError: Expected glob options to be an object, but got '' (empty string).",
		},
		{
			name: "function",
			opts: strings.TrimSpace,
			want: "TypeError: Expected glob options to be an object, but got [Function: TrimSpace].",
		},
		{
			name: "string",
			opts: "dot",
			want: "TypeError: Expected glob options to be an object, but got 'dot'.",
		},
		{
			name: "number",
			opts: 1,
			want: "TypeError: Expected glob options to be an object, but got 1 (number).",
		},
		{
			name: "true",
			opts: true,
			want: "TypeError: Expected glob options to be an object, but got true.",
		},
		{
			name: "array",
			opts: []int{1, 2},
			want: "TypeError: Expected glob options to be an object, but got [ 1, 2 ] (array).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.opts)
			if diff := cmp.Diff([]string{tt.want}, strs(got)); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
			if !got[0].IsTypeError() {
				t.Error("shape diagnostic should be a TypeError")
			}
		})
	}
}

func TestValidate_ShapeShortCircuitsExtensions(t *testing.T) {
	called := false
	ext := func(any) error {
		called = true
		return nil
	}

	Validate("", ext)
	Validate(nil, ext)
	Validate([]any{}, ext)

	if called {
		t.Error("extension validators should not run when the shape check settles the result")
	}
}

func TestValidate_InvalidTopLevelOptions(t *testing.T) {
	opts := NewObject().
		Set("sync", false).
		Set("cwd", "/tmp").
		Set("root", []byte("_")).
		Set("dot", true).
		Set("nomount", 1).
		Set("nodir", true).
		Set("mark", true).
		Set("cache", time.Unix(0, 0)).
		Set("realpathCache", []uint16{}).
		Set("statCache", map[int]string{}).
		Set("symlinks", regexp.MustCompile(".+")).
		Set("ignore", map[int]any{0: nil}).
		Set("symlink", NewObject())

	want := []string{
		"Error: `sync` option is deprecated and there's no need to pass any values to that option, but false was provided.",
		"TypeError: glob expected `root` option to be a directory path (string), but got <Buffer 5f>.",
		"TypeError: glob expected `nomount` option to be a Boolean value, but got 1 (number).",
		"TypeError: Expected `mark` option not to be `true` when `nodir` option is `true`, because there is no need to " +
			"differentiate directory paths from file paths when `nodir` option is enabled, but got `true`.",
		"TypeError: glob expected `cache` option to be an object, but got 1970-01-01T00:00:00.000Z (date).",
		"TypeError: glob expected `realpathCache` option to be an object, but got [] (array).",
		"TypeError: glob expected `statCache` option to be an object, but got Map(0) {}.",
		"TypeError: glob expected `symlinks` option to be an object, but got /.+/ (regexp).",
		"TypeError: glob expected `ignore` option to be an array or string, but got Map(1) { 0 => null }.",
		"Error: glob doesn't have `symlink` option. Probably you meant `symlinks`.",
	}

	if diff := cmp.Diff(want, strs(Validate(opts))); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InvalidCompositeEntries(t *testing.T) {
	info, err := os.Stat(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	opts := NewObject().
		Set("nodir", true).
		Set("cache", NewObject().
			Set("/foo/0", false).
			Set("/foo/1", true).
			Set("/foo/2", "FILE").
			Set("/foo/3", "DIR").
			Set("/foo/4", 1).
			Set("/foo/5", "file")).
		Set("realpathCache", NewObject().
			Set("/foo/0", "foo/2").
			Set("/foo/1", math.Inf(1))).
		Set("statCache", NewObject().
			Set("/foo/0", info).
			Set("/foo/1", &statRecord{Dev: 1, Mode: 16877}).
			Set("/foo/2", strings.TrimSpace).
			Set("/foo/3", NewObject().Set("dev", 3))).
		Set("symlinks", NewObject().
			Set("/foo/0", true).
			Set("/foo/1", "false")).
		Set("ignore", []any{"a", []any{"b"}})

	want := []string{
		"TypeError: Expected every value in the `cache` option to be true, false, 'FILE', 'DIR' or an array, " +
			"but found an invalid value 1 (number) in `/foo/4` property.",
		"Error: Expected every value in the `cache` option to be true, false, 'FILE', 'DIR' or an array, " +
			"but found an invalid string 'file' in `/foo/5` property.",
		"TypeError: Expected every value in the `realpathCache` option to be a string, " +
			"but found a non-string value Infinity (number) in `/foo/1` property.",
		"TypeError: Expected every value in the `statCache` option to be a file status, " +
			"but found an invalid value [Function: TrimSpace] in `/foo/2` property.",
		"Error: Expected every value in the `statCache` option to be a file status, " +
			"but found an invalid object { dev: 3 } in `/foo/3` property, which doesn't have a valid file mode.",
		"TypeError: Expected every value in the `symlinks` option to be Boolean, " +
			"but found an invalid value 'false' in `/foo/1` property.",
		"TypeError: Expected every value in the `ignore` option to be a string, " +
			"but the array includes a non-string value [ 'b' ] (array).",
	}

	got := Validate(opts)
	if diff := cmp.Diff(want, strs(got)); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}

	if got[0].Option != "cache" || got[0].Key != "/foo/4" {
		t.Errorf("first diagnostic located at %s[%s], want cache[/foo/4]", got[0].Option, got[0].Key)
	}
}

func TestValidate_Properties(t *testing.T) {
	tests := []struct {
		name     string
		opts     any
		contains string
		kind     Kind
	}{
		{
			name:     "nomount wrong type",
			opts:     map[string]any{"nomount": 1},
			contains: "`nomount` option to be a Boolean value",
			kind:     KindTypeError,
		},
		{
			name:     "cache wrong type",
			opts:     map[string]any{"cache": map[string]any{"/a": 1}},
			contains: "invalid value 1 (number) in `/a` property",
			kind:     KindTypeError,
		},
		{
			name:     "cache lowercase enum",
			opts:     map[string]any{"cache": map[string]any{"/a": "file"}},
			contains: "invalid string 'file' in `/a` property",
			kind:     KindError,
		},
		{
			name:     "stat record without mode",
			opts:     map[string]any{"statCache": map[string]any{"/a": map[string]any{"dev": 3}}},
			contains: "doesn't have a valid file mode",
			kind:     KindError,
		},
		{
			name:     "stat record with non-numeric mode",
			opts:     map[string]any{"statCache": map[string]any{"/a": map[string]any{"mode": "0644"}}},
			contains: "doesn't have a valid file mode",
			kind:     KindError,
		},
		{
			name:     "stat record null",
			opts:     map[string]any{"statCache": map[string]any{"/a": nil}},
			contains: "invalid value null in `/a` property",
			kind:     KindTypeError,
		},
		{
			name:     "typo regardless of value",
			opts:     map[string]any{"noExt": "whatever"},
			contains: "Probably you meant `noext`",
			kind:     KindError,
		},
		{
			name:     "typo with undefined value",
			opts:     NewObject().Set("noExt", Undefined),
			contains: "Probably you meant `noext`",
			kind:     KindError,
		},
		{
			name:     "null path option",
			opts:     map[string]any{"cwd": nil},
			contains: "`cwd` option to be a directory path (string), but got null.",
			kind:     KindTypeError,
		},
		{
			name:     "deprecated sync set to true",
			opts:     map[string]any{"sync": true},
			contains: "but true was provided",
			kind:     KindError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.opts)
			if len(got) != 1 {
				t.Fatalf("Validate() = %v, want exactly one diagnostic", strs(got))
			}
			if !strings.Contains(got[0].Message, tt.contains) {
				t.Errorf("message %q does not contain %q", got[0].Message, tt.contains)
			}
			if got[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", got[0].Kind, tt.kind)
			}
		})
	}
}

func TestValidate_StatusRecords(t *testing.T) {
	info, err := os.Stat(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	records := map[string]any{
		"fs.FileInfo":   info,
		"mode field":    statRecord{Mode: 0o644},
		"mode pointer":  &statRecord{Mode: 0o755},
		"float mode":    map[string]any{"mode": 33188.0},
		"ordered mode":  NewObject().Set("mode", uint32(16877)),
		"typed map":     map[string]int{"mode": 1},
		"mode accessor": modeInfo{perm: 0o600},
	}
	for name, rec := range records {
		t.Run(name, func(t *testing.T) {
			opts := map[string]any{"statCache": map[string]any{"/a": rec}}
			if got := Validate(opts); len(got) != 0 {
				t.Errorf("Validate() = %v, want status record accepted", strs(got))
			}
		})
	}
}

type modeInfo struct{ perm uint32 }

func (m modeInfo) Mode() os.FileMode { return os.FileMode(m.perm) }

func TestValidate_MarkWithoutNodir(t *testing.T) {
	tests := []struct {
		name  string
		mark  any
		nodir any
		want  int
	}{
		{"both true", true, true, 1},
		{"mark only", true, false, 0},
		{"nodir only", false, true, 0},
		{"truthy non-boolean", 1, true, 1}, // only the Boolean type error
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(NewObject().Set("mark", tt.mark).Set("nodir", tt.nodir))
			if len(got) != tt.want {
				t.Errorf("Validate() = %v, want %d diagnostics", strs(got), tt.want)
			}
		})
	}
}

func TestValidate_Order(t *testing.T) {
	// Schema order wins over the candidate's own key order for field checks,
	// while typos follow the candidate's key order.
	opts := NewObject().
		Set("symlink", true).
		Set("ignore", 1).
		Set("nodir", "yes").
		Set("cwd", 1).
		Set("noExt", true).
		Set("sync", 1)

	var got []string
	for _, d := range Validate(opts) {
		got = append(got, d.Option)
	}
	want := []string{"sync", "cwd", "nodir", "ignore", "symlink", "noExt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostic order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_GoMapKeysSorted(t *testing.T) {
	opts := map[string]any{"symlink": 1, "caches": 1, "noDir": 1}

	var got []string
	for _, d := range Validate(opts) {
		got = append(got, d.Option)
	}
	if diff := cmp.Diff([]string{"caches", "noDir", "symlink"}, got); diff != "" {
		t.Errorf("typo order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	opts := NewObject().
		Set("nomount", 1).
		Set("cache", NewObject().Set("/a", "file")).
		Set("noExt", true)

	first := strs(Validate(opts))
	second := strs(Validate(opts))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Validate() differs (-first +second):\n%s", diff)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cache := map[string]any{"/a": "file", "/b": 1}
	opts := map[string]any{"cache": cache, "ignore": []any{1, "x"}}

	Validate(opts)

	if len(cache) != 2 || cache["/a"] != "file" || cache["/b"] != 1 {
		t.Errorf("cache mutated: %v", cache)
	}
	if ignore := opts["ignore"].([]any); len(ignore) != 2 || ignore[0] != 1 {
		t.Errorf("ignore mutated: %v", ignore)
	}
}

func TestValidate_NonMappingObjects(t *testing.T) {
	// Object-like values that are not mappings have no options to check.
	for _, opts := range []any{[]byte("x"), time.Now(), struct{ Dot int }{Dot: 1}, regexp.MustCompile("a")} {
		if got := Validate(opts); len(got) != 0 {
			t.Errorf("Validate(%T) = %v, want no diagnostics", opts, strs(got))
		}
	}
}
