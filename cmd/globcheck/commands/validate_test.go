package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/thoreinstein/globcheck/internal/config"
	"github.com/thoreinstein/globcheck/internal/decode"
	"github.com/thoreinstein/globcheck/internal/errors"
	"github.com/thoreinstein/globcheck/internal/logging"
	"github.com/thoreinstein/globcheck/internal/validator"
	"github.com/thoreinstein/globcheck/pkg/fileutil"
)

func TestValidateCommand_Metadata(t *testing.T) {
	if validateCmd.Use != "validate <file>..." {
		t.Errorf("Use = %q", validateCmd.Use)
	}
	for _, name := range []string{"format", "strict", "json", "suggest", "disallow"} {
		if validateCmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag should be defined", name)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		args     []string
		wantFail bool
		want     []string
	}{
		{
			name:    "valid json",
			file:    "opts.json",
			content: `{"cwd": "/src", "dot": true, "ignore": ["node_modules/**"]}`,
			want:    []string{"opts.json: ✓ Validation passed"},
		},
		{
			name:     "type error fails",
			file:     "opts.json",
			content:  `{"nomount": 1}`,
			wantFail: true,
			want: []string{
				"Validation failed: 1 error(s)",
				"glob expected `nomount` option to be a Boolean value, but got 1 (number).",
			},
		},
		{
			name:    "misspelling is a warning",
			file:    "opts.yaml",
			content: "noExt: true\n",
			want: []string{
				"Validation passed with findings: 1 warning(s)",
				"noExt: glob doesn't have `noExt` option. Probably you meant `noext`.",
			},
		},
		{
			name:     "strict fails on warnings",
			file:     "opts.yaml",
			content:  "noExt: true\n",
			args:     []string{"--strict"},
			wantFail: true,
			want:     []string{"Validation failed: 1 warning(s)"},
		},
		{
			name:    "toml with suggestions",
			file:    "opts.toml",
			content: "nomout = true\n",
			args:    []string{"--suggest"},
			want:    []string{"glob options include an unknown option: `nomout` (did you mean `nomount`?)."},
		},
		{
			name:    "disallowed option",
			file:    "opts.json",
			content: `{"follow": true}`,
			args:    []string{"--disallow", "follow"},
			want:    []string{"glob option `follow` (true) is not allowed here."},
		},
		{
			name:    "format flag overrides extension",
			file:    "opts.txt",
			content: "dot: true\n",
			args:    []string{"--format", "yml"},
			want:    []string{"opts.txt: ✓ Validation passed"},
		},
		{
			name:    "empty document",
			file:    "empty.yaml",
			content: "# nothing here\n",
			args:    []string{"--strict"},
			want: []string{
				"empty.yaml: Validation passed with findings: 1 note(s)",
				"document is empty; glob will use its default options",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			path := writeDoc(t, tt.file, tt.content)

			args := append([]string{"validate"}, tt.args...)
			out, err := executeCommand(t, nil, append(args, path)...)

			if tt.wantFail {
				var exitErr *errors.ExitError
				if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
					t.Fatalf("expected exit code %d, got %v", errors.ExitUser, err)
				}
				if !errors.Is(err, errors.ErrValidationFailed) {
					t.Errorf("error should be ErrValidationFailed: %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v\n%s", err, out)
			}

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\nGot:\n%s", want, out)
				}
			}
		})
	}
}

func TestValidateCommand_Stdin(t *testing.T) {
	isolateConfig(t)

	out, err := executeCommand(t, strings.NewReader("mark: true\n"), "validate", "--format", "yaml", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<stdin>: Validation passed with findings") {
		t.Errorf("output = %q", out)
	}
}

func TestValidateCommand_StdinNeedsFormat(t *testing.T) {
	isolateConfig(t)

	_, err := executeCommand(t, strings.NewReader("{}"), "validate", "-")
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if !strings.Contains(exitErr.Suggestion, "--format") {
		t.Errorf("suggestion = %q", exitErr.Suggestion)
	}
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	isolateConfig(t)
	a := writeDoc(t, "a.json", `{"dot": true}`)
	b := writeDoc(t, "b.json", `{"cache": {"/a": "file"}}`)

	out, err := executeCommand(t, nil, "validate", "--json", a, b)
	if err != nil {
		t.Fatalf("warnings alone should not fail: %v", err)
	}

	var report struct {
		Passed  bool                `json:"passed"`
		Results []*validator.Result `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !report.Passed || len(report.Results) != 2 {
		t.Fatalf("report = %+v", report)
	}
	issues := report.Results[1].Issues
	if len(issues) != 1 || issues[0].Context["key"] != "/a" {
		t.Errorf("issues = %+v", issues)
	}
}

func TestValidateCommand_ConfigDefaults(t *testing.T) {
	isolateConfig(t)
	cfgPath := writeDoc(t, "config.yaml", "strict: true\ndisallow:\n  - realpath\n")
	doc := writeDoc(t, "opts.yaml", "realpath: false\n")

	out, err := executeCommand(t, nil, "--config", cfgPath, "validate", doc)
	if !errors.Is(err, errors.ErrValidationFailed) {
		t.Fatalf("strict config should fail on the disallowed option: %v\n%s", err, out)
	}

	// An explicit flag wins over the config file.
	out, err = executeCommand(t, nil, "--config", cfgPath, "validate", "--strict=false", doc)
	if err != nil {
		t.Fatalf("--strict=false should override the config: %v\n%s", err, out)
	}

	// --disallow replaces the configured list rather than extending it.
	doc = writeDoc(t, "opts.yaml", "realpath: false\nfollow: true\n")
	out, err = executeCommand(t, nil, "--config", cfgPath, "validate", "--disallow", "follow", doc)
	if !errors.Is(err, errors.ErrValidationFailed) {
		t.Fatalf("strict config should fail on the disallowed option: %v\n%s", err, out)
	}
	if !strings.Contains(out, "`follow`") || strings.Contains(out, "`realpath`") {
		t.Errorf("only follow should be disallowed:\n%s", out)
	}
}

func TestValidateCommand_InputErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) []string
		target error
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) []string {
				return []string{"validate", "does-not-exist.json"}
			},
			target: errors.ErrNotFound,
		},
		{
			name: "unknown extension",
			setup: func(t *testing.T) []string {
				return []string{"validate", writeDoc(t, "opts.ini", "dot=true\n")}
			},
			target: decode.ErrUnsupportedFormat,
		},
		{
			name: "malformed document",
			setup: func(t *testing.T) []string {
				return []string{"validate", writeDoc(t, "opts.json", `{"dot": `)}
			},
			target: decode.ErrInvalidDocument,
		},
		{
			name: "self-referencing yaml anchor",
			setup: func(t *testing.T) []string {
				return []string{"validate", writeDoc(t, "opts.yaml", "ignore: &a [*a]\n")}
			},
			target: decode.ErrInvalidDocument,
		},
		{
			name: "unknown disallowed option",
			setup: func(t *testing.T) []string {
				return []string{"validate", "--disallow", "folow", writeDoc(t, "opts.json", "{}")}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			_, err := executeCommand(t, nil, tt.setup(t)...)

			var exitErr *errors.ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
				t.Fatalf("expected user error, got %v", err)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v should match %v", err, tt.target)
			}
		})
	}
}

func TestResolveValidateOptions(t *testing.T) {
	t.Cleanup(resetFlags)
	resetFlags()

	cfg := config.Default()
	cfg.Format = "json"
	cfg.SuggestUnknown = true
	cfg.MaxFileSize = 0

	validateDisallow = []string{" follow "}
	opts, err := resolveValidateOptions(validateCmd, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Report != validator.FormatJSON || !opts.Suggest || opts.Strict {
		t.Errorf("opts = %+v", opts)
	}
	if len(opts.Disallow) != 1 || opts.Disallow[0] != "follow" {
		t.Errorf("Disallow = %v", opts.Disallow)
	}
	if opts.MaxFileSize != fileutil.MaxFileSize {
		t.Errorf("MaxFileSize = %d, want default", opts.MaxFileSize)
	}
	if got := len(opts.validators()); got != 2 {
		t.Errorf("validators() = %d, want 2", got)
	}
}

func TestRunValidate_LogsDiagnostics(t *testing.T) {
	path := writeDoc(t, "opts.json", `{"noDir": true}`)
	ctx := logging.NewContext(t.Context(), logging.ForTest(t))

	var out strings.Builder
	opts := validateOptions{Report: validator.FormatText, MaxFileSize: fileutil.MaxFileSize}
	if err := runValidate(ctx, nil, &out, []string{path}, opts); err != nil {
		t.Fatalf("runValidate() error: %v", err)
	}
	if !strings.Contains(out.String(), "Probably you meant `nodir`") {
		t.Errorf("output = %q", out.String())
	}
}
