package commands

import (
	"context"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/globcheck/internal/config"
	"github.com/thoreinstein/globcheck/internal/decode"
	"github.com/thoreinstein/globcheck/internal/errors"
	"github.com/thoreinstein/globcheck/internal/logging"
	"github.com/thoreinstein/globcheck/internal/validator"
	"github.com/thoreinstein/globcheck/pkg/fileutil"
	"github.com/thoreinstein/globcheck/pkg/globopts"
)

// stdinName is the argument that reads a document from standard input.
const stdinName = "-"

const emptyDocumentNote = "document is empty; glob will use its default options"

var (
	validateFormat   string
	validateStrict   bool
	validateJSON     bool
	validateSuggest  bool
	validateDisallow []string
)

func init() {
	addValidateFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func addValidateFlags(c *cobra.Command) {
	c.Flags().StringVarP(&validateFormat, "format", "f", "",
		"document format: json, yaml, toml (default: from file extension)")
	c.Flags().BoolVar(&validateStrict, "strict", false,
		"fail on warnings as well as type errors")
	c.Flags().BoolVar(&validateJSON, "json", false,
		"output results as JSON")
	c.Flags().BoolVar(&validateSuggest, "suggest", false,
		"report unknown option names with the closest known option")
	c.Flags().StringSliceVar(&validateDisallow, "disallow", nil,
		"reject these options even though glob accepts them")
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate glob option documents",
	Long: `Validate one or more glob option documents.

Each document holds a single options object in JSON, YAML or TOML. The format
is taken from the file extension unless --format is given; --format is
required when reading from stdin ("-").

Type mismatches are errors. Misspelled, deprecated, disallowed or unknown
options and conflicting combinations are warnings, which only fail the run
with --strict.

Exit codes:
  0 - All documents passed
  1 - Validation failed, or a document could not be read or parsed`,
	Example: `  # Validate a document
  globcheck validate glob.json

  # Validate several documents, failing on warnings
  globcheck validate --strict a.yaml b.toml

  # Reject options the caller does not support
  globcheck validate --disallow follow,realpath opts.json

  # JSON output for CI/CD
  cat opts.yaml | globcheck validate --format yaml --json -

  See Also:
    globcheck options  - List the options glob accepts`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveValidateOptions(cmd, settings())
		if err != nil {
			return err
		}
		return runValidate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
	},
}

// validateOptions is the merged result of flags and configuration.
type validateOptions struct {
	Format      decode.Format
	Report      validator.Format
	Strict      bool
	Suggest     bool
	Disallow    []string
	MaxFileSize int64
}

// resolveValidateOptions layers explicitly set flags over cfg.
func resolveValidateOptions(cmd *cobra.Command, cfg *config.Config) (validateOptions, error) {
	opts := validateOptions{
		Strict:      cfg.Strict,
		Suggest:     cfg.SuggestUnknown,
		Disallow:    append([]string(nil), cfg.Disallow...),
		MaxFileSize: cfg.MaxFileSize,
	}

	if validateFormat != "" {
		f, err := decode.ParseFormat(validateFormat)
		if err != nil {
			return opts, errors.NewUserError(err, "Use --format json, yaml or toml")
		}
		opts.Format = f
	}

	report := cfg.Format
	if validateJSON {
		report = string(validator.FormatJSON)
	}
	if report == "" {
		report = string(validator.FormatText)
	}
	f, err := validator.ParseFormat(report)
	if err != nil {
		return opts, errors.NewConfigError(err)
	}
	opts.Report = f

	if cmd != nil && cmd.Flags().Changed("strict") {
		opts.Strict = validateStrict
	}
	if cmd != nil && cmd.Flags().Changed("suggest") {
		opts.Suggest = validateSuggest
	}

	if cmd != nil && cmd.Flags().Changed("disallow") {
		opts.Disallow = opts.Disallow[:0]
	}
	var unknown []string
	for _, name := range validateDisallow {
		name = strings.TrimSpace(name)
		if _, ok := globopts.Lookup(name); !ok {
			unknown = append(unknown, name)
			continue
		}
		opts.Disallow = append(opts.Disallow, name)
	}
	if len(unknown) > 0 {
		err := errors.Newf("unknown option(s) in --disallow: %s", strings.Join(unknown, ", "))
		return opts, errors.NewUserError(err, "Run 'globcheck options' to see valid option names")
	}

	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = fileutil.MaxFileSize
	}
	return opts, nil
}

// validators returns the extension validators selected by opts.
func (o validateOptions) validators() []globopts.Validator {
	var vs []globopts.Validator
	if len(o.Disallow) > 0 {
		vs = append(vs, globopts.Disallow(o.Disallow...))
	}
	if o.Suggest {
		vs = append(vs, globopts.SuggestUnknown())
	}
	return vs
}

func runValidate(ctx context.Context, stdin io.Reader, w io.Writer, args []string, opts validateOptions) error {
	logger := logging.FromContext(ctx)
	validators := opts.validators()

	results := make([]*validator.Result, 0, len(args))
	for _, arg := range args {
		source := arg
		if arg == stdinName {
			source = "<stdin>"
		}

		doc, err := readDocument(stdin, arg, opts)
		if err != nil {
			return err
		}
		logger.Debug("decoded document", "source", source)

		diags := globopts.Validate(doc, validators...)
		for _, d := range diags {
			logger.Log(ctx, logging.LevelTrace, "diagnostic",
				"source", source,
				"kind", d.Kind.String(),
				"option", d.Option,
				"key", d.Key,
				"message", d.Message)
		}
		logger.Info("validated document", "source", source, "diagnostics", len(diags))

		result := validator.FromDiagnostics(source, diags)
		if doc == globopts.Undefined {
			result.AddInfo("", emptyDocumentNote, nil)
		}
		results = append(results, result)
	}

	logging.ConfigureColor(w)
	reporter := validator.NewReporter(w, opts.Report, validator.WithStrict(opts.Strict))
	if err := reporter.ReportAll(results); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing report"), "")
	}

	if !validator.AllPassed(results, opts.Strict) {
		return errors.NewExitError(errors.ErrValidationFailed, errors.ExitUser)
	}
	return nil
}

// readDocument reads and decodes one argument. Without --format, files are
// decoded by extension.
func readDocument(stdin io.Reader, arg string, opts validateOptions) (any, error) {
	var (
		data []byte
		err  error
	)
	if arg == stdinName {
		if opts.Format == "" {
			return nil, errors.NewUserError(
				errors.New("cannot infer the format of stdin"),
				"Pass --format json, yaml or toml")
		}
		data, err = fileutil.ReadAllMax(stdin, opts.MaxFileSize)
	} else {
		data, err = fileutil.ReadFileMax(arg, opts.MaxFileSize)
	}
	if err != nil {
		return nil, readError(arg, err)
	}

	var doc any
	if opts.Format == "" {
		doc, err = decode.DecodeFile(arg, data)
	} else {
		doc, err = decode.Decode(data, opts.Format)
	}
	if err != nil {
		return nil, errors.NewUserError(errors.Wrapf(err, "decoding %s", arg), "")
	}
	return doc, nil
}

func readError(arg string, err error) error {
	err = errors.Wrapf(err, "reading %s", arg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.NewUserError(errors.Mark(err, errors.ErrNotFound), "Check the file path")
	case errors.Is(err, fileutil.ErrFileTooLarge):
		return errors.NewUserError(err, "Raise max_file_size in the config file")
	default:
		return errors.NewSystemError(err, "")
	}
}
