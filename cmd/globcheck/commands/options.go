package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/globcheck/internal/errors"
	"github.com/thoreinstein/globcheck/pkg/globopts"
)

var (
	optionsJSON        bool
	optionsInteractive bool
)

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "Output in JSON format")
	optionsCmd.Flags().BoolVarP(&optionsInteractive, "interactive", "i", false,
		"pick an option with a fuzzy finder and show its details")
	optionsCmd.MarkFlagsMutuallyExclusive("json", "interactive")
	rootCmd.AddCommand(optionsCmd)
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the options glob accepts",
	Long: `List every option of the glob schema with the kind of value it takes.

Use --interactive to search the options with a fuzzy finder; the selected
option is printed with its known misspellings.`,
	Example: `  # List all options
  globcheck options

  # Search interactively
  globcheck options -i

  # Output as JSON
  globcheck options --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := globopts.Options()
		switch {
		case optionsInteractive:
			return runOptionsInteractive(cmd.OutOrStdout(), fuzzyPicker{}, opts)
		case optionsJSON:
			return outputOptionsJSON(cmd.OutOrStdout(), opts)
		default:
			return outputOptionsTabular(cmd.OutOrStdout(), opts)
		}
	},
}

// optionJSON represents an option in JSON output format.
type optionJSON struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Description  string   `json:"description"`
	Misspellings []string `json:"misspellings,omitempty"`
}

func outputOptionsJSON(w io.Writer, opts []globopts.Option) error {
	out := make([]optionJSON, len(opts))
	for i, o := range opts {
		out[i] = optionJSON{
			Name:         o.Name,
			Kind:         o.Kind.String(),
			Description:  o.Description,
			Misspellings: globopts.Misspellings(o.Name),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "encoding output")
}

func outputOptionsTabular(w io.Writer, opts []globopts.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tDESCRIPTION")
	for _, o := range opts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Name, o.Kind, o.Description)
	}
	return errors.Wrap(tw.Flush(), "writing options")
}

// picker chooses one of n items, returning its index.
type picker interface {
	Pick(n int, label func(i int) string, preview func(i int) string) (int, error)
}

// fuzzyPicker picks in the terminal with go-fuzzyfinder.
type fuzzyPicker struct{}

func (fuzzyPicker) Pick(n int, label func(i int) string, preview func(i int) string) (int, error) {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return fuzzyfinder.Find(items, label,
		fuzzyfinder.WithPromptString("option> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(i)
		}),
	)
}

func runOptionsInteractive(w io.Writer, p picker, opts []globopts.Option) error {
	if len(opts) == 0 {
		fmt.Fprintln(w, "No options found.")
		return nil
	}

	idx, err := p.Pick(len(opts),
		func(i int) string { return opts[i].Name },
		func(i int) string { return describeOption(opts[i]) },
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	fmt.Fprint(w, describeOption(opts[idx]))
	return nil
}

func describeOption(o globopts.Option) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", o.Name)
	fmt.Fprintf(&b, "Kind: %s\n", o.Kind)
	fmt.Fprintf(&b, "Description: %s\n", o.Description)
	if typos := globopts.Misspellings(o.Name); len(typos) > 0 {
		fmt.Fprintf(&b, "Misspellings: %s\n", strings.Join(typos, ", "))
	}
	return b.String()
}
