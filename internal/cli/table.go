package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/io"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// Defaults for free-form tables.
const (
	defaultTableLabel = "Coffees"
	defaultTableColor = "silver"
)

// tableOpts holds the command-line flags for the table command.
type tableOpts struct {
	output   string
	label    string
	color    string
	category string // render one category of a draft instead of ENTRY args
	flags    renderFlags
}

// tableCommand creates the table command for rendering a single table image.
func (c *CLI) tableCommand() *cobra.Command {
	opts := tableOpts{label: defaultTableLabel, color: defaultTableColor}

	cmd := &cobra.Command{
		Use:   "table [ENTRY...]",
		Short: "Render a single tier table PNG",
		Long: `Render one table image.

With --category, the table for that category is taken from the draft FILE and
coloured like the report. Otherwise every argument becomes one row under
--label on a --color header (hex like #FFB3BA or a colour name).`,
		Example: `  coffeetier table "Kenya AA" "Geisha" --label "Espresso" --color "#BAE1FF"
  coffeetier table --category S draft.toml -o s.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.category != "" {
				if len(args) != 1 {
					return errors.New(errors.ErrCodeInvalidInput, "--category needs exactly one draft FILE")
				}
				return c.runCategoryTable(cmd.Context(), args[0], opts)
			}
			return c.runCustomTable(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from the label)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", opts.label, "header text")
	cmd.Flags().StringVarP(&opts.color, "color", "c", opts.color, "header background colour")
	cmd.Flags().StringVar(&opts.category, "category", "", "render category S, A, B, C, D or E from a draft file")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories)
	opts.flags.register(cmd)

	return cmd
}

func (c *CLI) runCategoryTable(ctx context.Context, path string, opts tableOpts) error {
	cat, err := tier.ParseCategory(opts.category)
	if err != nil {
		return err
	}
	draft, err := io.ReadFile(path)
	if err != nil {
		return err
	}
	art, err := c.newRunner(opts.flags).Table(ctx, cat, draft)
	if err != nil {
		return err
	}
	return saveTable(ctx, art, opts.output)
}

func (c *CLI) runCustomTable(ctx context.Context, rows []string, opts tableOpts) error {
	if err := errors.ValidateColorSpec(opts.color); err != nil {
		return err
	}
	art, err := c.newRunner(opts.flags).CustomTable(ctx, rows, opts.label, opts.color)
	if err != nil {
		return err
	}
	return saveTable(ctx, art, opts.output)
}

func saveTable(ctx context.Context, art *pipeline.Artifact, output string) error {
	out := output
	if out == "" {
		out = localFilename(art)
	}
	if err := writeArtifact(out, art); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("wrote table", "path", out, "bytes", art.Size)
	printSuccess("Table saved")
	printFile(out)
	return nil
}
