package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/io"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string
	flags  renderFlags
}

// renderCommand creates the render command for producing the composite report.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a draft to the composite tier list PNG",
		Long: `Render a draft file (TOML, YAML or JSON) to the six-table tier list report.

Every category needs at least one coffee. The image is written to the current
directory as <name>_coffee_tier_list_2024.png unless -o is given.`,
		Example: `  coffeetier render draft.toml
  coffeetier render draft.yaml -o report.png`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDraftFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from the name)")
	opts.flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	draft, err := io.ReadFile(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded draft", "path", path, "name", draft.Name)

	runner := c.newRunner(opts.flags)
	if _, err := runner.Validate(ctx, draft); err != nil {
		reportMissing(draft)
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering tier list...")
	spinner.Start()
	art, err := runner.Generate(ctx, draft)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}

	out := opts.output
	if out == "" {
		out = localFilename(art)
	}
	spinner.Update("Writing " + out + "...")
	if err := writeArtifact(out, art); err != nil {
		spinner.StopWithError("Could not save tier list")
		return err
	}

	prog.done("Rendered tier list")
	spinner.StopWithSuccess("Tier list saved")
	printFile(out)
	return nil
}

// reportMissing prints the categories that still need an entry.
func reportMissing(d *tier.Draft) {
	missing := d.Submission().Missing()
	if len(missing) == 0 {
		return
	}
	labels := make([]string, len(missing))
	for i, m := range missing {
		labels[i] = m.Heading()
	}
	printWarning("%d of %d categories are empty", len(missing), len(tier.Tiers))
	printMissing(labels)
}

// localFilename makes the generated artifact name safe to create in the
// working directory.
func localFilename(art *pipeline.Artifact) string {
	base := strings.TrimSuffix(art.Filename, ".png")
	return errors.SafeFilename(base, "coffee_tier_list") + ".png"
}

func writeArtifact(path string, art *pipeline.Artifact) error {
	data := make([]byte, art.Size)
	if _, err := art.Data.ReadAt(data, 0); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read rendered image")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
