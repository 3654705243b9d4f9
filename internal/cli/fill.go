package cli

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/io"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

const defaultDraftFile = "draft.toml"

// fillOpts holds the command-line flags for the fill command.
type fillOpts struct {
	output string
	force  bool
	render bool
	flags  renderFlags
}

// confirm asks a yes/no question. Tests replace it.
var confirm = func(message string, def bool) (bool, error) {
	out := def
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		if stderrors.Is(err, terminal.InterruptErr) {
			return false, context.Canceled
		}
		return false, err
	}
	return out, nil
}

// runForm runs the interactive form. Tests replace it.
var runForm = func(ctx context.Context, m FormModel) (FormModel, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return m, err
	}
	return final.(FormModel), nil
}

// fillCommand creates the fill command for entering a draft interactively.
func (c *CLI) fillCommand() *cobra.Command {
	opts := fillOpts{output: defaultDraftFile}

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in a tier list interactively",
		Long: `Fill in your name and up to five coffees per tier in a terminal form.

The draft is saved to -o (TOML, YAML or JSON by extension). An existing draft
is loaded into the form first; saving over it asks for confirmation unless
--force is set. With --render the composite report is produced right away.`,
		Example: `  coffeetier fill
  coffeetier fill -o mine.yaml --render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFill(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "draft file to write")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite without asking")
	cmd.Flags().BoolVar(&opts.render, "render", false, "render the report after saving")
	opts.flags.register(cmd)

	return cmd
}

func (c *CLI) runFill(ctx context.Context, opts fillOpts) error {
	logger := loggerFromContext(ctx)

	if _, err := io.DetectFormat(opts.output); err != nil {
		return err
	}

	var draft *tier.Draft
	exists := false
	if _, err := os.Stat(opts.output); err == nil {
		exists = true
		if draft, err = io.ReadFile(opts.output); err != nil {
			logger.Warn("existing draft not loaded", "path", opts.output, "error", err)
			draft = nil
		}
	}

	m, err := runForm(ctx, NewFormModel(draft))
	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) {
			return context.Canceled
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "run form")
	}
	if m.Cancelled || !m.Submitted {
		printInfo("Nothing saved")
		return nil
	}

	if exists && !opts.force {
		ok, err := confirm("Overwrite "+opts.output+"?", false)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Kept existing %s", opts.output)
			return nil
		}
	}

	if err := io.WriteFile(opts.output, m.Draft()); err != nil {
		return err
	}
	printSuccess("Draft saved")
	printFile(opts.output)

	if !opts.render {
		printNextStep("Render it", "coffeetier render "+opts.output)
		return nil
	}
	return c.runRender(ctx, opts.output, renderOpts{flags: opts.flags})
}
