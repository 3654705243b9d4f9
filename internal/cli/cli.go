// Package cli implements the coffeetier command-line interface.
//
// The CLI renders tier list drafts stored as TOML, YAML or JSON files, fills
// new drafts through an interactive terminal form, previews them as terminal
// tables and serves the web form. It is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - render: Render a draft file to the composite PNG report
//   - table: Render one category, or arbitrary entries, as a single table PNG
//   - preview: Print the six tables of a draft in two columns
//   - fill: Fill in a draft interactively and optionally render it
//   - serve: Start the web form
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coffeetier/pkg/buildinfo"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
	"github.com/matzehuels/coffeetier/pkg/render"
)

// appName is the application name used for directories and display.
const appName = "coffeetier"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Coffeetier turns your coffee year into a tier list image",
		Long:         `Coffeetier collects up to five coffees for each of six tiers (S, A, B, C, D, E) and renders them as a shareable PNG report, from the terminal or through a small web form.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.fillCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// renderFlags are the image options shared by commands that write PNGs.
type renderFlags struct {
	scale    float64
	fontSize float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.scale, "scale", render.DefaultScale, "cell scale factor for single tables")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", render.DefaultFontSize, "table font size in points")
}

func (f renderFlags) options() []render.Option {
	return []render.Option{render.WithScale(f.scale), render.WithFontSize(f.fontSize)}
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(f renderFlags) *pipeline.Runner {
	return pipeline.NewRunner(c.Logger, f.options()...)
}
