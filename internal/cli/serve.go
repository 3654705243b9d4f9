package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coffeetier/internal/server"
	"github.com/matzehuels/coffeetier/pkg/config"
	"github.com/matzehuels/coffeetier/pkg/observability"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
	"github.com/matzehuels/coffeetier/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	configPath string
}

// serveCommand creates the serve command that runs the web form.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tier list web form",
		Long: `Serve the tier list form over HTTP.

Settings come from --config (TOML), then the COFFEETIER_* environment
variables, then --addr. Without a config file the server listens on :8501 and
keeps sessions in memory.`,
		Example: `  coffeetier serve
  coffeetier serve --addr :8080 --config coffeetier.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file")

	return cmd
}

// loadServeConfig resolves the server settings from flags.
func loadServeConfig(opts serveOpts) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	return cfg, cfg.Validate()
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadServeConfig(opts)
	if err != nil {
		return err
	}
	logger.Debug("configuration", "config", cfg.String())

	hooks := observability.LogHooks{Logger: logger}
	observability.SetRenderHooks(hooks)
	observability.SetHTTPHooks(hooks)

	store, err := session.Open(ctx, cfg.SessionOptions())
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := server.New(cfg, store, pipeline.NewRunner(logger, cfg.RenderOptions()...), logger)
	if err != nil {
		return err
	}

	printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	printKeyValue("sessions", cfg.Session.Backend)
	printKeyValue("ttl", cfg.Session.TTL.String())
	return srv.Run(ctx)
}
