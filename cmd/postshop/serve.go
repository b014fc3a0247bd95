package main

import (
	"fmt"
	"io"
	"os"

	"github.com/artpar/postshop/bootstrap"
	"github.com/artpar/postshop/config"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	var hotReload bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the postshop web server.

The server will:
  - Load configuration from postshop.yaml (or --config)
  - Or load configuration from POSTSHOP_* environment variables
  - Open the database and apply pending migrations
  - Serve the HTML pages, the JSON:API under /api and /metrics

With a config file, edits to logging.level and cache.ttl are applied
without a restart. SIGHUP forces a reload.

Examples:
  postshop serve
  postshop serve --config /etc/postshop/config.yaml
  POSTSHOP_DATABASE_DRIVER=memory postshop serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, hotReload)
		},
	}

	cmd.Flags().BoolVar(&hotReload, "hot-reload", true, "reload the config file when it changes")
	return cmd
}

func runServe(cmd *cobra.Command, opts *cliOptions, hotReload bool) error {
	hasConfigFile := false
	if _, err := os.Stat(opts.cfgFile); err == nil {
		hasConfigFile = true
	}

	cfg, err := config.LoadWithFallback(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if !hasConfigFile {
		fmt.Fprintln(cmd.ErrOrStderr(), "Running with environment variables (no config file)")
	}

	app, err := bootstrap.New(cfg, bootstrap.Options{Version: version, Commit: commit})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Hot reload only works with config file
	if hasConfigFile && hotReload {
		holder, err := config.NewHolder(opts.cfgFile, app.Logger.With().Str("component", "config").Logger())
		if err != nil {
			app.Shutdown(cmd.Context())
			return fmt.Errorf("error watching config: %w", err)
		}
		app.Watch(holder)
		if err := holder.WatchFile(); err != nil {
			app.Logger.Warn().Err(err).Msg("config file watch unavailable")
		}
		holder.WatchSignals()
	}

	// Run (blocks until shutdown)
	return app.Run(cmd.Context())
}

// openApp builds the application for the management commands. Logs go to
// stderr with --verbose and are discarded otherwise.
func openApp(cmd *cobra.Command, opts *cliOptions) (*bootstrap.App, error) {
	cfg, err := config.LoadWithFallback(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	var logOut io.Writer = io.Discard
	if opts.verbose {
		logOut = cmd.ErrOrStderr()
	}

	app, err := bootstrap.New(cfg, bootstrap.Options{Version: version, Commit: commit, LogOutput: logOut})
	if err != nil {
		return nil, fmt.Errorf("error initializing: %w", err)
	}
	return app, nil
}
