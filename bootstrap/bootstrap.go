// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artpar/postshop/adapters/cache"
	"github.com/artpar/postshop/adapters/clock"
	apihttp "github.com/artpar/postshop/adapters/http"
	"github.com/artpar/postshop/adapters/idgen"
	"github.com/artpar/postshop/adapters/memory"
	"github.com/artpar/postshop/adapters/metrics"
	"github.com/artpar/postshop/adapters/sanitize"
	"github.com/artpar/postshop/adapters/sqlite"
	"github.com/artpar/postshop/app"
	"github.com/artpar/postshop/config"
	"github.com/artpar/postshop/ports"
	"github.com/artpar/postshop/web"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options carries build information and process-level settings.
type Options struct {
	Version string
	Commit  string

	// LogOutput receives log lines. Defaults to os.Stdout.
	LogOutput io.Writer
}

// App represents the running application.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	DB         *sqlite.DB // nil with the memory driver
	Metrics    *metrics.Collector
	Cache      ports.PageCache
	Posts      *app.PostService
	Products   *app.ProductService
	Handler    http.Handler
	HTTPServer *http.Server

	holder *config.Holder
}

// New creates and initializes the application from cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stdout
	}
	logger := NewLogger(cfg.Logging, opts.LogOutput)

	logger.Info().
		Str("version", opts.Version).
		Str("driver", cfg.Database.Driver).
		Msg("initializing postshop")

	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	postStore, productStore, err := a.initStores()
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	a.initCache()

	deps := app.Deps{
		Clock:     clock.Real{},
		IDs:       idgen.UUID{},
		Sanitizer: sanitize.New(),
		Cache:     a.Cache,
		Metrics:   a.Metrics,
		Logger:    logger,
	}
	a.Posts = app.NewPostService(postStore, deps)
	a.Products = app.NewProductService(productStore, deps)

	if err := a.initHTTP(opts, deps.Sanitizer); err != nil {
		a.closeDB()
		return nil, fmt.Errorf("init http server: %w", err)
	}

	return a, nil
}

func (a *App) initStores() (ports.PostStore, ports.ProductStore, error) {
	if a.Config.Database.Driver == "memory" {
		a.Logger.Warn().Msg("using in-memory storage; data is lost on exit")
		return memory.NewPostStore(), memory.NewProductStore(), nil
	}

	db, err := sqlite.Open(a.Config.Database.DSN)
	if err != nil {
		return nil, nil, err
	}

	applied, err := db.Migrate(context.Background())
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if len(applied) > 0 {
		a.Logger.Info().Strs("versions", applied).Msg("applied migrations")
	}

	a.DB = db
	a.Logger.Info().Str("dsn", a.Config.Database.DSN).Msg("database connected")
	return sqlite.NewPostStore(db), sqlite.NewProductStore(db), nil
}

func (a *App) initCache() {
	cfg := a.Config.Cache
	if !cfg.Enabled {
		a.Cache = cache.Noop{}
		a.Logger.Info().Msg("page cache disabled")
		return
	}
	a.Cache = cache.NewMemory(cfg.TTL, cfg.MaxEntries, cache.WithMetrics(a.Metrics))
	a.Logger.Info().
		Dur("ttl", cfg.TTL).
		Int("max_entries", cfg.MaxEntries).
		Msg("page cache enabled")
}

func (a *App) initHTTP(opts Options, sanitizer ports.Sanitizer) error {
	cfg := a.Config

	handler, err := web.NewHandler(web.Deps{
		Posts:     a.Posts,
		Products:  a.Products,
		Cache:     a.Cache,
		Sanitizer: sanitizer,
		PerPage:   cfg.Pagination.PerPage,
		Logger:    a.Logger,
		Version:   opts.Version,
	})
	if err != nil {
		return fmt.Errorf("web handler: %w", err)
	}

	var pinger apihttp.Pinger
	if a.DB != nil {
		pinger = a.DB
	}

	a.Handler = apihttp.NewRouter(handler.Router(), apihttp.NewHealthHandler(pinger), a.Logger, apihttp.RouterConfig{
		Metrics:        a.Metrics,
		MetricsPath:    cfg.Metrics.Path,
		RequestTimeout: cfg.Server.RequestTimeout,
		Version:        opts.Version,
		Commit:         opts.Commit,
	})

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return nil
}

// Watch applies reloadable settings from h whenever the file changes.
// The holder is stopped on Shutdown.
func (a *App) Watch(h *config.Holder) {
	a.holder = h
	h.OnChange(func(cfg *config.Config) {
		a.ApplyConfig(cfg)
		a.Metrics.ConfigReloaded(nil)
	})
	h.OnError(func(err error) {
		a.Metrics.ConfigReloaded(err)
	})
}

// ApplyConfig re-applies the settings that can change at runtime:
// the log level and the page cache TTL.
func (a *App) ApplyConfig(cfg *config.Config) {
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if m, ok := a.Cache.(*cache.Memory); ok {
		m.SetTTL(cfg.Cache.TTL)
	}
	a.Logger.Info().
		Str("log_level", cfg.Logging.Level).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("runtime settings applied")
}

// Run starts the HTTP server and blocks until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the server fails. It shuts the application down
// before returning.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.HTTPServer.Addr)
	if err != nil {
		a.Shutdown(context.Background())
		return fmt.Errorf("listen: %w", err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info().
			Str("addr", ln.Addr().String()).
			Msg("starting http server")
		if err := a.HTTPServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown(ctx context.Context) error {
	if a.holder != nil {
		a.holder.Stop()
		a.holder = nil
	}

	var errs []error
	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
			errs = append(errs, err)
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, err)
	}

	a.Logger.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.DB == nil {
		return nil
	}
	err := a.DB.Close()
	if err != nil {
		a.Logger.Error().Err(err).Msg("database close error")
	}
	a.DB = nil
	return err
}

// NewLogger builds the process logger from the logging settings and sets
// the global level.
func NewLogger(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
