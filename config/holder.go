// Package config provides configuration loading and hot reload.
package config

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// setting is one config key and whether a running process can apply it.
type setting struct {
	name       string
	reloadable bool
	value      func(*Config) any
}

var settings = []setting{
	{"server.host", false, func(c *Config) any { return c.Server.Host }},
	{"server.port", false, func(c *Config) any { return c.Server.Port }},
	{"server.read_timeout", false, func(c *Config) any { return c.Server.ReadTimeout }},
	{"server.write_timeout", false, func(c *Config) any { return c.Server.WriteTimeout }},
	{"server.request_timeout", false, func(c *Config) any { return c.Server.RequestTimeout }},
	{"database.driver", false, func(c *Config) any { return c.Database.Driver }},
	{"database.dsn", false, func(c *Config) any { return c.Database.DSN }},
	{"cache.enabled", false, func(c *Config) any { return c.Cache.Enabled }},
	{"cache.ttl", true, func(c *Config) any { return c.Cache.TTL }},
	{"cache.max_entries", false, func(c *Config) any { return c.Cache.MaxEntries }},
	{"logging.level", true, func(c *Config) any { return c.Logging.Level }},
	{"logging.format", false, func(c *Config) any { return c.Logging.Format }},
	{"metrics.enabled", false, func(c *Config) any { return c.Metrics.Enabled }},
	{"metrics.path", false, func(c *Config) any { return c.Metrics.Path }},
	{"pagination.per_page", false, func(c *Config) any { return c.Pagination.PerPage }},
}

// ReloadableFields returns the keys applied without a restart.
func ReloadableFields() []string {
	return settingNames(true)
}

// NonReloadableFields returns the keys that need a restart.
func NonReloadableFields() []string {
	return settingNames(false)
}

func settingNames(reloadable bool) []string {
	var names []string
	for _, s := range settings {
		if s.reloadable == reloadable {
			names = append(names, s.name)
		}
	}
	return names
}

// Changed returns the keys whose values differ, split by whether they can
// be applied live.
func Changed(old, new *Config) (live, restart []string) {
	for _, s := range settings {
		if s.value(old) == s.value(new) {
			continue
		}
		if s.reloadable {
			live = append(live, s.name)
		} else {
			restart = append(restart, s.name)
		}
	}
	return live, restart
}

// settleDelay groups the bursts of events editors emit for one save.
const settleDelay = 100 * time.Millisecond

// Holder owns the current configuration and reloads it from its file on
// change or SIGHUP. Get is lock-free.
type Holder struct {
	current atomic.Pointer[Config]
	path    string
	logger  zerolog.Logger

	mu       sync.Mutex // guards the hook slices and reloads
	onChange []func(*Config)
	onError  []func(error)

	watcher  *fsnotify.Watcher
	stop     chan struct{}
	stopOnce sync.Once
}

// NewHolder loads path and returns a holder for it.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	h := &Holder{path: abs, logger: logger, stop: make(chan struct{})}
	h.current.Store(cfg)
	return h, nil
}

// Get returns the current configuration. Callers must not modify it.
func (h *Holder) Get() *Config {
	return h.current.Load()
}

// Path returns the absolute path of the config file.
func (h *Holder) Path() string {
	return h.path
}

// OnChange registers fn to run after every reload that changed something.
func (h *Holder) OnChange(fn func(*Config)) {
	h.mu.Lock()
	h.onChange = append(h.onChange, fn)
	h.mu.Unlock()
}

// OnError registers fn to run when a reload fails.
func (h *Holder) OnError(fn func(error)) {
	h.mu.Lock()
	h.onError = append(h.onError, fn)
	h.mu.Unlock()
}

// Reload reads the file again. On failure the current config is kept.
func (h *Holder) Reload() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Str("path", h.path).Msg("config reload failed, keeping current config")
		for _, fn := range h.onError {
			fn(err)
		}
		return fmt.Errorf("reload config: %w", err)
	}

	prev := h.current.Swap(next)
	live, restart := Changed(prev, next)
	if len(restart) > 0 {
		h.logger.Warn().Strs("fields", restart).Msg("config changes need a restart to take effect")
	}
	if len(live) == 0 {
		h.logger.Debug().Msg("config reloaded, nothing to apply")
		return nil
	}

	h.logger.Info().Strs("fields", live).Msg("applying config changes")
	for _, fn := range h.onChange {
		fn(next)
	}
	return nil
}

// WatchFile reloads when the file is written or replaced. The directory is
// watched so atomic renames by editors are seen.
func (h *Holder) WatchFile() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(h.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(h.path), err)
	}
	h.watcher = w

	go h.watch(w)
	h.logger.Info().Str("path", h.path).Msg("watching config file")
	return nil
}

func (h *Holder) watch(w *fsnotify.Watcher) {
	name := filepath.Base(h.path)
	var pending *time.Timer

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(settleDelay, func() { _ = h.Reload() })

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Warn().Err(err).Msg("config watcher error")

		case <-h.stop:
			if pending != nil {
				pending.Stop()
			}
			return
		}
	}
}

// WatchSignals reloads on SIGHUP until Stop.
func (h *Holder) WatchSignals() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP)

	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-sig:
				h.logger.Info().Msg("SIGHUP received")
				_ = h.Reload()
			case <-h.stop:
				return
			}
		}
	}()
}

// Stop ends file and signal watching. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}
