package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/michaelgov-ctrl/svg-clock/clock"
)

// Watcher watches a config file for changes and reloads it. It serves the
// presets of the last valid version of the file.
type Watcher struct {
	path     string
	config   *Config
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	onChange func(*Config)
	done     chan struct{}
}

func NewWatcher(path string, logger *slog.Logger, onChange func(*Config)) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     path,
		config:   cfg,
		watcher:  fsWatcher,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	// editors replace files, so watch the directory
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.watch()

	return w, nil
}

func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) Preset(name string) (clock.Config, bool) {
	return w.Config().Preset(name)
}

func (w *Watcher) watch() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("failed to reload config", "path", w.path, "error", err)
		return
	}

	if err := cfg.Validate(); err != nil {
		w.logger.Error("invalid config after reload", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	w.config = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path, "presets", cfg.Names())

	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
