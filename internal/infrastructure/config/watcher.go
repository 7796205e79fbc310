package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/reeflab/reef/pkg/safego"
)

// Watcher monitors a config file and hot-reloads it on change. Only the
// fields that are safe to change mid-session (log level, demo error rate)
// should be read through Current; structural settings like the socket path
// are fixed at startup.
type Watcher struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	current *Config

	fsw      *fsnotify.Watcher
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewWatcher wraps an already-loaded config. Start must be called to begin
// watching; until then Current just returns the initial config.
func NewWatcher(path string, initial *Config, logger *zap.Logger) *Watcher {
	return &Watcher{
		path:    path,
		current: initial,
		logger:  logger.With(zap.String("component", "config-watcher")),
		stopCh:  make(chan struct{}),
	}
}

// Current returns the latest config (thread-safe).
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching the config file. Missing file is not an error; the
// watch covers the directory so a file created later is still picked up.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	if err := fsw.Add(w.path); err != nil {
		// File may not exist yet; keep running with the initial config.
		w.logger.Debug("Config file not watchable", zap.String("path", w.path), zap.Error(err))
	}

	safego.Go(w.logger, "config-watcher", w.loop)
	return nil
}

// Stop ends the watch. Idempotent.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.fsw != nil {
			_ = w.fsw.Close()
		}
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load()
			if err != nil {
				w.logger.Warn("Config reload failed", zap.Error(err))
				continue
			}
			w.mu.Lock()
			w.current = cfg
			w.mu.Unlock()
			w.logger.Info("Config reloaded", zap.String("path", ev.Name))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watch error", zap.Error(err))
		}
	}
}
