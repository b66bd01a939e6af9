// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// ChangeFunc is called after a reload with the previous config, the new one
// and the dotted keys that differ.
type ChangeFunc func(old, updated *Config, changed []string)

// Watcher reloads the config when its file changes and notifies listeners.
// Editors write files in several steps, so events are debounced.
type Watcher struct {
	dir      string
	loader   func() (*Config, error)
	debounce time.Duration
	log      zerolog.Logger

	mu        sync.Mutex
	current   *Config
	listeners []ChangeFunc

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	done    chan struct{}
}

// NewWatcher creates a watcher for the default config directory.
func NewWatcher(current *Config, log zerolog.Logger) (*Watcher, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}
	return NewWatcherForDir(dir, current, Load, log)
}

// NewWatcherForDir creates a watcher for dir that reloads with loader.
func NewWatcherForDir(dir string, current *Config, loader func() (*Config, error), log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		dir:      dir,
		loader:   loader,
		debounce: 200 * time.Millisecond,
		log:      log.With().Str("component", "config-watcher").Logger(),
		current:  current,
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// OnChange registers a listener. Listeners run on the watcher goroutine.
func (w *Watcher) OnChange(fn ChangeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Current returns the most recently loaded config.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Start begins watching. The directory is watched rather than the file so
// that atomic renames are seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	if w.started {
		<-w.done
	}
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isConfigFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.Reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watch error")
		}
	}
}

// Reload loads the config now and notifies listeners if anything changed.
// A config that fails to load is ignored and the previous one is kept.
func (w *Watcher) Reload() {
	updated, err := w.loader()
	if err != nil || updated == nil {
		w.log.Warn().Err(err).Msg("config reload failed, keeping previous settings")
		return
	}

	w.mu.Lock()
	old := w.current
	changed := Diff(old, updated)
	if len(changed) == 0 {
		w.mu.Unlock()
		return
	}
	w.current = updated
	listeners := append([]ChangeFunc(nil), w.listeners...)
	w.mu.Unlock()

	SetGlobal(updated)
	w.log.Info().Strs("keys", changed).Msg("settings changed")

	for _, fn := range listeners {
		fn(old, updated, changed)
	}
}

func isConfigFile(path string) bool {
	switch filepath.Base(path) {
	case "config.toml", "config.json", ".env":
		return true
	}
	return false
}

// Changed reports whether key is in the changed set.
func Changed(changed []string, key string) bool {
	return slices.Contains(changed, key)
}
