// Package watcher signals when another process writes to the registry database.
//
// The in-process broker only sees mutations made through this process's store.
// Operators sharing one database file from several terminals rely on the
// watcher to notice each other's writes: it watches the database directory and
// emits a single debounced signal per burst of writes to the database file or
// its WAL.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/platekeeper/internal/log"
)

// Watcher monitors the registry database for changes and sends notifications.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	relevant  map[string]bool
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	DBPath      string
	DebounceDur time.Duration
}

// DefaultConfig returns the watcher defaults for dbPath.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:      dbPath,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a database watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("watcher: database path is required")
	}
	if cfg.DebounceDur <= 0 {
		cfg.DebounceDur = DefaultConfig(cfg.DBPath).DebounceDur
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	base := filepath.Base(cfg.DBPath)
	return &Watcher{
		fsWatcher: fsw,
		dir:       filepath.Dir(cfg.DBPath),
		relevant: map[string]bool{
			base:          true,
			base + "-wal": true,
		},
		debounce: cfg.DebounceDur,
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the database directory.
// The returned channel receives one signal per debounced burst of writes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	log.Debug(log.CatWatcher, "watching database directory", "dir", w.dir, "debounce", w.debounce)

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			// Each relevant event pushes the deadline back
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case w.onChange <- struct{}{}:
			default:
				// A signal is already pending; the reader will refresh once.
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err, "dir", w.dir)

		case <-w.done:
			return
		}
	}
}

// isRelevantEvent reports writes or creates of the database or its WAL.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return w.relevant[filepath.Base(event.Name)]
}
