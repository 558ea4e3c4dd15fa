package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/chordflow/parameter"
)

// Watcher monitors an overlay file and emits its decoded contents after each settled write
// The parent directory is watched so editors that replace the file by rename are still seen
type Watcher struct {
	Path    string
	Updates <-chan Update // Read-only external channel

	updates  chan Update // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher for path; logger may be nil
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving overlay path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ch := make(chan Update, 4)
	return &Watcher{
		Path:     abs,
		Updates:  ch,
		updates:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: parameter.WatchDebounce,
		logger:   logger,
	}, nil
}

// Start begins watching; the current file content is emitted once if it decodes
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.Path), err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Updates channel
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.updates)
}

func (w *Watcher) loop() {
	defer close(w.done)

	w.emit()

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.emit()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("overlay watch error", "path", w.Path, "error", err)
		}
	}
}

func (w *Watcher) emit() {
	u, err := DecodeUpdate(w.Path)
	if err != nil {
		// File may be mid-write or removed; the next event retries
		w.logger.Debug("overlay not applied", "path", w.Path, "error", err)
		return
	}
	if u.IsEmpty() {
		return
	}
	w.logger.Info("overlay loaded", "path", w.Path)
	select {
	case w.updates <- u:
	default:
		// Consumer is behind; drop the oldest so the latest overlay wins
		select {
		case <-w.updates:
		default:
		}
		w.updates <- u
	}
}
