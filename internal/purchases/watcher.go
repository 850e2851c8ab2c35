package purchases

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rkaran/silverdash/internal/model"
)

// Reloader is what the watcher calls when the file changes.
type Reloader interface {
	Reload(ctx context.Context) model.Dataset
}

// Watcher reloads a provider when the CSV file changes on disk.
// It watches the parent directory so that editors which replace the file
// by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	target   Reloader
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher for path. Bursts of events within debounce
// trigger a single reload.
func NewWatcher(path string, debounce time.Duration, target Reloader, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		target:   target,
		logger:   logger,
	}
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = fw
	w.cancel = cancel

	w.wg.Add(1)
	go w.run(ctx, fw)

	w.logger.Info("Watching states csv", "path", w.path, "debounce", w.debounce)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	fw, cancel := w.watcher, w.cancel
	w.watcher, w.cancel = nil, nil
	w.mu.Unlock()

	if fw == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fw.Close()
		return ctx.Err()
	}

	if err := fw.Close(); err != nil {
		return fmt.Errorf("close fsnotify watcher: %w", err)
	}
	w.logger.Info("Stopped watching states csv", "path", w.path)
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("States csv changed", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", "error", err)

		case <-timer.C:
			w.target.Reload(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
