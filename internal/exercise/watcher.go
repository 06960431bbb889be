package exercise

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads a catalog when screen files in a directory change. Each
// reload replaces the catalog's overlay with the directory's current
// contents, so a deleted file takes its screen with it (or brings back the
// builtin screen it shadowed).
type Watcher struct {
	dir      string
	catalog  *Catalog
	logger   *log.Logger
	debounce time.Duration
	onReload func(screens int)

	watcher *fsnotify.Watcher

	mu       sync.Mutex
	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once
}

type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// OnReload is called after every successful reload with the number of
// screens read from the directory.
func OnReload(fn func(screens int)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

func NewWatcher(dir string, catalog *Catalog, logger *log.Logger, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		catalog:  catalog,
		logger:   logger,
		debounce: defaultDebounce,
		watcher:  fsw,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) Start() {
	go w.eventLoop()
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".yaml" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("exercise watcher error", "err", err)
		}
	}
}

// schedule coalesces bursts of events into one reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	screens, err := DirLoader(w.dir).ListScreens()
	if err != nil {
		w.logger.Warn("exercise reload failed", "dir", w.dir, "err", err)
		return
	}
	w.catalog.ReplaceOverlay(screens)
	w.logger.Info("exercises reloaded", "dir", w.dir, "screens", len(screens))
	if w.onReload != nil {
		w.onReload(len(screens))
	}
}
