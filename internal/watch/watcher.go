// Package watch regenerates the site index when content sources change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
)

// DefaultDebounce is used when a non-positive debounce is supplied.
const DefaultDebounce = 2 * time.Second

// ContentWatcher monitors content sources and invokes a callback once a
// burst of file events has settled.
type ContentWatcher struct {
	files    map[string]struct{} // absolute paths of watched single-file sources
	roots    []string            // absolute paths of watched directory sources
	ignored  map[string]struct{} // absolute paths of files written by regeneration
	onChange func(context.Context)

	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	started      bool
	stopped      bool
	stopChan     chan struct{}
	changeChan   chan struct{}
	wg           sync.WaitGroup
	debounceTime time.Duration
}

// Option configures a ContentWatcher.
type Option func(*ContentWatcher) error

// sidecarSuffixes are files SQLite keeps next to a database.
var sidecarSuffixes = []string{"-wal", "-shm", "-journal"}

// WithIgnored drops events for paths and their SQLite sidecar files. Files
// the callback itself writes inside a watched tree belong here.
func WithIgnored(paths ...string) Option {
	return func(cw *ContentWatcher) error {
		for _, p := range paths {
			if p == "" {
				continue
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("failed to resolve ignored path %s: %w", p, err)
			}
			cw.ignored[abs] = struct{}{}
			for _, suffix := range sidecarSuffixes {
				cw.ignored[abs+suffix] = struct{}{}
			}
		}
		return nil
	}
}

// NewContentWatcher creates a watcher over paths. Each path may be a file or a directory.
func NewContentWatcher(paths []string, debounce time.Duration, onChange func(context.Context), opts ...Option) (*ContentWatcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no content paths to watch")
	}
	if onChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	cw := &ContentWatcher{
		files:        make(map[string]struct{}),
		ignored:      make(map[string]struct{}),
		onChange:     onChange,
		stopChan:     make(chan struct{}),
		changeChan:   make(chan struct{}, 1),
		debounceTime: debounce,
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve content path %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to stat content path %s: %w", p, err)
		}
		if info.IsDir() {
			cw.roots = append(cw.roots, abs)
		} else {
			cw.files[abs] = struct{}{}
		}
	}
	for _, opt := range opts {
		if err := opt(cw); err != nil {
			return nil, err
		}
	}
	return cw, nil
}

// Start begins monitoring. Files are watched through their parent directory,
// which survives editors that replace files via rename.
func (cw *ContentWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.started {
		return fmt.Errorf("content watcher already started")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw.watcher = watcher

	for f := range cw.files {
		dir := filepath.Dir(f)
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	for _, root := range cw.roots {
		if err := cw.addTree(root); err != nil {
			_ = watcher.Close()
			return err
		}
	}

	slog.Info("Starting content watcher",
		slog.Int("files", len(cw.files)),
		slog.Int("directories", len(cw.roots)),
		slog.Duration("debounce", cw.debounceTime))

	cw.started = true
	cw.wg.Add(2)
	go cw.watchLoop(ctx)
	go cw.changeLoop(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutines, including an in-flight callback.
func (cw *ContentWatcher) Stop() error {
	cw.mu.Lock()
	if !cw.started || cw.stopped {
		cw.mu.Unlock()
		return nil
	}
	cw.stopped = true
	close(cw.stopChan)
	cw.mu.Unlock()

	slog.Info("Stopping content watcher")
	err := cw.watcher.Close()
	cw.wg.Wait()
	return err
}

func (cw *ContentWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := cw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether an event touches a watched source.
func (cw *ContentWatcher) relevant(name string) bool {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	if _, ok := cw.ignored[name]; ok {
		return false
	}
	if _, ok := cw.files[name]; ok {
		return true
	}
	for _, root := range cw.roots {
		if name == root || strings.HasPrefix(name, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (cw *ContentWatcher) watchLoop(ctx context.Context) {
	defer cw.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !cw.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := cw.addTree(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			slog.Debug("Content change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			cw.triggerChange()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

// changeLoop invokes the callback once no event has arrived for the debounce period.
func (cw *ContentWatcher) changeLoop(ctx context.Context) {
	defer cw.wg.Done()
	timer := time.NewTimer(cw.debounceTime)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case <-cw.changeChan:
			timer.Reset(cw.debounceTime)
		case <-timer.C:
			cw.onChange(ctx)
		}
	}
}

func (cw *ContentWatcher) triggerChange() {
	select {
	case cw.changeChan <- struct{}{}:
	default:
		// change already pending
	}
}
