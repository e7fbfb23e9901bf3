// Package watcher reports changed source files with debounce.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"cystub/internal/logger"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Accept filters files; directories are always watched unless SkipDir
	// rejects them.
	Accept   func(path string) bool
	SkipDir  func(path string) bool
	Debounce time.Duration
}

// Watcher watches directory trees recursively.
type Watcher struct {
	fsw  *fsnotify.Watcher
	opts Options

	mu      sync.Mutex
	pending map[string]struct{}
}

// New starts watching dirs and every directory below them.
func New(dirs []string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Accept == nil {
		opts.Accept = func(string) bool { return true }
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	w := &Watcher{fsw: fsw, opts: opts, pending: map[string]struct{}{}}
	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run delivers batches of changed files, sorted, until ctx is done. Batches
// never overlap: the next one waits for onChange to return.
func (w *Watcher) Run(ctx context.Context, onChange func([]string)) error {
	defer func() { _ = w.fsw.Close() }()
	log := logger.Component("watcher")

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Warnw("failed to watch new directory", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(ev) {
				continue
			}
			w.mu.Lock()
			w.pending[ev.Name] = struct{}{}
			w.mu.Unlock()
			timer.Reset(w.opts.Debounce)

		case <-timer.C:
			if batch := w.drain(); len(batch) > 0 {
				log.Debugw("changes", "files", len(batch))
				onChange(batch)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnw("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	return w.opts.Accept(ev.Name)
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	clear(w.pending)
	slices.Sort(out)
	return out
}

// addTree adds root and its subdirectories. Unreadable subdirectories are
// logged and skipped; an unreadable root fails.
func (w *Watcher) addTree(root string) error {
	log := logger.Component("watcher")
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return errors.Wrapf(err, "cannot watch %s", root)
			}
			log.Warnw("skipping directory", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.opts.SkipDir != nil && w.opts.SkipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.Warnw("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}
