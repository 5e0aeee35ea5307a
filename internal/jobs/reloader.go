package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"trendboard/internal/corpus"
)

// Reloader watches the data root and rebuilds the cached dataset after the
// files change. Bursts of events are coalesced with a debounce window.
type Reloader struct {
	corpus   *corpus.Corpus
	root     string
	debounce time.Duration
	poll     time.Duration
	logger   *zap.Logger

	reloads atomic.Int64
}

// NewReloader creates a reloader for root.
func NewReloader(c *corpus.Corpus, root string, debounce time.Duration, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reloader{
		corpus:   c,
		root:     root,
		debounce: debounce,
		poll:     defaultRootPoll,
		logger:   logger,
	}
}

// defaultRootPoll is how often a missing data root is checked for.
const defaultRootPoll = time.Second

// Reloads returns how many rebuilds have completed.
func (r *Reloader) Reloads() int64 {
	return r.reloads.Load()
}

// Start watches until ctx is cancelled. A missing root is polled for and
// loaded once it appears. It returns an error only if the watcher cannot be
// set up.
func (r *Reloader) Start(ctx context.Context) error {
	created, ok := r.waitForRoot(ctx)
	if !ok {
		r.logger.Info("reloader stopped")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := r.watchTree(watcher); err != nil {
		return err
	}
	if created {
		r.reload(ctx)
	}
	r.logger.Info("reloader started", zap.String("root", r.root), zap.Duration("debounce", r.debounce))

	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reloader stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !r.relevant(watcher, event) {
				continue
			}
			r.logger.Debug("data changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(r.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			r.reload(ctx)
		}
	}
}

// waitForRoot blocks until the root is a directory. created reports whether
// it had to wait; ok is false when ctx ended first.
func (r *Reloader) waitForRoot(ctx context.Context) (created, ok bool) {
	if rootExists(r.root) {
		return false, true
	}
	r.logger.Warn("data root missing, waiting for it to appear", zap.String("root", r.root), zap.Duration("poll", r.poll))

	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, false
		case <-ticker.C:
			if rootExists(r.root) {
				return true, true
			}
		}
	}
}

func rootExists(root string) bool {
	info, err := os.Stat(root)
	return err == nil && info.IsDir()
}

// watchTree adds the root and its topic folders to the watcher.
func (r *Reloader) watchTree(watcher *fsnotify.Watcher) error {
	if err := watcher.Add(r.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.root, err)
	}

	entries, err := os.ReadDir(r.root)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", r.root, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(r.root, e.Name())
		if err := watcher.Add(dir); err != nil {
			r.logger.Warn("failed to watch folder", zap.String("path", dir), zap.Error(err))
		}
	}
	return nil
}

// relevant reports whether event can change the dataset. New topic folders
// are added to the watcher as they appear.
func (r *Reloader) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(r.root) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				r.logger.Warn("failed to watch folder", zap.String("path", event.Name), zap.Error(err))
			}
			return true
		}
	}

	// Removed or renamed folders cannot be stat'ed; treat them as changes too
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}

	return corpus.IsDataFile(event.Name)
}

func (r *Reloader) reload(ctx context.Context) {
	r.corpus.Invalidate(r.root)

	ds, err := r.corpus.Load(ctx, r.root)
	if err != nil {
		r.logger.Error("reload failed", zap.String("root", r.root), zap.Error(err))
		return
	}
	r.reloads.Add(1)
	r.logger.Info("dataset reloaded", zap.Stringer("dataset", ds.ID), zap.Int("records", len(ds.Records)))
}
