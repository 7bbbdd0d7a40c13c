package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mabhi256/jarscope/internal/report"
)

const DefaultDebounce = 500 * time.Millisecond

// Watch analyzes path once and again after every change to it, until ctx
// is done. The parent directory is watched because build tools usually
// replace archives by rename. Bursts of events within debounce produce a
// single run.
func (a *Analyzer) Watch(ctx context.Context, path string, debounce time.Duration, onResult func(*report.Document, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	run := func() {
		doc, err := a.AnalyzeFile(ctx, absPath)
		if ctx.Err() != nil {
			return
		}
		onResult(doc, err)
	}
	run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				a.logger.Debug("archive changed", slog.String("archive", absPath), slog.String("op", event.Op.String()))
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("file watcher error", slog.Any("error", err))

		case <-timer.C:
			run()
		}
	}
}
