package cmd

import (
	"context"
	"io/fs"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/esengine/eht/internal/generator"
)

// Watch regenerates the bindings whenever a scanned header changes. Events
// are debounced so editors that write multiple times per save trigger a
// single regeneration.
type Watch struct {
	Generate `embed:""`

	Debounce time.Duration `help:"Quiet period after the last change before regenerating" default:"250ms" env:"EHT_WATCH_DEBOUNCE"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := generator.New(w.config(), logger)
	if err := gen.Run(); err != nil {
		logger.Error("initial generation failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range w.Input {
		if err := watchRecursive(watcher, root); err != nil {
			return err
		}
	}
	logger.Info("Watching for header changes", "inputs", w.Input, "debounce", w.Debounce)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New subdirectories must be picked up so headers created later
			// still trigger regeneration.
			if event.Op.Has(fsnotify.Create) {
				_ = watchRecursive(watcher, event.Name)
			}
			if !strings.HasSuffix(event.Name, w.Suffix) {
				continue
			}
			logger.Debug("header changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-fire:
			if err := gen.Run(); err != nil {
				logger.Error("generation failed", "error", err)
			}
		}
	}
}

// watchRecursive adds root and every directory below it to the watcher.
// Non-directories are ignored so create events for files can be passed in
// unconditionally.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
