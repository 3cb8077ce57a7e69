package generator

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/moddoc/internal/logfields"
)

// debounceWindow batches bursts of filesystem events into one rebuild.
const debounceWindow = 500 * time.Millisecond

// Watch rebuilds whenever a source file in any configured module changes.
// It blocks until the context is canceled.
func (g *Generator) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, in := range g.cfg.Modules {
		if err := addRecursive(w, in.Path); err != nil {
			return err
		}
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceWindow, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}

	slog.Info("Watching for changes", slog.Int("modules", len(g.cfg.Modules)))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(ev.Name))
			schedule()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-fire:
			if _, err := g.Run(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := filepath.Ext(base)
	return ext == ".go" || ext == ".yaml" || ext == ".yml" || ext == ".md" || base == "go.mod"
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "vendor" || name == "testdata") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
