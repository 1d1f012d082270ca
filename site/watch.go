package site

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ZacxDev/go-wiki-site/logfields"
)

// Watcher rebuilds the site whenever the pages tree or the template changes.
type Watcher struct {
	builder  *Builder
	watcher  *fsnotify.Watcher
	debounce time.Duration
	// OnBuild, when set, receives the outcome of every rebuild.
	OnBuild func(*Report, error)
}

func NewWatcher(builder *Builder, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	return &Watcher{builder: builder, watcher: w, debounce: debounce}, nil
}

// Run watches until ctx is done. It does not perform an initial build.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addTree(w.builder.site.PagesDir); err != nil {
		return err
	}
	// Watch the template's directory; editors often replace files by rename.
	if err := w.watcher.Add(filepath.Dir(w.builder.site.Template)); err != nil {
		return errors.Wrap(err, "watching template directory")
	}
	w.builder.logger.Info("Watching for changes", logfields.Path(w.builder.site.PagesDir))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch.
				if err := w.addTree(event.Name); err != nil {
					w.builder.logger.Warn("Cannot watch new path", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			w.builder.logger.Debug("Change detected", logfields.Path(event.Name), logfields.Action(event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			report, err := w.builder.Run(ctx, false)
			if w.OnBuild != nil {
				w.OnBuild(report, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.builder.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// relevant filters out events for the template directory's other files and
// for anything inside the output tree.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	site := w.builder.site
	if within(site.PublicDir, event.Name) {
		return false
	}
	if within(site.PagesDir, event.Name) {
		return true
	}
	return filepath.Clean(event.Name) == filepath.Clean(site.Template)
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(p)
	})
	return errors.Wrapf(err, "watching %s", root)
}

func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
