package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ralt/photometa/internal/extractor"
	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/scanner"
	"github.com/ralt/photometa/internal/utils"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the quiet period before changed files are extracted
const DefaultDebounce = 250 * time.Millisecond

// ReportFunc receives the report for each debounced batch of changes
type ReportFunc func(*models.BatchReport)

// Watcher re-extracts images as they are created or rewritten
type Watcher struct {
	extractor *extractor.Extractor
	debounce  time.Duration
	onReport  ReportFunc
	ready     chan struct{}
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(ext *extractor.Extractor, debounce time.Duration, onReport ReportFunc) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		extractor: ext,
		debounce:  debounce,
		onReport:  onReport,
		ready:     make(chan struct{}),
	}
}

// Ready is closed once every directory is being watched
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches dirs and their subdirectories until ctx is cancelled
func (w *Watcher) Run(ctx context.Context, dirs []string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range dirs {
		if err := addRecursive(fw, dir); err != nil {
			return &models.PhotoMetaError{
				Type: models.ErrPathNotFound,
				Path: dir,
				Err:  fmt.Errorf("failed to watch directory: %w", err),
			}
		}
		logrus.Infof("Watching %s", dir)
	}
	close(w.ready)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if w.handleEvent(fw, event) {
				pending[event.Name] = struct{}{}
				timer.Reset(w.debounce)
			}

		case wErr, ok := <-fw.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			logrus.Warnf("Watcher error: %v", wErr)

		case <-timer.C:
			w.flush(ctx, pending)
			pending = make(map[string]struct{})
		}
	}
}

// handleEvent reports whether event names an image that needs extracting.
// New directories are added to the watch list.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	logrus.Debugf("Event %s on %s", event.Op, event.Name)

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if utils.IsDir(event.Name) {
			if err := addRecursive(fw, event.Name); err != nil {
				logrus.Warnf("Failed to watch %s: %v", event.Name, err)
			}
			return false
		}
	}

	return scanner.IsSupportedExtension(event.Name)
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	if len(pending) == 0 {
		return
	}

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	logrus.Infof("Re-extracting %d changed files", len(paths))
	report := w.extractor.Extract(ctx, paths)
	if w.onReport != nil {
		w.onReport(report)
	}
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
}
