// Package watch notices changes to an open folder so the document tree can
// be rebuilt without user action.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/codedocs/pkg/tree"
)

// DefaultDelay is the quiet period after the last change before onChange
// runs.
const DefaultDelay = 250 * time.Millisecond

// Watcher watches a folder recursively and calls onChange once per burst of
// changes that can affect the document tree.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	debounce func(func())
	onChange func()
	log      *logrus.Entry

	closeOnce sync.Once
	done      chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = debounce.New(d)
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(w *Watcher) {
		w.log = log
	}
}

// New starts watching root and every directory below it.
func New(root string, onChange func(), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		fsw:      fsw,
		debounce: debounce.New(DefaultDelay),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logrus.NewEntry(logrus.StandardLogger())
	}
	w.log = w.log.WithField("component", "watch")

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	return w, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.WithError(err).WithField("path", event.Name).Warn("cannot watch new directory")
			}
		}
	}
	if !Relevant(event) {
		return
	}
	w.log.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("change detected")
	w.debounce(w.fire)
}

// fire runs onChange unless the watcher was closed while the debounce
// timer was armed.
func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	w.onChange()
}

// Relevant reports whether event can change the document tree or a
// document's content. Hidden entries such as editor swap files are ignored.
func Relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	isDoc := tree.Extension(base) == tree.DocumentExtension
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// Directories carry no extension; their creation or removal can
		// add or prune whole subtrees.
		return isDoc || tree.Extension(base) == ""
	case event.Has(fsnotify.Write):
		return isDoc
	}
	return false
}

// addTree watches dir and its subdirectories. Symlinked directories are not
// followed, matching the tree builder.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if path == dir {
				return err
			}
			w.log.WithError(err).WithField("path", path).Debug("skipping unwatchable directory")
		}
		return nil
	})
}
