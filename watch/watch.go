// Package watch re-tokenizes ACE source files when they change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/storage"
)

type Op int

const (
	Created Op = iota
	Modified
	Deleted
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

type Event struct {
	Path string
	Op   Op
}

// Watcher emits events for files of the watched extensions.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
}

// New creates a watcher. Without extensions the corpus source extensions
// are watched.
func New(extensions []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:    w,
		extensions: withDefaults(extensions),
	}, nil
}

func withDefaults(extensions []string) []string {
	if len(extensions) == 0 {
		return []string{corpus.TextExt, corpus.TaggedExt}
	}
	return extensions
}

func hasExtension(extensions []string, path string) bool {
	return slices.Contains(withDefaults(extensions), filepath.Ext(path))
}

// addTree watches dir and every directory below it. found is called for the
// files of the watched extensions, if not nil.
func (w *Watcher) addTree(dir string, found func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		if found != nil && hasExtension(w.extensions, path) {
			found(path)
		}
		return nil
	})
}

// Watch starts monitoring dir and its subdirectories, including the ones
// created later. The channel is closed when ctx is done or the watcher is
// stopped.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan Event, error) {
	if err := w.addTree(dir, nil); err != nil {
		return nil, err
	}

	events := make(chan Event, 100)

	send := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}

				// files may land in a new directory before it is watched
				if event.Has(fsnotify.Create) {
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						var found []string
						if err := w.addTree(event.Name, func(path string) { found = append(found, path) }); err != nil {
							glog.Warningf("watch %s: %v", event.Name, err)
						}
						for _, path := range found {
							if !send(Event{Path: path, Op: Created}) {
								return
							}
						}
						continue
					}
				}

				if !hasExtension(w.extensions, event.Name) {
					continue
				}

				var op Op
				switch {
				case event.Has(fsnotify.Create):
					op = Created
				case event.Has(fsnotify.Write):
					op = Modified
				case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
					op = Deleted
				default:
					continue
				}

				if !send(Event{Path: event.Name, Op: op}) {
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				glog.Warningf("watch %s: %v", dir, err)
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// Indexer stores the tokenization of changed files. Labels of a doc are
// the directories between Root and the file.
type Indexer struct {
	Splitter *ace.Splitter
	Docs     storage.DocWriter
	Root     string

	// Extensions selects the files Sync stores. The corpus source
	// extensions are used if empty.
	Extensions []string

	// OnDoc is called after each stored doc, if not nil.
	OnDoc func(path string, id int)
}

// Handle tokenizes and stores the file of a create or modify event.
// Deleted files stay in the store.
func (ix *Indexer) Handle(ev Event) error {
	if ev.Op == Deleted {
		glog.Infof("watch: %s deleted, stored doc kept", ev.Path)
		return nil
	}
	return ix.index(ev.Path)
}

func (ix *Indexer) index(path string) error {
	doc, err := corpus.ReadFile(ix.Splitter, path)
	if err != nil {
		return err
	}
	doc.Labels = corpus.Labels(ix.Root, path)

	id, err := ix.Docs.Write(doc)
	if err != nil {
		return err
	}
	glog.V(1).Infof("watch: stored %s as doc %d", path, id)
	if ix.OnDoc != nil {
		ix.OnDoc(path, id)
	}
	return nil
}

// Sync stores every file of the watched extensions below Root.
func (ix *Indexer) Sync() error {
	return filepath.WalkDir(ix.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExtension(ix.Extensions, path) {
			return nil
		}
		return ix.index(path)
	})
}

// Run handles events one at a time until the channel is closed or ctx is
// done. A file that cannot be read is logged and skipped.
func (ix *Indexer) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := ix.Handle(ev); err != nil {
				glog.Warningf("watch: %s %s: %v", ev.Path, ev.Op, err)
			}
		}
	}
}
