package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/storage"
)

const docExt = ".json"

// DocStore keeps one JSON file per doc in a directory. Doc ids are the
// positions of the files in directory order and are stable for the lifetime
// of the store.
type DocStore struct {
	docDir string

	// In-memory cache
	docs   []corpus.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. Content is read lazily.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	h := &DocStore{docDir: docDir}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != docExt {
			continue
		}
		h.docs = append(h.docs, corpus.Doc{
			Id:    len(h.docs),
			Title: strings.TrimSuffix(file.Name(), docExt),
		})
		h.loaded = append(h.loaded, false)
	}

	return h, nil
}

func (h *DocStore) path(title string) string {
	return filepath.Join(h.docDir, title+docExt)
}

// load reads the content of doc id into the cache.
func (h *DocStore) load(id int) (*corpus.Doc, error) {
	doc := &h.docs[id]
	if h.loaded[id] {
		return doc, nil
	}

	full, err := ReadDoc(h.path(doc.Title))
	if err != nil {
		return nil, err
	}
	// Title and Id come from the directory
	doc.Labels = full.Labels
	doc.Paragraphs = full.Paragraphs
	h.loaded[id] = true
	return doc, nil
}

// Preload reads all docs into memory. Docs without one of the labels are
// skipped when labels is not empty.
func (h *DocStore) Preload(labels []string, cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		doc, err := h.load(i)
		if err != nil {
			return err
		}
		if cb != nil && hasAll(*doc, labels) {
			cb(i+1, total, doc.Title)
		}
	}
	return nil
}

func hasAll(doc corpus.Doc, labels []string) bool {
	for _, l := range labels {
		if !doc.HasLabel(l) {
			return false
		}
	}
	return true
}

func (h *DocStore) List(labelMatch string) ([]corpus.Doc, error) {
	docs := make([]corpus.Doc, 0, len(h.docs))
	for i := range h.docs {
		// labels live in the doc file
		doc, err := h.load(i)
		if err != nil {
			return nil, err
		}
		if !doc.HasLabel(labelMatch) {
			continue
		}
		docs = append(docs, corpus.Doc{Id: doc.Id, Title: doc.Title, Labels: doc.Labels})
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (corpus.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return corpus.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}
	doc, err := h.load(id)
	if err != nil {
		return corpus.Doc{}, err
	}
	return *doc, nil
}

// FindCandidates scans the docs in memory. The cursor is the 1-based
// position of a sentence across all docs.
func (h *DocStore) FindCandidates(words []string, after storage.Cursor, limit int, onCandidate func(storage.SentenceResult) error) (storage.Cursor, error) {
	words = storage.Normalize(words)
	if len(words) == 0 {
		return after, nil
	}

	cursor := after
	pos := storage.Cursor(0)
	found := 0
	for i := range h.docs {
		doc, err := h.load(i)
		if err != nil {
			return after, err
		}

		index := 0
		for p, paragraph := range doc.Paragraphs {
			for _, s := range paragraph {
				pos++
				index++
				if pos <= after || !containsAll(storage.IndexWords(s), words) {
					continue
				}

				err := onCandidate(storage.SentenceResult{
					RowID:     int64(pos),
					DocID:     doc.Id,
					DocTitle:  doc.Title,
					Paragraph: p,
					Index:     index - 1,
					Sentence:  s,
				})
				if err != nil {
					return cursor, err
				}
				cursor = pos
				found++
				if limit > 0 && found >= limit {
					return cursor, nil
				}
			}
		}
	}

	return cursor, nil
}

// containsAll reports whether the sorted set has contains all of want.
func containsAll(has, want []string) bool {
	for _, w := range want {
		i := sort.SearchStrings(has, w)
		if i == len(has) || has[i] != w {
			return false
		}
	}
	return true
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	seen := map[string]bool{}
	var labels []string
	for i := range h.docs {
		doc, err := h.load(i)
		if err != nil {
			return nil, err
		}
		for _, l := range doc.Labels {
			if seen[l] || !strings.Contains(l, pattern) {
				continue
			}
			seen[l] = true
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// Write stores doc as <title>.json. A doc with the same title keeps its id.
func (h *DocStore) Write(doc corpus.Doc) (int, error) {
	if doc.Title == "" || filepath.Base(doc.Title) != doc.Title {
		return 0, fmt.Errorf("invalid doc title %q", doc.Title)
	}

	id := len(h.docs)
	for i := range h.docs {
		if h.docs[i].Title == doc.Title {
			id = i
			break
		}
	}
	doc.Id = id

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(h.path(doc.Title), data, 0644); err != nil {
		return 0, fmt.Errorf("IO error: %w", err)
	}

	if id == len(h.docs) {
		h.docs = append(h.docs, doc)
		h.loaded = append(h.loaded, true)
	} else {
		h.docs[id] = doc
		h.loaded[id] = true
	}

	glog.V(1).Infof("filesystem: wrote doc %d %q", id, doc.Title)
	return id, nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (corpus.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return corpus.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc corpus.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return corpus.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
