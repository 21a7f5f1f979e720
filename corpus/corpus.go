// Package corpus groups tokenized ACE texts into documents.
package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kaljurand/aceview-sub001/ace"
)

// Extensions of the source files a corpus is built from. Files ending in
// .tsv carry tagged tokens, everything else is raw ACE text.
const (
	TextExt   = ".ace"
	TaggedExt = ".tsv"
)

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels     []string         `json:"labels,omitempty"`
	Paragraphs [][]ace.Sentence `json:"paragraphs"`
}

// Library is a collection of Doc
type Library []Doc

// Sentences returns the sentences of all paragraphs in order.
func (d Doc) Sentences() []ace.Sentence {
	var out []ace.Sentence
	for _, p := range d.Paragraphs {
		out = append(out, p...)
	}
	return out
}

// SentenceCount is the number of sentences across paragraphs.
func (d Doc) SentenceCount() int {
	n := 0
	for _, p := range d.Paragraphs {
		n += len(p)
	}
	return n
}

// HasLabel reports whether one of the doc labels contains match.
// An empty match matches every doc.
func (d Doc) HasLabel(match string) bool {
	if match == "" {
		return true
	}
	for _, l := range d.Labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

// IsSource reports whether the file name looks like something Read can
// tokenize.
func IsSource(name string) bool {
	ext := filepath.Ext(name)
	return ext == TextExt || ext == TaggedExt
}

// Read tokenizes r into a doc titled after name. Tagged input is chosen by
// the extension of name.
func Read(sp *ace.Splitter, name string, r io.Reader) (Doc, error) {
	var (
		paragraphs [][]ace.Sentence
		err        error
	)
	if filepath.Ext(name) == TaggedExt {
		paragraphs, err = ace.ParagraphsFromCSV(r)
	} else {
		paragraphs, err = sp.ReadParagraphs(r)
	}
	if err != nil {
		return Doc{}, fmt.Errorf("%s: %w", name, err)
	}

	return Doc{
		Title:      filepath.Base(name),
		Paragraphs: paragraphs,
	}, nil
}

// ReadFile opens path and tokenizes it with Read.
func ReadFile(sp *ace.Splitter, path string) (Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return Doc{}, err
	}
	defer f.Close()

	return Read(sp, path, f)
}

// Labels derives doc labels from the directory path relative to root, one
// label per path element. A file at the root has no labels.
func Labels(root, path string) []string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}
