package storage

import (
	"errors"
	"sort"
	"strings"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/lexicon"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReadOnly is returned by writers that cannot persist.
	ErrReadOnly = errors.New("read-only storage")
)

// Cursor for paginated content word queries
type Cursor int64

// SentenceResult is a stored sentence together with its position.
type SentenceResult struct {
	RowID     int64
	DocID     int
	DocTitle  string
	Paragraph int
	// Index is the position of the sentence in the doc, across paragraphs.
	Index    int
	Sentence ace.Sentence
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Paragraphs) is not loaded.
	List(labelMatch string) ([]corpus.Doc, error)

	// Read returns a document by ID
	Read(id int) (corpus.Doc, error)

	// FindCandidates returns sentences containing ALL given content words,
	// resuming after the given cursor. It calls onCandidate for each result.
	// Words are compared after IndexWord. Returns the new cursor and any error.
	FindCandidates(words []string, after Cursor, limit int, onCandidate func(SentenceResult) error) (Cursor, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its content word index. A stored doc
	// with the same title is replaced. It returns the id of the doc.
	Write(doc corpus.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(labels []string, cb func(current, total int, name string)) error
}

// LexiconReader reads a stored lexicon.
type LexiconReader interface {
	Entries() ([]lexicon.Entry, error)
}

// LexiconWriter persists single lexicon edits.
type LexiconWriter interface {
	// Put stores e, replacing the wordform of the same entity and morph type.
	Put(e lexicon.Entry) error

	// Delete removes e. Deleting a missing entry is not an error.
	Delete(e lexicon.Entry) error
}

// LexiconRepository combines read and write operations
type LexiconRepository interface {
	LexiconReader
	LexiconWriter
}

// LoadLexicon builds an in-memory lexicon from r.
func LoadLexicon(r LexiconReader) (*lexicon.Lexicon, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}
	lx := lexicon.New()
	if err := lx.AddAll(entries); err != nil {
		return nil, err
	}
	return lx, nil
}

// IndexWord is the form under which a content word is indexed.
func IndexWord(w string) string {
	return strings.ToLower(w)
}

// IndexWords returns the distinct index forms of the content words of s,
// sorted.
func IndexWords(s ace.Sentence) []string {
	words := make([]string, 0, s.Len())
	for _, t := range s.ContentWords() {
		if t.Kind() != ace.Word {
			continue
		}
		words = append(words, t.Text())
	}
	return Normalize(words)
}

// Normalize maps words to their index form, sorted and without duplicates.
func Normalize(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = IndexWord(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
