package filesystem

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/storage"
)

// LexiconStore keeps a lexicon in a single file in the ACE lexicon format.
type LexiconStore struct {
	path string
}

var _ storage.LexiconRepository = (*LexiconStore)(nil)

func NewLexiconStore(path string) *LexiconStore {
	return &LexiconStore{path: path}
}

// Entries reads the file. A missing file is an empty lexicon.
func (ls *LexiconStore) Entries() ([]lexicon.Entry, error) {
	f, err := os.Open(ls.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return lexicon.ReadACE(f)
}

func (ls *LexiconStore) Put(e lexicon.Entry) error {
	return ls.update(func(lx *lexicon.Lexicon) error {
		return lx.Add(e.Wordform, e.IRI, e.Morph)
	})
}

func (ls *LexiconStore) Delete(e lexicon.Entry) error {
	return ls.update(func(lx *lexicon.Lexicon) error {
		lx.Remove(e.Wordform, e.IRI, e.Morph)
		return nil
	})
}

// update rewrites the whole file after applying fn.
func (ls *LexiconStore) update(fn func(*lexicon.Lexicon) error) error {
	lx, err := storage.LoadLexicon(ls)
	if err != nil {
		return err
	}
	if err := fn(lx); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := lexicon.WriteACE(&buf, lx.Entries()); err != nil {
		return err
	}

	return os.WriteFile(ls.path, buf.Bytes(), 0644)
}
