package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/storage"
	"github.com/Kaljurand/aceview-sub001/storage/filesystem"
	"github.com/Kaljurand/aceview-sub001/storage/sqlite/zombiezen"
)

// NewDocRepository opens the docs directory or SQLite file at path. With
// create, a missing path is created: as a directory if it has no
// extension, as a SQLite file otherwise.
func NewDocRepository(p *Pool, path string, create bool) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return filesystem.NewDocStore(path)
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && create:
		if filepath.Ext(path) == "" {
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, fmt.Errorf("failed to create docs directory: %w", err)
			}
			return filesystem.NewDocStore(path)
		}
	default:
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	pool, err := p.Open(path, zombiezen.DocsSchema)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// NewLexiconRepository opens the lexicon at path: an ACE lexicon file for
// the .pl and .lex extensions, a SQLite file otherwise.
func NewLexiconRepository(p *Pool, path string) (storage.LexiconRepository, error) {
	switch filepath.Ext(path) {
	case ".pl", ".lex":
		return filesystem.NewLexiconStore(path), nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("lexicon is a directory: %s", path)
	}

	pool, err := p.Open(path, zombiezen.LexiconSchema)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewLexiconStore(pool), nil
}

// loadLexicon reads the lexicon at path. Without path there is no lexicon
// and nil is returned.
func loadLexicon(p *Pool, path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return nil, nil
	}

	repo, err := NewLexiconRepository(p, path)
	if err != nil {
		return nil, err
	}
	lx, err := storage.LoadLexicon(repo)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lx, nil
}

// newSplitter returns a splitter resolving content words with lx, if any.
func newSplitter(lx *lexicon.Lexicon) *ace.Splitter {
	if lx == nil {
		return ace.NewSplitter(nil)
	}
	return ace.NewSplitter(lx)
}

// tokenRenderer renders content words by their entity label when there is
// a lexicon.
func tokenRenderer(lx *lexicon.Lexicon) ace.TokenRenderer {
	if lx == nil {
		return ace.SurfaceRenderer
	}
	return ace.EntityTokenRenderer{Entities: lx}
}

// openInput opens the file at path, or standard input for an empty path.
func openInput(path string, ui UI) (io.ReadCloser, string, error) {
	if path == "" {
		return io.NopCloser(ui.In), "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}
