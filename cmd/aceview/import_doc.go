package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/watch"
)

// importCommand tokenizes every source file below opts.From into the doc
// store opts.To. Directories become doc labels.
func importCommand(opts ImportOptions, ui UI) error {
	var p Pool
	defer p.Close()

	lx, err := loadLexicon(&p, opts.Lexicon)
	if err != nil {
		return err
	}

	dst, err := NewDocRepository(&p, opts.To, true)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Reading docs from %s...\n", opts.From)
	paths, err := sourceFiles(opts.From)
	if err != nil {
		return err
	}

	bar := startProgress(len(paths), ui)
	count := 0
	ix := &watch.Indexer{
		Splitter: newSplitter(lx),
		Docs:     dst,
		Root:     opts.From,
		OnDoc: func(path string, id int) {
			count++
			bar.Incr(filepath.Base(path))
		},
	}

	for _, path := range paths {
		if err := ix.Handle(watch.Event{Path: path, Op: watch.Created}); err != nil {
			bar.Stop()
			return fmt.Errorf("failed to import doc %s: %w", path, err)
		}
	}
	bar.Stop()

	fmt.Fprintf(ui.Out, "Successfully imported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}

// sourceFiles returns the source files below root in lexical order.
func sourceFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && corpus.IsSource(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
