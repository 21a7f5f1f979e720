package main

import (
	"fmt"

	"github.com/Kaljurand/aceview-sub001/edit"
	"github.com/Kaljurand/aceview-sub001/storage"
)

func editCommand(opts EditOptions, ui UI) error {
	var p Pool
	defer p.Close()

	repo, err := NewLexiconRepository(&p, opts.Lexicon)
	if err != nil {
		return err
	}

	lx, err := storage.LoadLexicon(repo)
	if err != nil {
		return fmt.Errorf("lexicon %s: %w", opts.Lexicon, err)
	}

	hdl := edit.NewHandler(lx, repo, ui.Out)
	return hdl.Run()
}
