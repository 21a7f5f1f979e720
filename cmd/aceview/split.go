package main

import (
	"fmt"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/render"
)

func splitCommand(opts SplitOptions, path string, ui UI) error {
	var p Pool
	defer p.Close()

	lx, err := loadLexicon(&p, opts.Lexicon)
	if err != nil {
		return err
	}

	r, name, err := openInput(path, ui)
	if err != nil {
		return err
	}
	defer r.Close()

	var paragraphs [][]ace.Sentence
	if opts.CSV {
		paragraphs, err = ace.ParagraphsFromCSV(r)
	} else {
		paragraphs, err = newSplitter(lx).ReadParagraphs(r)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	paragraphRenderer(opts.Format, lx, ui).Paragraphs(paragraphs)
	return nil
}

func paragraphRenderer(format string, lx *lexicon.Lexicon, ui UI) render.ParagraphRenderer {
	if format == jsonFormat {
		return render.NewJSONRenderer(ui.Out)
	}

	r := render.NewRenderer(ui.Out)
	r.Format = format
	r.Tokens = tokenRenderer(lx)
	return r
}
