package main

import (
	"strconv"

	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/stat"
)

func statCommand(opts StatOptions, arg string, ui UI) error {
	var p Pool
	defer p.Close()

	hdl := stat.NewHandler()

	// stored docs: one by id, or all of them
	if opts.DocPath != "" && (arg == "" || digitRegex.MatchString(arg)) {
		repo, err := NewDocRepository(&p, opts.DocPath, false)
		if err != nil {
			return err
		}

		var ids []int
		if arg == "" {
			docs, err := repo.List("")
			if err != nil {
				return err
			}
			for _, d := range docs {
				ids = append(ids, d.Id)
			}
		} else {
			id, _ := strconv.Atoi(arg)
			ids = append(ids, id)
		}

		for _, id := range ids {
			doc, err := repo.Read(id)
			if err != nil {
				return err
			}
			hdl.Aggregate(doc)
		}

		hdl.Get().Write(ui.Out)
		return nil
	}

	lx, err := loadLexicon(&p, opts.Lexicon)
	if err != nil {
		return err
	}
	sp := newSplitter(lx)

	r, name, err := openInput(arg, ui)
	if err != nil {
		return err
	}
	defer r.Close()

	if opts.CSV {
		name += corpus.TaggedExt
	}
	doc, err := corpus.Read(sp, name, r)
	if err != nil {
		return err
	}
	hdl.Aggregate(doc)

	hdl.Get().Write(ui.Out)
	return nil
}
