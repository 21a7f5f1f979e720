package main

import (
	"github.com/Kaljurand/aceview-sub001/query"
	"github.com/Kaljurand/aceview-sub001/render"
	"github.com/Kaljurand/aceview-sub001/storage"
)

// Query command
func queryCommand(opts QueryOptions, ui UI) error {
	var p Pool
	defer p.Close()

	dr, err := NewDocRepository(&p, opts.DocPath, false)
	if err != nil {
		return err
	}

	// a docs directory is searched in memory
	if pl, ok := dr.(storage.Preloader); ok {
		bar := startProgress(1, ui) // Placeholder, updated in callback
		err := pl.Preload(nil, func(current, total int, name string) {
			bar.SetTotal(total)
			bar.Incr(name)
		})
		bar.Stop()
		if err != nil {
			return err
		}
	}

	lx, err := loadLexicon(&p, opts.Lexicon)
	if err != nil {
		return err
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.HasPrefix = !opts.NoPrefix
	r.Format = opts.Format
	r.NumMatches = opts.NMatches
	r.Tokens = tokenRenderer(lx)

	// now present the REPL
	t := query.NewHandler(dr, lx, r, ui.Out)
	t.DocID = opts.Doc
	return t.Run()
}
