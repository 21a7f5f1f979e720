package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/render"
	"github.com/Kaljurand/aceview-sub001/storage"
	"github.com/Kaljurand/aceview-sub001/storage/filesystem"
)

func docCommand(opts DocOptions, arg string, ui UI) error {
	if arg != "" && !digitRegex.MatchString(arg) {
		return renderFile(arg, opts, ui)
	}

	var p Pool
	defer p.Close()

	repo, err := NewDocRepository(&p, opts.DocPath, false)
	if err != nil {
		return err
	}

	if arg == "" {
		return listDocs(repo, ui)
	}

	id, _ := strconv.Atoi(arg)
	doc, err := repo.Read(id)
	if err != nil {
		return fmt.Errorf("doc %d: %w", id, err)
	}

	renderDoc(doc, opts, ui)
	return nil
}

// renderFile shows a source file or an exported JSON doc.
func renderFile(path string, opts DocOptions, ui UI) error {
	var (
		doc corpus.Doc
		err error
	)
	if corpus.IsSource(path) {
		doc, err = corpus.ReadFile(ace.NewSplitter(nil), path)
	} else {
		doc, err = filesystem.ReadDoc(path)
	}
	if err != nil {
		absPath, _ := filepath.Abs(path)
		return fmt.Errorf("document %q: %w", absPath, err)
	}

	renderDoc(doc, opts, ui)
	return nil
}

// renderDoc shows the sentences from opts.Start on, numbered across
// paragraphs.
func renderDoc(doc corpus.Doc, opts DocOptions, ui UI) {
	start := max(opts.Start, 0)

	var paragraphs [][]ace.Sentence
	n, shown := 0, 0
	for _, para := range doc.Paragraphs {
		var kept []ace.Sentence
		for _, s := range para {
			if n >= start && (opts.Count < 0 || shown < opts.Count) {
				kept = append(kept, s)
				shown++
			}
			n++
		}
		if len(kept) > 0 {
			paragraphs = append(paragraphs, kept)
		}
	}

	if opts.Format == jsonFormat || opts.Format == "pretty" {
		paragraphRenderer(opts.Format, nil, ui).Paragraphs(paragraphs)
		return
	}

	r := render.NewRenderer(ui.Out)
	r.Format = opts.Format
	i := start
	for pi, para := range paragraphs {
		if pi > 0 {
			fmt.Fprintln(ui.Out)
		}
		for _, s := range para {
			r.Sentence(s, fmt.Sprintf("✍  %d ", i))
			i++
		}
	}
}

func listDocs(repo storage.DocReader, ui UI) error {
	docs, err := repo.List("")
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if len(doc.Labels) == 0 {
			fmt.Fprintf(ui.Out, "📖 %d %s\n", doc.Id, doc.Title)
			continue
		}
		fmt.Fprintf(ui.Out, "📖 %d %s [%s]\n", doc.Id, doc.Title, strings.Join(doc.Labels, ", "))
	}
	return nil
}
