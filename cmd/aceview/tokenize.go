package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Kaljurand/aceview-sub001/ace"
)

func tokenizeCommand(opts TokenizeOptions, path string, ui UI) error {
	var p Pool
	defer p.Close()

	lx, err := loadLexicon(&p, opts.Lexicon)
	if err != nil {
		return err
	}

	r, _, err := openInput(path, ui)
	if err != nil {
		return err
	}
	defer r.Close()

	text, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	for _, t := range newSplitter(lx).Tokenize(string(text)) {
		fmt.Fprintf(ui.Out, "%-24s %-13s %s\n", t.String(), t.Kind(), strings.Join(facets(t), " "))
	}
	return nil
}

// facets lists the facet names of t, followed by the triple of a resolved
// content word.
func facets(t ace.Token) []string {
	var fs []string
	if t.IsFunctionWord() {
		fs = append(fs, "function")
	} else {
		fs = append(fs, "content")
	}

	for _, f := range []struct {
		name string
		has  bool
	}{
		{"ordination", t.IsOrdinationWord()},
		{"but", t.IsButToken()},
		{"variable", t.IsVariable()},
		{"question", t.IsQuestionMark()},
		{"apos", t.IsApos()},
		{"border", t.IsBorderToken()},
		{"bad", t.IsBadToken()},
	} {
		if f.has {
			fs = append(fs, f.name)
		}
	}

	if tr, ok := t.Triple(); ok {
		fs = append(fs, tr.String())
	}
	return fs
}
