package edit

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/storage"
)

const (
	actionAdd    = 1
	actionDelete = 0
	actionShow   = 2

	// deleteSuffix at the end of the line deletes the entry
	deleteSuffix = "/"
)

// Handler edits a lexicon. An input line is
//
//	<morph> <wordform> <iri>     add the entry, e.g. cn_sg cat http://example.org#cat
//	<morph> <wordform> <iri>/    delete the entry
//	<wordform>                   show the readings of the wordform
type Handler struct {
	Lexicon *lexicon.Lexicon

	Writer storage.LexiconWriter

	Out io.Writer
}

func NewHandler(lx *lexicon.Lexicon, w storage.LexiconWriter, out io.Writer) *Handler {
	return &Handler{
		Lexicon: lx,
		Writer:  w,
		Out:     out,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 <morph> <wordform> <iri>[/], 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("aceview edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}
		if in == "" {
			continue
		}

		history = append(history, in)
		if err := h.Apply(in); err != nil {
			var werr *writeError
			if errors.As(err, &werr) {
				return err
			}
			fmt.Fprintf(h.Out, "❌ %s\n", err)
		}
	}
}

// writeError is a failure of the store, which ends the editor.
type writeError struct{ err error }

func (e *writeError) Error() string { return "writing lexicon: " + e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

// Apply executes one input line.
func (h *Handler) Apply(in string) error {
	e, action, err := parse(in)
	if err != nil {
		return err
	}

	switch action {
	case actionShow:
		trs := h.Lexicon.Resolve(e.Wordform)
		if len(trs) == 0 {
			return fmt.Errorf("no entry for %q", e.Wordform)
		}
		for _, tr := range trs {
			m, _ := tr.Morph()
			fmt.Fprintf(h.Out, "%s %s %s\n", m, e.Wordform, tr.IRI)
		}
		return nil

	case actionDelete:
		if !h.Lexicon.Remove(e.Wordform, e.IRI, e.Morph) {
			return errors.New("Entry does not exist.")
		}
		if err := h.Writer.Delete(e); err != nil {
			return &writeError{err}
		}
		fmt.Fprintf(h.Out, "🗑  %s\n", e)

	default:
		for _, tr := range h.Lexicon.Resolve(e.Wordform) {
			if tr == e.Triple() {
				return errors.New("Entry already exists.")
			}
		}
		if err := h.Lexicon.Add(e.Wordform, e.IRI, e.Morph); err != nil {
			return err
		}
		if err := h.Writer.Put(e); err != nil {
			return &writeError{err}
		}
		fmt.Fprintf(h.Out, "✅ %s\n", e)
	}

	return nil
}

func parse(in string) (lexicon.Entry, int, error) {
	tokens := strings.Fields(in)

	action := actionAdd
	if len(tokens) == 0 {
		return lexicon.Entry{}, action, errors.New("No entry given.")
	}

	if len(tokens) == 1 {
		return lexicon.Entry{Wordform: tokens[0]}, actionShow, nil
	}

	lastToken := tokens[len(tokens)-1]
	if strings.HasSuffix(lastToken, deleteSuffix) {
		action = actionDelete
		tokens[len(tokens)-1] = strings.TrimSuffix(lastToken, deleteSuffix)
	}

	if len(tokens) != 3 || tokens[2] == "" {
		return lexicon.Entry{}, action, errors.New("Expected <morph> <wordform> <iri>.")
	}

	m, ok := ace.ParseMorphTag(tokens[0])
	if !ok {
		return lexicon.Entry{}, action, fmt.Errorf("There is no such morphological type: %s.", tokens[0])
	}

	return lexicon.Entry{Wordform: tokens[1], IRI: tokens[2], Morph: m}, action, nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return h.Suggest(in.TextBeforeCursor())
	}
}

// Suggest completes the token under the cursor: morph tags first, then
// wordforms, then IRIs.
func (h *Handler) Suggest(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	// Only one character in line
	if befCursor == "" {
		return s
	}

	tokens := strings.Split(befCursor, " ")
	last := tokens[len(tokens)-1]

	switch len(tokens) {
	case 1:
		for _, m := range ace.MorphTypes() {
			if strings.HasPrefix(m.Tag(), last) {
				s = append(s, prompt.Suggest{Text: m.Tag(), Description: m.Entry().Name()})
			}
		}
	case 2:
		if last == "" {
			return s
		}
		for _, w := range h.Lexicon.Candidates(last, 12) {
			s = append(s, prompt.Suggest{Text: w})
		}
	case 3:
		for _, iri := range h.iris(last) {
			s = append(s, prompt.Suggest{Text: iri})
		}
	}

	return s
}

func (h *Handler) iris(prefix string) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range h.Lexicon.Entries() {
		if seen[e.IRI] || !strings.HasPrefix(e.IRI, prefix) {
			continue
		}
		seen[e.IRI] = true
		out = append(out, e.IRI)
	}
	sort.Strings(out)
	return out
}
