package query

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/match"
	"github.com/Kaljurand/aceview-sub001/render"
	"github.com/Kaljurand/aceview-sub001/search"
	"github.com/Kaljurand/aceview-sub001/storage"
)

const (
	completionThreshold = 2

	maxSuggestions = 12

	// batch is the number of candidates per FindCandidates call
	batch = 500

	// limit of matches per query to avoid hang
	limit = 2000
)

var errNoWords = errors.New("no content words in query")

type Handler struct {
	DocRepo  storage.DocReader
	Splitter *ace.Splitter
	// Lexicon is used for completion, it may be nil.
	Lexicon  *lexicon.Lexicon
	Renderer *render.Renderer
	Out      io.Writer

	// DocID restricts queries to one doc, if not nil.
	DocID *int
}

func NewHandler(dr storage.DocReader, lx *lexicon.Lexicon, r *render.Renderer, out io.Writer) *Handler {
	var resolver ace.WordResolver
	if lx != nil {
		resolver = lx
	}
	return &Handler{
		DocRepo:  dr,
		Splitter: ace.NewSplitter(resolver),
		Lexicon:  lx,
		Renderer: r,
		Out:      out,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("aceview query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}
		if in == "" {
			continue
		}

		history = append(history, in)

		results, err := h.Query(in)
		if err != nil {
			fmt.Fprintf(h.Out, "❌ %s\n", err)
			continue
		}

		h.Renderer.Match(results)
	}
}

// parse splits the input into ACE text and excluded words (prefixed with
// match.ExcludePrefix).
func parse(in string) (text string, exclude []string) {
	var words []string
	for _, f := range strings.Fields(in) {
		if x, ok := strings.CutPrefix(f, match.ExcludePrefix); ok && x != "" {
			exclude = append(exclude, x)
			continue
		}
		words = append(words, f)
	}
	return strings.Join(words, " "), exclude
}

// Query returns the sorted stored sentences that contain all content words
// of the first sentence of in, and none of its excluded words.
func (h *Handler) Query(in string) ([]*match.SentenceMatch, error) {
	text, exclude := parse(in)
	s, ok := h.Splitter.FirstSentence(text)
	if !ok {
		return nil, errNoWords
	}

	matcher := match.NewSentenceMatcher(s)
	matcher.Exclude(exclude...)
	words := matcher.Words()
	if len(words) == 0 {
		return nil, errNoWords
	}

	srch := search.New(matcher, h.DocRepo)
	if h.DocID != nil {
		srch.WithDocID(*h.DocID)
	}

	var results []*match.SentenceMatch
	cursor := storage.Cursor(0)
	for {
		newCursor, err := srch.Sentences(cursor, batch, func(sm *match.SentenceMatch) error {
			results = append(results, sm)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("fetching candidates: %w", err)
		}
		if cursor == newCursor || len(results) >= limit {
			break
		}
		cursor = newCursor
	}

	match.Sort(results)
	return results, nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return h.Suggest(in.GetWordBeforeCursor())
	}
}

// Suggest completes a wordform prefix from the lexicon.
func (h *Handler) Suggest(word string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if h.Lexicon == nil {
		return s
	}

	word = strings.TrimPrefix(word, match.ExcludePrefix)
	if len([]rune(word)) < completionThreshold {
		return s
	}

	for _, w := range h.Lexicon.Candidates(word, maxSuggestions) {
		var desc []string
		for _, tr := range h.Lexicon.Resolve(w) {
			if m, ok := tr.Morph(); ok {
				desc = append(desc, m.String())
			}
		}
		s = append(s, prompt.Suggest{Text: w, Description: strings.Join(desc, " ")})
	}
	return s
}
