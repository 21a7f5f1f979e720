package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/match"
)

const (
	partialOffset = 6
	DefaultFormat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// SupportedFormats are the formats of sentence matches, in NextFormat
// order.
func SupportedFormats() []string {
	return []string{"all", "part", "pretty", "words", "aggr"}
}

// TextFormats are the formats of tokenized text.
func TextFormats() []string {
	return []string{"all", "simple", "mos", "pretty"}
}

// MatchRenderer writes sentence matches.
type MatchRenderer interface {
	Match(results []*match.SentenceMatch)
}

// ParagraphRenderer writes tokenized text.
type ParagraphRenderer interface {
	Paragraphs(paragraphs [][]ace.Sentence)
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines the format of the sentence
	//
	// all: print all sentence
	// part: print the surrounding of the matches in the sentence, cut the rest.
	// pretty: indent the sentence at relative clauses and coordination
	// words: print only matched words of the sentence
	// aggr: count sentences per matched words
	// simple, mos: ace.Sentence SimpleString and MOSString (text only)
	Format string

	// Tokens renders single tokens. ace.SurfaceRenderer is used if nil.
	Tokens ace.TokenRenderer

	// Show only sentences with at least this amount of matched tokens
	NumMatches int
}

var (
	_ MatchRenderer     = (*Renderer)(nil)
	_ ParagraphRenderer = (*Renderer)(nil)
)

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Format: DefaultFormat}
}

func (r *Renderer) tokens() ace.TokenRenderer {
	if r.Tokens == nil {
		return ace.SurfaceRenderer
	}
	return r.Tokens
}

// Paragraphs prints one sentence per line and an empty line between
// paragraphs.
func (r *Renderer) Paragraphs(paragraphs [][]ace.Sentence) {
	for i, p := range paragraphs {
		if i > 0 {
			fmt.Fprintln(r.W)
		}
		if r.Format == "pretty" {
			text, _ := ace.PrettyPrint(r.tokens(), p)
			if text != "" {
				fmt.Fprintln(r.W, text)
			}
			continue
		}
		for _, s := range p {
			r.Sentence(s, "")
		}
	}
}

// Sentence prints s on one line.
func (r *Renderer) Sentence(s ace.Sentence, prefix string) {
	var text string
	switch r.Format {
	case "simple":
		text = s.SimpleString()
	case "mos":
		text = s.MOSString()
	default:
		text = r.sentence(s, nil)
	}
	fmt.Fprintf(r.W, "%s%s\n", prefix, text)
}

// Match prints the matches, which are expected to be sorted.
func (r *Renderer) Match(results []*match.SentenceMatch) {
	// if aggr format, we collect the aggr words here
	aggregated := map[string]int{}

	for _, sm := range results {
		if r.NumMatches > 0 && sm.NumMatches() < r.NumMatches {
			continue
		}

		prefix := r.buildPrefix(sm)

		var text string
		switch r.Format {
		case "part":
			text = r.syntagma(sm.Sentence, sm.Positions)
		case "pretty":
			text = r.pretty(sm)
			text = strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", len(stripColor(prefix))))
		case "words":
			text = strings.Join(sm.Words(), " ")
		case "aggr":
			aggregated[strings.Join(distinct(sm.Words()), " ")]++
			continue
		default:
			text = r.sentence(sm.Sentence, sm.Positions)
		}

		fmt.Fprintf(r.W, "%s%s\n", prefix, text)
	}

	if r.Format == "aggr" {
		r.aggrWords(aggregated)
	}
}

func (r *Renderer) sentence(s ace.Sentence, positions []int) string {
	hl := make(map[int]bool, len(positions))
	for _, p := range positions {
		hl[p] = true
	}

	tr := r.tokens()
	return s.RenderFunc(func(i int, t ace.Token) string {
		text := tr.RenderToken(t)
		if !r.HasColor {
			return text
		}
		switch {
		case hl[i]:
			return Green256 + text + Off
		case t.IsBadToken():
			return Red + text + Off
		}
		return text
	})
}

// syntagma prints the surrounding of the matches in the sentence.
func (r *Renderer) syntagma(s ace.Sentence, positions []int) string {
	// if not matches, we print the whole sentence
	if len(positions) == 0 {
		return r.sentence(s, positions)
	}

	first, last := positions[0], positions[len(positions)-1]
	start := max(first-partialOffset, 0)
	end := min(last+partialOffset, s.Len()-1)

	shifted := make([]int, len(positions))
	for i, p := range positions {
		shifted[i] = p - start
	}

	part := ace.NewSentence(s.Tokens()[start : end+1])
	return r.sentence(part, shifted)
}

func (r *Renderer) pretty(sm *match.SentenceMatch) string {
	text, spans := ace.PrettyPrint(r.tokens(), []ace.Sentence{sm.Sentence}, sm.Highlights(0)...)
	if !r.HasColor {
		return text
	}

	// insert from the end so that earlier offsets stay valid
	for i := len(spans) - 1; i >= 0; i-- {
		sp := spans[i]
		text = text[:sp.Start] + Green256 + text[sp.Start:sp.End] + Off + text[sp.End:]
	}
	return text
}

func distinct(words []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func (r *Renderer) aggrWords(agg map[string]int) {
	type entry struct {
		NumSent int
		Words   string
	}
	sl := make([]entry, 0, len(agg))
	for words, n := range agg {
		sl = append(sl, entry{n, words})
	}

	// first by num sentences, then shorter strings
	sort.Slice(sl, func(i, j int) bool {
		if sl[i].NumSent != sl[j].NumSent {
			return sl[i].NumSent > sl[j].NumSent
		}
		if len(sl[i].Words) != len(sl[j].Words) {
			return len(sl[i].Words) < len(sl[j].Words)
		}
		return sl[i].Words < sl[j].Words
	})

	var prefix string
	for _, s := range sl {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", s.NumSent)
		}

		fmt.Fprintf(r.W, "%s%s\n", prefix, s.Words)
	}
}

func (r *Renderer) buildPrefix(sm *match.SentenceMatch) string {
	if !r.HasPrefix {
		return ""
	}

	return fmt.Sprintf("[%s %2d %5d:%2d] ✍  ", r.title(sm.DocTitle), sm.DocId, sm.SentenceId, sm.NumMatches())
}

func (r *Renderer) title(title string) string {
	var part string
	if len(title) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = title[:20]
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

func stripColor(s string) string {
	for _, c := range []string{Grey256, Off} {
		s = strings.ReplaceAll(s, c, "")
	}
	return s
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}
