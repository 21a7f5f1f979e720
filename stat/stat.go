package stat

import (
	"fmt"
	"io"
	"sort"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/corpus"
)

type Handler struct {
	stats Stats

	badChars map[string]bool
}

type Stats struct {
	NumDocs       int
	NumParagraphs int
	NumSentences  int
	NumTokens     int
	NumContent    int
	NumQuestions  int
	// BadChars are the distinct bad characters, sorted.
	BadChars              []string
	TokensPerSentenceMean float64
	TokensPerSentenceDis  map[int]int
}

func (h *Handler) Get() Stats {
	s := h.stats
	s.BadChars = make([]string, 0, len(h.badChars))
	for c := range h.badChars {
		s.BadChars = append(s.BadChars, c)
	}
	sort.Strings(s.BadChars)
	if s.NumSentences > 0 {
		s.TokensPerSentenceMean = float64(s.NumTokens) / float64(s.NumSentences)
	}
	return s
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats:    stats,
		badChars: map[string]bool{},
	}
}

// Aggregate adds the doc to the statistics. Stats of several docs add up.
func (h *Handler) Aggregate(doc corpus.Doc) {
	h.stats.NumDocs++
	h.Paragraphs(doc.Paragraphs)
}

// Paragraphs adds tokenized text that is not part of a doc.
func (h *Handler) Paragraphs(paragraphs [][]ace.Sentence) {
	h.stats.NumParagraphs += len(paragraphs)
	for _, p := range paragraphs {
		for _, s := range p {
			h.sentence(s)
		}
	}
}

func (h *Handler) sentence(s ace.Sentence) {
	h.stats.NumSentences++
	h.stats.NumTokens += s.Len()
	h.stats.TokensPerSentenceDis[s.Len()]++
	h.stats.NumContent += len(s.ContentWords())
	if s.IsQuestion() {
		h.stats.NumQuestions++
	}
	for _, t := range s.BadChars() {
		h.badChars[t.Text()] = true
	}
}

// Write prints the stats in a human readable form.
func (s Stats) Write(w io.Writer) {
	fmt.Fprintf(w, "docs:           %d\n", s.NumDocs)
	fmt.Fprintf(w, "paragraphs:     %d\n", s.NumParagraphs)
	fmt.Fprintf(w, "sentences:      %d\n", s.NumSentences)
	fmt.Fprintf(w, "questions:      %d\n", s.NumQuestions)
	fmt.Fprintf(w, "tokens:         %d\n", s.NumTokens)
	fmt.Fprintf(w, "content words:  %d\n", s.NumContent)
	fmt.Fprintf(w, "tokens/sentence %.2f\n", s.TokensPerSentenceMean)
	fmt.Fprintf(w, "bad chars:      %q\n", s.BadChars)

	lens := make([]int, 0, len(s.TokensPerSentenceDis))
	for l := range s.TokensPerSentenceDis {
		lens = append(lens, l)
	}
	sort.Ints(lens)
	for _, l := range lens {
		fmt.Fprintf(w, "%5d tokens: %d\n", l, s.TokensPerSentenceDis[l])
	}
}
