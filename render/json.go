package render

import (
	"encoding/json"
	"io"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/match"
)

// JSONRenderer writes sentence matches and tokenized text as JSON to a
// writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Match serializes sentence match results as a JSON array.
func (r *JSONRenderer) Match(results []*match.SentenceMatch) {
	if results == nil {
		results = []*match.SentenceMatch{}
	}
	json.NewEncoder(r.W).Encode(results)
}

// Paragraphs serializes paragraphs as nested arrays of token arrays.
func (r *JSONRenderer) Paragraphs(paragraphs [][]ace.Sentence) {
	if paragraphs == nil {
		paragraphs = [][]ace.Sentence{}
	}
	json.NewEncoder(r.W).Encode(paragraphs)
}

// compile-time interface check
var (
	_ MatchRenderer     = (*JSONRenderer)(nil)
	_ ParagraphRenderer = (*JSONRenderer)(nil)
)
