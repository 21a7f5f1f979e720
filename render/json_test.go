package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/match"
)

func TestJSONRendererMatchEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Match(nil)

	if got := buf.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestJSONRendererMatchOneResult(t *testing.T) {
	s, _ := ace.NewSplitter(nil).FirstSentence("A cat sees a dog.")
	sm := &match.SentenceMatch{
		Sentence:   s,
		DocId:      1,
		DocTitle:   "zoo.ace",
		SentenceId: 5,
		Positions:  []int{1},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Match([]*match.SentenceMatch{sm})

	var results []match.SentenceMatch
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].DocTitle != "zoo.ace" {
		t.Errorf("expected doc_title 'zoo.ace', got %q", results[0].DocTitle)
	}

	if results[0].SentenceId != 5 {
		t.Errorf("expected sentence_id 5, got %d", results[0].SentenceId)
	}

	if !results[0].Sentence.Equal(s) {
		t.Errorf("sentence: got %q", results[0].Sentence.String())
	}
}

func TestJSONRendererParagraphs(t *testing.T) {
	ps := ace.NewSplitter(nil).Paragraphs("John waits.\n\nMary 's dog barks.")

	var buf bytes.Buffer
	NewJSONRenderer(&buf).Paragraphs(ps)

	var got [][]ace.Sentence
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(got) != 2 || !got[1][0].Equal(ps[1][0]) {
		t.Errorf("round trip: got %v", got)
	}
}
