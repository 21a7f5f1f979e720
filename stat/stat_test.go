package stat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/corpus"
)

func TestAggregate(t *testing.T) {
	sp := ace.NewSplitter(nil)
	h := NewHandler()
	h.Aggregate(corpus.Doc{Paragraphs: sp.Paragraphs("A cat ; sleeps. Who waits?\n\nJohn % waits ;")})
	h.Aggregate(corpus.Doc{Paragraphs: sp.Paragraphs("A dog barks.")})

	s := h.Get()
	if s.NumDocs != 2 || s.NumParagraphs != 3 || s.NumSentences != 4 {
		t.Fatalf("got %d docs, %d paragraphs, %d sentences", s.NumDocs, s.NumParagraphs, s.NumSentences)
	}
	if s.NumQuestions != 1 {
		t.Errorf("questions: got %d", s.NumQuestions)
	}
	// 5 + 3 + 5 (auto-terminated) + 4
	if s.NumTokens != 17 {
		t.Errorf("tokens: got %d", s.NumTokens)
	}
	if s.TokensPerSentenceMean != 4.25 {
		t.Errorf("mean: got %v", s.TokensPerSentenceMean)
	}
	if s.TokensPerSentenceDis[5] != 2 || s.TokensPerSentenceDis[3] != 1 || s.TokensPerSentenceDis[4] != 1 {
		t.Errorf("distribution: got %v", s.TokensPerSentenceDis)
	}
	if strings.Join(s.BadChars, "") != "%;" {
		t.Errorf("bad chars: got %v", s.BadChars)
	}
	// cat sleeps waits John waits dog barks
	if s.NumContent != 7 {
		t.Errorf("content words: got %d", s.NumContent)
	}
}

func TestEmpty(t *testing.T) {
	s := NewHandler().Get()
	if s.TokensPerSentenceMean != 0 || len(s.BadChars) != 0 {
		t.Errorf("got %+v", s)
	}
}

func TestWrite(t *testing.T) {
	h := NewHandler()
	h.Paragraphs(ace.NewSplitter(nil).Paragraphs("John waits."))

	var buf bytes.Buffer
	h.Get().Write(&buf)
	out := buf.String()
	for _, want := range []string{"sentences:      1\n", "tokens/sentence 3.00\n", "    3 tokens: 1\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
