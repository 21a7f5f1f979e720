package match

import (
	"reflect"
	"testing"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/storage"
)

func result(t *testing.T, doc, index int, text string) storage.SentenceResult {
	t.Helper()
	s, ok := ace.NewSplitter(nil).FirstSentence(text)
	if !ok {
		t.Fatalf("no sentence in %q", text)
	}
	return storage.SentenceResult{DocID: doc, Index: index, Sentence: s}
}

func TestMatchSentence(t *testing.T) {
	m := NewMatcher([]string{"Cat", "sleeps"})
	if !reflect.DeepEqual(m.Words(), []string{"cat", "sleeps"}) {
		t.Errorf("words: got %v", m.Words())
	}

	sm := m.MatchSentence(result(t, 1, 4, "Every cat that sees a cat sleeps."))
	if sm == nil {
		t.Fatal("expected a match")
	}
	if !reflect.DeepEqual(sm.Positions, []int{1, 5, 6}) {
		t.Errorf("positions: got %v", sm.Positions)
	}
	if !reflect.DeepEqual(sm.Words(), []string{"cat", "cat", "sleeps"}) {
		t.Errorf("words: got %v", sm.Words())
	}
	if sm.DocId != 1 || sm.SentenceId != 4 {
		t.Errorf("position: got doc %d sentence %d", sm.DocId, sm.SentenceId)
	}

	if m.MatchSentence(result(t, 1, 0, "A cat waits.")) != nil {
		t.Error("partial match accepted")
	}
}

func TestMatchExclude(t *testing.T) {
	m := NewMatcher([]string{"cat", "!dog", "!"})
	if len(m.Words()) != 1 {
		t.Fatalf("words: got %v", m.Words())
	}
	if m.MatchSentence(result(t, 0, 0, "A cat sees a Dog.")) != nil {
		t.Error("excluded word accepted")
	}
	if m.MatchSentence(result(t, 0, 0, "A cat sees a cow.")) == nil {
		t.Error("expected a match")
	}

	m.Exclude("cow")
	if m.MatchSentence(result(t, 0, 0, "A cat sees a cow.")) != nil {
		t.Error("excluded word accepted")
	}
}

func TestMatchEmpty(t *testing.T) {
	if NewMatcher(nil).MatchSentence(result(t, 0, 0, "A cat waits.")) != nil {
		t.Error("empty matcher matched")
	}
}

func TestSentenceMatcher(t *testing.T) {
	q := result(t, 0, 0, "Which cat sleeps?")
	m := NewSentenceMatcher(q.Sentence)
	if !reflect.DeepEqual(m.Words(), []string{"cat", "sleeps"}) {
		t.Errorf("words: got %v", m.Words())
	}
}

func TestSort(t *testing.T) {
	m := NewMatcher([]string{"cat"})
	a := m.MatchSentence(result(t, 2, 0, "A cat waits."))
	b := m.MatchSentence(result(t, 1, 3, "A cat sees a cat."))
	c := m.MatchSentence(result(t, 1, 1, "A cat sleeps."))

	results := []*SentenceMatch{a, b, c}
	Sort(results)
	if results[0] != b || results[1] != c || results[2] != a {
		t.Errorf("unexpected order")
	}
}

func TestHighlights(t *testing.T) {
	sm := &SentenceMatch{Positions: []int{0, 2}}
	want := []ace.TokenPos{{Sentence: 3, Token: 0}, {Sentence: 3, Token: 2}}
	if got := sm.Highlights(3); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v", got)
	}
}
