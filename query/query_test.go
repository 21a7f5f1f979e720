package query

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/render"
	"github.com/Kaljurand/aceview-sub001/storage/filesystem"
)

// newHandler stores texts given as title, text pairs.
func newHandler(t *testing.T, lx *lexicon.Lexicon, texts ...string) *Handler {
	t.Helper()
	store, err := filesystem.NewDocStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sp := ace.NewSplitter(nil)
	for i := 0; i+1 < len(texts); i += 2 {
		doc, err := corpus.Read(sp, texts[i], strings.NewReader(texts[i+1]))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := store.Write(doc); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	return NewHandler(store, lx, render.NewRenderer(&out), &out)
}

func TestQuery(t *testing.T) {
	h := newHandler(t, nil,
		"a.ace", "A cat sleeps. A dog sleeps. A cat that sees a cat sleeps.",
		"b.ace", "Every cat sleeps and sees a dog.",
	)

	results, err := h.Query("Does a cat sleep or sleeps?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// sleep does not occur anywhere
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}

	results, err = h.Query("a Cat sleeps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, r := range results {
		got = append(got, r.Sentence.String())
	}
	want := []string{
		"A cat that sees a cat sleeps.",
		"A cat sleeps.",
		"Every cat sleeps and sees a dog.",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", got, want)
	}

	results, _ = h.Query("a cat sleeps !dog")
	if len(results) != 2 {
		t.Errorf("exclusion: got %d results, want 2", len(results))
	}
}

func TestQueryNoWords(t *testing.T) {
	h := newHandler(t, nil)
	for _, in := range []string{"", "every and if", "!cat"} {
		if _, err := h.Query(in); !errors.Is(err, errNoWords) {
			t.Errorf("Query(%q): got %v, want errNoWords", in, err)
		}
	}
}

func TestSuggest(t *testing.T) {
	lx := lexicon.New()
	lx.Add("cat", "http://example.org#cat", ace.CNSg)
	lx.Add("cats", "http://example.org#cat", ace.CNPl)
	lx.Add("dog", "http://example.org#dog", ace.CNSg)
	h := newHandler(t, lx)

	s := h.Suggest("ca")
	if len(s) != 2 || s[0].Text != "cat" || s[1].Text != "cats" {
		t.Fatalf("got %v", s)
	}
	if s[1].Description != "cn_pl" {
		t.Errorf("description: got %q", s[1].Description)
	}

	if got := h.Suggest("!do"); len(got) != 1 || got[0].Text != "dog" {
		t.Errorf("excluded prefix: got %v", got)
	}
	if got := h.Suggest("c"); len(got) != 0 {
		t.Errorf("below threshold: got %v", got)
	}
	if got := newHandler(t, nil).Suggest("cat"); len(got) != 0 {
		t.Errorf("without lexicon: got %v", got)
	}
}

func TestQueryDoc(t *testing.T) {
	h := newHandler(t, nil,
		"a.ace", "A cat sleeps.",
		"b.ace", "A dog sleeps. Every cat sleeps.",
	)
	id := 1
	h.DocID = &id

	results, err := h.Query("A cat sleeps.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].DocTitle != "b.ace" || results[0].SentenceId != 1 {
		t.Fatalf("unexpected results %+v", results)
	}
}
