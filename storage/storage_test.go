package storage

import (
	"reflect"
	"testing"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/lexicon"
)

func TestIndexWords(t *testing.T) {
	sp := ace.NewSplitter(nil)
	s, ok := sp.FirstSentence(`Every Cat that sees a cat sees "Mary" and 3 dogs.`)
	if !ok {
		t.Fatal("no sentence")
	}

	got := IndexWords(s)
	want := []string{"cat", "dogs", "sees"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"Dog", "", "cat", "dog"})
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

type entries []lexicon.Entry

func (e entries) Entries() ([]lexicon.Entry, error) { return e, nil }

func TestLoadLexicon(t *testing.T) {
	lx, err := LoadLexicon(entries{
		{Wordform: "cat", IRI: "http://example.org#cat", Morph: ace.CNSg},
		{Wordform: "cats", IRI: "http://example.org#cat", Morph: ace.CNPl},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// both forms belong to one entity
	if lx.Len() != 1 {
		t.Errorf("len: got %d, want 1", lx.Len())
	}
	if len(lx.Entries()) != 2 {
		t.Errorf("entries: got %d, want 2", len(lx.Entries()))
	}

	if _, err := LoadLexicon(entries{{Wordform: "", IRI: "x", Morph: ace.CNSg}}); err == nil {
		t.Error("expected error for empty wordform")
	}
}
