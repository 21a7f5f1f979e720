package lexicon

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/Kaljurand/aceview-sub001/ace"
)

const (
	catIRI  = "http://example.org/animals#Cat"
	bankIRI = "http://example.org/Bank"
	riverIR = "http://example.org/RiverBank"
	likeIRI = "http://example.org/likes"
)

func testLexicon(t *testing.T) *Lexicon {
	t.Helper()
	l := New()
	err := l.AddAll([]Entry{
		{"cat", catIRI, ace.CNSg},
		{"cats", catIRI, ace.CNPl},
		{"bank", bankIRI, ace.CNSg},
		{"bank", riverIR, ace.CNSg},
		{"likes", likeIRI, ace.TVSg},
		{"like", likeIRI, ace.TVPl},
		{"liked", likeIRI, ace.TVVbg},
		{"Bank", bankIRI, ace.PNSg},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return l
}

func TestLexiconResolve(t *testing.T) {
	l := testLexicon(t)

	trs := l.Resolve("bank")
	if len(trs) != 2 || trs[0].IRI != bankIRI || trs[1].IRI != riverIR {
		t.Fatalf("unexpected readings %v", trs)
	}
	if trs := l.Resolve("dog"); len(trs) != 0 {
		t.Fatalf("expected no readings, got %v", trs)
	}
	if !l.Contains("liked") || l.Contains("dog") {
		t.Fatalf("unexpected Contains result")
	}
}

func TestLexiconRender(t *testing.T) {
	l := testLexicon(t)
	w, ok := l.Render(ace.Triple{IRI: catIRI, Entry: ace.CN, Field: ace.PL})
	if !ok || w != "cats" {
		t.Fatalf("expected cats, got %q", w)
	}

	// renaming the plural
	if err := l.Add("kitties", catIRI, ace.CNPl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, _ := l.Render(ace.Triple{IRI: catIRI, Entry: ace.CN, Field: ace.PL}); w != "kitties" {
		t.Fatalf("expected kitties, got %q", w)
	}
	if l.Contains("cats") {
		t.Fatalf("old wordform is still registered")
	}
	if _, ok := l.Render(ace.Triple{IRI: catIRI, Entry: ace.PN, Field: ace.SG}); ok {
		t.Fatalf("expected no proper name for the cat")
	}
}

func TestLexiconRemove(t *testing.T) {
	l := testLexicon(t)
	if l.Remove("bank", catIRI, ace.CNSg) {
		t.Fatalf("removed an entry that does not exist")
	}
	if !l.Remove("bank", bankIRI, ace.CNSg) {
		t.Fatalf("expected the entry to be removed")
	}
	if trs := l.Resolve("bank"); len(trs) != 1 || trs[0].IRI != riverIR {
		t.Fatalf("unexpected readings %v", trs)
	}
	l.Remove("bank", riverIR, ace.CNSg)
	if l.Contains("bank") {
		t.Fatalf("expected bank to be gone")
	}
	if got := l.Candidates("ba", -1); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestLexiconAddInvalid(t *testing.T) {
	l := New()
	if err := l.Add("", catIRI, ace.CNSg); err == nil {
		t.Errorf("expected an error for an empty wordform")
	}
	if err := l.Add("cat", catIRI, ace.MorphType(42)); err == nil {
		t.Errorf("expected an error for an invalid morph type")
	}
}

func TestLexiconCounts(t *testing.T) {
	l := testLexicon(t)
	got := l.Counts()
	want := Counts{CN: 3, TV: 1, PN: 1, Partial: 2, Wordforms: 7, Ambiguous: 1, ClassAmbiguous: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if l.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", l.Len())
	}
	if a := l.AmbiguousWordforms(); fmt.Sprint(a) != "[bank]" {
		t.Fatalf("unexpected ambiguous wordforms %v", a)
	}
}

func TestLexiconAutocomplete(t *testing.T) {
	l := testLexicon(t)
	if got := l.Complete("li"); got != "like" {
		t.Errorf("expected like, got %q", got)
	}
	if got := l.Complete("c"); got != "cat" {
		t.Errorf("expected cat, got %q", got)
	}
	if got := l.Complete("x"); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	if got := l.Candidates("", -1); fmt.Sprint(got) != "[Bank bank cat cats like liked likes]" {
		t.Errorf("unexpected candidates %v", got)
	}
	if got := l.Candidates("like", 2); fmt.Sprint(got) != "[like liked]" {
		t.Errorf("unexpected candidates %v", got)
	}
}

func TestLexiconAsResolver(t *testing.T) {
	l := testLexicon(t)
	s, _ := ace.NewSplitter(l).FirstSentence("Every cat likes a bank.")

	tr, ok := s.Token(1).Triple()
	if !ok || tr.IRI != catIRI {
		t.Fatalf("unexpected reading of cat %v", tr)
	}
	if tr, _ := s.Token(4).Triple(); tr.IRI != bankIRI {
		t.Fatalf("expected the first reading of bank, got %v", tr)
	}

	l.Add("kitten", catIRI, ace.CNSg)
	if got := s.Render(ace.EntityTokenRenderer{Entities: l}); got != "Every kitten likes a bank." {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestACEFormat(t *testing.T) {
	input := `% animals
noun_sg(cat, 'http://example.org/animals#Cat', neutr).
noun_pl(cats, 'http://example.org/animals#Cat', neutr).

tv_finsg(likes, 'http://example.org/likes').
pn_sg('John', 'http://example.org/John', neutr).
pn_sg('O\'Neil', 'http://example.org/ONeil', neutr).
adj_itr(big, big).
noun_sg(broken).
this is not prolog
`
	entries, err := ReadACE(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{
		{"cat", catIRI, ace.CNSg},
		{"cats", catIRI, ace.CNPl},
		{"likes", likeIRI, ace.TVSg},
		{"John", "http://example.org/John", ace.PNSg},
		{"O'Neil", "http://example.org/ONeil", ace.PNSg},
	}
	if fmt.Sprint(entries) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, entries)
	}

	var buf bytes.Buffer
	if err := WriteACE(&buf, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, line := range []string{
		"noun_sg(cat, 'http://example.org/animals#Cat', neutr).",
		"tv_finsg(likes, 'http://example.org/likes').",
		`pn_sg('O\'Neil', 'http://example.org/ONeil', neutr).`,
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("missing %q in\n%s", line, out)
		}
	}

	again, err := ReadACE(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(again) != fmt.Sprint(entries) {
		t.Fatalf("round trip changed entries to %v", again)
	}
}

func TestLoad(t *testing.T) {
	l, err := Load(strings.NewReader("tv_pp(liked, likes).\ntv_infpl(like, likes).\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := l.Counts(); c.TV != 1 || c.Partial != 1 {
		t.Fatalf("unexpected counts %+v", c)
	}
}
