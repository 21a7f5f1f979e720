package edit

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/storage"
	"github.com/Kaljurand/aceview-sub001/storage/filesystem"
)

func newHandler(t *testing.T) (*Handler, *filesystem.LexiconStore, *bytes.Buffer) {
	t.Helper()
	store := filesystem.NewLexiconStore(filepath.Join(t.TempDir(), "lexicon.pl"))
	var out bytes.Buffer
	return NewHandler(lexicon.New(), store, &out), store, &out
}

func TestApplyAddDelete(t *testing.T) {
	h, store, out := newHandler(t)

	if err := h.Apply("cn_sg cat http://example.org#cat"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.Apply("cn_sg cat http://example.org#cat"); err == nil {
		t.Error("expected error for duplicate entry")
	}

	lx, err := storage.LoadLexicon(store)
	if err != nil {
		t.Fatal(err)
	}
	if !lx.Contains("cat") {
		t.Error("entry was not stored")
	}

	out.Reset()
	if err := h.Apply("cat"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := out.String(); got != "cn_sg cat http://example.org#cat\n" {
		t.Errorf("show: got %q", got)
	}

	if err := h.Apply("cn_sg cat http://example.org#cat/"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if h.Lexicon.Contains("cat") {
		t.Error("entry still in lexicon")
	}
	entries, _ := store.Entries()
	if len(entries) != 0 {
		t.Errorf("entry still stored: %v", entries)
	}

	if err := h.Apply("cn_sg cat http://example.org#cat/"); err == nil {
		t.Error("expected error deleting a missing entry")
	}
}

func TestApplyErrors(t *testing.T) {
	h, _, _ := newHandler(t)
	for _, in := range []string{"", "xx_sg cat http://x", "cn_sg cat", "cn_sg cat /", "dog"} {
		if err := h.Apply(in); err == nil {
			t.Errorf("Apply(%q): expected error", in)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Put(lexicon.Entry) error    { return errors.New("disk full") }
func (failingWriter) Delete(lexicon.Entry) error { return errors.New("disk full") }

func TestApplyWriteError(t *testing.T) {
	h := NewHandler(lexicon.New(), failingWriter{}, &bytes.Buffer{})
	err := h.Apply("tv_sg sees http://example.org#see")
	var werr *writeError
	if !errors.As(err, &werr) {
		t.Fatalf("got %v, want writeError", err)
	}
}

func TestSuggest(t *testing.T) {
	h, _, _ := newHandler(t)
	h.Apply("cn_sg cat http://example.org#cat")
	h.Apply("cn_pl cats http://example.org#cat")
	h.Apply("pn_sg Cathy http://example.org#Cathy")

	var got []string
	for _, s := range h.Suggest("cn") {
		got = append(got, s.Text)
	}
	if strings.Join(got, ",") != "cn_sg,cn_pl" {
		t.Errorf("morph: got %v", got)
	}

	if s := h.Suggest("cn_sg ca"); len(s) != 2 {
		t.Errorf("wordforms: got %v", s)
	}

	s := h.Suggest("cn_sg kitty http://example.org#C")
	if len(s) != 1 || s[0].Text != "http://example.org#Cathy" {
		t.Errorf("iris: got %v", s)
	}

	if s := h.Suggest(""); len(s) != 0 {
		t.Errorf("empty: got %v", s)
	}
}
