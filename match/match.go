// Package match scores stored sentences against the content words of a
// query.
package match

import (
	"sort"
	"strings"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/storage"
)

// ExcludePrefix marks a query word that must not occur in a match.
const ExcludePrefix = "!"

// Matcher matches sentences against a set of required and excluded content
// words. A set of candidates can be matched by repeated MatchSentence calls.
type Matcher struct {
	// words are the index forms of the required words
	words map[string]bool

	exclude map[string]bool
}

// SentenceMatch is a sentence that contains all required words and none of
// the excluded ones.
type SentenceMatch struct {
	Sentence ace.Sentence `json:"sentence"`

	DocId    int    `json:"doc_id"`
	DocTitle string `json:"doc_title"`

	// SentenceId is the index of the sentence inside of the doc.
	SentenceId int `json:"sentence_id"`

	// Positions are the token indexes of the matched words, ascending.
	Positions []int `json:"positions"`
}

// NewMatcher creates a matcher for the given words. Words starting with
// ExcludePrefix are excluded words.
func NewMatcher(words []string) *Matcher {
	m := &Matcher{words: map[string]bool{}, exclude: map[string]bool{}}
	for _, w := range words {
		if x, ok := strings.CutPrefix(w, ExcludePrefix); ok {
			if x != "" {
				m.exclude[storage.IndexWord(x)] = true
			}
			continue
		}
		m.words[storage.IndexWord(w)] = true
	}
	return m
}

// NewSentenceMatcher requires the content words of s.
func NewSentenceMatcher(s ace.Sentence) *Matcher {
	return NewMatcher(storage.IndexWords(s))
}

// Words returns the required words, sorted. They are the words to ask the
// index for.
func (m *Matcher) Words() []string {
	out := make([]string, 0, len(m.words))
	for w := range m.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Exclude adds excluded words.
func (m *Matcher) Exclude(words ...string) {
	for _, w := range words {
		m.exclude[storage.IndexWord(w)] = true
	}
}

// MatchSentence returns nil if the candidate does not match.
func (m *Matcher) MatchSentence(r storage.SentenceResult) *SentenceMatch {
	if len(m.words) == 0 {
		return nil
	}

	seen := map[string]bool{}
	var positions []int
	for i := 0; i < r.Sentence.Len(); i++ {
		t := r.Sentence.Token(i)
		if !t.IsContentWord() || t.Kind() != ace.Word {
			continue
		}
		w := storage.IndexWord(t.Text())
		if m.exclude[w] {
			return nil
		}
		if m.words[w] {
			seen[w] = true
			positions = append(positions, i)
		}
	}
	if len(seen) != len(m.words) {
		return nil
	}

	return &SentenceMatch{
		Sentence:   r.Sentence,
		DocId:      r.DocID,
		DocTitle:   r.DocTitle,
		SentenceId: r.Index,
		Positions:  positions,
	}
}

// NumMatches is the number of matched tokens. Used to sort the sentences.
func (sm *SentenceMatch) NumMatches() int {
	return len(sm.Positions)
}

// Highlights addresses the matched tokens for ace.PrettyPrint when the
// sentence is printed at position sentence.
func (sm *SentenceMatch) Highlights(sentence int) []ace.TokenPos {
	out := make([]ace.TokenPos, len(sm.Positions))
	for i, p := range sm.Positions {
		out[i] = ace.TokenPos{Sentence: sentence, Token: p}
	}
	return out
}

// Words returns the index forms of the matched tokens, in sentence order.
func (sm *SentenceMatch) Words() []string {
	out := make([]string, len(sm.Positions))
	for i, p := range sm.Positions {
		out[i] = storage.IndexWord(sm.Sentence.Token(p).Text())
	}
	return out
}

// Sort orders matches by number of matched tokens, then doc and sentence.
func Sort(results []*SentenceMatch) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].NumMatches() != results[j].NumMatches() {
			return results[i].NumMatches() > results[j].NumMatches()
		}
		if results[i].DocId != results[j].DocId {
			return results[i].DocId < results[j].DocId
		}
		return results[i].SentenceId < results[j].SentenceId
	})
}
