// Package search finds the stored sentences that a matcher accepts.
package search

import (
	"errors"

	"github.com/Kaljurand/aceview-sub001/match"
	"github.com/Kaljurand/aceview-sub001/storage"
)

// ErrNoWords is returned for an indexed search without required words.
var ErrNoWords = errors.New("matcher must require at least one word for indexing")

// Search orchestrates the strategy selection for finding sentences
// that match against a document repository.
type Search struct {
	matcher *match.Matcher
	repo    storage.DocReader
	docID   *int
}

// New creates a new Search instance with the given matcher and repository.
func New(m *match.Matcher, dr storage.DocReader) *Search {
	return &Search{
		matcher: m,
		repo:    dr,
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// Sentences calls onMatch for the matched sentences after cursor and
// returns the cursor to continue from. An unchanged cursor means that there
// are no more candidates.
func (s *Search) Sentences(cursor storage.Cursor, limit int, onMatch func(*match.SentenceMatch) error) (storage.Cursor, error) {
	// Strategy 1: Single Document (No Index), done in one page
	if s.docID != nil {
		if cursor > 0 {
			return cursor, nil
		}
		return cursor, s.scanDoc(*s.docID, onMatch)
	}

	// Strategy 2: Find candidates (indexed search)
	words := s.matcher.Words()
	if len(words) == 0 {
		return cursor, ErrNoWords
	}

	return s.repo.FindCandidates(words, cursor, limit, func(res storage.SentenceResult) error {
		if m := s.matcher.MatchSentence(res); m != nil {
			return onMatch(m)
		}
		return nil
	})
}

func (s *Search) scanDoc(id int, onMatch func(*match.SentenceMatch) error) error {
	doc, err := s.repo.Read(id)
	if err != nil {
		return err
	}
	// Ensure doc has ID set (Read might return 0 if backend doesn't populate)
	doc.Id = id

	index := 0
	for p, paragraph := range doc.Paragraphs {
		for _, sentence := range paragraph {
			res := storage.SentenceResult{
				DocID:     doc.Id,
				DocTitle:  doc.Title,
				Paragraph: p,
				Index:     index,
				Sentence:  sentence,
			}
			index++

			if m := s.matcher.MatchSentence(res); m != nil {
				if err := onMatch(m); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
