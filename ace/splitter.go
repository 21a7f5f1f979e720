package ace

import (
	"fmt"
	"io"
	"regexp"

	"github.com/golang/glog"
)

// numberDot matches a digit followed by a dot that does not start a
// fraction. Without the space the scanner would take the dot as part of
// the number.
var numberDot = regexp.MustCompile(`([0-9])\.([^0-9]|$)`)

// Normalize separates a sentence final dot from a preceding digit, so that
// "John is 15." ends with a number and a border.
//
// The rewrite is blind to quoting: "1.x" inside a quoted string also gets
// a space.
func Normalize(text string) string {
	return numberDot.ReplaceAllString(text, "${1} .${2}")
}

// Splitter turns ACE text into tokens, sentences and paragraphs. With a
// resolver, content words are mapped to the entities they denote.
//
// A Splitter holds no mutable state and is safe for concurrent use if its
// resolver is.
type Splitter struct {
	resolver WordResolver
}

// NewSplitter returns a splitter that consults r for every word. r may be nil.
func NewSplitter(r WordResolver) *Splitter {
	return &Splitter{resolver: r}
}

// Tokenize returns the flat token sequence of text. No dot is appended.
func (s *Splitter) Tokenize(text string) []Token {
	var tokens []Token
	s.scan(text, func(t Token, _ int) bool {
		tokens = append(tokens, t)
		return true
	})
	return tokens
}

// Sentences returns every sentence of text, ignoring paragraph breaks. A
// trailing sentence without a border gets a dot.
func (s *Splitter) Sentences(text string) []Sentence {
	var b builder
	s.scan(text, func(t Token, _ int) bool {
		b.add(t)
		return true
	})
	b.flush()
	return b.sentences
}

// FirstSentence returns the first sentence of text. It reports false if
// text has no tokens.
func (s *Splitter) FirstSentence(text string) (Sentence, bool) {
	var b builder
	s.scan(text, func(t Token, _ int) bool {
		b.add(t)
		return len(b.sentences) == 0
	})
	b.flush()
	if len(b.sentences) == 0 {
		return Sentence{}, false
	}
	return b.sentences[0], true
}

// Paragraphs splits text into paragraphs of sentences. Two or more line
// breaks between tokens start a new paragraph. The last paragraph is
// always present, even if it is empty.
func (s *Splitter) Paragraphs(text string) [][]Sentence {
	var (
		b          builder
		paragraphs [][]Sentence
		started    bool
	)
	s.scan(text, func(t Token, eols int) bool {
		if started && eols > 1 {
			b.flush()
			paragraphs = append(paragraphs, b.take())
		}
		started = true
		b.add(t)
		return true
	})
	b.flush()
	return append(paragraphs, b.take())
}

// ReadParagraphs reads all of r and splits it into paragraphs.
func (s *Splitter) ReadParagraphs(r io.Reader) ([][]Sentence, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	return s.Paragraphs(string(b)), nil
}

// scan normalizes text and calls fn for every token along with the number
// of line breaks seen since the previous token. Scanning stops when fn
// returns false.
func (s *Splitter) scan(text string, fn func(t Token, eols int) bool) {
	sc := newScanner(Normalize(text))
	eols := 0
	for {
		var t Token
		switch sc.next() {
		case lexEOF:
			return
		case lexEOL:
			eols++
			continue
		case lexWord:
			t = s.word(sc.sval)
		case lexBackquoted:
			t = NewWord(sc.sval)
		case lexQuoted:
			t = NewQuotedString(sc.sval)
		case lexNumber:
			t = NewNumber(sc.nval)
		case lexChar:
			t = charToken(sc.ch)
		}
		if !fn(t, eols) {
			return
		}
		eols = 0
	}
}

func (s *Splitter) word(text string) Token {
	t := NewWord(text)
	if s.resolver == nil || t.isStructural() {
		return t
	}

	triples := s.resolver.Resolve(text)
	switch len(triples) {
	case 0:
		if t.IsContentWord() {
			glog.Warningf("no entity for wordform %q", text)
		} else {
			glog.V(1).Infof("no entity for function word %q", text)
		}
		return t
	case 1:
	default:
		glog.Warningf("wordform %q denotes %d entities, using %s", text, len(triples), triples[0])
	}
	return NewContentWord(text, triples[0])
}

func charToken(ch rune) Token {
	switch {
	case ch == '.' || ch == '?' || ch == '!':
		return NewBorder(ch)
	case ch < 128 && IsSymbolChar(string(ch)):
		return NewSymbol(string(ch))
	}
	return NewBad(ch)
}

// builder collects tokens into sentences.
type builder struct {
	tokens    []Token
	sentences []Sentence
}

func (b *builder) add(t Token) {
	b.tokens = append(b.tokens, t)
	if t.IsBorderToken() {
		b.sentences = append(b.sentences, NewSentence(b.tokens))
		b.tokens = nil
	}
}

// flush terminates pending tokens with a dot.
func (b *builder) flush() {
	if len(b.tokens) > 0 {
		b.add(Dot)
	}
}

// take returns the collected sentences and starts a new paragraph. The
// result is never nil.
func (b *builder) take() []Sentence {
	s := b.sentences
	if s == nil {
		s = []Sentence{}
	}
	b.sentences = nil
	return s
}
