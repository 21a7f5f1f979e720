package ace

import (
	"encoding/json"
	"strings"
)

// Sentence is an immutable sequence of tokens, normally ending in a border
// token.
type Sentence struct {
	tokens       []Token
	badChars     []Token
	contentWords []Token
	question     bool
	nothingbut   bool
}

// NewSentence copies tokens into a new sentence and derives its facets.
func NewSentence(tokens []Token) Sentence {
	s := Sentence{tokens: append([]Token(nil), tokens...)}

	for _, t := range s.tokens {
		switch {
		case t.IsButToken():
			s.nothingbut = true
		case t.IsQuestionMark():
			s.question = true
		case t.IsBadToken():
			if !containsToken(s.badChars, t) {
				s.badChars = append(s.badChars, t)
			}
		case t.IsContentWord():
			s.contentWords = append(s.contentWords, t)
		}
	}
	return s
}

func containsToken(ts []Token, t Token) bool {
	for _, x := range ts {
		if x.Equal(t) {
			return true
		}
	}
	return false
}

// Tokens returns a copy of the tokens.
func (s Sentence) Tokens() []Token { return append([]Token(nil), s.tokens...) }

func (s Sentence) Len() int { return len(s.tokens) }

// Token returns the i-th token.
func (s Sentence) Token(i int) Token { return s.tokens[i] }

// BadChars returns the distinct bad tokens in order of first occurrence.
func (s Sentence) BadChars() []Token { return append([]Token(nil), s.badChars...) }

// ContentWords returns the content words in sentence order, repetitions
// included.
func (s Sentence) ContentWords() []Token { return append([]Token(nil), s.contentWords...) }

func (s Sentence) IsQuestion() bool { return s.question }

// IsNothingbut reports whether the sentence contains "but", as in
// "nothing but".
func (s Sentence) IsNothingbut() bool { return s.nothingbut }

// Equal compares the token sequences.
func (s Sentence) Equal(o Sentence) bool {
	if len(s.tokens) != len(o.tokens) {
		return false
	}
	for i := range s.tokens {
		if !s.tokens[i].Equal(o.tokens[i]) {
			return false
		}
	}
	return true
}

// Key returns a string that is equal for equal sentences, to be used as a
// map key.
func (s Sentence) Key() string {
	var sb strings.Builder
	for i, t := range s.tokens {
		if i > 0 {
			sb.WriteByte(0)
		}
		sb.WriteString(t.Surface())
	}
	return sb.String()
}

// String renders the sentence with punctuation attached to the preceding
// word, e.g. "John's dog sees 3 cats, and waits."
func (s Sentence) String() string {
	return s.Render(stringRenderer{})
}

// Render renders the sentence like String but with tokens rendered by r.
func (s Sentence) Render(r TokenRenderer) string {
	return s.RenderFunc(func(_ int, t Token) string { return r.RenderToken(t) })
}

// RenderFunc is Render with a renderer that also gets the token position.
func (s Sentence) RenderFunc(fn func(i int, t Token) string) string {
	var sb strings.Builder
	for i, t := range s.tokens {
		if i > 0 && spaceBefore(s.tokens[i-1], t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(fn(i, t))
	}
	return sb.String()
}

func spaceBefore(prev, t Token) bool {
	if t.IsSymbol() {
		return false
	}
	return !(prev.IsApos() && t.Surface() == "s")
}

// SimpleString joins all tokens with a space.
func (s Sentence) SimpleString() string {
	parts := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// MOSString drops the final border and joins the remaining tokens with a
// space, which is how Manchester OWL Syntax expressions are written. It
// returns "" for sentences of fewer than two tokens.
func (s Sentence) MOSString() string {
	if len(s.tokens) < 2 {
		return ""
	}
	return NewSentence(s.tokens[:len(s.tokens)-1]).SimpleString()
}

func (s Sentence) MarshalJSON() ([]byte, error) {
	if s.tokens == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.tokens)
}

func (s *Sentence) UnmarshalJSON(b []byte) error {
	var tokens []Token
	if err := json.Unmarshal(b, &tokens); err != nil {
		return err
	}
	*s = NewSentence(tokens)
	return nil
}
