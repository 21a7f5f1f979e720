package ace

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the lexical class of a token.
type Kind int

const (
	Word Kind = iota
	Number
	QuotedString
	Symbol
	Border
	Bad
)

var kindNames = []string{"word", "number", "qs", "symbol", "border", "bad"}

func (k Kind) String() string {
	if k < Word || k > Bad {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func parseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

type facet uint16

const (
	fFunction facet = 1 << iota
	fOrdination
	fBut
	fVariable
	fQuestion
	fApos
	fQuoting
)

// symbols are the ordinary characters that ACE accepts as tokens.
const symbols = "',:+-*/=()"

// Token is an immutable classified lexical unit.
type Token struct {
	text   string
	kind   Kind
	facets facet
	triple *Triple
}

// Dot is the sentence terminating dot. The splitter also appends it to
// sentences that lack a border token.
var Dot = Token{text: ".", kind: Border, facets: fFunction}

// NewWord builds a word token and classifies it by its text.
func NewWord(text string) Token {
	t := Token{text: text, kind: Word}
	lc := strings.ToLower(text)

	switch {
	case lc == "and" || lc == "or" || lc == "if" || lc == "then":
		t.facets |= fOrdination | fFunction
	case lc == "but":
		t.facets |= fBut | fFunction
	case IsVariable(text):
		t.facets |= fVariable | fFunction
	case functionWords[lc] || additionalFunctionWords[lc]:
		t.facets |= fFunction
	}

	if needsQuoting(text) {
		t.facets |= fQuoting
	}
	return t
}

// NewContentWord builds a word that denotes the given reading. The word is
// still classified by its text, so a function word stays one.
func NewContentWord(text string, tr Triple) Token {
	t := NewWord(text)
	t.triple = &tr
	return t
}

// NewNumber builds a number token. Whole values are printed without a
// fraction, other values in the notation of Java's Double.toString.
func NewNumber(v float64) Token {
	return NewNumberText(formatNumber(v))
}

// NewNumberText builds a number token that keeps the literal text.
func NewNumberText(text string) Token {
	return Token{text: text, kind: Number, facets: fFunction}
}

// NewQuotedString builds a quoted string token from the unquoted content.
func NewQuotedString(content string) Token {
	return Token{text: content, kind: QuotedString, facets: fFunction}
}

// NewSymbol builds a symbol token.
func NewSymbol(s string) Token {
	t := Token{text: s, kind: Symbol, facets: fFunction}
	if s == "'" {
		t.facets |= fApos
	}
	return t
}

// NewBorder builds a sentence border token for '.', '?' or '!'.
func NewBorder(ch rune) Token {
	if ch == '.' {
		return Dot
	}
	t := Token{text: string(ch), kind: Border, facets: fFunction}
	if ch == '?' {
		t.facets |= fQuestion
	}
	return t
}

// NewBad builds a token for an unrecognized character.
func NewBad(ch rune) Token {
	return Token{text: string(ch), kind: Bad, facets: fFunction}
}

// IsSymbolChar reports whether s is one of the ACE symbols.
func IsSymbolChar(s string) bool {
	return len(s) == 1 && strings.Contains(symbols, s)
}

func (t Token) Kind() Kind { return t.kind }

// Text returns the raw text. For quoted strings this is the content between
// the quotes.
func (t Token) Text() string { return t.text }

// Surface returns the surface string that token equality is based on. Quoted
// strings include their double quotes.
func (t Token) Surface() string {
	if t.kind == QuotedString {
		return `"` + t.text + `"`
	}
	return t.text
}

// String renders the token so that the scanner reads it back as the same
// token: words that are not plain ACE words are wrapped in backticks.
func (t Token) String() string {
	if t.kind == Word && t.facets&fQuoting != 0 {
		return "`" + t.text + "`"
	}
	return t.Surface()
}

// Triple returns the reading a content word was resolved to.
func (t Token) Triple() (Triple, bool) {
	if t.triple == nil {
		return Triple{}, false
	}
	return *t.triple, true
}

func (t Token) IsFunctionWord() bool   { return t.facets&fFunction != 0 }
func (t Token) IsContentWord() bool    { return !t.IsFunctionWord() }
func (t Token) IsOrdinationWord() bool { return t.facets&fOrdination != 0 }
func (t Token) IsButToken() bool       { return t.facets&fBut != 0 }
func (t Token) IsVariable() bool       { return t.facets&fVariable != 0 }
func (t Token) IsQuestionMark() bool   { return t.facets&fQuestion != 0 }
func (t Token) IsApos() bool           { return t.facets&fApos != 0 }
func (t Token) IsBorderToken() bool    { return t.kind == Border }
func (t Token) IsSymbol() bool         { return t.kind == Symbol || t.kind == Border }
func (t Token) IsNumber() bool         { return t.kind == Number }
func (t Token) IsQuotedString() bool   { return t.kind == QuotedString }
func (t Token) IsBadToken() bool       { return t.kind == Bad }

// isStructural reports whether the word carries sentence structure and must
// never be looked up in a lexicon.
func (t Token) isStructural() bool {
	return t.facets&(fOrdination|fBut|fVariable) != 0
}

// Equal compares surfaces only. Two content words that denote different
// entities but are spelled the same are equal; use Identical to tell them
// apart.
func (t Token) Equal(o Token) bool {
	return t.Surface() == o.Surface()
}

// Identical compares surface, kind and the resolved reading.
func (t Token) Identical(o Token) bool {
	if t.Surface() != o.Surface() || t.kind != o.kind {
		return false
	}
	if (t.triple == nil) != (o.triple == nil) {
		return false
	}
	return t.triple == nil || *t.triple == *o.triple
}

type tokenJSON struct {
	Text   string  `json:"text"`
	Kind   string  `json:"kind"`
	Triple *Triple `json:"triple,omitempty"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{Text: t.text, Kind: t.kind.String(), Triple: t.triple})
}

// UnmarshalJSON rebuilds the token through its constructor so that all facets
// are derived again.
func (t *Token) UnmarshalJSON(b []byte) error {
	var tj tokenJSON
	if err := json.Unmarshal(b, &tj); err != nil {
		return err
	}
	kind, ok := parseKind(tj.Kind)
	if !ok {
		return fmt.Errorf("unknown token kind %q", tj.Kind)
	}

	switch kind {
	case Word:
		if tj.Triple != nil {
			*t = NewContentWord(tj.Text, *tj.Triple)
		} else {
			*t = NewWord(tj.Text)
		}
	case Number:
		*t = NewNumberText(tj.Text)
	case QuotedString:
		*t = NewQuotedString(tj.Text)
	case Symbol:
		*t = NewSymbol(tj.Text)
	case Border, Bad:
		r := []rune(tj.Text)
		if len(r) != 1 {
			return fmt.Errorf("%s token must be a single character, got %q", kind, tj.Text)
		}
		if kind == Border {
			*t = NewBorder(r[0])
		} else {
			*t = NewBad(r[0])
		}
	}
	return nil
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
		return strconv.Itoa(int(v))
	}
	return javaDouble(v)
}

// javaDouble mimics Double.toString: plain notation within [1e-3, 1e7),
// otherwise computerized scientific notation such as 1.0E-4.
func javaDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(v, 'E', -1, 64)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "E" + exp
}
