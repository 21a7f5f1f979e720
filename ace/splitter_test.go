package ace

import (
	"fmt"
	"strings"
	"testing"
)

func surfaces(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Surface()
	}
	return out
}

func renderParagraphs(ps [][]Sentence) string {
	var parts []string
	for _, p := range ps {
		var ss []string
		for _, s := range p {
			ss = append(ss, s.String())
		}
		parts = append(parts, "["+strings.Join(ss, ", ")+"]")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

const mixedText = "Everybody ;owns \"quoted string\",and does-not v:like John.John's $dog /*likes*/ kno_ws 2.1.1+1=2-3(4.01*8/6.6)#,comment,"

func TestTokenize(t *testing.T) {
	got := surfaces(NewSplitter(nil).Tokenize(mixedText))
	want := []string{
		"Everybody", ";", "owns", `"quoted string"`, ",", "and", "does-not", "v", ":", "like", "John", ".",
		"John", "'", "s", "$dog", "kno_ws", "2.1", ".", "1", "+", "1", "=", "2", "-3",
		"(", "4.01", "*", "8", "/", "6.6", ")",
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected\n%q\ngot\n%q", want, got)
	}
}

func TestSentencesMixed(t *testing.T) {
	got := NewSplitter(nil).Sentences(mixedText)
	want := []string{
		`Everybody ; owns "quoted string", and does-not v: like John.`,
		`John's $dog kno_ws 2.1.`,
		`1+ 1= 2 -3( 4.01* 8/ 6.6).`,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d", len(want), len(got))
	}
	for i, s := range got {
		if s.String() != want[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, want[i], s.String())
		}
	}
}

func TestParagraphsNumberDot(t *testing.T) {
	got := NewSplitter(nil).Paragraphs("John's age is 15.\nMary's 3.0 age 3.2 is 14.John waits 4.")
	want := "[[John's age is 15., Mary's 3 age 3.2 is 14., John waits 4.]]"
	if s := renderParagraphs(got); s != want {
		t.Fatalf("expected %s, got %s", want, s)
	}
}

func TestParagraphsBlankLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "three paragraphs",
			text: "John likes Mary.\n\nMary likes Bill.\n\nBill likes Ann.",
			want: "[[John likes Mary.], [Mary likes Bill.], [Bill likes Ann.]]",
		},
		{
			name: "single line break",
			text: "John likes Mary.\nMary likes Bill.",
			want: "[[John likes Mary., Mary likes Bill.]]",
		},
		{
			name: "dangling and lone borders",
			text: "\n \n o o o o ? o o 1. \n\n o o . \n\n o \n\n ? o . \n\n o . .\n\n",
			want: "[[o o o o?, o o 1.], [o o.], [o.], [?, o.], [o., .]]",
		},
		{
			name: "carriage returns",
			text: "John waits.\r\n\r\nMary waits.\r\rBill waits.",
			want: "[[John waits.], [Mary waits.], [Bill waits.]]",
		},
		{
			name: "block comment hides line breaks",
			text: "John waits. /*\n\n\n*/ Mary waits.",
			want: "[[John waits., Mary waits.]]",
		},
		{
			name: "line comment keeps line break",
			text: "John waits. # first\n\nMary waits.",
			want: "[[John waits.], [Mary waits.]]",
		},
		{
			name: "empty input",
			text: "",
			want: "[[]]",
		},
		{
			name: "unterminated comment",
			text: "John waits /* Mary",
			want: "[[John waits.]]",
		},
	}

	sp := NewSplitter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderParagraphs(sp.Paragraphs(tt.text)); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"John is 15.", "John is 15 ."},
		{"2.1.1", "2.1.1"},
		{`"Paris 100."`, `"Paris 100 ."`},
		{"15.x", "15 .x"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestQuotedStringDotIsRewritten(t *testing.T) {
	tokens := NewSplitter(nil).Tokenize(`"Paris 100."`)
	if len(tokens) != 1 || tokens[0].Text() != "Paris 100 ." {
		t.Fatalf("unexpected tokens %q", surfaces(tokens))
	}
}

func TestBadChars(t *testing.T) {
	s, ok := NewSplitter(nil).FirstSentence(`% ; @ \ ^ : | ~`)
	if !ok {
		t.Fatal("expected a sentence")
	}
	want := []string{"%", ";", "@", `\`, "^", ":", "|", "~", "."}
	if got := surfaces(s.Tokens()); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i, tok := range s.Tokens() {
		switch i {
		case 5:
			if tok.Kind() != Symbol {
				t.Errorf("expected ':' to be a symbol, got %s", tok.Kind())
			}
		case 8:
			if tok != Dot {
				t.Errorf("expected the final token to be Dot")
			}
		default:
			if !tok.IsBadToken() {
				t.Errorf("expected %q to be bad", tok.Surface())
			}
		}
	}
	if len(s.BadChars()) != 7 {
		t.Errorf("expected 7 bad chars, got %d", len(s.BadChars()))
	}
}

func TestWordsAndNumbers(t *testing.T) {
	s, _ := NewSplitter(nil).FirstSentence("123man man123 äöüp 123man123 man123man \"äöüpüp\" `Tom's Diner`")
	want := []struct {
		kind Kind
		text string
	}{
		{Number, "123"}, {Word, "man"}, {Word, "man123"}, {Word, "äöüp"},
		{Number, "123"}, {Word, "man123"}, {Word, "man123man"},
		{QuotedString, "äöüpüp"}, {Word, "Tom's Diner"}, {Border, "."},
	}
	tokens := s.Tokens()
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %q", len(want), surfaces(tokens))
	}
	for i, w := range want {
		if tokens[i].Kind() != w.kind || tokens[i].Text() != w.text {
			t.Errorf("token %d: expected %s %q, got %s %q", i, w.kind, w.text, tokens[i].Kind(), tokens[i].Text())
		}
	}
	if got := tokens[8].String(); got != "`Tom's Diner`" {
		t.Errorf("expected backquoted rendering, got %q", got)
	}
}

func TestNumberLiterals(t *testing.T) {
	s, _ := NewSplitter(nil).FirstSentence("1 12 0 -1 -12 -0 1.2 0.2 -1.2 -0.2 -.01 -.0 .1")
	want := []string{"1", "12", "0", "-1", "-12", "0", "1.2", "0.2", "-1.2", "-0.2", "-0.01", "0", "."}
	got := surfaces(s.Tokens())
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for _, tok := range s.Tokens()[:12] {
		if !tok.IsNumber() {
			t.Errorf("expected %q to be a number", tok.Surface())
		}
	}
}

func TestLoneMinusIsSymbol(t *testing.T) {
	tokens := NewSplitter(nil).Tokenize("a - b")
	if len(tokens) != 3 || tokens[1].Kind() != Symbol || tokens[1].Text() != "-" {
		t.Fatalf("unexpected tokens %q", surfaces(tokens))
	}
}

func TestQuoteEndsAtLineBreak(t *testing.T) {
	ps := NewSplitter(nil).Paragraphs("\"open\n\nJohn waits.")
	if len(ps) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(ps))
	}
	if got := ps[0][0].String(); got != `"open".` {
		t.Errorf("unexpected first sentence %q", got)
	}
}

func TestQuoteEscapes(t *testing.T) {
	tokens := NewSplitter(nil).Tokenize(`"a\tb\101\q"`)
	if len(tokens) != 1 || tokens[0].Text() != "a\tbAq" {
		t.Fatalf("unexpected tokens %q", surfaces(tokens))
	}
}

func TestAutoTermination(t *testing.T) {
	ss := NewSplitter(nil).Sentences("John waits 4")
	if len(ss) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(ss))
	}
	tokens := ss[0].Tokens()
	if tokens[len(tokens)-1] != Dot {
		t.Fatalf("expected the sentence to end with Dot")
	}
	if got := ss[0].String(); got != "John waits 4." {
		t.Fatalf("unexpected sentence %q", got)
	}
}

func TestBorderCountsSentences(t *testing.T) {
	texts := []string{
		"John waits. Mary waits? Bill waits! Ann",
		". . .",
		"no border at all",
		"",
		"a.\n\n\nb",
	}
	sp := NewSplitter(nil)
	for _, text := range texts {
		borders := 0
		tokens := sp.Tokenize(text)
		for _, tok := range tokens {
			if tok.IsBorderToken() {
				borders++
			}
		}
		if len(tokens) > 0 && !tokens[len(tokens)-1].IsBorderToken() {
			borders++
		}
		if got := len(sp.Sentences(text)); got != borders {
			t.Errorf("%q: expected %d sentences, got %d", text, borders, got)
		}
	}
}

func TestFirstSentenceEmpty(t *testing.T) {
	if _, ok := NewSplitter(nil).FirstSentence("  /* nothing */ "); ok {
		t.Fatal("expected no sentence")
	}
}

func TestReadParagraphs(t *testing.T) {
	ps, err := NewSplitter(nil).ReadParagraphs(strings.NewReader("John waits.\n\nMary waits."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(ps))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, fmt.Errorf("disk gone") }

func TestReadParagraphsError(t *testing.T) {
	ps, err := NewSplitter(nil).ReadParagraphs(failingReader{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if ps != nil {
		t.Fatalf("expected no partial result, got %v", ps)
	}
}

type mapResolver map[string][]Triple

func (m mapResolver) Resolve(w string) []Triple { return m[w] }

func TestResolver(t *testing.T) {
	cat := Triple{IRI: "http://example.org/cat", Entry: CN, Field: SG}
	feline := Triple{IRI: "http://example.org/feline", Entry: CN, Field: SG}
	r := mapResolver{
		"cat":  {cat, feline},
		"sees": {{IRI: "http://example.org/see", Entry: TV, Field: SG}},
		"and":  {{IRI: "http://example.org/and", Entry: CN, Field: SG}},
		"X":    {{IRI: "http://example.org/x", Entry: PN, Field: SG}},
	}

	tokens := NewSplitter(r).Tokenize("X sees a cat and a dog.")

	if _, ok := tokens[0].Triple(); ok || !tokens[0].IsVariable() {
		t.Errorf("variables must not be resolved")
	}
	if tr, ok := tokens[1].Triple(); !ok || tr.Entry != TV {
		t.Errorf("expected 'sees' to resolve to a verb, got %v", tr)
	}
	if tr, ok := tokens[3].Triple(); !ok || tr != cat {
		t.Errorf("expected the first reading of 'cat', got %v", tr)
	}
	if _, ok := tokens[4].Triple(); ok || !tokens[4].IsOrdinationWord() {
		t.Errorf("ordination words must not be resolved")
	}
	if _, ok := tokens[6].Triple(); ok || !tokens[6].IsContentWord() {
		t.Errorf("expected 'dog' to fall back to an unresolved content word")
	}
}

func TestBackquotedWordIsNotResolved(t *testing.T) {
	r := mapResolver{"cat": {{IRI: "http://example.org/cat", Entry: CN, Field: SG}}}
	tokens := NewSplitter(r).Tokenize("`cat`")
	if _, ok := tokens[0].Triple(); ok {
		t.Fatal("expected the backquoted word to stay unresolved")
	}
}

func TestBadCharsAreDistinct(t *testing.T) {
	s, ok := NewSplitter(nil).FirstSentence("[ a [ b ] ]")
	if !ok {
		t.Fatal("expected a sentence")
	}
	if got := surfaces(s.BadChars()); fmt.Sprint(got) != fmt.Sprint([]string{"[", "]"}) {
		t.Errorf("expected each bad char once, got %q", got)
	}
}

func TestResolvedFunctionWordStaysFunctionWord(t *testing.T) {
	the := Triple{IRI: "http://example.org/the", Entry: CN, Field: SG}
	tokens := NewSplitter(mapResolver{"the": {the}}).Tokenize("the cat")

	if tr, ok := tokens[0].Triple(); !ok || tr != the {
		t.Errorf("expected 'the' to carry its reading, got %v", tr)
	}
	if !tokens[0].IsFunctionWord() {
		t.Error("expected 'the' to stay a function word")
	}
	s := NewSentence(tokens)
	if got := surfaces(s.ContentWords()); fmt.Sprint(got) != "[cat]" {
		t.Errorf("content words: got %q", got)
	}
}

type countingResolver map[string]int

func (c countingResolver) Resolve(w string) []Triple {
	c[w]++
	return nil
}

func TestUnresolvedWordsKeepClassification(t *testing.T) {
	r := countingResolver{}
	tokens := NewSplitter(r).Tokenize("every dog waits")

	for _, w := range []string{"every", "dog", "waits"} {
		if r[w] != 1 {
			t.Errorf("expected one lookup of %q, got %d", w, r[w])
		}
	}
	if !tokens[0].IsFunctionWord() || !tokens[1].IsContentWord() {
		t.Errorf("unexpected classification of %q", surfaces(tokens))
	}
	for _, tok := range tokens {
		if _, ok := tok.Triple(); ok {
			t.Errorf("%q must stay unresolved", tok.Surface())
		}
	}
}
