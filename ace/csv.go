package ace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParagraphsFromCSV builds paragraphs from pre-tagged input, one token per
// line in the form "tag<TAB>value". An empty line ends a paragraph; empty
// paragraphs are dropped.
//
// Tags are qs (quoted string), the morphological tags cn_sg, cn_pl, tv_sg,
// tv_pl, tv_vbg and pn_sg (content words whose value is the entity), and f
// (borders, symbols, numbers and other words). Lines tagged ignored,
// unsupported or comment, and lines with an unknown tag, yield no token.
func ParagraphsFromCSV(r io.Reader) ([][]Sentence, error) {
	var (
		b          builder
		paragraphs [][]Sentence
		started    bool
		lineNo     int
	)
	closeParagraph := func() {
		b.flush()
		if len(b.sentences) > 0 {
			paragraphs = append(paragraphs, b.take())
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			if started {
				closeParagraph()
			}
			continue
		}
		started = true

		t, ok, err := csvToken(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			b.add(t)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading tagged tokens: %w", err)
	}

	closeParagraph()
	return paragraphs, nil
}

func csvToken(line string) (Token, bool, error) {
	tag, value, found := strings.Cut(line, "\t")
	if !found {
		return Token{}, false, fmt.Errorf("expected tag and value separated by a tab, got %q", line)
	}
	// further fields are ignored
	value, _, _ = strings.Cut(value, "\t")

	if tag == "qs" {
		return NewQuotedString(value), true, nil
	}
	if m, ok := ParseMorphTag(tag); ok {
		return NewContentWord(value, Triple{IRI: value, Entry: m.Entry(), Field: m.Field()}), true, nil
	}
	if tag != "f" {
		return Token{}, false, nil
	}

	switch {
	case value == "." || value == "?" || value == "!":
		return NewBorder(rune(value[0])), true, nil
	case IsSymbolChar(value):
		return NewSymbol(value), true, nil
	case isNumberLiteral(value):
		return NewNumberText(value), true, nil
	}
	return NewWord(value), true, nil
}

// isNumberLiteral accepts decimal literals such as 12, -3.5 or 1e-4, but not
// the spelled out infinities and NaN that strconv also parses.
func isNumberLiteral(s string) bool {
	if s == "" || !strings.ContainsAny(s[:1], "0123456789+-.") || !strings.ContainsAny(s, "0123456789") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
