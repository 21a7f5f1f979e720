package ace

import "strings"

// TokenRenderer renders a single token for display.
type TokenRenderer interface {
	RenderToken(t Token) string
}

// stringRenderer renders tokens with Token.String.
type stringRenderer struct{}

func (stringRenderer) RenderToken(t Token) string { return t.String() }

// SurfaceRenderer renders the literal surface form. Quoted strings get their
// double quotes back and words that are not plain ACE words are put in
// backticks.
var SurfaceRenderer TokenRenderer = stringRenderer{}

// EntityTokenRenderer renders resolved content words by the current label
// of the entity they denote, so that renaming an entity shows up in every
// sentence that mentions it.
type EntityTokenRenderer struct {
	Entities EntityRenderer
}

func (r EntityTokenRenderer) RenderToken(t Token) string {
	tr, ok := t.Triple()
	if !ok || r.Entities == nil {
		return t.String()
	}
	label, ok := r.Entities.Render(tr)
	if !ok {
		return t.String()
	}
	if needsQuoting(label) {
		return "`" + label + "`"
	}
	return label
}

// TokenPos addresses a token within a list of sentences.
type TokenPos struct {
	Sentence int
	Token    int
}

// Span is a byte range [Start, End) of rendered text.
type Span struct {
	Start, End int
}

const indentUnit = "    "

const maxIndent = 5

// PrettyPrint puts every sentence on its own line and breaks long sentences
// at relative pronouns and ordination words, indenting one level per
// embedded relative clause. The returned spans locate the renderings of the
// highlighted tokens.
//
// Without a syntax tree the layout is approximate: "who", "which" and
// "whose" are treated as relative pronouns only outside questions.
func PrettyPrint(r TokenRenderer, sentences []Sentence, highlight ...TokenPos) (string, []Span) {
	hl := make(map[TokenPos]bool, len(highlight))
	for _, p := range highlight {
		hl[p] = true
	}

	var (
		sb    strings.Builder
		spans []Span
	)
	put := func(pos TokenPos, t Token) {
		start := sb.Len()
		sb.WriteString(r.RenderToken(t))
		if hl[pos] {
			spans = append(spans, Span{Start: start, End: sb.Len()})
		}
	}

	for si, s := range sentences {
		if si > 0 {
			sb.WriteByte('\n')
		}
		level := 0
		for ti, t := range s.tokens {
			pos := TokenPos{Sentence: si, Token: ti}
			text := t.Text()
			relative := t.kind == Word && (text == "that" ||
				!s.question && (text == "who" || text == "which" || text == "whose"))
			if relative {
				level++
			}

			switch {
			case t.kind == Word && text == "then":
				sb.WriteByte('\n')
				put(pos, t)
				level = 0
			case ti > 0 && t.IsOrdinationWord():
				writeIndent(&sb, level)
				put(pos, t)
				if level > 0 {
					level--
				}
			case relative:
				writeIndent(&sb, level)
				put(pos, t)
			default:
				if ti > 0 {
					sb.WriteByte(' ')
				}
				put(pos, t)
			}
		}
	}
	return sb.String(), spans
}

func writeIndent(sb *strings.Builder, level int) {
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(indentUnit, min(level, maxIndent)))
}
