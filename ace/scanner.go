package ace

// lexeme is the type of a scanned unit.
type lexeme int

const (
	lexEOF lexeme = iota
	lexEOL
	lexWord
	lexNumber
	lexQuoted     // "..."
	lexBackquoted // `...`
	lexChar       // any single ordinary character
)

const eof = -1

// scanner splits ACE text into words, numbers, quoted strings, single
// characters and end-of-line events. Comments and whitespace are skipped.
type scanner struct {
	src []rune
	pos int

	// result of the last call to next
	sval string
	nval float64
	ch   rune
}

func newScanner(text string) *scanner {
	return &scanner{src: []rune(text)}
}

func (s *scanner) read() rune {
	if s.pos >= len(s.src) {
		s.pos++
		return eof
	}
	r := s.src[s.pos]
	s.pos++
	return r
}

func (s *scanner) unread() {
	s.pos--
}

func (s *scanner) peek() rune {
	if s.pos >= len(s.src) {
		return eof
	}
	return s.src[s.pos]
}

func isSpace(c rune) bool { return c >= 0 && c <= ' ' }

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// isAlpha reports whether c starts a word. Every code point above Latin-1 is
// a word character.
func isAlpha(c rune) bool {
	switch {
	case c >= 256:
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= 0xA0 && c <= 0xFF:
		return true
	case c == '_' || c == '$':
		return true
	}
	return false
}

// isNumeric reports whether c may start a number or continue a word.
func isNumeric(c rune) bool { return isDigit(c) || c == '-' }

func (s *scanner) next() lexeme {
	for {
		c := s.read()
		for isSpace(c) {
			switch c {
			case '\r':
				if s.peek() == '\n' {
					s.read()
				}
				return lexEOL
			case '\n':
				return lexEOL
			}
			c = s.read()
		}

		switch {
		case c == eof:
			return lexEOF
		case isNumeric(c):
			if lx, ok := s.number(c); ok {
				return lx
			}
			s.ch = '-'
			return lexChar
		case isAlpha(c):
			return s.word(c)
		case c == '"':
			s.quoted(c)
			return lexQuoted
		case c == '`':
			s.quoted(c)
			return lexBackquoted
		case c == '/' && s.peek() == '*':
			s.read()
			if !s.skipBlockComment() {
				return lexEOF
			}
		case c == '#':
			for c = s.peek(); c != '\n' && c != '\r' && c != eof; c = s.peek() {
				s.read()
			}
		default:
			s.ch = c
			return lexChar
		}
	}
}

// number scans a number that starts with c. A minus sign that is not
// followed by a digit or a dot is not a number.
func (s *scanner) number(c rune) (lexeme, bool) {
	neg := false
	if c == '-' {
		c = s.read()
		if c != '.' && !isDigit(c) {
			s.unread()
			return 0, false
		}
		neg = true
	}

	var v float64
	decexp := 0
	seendot := 0
	for {
		if c == '.' && seendot == 0 {
			seendot = 1
		} else if isDigit(c) {
			v = v*10 + float64(c-'0')
			decexp += seendot
		} else {
			break
		}
		c = s.read()
	}
	s.unread()

	if decexp != 0 {
		denom := 10.0
		for decexp--; decexp > 0; decexp-- {
			denom *= 10
		}
		v = v / denom
	}
	if neg {
		v = -v
	}
	s.nval = v
	return lexNumber, true
}

func (s *scanner) word(c rune) lexeme {
	start := s.pos - 1
	for c = s.read(); isAlpha(c) || isNumeric(c); c = s.read() {
	}
	s.unread()
	s.sval = string(s.src[start:s.pos])
	return lexWord
}

// quoted scans up to the closing quote, the end of the line or the end of
// the input, whichever comes first. The line break is left for the next call.
func (s *scanner) quoted(q rune) {
	var buf []rune
	for {
		c := s.read()
		if c == q {
			break
		}
		if c == '\n' || c == '\r' || c == eof {
			s.unread()
			break
		}
		if c == '\\' {
			c = s.escape()
		}
		buf = append(buf, c)
	}
	s.sval = string(buf)
}

func (s *scanner) escape() rune {
	c := s.read()
	switch {
	case c >= '0' && c <= '7':
		first := c
		v := c - '0'
		if d := s.peek(); d >= '0' && d <= '7' {
			s.read()
			v = v*8 + (d - '0')
			if d2 := s.peek(); d2 >= '0' && d2 <= '7' && first <= '3' {
				s.read()
				v = v*8 + (d2 - '0')
			}
		}
		return v
	case c == 'a':
		return 0x7
	case c == 'b':
		return '\b'
	case c == 'f':
		return 0xC
	case c == 'n':
		return '\n'
	case c == 'r':
		return '\r'
	case c == 't':
		return '\t'
	case c == 'v':
		return 0xB
	case c == eof:
		s.unread()
		return '\\'
	}
	return c
}

// skipBlockComment consumes everything up to and including the closing */.
// It reports false if the input ends inside the comment.
func (s *scanner) skipBlockComment() bool {
	prev := rune(0)
	for {
		c := s.read()
		if c == eof {
			return false
		}
		if c == '/' && prev == '*' {
			return true
		}
		prev = c
	}
}
