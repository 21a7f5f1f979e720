package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/golang/glog"

	"github.com/Kaljurand/aceview-sub001/ace"
)

// The ACE lexicon format has one Prolog fact per line, e.g.
//
//	noun_sg(cat, 'http://example.org/animals#Cat', neutr).
//	tv_finsg(likes, 'http://example.org/likes').
//	pn_sg('John', 'http://example.org/John', neutr).
//
// The first argument is the wordform, the second the entity.

var predicates = []struct {
	name   string
	morph  ace.MorphType
	gender bool
}{
	{"noun_sg", ace.CNSg, true},
	{"noun_pl", ace.CNPl, true},
	{"tv_finsg", ace.TVSg, false},
	{"tv_infpl", ace.TVPl, false},
	{"tv_pp", ace.TVVbg, false},
	{"pn_sg", ace.PNSg, true},
}

var (
	factPattern  = regexp.MustCompile(`^([a-z_]+)\((.*)\)\.$`)
	plainAtom    = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)
	atomReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
)

const gender = "neutr"

// ReadACE reads entries in ACE lexicon format. Blank lines and % comments
// are skipped, as are facts that do not describe a known wordform.
func ReadACE(r io.Reader) ([]Entry, error) {
	var entries []Entry

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		e, err := parseFact(line)
		if err != nil {
			glog.Warningf("lexicon line %d skipped: %v", lineNo, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return entries, nil
}

func parseFact(line string) (Entry, error) {
	m := factPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, fmt.Errorf("not a fact: %q", line)
	}
	args, err := splitAtoms(m[2])
	if err != nil {
		return Entry{}, err
	}

	for _, p := range predicates {
		if p.name != m[1] {
			continue
		}
		want := 2
		if p.gender {
			want = 3
		}
		if len(args) != want {
			return Entry{}, fmt.Errorf("%s expects %d arguments, got %d", p.name, want, len(args))
		}
		if args[0] == "" || args[1] == "" {
			return Entry{}, fmt.Errorf("empty wordform or entity in %q", line)
		}
		return Entry{Wordform: args[0], IRI: args[1], Morph: p.morph}, nil
	}
	return Entry{}, fmt.Errorf("unknown predicate %q", m[1])
}

// splitAtoms splits a Prolog argument list into atoms, unquoting quoted
// ones.
func splitAtoms(s string) ([]string, error) {
	var (
		atoms []string
		cur   strings.Builder
	)
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '\'':
			for i++; ; i++ {
				if i >= len(rs) {
					return nil, fmt.Errorf("unterminated quoted atom in %q", s)
				}
				if rs[i] == '\\' && i+1 < len(rs) {
					i++
					cur.WriteRune(rs[i])
					continue
				}
				if rs[i] == '\'' {
					break
				}
				cur.WriteRune(rs[i])
			}
		case c == ',':
			atoms = append(atoms, cur.String())
			cur.Reset()
		case c == ' ' || c == '\t':
		default:
			cur.WriteRune(c)
		}
	}
	return append(atoms, cur.String()), nil
}

func quoteAtom(s string) string {
	if plainAtom.MatchString(s) {
		return s
	}
	return "'" + atomReplacer.Replace(s) + "'"
}

// WriteACE writes entries in ACE lexicon format, one fact per line.
func WriteACE(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		var name string
		var g bool
		for _, p := range predicates {
			if p.morph == e.Morph {
				name, g = p.name, p.gender
			}
		}
		if name == "" {
			return fmt.Errorf("no lexicon predicate for %s", e)
		}
		if g {
			fmt.Fprintf(bw, "%s(%s, %s, %s).\n", name, quoteAtom(e.Wordform), quoteAtom(e.IRI), gender)
		} else {
			fmt.Fprintf(bw, "%s(%s, %s).\n", name, quoteAtom(e.Wordform), quoteAtom(e.IRI))
		}
	}
	return bw.Flush()
}

// Load returns a lexicon built from ACE lexicon format.
func Load(r io.Reader) (*Lexicon, error) {
	entries, err := ReadACE(r)
	if err != nil {
		return nil, err
	}
	l := New()
	if err := l.AddAll(entries); err != nil {
		return nil, err
	}
	return l, nil
}
