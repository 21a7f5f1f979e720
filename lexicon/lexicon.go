// Package lexicon maps ACE wordforms to the entities they denote.
package lexicon

import (
	"fmt"
	"sort"
	"sync"

	"github.com/golang/glog"

	"github.com/Kaljurand/aceview-sub001/ace"
)

// Entry binds a wordform to an entity in one morphological form.
type Entry struct {
	Wordform string        `json:"wordform"`
	IRI      string        `json:"iri"`
	Morph    ace.MorphType `json:"morph"`
}

func (e Entry) Triple() ace.Triple {
	return ace.Triple{IRI: e.IRI, Entry: e.Morph.Entry(), Field: e.Morph.Field()}
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s", e.Wordform, e.Morph, e.IRI)
}

// entityKey identifies a lexicon entry. The same IRI may be used as a noun
// and as a proper name.
type entityKey struct {
	iri   string
	entry ace.EntryType
}

// Lexicon is a wordform to entity mapping. It implements ace.WordResolver
// and ace.EntityRenderer and is safe for concurrent use.
type Lexicon struct {
	mu        sync.RWMutex
	wordforms map[string][]ace.Triple
	entities  map[entityKey]map[ace.FieldType]string
	trie      *prefixTrie
}

func New() *Lexicon {
	return &Lexicon{
		wordforms: map[string][]ace.Triple{},
		entities:  map[entityKey]map[ace.FieldType]string{},
		trie:      newPrefixTrie(),
	}
}

// Add registers wordform as the given form of the entity. A wordform that
// was previously registered for the same entity and form is replaced.
func (l *Lexicon) Add(wordform, iri string, m ace.MorphType) error {
	if wordform == "" || iri == "" {
		return fmt.Errorf("wordform and IRI must not be empty")
	}
	if !m.Valid() {
		return fmt.Errorf("invalid morphological type %d", int(m))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := entityKey{iri: iri, entry: m.Entry()}
	fields, ok := l.entities[key]
	if !ok {
		fields = map[ace.FieldType]string{}
		l.entities[key] = fields
	}
	if old, ok := fields[m.Field()]; ok {
		if old == wordform {
			return nil
		}
		l.unlink(old, m.Triple(iri))
	}
	fields[m.Field()] = wordform

	tr := m.Triple(iri)
	if len(l.wordforms[wordform]) == 0 {
		l.trie.add(wordform)
	}
	l.wordforms[wordform] = append(l.wordforms[wordform], tr)

	glog.V(1).Infof("lexicon: added %s", Entry{wordform, iri, m})
	return nil
}

// Remove unregisters the entry. It reports whether the entry existed.
func (l *Lexicon) Remove(wordform, iri string, m ace.MorphType) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := entityKey{iri: iri, entry: m.Entry()}
	fields := l.entities[key]
	if fields[m.Field()] != wordform {
		return false
	}
	delete(fields, m.Field())
	if len(fields) == 0 {
		delete(l.entities, key)
	}
	l.unlink(wordform, m.Triple(iri))

	glog.V(1).Infof("lexicon: removed %s", Entry{wordform, iri, m})
	return true
}

func (l *Lexicon) unlink(wordform string, tr ace.Triple) {
	trs := l.wordforms[wordform]
	for i, x := range trs {
		if x == tr {
			trs = append(trs[:i:i], trs[i+1:]...)
			break
		}
	}
	if len(trs) == 0 {
		delete(l.wordforms, wordform)
		l.trie.remove(wordform)
		return
	}
	l.wordforms[wordform] = trs
}

// Resolve returns the readings of wordform in the order they were added.
func (l *Lexicon) Resolve(wordform string) []ace.Triple {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]ace.Triple(nil), l.wordforms[wordform]...)
}

// Render returns the wordform currently registered for the entity and form
// of tr.
func (l *Lexicon) Render(tr ace.Triple) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	w, ok := l.entities[entityKey{iri: tr.IRI, entry: tr.Entry}][tr.Field]
	return w, ok
}

func (l *Lexicon) Contains(wordform string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.wordforms[wordform]) > 0
}

// Len returns the number of lexicon entries, i.e. entities with at least
// one wordform.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entities)
}

// Counts holds lexicon statistics.
type Counts struct {
	CN, TV, PN int
	// Partial counts entries that miss some of the forms of their class.
	Partial   int
	Wordforms int
	// Ambiguous counts wordforms that denote more than one entity.
	Ambiguous int
	// ClassAmbiguous counts wordforms that denote more than one entity of
	// the same class, which a well-formed lexicon never contains.
	ClassAmbiguous int
}

func (l *Lexicon) Counts() Counts {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var c Counts
	for key, fields := range l.entities {
		switch key.entry {
		case ace.CN:
			c.CN++
		case ace.TV:
			c.TV++
		case ace.PN:
			c.PN++
		}
		if len(fields) < len(fieldsOf(key.entry)) {
			c.Partial++
		}
	}

	c.Wordforms = len(l.wordforms)
	for _, trs := range l.wordforms {
		if isAmbiguous(trs) {
			c.Ambiguous++
		}
		if isClassAmbiguous(trs) {
			c.ClassAmbiguous++
		}
	}
	return c
}

func fieldsOf(e ace.EntryType) []ace.FieldType {
	var out []ace.FieldType
	for _, m := range ace.MorphTypes() {
		if m.Entry() == e {
			out = append(out, m.Field())
		}
	}
	return out
}

func isAmbiguous(trs []ace.Triple) bool {
	for _, tr := range trs[1:] {
		if tr.IRI != trs[0].IRI {
			return true
		}
	}
	return false
}

func isClassAmbiguous(trs []ace.Triple) bool {
	seen := map[ace.EntryType]string{}
	for _, tr := range trs {
		if iri, ok := seen[tr.Entry]; ok && iri != tr.IRI {
			return true
		}
		seen[tr.Entry] = tr.IRI
	}
	return false
}

// AmbiguousWordforms returns the sorted wordforms that denote more than one
// entity.
func (l *Lexicon) AmbiguousWordforms() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []string
	for w, trs := range l.wordforms {
		if isAmbiguous(trs) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// Complete extends prefix up to the point where the wordforms that start
// with it diverge.
func (l *Lexicon) Complete(prefix string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trie.complete(prefix)
}

// Candidates returns up to limit wordforms starting with prefix. A negative
// limit returns all of them.
func (l *Lexicon) Candidates(prefix string, limit int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trie.candidates(prefix, limit)
}

// Entries returns all entries ordered by IRI, class and form.
func (l *Lexicon) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for key, fields := range l.entities {
		for f, w := range fields {
			m, ok := ace.MorphTypeOf(key.entry, f)
			if !ok {
				continue
			}
			out = append(out, Entry{Wordform: w, IRI: key.iri, Morph: m})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IRI != out[j].IRI {
			return out[i].IRI < out[j].IRI
		}
		return out[i].Morph < out[j].Morph
	})
	return out
}

// AddAll adds entries and stops at the first invalid one.
func (l *Lexicon) AddAll(entries []Entry) error {
	for _, e := range entries {
		if err := l.Add(e.Wordform, e.IRI, e.Morph); err != nil {
			return fmt.Errorf("adding %s: %w", e, err)
		}
	}
	return nil
}
