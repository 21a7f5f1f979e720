package ace

import "fmt"

// EntryType is the word class of a content word.
type EntryType int

const (
	CN EntryType = iota // common noun
	TV                  // transitive verb
	PN                  // proper name
)

func (e EntryType) String() string {
	switch e {
	case CN:
		return "CN"
	case TV:
		return "TV"
	case PN:
		return "PN"
	}
	return fmt.Sprintf("EntryType(%d)", int(e))
}

// Name returns the human readable name of the word class.
func (e EntryType) Name() string {
	switch e {
	case CN:
		return "Noun"
	case TV:
		return "Verb"
	case PN:
		return "Name"
	}
	return ""
}

// FieldType is the inflectional form of a content word.
type FieldType int

const (
	SG  FieldType = iota // singular
	PL                   // plural
	VBG                  // past participle
)

func (f FieldType) String() string {
	switch f {
	case SG:
		return "SG"
	case PL:
		return "PL"
	case VBG:
		return "VBG"
	}
	return fmt.Sprintf("FieldType(%d)", int(f))
}

// MorphType is one of the allowed (EntryType, FieldType) combinations.
type MorphType int

const (
	CNSg MorphType = iota
	CNPl
	TVSg
	TVPl
	TVVbg
	PNSg
)

const lexiconNS = "http://attempto.ifi.uzh.ch/ace_lexicon#"

var morphTypes = []struct {
	entry EntryType
	field FieldType
	tag   string
	iri   string
}{
	CNSg:  {CN, SG, "cn_sg", lexiconNS + "CN_sg"},
	CNPl:  {CN, PL, "cn_pl", lexiconNS + "CN_pl"},
	TVSg:  {TV, SG, "tv_sg", lexiconNS + "TV_sg"},
	TVPl:  {TV, PL, "tv_pl", lexiconNS + "TV_pl"},
	TVVbg: {TV, VBG, "tv_vbg", lexiconNS + "TV_vbg"},
	PNSg:  {PN, SG, "pn_sg", lexiconNS + "PN_sg"},
}

// MorphTypes returns all morph types in declaration order.
func MorphTypes() []MorphType {
	return []MorphType{CNSg, CNPl, TVSg, TVPl, TVVbg, PNSg}
}

// Valid reports whether m is one of the declared morph types.
func (m MorphType) Valid() bool { return m >= CNSg && m <= PNSg }

func (m MorphType) Entry() EntryType { return morphTypes[m].entry }

func (m MorphType) Field() FieldType { return morphTypes[m].field }

// Tag is the lowercase tag used in pre-tagged CSV input, e.g. "cn_pl".
func (m MorphType) Tag() string { return morphTypes[m].tag }

// IRI is the annotation property that links an entity to this wordform.
func (m MorphType) IRI() string { return morphTypes[m].iri }

func (m MorphType) String() string {
	if !m.Valid() {
		return fmt.Sprintf("MorphType(%d)", int(m))
	}
	return m.Tag()
}

// Triple returns the reading of the entity iri in this form.
func (m MorphType) Triple(iri string) Triple {
	return Triple{IRI: iri, Entry: m.Entry(), Field: m.Field()}
}

func (m MorphType) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid morph type %d", int(m))
	}
	return []byte(m.Tag()), nil
}

func (m *MorphType) UnmarshalText(b []byte) error {
	mt, ok := ParseMorphTag(string(b))
	if !ok {
		return fmt.Errorf("unknown morph type %q", b)
	}
	*m = mt
	return nil
}

// MorphTypeOf returns the morph type of the given combination. CN has no VBG
// form and PN only has SG.
func MorphTypeOf(e EntryType, f FieldType) (MorphType, bool) {
	for i, mt := range morphTypes {
		if mt.entry == e && mt.field == f {
			return MorphType(i), true
		}
	}
	return 0, false
}

// ParseMorphTag maps a CSV tag such as "tv_vbg" to its morph type.
func ParseMorphTag(tag string) (MorphType, bool) {
	for i, mt := range morphTypes {
		if mt.tag == tag {
			return MorphType(i), true
		}
	}
	return 0, false
}

// ParseMorphIRI maps an ace_lexicon annotation IRI to its morph type.
func ParseMorphIRI(iri string) (MorphType, bool) {
	for i, mt := range morphTypes {
		if mt.iri == iri {
			return MorphType(i), true
		}
	}
	return 0, false
}

// Triple is one reading of a wordform: the entity it denotes and the form in
// which it denotes it.
type Triple struct {
	IRI   string    `json:"iri"`
	Entry EntryType `json:"entry"`
	Field FieldType `json:"field"`
}

// Morph returns the morph type of the triple.
func (t Triple) Morph() (MorphType, bool) {
	return MorphTypeOf(t.Entry, t.Field)
}

func (t Triple) String() string {
	return t.IRI + " :: " + t.Entry.String() + "_" + t.Field.String()
}

// WordResolver maps a surface wordform to zero or more readings. The order of
// the returned triples must be stable, the first one is used when a wordform
// is ambiguous.
type WordResolver interface {
	Resolve(wordform string) []Triple
}

// EntityRenderer returns the display label of a reading, reporting false when
// the entity has no registered form.
type EntityRenderer interface {
	Render(t Triple) (string, bool)
}

func (e EntryType) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EntryType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "CN":
		*e = CN
	case "TV":
		*e = TV
	case "PN":
		*e = PN
	default:
		return fmt.Errorf("unknown entry type %q", b)
	}
	return nil
}

func (f FieldType) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *FieldType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "SG":
		*f = SG
	case "PL":
		*f = PL
	case "VBG":
		*f = VBG
	default:
		return fmt.Errorf("unknown field type %q", b)
	}
	return nil
}
