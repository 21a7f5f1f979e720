package ace

import (
	"regexp"
	"strings"
)

// functionWords is the closed class of ACE words. All entries are lowercase.
var functionWords = toSet(
	// determiners and quantifiers
	"a", "an", "the", "some", "every", "each", "all", "no", "not", "any",
	"another", "other", "both", "either", "neither", "nor", "many", "much",
	"few", "more", "most", "fewer", "than", "as", "only", "same",
	// indefinite pronouns
	"nothing", "nobody", "noone", "no-one", "everything", "everybody",
	"everyone", "something", "somebody", "someone", "anything", "anybody",
	"anyone", "none",
	// personal and reflexive pronouns
	"i", "me", "my", "mine", "myself", "you", "your", "yours", "yourself",
	"he", "him", "his", "himself", "she", "her", "hers", "herself", "it",
	"its", "itself", "we", "us", "our", "ours", "ourselves", "they", "them",
	"their", "theirs", "themselves",
	// relative and interrogative pronouns
	"that", "which", "who", "whom", "whose", "what", "where", "when", "how",
	"why", "whoever", "whatever", "whichever",
	// auxiliaries and copula
	"is", "are", "be", "been", "being", "was", "were", "has", "have", "had",
	"can", "could", "must", "should", "shall", "would", "may", "might",
	"does-not", "do-not", "doesn't", "don't", "isn't", "aren't", "can't",
	"cannot",
	// prepositions
	"of", "by", "for", "to", "in", "on", "with", "from", "into", "than",
	"per", "times",
	// sentence level constructs
	"there", "true", "possible", "necessary", "recommended", "admissible",
	"provably", "also", "such", "then", "if", "and", "or", "but",
)

// additionalFunctionWords are function words that the base lexicon misses.
var additionalFunctionWords = toSet(
	"s", "at", "less", "least", "exactly", "thing", "things", "false", "does", "do", "he/she",
)

var (
	variablePattern    = regexp.MustCompile(`^[A-Z][0-9]*$`)
	contentWordPattern = regexp.MustCompile(`^[a-zA-Z$_-][a-zA-Z0-9$_-]*$`)
)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// IsFunctionWord reports whether the lowercased form of word belongs to the
// closed class of ACE function words.
func IsFunctionWord(word string) bool {
	lc := strings.ToLower(word)
	return functionWords[lc] || additionalFunctionWords[lc]
}

// IsOrdinationWord reports whether word is one of and, or, if, then.
func IsOrdinationWord(word string) bool {
	switch strings.ToLower(word) {
	case "and", "or", "if", "then":
		return true
	}
	return false
}

// IsVariable reports whether word is an ACE variable such as X or Y12.
func IsVariable(word string) bool {
	return variablePattern.MatchString(word)
}

// needsQuoting reports whether a wordform must be wrapped in backticks to be
// read back as a single word.
func needsQuoting(word string) bool {
	return !contentWordPattern.MatchString(word)
}
