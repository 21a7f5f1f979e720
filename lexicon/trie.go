package lexicon

import (
	"sort"
	"strings"
)

// prefixTrie indexes wordforms by their runes for autocompletion.
type prefixTrie struct {
	root *ptNode
}

type ptNode struct {
	// number of entries that use the wordform ending here, 0 for pure prefixes
	refs     int
	children map[rune]*ptNode
}

func newPrefixTrie() *prefixTrie {
	return &prefixTrie{root: &ptNode{children: map[rune]*ptNode{}}}
}

func (t *prefixTrie) add(wordform string) {
	if wordform == "" {
		return
	}
	cur := t.root
	for _, r := range wordform {
		next, ok := cur.children[r]
		if !ok {
			next = &ptNode{children: map[rune]*ptNode{}}
			cur.children[r] = next
		}
		cur = next
	}
	cur.refs++
}

// remove drops one reference to wordform and prunes branches that no longer
// lead to a wordform.
func (t *prefixTrie) remove(wordform string) {
	path := []*ptNode{t.root}
	runes := []rune(wordform)
	cur := t.root
	for _, r := range runes {
		next, ok := cur.children[r]
		if !ok {
			return
		}
		path = append(path, next)
		cur = next
	}
	if cur.refs == 0 || cur == t.root {
		return
	}
	cur.refs--

	for i := len(runes); i > 0; i-- {
		n := path[i]
		if n.refs > 0 || len(n.children) > 0 {
			break
		}
		delete(path[i-1].children, runes[i-1])
	}
}

// lookup returns the node reached by prefix. isPrefix reports whether
// longer wordforms start with prefix, exists whether prefix itself is a
// wordform.
func (t *prefixTrie) lookup(prefix string) (n *ptNode, isPrefix bool, exists bool) {
	cur := t.root
	for _, r := range prefix {
		next, ok := cur.children[r]
		if !ok {
			return nil, false, false
		}
		cur = next
	}
	return cur, len(cur.children) > 0, cur != t.root && cur.refs > 0
}

// complete extends prefix for as long as the extension is unambiguous.
func (t *prefixTrie) complete(prefix string) string {
	n, _, _ := t.lookup(prefix)
	if n == nil {
		return prefix
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for n.refs == 0 && len(n.children) == 1 {
		for r, next := range n.children {
			sb.WriteRune(r)
			n = next
		}
	}
	return sb.String()
}

// candidates returns up to limit wordforms that start with prefix, sorted
// case-insensitively. A negative limit means no limit.
func (t *prefixTrie) candidates(prefix string, limit int) []string {
	n, _, _ := t.lookup(prefix)
	if n == nil {
		return nil
	}

	var out []string
	var walk func(n *ptNode, word []rune)
	walk = func(n *ptNode, word []rune) {
		if n.refs > 0 {
			out = append(out, string(word))
		}
		for r, next := range n.children {
			walk(next, append(word, r))
		}
	}
	walk(n, []rune(prefix))

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
