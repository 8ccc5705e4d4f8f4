package lexicon

import (
	"slices"
	"strings"
)

// Wildcard is the canonical single letter placeholder. '*' is accepted as an alias.
const Wildcard = '?'

func isWildcard(c byte) bool {
	return c == Wildcard || c == '*'
}

// HasWildcard reports whether q holds at least one wildcard marker.
func HasWildcard(q string) bool {
	return strings.ContainsAny(q, "?*")
}

// canonicalKey sorts the bytes of s. Anagrams share a key.
func canonicalKey(s string) string {
	b := []byte(s)
	slices.Sort(b)
	return string(b)
}

// ExactAnagramsOf returns the words using exactly the given letters, sorted.
func (ix *Index) ExactAnagramsOf(letters string) []string {
	bucket, ok := ix.anagrams[canonicalKey(strings.ToLower(letters))]
	if !ok {
		return []string{}
	}
	return slices.Clone(bucket)
}

// MatchesOf treats pattern as a letter multiset where each wildcard absorbs one
// unknown letter. A word matches when it has the pattern's length and contains
// every fixed letter at least as many times as the pattern does.
// Without wildcards this is ExactAnagramsOf.
// Letters are compared as bytes, so a wildcard stands for one byte of a
// multi-byte UTF-8 letter rather than the whole letter.
func (ix *Index) MatchesOf(pattern string) []string {
	pattern = strings.ToLower(pattern)
	if !HasWildcard(pattern) {
		return ix.ExactAnagramsOf(pattern)
	}

	b, ok := ix.lengths[len(pattern)]
	if !ok {
		return []string{}
	}

	need := make(map[byte]int, len(pattern))
	for i := 0; i < len(pattern); i++ {
		if !isWildcard(pattern[i]) {
			need[pattern[i]]++
		}
	}
	return b.containing(need)
}

// WordsFrom answers a board query of either kind.
func (ix *Index) WordsFrom(query string) []string {
	if HasWildcard(query) {
		return ix.MatchesOf(query)
	}
	return ix.ExactAnagramsOf(query)
}
