// Package lexicon is the word index behind the solver: it owns the word set, the anagram
// buckets keyed by sorted letters, the prefix trie and the per-length letter count bitsets.
package lexicon

// Finder is the read-only query surface of a built index.
type Finder interface {
	// ExactAnagramsOf returns every word made of exactly the given letters
	ExactAnagramsOf(letters string) []string

	// MatchesOf resolves a pattern where '?' or '*' stand for any single letter
	MatchesOf(pattern string) []string

	// WordsFrom dispatches to ExactAnagramsOf or MatchesOf depending on wildcards
	WordsFrom(query string) []string

	// HasPrefix reports whether some word starts with s (len(s) >= 2)
	HasPrefix(s string) bool

	// IsWord reports exact dictionary membership
	IsWord(s string) bool

	// WithPrefix lists words starting with prefix, up to limit (0 for all)
	WithPrefix(prefix string, limit int) []string

	// Stats returns counters about the built index
	Stats() Stats
}

// Source yields raw word-list lines. Build stops at the first error returned by Each.
type Source interface {
	Each(fn func(line string)) error
}
