package lexicon

import (
	"path"

	"github.com/samber/lo"
)

// permutationMatches is the literal matching rule: every ordering of the pattern is
// glob matched against every word of the same length, and the hits are deduplicated.
func permutationMatches(words []string, pattern string) []string {
	pattern = normalizeGlob(pattern)
	var hits []string
	permute([]byte(pattern), func(p []byte) {
		glob := string(p)
		for _, w := range words {
			if len(w) != len(glob) {
				continue
			}
			if ok, _ := path.Match(glob, w); ok {
				hits = append(hits, w)
			}
		}
	})
	return lo.Uniq(hits)
}

func normalizeGlob(p string) string {
	b := []byte(p)
	for i := range b {
		if b[i] == '*' {
			b[i] = Wildcard
		}
	}
	return string(b)
}

// permute calls fn with every ordering of b (Heap's algorithm). b is reused between calls.
func permute(b []byte, fn func([]byte)) {
	c := make([]int, len(b))
	fn(b)
	for i := 0; i < len(b); {
		if c[i] < i {
			if i%2 == 0 {
				b[0], b[i] = b[i], b[0]
			} else {
				b[c[i]], b[i] = b[i], b[c[i]]
			}
			fn(b)
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}
