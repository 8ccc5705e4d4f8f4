package lexicon

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// lengthBucket holds every word of one length, plus letter count bitsets over them.
// counts[c][k] has bit i set when words[i] contains letter c more than k times.
type lengthBucket struct {
	words  []string
	counts map[byte][]*bitset.BitSet
}

func (b *lengthBucket) seal() {
	slices.Sort(b.words)
	n := uint(len(b.words))
	b.counts = make(map[byte][]*bitset.BitSet)

	for i, w := range b.words {
		for c, k := range letterCounts(w) {
			sets := b.counts[c]
			for len(sets) < k {
				sets = append(sets, bitset.New(n))
			}
			for j := 0; j < k; j++ {
				sets[j].Set(uint(i))
			}
			b.counts[c] = sets
		}
	}
}

// containing returns the words holding at least need[c] copies of each letter c.
func (b *lengthBucket) containing(need map[byte]int) []string {
	var acc *bitset.BitSet
	for c, k := range need {
		sets := b.counts[c]
		if len(sets) < k {
			return []string{}
		}
		if acc == nil {
			acc = sets[k-1].Clone()
			continue
		}
		acc.InPlaceIntersection(sets[k-1])
	}

	if acc == nil {
		return slices.Clone(b.words)
	}

	out := make([]string, 0, acc.Count())
	for i, ok := acc.NextSet(0); ok; i, ok = acc.NextSet(i + 1) {
		out = append(out, b.words[i])
	}
	return out
}

func letterCounts(s string) map[byte]int {
	counts := make(map[byte]int, len(s))
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}
	return counts
}
