package lexicon

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrSourceUnavailable is returned by Build when the word list cannot be opened or read.
var ErrSourceUnavailable = errors.New("word list source unavailable")

// minPrefixLen is the shortest string HasPrefix answers for.
const minPrefixLen = 2

// reportEvery is how many lines pass between two progress events.
const reportEvery = 10000

// Progress describes how far a build has gone.
type Progress struct {
	Lines int  // raw lines read so far
	Kept  int  // lines that passed the length filter
	Done  bool // set on the final event only
}

// Reporter receives progress events during Build.
type Reporter func(Progress)

// Options configures Build.
type Options struct {
	// MinLength discards shorter words. Values below 1 are treated as 1.
	MinLength int
	// Quiet drops every progress event, even if Reporter is set.
	Quiet bool
	// Reporter is optional.
	Reporter Reporter
}

// Stats holds counters about a built index.
type Stats struct {
	Words     int
	Buckets   int
	MinLength int
	Lengths   []int
}

// Index is an immutable word index. It is safe for concurrent use once built.
type Index struct {
	minLength int
	words     map[string]struct{}
	anagrams  map[string][]string
	prefixes  *patricia.Trie
	lengths   map[int]*lengthBucket
}

var _ Finder = (*Index)(nil)

// Build reads every line of src and indexes the ones at least opts.MinLength long.
// Lines are trimmed and lowercased; nothing else is validated.
func Build(src Source, opts Options) (*Index, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no source", ErrSourceUnavailable)
	}
	minLength := max(opts.MinLength, 1)
	report := opts.Reporter
	if opts.Quiet {
		report = nil
	}

	ix := &Index{
		minLength: minLength,
		words:     make(map[string]struct{}),
		anagrams:  make(map[string][]string),
		prefixes:  patricia.NewTrie(),
		lengths:   make(map[int]*lengthBucket),
	}

	var p Progress
	err := src.Each(func(line string) {
		p.Lines++
		if report != nil && p.Lines%reportEvery == 0 {
			report(p)
		}
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" || len(word) < minLength {
			return
		}
		p.Kept++
		ix.add(word)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	ix.seal()

	if report != nil {
		p.Done = true
		report(p)
	}
	return ix, nil
}

// FromWords builds an index from an in-memory list.
func FromWords(words []string, opts Options) *Index {
	ix, _ := Build(sliceSource(words), opts)
	return ix
}

type sliceSource []string

func (s sliceSource) Each(fn func(string)) error {
	for _, line := range s {
		fn(line)
	}
	return nil
}

// add inserts a normalized word. Duplicates are ignored.
func (ix *Index) add(word string) {
	if _, seen := ix.words[word]; seen {
		return
	}
	ix.words[word] = struct{}{}

	key := canonicalKey(word)
	ix.anagrams[key] = append(ix.anagrams[key], word)

	ix.prefixes.Insert(patricia.Prefix(word), len(word))

	b, ok := ix.lengths[len(word)]
	if !ok {
		b = &lengthBucket{}
		ix.lengths[len(word)] = b
	}
	b.words = append(b.words, word)
}

// seal sorts the buckets and builds the letter count bitsets. No writes happen after it.
// The trie sorts child lists in place while walking, so one full walk here leaves
// them sorted and later walks from concurrent readers only compare.
func (ix *Index) seal() {
	_ = ix.prefixes.Visit(func(patricia.Prefix, patricia.Item) error { return nil })
	for _, bucket := range ix.anagrams {
		slices.Sort(bucket)
	}
	for _, b := range ix.lengths {
		b.seal()
	}
}

// IsWord reports whether s is a dictionary word.
func (ix *Index) IsWord(s string) bool {
	_, ok := ix.words[strings.ToLower(s)]
	return ok
}

// HasPrefix reports whether at least one word starts with s.
// Strings shorter than two letters are never considered prefixes.
func (ix *Index) HasPrefix(s string) bool {
	if len(s) < minPrefixLen {
		return false
	}
	return ix.prefixes.MatchSubtree(patricia.Prefix(strings.ToLower(s)))
}

// WithPrefix lists words starting with prefix in ascending order, capped at limit when limit > 0.
func (ix *Index) WithPrefix(prefix string, limit int) []string {
	out := []string{}
	if len(prefix) < minPrefixLen {
		return out
	}
	err := ix.prefixes.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	if err != nil {
		return []string{}
	}
	slices.Sort(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len returns the number of distinct words.
func (ix *Index) Len() int {
	return len(ix.words)
}

// Words returns every indexed word in ascending order.
func (ix *Index) Words() []string {
	words := lo.Keys(ix.words)
	slices.Sort(words)
	return words
}

// Stats returns counters about the index.
func (ix *Index) Stats() Stats {
	lengths := lo.Keys(ix.lengths)
	slices.Sort(lengths)
	return Stats{
		Words:     len(ix.words),
		Buckets:   len(ix.anagrams),
		MinLength: ix.minLength,
		Lengths:   lengths,
	}
}
