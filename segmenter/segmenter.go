package segmenter

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/teatak/wordlattice/lattice"
)

// Segmenter handles the text segmentation.
// It is safe for concurrent use as long as its Lexicon is only read.
type Segmenter struct {
	Lex  lattice.Lexicon
	opts Options

	cache  *lru.Cache[string, []string]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewSegmenter creates a new segmenter over the given lexicon.
func NewSegmenter(lex lattice.Lexicon, opts ...Option) *Segmenter {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Segmenter{Lex: lex, opts: o}
	if o.CacheSize > 0 {
		// lru.New only fails for a non-positive size.
		s.cache, _ = lru.New[string, []string](o.CacheSize)
	}
	return s
}

// Options returns the options the segmenter was built with.
func (s *Segmenter) Options() Options { return s.opts }

// Cut returns the segmentation with the fewest tokens.
//
// With KeepAlphaNum, runs of ASCII letters and digits are emitted whole and
// the text between them is segmented piece by piece.
func (s *Segmenter) Cut(text string) ([]string, error) {
	text = s.prepare(text)
	if s.cache != nil {
		if tokens, ok := s.cache.Get(text); ok {
			s.hits.Add(1)
			return clone(tokens), nil
		}
		s.misses.Add(1)
	}

	var result []string
	if s.opts.KeepAlphaNum {
		offset := 0
		for _, block := range splitTextToBlocks([]rune(text)) {
			if block.isPureAlphaNum {
				result = append(result, string(block.runes))
				offset += len(block.runes)
				continue
			}
			tokens, err := s.cutShortest(block.runes, offset)
			if err != nil {
				return nil, err
			}
			result = append(result, tokens...)
			offset += len(block.runes)
		}
	} else {
		tokens, err := s.cutShortest([]rune(text), 0)
		if err != nil {
			return nil, err
		}
		result = tokens
	}
	if result == nil {
		result = []string{}
	}

	if s.cache != nil {
		s.cache.Add(text, clone(result))
	}
	return result, nil
}

// CutKth returns the k-th alternative segmentation (k ≥ 1) in search order.
// ctx is checked between frontier pops.
func (s *Segmenter) CutKth(ctx context.Context, text string, k int) ([]string, error) {
	l := lattice.Build([]rune(s.prepare(text)), s.Lex)
	p, err := lattice.KthPath(l, k, s.searchOptions(ctx)...)
	if err != nil {
		return nil, describe(l, err, 0)
	}
	return l.Segments(p), nil
}

// CutTopK returns up to n alternative segmentations in search order.
func (s *Segmenter) CutTopK(ctx context.Context, text string, n int) ([][]string, error) {
	l := lattice.Build([]rune(s.prepare(text)), s.Lex)
	paths, err := lattice.KShortestPaths(l, n, s.searchOptions(ctx)...)
	if err != nil {
		return nil, describe(l, err, 0)
	}
	out := make([][]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, l.Segments(p))
	}
	return out, nil
}

// CutSearch segments the text like Cut and adds, before each token longer
// than two runes, the dictionary words it contains. Typical usage: search
// engine indexing.
func (s *Segmenter) CutSearch(text string) ([]string, error) {
	tokens, err := s.Cut(text)
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, word := range tokens {
		s.addSubWords(word, &result)
		result = append(result, word)
	}
	return result, nil
}

// CacheStats returns the number of cache hits and misses of Cut.
func (s *Segmenter) CacheStats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// cutShortest segments one block; offset is the block's rune position in
// the whole text and only shifts error positions.
func (s *Segmenter) cutShortest(runes []rune, offset int) ([]string, error) {
	l := lattice.Build(runes, s.Lex)
	p, err := lattice.ShortestPath(l)
	if err != nil {
		return nil, describe(l, err, offset)
	}
	return l.Segments(p), nil
}

func (s *Segmenter) addSubWords(word string, result *[]string) {
	runes := []rune(word)
	if len(runes) <= 2 {
		return
	}

	// 英文或数字单词不进行子词切分 (如 PKU 不要切出 P/K/U)
	isPure := true
	for _, r := range runes {
		if !isAlphaNum(r) {
			isPure = false
			break
		}
	}
	if isPure || s.Lex.IsPunctuation(word) {
		return
	}

	for i := 0; i < len(runes); i++ {
		for j := i + 1; j <= len(runes); j++ {
			subWord := string(runes[i:j])
			if subWord != word && s.Lex.ContainsWord(subWord) {
				*result = append(*result, subWord)
			}
		}
	}
}

func (s *Segmenter) prepare(text string) string {
	if s.opts.Normalize {
		return norm.NFC.String(text)
	}
	return text
}

func (s *Segmenter) searchOptions(ctx context.Context) []lattice.Option {
	opts := []lattice.Option{
		lattice.WithHeuristic(s.opts.Heuristic),
		lattice.WithMaxExpansions(s.opts.MaxExpansions),
	}
	if ctx != nil {
		opts = append(opts, lattice.WithContext(ctx))
	}
	return opts
}

// describe adds the position of the first unsegmentable rune to ErrUnreachable.
// offset is added to positions within l.
func describe(l *lattice.Lattice, err error, offset int) error {
	if !errors.Is(err, lattice.ErrUnreachable) {
		return err
	}
	gap := l.FirstGap()
	if gap < 0 {
		return err
	}
	return fmt.Errorf("%w: no word or punctuation starts at rune %d (%q)", err, offset+gap, l.Span(gap, gap+1))
}

func clone(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}
