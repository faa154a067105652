package segmenter

import (
	"fmt"

	"github.com/teatak/wordlattice/config"
	"github.com/teatak/wordlattice/lattice"
	"github.com/teatak/wordlattice/lexicon"
)

// Load builds the dictionary described by cfg (SQLite store first, then the
// text dictionaries in order) and a segmenter over it.
func Load(cfg config.Config) (*Segmenter, *lexicon.Dictionary, error) {
	h, ok := lattice.HeuristicByName(cfg.Heuristic)
	if !ok {
		return nil, nil, fmt.Errorf("unknown heuristic %q", cfg.Heuristic)
	}
	dict, err := lexicon.LoadSources(cfg.Database, cfg.Dictionaries...)
	if err != nil {
		return nil, nil, err
	}
	dict.AddPunctuation(cfg.Punctuation...)

	seg := NewSegmenter(dict,
		WithHeuristic(h),
		WithMaxExpansions(cfg.MaxExpansions),
		WithCache(cfg.CacheSize),
		WithNormalize(cfg.Normalize),
		WithKeepAlphaNum(cfg.KeepAlphaNum),
	)
	return seg, dict, nil
}
