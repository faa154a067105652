package segmenter

import "github.com/teatak/wordlattice/lattice"

// Options configures a Segmenter.
type Options struct {
	Heuristic     lattice.Heuristic // ranking of alternatives; RemainingUnits by default
	MaxExpansions int               // bound on k-th search work, 0 = unlimited
	CacheSize     int               // Cut result cache entries, 0 = no cache
	Normalize     bool              // apply Unicode NFC before decoding runes
	KeepAlphaNum  bool              // emit ASCII letter/digit runs whole
}

// Option is a functional option for NewSegmenter.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Heuristic: lattice.RemainingUnits,
		Normalize: true,
	}
}

// WithHeuristic selects how alternative segmentations are ranked.
func WithHeuristic(h lattice.Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithMaxExpansions bounds the partial paths a k-th search may pop.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// WithCache enables an LRU cache of Cut results with the given capacity.
func WithCache(size int) Option {
	return func(o *Options) { o.CacheSize = size }
}

// WithNormalize toggles NFC normalization.
func WithNormalize(on bool) Option {
	return func(o *Options) { o.Normalize = on }
}

// WithKeepAlphaNum toggles whole ASCII letter/digit runs.
func WithKeepAlphaNum(on bool) Option {
	return func(o *Options) { o.KeepAlphaNum = on }
}
