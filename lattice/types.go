package lattice

import (
	"context"
	"errors"
)

// Sentinel errors returned by the searches.
var (
	// ErrUnreachable indicates that no path joins boundary 0 to boundary N,
	// usually because some rune is neither a word nor punctuation.
	ErrUnreachable = errors.New("lattice: target boundary unreachable")

	// ErrKOutOfRange indicates that the target is reachable but fewer than k
	// distinct complete paths exist.
	ErrKOutOfRange = errors.New("lattice: fewer than k distinct paths")

	// ErrInvalidK indicates that k (or n) was smaller than 1.
	ErrInvalidK = errors.New("lattice: k must be at least 1")

	// ErrSearchLimit indicates that the expansion limit was hit before the
	// requested completion was found.
	ErrSearchLimit = errors.New("lattice: expansion limit reached")
)

// Heuristic estimates the remaining cost from boundary b to boundary n.
type Heuristic func(b, n int) float64

// RemainingUnits estimates the remaining cost as the number of runes left.
// A single long word covers many runes at cost 1, so the estimate may exceed
// the true remaining cost; paths then leave the frontier in discovery order
// rather than strictly ascending cost.
func RemainingUnits(b, n int) float64 { return float64(n - b) }

// Zero makes the enumeration order paths by ascending true cost.
func Zero(_, _ int) float64 { return 0 }

// HeuristicByName maps a configuration name to a heuristic.
// "units" (or "") selects RemainingUnits, "zero" selects Zero.
func HeuristicByName(name string) (Heuristic, bool) {
	switch name {
	case "", "units":
		return RemainingUnits, true
	case "zero", "cost":
		return Zero, true
	default:
		return nil, false
	}
}

// Options configures the k-th path enumeration.
type Options struct {
	Heuristic     Heuristic       // remaining cost estimate; RemainingUnits by default
	Context       context.Context // checked between frontier pops; nil means never cancelled
	MaxExpansions int             // 0 means unlimited
}

// Option is a functional option for KthPath and KShortestPaths.
type Option func(*Options)

// WithHeuristic overrides the remaining cost estimate. A nil h is ignored.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithContext makes the search stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

// WithMaxExpansions bounds the number of partial paths popped from the
// frontier. Non-positive values mean unlimited.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxExpansions = n
	}
}

// DefaultOptions returns the discovery-order configuration.
func DefaultOptions() Options {
	return Options{Heuristic: RemainingUnits}
}
