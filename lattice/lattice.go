// Package lattice builds the segmentation lattice of a sentence and searches it.
//
// A sentence of N runes has N+1 boundaries (0..N). Every span runes[from:to]
// that the lexicon accepts, as a word or as a punctuation mark, becomes an
// edge from → to with cost 1. A path from boundary 0 to boundary N is a
// segmentation; its cost is its token count.
//
// Build enumerates every (start, end) pair and queries the lexicon for each,
// so it costs O(N²) substring extractions and lookups. A lexicon that
// implements SpanLimiter caps span length at L runes, bringing this down to
// O(N·L). Inputs are sentences, never whole documents; callers bound input
// length and split documents first.
//
// Searches:
//
//   - ShortestPath: Dijkstra with lazy deletion, earliest relaxation wins ties.
//   - KthPath / KShortestPaths: best-first enumeration of distinct complete
//     paths ordered by the order in which they leave the frontier.
package lattice

// Lexicon answers the two admissibility questions the builder asks about a span.
// Implementations must be pure and must not change while a lattice is built.
type Lexicon interface {
	ContainsWord(word string) bool
	IsPunctuation(word string) bool
}

// SpanLimiter is implemented by lexicons that know the length in runes of
// their longest admissible span. Build does not query longer spans.
type SpanLimiter interface {
	MaxSpan() int
}

// EdgeCost is the cost of every admissible span.
const EdgeCost = 1.0

// Edge is an admissible span runes[From:To].
type Edge struct {
	From int
	To   int
	Cost float64
}

// Path is an ordered boundary sequence starting at 0 and ending at N.
type Path []int

// Tokens returns the number of edges on the path.
func (p Path) Tokens() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Lattice is the DAG of boundaries and admissible spans for one sentence.
// It is immutable once built.
type Lattice struct {
	runes []rune
	adj   [][]Edge
	edges int
}

// Build constructs the lattice of runes against lex. Outgoing edges of each
// boundary are stored in increasing order of their end boundary.
func Build(runes []rune, lex Lexicon) *Lattice {
	n := len(runes)
	l := &Lattice{
		runes: runes,
		adj:   make([][]Edge, n+1),
	}
	limit := n
	if sl, ok := lex.(SpanLimiter); ok && sl.MaxSpan() > 0 {
		limit = sl.MaxSpan()
	}
	for start := 0; start < n; start++ {
		for end := start + 1; end <= min(n, start+limit); end++ {
			word := string(runes[start:end])
			if lex.ContainsWord(word) || lex.IsPunctuation(word) {
				l.adj[start] = append(l.adj[start], Edge{From: start, To: end, Cost: EdgeCost})
				l.edges++
			}
		}
	}
	return l
}

// BuildString decodes s into runes and builds its lattice.
func BuildString(s string, lex Lexicon) *Lattice {
	return Build([]rune(s), lex)
}

// Len returns N, the number of runes.
func (l *Lattice) Len() int { return len(l.runes) }

// EdgeCount returns the number of admissible spans.
func (l *Lattice) EdgeCount() int { return l.edges }

// Edges returns the outgoing edges of boundary from, ordered by end boundary.
// The returned slice must not be modified.
func (l *Lattice) Edges(from int) []Edge {
	if from < 0 || from >= len(l.adj) {
		return nil
	}
	return l.adj[from]
}

// HasEdge reports whether the span runes[from:to] is admissible.
func (l *Lattice) HasEdge(from, to int) bool {
	for _, e := range l.Edges(from) {
		if e.To == to {
			return true
		}
		if e.To > to {
			break
		}
	}
	return false
}

// Span returns the text between two boundaries.
func (l *Lattice) Span(from, to int) string {
	return string(l.runes[from:to])
}

// Segments converts a path into its substrings.
func (l *Lattice) Segments(p Path) []string {
	out := make([]string, 0, p.Tokens())
	for i := 0; i+1 < len(p); i++ {
		out = append(out, l.Span(p[i], p[i+1]))
	}
	return out
}

// Valid reports whether p starts at 0, ends at N and follows lattice edges.
func (l *Lattice) Valid(p Path) bool {
	if len(p) == 0 || p[0] != 0 || p[len(p)-1] != l.Len() {
		return false
	}
	for i := 0; i+1 < len(p); i++ {
		if !l.HasEdge(p[i], p[i+1]) {
			return false
		}
	}
	return true
}

// Reachable reports whether boundary N can be reached from boundary 0.
// Edges only go forward, so one sweep in boundary order suffices.
func (l *Lattice) Reachable() bool {
	n := l.Len()
	seen := make([]bool, n+1)
	seen[0] = true
	for b := 0; b < n; b++ {
		if !seen[b] {
			continue
		}
		for _, e := range l.adj[b] {
			seen[e.To] = true
		}
	}
	return seen[n]
}

// FirstGap returns the smallest boundary that is reachable from 0 but has no
// outgoing edge, or -1 when every reachable boundary below N can advance.
// It locates the rune that makes a sentence unsegmentable.
func (l *Lattice) FirstGap() int {
	n := l.Len()
	seen := make([]bool, n+1)
	seen[0] = true
	for b := 0; b < n; b++ {
		if !seen[b] {
			continue
		}
		if len(l.adj[b]) == 0 {
			return b
		}
		for _, e := range l.adj[b] {
			seen[e.To] = true
		}
	}
	return -1
}
