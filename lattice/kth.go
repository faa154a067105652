package lattice

import (
	"container/heap"
	"errors"
	"fmt"
)

// KthPath returns the k-th distinct complete path (k ≥ 1) in the order paths
// leave the best-first frontier.
//
// Frontier entries are partial paths ranked by cost plus the heuristic
// estimate for their last boundary; ties pop in insertion order. With the
// default RemainingUnits heuristic the order is discovery order, not
// necessarily ascending cost; use WithHeuristic(Zero) for ascending cost.
//
// Errors: ErrInvalidK for k < 1, ErrUnreachable if no complete path exists,
// ErrKOutOfRange if fewer than k exist, ErrSearchLimit or a context error if
// the caller's bounds stop the search first.
func KthPath(l *Lattice, k int, opts ...Option) (Path, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	paths, err := enumerate(l, k, opts)
	if err != nil {
		return nil, err
	}
	return paths[k-1], nil
}

// KShortestPaths returns the first n complete paths in frontier order. It
// returns fewer than n paths without error when the lattice has fewer, and
// ErrUnreachable when it has none.
func KShortestPaths(l *Lattice, n int, opts ...Option) ([]Path, error) {
	if n < 1 {
		return nil, ErrInvalidK
	}
	paths, err := enumerate(l, n, opts)
	if errors.Is(err, ErrKOutOfRange) {
		return paths, nil
	}
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// enumerate pops complete paths until want of them are found. On
// ErrKOutOfRange the paths found so far are returned alongside the error.
func enumerate(l *Lattice, want int, opts []Option) ([]Path, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := newKthSearch(l, cfg.Heuristic)
	var found []Path
	expansions := 0
	for s.frontier.Len() > 0 {
		if cfg.Context != nil {
			if err := cfg.Context.Err(); err != nil {
				return nil, fmt.Errorf("lattice: k-th search cancelled after %d expansions: %w", expansions, err)
			}
		}
		if cfg.MaxExpansions > 0 && expansions >= cfg.MaxExpansions {
			return nil, fmt.Errorf("%w: %d partial paths popped, %d of %d paths found",
				ErrSearchLimit, expansions, len(found), want)
		}

		entry := heap.Pop(&s.frontier).(frontierEntry)
		expansions++

		if s.arena[entry.node].boundary == s.target {
			found = append(found, s.path(entry.node))
			if len(found) == want {
				return found, nil
			}
			continue
		}
		s.expand(entry)
	}

	if len(found) == 0 {
		return nil, ErrUnreachable
	}
	return found, ErrKOutOfRange
}

// pathNode is one partial path: its parent's partial path extended by boundary.
// Nodes live in an arena and point to their parent by index. A node is
// created once per (popped parent, outgoing edge) and edges from a boundary
// have distinct ends, so every boundary sequence appears at most once and no
// duplicate check is needed.
type pathNode struct {
	parent   int
	boundary int
}

type kthSearch struct {
	l         *Lattice
	h         Heuristic
	target    int
	arena     []pathNode
	frontier  pathPQ
	sequencer int
}

func newKthSearch(l *Lattice, h Heuristic) *kthSearch {
	s := &kthSearch{
		l:      l,
		h:      h,
		target: l.Len(),
	}
	root := s.node(-1, 0)
	heap.Init(&s.frontier)
	s.push(root, 0)
	return s
}

// node appends the partial path (parent, boundary) to the arena and returns
// its index.
func (s *kthSearch) node(parent, boundary int) int {
	s.arena = append(s.arena, pathNode{parent: parent, boundary: boundary})
	return len(s.arena) - 1
}

func (s *kthSearch) push(node int, cost float64) {
	b := s.arena[node].boundary
	heap.Push(&s.frontier, frontierEntry{
		node:      node,
		cost:      cost,
		estimated: cost + s.h(b, s.target),
		seq:       s.sequencer,
	})
	s.sequencer++
}

func (s *kthSearch) expand(entry frontierEntry) {
	from := s.arena[entry.node].boundary
	for _, e := range s.l.Edges(from) {
		child := s.node(entry.node, e.To)
		s.push(child, entry.cost+e.Cost)
	}
}

// path rebuilds the boundary sequence of an arena node.
func (s *kthSearch) path(node int) Path {
	var p Path
	for i := node; i != -1; i = s.arena[i].parent {
		p = append(p, s.arena[i].boundary)
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

type frontierEntry struct {
	node      int
	cost      float64
	estimated float64
	seq       int
}

// pathPQ is a min-heap ordered by estimated total cost, then insertion order.
type pathPQ []frontierEntry

func (pq pathPQ) Len() int { return len(pq) }

func (pq pathPQ) Less(i, j int) bool {
	if pq[i].estimated != pq[j].estimated {
		return pq[i].estimated < pq[j].estimated
	}
	return pq[i].seq < pq[j].seq
}

func (pq pathPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pathPQ) Push(x any) { *pq = append(*pq, x.(frontierEntry)) }

func (pq *pathPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
