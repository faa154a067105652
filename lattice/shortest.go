package lattice

import (
	"container/heap"
	"math"
)

// ShortestPath returns the minimum-token path from boundary 0 to boundary N.
//
// Distances are relaxed with a strict comparison, so among equal-cost routes
// the first one relaxed is kept. Frontier entries with equal distance pop in
// increasing boundary order. An empty lattice (N = 0) yields the path [0].
// It returns ErrUnreachable when N cannot be reached.
func ShortestPath(l *Lattice) (Path, error) {
	n := l.Len()
	r := &dijkstraRunner{
		l:    l,
		dist: make([]float64, n+1),
		prev: make([]int, n+1),
	}
	r.init()
	r.process()

	if math.IsInf(r.dist[n], 1) {
		return nil, ErrUnreachable
	}
	return r.path(n), nil
}

// dijkstraRunner holds the per-call search state.
type dijkstraRunner struct {
	l    *Lattice
	dist []float64 // best known cost from boundary 0
	prev []int     // predecessor on the best known path, -1 if none
	pq   boundaryPQ
}

func (r *dijkstraRunner) init() {
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.prev[i] = -1
	}
	r.dist[0] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, boundaryItem{boundary: 0, dist: 0})
}

func (r *dijkstraRunner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(boundaryItem)
		u, cost := item.boundary, item.dist

		// stale entry
		if r.dist[u] < cost {
			continue
		}

		for _, e := range r.l.Edges(u) {
			if r.dist[e.To] > cost+e.Cost {
				r.dist[e.To] = cost + e.Cost
				r.prev[e.To] = u
				heap.Push(&r.pq, boundaryItem{boundary: e.To, dist: r.dist[e.To]})
			}
		}
	}
}

// path walks prev backwards from target and returns the forward sequence.
func (r *dijkstraRunner) path(target int) Path {
	var p Path
	for b := target; b != -1; b = r.prev[b] {
		p = append(p, b)
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

type boundaryItem struct {
	boundary int
	dist     float64
}

// boundaryPQ is a min-heap ordered by distance, then boundary.
type boundaryPQ []boundaryItem

func (pq boundaryPQ) Len() int { return len(pq) }

func (pq boundaryPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].boundary < pq[j].boundary
}

func (pq boundaryPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *boundaryPQ) Push(x any) { *pq = append(*pq, x.(boundaryItem)) }

func (pq *boundaryPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
