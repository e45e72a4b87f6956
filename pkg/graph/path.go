package graph

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// ErrNoPath is returned by [ShortestPath] when the target is unreachable.
var ErrNoPath = errors.New("no path")

// Path is a route through the graph. Edges[i] connects Nodes[i] to
// Nodes[i+1]; a path from a node to itself has one node and no edges.
type Path struct {
	Nodes []NodeID
	Edges []EdgeID
	Cost  float64 // Sum of the edge weights at search time
}

// Hops returns the number of edges on the path.
func (p Path) Hops() int { return len(p.Edges) }

// ShortestPath returns the minimum total weight path from source to target
// using the current edge weights.
//
// The search is a uniform-cost best-first search: nodes leave a min-heap in
// order of distance, ties broken by lower node index, and an edge only
// replaces a node's predecessor when it strictly improves the distance. The
// result is therefore deterministic for a given graph.
//
// Returns ErrUnknownNode for out-of-range endpoints and ErrNoPath when target
// cannot be reached.
func ShortestPath(g *Graph, source, target NodeID) (Path, error) {
	if !g.hasNode(source) {
		return Path{}, fmt.Errorf("%w: source %d", ErrUnknownNode, source)
	}
	if !g.hasNode(target) {
		return Path{}, fmt.Errorf("%w: target %d", ErrUnknownNode, target)
	}
	if source == target {
		return Path{Nodes: []NodeID{source}}, nil
	}

	r := newSearch(g, source)
	r.run(target)

	if math.IsInf(r.dist[target], 1) {
		return Path{}, fmt.Errorf("%w from %d to %d", ErrNoPath, source, target)
	}
	return r.path(target), nil
}

// queued is a lazy heap entry; stale entries are skipped when popped.
type queued struct {
	node NodeID
	dist float64
}

func compareQueued(a, b any) int {
	x, y := a.(queued), b.(queued)
	if c := cmp.Compare(x.dist, y.dist); c != 0 {
		return c
	}
	return cmp.Compare(x.node, y.node)
}

// search holds the mutable state of one shortest-path run.
type search struct {
	g    *Graph
	dist []float64
	prev []EdgeID // edge used to reach each node, -1 if none
	done []bool
	pq   *binaryheap.Heap
}

func newSearch(g *Graph, source NodeID) *search {
	n := g.NodeCount()
	s := &search{
		g:    g,
		dist: make([]float64, n),
		prev: make([]EdgeID, n),
		done: make([]bool, n),
		pq:   binaryheap.NewWith(compareQueued),
	}
	for v := range n {
		s.dist[v] = math.Inf(1)
		s.prev[v] = -1
	}
	s.dist[source] = 0
	s.pq.Push(queued{node: source, dist: 0})
	return s
}

// run settles nodes until target is settled or the heap drains.
func (s *search) run(target NodeID) {
	for {
		top, ok := s.pq.Pop()
		if !ok {
			return
		}
		item := top.(queued)
		if s.done[item.node] {
			continue
		}
		s.done[item.node] = true
		if item.node == target {
			return
		}
		for _, id := range s.g.out[item.node] {
			e := s.g.edges[id]
			if s.done[e.Target] {
				continue
			}
			if d := item.dist + e.Weight; d < s.dist[e.Target] {
				s.dist[e.Target] = d
				s.prev[e.Target] = id
				s.pq.Push(queued{node: e.Target, dist: d})
			}
		}
	}
}

func (s *search) path(target NodeID) Path {
	var edges []EdgeID
	for v := target; s.prev[v] >= 0; v = s.g.edges[s.prev[v]].Source {
		edges = append(edges, s.prev[v])
	}
	slices.Reverse(edges)

	nodes := make([]NodeID, 0, len(edges)+1)
	nodes = append(nodes, s.g.edges[edges[0]].Source)
	for _, id := range edges {
		nodes = append(nodes, s.g.edges[id].Target)
	}
	return Path{Nodes: nodes, Edges: edges, Cost: s.dist[target]}
}
