package graph

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrUnknownNode is returned when a node index is outside [0, NodeCount).
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned when an edge handle was never issued or the
	// edge has been removed.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrInvalidWeight is returned when a weight is negative or NaN. Shortest
	// path searches rely on weights never being negative.
	ErrInvalidWeight = errors.New("weight must be a non-negative number")
)

// NodeID is the dense index of a node.
type NodeID int

// EdgeID is the stable handle of an edge in the arena.
type EdgeID int

// Direction selects which adjacency list of a node is queried.
type Direction int

const (
	// Outgoing selects edges whose source is the node.
	Outgoing Direction = iota
	// Incoming selects edges whose target is the node.
	Incoming
)

// String returns "outgoing" or "incoming".
func (d Direction) String() string {
	if d == Incoming {
		return "incoming"
	}
	return "outgoing"
}

// Edge is a directed, weighted edge.
type Edge struct {
	Source NodeID
	Target NodeID
	Weight float64
}

// Graph is a directed graph with float64 edge weights.
//
// The zero value is an empty graph with no nodes. Use [New] to create a graph
// with a fixed number of nodes.
type Graph struct {
	edges   []Edge
	removed []bool
	out     [][]EdgeID // node -> handles of edges leaving it, ascending
	in      [][]EdgeID // node -> handles of edges entering it, ascending
	live    int
}

// New creates a graph with n nodes and no edges.
func New(n int) *Graph {
	return &Graph{
		out: make([][]EdgeID, n),
		in:  make([][]EdgeID, n),
	}
}

// AddNode appends a node and returns its index.
func (g *Graph) AddNode() NodeID {
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return NodeID(len(g.out) - 1)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.out) }

// EdgeCount returns the number of live (not removed) edges.
func (g *Graph) EdgeCount() int { return g.live }

// AddEdge inserts a directed edge and returns its handle.
//
// AddEdge does not reject parallel edges or self-loops; avoiding duplicates
// is the caller's responsibility.
func (g *Graph) AddEdge(source, target NodeID, weight float64) (EdgeID, error) {
	if !g.hasNode(source) {
		return -1, fmt.Errorf("%w: source %d", ErrUnknownNode, source)
	}
	if !g.hasNode(target) {
		return -1, fmt.Errorf("%w: target %d", ErrUnknownNode, target)
	}
	if !validWeight(weight) {
		return -1, fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{Source: source, Target: target, Weight: weight})
	g.removed = append(g.removed, false)
	g.out[source] = append(g.out[source], id)
	g.in[target] = append(g.in[target], id)
	g.live++
	return id, nil
}

// RemoveEdge removes the edge with the given handle. The handle is never
// reused.
func (g *Graph) RemoveEdge(id EdgeID) error {
	if !g.hasEdge(id) {
		return fmt.Errorf("%w: %d", ErrUnknownEdge, id)
	}
	e := g.edges[id]
	g.out[e.Source] = slices.DeleteFunc(g.out[e.Source], func(x EdgeID) bool { return x == id })
	g.in[e.Target] = slices.DeleteFunc(g.in[e.Target], func(x EdgeID) bool { return x == id })
	g.removed[id] = true
	g.live--
	return nil
}

// Edge returns the edge with the given handle and true, or the zero edge and
// false if the handle is unknown or removed.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	if !g.hasEdge(id) {
		return Edge{}, false
	}
	return g.edges[id], true
}

// Weight returns the weight of the edge, or 0 if the handle is unknown.
func (g *Graph) Weight(id EdgeID) float64 {
	if !g.hasEdge(id) {
		return 0
	}
	return g.edges[id].Weight
}

// SetWeight replaces the weight of an edge.
func (g *Graph) SetWeight(id EdgeID, weight float64) error {
	if !g.hasEdge(id) {
		return fmt.Errorf("%w: %d", ErrUnknownEdge, id)
	}
	if !validWeight(weight) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	g.edges[id].Weight = weight
	return nil
}

// AddWeight adds delta to the weight of an edge.
func (g *Graph) AddWeight(id EdgeID, delta float64) error {
	if !g.hasEdge(id) {
		return fmt.Errorf("%w: %d", ErrUnknownEdge, id)
	}
	return g.SetWeight(id, g.edges[id].Weight+delta)
}

// Edges returns the handles of the edges leaving (Outgoing) or entering
// (Incoming) node v, in ascending handle order. The returned slice is a
// read-only view and must not be modified. Returns nil for unknown nodes.
func (g *Graph) Edges(v NodeID, dir Direction) []EdgeID {
	if !g.hasNode(v) {
		return nil
	}
	if dir == Incoming {
		return g.in[v]
	}
	return g.out[v]
}

// Degree returns the number of edges leaving or entering v.
func (g *Graph) Degree(v NodeID, dir Direction) int {
	return len(g.Edges(v, dir))
}

// FindEdge returns the lowest handle of an edge from source to target.
func (g *Graph) FindEdge(source, target NodeID) (EdgeID, bool) {
	for _, id := range g.Edges(source, Outgoing) {
		if g.edges[id].Target == target {
			return id, true
		}
	}
	return -1, false
}

// Contains reports whether an edge from source to target exists.
func (g *Graph) Contains(source, target NodeID) bool {
	_, ok := g.FindEdge(source, target)
	return ok
}

// EdgeIDs returns the handles of all live edges in ascending order.
func (g *Graph) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, 0, g.live)
	for i := range g.edges {
		if !g.removed[i] {
			ids = append(ids, EdgeID(i))
		}
	}
	return ids
}

// WeightSum returns the total weight of the edges leaving or entering v.
func (g *Graph) WeightSum(v NodeID, dir Direction) float64 {
	var sum float64
	for _, id := range g.Edges(v, dir) {
		sum += g.edges[id].Weight
	}
	return sum
}

// TotalWeight returns the sum of all live edge weights.
func (g *Graph) TotalWeight() float64 {
	var sum float64
	for i, e := range g.edges {
		if !g.removed[i] {
			sum += e.Weight
		}
	}
	return sum
}

// MaxEdge returns the handle of the heaviest live edge. Ties go to the lowest
// handle. Returns false for a graph without edges.
func (g *Graph) MaxEdge() (EdgeID, bool) {
	best := EdgeID(-1)
	for i, e := range g.edges {
		if g.removed[i] {
			continue
		}
		if best < 0 || e.Weight > g.edges[best].Weight {
			best = EdgeID(i)
		}
	}
	return best, best >= 0
}

// ResetWeights sets every live edge weight to w.
func (g *Graph) ResetWeights(w float64) error {
	if !validWeight(w) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}
	for i := range g.edges {
		if !g.removed[i] {
			g.edges[i].Weight = w
		}
	}
	return nil
}

// Clone returns a deep copy. Edge handles are preserved, so a handle valid
// in g refers to the same edge in the clone.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		edges:   slices.Clone(g.edges),
		removed: slices.Clone(g.removed),
		out:     make([][]EdgeID, len(g.out)),
		in:      make([][]EdgeID, len(g.in)),
		live:    g.live,
	}
	for v := range g.out {
		c.out[v] = slices.Clone(g.out[v])
		c.in[v] = slices.Clone(g.in[v])
	}
	return c
}

func (g *Graph) hasNode(v NodeID) bool {
	return v >= 0 && int(v) < len(g.out)
}

func (g *Graph) hasEdge(id EdgeID) bool {
	return id >= 0 && int(id) < len(g.edges) && !g.removed[id]
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 1)
}
