// Package graph provides the weighted directed graph used for both the
// logical demand matrix and the physical topology.
//
// # Overview
//
// Nodes are dense integer indices in [0, N). Edges live in an arena and are
// addressed by stable [EdgeID] handles: removing an edge tombstones its slot
// instead of shifting later edges, so handles taken before a removal (or
// before a [Graph.Clone]) stay valid. Each node keeps two adjacency lists of
// edge handles, one per [Direction].
//
//	g := graph.New(3)
//	e, _ := g.AddEdge(0, 1, 0.5)
//	g.AddEdge(1, 2, 0.25)
//	g.Edges(1, graph.Outgoing) // handles of edges leaving node 1
//	g.SetWeight(e, 0.75)
//
// # Shortest Paths
//
// [ShortestPath] is a uniform-cost search over current edge weights. It
// returns both the node sequence and the concrete edge handles, so callers
// charging load along a path never have to resolve parallel edges by
// endpoint lookup.
//
// # Sorting
//
// [SortByWeight] orders edge handles by descending weight with ties broken
// by ascending handle. Large inputs are sorted in parallel chunks and merged.
//
// # Serialization
//
// [Document] is the JSON form used by the result cache and by .json output:
// node count plus the live edges in handle order. [WriteGraph] encodes it.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Concurrent readers are fine
// as long as no goroutine writes.
package graph
