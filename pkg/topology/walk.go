package topology

import (
	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// Cycle is a closed greedy walk through every node of the logical graph.
type Cycle struct {
	Start  graph.NodeID
	Order  []graph.NodeID // Visiting order, Order[0] == Start
	Edges  []graph.EdgeID // Logical edges walked, the last one closes the cycle
	Weight float64        // Total demand on Edges
}

// GreedyCycle walks the logical graph from start, always following the
// heaviest outgoing demand to a node not yet visited (lowest target index on
// ties), and finally returns to start.
//
// The logical graph must be complete; a node without an unvisited successor
// or a missing closing edge is reported as NO_PATH_FOUND.
func GreedyCycle(logical *graph.Graph, start graph.NodeID) (Cycle, error) {
	n := logical.NodeCount()
	if start < 0 || int(start) >= n {
		return Cycle{}, errors.New(errors.ErrCodeInvalidInput, "start node %d outside [0, %d)", start, n)
	}

	c := Cycle{
		Start: start,
		Order: make([]graph.NodeID, 0, n),
		Edges: make([]graph.EdgeID, 0, n),
	}
	visited := make([]bool, n)
	visited[start] = true
	c.Order = append(c.Order, start)

	cur := start
	for range n - 1 {
		id, ok := heaviestUnvisited(logical, cur, visited)
		if !ok {
			return Cycle{}, errors.New(errors.ErrCodeNoPath, "node %d has no demand towards an unvisited node", cur)
		}
		e, _ := logical.Edge(id)
		visited[e.Target] = true
		c.Order = append(c.Order, e.Target)
		c.Edges = append(c.Edges, id)
		c.Weight += e.Weight
		cur = e.Target
	}

	closing, ok := logical.FindEdge(cur, start)
	if !ok {
		return Cycle{}, errors.New(errors.ErrCodeNoPath, "no demand from %d back to start %d", cur, start)
	}
	c.Edges = append(c.Edges, closing)
	c.Weight += logical.Weight(closing)
	return c, nil
}

func heaviestUnvisited(logical *graph.Graph, v graph.NodeID, visited []bool) (graph.EdgeID, bool) {
	best := graph.EdgeID(-1)
	var bestEdge graph.Edge
	for _, id := range logical.Edges(v, graph.Outgoing) {
		e, _ := logical.Edge(id)
		if visited[e.Target] {
			continue
		}
		if best < 0 || e.Weight > bestEdge.Weight ||
			(e.Weight == bestEdge.Weight && e.Target < bestEdge.Target) {
			best, bestEdge = id, e
		}
	}
	return best, best >= 0
}
