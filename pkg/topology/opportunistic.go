package topology

import (
	"context"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// Opportunistic builds a greedy heavy Hamiltonian cycle and augments it with
// direct links for the heaviest remaining demands.
type Opportunistic struct {
	// Delta is the number of transmit and receive ports per node.
	Delta int
}

// Mode returns ModeOpportunistic.
func (Opportunistic) Mode() Mode { return ModeOpportunistic }

// Build constructs the physical topology.
//
// The cycle uses one port in each direction on every node. When Delta > 1,
// the remaining demands are visited once in descending weight order and each
// becomes a link if its endpoints are not linked yet and both have a spare
// port. There is no backtracking.
func (b Opportunistic) Build(ctx context.Context, logical *graph.Graph) (*Topology, error) {
	if b.Delta < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "delta must be at least 1, got %d", b.Delta)
	}
	n := logical.NodeCount()
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "need at least 2 nodes, got %d", n)
	}

	start, err := SelectStart(ctx, logical)
	if err != nil {
		return nil, err
	}
	cycle, err := GreedyCycle(logical, start.Node)
	if err != nil {
		return nil, err
	}

	t := &Topology{
		Mode:     ModeOpportunistic,
		Physical: graph.New(n),
		Demand:   logical,
		Residual: logical.Clone(),
		Consumed: make([]graph.Edge, 0, n),
		Start:    start.Node,
		Cycle:    cycle.Order,
		Degrees:  newDegrees(n),
	}

	for _, id := range cycle.Edges {
		e, _ := logical.Edge(id)
		if err := t.link(e.Source, e.Target); err != nil {
			return nil, err
		}
		if err := t.Residual.RemoveEdge(id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "consume demand %d -> %d", e.Source, e.Target)
		}
		t.Consumed = append(t.Consumed, e)
	}

	if b.Delta == 1 {
		return t, nil
	}

	sorted, err := graph.SortByWeight(ctx, t.Residual, t.Residual.EdgeIDs())
	if err != nil {
		return nil, err
	}
	for _, id := range sorted {
		e, _ := t.Residual.Edge(id)
		if !t.Degrees.HasRoom(e.Source, e.Target, b.Delta) || t.Physical.Contains(e.Source, e.Target) {
			continue
		}
		if err := t.link(e.Source, e.Target); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Topology) link(source, target graph.NodeID) error {
	if _, err := t.Physical.AddEdge(source, target, Placeholder); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "add link %d -> %d", source, target)
	}
	t.Degrees.add(source, target)
	return nil
}
