package traffic

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
	"github.com/matzehuels/ltd/pkg/topology"
)

// Embedding summarizes how the demand was placed.
type Embedding struct {
	Consumed int // Demands carried by their cycle link
	Direct   int // Demands carried by a direct link
	Routed   int // Demands routed over multi-hop paths
	MaxHops  int // Longest routed path
}

// Embed resets the physical link loads and assigns all demand of t to them.
// Physical weights are modified in place.
func Embed(ctx context.Context, t *topology.Topology, logger *log.Logger) (Embedding, error) {
	logger = orDiscard(logger)
	phys := t.Physical
	var stats Embedding

	if err := phys.ResetWeights(topology.Placeholder); err != nil {
		return stats, errors.Wrap(errors.ErrCodeInternal, err, "reset link loads")
	}

	for _, e := range t.Consumed {
		id, ok := phys.FindEdge(e.Source, e.Target)
		if !ok {
			return stats, errors.New(errors.ErrCodeInternal, "cycle link %d -> %d missing from physical graph", e.Source, e.Target)
		}
		if err := phys.AddWeight(id, e.Weight); err != nil {
			return stats, errors.Wrap(errors.ErrCodeInternal, err, "charge cycle link %d -> %d", e.Source, e.Target)
		}
		stats.Consumed++
	}

	residual := t.Residual
	var pending []graph.EdgeID
	for _, did := range residual.EdgeIDs() {
		d, _ := residual.Edge(did)
		id, ok := phys.FindEdge(d.Source, d.Target)
		if !ok {
			pending = append(pending, did)
			continue
		}
		if err := phys.AddWeight(id, d.Weight); err != nil {
			return stats, errors.Wrap(errors.ErrCodeInternal, err, "charge link %d -> %d", d.Source, d.Target)
		}
		stats.Direct++
	}

	order, err := graph.SortByWeight(ctx, residual, pending)
	if err != nil {
		return stats, err
	}
	for _, did := range order {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		d, _ := residual.Edge(did)
		p, err := graph.ShortestPath(phys, d.Source, d.Target)
		if err != nil {
			return stats, errors.Wrap(errors.ErrCodeNoPath, err, "route demand %d -> %d", d.Source, d.Target)
		}
		for _, id := range p.Edges {
			if err := phys.AddWeight(id, d.Weight); err != nil {
				return stats, errors.Wrap(errors.ErrCodeInternal, err, "charge path link %d", id)
			}
		}
		stats.Routed++
		stats.MaxHops = max(stats.MaxHops, p.Hops())
	}

	logger.Debug("demand embedded",
		"consumed", stats.Consumed, "direct", stats.Direct,
		"routed", stats.Routed, "max_hops", stats.MaxHops)
	return stats, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
