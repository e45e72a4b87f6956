package traffic

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// Step records one refinement iteration.
type Step struct {
	Edge      graph.EdgeID   // Hottest link at the start of the step
	Source    graph.NodeID   // Endpoints of Edge
	Target    graph.NodeID   //
	Detour    []graph.EdgeID // Alternate path that took the overflow
	OldWeight float64        // Load of Edge before the step
	NewWeight float64        // Load of Edge after the step
	Overflow  float64        // Load added to every detour link
	Skipped   bool           // No detour existed, nothing changed
}

// Iterations returns the number of refinement steps for an n-node topology.
func Iterations(n int) int { return n / 3 }

// Refine runs Iterations(n) load-splitting steps on phys in place, where n
// is the node count.
//
// Each step takes the hottest link e (lowest handle on ties), finds the
// cheapest path between its endpoints that avoids e, and moves load from e
// onto that path: with m the hottest link of the path, e ends at
// (w(e)+w(m))/2 and every path link gains w(e) minus that.
//
// A missing detour skips the step. Other errors abort.
func Refine(ctx context.Context, phys *graph.Graph, logger *log.Logger) ([]Step, error) {
	logger = orDiscard(logger)
	n := Iterations(phys.NodeCount())
	steps := make([]Step, 0, n)

	for i := range n {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		step, err := refineOnce(phys)
		if err != nil {
			return steps, err
		}
		if step.Skipped {
			logger.Warn("no alternate path, skipping refinement step",
				"step", i+1, "source", step.Source, "target", step.Target)
		} else {
			logger.Debug("load split",
				"step", i+1, "source", step.Source, "target", step.Target,
				"old", step.OldWeight, "new", step.NewWeight, "hops", len(step.Detour))
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func refineOnce(phys *graph.Graph) (Step, error) {
	id, ok := phys.MaxEdge()
	if !ok {
		return Step{}, errors.New(errors.ErrCodeInternal, "physical graph has no links to refine")
	}
	e, _ := phys.Edge(id)
	step := Step{
		Edge:      id,
		Source:    e.Source,
		Target:    e.Target,
		OldWeight: e.Weight,
		NewWeight: e.Weight,
	}

	work := phys.Clone()
	if err := work.RemoveEdge(id); err != nil {
		return step, errors.Wrap(errors.ErrCodeInternal, err, "remove link %d from working copy", id)
	}
	p, err := graph.ShortestPath(work, e.Source, e.Target)
	switch {
	case stderrors.Is(err, graph.ErrNoPath):
		step.Skipped = true
		return step, nil
	case err != nil:
		return step, errors.Wrap(errors.ErrCodeNoPath, err, "detour for %d -> %d", e.Source, e.Target)
	case p.Hops() == 0:
		// self-loop, nothing to offload onto
		step.Skipped = true
		return step, nil
	}

	var hottest float64
	for _, pid := range p.Edges {
		hottest = max(hottest, phys.Weight(pid))
	}
	newWeight := (e.Weight + hottest) / 2
	overflow := e.Weight - newWeight

	for _, pid := range p.Edges {
		if err := phys.AddWeight(pid, overflow); err != nil {
			return step, errors.Wrap(errors.ErrCodeInternal, err, "offload onto link %d", pid)
		}
	}
	if err := phys.SetWeight(id, newWeight); err != nil {
		return step, errors.Wrap(errors.ErrCodeInternal, err, "set load of link %d", id)
	}

	step.Detour = p.Edges
	step.NewWeight = newWeight
	step.Overflow = overflow
	return step, nil
}
