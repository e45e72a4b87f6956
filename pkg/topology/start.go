package topology

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// Candidate is a start node with the weight of its greedy cycle.
type Candidate struct {
	Node   graph.NodeID
	Weight float64
}

// ScoreStarts computes the greedy cycle weight for every node as start.
// Candidates are evaluated concurrently; the result is indexed by node.
func ScoreStarts(ctx context.Context, logical *graph.Graph) ([]Candidate, error) {
	n := logical.NodeCount()
	scores := make([]Candidate, n)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for s := range n {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			c, err := GreedyCycle(logical, graph.NodeID(s))
			if err != nil {
				return err
			}
			scores[s] = Candidate{Node: graph.NodeID(s), Weight: c.Weight}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// SelectStart returns the start node whose greedy cycle is heaviest.
// Ties go to the lowest node index.
func SelectStart(ctx context.Context, logical *graph.Graph) (Candidate, error) {
	if logical.NodeCount() == 0 {
		return Candidate{}, errors.New(errors.ErrCodeInvalidInput, "logical graph has no nodes")
	}
	scores, err := ScoreStarts(ctx, logical)
	if err != nil {
		return Candidate{}, err
	}
	return best(scores), nil
}

func best(scores []Candidate) Candidate {
	top := scores[0]
	for _, c := range scores[1:] {
		if c.Weight > top.Weight {
			top = c
		}
	}
	return top
}
