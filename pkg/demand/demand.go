package demand

import (
	"math/rand/v2"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// MinNodes is the smallest network that has any demand to route.
const MinNodes = 2

// Generate builds the complete logical demand graph on n nodes.
//
// Edge weights are drawn from rng in source-major order, skipping self
// pairs, so edge handle i is the i-th drawn value. The result has n*(n-1)
// edges.
func Generate(n int, rng *rand.Rand) (*graph.Graph, error) {
	if n < MinNodes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "need at least %d nodes, got %d", MinNodes, n)
	}
	if rng == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "random generator is required")
	}

	logical := graph.New(n)
	for from := range n {
		for to := range n {
			if to == from {
				continue
			}
			if _, err := logical.AddEdge(graph.NodeID(from), graph.NodeID(to), rng.Float64()); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "add demand %d -> %d", from, to)
			}
		}
	}
	return logical, nil
}

// FromSeed parses seed and generates the demand graph on n nodes.
func FromSeed(n int, seed string) (*graph.Graph, error) {
	s, err := ParseSeed(seed)
	if err != nil {
		return nil, err
	}
	rng, err := NewRand(s)
	if err != nil {
		return nil, err
	}
	return Generate(n, rng)
}
