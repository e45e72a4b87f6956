package topology

import (
	"context"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// GridDegree is the number of links per node and direction in a manhattan
// topology.
const GridDegree = 4

// Manhattan builds a toroidal grid topology.
type Manhattan struct {
	// RowLength is the number of nodes per row. It must divide the node count.
	RowLength int
}

// Mode returns ModeManhattan.
func (Manhattan) Mode() Mode { return ModeManhattan }

// Build lays out the logical graph's nodes on a grid; the demand only
// contributes the node count.
func (b Manhattan) Build(_ context.Context, logical *graph.Graph) (*Topology, error) {
	n := logical.NodeCount()
	physical, err := Grid(n, b.RowLength)
	if err != nil {
		return nil, err
	}
	return &Topology{
		Mode:     ModeManhattan,
		Physical: physical,
		Demand:   logical,
		Residual: logical.Clone(),
		Start:    -1,
		Degrees:  DegreesOf(physical),
	}, nil
}

// CheckGrid validates that n nodes fill rows of length r exactly.
func CheckGrid(n, r int) error {
	if r < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "manhattan row length must be at least 1, got %d", r)
	}
	if n%r != 0 {
		return errors.New(errors.ErrCodeDimensionMismatch, "cannot build a manhattan topology: %d nodes do not fill rows of %d", n, r)
	}
	return nil
}

// Grid returns an n-node torus with rows of length r. Node i links to its
// left and right neighbours (wrapping within the row) and to the nodes above
// and below (wrapping between the first and last row), in that order.
//
// With one or two rows or columns the wrap-around neighbours coincide and
// the grid contains parallel links or self-loops; every node still has
// exactly GridDegree links in each direction.
func Grid(n, r int) (*graph.Graph, error) {
	if err := CheckGrid(n, r); err != nil {
		return nil, err
	}
	rows := n / r

	left := func(i int) int {
		if i%r == 0 {
			return i + r - 1
		}
		return i - 1
	}
	right := func(i int) int {
		if i%r == r-1 {
			return i + 1 - r
		}
		return i + 1
	}
	up := func(i int) int {
		if i/r == 0 {
			return n - r + i
		}
		return i - r
	}
	down := func(i int) int {
		if i/r == rows-1 {
			return i % r
		}
		return i + r
	}

	g := graph.New(n)
	for i := range n {
		for _, j := range [GridDegree]int{left(i), right(i), up(i), down(i)} {
			if _, err := g.AddEdge(graph.NodeID(i), graph.NodeID(j), Placeholder); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "add grid link %d -> %d", i, j)
			}
		}
	}
	return g, nil
}
