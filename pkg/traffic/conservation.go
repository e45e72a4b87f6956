package traffic

import (
	"context"
	"math"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// Tolerance is the largest accepted absolute flow imbalance per node.
const Tolerance = 0.01

// Imbalance returns physIn + logOut - physOut - logIn at node v.
func Imbalance(phys, logical *graph.Graph, v graph.NodeID) float64 {
	return phys.WeightSum(v, graph.Incoming) + logical.WeightSum(v, graph.Outgoing) -
		phys.WeightSum(v, graph.Outgoing) - logical.WeightSum(v, graph.Incoming)
}

// CheckConservation verifies flow conservation at every node against the
// original demand graph. Nodes are checked concurrently; each violation is
// logged, and the lowest violating node is returned as an
// INFEASIBLE_EMBEDDING error wrapping an [errors.ImbalanceError].
func CheckConservation(ctx context.Context, phys, logical *graph.Graph, logger *log.Logger) error {
	logger = orDiscard(logger)
	n := phys.NodeCount()
	if logical.NodeCount() != n {
		return errors.New(errors.ErrCodeInternal, "physical graph has %d nodes, demand has %d", n, logical.NodeCount())
	}

	imbalance := make([]float64, n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for v := range n {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			imbalance[v] = Imbalance(phys, logical, graph.NodeID(v))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var first *errors.ImbalanceError
	for v, d := range imbalance {
		if math.Abs(d) <= Tolerance {
			continue
		}
		logger.Error("flow not conserved", "node", v, "imbalance", d)
		if first == nil {
			first = &errors.ImbalanceError{Node: v, Imbalance: d}
		}
		first.Violations++
	}
	if first != nil {
		return errors.Wrap(errors.ErrCodeInfeasible, first, "embedding does not conserve flow")
	}
	return nil
}
