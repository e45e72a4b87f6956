package topology

import (
	"context"

	"github.com/matzehuels/ltd/pkg/graph"
)

// Placeholder is the weight of a freshly built physical link. The embedder
// replaces it with the carried load.
const Placeholder = 0.0

// Mode names a construction strategy.
type Mode string

const (
	ModeOpportunistic Mode = "opportunistic"
	ModeManhattan     Mode = "manhattan"
)

// Builder constructs a physical topology for a logical demand graph.
type Builder interface {
	Mode() Mode
	Build(ctx context.Context, logical *graph.Graph) (*Topology, error)
}

// Topology is a physical network together with the demand it must carry.
type Topology struct {
	Mode     Mode
	Physical *graph.Graph // Provisioned links, weights are loads
	Demand   *graph.Graph // Original logical demand, never modified
	Residual *graph.Graph // Demand not consumed during construction

	// Consumed holds the demand carried directly by the opportunistic cycle,
	// one entry per cycle link.
	Consumed []graph.Edge

	// Start is the first node of the spanning cycle, or -1 when no cycle was
	// built.
	Start graph.NodeID

	// Cycle is the spanning cycle in visiting order (opportunistic only).
	Cycle []graph.NodeID

	Degrees Degrees
}

// MaxLoad returns the heaviest physical link weight.
func (t *Topology) MaxLoad() float64 {
	id, ok := t.Physical.MaxEdge()
	if !ok {
		return 0
	}
	return t.Physical.Weight(id)
}

// Degrees counts physical links per node and direction.
type Degrees struct {
	In  []int
	Out []int
}

func newDegrees(n int) Degrees {
	return Degrees{In: make([]int, n), Out: make([]int, n)}
}

func (d Degrees) add(source, target graph.NodeID) {
	d.Out[source]++
	d.In[target]++
}

// HasRoom reports whether source can send and target can receive one more
// link without exceeding delta.
func (d Degrees) HasRoom(source, target graph.NodeID, delta int) bool {
	return d.Out[source] < delta && d.In[target] < delta
}

// Max returns the largest in-degree and out-degree over all nodes.
func (d Degrees) Max() (in, out int) {
	for v := range d.In {
		in = max(in, d.In[v])
		out = max(out, d.Out[v])
	}
	return in, out
}

// DegreesOf counts the links of an existing graph.
func DegreesOf(g *graph.Graph) Degrees {
	d := newDegrees(g.NodeCount())
	for v := range g.NodeCount() {
		d.In[v] = g.Degree(graph.NodeID(v), graph.Incoming)
		d.Out[v] = g.Degree(graph.NodeID(v), graph.Outgoing)
	}
	return d
}
