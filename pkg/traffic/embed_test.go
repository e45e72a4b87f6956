package traffic

import (
	"context"
	"testing"

	"github.com/matzehuels/ltd/pkg/demand"
	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
	"github.com/matzehuels/ltd/pkg/topology"
)

func build(t *testing.T, b topology.Builder, n int, seed string) *topology.Topology {
	t.Helper()
	logical, err := demand.FromSeed(n, seed)
	if err != nil {
		t.Fatal(err)
	}
	topo, err := b.Build(context.Background(), logical)
	if err != nil {
		t.Fatalf("%s build: %v", b.Mode(), err)
	}
	return topo
}

func TestEmbedSingleCycle(t *testing.T) {
	topo := build(t, topology.Opportunistic{Delta: 1}, 4, demand.DefaultSeed)

	stats, err := Embed(context.Background(), topo, nil)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Consumed != 4 || stats.Direct != 0 || stats.Routed != 8 {
		t.Errorf("stats = %+v, want 4 consumed, 0 direct, 8 routed", stats)
	}

	// on a ring every demand travels the ring distance from source to target
	pos := make(map[graph.NodeID]int)
	for i, v := range topo.Cycle {
		pos[v] = i
	}
	var want float64
	for _, id := range topo.Demand.EdgeIDs() {
		d, _ := topo.Demand.Edge(id)
		hops := (pos[d.Target] - pos[d.Source] + 4) % 4
		want += d.Weight * float64(hops)
	}
	if got := topo.Physical.TotalWeight(); !near(got, want) {
		t.Errorf("TotalWeight = %v, want %v", got, want)
	}

	var maxLoad float64
	for _, id := range topo.Physical.EdgeIDs() {
		maxLoad = max(maxLoad, topo.Physical.Weight(id))
	}
	if topo.MaxLoad() != maxLoad {
		t.Errorf("MaxLoad = %v, want %v", topo.MaxLoad(), maxLoad)
	}
	if err := CheckConservation(context.Background(), topo.Physical, topo.Demand, nil); err != nil {
		t.Errorf("CheckConservation: %v", err)
	}
}

func TestEmbedConserves(t *testing.T) {
	tests := []struct {
		name    string
		builder topology.Builder
		n       int
	}{
		{"opportunistic delta 2", topology.Opportunistic{Delta: 2}, 10},
		{"opportunistic delta 4", topology.Opportunistic{Delta: 4}, 17},
		{"opportunistic complete", topology.Opportunistic{Delta: 5}, 6},
		{"manhattan 3x3", topology.Manhattan{RowLength: 3}, 9},
		{"manhattan two rows", topology.Manhattan{RowLength: 4}, 8},
		{"manhattan single row", topology.Manhattan{RowLength: 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := build(t, tt.builder, tt.n, "987654321")
			stats, err := Embed(context.Background(), topo, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := stats.Consumed + stats.Direct + stats.Routed; got != tt.n*(tt.n-1) {
				t.Errorf("placed %d demands, want %d", got, tt.n*(tt.n-1))
			}
			if err := CheckConservation(context.Background(), topo.Physical, topo.Demand, nil); err != nil {
				t.Errorf("CheckConservation: %v", err)
			}
		})
	}
}

func TestEmbedParallelLinksChargedOnce(t *testing.T) {
	// rows of two: left and right neighbour coincide
	topo := build(t, topology.Manhattan{RowLength: 2}, 4, "11")
	if _, err := Embed(context.Background(), topo, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := topo.Physical.TotalWeight(), topo.Demand.TotalWeight(); got < want-1e-9 {
		t.Errorf("TotalWeight = %v, below demand %v", got, want)
	}
	if err := CheckConservation(context.Background(), topo.Physical, topo.Demand, nil); err != nil {
		t.Errorf("CheckConservation: %v", err)
	}
}

func TestEmbedDeterministic(t *testing.T) {
	run := func() []graph.DocumentEdge {
		topo := build(t, topology.Opportunistic{Delta: 3}, 12, "55")
		if _, err := Embed(context.Background(), topo, nil); err != nil {
			t.Fatal(err)
		}
		return topo.Physical.Document().Edges
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("edge %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEmbedNoPath(t *testing.T) {
	logical := graph.New(3)
	logical.AddEdge(0, 1, 0.5)
	logical.AddEdge(1, 0, 0.25)
	phys := graph.New(3)
	phys.AddEdge(0, 1, 0)

	topo := &topology.Topology{
		Physical: phys,
		Demand:   logical,
		Residual: logical.Clone(),
		Start:    -1,
	}
	_, err := Embed(context.Background(), topo, nil)
	if !errors.Is(err, errors.ErrCodeNoPath) {
		t.Errorf("Embed error = %v, want NO_PATH_FOUND", err)
	}
}

func TestEmbedMissingCycleLink(t *testing.T) {
	logical := graph.New(2)
	logical.AddEdge(0, 1, 0.5)
	topo := &topology.Topology{
		Physical: graph.New(2),
		Demand:   logical,
		Residual: graph.New(2),
		Consumed: []graph.Edge{{Source: 0, Target: 1, Weight: 0.5}},
	}
	_, err := Embed(context.Background(), topo, nil)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Embed error = %v, want INTERNAL_ERROR", err)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
