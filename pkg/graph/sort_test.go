package graph

import (
	"context"
	"slices"
	"testing"
)

func TestSortByWeight(t *testing.T) {
	g := New(4)
	a := mustAdd(t, g, 0, 1, 0.2)
	b := mustAdd(t, g, 1, 2, 0.9)
	c := mustAdd(t, g, 2, 3, 0.5)
	d := mustAdd(t, g, 3, 0, 0.9)

	ids := g.EdgeIDs()
	got, err := SortByWeight(context.Background(), g, ids)
	if err != nil {
		t.Fatal(err)
	}
	if want := []EdgeID{b, d, c, a}; !slices.Equal(got, want) {
		t.Errorf("SortByWeight = %v, want %v", got, want)
	}
	if !slices.Equal(ids, []EdgeID{a, b, c, d}) {
		t.Error("SortByWeight modified its input")
	}
}

func TestSortByWeightParallelMatchesSequential(t *testing.T) {
	const n = 90 // 8010 edges, above the parallel threshold
	g := New(n)
	for s := range n {
		for d := range n {
			if s != d {
				// few distinct values so ties are common
				mustAdd(t, g, NodeID(s), NodeID(d), float64((s*31+d*17)%13))
			}
		}
	}

	ids := g.EdgeIDs()
	got, err := SortByWeight(context.Background(), g, ids)
	if err != nil {
		t.Fatal(err)
	}

	want := slices.Clone(ids)
	slices.SortFunc(want, byWeightDesc(g))
	if !slices.Equal(got, want) {
		t.Fatal("parallel sort differs from sequential sort")
	}
}

func TestSortByWeightCanceled(t *testing.T) {
	const n = 70
	g := New(n)
	for s := range n {
		for d := range n {
			if s != d {
				mustAdd(t, g, NodeID(s), NodeID(d), 1)
			}
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := SortByWeight(ctx, g, g.EdgeIDs()); err == nil {
		t.Skip("single CPU: sequential path ignores cancellation")
	}
}
