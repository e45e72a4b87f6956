package traffic

import (
	"context"
	"testing"

	"github.com/matzehuels/ltd/pkg/graph"
	"github.com/matzehuels/ltd/pkg/topology"
)

func TestRefineSplitsLoad(t *testing.T) {
	g := graph.New(3)
	hot, _ := g.AddEdge(0, 1, 10)
	a, _ := g.AddEdge(0, 2, 2)
	b, _ := g.AddEdge(2, 1, 4)

	steps, err := Refine(context.Background(), g, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 1 {
		t.Fatalf("len(steps) = %d, want 1", len(steps))
	}
	s := steps[0]
	if s.Skipped || s.Edge != hot || s.OldWeight != 10 || s.NewWeight != 7 || s.Overflow != 3 {
		t.Errorf("step = %+v", s)
	}
	if len(s.Detour) != 2 || s.Detour[0] != a || s.Detour[1] != b {
		t.Errorf("Detour = %v, want [%d %d]", s.Detour, a, b)
	}

	for _, tt := range []struct {
		id   graph.EdgeID
		want float64
	}{{hot, 7}, {a, 5}, {b, 7}} {
		if got := g.Weight(tt.id); got != tt.want {
			t.Errorf("Weight(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestRefineSkipsWithoutDetour(t *testing.T) {
	g := graph.New(3)
	g.AddEdge(0, 1, 5)
	g.AddEdge(1, 0, 1)

	steps, err := Refine(context.Background(), g, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 1 || !steps[0].Skipped {
		t.Fatalf("steps = %+v, want one skipped step", steps)
	}
	if g.TotalWeight() != 6 {
		t.Errorf("skipped step changed loads: total %v", g.TotalWeight())
	}
}

func TestRefineIterations(t *testing.T) {
	for n, want := range map[int]int{2: 0, 3: 1, 8: 2, 9: 3, 31: 10} {
		if got := Iterations(n); got != want {
			t.Errorf("Iterations(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestRefineAccounting(t *testing.T) {
	for _, b := range []topology.Builder{
		topology.Opportunistic{Delta: 2},
		topology.Opportunistic{Delta: 3},
		topology.Manhattan{RowLength: 4},
	} {
		t.Run(string(b.Mode()), func(t *testing.T) {
			topo := build(t, b, 16, "2024")
			if _, err := Embed(context.Background(), topo, nil); err != nil {
				t.Fatal(err)
			}
			before := topo.Physical.TotalWeight()
			peak := topo.MaxLoad()

			steps, err := Refine(context.Background(), topo.Physical, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(steps) != Iterations(16) {
				t.Errorf("len(steps) = %d, want %d", len(steps), Iterations(16))
			}

			// each link on the detour gains what the hot link loses, so the
			// total grows by (hops-1) * overflow per step
			want := before
			for _, s := range steps {
				if s.Skipped {
					continue
				}
				if s.NewWeight > s.OldWeight || s.Overflow < 0 {
					t.Errorf("step raised the hot link: %+v", s)
				}
				want += float64(len(s.Detour)-1) * s.Overflow
			}
			if got := topo.Physical.TotalWeight(); !nearRel(got, want) {
				t.Errorf("TotalWeight = %v, want %v", got, want)
			}
			if steps[0].OldWeight != peak {
				t.Errorf("first step took %v, peak was %v", steps[0].OldWeight, peak)
			}

			if err := CheckConservation(context.Background(), topo.Physical, topo.Demand, nil); err != nil {
				t.Errorf("CheckConservation after refinement: %v", err)
			}
		})
	}
}

func nearRel(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= 1e-9*max(1, a, b)
}
