package demand

import (
	"math"
	"testing"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

func TestXorShiftRejectsZero(t *testing.T) {
	if _, err := NewXorShift(Seed{}); !errors.Is(err, errors.ErrCodeInvalidSeed) {
		t.Errorf("NewXorShift(zero) error = %v, want INVALID_SEED", err)
	}
}

func TestXorShiftSequence(t *testing.T) {
	r, err := NewXorShift(Seed{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	// t = 1 ^ (1<<11) = 2049; w = 4 ^ (4>>19) ^ (2049 ^ (2049>>8)) = 4 ^ 2057
	if got := r.Uint32(); got != 2061 {
		t.Errorf("first Uint32 = %d, want 2061", got)
	}
	if r.x != 2 || r.y != 3 || r.z != 4 || r.w != 2061 {
		t.Errorf("state = %+v, want shifted words", *r)
	}
}

func TestGenerate(t *testing.T) {
	logical, err := FromSeed(5, DefaultSeed)
	if err != nil {
		t.Fatal(err)
	}
	if logical.NodeCount() != 5 {
		t.Errorf("NodeCount = %d, want 5", logical.NodeCount())
	}
	if logical.EdgeCount() != 20 {
		t.Errorf("EdgeCount = %d, want 20", logical.EdgeCount())
	}

	for v := range 5 {
		if d := logical.Degree(graph.NodeID(v), graph.Outgoing); d != 4 {
			t.Errorf("out-degree(%d) = %d, want 4", v, d)
		}
		if logical.Contains(graph.NodeID(v), graph.NodeID(v)) {
			t.Errorf("self-loop on %d", v)
		}
	}
	for _, id := range logical.EdgeIDs() {
		w := logical.Weight(id)
		if w < 0 || w >= 1 || math.IsNaN(w) {
			t.Errorf("edge %d weight %v outside [0, 1)", id, w)
		}
	}
}

func TestGenerateOrder(t *testing.T) {
	logical, err := FromSeed(3, "99")
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]graph.NodeID{{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}}
	for i, pair := range want {
		e, ok := logical.Edge(graph.EdgeID(i))
		if !ok || e.Source != pair[0] || e.Target != pair[1] {
			t.Errorf("edge %d = %+v, want %d -> %d", i, e, pair[0], pair[1])
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := FromSeed(12, "987654321987654321")
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromSeed(12, "987654321987654321")
	if err != nil {
		t.Fatal(err)
	}
	c, err := FromSeed(12, "987654321987654322")
	if err != nil {
		t.Fatal(err)
	}

	differs := false
	for _, id := range a.EdgeIDs() {
		if math.Float64bits(a.Weight(id)) != math.Float64bits(b.Weight(id)) {
			t.Fatalf("edge %d differs between identical seeds", id)
		}
		if a.Weight(id) != c.Weight(id) {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds produced identical demand")
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := FromSeed(1, DefaultSeed); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("one node error = %v, want INVALID_INPUT", err)
	}
	if _, err := Generate(4, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil rng error = %v, want INVALID_INPUT", err)
	}
	if _, err := FromSeed(4, "nope"); !errors.Is(err, errors.ErrCodeInvalidSeed) {
		t.Errorf("bad seed error = %v, want INVALID_SEED", err)
	}
}
