package nodelink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

func loadedRing(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(3)
	for _, e := range []graph.Edge{{Source: 0, Target: 1, Weight: 0.5}, {Source: 1, Target: 2, Weight: 1.25}, {Source: 2, Target: 0, Weight: 0.75}} {
		if _, err := g.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(loadedRing(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		"  0;\n",
		`0 -> 1 [label="0.500"`,
		`1 -> 2 [label="1.250", penwidth=4.00, color=red, fontcolor=red];`,
		`2 -> 0 [label="0.750"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Count(dot, " color=red") != 1 || strings.Count(dot, "fontcolor=red") != 1 {
		t.Error("exactly one link should be highlighted")
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(loadedRing(t), Options{Precision: 1, Circular: true})
	if !strings.Contains(dot, "layout=circo;") || strings.Contains(dot, "rankdir") {
		t.Errorf("circular layout not applied:\n%s", dot)
	}
	if !strings.Contains(dot, `label="0.5"`) {
		t.Errorf("precision not applied:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(graph.New(2), Options{})
	if strings.Contains(dot, "->") || strings.Contains(dot, "color=red") {
		t.Errorf("unexpected links:\n%s", dot)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out", FormatDOT, false},
		{"out.dot", FormatDOT, false},
		{"out.gv", FormatDOT, false},
		{"out.svg", FormatSVG, false},
		{"OUT.PNG", FormatPNG, false},
		{"out.jpeg", FormatJPG, false},
		{"out.pdf", "", true},
		{"dir/out.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeRendering) {
				t.Errorf("error code = %s, want RENDERING_FAILURE", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("FormatFor(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestWriteFileDOT(t *testing.T) {
	g := loadedRing(t)
	path := filepath.Join(t.TempDir(), "topology.dot")
	if err := WriteFile(context.Background(), g, path, Options{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ToDOT(g, Options{}) {
		t.Error("written file differs from ToDOT output")
	}
}

func TestWriteFileErrors(t *testing.T) {
	g := loadedRing(t)
	dir := t.TempDir()

	if err := WriteFile(context.Background(), g, filepath.Join(dir, "out.pdf"), Options{}); !errors.Is(err, errors.ErrCodeRendering) {
		t.Errorf("pdf error = %v, want RENDERING_FAILURE", err)
	}
	if err := WriteFile(context.Background(), g, filepath.Join(dir, "missing", "out.dot"), Options{}); !errors.Is(err, errors.ErrCodeRendering) {
		t.Errorf("missing dir error = %v, want RENDERING_FAILURE", err)
	}
	if err := WriteFile(context.Background(), g, "", Options{}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path error = %v, want INVALID_PATH", err)
	}
}
