package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Precision is the number of decimals in load labels. Zero uses 3.
	Precision int

	// Circular lays the nodes out on a circle instead of ranks.
	Circular bool
}

// Format names an output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// FormatFor returns the format selected by the extension of path.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".dot", ".gv":
		return FormatDOT, nil
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPG, nil
	default:
		return "", errors.New(errors.ErrCodeRendering, "unsupported output format %q", ext)
	}
}

// ToDOT converts a physical graph to Graphviz DOT source.
func ToDOT(g *graph.Graph, opts Options) string {
	prec := opts.Precision
	if prec <= 0 {
		prec = 3
	}
	hot, hasHot := g.MaxEdge()
	peak := 0.0
	if hasHot {
		peak = g.Weight(hot)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Circular {
		buf.WriteString("  layout=circo;\n")
	} else {
		buf.WriteString("  rankdir=LR;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for v := range g.NodeCount() {
		fmt.Fprintf(&buf, "  %d;\n", v)
	}

	buf.WriteString("\n")
	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		attrs := []string{
			fmt.Sprintf("label=%q", strconv.FormatFloat(e.Weight, 'f', prec, 64)),
			fmt.Sprintf("penwidth=%s", strconv.FormatFloat(penWidth(e.Weight, peak), 'f', 2, 64)),
		}
		if hasHot && id == hot {
			attrs = append(attrs, "color=red", "fontcolor=red")
		}
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func penWidth(w, peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	return 1 + 3*w/peak
}

// Render renders DOT source in the given format. FormatDOT returns the
// source unchanged.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	case FormatJPG:
		gvFormat = graphviz.JPG
	default:
		return nil, errors.New(errors.ErrCodeRendering, "unsupported output format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendering, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendering, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendering, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// WriteFile renders g in the format selected by the extension of path and
// writes it there.
func WriteFile(ctx context.Context, g *graph.Graph, path string, opts Options) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Render(ctx, ToDOT(g, opts), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRendering, err, "write %s", path)
	}
	return nil
}
