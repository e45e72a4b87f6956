// Package nodelink renders a physical topology as a node-link diagram.
//
// # Usage
//
// Convert the loaded physical graph to DOT, then write it in the format the
// output path asks for:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	err := nodelink.WriteFile(ctx, g, "topology.svg", nodelink.Options{})
//
// # Formats
//
// The output format is taken from the file extension:
//
//   - no extension, .dot, .gv: DOT source, written as is
//   - .svg, .png, .jpg, .jpeg: rendered in-process by Graphviz
//
// Every other extension, and every Graphviz failure, is reported as
// RENDERING_FAILURE.
//
// # DOT Format
//
// Nodes are labelled with their index. Every link is labelled with its load;
// the most loaded link is drawn in red, and pen width grows with load.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering,
// so no Graphviz installation is needed.
package nodelink
