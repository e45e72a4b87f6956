package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// Document - Serialization Form
// =============================================================================

// Document is the canonical JSON form of a Graph. Removed edges are dropped,
// so handles are renumbered densely in their original order on import.
type Document struct {
	Nodes int            `json:"nodes"`
	Edges []DocumentEdge `json:"edges"`
}

// DocumentEdge is a serialized edge.
type DocumentEdge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// Document returns the serialization form of g.
func (g *Graph) Document() Document {
	doc := Document{Nodes: g.NodeCount(), Edges: make([]DocumentEdge, 0, g.live)}
	for _, id := range g.EdgeIDs() {
		e := g.edges[id]
		doc.Edges = append(doc.Edges, DocumentEdge{
			Source: int(e.Source),
			Target: int(e.Target),
			Weight: e.Weight,
		})
	}
	return doc
}

// FromDocument rebuilds a Graph from its serialization form.
func FromDocument(doc Document) (*Graph, error) {
	if doc.Nodes < 0 {
		return nil, fmt.Errorf("negative node count %d", doc.Nodes)
	}
	g := New(doc.Nodes)
	for i, e := range doc.Edges {
		if _, err := g.AddEdge(NodeID(e.Source), NodeID(e.Target), e.Weight); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return g, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Document()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
