package graph_test

import (
	"fmt"

	"github.com/matzehuels/ltd/pkg/graph"
)

func ExampleShortestPath() {
	g := graph.New(4)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 3, 1)
	g.AddEdge(0, 2, 0.5)
	g.AddEdge(2, 3, 0.5)

	p, _ := graph.ShortestPath(g, 0, 3)
	fmt.Println("Nodes:", p.Nodes)
	fmt.Println("Cost:", p.Cost)
	// Output:
	// Nodes: [0 2 3]
	// Cost: 1
}

func ExampleGraph_Edges() {
	g := graph.New(3)
	g.AddEdge(0, 1, 0.5)
	g.AddEdge(0, 2, 0.25)
	g.AddEdge(2, 0, 1)

	fmt.Println("Out of 0:", g.Edges(0, graph.Outgoing))
	fmt.Println("Into 0:", g.Edges(0, graph.Incoming))
	fmt.Println("Out-degree of 0:", g.Degree(0, graph.Outgoing))
	// Output:
	// Out of 0: [0 1]
	// Into 0: [2]
	// Out-degree of 0: 2
}
