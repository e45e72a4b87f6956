// Package pkg provides the core libraries for ltd, a synthesizer of
// degree-bounded physical topologies.
//
// # Overview
//
// ltd draws a random logical traffic matrix, builds a physical topology in
// which every node has at most Delta outgoing and Delta incoming links, and
// embeds the logical demand on it. The physical links end up carrying the
// demand as load; the largest load is the figure of merit.
//
// The data flow through ltd:
//
//	seed
//	  ↓
//	[demand] (XorShift stream → N×N traffic matrix)
//	  ↓
//	[topology] (start selection → opportunistic or manhattan build)
//	  ↓
//	[traffic] (embed → optional refine → conservation check)
//	  ↓
//	[render/nodelink] (DOT, SVG, PNG, JPG)
//
// # Quick Start
//
//	logical, _ := demand.FromSeed(12, "1234")
//	topo, _ := topology.Opportunistic{Delta: 2}.Build(ctx, logical)
//	if _, err := traffic.Embed(ctx, topo, nil); err != nil {
//	    return err
//	}
//	fmt.Println(topo.MaxLoad())
//
// # Main Packages
//
// [graph] - Arena-backed weighted digraph with stable edge handles, parallel
// edges, load-aware shortest paths and parallel weight sorting.
//
// [demand] - Seed parsing, the XorShift generator and logical demand matrix
// generation.
//
// [topology] - Greedy Hamiltonian walks, start-node selection and the two
// physical builders.
//
// [traffic] - Demand embedding, load-splitting refinement and flow
// conservation checks.
//
// [pipeline] - Validated options, TOML config files and the [pipeline.Runner]
// that sequences the stages and caches results.
//
// [cache] - File, Redis and no-op result caches keyed by SHA-256 hashes.
//
// [render/nodelink] - Graphviz output of the physical topology.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Pipeline and cache hooks with no-op defaults.
//
// # Testing
//
//	go test ./...
//	go test -run Example ./pkg/...
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/graph
// [demand]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/demand
// [topology]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/topology
// [traffic]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/traffic
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/cache
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ltd/pkg/observability
package pkg
