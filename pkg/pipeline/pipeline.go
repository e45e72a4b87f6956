// Package pipeline runs the complete topology synthesis for one set of
// options.
//
// # Architecture
//
// A run consists of five stages, executed strictly in order:
//
//  1. Demand: generate the logical traffic matrix from the seed
//  2. Build: construct the physical topology (opportunistic or manhattan)
//  3. Embed: route all demand over the physical links
//  4. Refine: optionally split load off the hottest links
//  5. Check: verify flow conservation at every node
//
// Rendering the result to a file is a separate step ([Runner.Render]) that
// callers perform after they have reported the maximum load.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Nodes: 16, Delta: 3, Seed: "1234", Split: true}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.MaxLoad)
//
// # Caching
//
// A run is a pure function of its options, so results are cached under a
// hash of the options and the build version. Cached results carry the loaded
// physical graph and the refinement report, but not the demand matrix.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ltd/pkg/demand"
	"github.com/matzehuels/ltd/pkg/graph"
	"github.com/matzehuels/ltd/pkg/topology"
	"github.com/matzehuels/ltd/pkg/traffic"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSeed is the seed used when none is given.
	DefaultSeed = demand.DefaultSeed

	// CacheTTL bounds how long a cached result is kept.
	CacheTTL = 30 * 24 * time.Hour
)

// Stage names reported to logs and observability hooks.
const (
	StageDemand = "demand"
	StageBuild  = "build"
	StageEmbed  = "embed"
	StageRefine = "refine"
	StageCheck  = "check"
	StageRender = "render"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one run.
type Options struct {
	Nodes     int    `json:"nodes" toml:"nodes" validate:"min=2"`
	Delta     int    `json:"delta" toml:"delta" validate:"min=1"`
	Seed      string `json:"seed" toml:"seed" validate:"seed"`
	Split     bool   `json:"split" toml:"split"`
	Manhattan int    `json:"manhattan,omitempty" toml:"manhattan" validate:"min=0"` // Row length, 0 selects the opportunistic builder

	// OutputFile is where Render writes the diagram. It does not affect the
	// computation and is not part of the cache key.
	OutputFile string `json:"-" toml:"output_file"`

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-" toml:"-" validate:"-"`
	Refresh bool        `json:"-" toml:"-"` // Skip the cache lookup but store the fresh result
}

// Builder returns the topology builder selected by the options.
func (o *Options) Builder() topology.Builder {
	if o.Manhattan > 0 {
		return topology.Manhattan{RowLength: o.Manhattan}
	}
	return topology.Opportunistic{Delta: o.Delta}
}

// SetDefaults fills in the seed and a discarding logger.
func (o *Options) SetDefaults() {
	if o.Seed == "" {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a run.
type Result struct {
	RunID string

	Mode  topology.Mode
	Start graph.NodeID   // First node of the spanning cycle, -1 for manhattan
	Cycle []graph.NodeID // Spanning cycle in visiting order (opportunistic only)

	// Physical is the loaded physical graph.
	Physical *graph.Graph

	// MaxLoad is the heaviest physical link load, the primary output.
	MaxLoad float64

	Embedding traffic.Embedding
	Steps     []traffic.Step // Refinement report, empty without Split

	Stats    Stats
	CacheHit bool
}

// Stats contains execution statistics.
type Stats struct {
	Nodes        int
	Links        int
	Demands      int
	MaxInDegree  int
	MaxOutDegree int
	Skipped      int // Refinement steps without a detour

	DemandTime time.Duration
	BuildTime  time.Duration
	EmbedTime  time.Duration
	RefineTime time.Duration
	CheckTime  time.Duration
}

// Total returns the summed stage durations.
func (s Stats) Total() time.Duration {
	return s.DemandTime + s.BuildTime + s.EmbedTime + s.RefineTime + s.CheckTime
}
