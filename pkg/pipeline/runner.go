package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ltd/pkg/buildinfo"
	"github.com/matzehuels/ltd/pkg/cache"
	"github.com/matzehuels/ltd/pkg/demand"
	"github.com/matzehuels/ltd/pkg/graph"
	"github.com/matzehuels/ltd/pkg/observability"
	"github.com/matzehuels/ltd/pkg/topology"
	"github.com/matzehuels/ltd/pkg/traffic"
)

// Runner executes runs with result caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute validates opts and runs every stage, serving the result from the
// cache when an identical run was stored before.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, runID, opts.Nodes)

	key := CacheKey(opts)
	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key, logger); ok {
			res.RunID = runID
			hooks.OnRunComplete(ctx, runID, res.MaxLoad, nil)
			return res, nil
		}
	}

	res, err := r.compute(ctx, opts, logger)
	if err != nil {
		hooks.OnRunComplete(ctx, runID, 0, err)
		return nil, err
	}
	res.RunID = runID
	hooks.OnRunComplete(ctx, runID, res.MaxLoad, nil)

	r.store(ctx, key, res, logger)
	return res, nil
}

func (r *Runner) compute(ctx context.Context, opts Options, logger *log.Logger) (*Result, error) {
	var (
		res     = &Result{}
		stats   = &res.Stats
		logical *graph.Graph
		topo    *topology.Topology
	)

	err := r.stage(ctx, StageDemand, &stats.DemandTime, func() error {
		seed, err := demand.ParseSeed(opts.Seed)
		if err != nil {
			return err
		}
		rng, err := demand.NewRand(seed)
		if err != nil {
			return err
		}
		logical, err = demand.Generate(opts.Nodes, rng)
		return err
	})
	if err != nil {
		return nil, err
	}
	stats.Nodes = logical.NodeCount()
	stats.Demands = logical.EdgeCount()
	logger.Info("generated demand",
		"nodes", stats.Nodes,
		"demands", stats.Demands,
		"total", logical.TotalWeight(),
		"duration", stats.DemandTime)

	builder := opts.Builder()
	err = r.stage(ctx, StageBuild, &stats.BuildTime, func() error {
		var err error
		topo, err = builder.Build(ctx, logical)
		return err
	})
	if err != nil {
		return nil, err
	}
	stats.Links = topo.Physical.EdgeCount()
	stats.MaxInDegree, stats.MaxOutDegree = topo.Degrees.Max()
	logger.Info("built topology",
		"mode", builder.Mode(),
		"links", stats.Links,
		"start", topo.Start,
		"duration", stats.BuildTime)

	err = r.stage(ctx, StageEmbed, &stats.EmbedTime, func() error {
		var err error
		res.Embedding, err = traffic.Embed(ctx, topo, logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("embedded demand",
		"routed", res.Embedding.Routed,
		"max_load", topo.MaxLoad(),
		"duration", stats.EmbedTime)

	if opts.Split {
		err = r.stage(ctx, StageRefine, &stats.RefineTime, func() error {
			var err error
			res.Steps, err = traffic.Refine(ctx, topo.Physical, logger)
			return err
		})
		if err != nil {
			return nil, err
		}
		for _, s := range res.Steps {
			if s.Skipped {
				stats.Skipped++
			}
		}
		logger.Info("refined loads",
			"steps", len(res.Steps),
			"skipped", stats.Skipped,
			"max_load", topo.MaxLoad(),
			"duration", stats.RefineTime)
	}

	err = r.stage(ctx, StageCheck, &stats.CheckTime, func() error {
		return traffic.CheckConservation(ctx, topo.Physical, topo.Demand, logger)
	})
	if err != nil {
		return nil, err
	}

	res.Mode = topo.Mode
	res.Start = topo.Start
	res.Cycle = topo.Cycle
	res.Physical = topo.Physical
	res.MaxLoad = topo.MaxLoad()
	return res, nil
}

// stage runs fn as a named stage, reporting it to the observability hooks
// and recording its duration in *elapsed.
func (r *Runner) stage(ctx context.Context, name string, elapsed *time.Duration, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	*elapsed = time.Since(start)
	hooks.OnStageComplete(ctx, name, *elapsed, err)
	return err
}

// =============================================================================
// Caching
// =============================================================================

// CacheKey returns the result cache key for opts. Seeds are normalized, so
// "0042" and "42" share an entry.
func CacheKey(opts Options) string {
	seed := opts.Seed
	if s, err := demand.ParseSeed(opts.Seed); err == nil {
		seed = s.String()
	}
	return cache.Key("run", buildinfo.Version, opts.Nodes, opts.Delta, seed, opts.Split, opts.Manhattan)
}

// cachedRun is the serialized form of a Result.
type cachedRun struct {
	Mode      topology.Mode     `json:"mode"`
	Start     graph.NodeID      `json:"start"`
	Cycle     []graph.NodeID    `json:"cycle,omitempty"`
	Physical  graph.Document    `json:"physical"`
	MaxLoad   float64           `json:"max_load"`
	Embedding traffic.Embedding `json:"embedding"`
	Steps     []traffic.Step    `json:"steps,omitempty"`
	Stats     Stats             `json:"stats"`
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}

	var c cachedRun
	if err := json.Unmarshal(data, &c); err != nil {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	phys, err := graph.FromDocument(c.Physical)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}

	observability.Cache().OnCacheHit(ctx, "result")
	logger.Info("using cached result", "max_load", c.MaxLoad)
	return &Result{
		Mode:      c.Mode,
		Start:     c.Start,
		Cycle:     c.Cycle,
		Physical:  phys,
		MaxLoad:   c.MaxLoad,
		Embedding: c.Embedding,
		Steps:     c.Steps,
		Stats:     c.Stats,
		CacheHit:  true,
	}, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result, logger *log.Logger) {
	data, err := json.Marshal(cachedRun{
		Mode:      res.Mode,
		Start:     res.Start,
		Cycle:     res.Cycle,
		Physical:  res.Physical.Document(),
		MaxLoad:   res.MaxLoad,
		Embedding: res.Embedding,
		Steps:     res.Steps,
		Stats:     res.Stats,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, CacheTTL); err != nil {
		logger.Warn("cache store failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
