package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/graph"
	"github.com/matzehuels/ltd/pkg/render/nodelink"
	"github.com/matzehuels/ltd/pkg/topology"
)

// Render writes the loaded physical graph of res to path, in the format
// selected by its extension. A .json path receives the graph document;
// everything else goes through Graphviz. Opportunistic topologies are drawn
// on a circle so the spanning cycle reads as a ring.
func (r *Runner) Render(ctx context.Context, res *Result, path string) error {
	opts := nodelink.Options{Circular: res.Mode == topology.ModeOpportunistic}
	var elapsed time.Duration
	err := r.stage(ctx, StageRender, &elapsed, func() error {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return writeJSON(res.Physical, path)
		}
		return nodelink.WriteFile(ctx, res.Physical, path, opts)
	})
	if err != nil {
		return err
	}
	r.Logger.Info("rendered topology", "path", path, "duration", elapsed)
	return nil
}

func writeJSON(g *graph.Graph, path string) (err error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRendering, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeRendering, cerr, "close %s", path)
		}
	}()
	if err := graph.WriteGraph(g, f); err != nil {
		return errors.Wrap(errors.ErrCodeRendering, err, "write %s", path)
	}
	return nil
}
