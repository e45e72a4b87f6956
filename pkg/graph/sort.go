package graph

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// parallelSortThreshold is the input size below which SortByWeight sorts on
// the calling goroutine.
const parallelSortThreshold = 4096

// SortByWeight returns a copy of ids ordered by descending edge weight.
// Equal weights keep ascending handle order, so the result is the same
// regardless of how the work is split.
//
// Inputs of parallelSortThreshold handles or more are cut into one chunk per
// CPU, sorted concurrently and merged pairwise. The graph must not be
// mutated while the sort runs.
func SortByWeight(ctx context.Context, g *Graph, ids []EdgeID) ([]EdgeID, error) {
	sorted := slices.Clone(ids)
	less := byWeightDesc(g)

	workers := runtime.GOMAXPROCS(0)
	if len(sorted) < parallelSortThreshold || workers < 2 {
		slices.SortFunc(sorted, less)
		return sorted, nil
	}

	chunks := split(sorted, workers)
	eg, egCtx := errgroup.WithContext(ctx)
	for _, c := range chunks {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			slices.SortFunc(c, less)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for len(chunks) > 1 {
		merged := make([][]EdgeID, (len(chunks)+1)/2)
		eg, egCtx := errgroup.WithContext(ctx)
		for i := range merged {
			if 2*i+1 == len(chunks) {
				merged[i] = chunks[2*i]
				continue
			}
			a, b := chunks[2*i], chunks[2*i+1]
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				merged[i] = merge(a, b, less)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		chunks = merged
	}
	return chunks[0], nil
}

func byWeightDesc(g *Graph) func(a, b EdgeID) int {
	return func(a, b EdgeID) int {
		if c := cmp.Compare(g.edges[b].Weight, g.edges[a].Weight); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}
}

// split cuts s into at most n contiguous, non-overlapping chunks.
func split(s []EdgeID, n int) [][]EdgeID {
	size := (len(s) + n - 1) / n
	chunks := make([][]EdgeID, 0, n)
	for start := 0; start < len(s); start += size {
		chunks = append(chunks, s[start:min(start+size, len(s))])
	}
	return chunks
}

func merge(a, b []EdgeID, compare func(x, y EdgeID) int) []EdgeID {
	out := make([]EdgeID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if compare(a[i], b[j]) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
