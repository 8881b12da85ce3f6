package utils

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// GroupWorkFunc processes the half open work range [from, to) for one group.
type GroupWorkFunc func(ctx context.Context, groupNum, from, to int) error

// GroupWorkParallel splits totalSize work items into at most ParallelFactor contiguous
// groups and runs groupWork for each group concurrently. The first error (or captured
// panic) cancels the context handed to the remaining groups and is returned.
func GroupWorkParallel(ctx context.Context, totalSize int, groupWork GroupWorkFunc) error {
	if totalSize <= 0 {
		return ctx.Err()
	}
	numGroups := ParallelFactor
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	g, gctx := errgroup.WithContext(ctx)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		from := groupSize * groupNum
		to := from + groupSize
		if groupNum == numGroups-1 {
			to += extra
		}
		g.Go(func() (err error) {
			defer func() {
				if thePanic := recover(); thePanic != nil {
					err = errors.Errorf("got panic running group %d in parallel: %v", groupNum, thePanic)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			return groupWork(gctx, groupNum, from, to)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
