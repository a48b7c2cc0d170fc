package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slides2video/internal/project"
	"github.com/ivlev/slides2video/internal/timeline"
)

// ResolveRange evaluates frames [from, to) across a pool of workers.
// Because Resolve is pure, the result is identical to calling it frame
// by frame in order; cancellation only stops work not yet started, and
// already computed states remain valid.
func ResolveRange(ctx context.Context, p *project.VideoProject, ix *timeline.Index, from, to, workers int) ([]FrameState, error) {
	if to < from {
		return nil, fmt.Errorf("invalid frame range [%d, %d)", from, to)
	}
	if workers < 1 {
		workers = 1
	}

	states := make([]FrameState, to-from)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for frame := from; frame < to; frame++ {
		frame := frame
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			states[frame-from] = Resolve(p, ix, frame)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}
