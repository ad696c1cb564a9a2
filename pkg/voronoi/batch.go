package voronoi

import (
	"context"
	"runtime"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"golang.org/x/sync/errgroup"
)

// ComputeAll sweeps independent registries concurrently, each on its own engine.
// ctx is consulted before a sweep starts; a started sweep always runs to the end.
// The first error cancels sweeps that have not started yet.
func ComputeAll(ctx context.Context, regs []*client.Registry, opts ...Option) ([]*Diagram, error) {
	out := make([]*Diagram, len(regs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, reg := range regs {
		i, reg := i, reg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := New(opts...).Run(reg)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
