package loader

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds parallel file reads in LoadAll.
const maxConcurrentLoads = 4

// LoadAll loads several structure files concurrently. The result preserves
// the order of paths; the first failure cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string) ([]*Structure, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	results := make([]*Structure, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Load(path)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
