package service

import (
	"context"

	"pathstats/internal/core/chunk"
	perr "pathstats/internal/platform/errors"
	"pathstats/internal/platform/logger"
	"pathstats/internal/services/count/domain"

	"golang.org/x/sync/errgroup"
)

// Dispatch runs one scan per range concurrently and returns the partials in range order.
// The first failure cancels the others and is returned; no partials survive it
func Dispatch(ctx context.Context, sc *Scanner, path string, ranges []chunk.ByteRange) ([]domain.Partial, error) {
	parts := make([]domain.Partial, len(ranges))
	g, gctx := errgroup.WithContext(ctx)

	for i, rng := range ranges {
		g.Go(func() error {
			if sc.Metrics != nil {
				sc.Metrics.Active.Inc()
				defer sc.Metrics.Active.Dec()
			}
			p, err := sc.Scan(logger.WithWorker(gctx, i), i, path, rng)
			if err != nil {
				if perr.IsCode(err, perr.ErrorCodeCanceled) {
					return err
				}
				return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeWorker, "worker %d %s", i, rng), "scan")
			}
			parts[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}
