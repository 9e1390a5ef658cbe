package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem pairs one request's outcome with its input position. A failed
// item carries its error without aborting the rest of the batch: a bad
// postcode in row 40 should not cost the other rows their scores.
type BatchItem struct {
	// Index is the request's position in the input slice.
	Index int `json:"index"`

	// Estimate is the result, nil when Err is set.
	Estimate *Estimate `json:"estimate,omitempty"`

	// Err is the per-item failure, if any.
	Err error `json:"-"`
}

// ScoreBatch evaluates requests concurrently with at most concurrency
// in-flight scores (<= 0 means GOMAXPROCS). Results keep input order.
// The only batch-level error is context cancellation.
func (e *Engine) ScoreBatch(ctx context.Context, reqs []Request, concurrency int) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	items := make([]BatchItem, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			est, err := e.Score(gctx, req)
			items[i] = BatchItem{Index: i, Estimate: est, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
