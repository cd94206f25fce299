package retry

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"
)

// JitterFraction is the maximum relative deviation applied to inter-batch delays
const JitterFraction = 0.3

// jitter returns a factor in [1-JitterFraction, 1+JitterFraction]. Tests replace it.
var jitter = func() float64 {
	return 1 + (rand.Float64()*2-1)*JitterFraction
}

// Jittered scales d by a random factor within ±JitterFraction.
func Jittered(d time.Duration) time.Duration {
	return time.Duration(float64(d) * jitter())
}

// ConcurrentMap applies fn to items in batches of size concurrency. Calls
// within a batch run in parallel; every call of a batch finishes before the
// next batch starts. Between batches (not after the last) it sleeps delay with
// jitter. Results are assembled by input index, so out[i] corresponds to
// items[i] regardless of completion order. The first error stops further
// batches and is returned alongside the results gathered so far.
func ConcurrentMap[T, R any](ctx context.Context, items []T, concurrency int, delay time.Duration, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	out := make([]R, len(items))

	for start := 0; start < len(items); start += concurrency {
		end := min(start+concurrency, len(items))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				r, err := fn(ctx, items[i])
				if err != nil {
					return err
				}
				out[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return out, err
		}

		if end < len(items) {
			if err := sleep(ctx, Jittered(delay)); err != nil {
				return out, err
			}
		}
	}

	return out, nil
}
