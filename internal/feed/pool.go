package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// parallel runs fn(0..n-1) on a bounded ants pool and waits for all of them.
// Callers write results into index i, which keeps input order without sorting.
func parallel(ctx context.Context, workers, n int, fn func(ctx context.Context, i int)) error {
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}

	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		idx := i
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(ctx, idx)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("failed to submit job to worker pool: %w", err)
		}
	}
	wg.Wait()
	return ctx.Err()
}
