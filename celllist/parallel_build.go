package celllist

import (
	"golang.org/x/sync/errgroup"
)

// runParallel partitions [0,n) into batches contiguous index ranges and
// runs fn over each index concurrently via errgroup, bounded to workers
// concurrent batches at a time. Every batch runs even after one fails (a
// failing batch stops at its own failing index); the first error is
// returned once all batches finish. Batches (not individual indices) are dispatched, since fn's real
// cost is the image enumeration inside it, not loop overhead. batches may
// exceed workers (celllist.WithBatches) so that a few expensive particles
// (many periodic images near a box corner) don't leave the remaining
// workers idle waiting on one oversized batch.
func runParallel(n, batches, workers int, fn func(idx int) error) error {
	if workers < 1 {
		workers = 1
	}
	if batches < 1 {
		batches = workers
	}
	if batches > n {
		batches = n
	}
	if batches <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	batchSize := (n + batches - 1) / batches

	var g errgroup.Group
	g.SetLimit(workers)
	for w := 0; w < batches; w++ {
		start := w * batchSize
		end := start + batchSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
