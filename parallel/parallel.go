package parallel

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// Addable constrains RunSum's accumulator to types "+" works on.
type Addable interface {
	constraints.Integer | constraints.Float
}

// AbortedError wraps the first batch error a Run/RunPair call observed,
// identifying which batch produced it.
type AbortedError struct {
	Batch int
	Err   error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("parallel: batch %d aborted: %v", e.Batch, e.Err)
}

func (e *AbortedError) Unwrap() error { return e.Err }

// Option configures a Run/RunPair call.
type Option func(*options)

type options struct {
	workers    int
	nBatches   int
	progress   func(done, total int)
	defaultAdd bool
}

func defaultOptions() options {
	return options{workers: 1, nBatches: 1}
}

// WithWorkers sets the number of goroutines batches run on concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithNBatches sets how many batches the input range [0, n) is split
// into. More batches than workers smooths out uneven per-item cost;
// sysclass.DefaultNBatches picks a reasonable default ratio.
func WithNBatches(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.nBatches = n
		}
	}
}

// WithProgress registers a callback invoked after each batch completes,
// reporting batches done out of the total dispatched.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) { o.progress = fn }
}

// WithDefaultAdd is a marker option for RunSum call sites that want to be
// explicit in their option list that "+" is the combiner, even though
// RunSum always uses it; it has no effect on Run itself.
func WithDefaultAdd() Option {
	return func(o *options) { o.defaultAdd = true }
}

// Run partitions [0, n) into batches, computes mapFn over each batch
// concurrently (bounded by WithWorkers), and folds the partial results
// with combine in batch order — so the result is identical regardless of
// how many workers or batches were used, as long as combine is
// associative. There is no cancellation: every batch runs to completion
// even after another batch fails, and Run then returns the first error
// as an *AbortedError.
func Run[T any](n int, zero T, mapFn func(start, end int) (T, error), combine func(a, b T) T, opts ...Option) (T, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if n <= 0 {
		return zero, nil
	}

	nBatches := o.nBatches
	if nBatches > n {
		nBatches = n
	}
	if nBatches < 1 {
		nBatches = 1
	}
	batchSize := (n + nBatches - 1) / nBatches
	nBatches = (n + batchSize - 1) / batchSize // drop batches left empty by rounding

	partials := make([]T, nBatches)

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(o.workers)

	total := nBatches
	done := 0
	var progressMu sync.Mutex
	for b := 0; b < nBatches; b++ {
		b := b
		start := b * batchSize
		end := start + batchSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			r, err := mapFn(start, end)
			if err != nil {
				return &AbortedError{Batch: b, Err: err}
			}
			partials[b] = r
			if o.progress != nil {
				progressMu.Lock()
				done++
				o.progress(done, total)
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return zero, err
	}

	acc := zero
	for _, p := range partials {
		acc = combine(acc, p)
	}

	return acc, nil
}

// RunSum is Run specialized to numeric accumulation via "+", for the
// common case of reducing a traversal to a scalar (pair count, total
// energy, etc.).
func RunSum[T Addable](n int, mapFn func(start, end int) (T, error), opts ...Option) (T, error) {
	var zero T
	return Run(n, zero, mapFn, func(a, b T) T { return a + b }, opts...)
}
