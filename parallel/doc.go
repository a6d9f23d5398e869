// Package parallel implements the fork-join reduction driver pairwise
// traversals run under: a system's occupied cells are split into batches,
// each batch is walked (and folded) independently on its own goroutine
// via golang.org/x/sync/errgroup, and the per-batch partial results are
// combined with a user-supplied (or numeric-default) associative
// combiner. There is no cancellation: when a batch fails, the remaining
// batches still run to completion, and the first error is returned after
// all of them finish.
package parallel
