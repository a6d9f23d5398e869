package parallel

import (
	"github.com/katalvlaran/cellmap/celllist"
	"github.com/katalvlaran/cellmap/pairs"
)

// RunSingle parallelizes pairs.WalkSingle over cl's occupied cells:
// the occupied-cell list is split into batches (WithNBatches, default 1;
// neighborlist.Build passes sysclass.DefaultNBatches), each batch is folded independently on
// its own goroutine (WithWorkers bounds concurrency), and the per-batch
// partials are combined with combine. Because a pair is only ever
// discovered by its lexicographically-owning cell (the forward-neighbor
// invariant both pairs.WalkCells and pairs.WalkCellsDense rely on),
// batches never discover the same pair twice, so combine only needs to be
// associative — it does not need to deduplicate.
//
// pairOpts is resolved once via pairs.ResolveDense before batching starts,
// so every batch consistently uses pairs.WalkCellsDense (dense systems)
// or pairs.WalkCells (everything else) — the same choice pairs.WalkSingle
// would have made serially given the same options.
func RunSingle[T any](cl *celllist.CellList, cutoffSq float64, zero T, fn pairs.Func[T], combine func(a, b T) T, pairOpts []pairs.Option, opts ...Option) (T, error) {
	cells := cl.OccupiedCells()
	dense := pairs.ResolveDense(cl, pairOpts...)

	mapFn := func(start, end int) (T, error) {
		if dense {
			return pairs.WalkCellsDense(cl, cells[start:end], cutoffSq, zero, fn)
		}
		return pairs.WalkCells(cl, cells[start:end], cutoffSq, zero, fn)
	}

	return Run(len(cells), zero, mapFn, combine, opts...)
}

// RunPair parallelizes pairs.WalkPair over p.Small: the small-set index
// range is split into batches, each walked independently against p.Large
// (read-only) via pairs.WalkPairRange, and partials combined with
// combine. pairOpts is forwarded to every batch call unchanged, so
// WalkPairRange's own pairs.ResolveDense(p.Large, pairOpts...) check picks
// the same traversal strategy per batch that a serial WalkPair call would
// have.
func RunPair[T any](p *celllist.Pair, cutoffSq float64, zero T, fn pairs.Func[T], combine func(a, b T) T, pairOpts []pairs.Option, opts ...Option) (T, error) {
	mapFn := func(start, end int) (T, error) {
		return pairs.WalkPairRange(p, start, end, cutoffSq, zero, fn, pairOpts...)
	}

	return Run(len(p.Small), zero, mapFn, combine, opts...)
}
