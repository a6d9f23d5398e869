package neighborlist

import (
	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/celllist"
	"github.com/katalvlaran/cellmap/pairs"
	"github.com/katalvlaran/cellmap/parallel"
	"github.com/katalvlaran/cellmap/sysclass"
)

// Pair is one qualifying neighbor: original (1-based) particle indices
// I < J, and the squared minimum-image distance between them.
type Pair struct {
	I, J int
	D2   float64
}

// Option configures Build.
type Option func(*options)

type options struct {
	parallel bool
	workers  int
}

func defaultOptions() options {
	return options{}
}

// WithParallel forces parallel traversal via parallel.RunSingle with the
// given worker count; workers <= 0 uses sysclass.DefaultWorkers().
func WithParallel(workers int) Option {
	return func(o *options) {
		o.parallel = true
		o.workers = workers
	}
}

// Build finds every pair of particles in positions whose minimum-image
// distance (under b's periodic boundary) is <= cutoff.
//
// The cell grid and the periodic images are sized by b.Cutoff(), not by
// cutoff: with cutoff > b.Cutoff(), pairs farther apart than b.Cutoff()
// are not all found.
//
// Stage 1: hash positions into a celllist.CellList against box geometry b.
// Stage 2: classify the system (sysclass.Classify) to decide whether to
// traverse serially or via parallel.RunSingle, and whether to use the
// axis-projection dense-pruning path.
// Stage 3: fold pairs.WalkSingle/parallel.RunSingle into a []Pair.
func Build(positions [][]float64, b *box.Box, cutoff float64, opts ...Option) ([]Pair, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cl, err := celllist.New(positions, b)
	if err != nil {
		return nil, err
	}

	cutoffSq := cutoff * cutoff
	collect := func(acc []Pair, i, j int, d2 float64, pi, pj []float64) []Pair {
		return append(acc, Pair{I: i, J: j, D2: d2})
	}

	class := sysclass.Classify(len(positions), cl.NumOccupiedCells(), avgOccupancy(cl))
	pairOpts := []pairs.Option{pairs.WithSystemClass(class)}

	if o.parallel || class.ParallelDefault() {
		workers := o.workers
		if workers <= 0 {
			workers = sysclass.DefaultWorkers()
		}
		mapB, _ := sysclass.DefaultNBatches(workers)
		combine := func(a, b []Pair) []Pair { return append(a, b...) }

		return parallel.RunSingle(cl, cutoffSq, []Pair(nil), collect, combine, pairOpts,
			parallel.WithWorkers(workers), parallel.WithNBatches(mapB))
	}

	return pairs.WalkSingle(cl, cutoffSq, []Pair(nil), collect, pairOpts...)
}

func avgOccupancy(cl *celllist.CellList) float64 {
	occupied := cl.NumOccupiedCells()
	if occupied == 0 {
		return 0
	}
	return float64(cl.NumParticleEntries()) / float64(occupied)
}
