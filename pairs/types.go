package pairs

import (
	"errors"

	"github.com/katalvlaran/cellmap/celllist"
	"github.com/katalvlaran/cellmap/sysclass"
)

// ErrDimensionMismatch indicates a WalkPair input point's dimensionality
// does not match the box's.
var ErrDimensionMismatch = errors.New("pairs: dimension mismatch")

// Func folds one qualifying pair into an accumulator of type T. i and j
// are original (1-based) particle indices: for WalkSingle i < j; for
// WalkPair i indexes the caller's xs and j its ys. d2 is the squared
// minimum-image distance; posI/posJ are the corresponding minimum-image
// positions. Func is generic so WalkSingle/WalkPair never need to box the
// accumulator or allocate a []Pair slice purely to let the caller reduce
// it afterward — the fold happens inline, once, monomorphized per T.
type Func[T any] func(acc T, i, j int, d2 float64, posI, posJ []float64) T

// projectedParticle is dense_prune.go's scratch record: an atom record's
// slot, original index, full position, and its projection onto the
// pruning axis.
type projectedParticle struct {
	slot     int
	original int
	position []float64
	proj     float64
}

// Option configures a traversal call.
type Option func(*options)

type options struct {
	dense          bool
	denseThreshold int
	systemClass    sysclass.Class
	hasClass       bool
}

func defaultOptions() options {
	return options{}
}

// WithDensePruning forces the axis-projection pruning path regardless of
// threshold/class checks; WalkSingle/WalkPair otherwise pick it
// automatically per ResolveDense.
func WithDensePruning() Option {
	return func(o *options) { o.dense = true }
}

// WithDenseThreshold activates axis-projection pruning once a CellList's
// average per-cell occupancy (NumParticleEntries / NumOccupiedCells)
// reaches threshold, without requiring the caller to pre-classify the
// system via sysclass. threshold <= 0 leaves the check disabled (the
// default); WithDensePruning and WithSystemClass both take precedence
// over it when also given.
func WithDenseThreshold(threshold int) Option {
	return func(o *options) { o.denseThreshold = threshold }
}

// WithSystemClass overrides automatic/threshold-based dense detection
// with a caller-supplied sysclass.Class verdict (via Class.Dense()),
// for callers that already classified the system once (e.g. neighborlist)
// and don't want WalkSingle/WalkPair to recompute occupancy.
func WithSystemClass(class sysclass.Class) Option {
	return func(o *options) {
		o.systemClass = class
		o.hasClass = true
	}
}

// ResolveDense reports whether opts select the axis-projection
// dense-pruning path for a traversal over cl: WithDensePruning forces it,
// WithSystemClass defers to sysclass.Class.Dense(), and
// WithDenseThreshold compares cl's current average per-cell occupancy
// against the given threshold. WalkSingle/WalkPairRange call this
// internally, and parallel.RunSingle calls it once up front so every
// sharded batch picks the same traversal strategy the serial path would
// have chosen.
func ResolveDense(cl *celllist.CellList, opts ...Option) bool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.dense {
		return true
	}
	if o.hasClass {
		return o.systemClass.Dense()
	}
	if o.denseThreshold > 0 {
		occupied := cl.NumOccupiedCells()
		if occupied == 0 {
			return false
		}
		avg := float64(cl.NumParticleEntries()) / float64(occupied)
		return avg >= float64(o.denseThreshold)
	}

	return false
}
