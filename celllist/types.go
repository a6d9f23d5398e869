package celllist

import (
	"errors"
	"sync"

	"github.com/katalvlaran/cellmap/box"
)

// Sentinel errors for celllist operations.
var (
	// ErrEmptyPositions is returned when New/Update is given zero particles.
	ErrEmptyPositions = errors.New("celllist: positions must be non-empty")

	// ErrNilBox is returned when a nil *box.Box is passed to a constructor.
	ErrNilBox = errors.New("celllist: box is nil")
)

// AtomRecord is one particle slot: either an original particle or one of
// its periodic-image copies. Index is the slot's position in the backing
// array (1-based; 0 is the sentinel/"no record" value used by chain heads
// and terminators). OriginalIndex is the user-facing particle id
// (1..Nparticles), shared by a particle and all of its images.
type AtomRecord struct {
	Index         int
	OriginalIndex int
	Position      []float64
}

// Cell describes one non-empty grid cell.
type Cell struct {
	Linear    int
	Cartesian []int
	Center    []float64
}

// Option configures CellList construction.
type Option func(*options)

type options struct {
	parallel bool
	workers  int
	batches  int
}

func defaultOptions() options {
	return options{parallel: false, workers: 1}
}

// WithParallelBuild enables parallel computation of per-particle periodic
// images during New/Update (the chain-linking step itself stays serial so
// slot indices remain deterministic).
func WithParallelBuild(workers int) Option {
	return func(o *options) {
		o.parallel = true
		if workers >= 1 {
			o.workers = workers
		}
	}
}

// WithBatches decouples the number of image-computation batches from the
// worker count WithParallelBuild sets: more batches than workers smooths
// out per-particle cost variance (a particle near a corner enumerates far
// more images than one near a cell center), the same map/reduce-batch
// split parallel.WithNBatches gives the traversal drivers. n < 1 is
// ignored (falls back to one batch per worker, WithParallelBuild's
// default). There is a single batched phase here, not a separate
// map/reduce pair — insertAll's link step is strictly serial for
// determinism, so only one batch count applies.
func WithBatches(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.batches = n
		}
	}
}

// CellList is the spatial hash: non-empty cells (cwp), per-cell chain
// heads (fp), per-slot next-pointers (np), and per-cell occupancy counts
// (npcell), all over a flat backing array of AtomRecord.
//
// Concurrency: mu guards every field below. The exported accessors (Box,
// NumOccupiedCells, NumParticleEntries, OccupiedCells) take RLock and
// Update takes the write lock; Walk and Atom take no lock, so a traversal
// built on them must not run concurrently with Update on the same list.
type CellList struct {
	mu sync.RWMutex

	box *box.Box

	atoms []AtomRecord // atoms[0] is the sentinel; real records start at 1
	fp    []int        // fp[linear cell] = head slot index, or 0 if empty
	np    []int        // np[slot] = next slot in chain, or 0 at chain end

	npcell []int // npcell[linear cell] = occupancy count
	cwp    []Cell

	ncwp int
	ncp  int

	opts options
}

// Box returns the CellList's current box geometry.
func (cl *CellList) Box() *box.Box {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.box
}

// NumOccupiedCells returns ncwp: the number of cells containing >=1 particle.
func (cl *CellList) NumOccupiedCells() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.ncwp
}

// NumParticleEntries returns ncp: the number of particle entries including
// periodic-image copies.
func (cl *CellList) NumParticleEntries() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.ncp
}

// OccupiedCells returns a copy of cwp: the compact list of non-empty cells.
func (cl *CellList) OccupiedCells() []Cell {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	out := make([]Cell, len(cl.cwp))
	copy(out, cl.cwp)
	return out
}

// chainHead returns the head slot index of the given linear cell's chain
// (0 if empty).
func (cl *CellList) chainHead(linear int) int {
	return cl.fp[linear]
}

// next returns the next slot in a chain (0 at chain end).
func (cl *CellList) next(slot int) int {
	return cl.np[slot]
}

// Atom returns the record at the given 1-based slot index.
func (cl *CellList) Atom(slot int) AtomRecord {
	return cl.atoms[slot]
}

// Walk invokes visit(record) for every record in the chain rooted at the
// given linear cell index, stopping early if visit returns false.
// Walk takes no lock; it must not overlap an Update of the same list.
func (cl *CellList) Walk(linear int, visit func(AtomRecord) bool) {
	for slot := cl.chainHead(linear); slot != 0; slot = cl.next(slot) {
		if !visit(cl.atoms[slot]) {
			return
		}
	}
}

// Pair bundles a two-set traversal input: the smaller set kept as a flat
// array (Small), the larger set hashed into a CellList (Large). Swap
// records whether the user's (x,y) ordering was reversed to achieve this,
// so callers can restore the original (i,j) ordering.
type Pair struct {
	Small [][]float64
	Large *CellList
	Swap  bool
}
