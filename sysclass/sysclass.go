package sysclass

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Class is a coarse bucket describing a system's size and density, used
// to pick parallelism and traversal-strategy defaults.
type Class int

const (
	// Tiny systems are not worth parallelizing: driver overhead would
	// dominate the actual pairwise work.
	Tiny Class = iota
	// MediumSparse systems are worth parallelizing with the plain
	// cell-chain walk.
	MediumSparse
	// MediumDense systems benefit from axis-projection pruning inside
	// each cell/neighbor-cell visit.
	MediumDense
	// LargeSparse systems are worth parallelizing aggressively with the
	// plain cell-chain walk.
	LargeSparse
	// LargeDense systems benefit from both aggressive parallelism and
	// axis-projection pruning.
	LargeDense
)

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case Tiny:
		return "tiny"
	case MediumSparse:
		return "medium-sparse"
	case MediumDense:
		return "medium-dense"
	case LargeSparse:
		return "large-sparse"
	case LargeDense:
		return "large-dense"
	default:
		return "unknown"
	}
}

// Thresholds separating size/density buckets. These are tuning defaults,
// not correctness-affecting constants; WithX options elsewhere let
// callers override the resulting worker/batch counts directly.
const (
	tinyParticleCeiling = 512
	largeParticleFloor  = 200000
	denseOccupancyFloor = 24.0 // avg particles per occupied cell
)

// Classify buckets a system by particle count and average cell
// occupancy (nParticles / ncwp, including periodic-image copies).
func Classify(nParticles, ncwp int, avgOccupancy float64) Class {
	if nParticles <= tinyParticleCeiling {
		return Tiny
	}

	dense := avgOccupancy >= denseOccupancyFloor
	large := nParticles >= largeParticleFloor

	switch {
	case large && dense:
		return LargeDense
	case large:
		return LargeSparse
	case dense:
		return MediumDense
	default:
		return MediumSparse
	}
}

// Dense reports whether c warrants axis-projection pruning.
func (c Class) Dense() bool {
	return c == MediumDense || c == LargeDense
}

// ParallelDefault reports whether c warrants a parallel traversal driver
// at all (Tiny systems should just run serially).
func (c Class) ParallelDefault() bool {
	return c != Tiny
}

// DefaultNBatches picks map/reduce batch counts for parallel.Run given a
// worker count: several batches per worker smooths out uneven per-cell
// cost, without creating so many batches that per-batch overhead
// dominates.
func DefaultNBatches(workers int) (mapBatches, reduceBatches int) {
	if workers < 1 {
		workers = 1
	}

	mapBatches = workers * 4
	reduceBatches = workers

	return mapBatches, reduceBatches
}

// DefaultWorkers returns GOMAXPROCS as the default worker count. On AMD64
// with AVX2 available, memory-level parallelism tends to be higher, so the
// default is nudged up by one extra worker (only when GOMAXPROCS > 1);
// this is a narrow heuristic, not general SIMD dispatch.
func DefaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if cpu.X86.HasAVX2 && n > 1 {
		n++
	}

	return n
}
