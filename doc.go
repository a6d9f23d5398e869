// Package cellmap is a spatial cell-list / periodic-boundary pair
// traversal engine: given a set of particle positions in an N-dimensional
// box (orthorhombic or triclinic), it hashes particles — plus their
// periodic images — into grid cells, then traverses every candidate pair
// within a cutoff distance exactly once, folding them through a
// user-supplied reducer.
//
// Package layout:
//
//	matrix/       — dense row-major matrices, LU decomposition, inverse
//	box/          — unit cell geometry, wrap/image arithmetic, cell addressing
//	cellindex/    — linear/Cartesian cell index conversion, forward-neighbor offsets
//	celllist/     — the spatial hash: linked atom chains with periodic images
//	pairs/        — pair traversal (single-set, two-set, dense-pruned)
//	sysclass/     — system size/density classification and tuning defaults
//	parallel/     — fork-join reduction driver over pairs traversals
//	neighborlist/ — top-level convenience API (Build)
//	cmd/cellmap-bench/ — benchmark/demo harness
//
// A minimal end-to-end use:
//
//	b, _ := box.NewOrtho([]float64{50, 50, 50}, 3)
//	cl, _ := celllist.New(positions, b)
//	count, _ := pairs.WalkSingle(cl, b.CutoffSq(), 0,
//	    func(acc int, i, j int, d2 float64, pi, pj []float64) int {
//	        return acc + 1
//	    })
//
// or, for the common case, neighborlist.Build(positions, b, cutoff) does
// all of the above in one call and picks parallelism/pruning defaults via
// sysclass.
package cellmap
