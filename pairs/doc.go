// Package pairs implements the pair traversal engines: given a built
// celllist.CellList (and, for two-set traversal, a celllist.Pair), it
// walks every candidate pair of particles within cutoff exactly once and
// folds a user-supplied reducer over the survivors.
//
// Both WalkSingle and WalkPair are built on the same two primitives the
// box/cellindex packages expose: box.NeighborCells (forward-only cell
// enumeration, so every unordered cell pair is visited exactly once) and
// celllist's per-cell atom chains (which already contain periodic-image
// copies, so minimum-image selection is a pure reduction over candidate
// distances rather than a geometric computation at traversal time).
//
// dense_prune.go adds an axis-projection pruning pass, used when
// ResolveDense selects it: a sysclass.MediumDense/LargeDense class passed
// via WithSystemClass, an occupancy threshold (WithDenseThreshold), or
// WithDensePruning. It targets systems where per-cell occupancy
// is high enough that a sorted-projection two-pointer window discards
// more candidates per comparison than the plain chain walk.
package pairs
