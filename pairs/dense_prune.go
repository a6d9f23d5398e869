package pairs

import (
	"math"
	"sort"

	"github.com/katalvlaran/cellmap/celllist"
)

// collectProjected gathers every record in the chain at linear, projected
// onto axis 0, sorted ascending. Axis 0 is as good a pruning axis as any
// fixed axis for a roughly isotropic cutoff shell, and keeps the pruning
// pass allocation-light (no per-cell axis selection heuristic).
func collectProjected(cl *celllist.CellList, linear int) []projectedParticle {
	var out []projectedParticle
	cl.Walk(linear, func(a celllist.AtomRecord) bool {
		out = append(out, projectedParticle{
			slot:     a.Index,
			original: a.OriginalIndex,
			position: a.Position,
			proj:     a.Position[0],
		})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].proj < out[j].proj })

	return out
}

// prunedPairs visits only the candidate (left, right) record pairs whose
// axis-0 projections are within cutoff of each other, via a sliding
// two-pointer window over both sorted projection lists. This discards
// the many same-cell/neighbor-cell pairs whose projected distance alone
// already exceeds cutoff, without computing a full N-dimensional
// distance for them — the win grows with per-cell occupancy, which is
// exactly the regime sysclass classifies as MediumDense/LargeDense.
func prunedPairs(left, right []projectedParticle, cutoff float64, visit func(l, r projectedParticle)) {
	lo := 0
	for _, r := range right {
		for lo < len(left) && left[lo].proj < r.proj-cutoff {
			lo++
		}
		for hi := lo; hi < len(left) && left[hi].proj <= r.proj+cutoff; hi++ {
			visit(left[hi], r)
		}
	}
}

// WalkSingleDense is the axis-projection-pruned counterpart to WalkSingle,
// selected automatically via ResolveDense (or forced via
// WithDensePruning). Semantics are identical to WalkSingle; only the
// candidate-pair enumeration strategy inside each (cell, neighbor) visit
// differs.
func WalkSingleDense[T any](cl *celllist.CellList, cutoffSq float64, zero T, fn Func[T]) (T, error) {
	return WalkCellsDense(cl, cl.OccupiedCells(), cutoffSq, zero, fn)
}

// WalkCellsDense is WalkSingleDense restricted to a caller-supplied subset
// of occupied cells, the dense-pruning counterpart to WalkCells: used by
// parallel.RunSingle so a dense system's parallel traversal actually runs
// the axis-projection-pruned path per batch instead of silently falling
// back to the plain chain walk.
func WalkCellsDense[T any](cl *celllist.CellList, cells []celllist.Cell, cutoffSq float64, zero T, fn Func[T]) (T, error) {
	cutoff := math.Sqrt(cutoffSq)
	best := make(map[pairKey]bestMatch)
	b := cl.Box()
	nc := b.NC()

	for _, cell := range cells {
		left := collectProjected(cl, cell.Linear)

		for _, noff := range b.NeighborCells(cell.Cartesian) {
			if !b.InGrid(noff) {
				continue
			}
			nlinear := linearOf(noff, nc)
			sameCell := nlinear == cell.Linear

			right := left
			if !sameCell {
				right = collectProjected(cl, nlinear)
			}

			prunedPairs(left, right, cutoff, func(a, c projectedParticle) {
				if sameCell && c.slot <= a.slot {
					return
				}
				if a.original == c.original {
					return
				}

				d2 := squaredDistance(a.position, c.position)
				if d2 > cutoffSq {
					return
				}

				key := pairKey{i: a.original, j: c.original}
				posI, posJ := a.position, c.position
				if key.i > key.j {
					key.i, key.j = key.j, key.i
					posI, posJ = posJ, posI
				}

				if cur, ok := best[key]; !ok || d2 < cur.d2 {
					best[key] = bestMatch{d2: d2, posI: posI, posJ: posJ}
				}
			})
		}
	}

	return foldBest(best, zero, fn), nil
}
