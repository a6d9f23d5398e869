package pairs

import (
	"sort"

	"github.com/katalvlaran/cellmap/celllist"
)

// pairKey identifies an unordered pair of original particle indices,
// i < j always.
type pairKey struct{ i, j int }

type bestMatch struct {
	d2         float64
	posI, posJ []float64
}

// WalkSingle folds fn over every unordered pair of distinct original
// particles in cl whose minimum-image distance is <= sqrt(cutoffSq),
// visiting each pair exactly once.
//
// Because cl already carries periodic-image copies of every particle
// (celllist.New/Update replicate across the box's image ranges), a given
// unordered pair of original indices can have more than one image
// combination within cutoff near a boundary; WalkSingle keeps only the
// minimum-distance image per pair (the minimum-image convention) before
// folding, and always excludes a particle's images paired with itself.
//
// Complexity: O(occupied cells x average per-cell occupancy²), i.e.
// O(N) for a roughly uniform particle density at fixed cutoff.
func WalkSingle[T any](cl *celllist.CellList, cutoffSq float64, zero T, fn Func[T], opts ...Option) (T, error) {
	if ResolveDense(cl, opts...) {
		return WalkSingleDense(cl, cutoffSq, zero, fn)
	}

	return WalkCells(cl, cl.OccupiedCells(), cutoffSq, zero, fn)
}

// WalkCells is WalkSingle restricted to a caller-supplied subset of
// occupied cells, used by parallel.RunSingle to shard traversal work: a
// cell only ever discovers a pair via its own forward-neighbor offsets
// (cellindex.ForwardOffsets), so partitioning the occupied-cell list into
// disjoint batches and running WalkCells on each batch independently
// finds every pair exactly once, with no cross-batch coordination needed
// beyond the (read-only) neighbor-cell chain walks.
func WalkCells[T any](cl *celllist.CellList, cells []celllist.Cell, cutoffSq float64, zero T, fn Func[T]) (T, error) {
	best := make(map[pairKey]bestMatch)
	b := cl.Box()
	nc := b.NC()

	for _, cell := range cells {
		for _, noff := range b.NeighborCells(cell.Cartesian) {
			if !b.InGrid(noff) {
				continue
			}
			nlinear := linearOf(noff, nc)
			sameCell := nlinear == cell.Linear

			cl.Walk(cell.Linear, func(a celllist.AtomRecord) bool {
				cl.Walk(nlinear, func(c celllist.AtomRecord) bool {
					if sameCell && c.Index <= a.Index {
						return true
					}
					if a.OriginalIndex == c.OriginalIndex {
						return true // same particle, different periodic image
					}

					d2 := squaredDistance(a.Position, c.Position)
					if d2 > cutoffSq {
						return true
					}

					key := pairKey{i: a.OriginalIndex, j: c.OriginalIndex}
					posI, posJ := a.Position, c.Position
					if key.i > key.j {
						key.i, key.j = key.j, key.i
						posI, posJ = posJ, posI
					}

					if cur, ok := best[key]; !ok || d2 < cur.d2 {
						best[key] = bestMatch{d2: d2, posI: posI, posJ: posJ}
					}

					return true
				})

				return true
			})
		}
	}

	return foldBest(best, zero, fn), nil
}

// foldBest folds fn over best in a fixed (sorted) order so that the
// result of a reduction is independent of map iteration order and of
// however many workers a parallel driver used to build it.
func foldBest[T any](best map[pairKey]bestMatch, zero T, fn Func[T]) T {
	keys := make([]pairKey, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(x, y int) bool {
		if keys[x].i != keys[y].i {
			return keys[x].i < keys[y].i
		}
		return keys[x].j < keys[y].j
	})

	acc := zero
	for _, k := range keys {
		m := best[k]
		acc = fn(acc, k.i, k.j, m.d2, m.posI, m.posJ)
	}

	return acc
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

func linearOf(cart []int, nc []int) int {
	idx := 0
	stride := 1
	for i := 0; i < len(cart); i++ {
		idx += cart[i] * stride
		stride *= nc[i]
	}

	return idx
}
