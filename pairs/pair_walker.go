package pairs

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/celllist"
	"github.com/katalvlaran/cellmap/cellindex"
)

// crossKey identifies a (x-set index, y-set index) pair, both 1-based
// against the caller's original xs/ys slices.
type crossKey struct{ x, y int }

// WalkPair folds fn over every (x, y) pair within cutoff between the two
// sets a celllist.Pair was built from. fn always receives indices in the
// caller's original (xs, ys) order, regardless of which side NewPair
// chose to hash (Pair.Swap is resolved internally).
//
// Unlike WalkSingle, x and y live in disjoint index spaces, so no
// same-particle exclusion is applied — every (x, y) combination within
// cutoff is a candidate, deduplicated only across that pair's own
// periodic images (minimum-image convention).
func WalkPair[T any](p *celllist.Pair, cutoffSq float64, zero T, fn Func[T], opts ...Option) (T, error) {
	return WalkPairRange(p, 0, len(p.Small), cutoffSq, zero, fn, opts...)
}

// WalkPairRange is WalkPair restricted to the small-set index range
// [start, end): used by parallel.RunPair to shard WalkPair's work while
// still reporting each particle's true (1-based) index in the caller's
// original Small slice, not an index relative to the shard.
//
// ResolveDense(p.Large, opts...) picks the candidate-enumeration strategy
// per neighbor cell: the plain chain walk, or (for dense systems) a
// binary search into that cell's axis-0 projection, narrowing the scan to
// entries within cutoff of the probe point's own projection before any
// full distance is computed.
func WalkPairRange[T any](p *celllist.Pair, start, end int, cutoffSq float64, zero T, fn Func[T], opts ...Option) (T, error) {
	b := p.Large.Box()
	nc := b.NC()
	offsets := allOffsets(b)
	cutoff := math.Sqrt(cutoffSq)
	dense := ResolveDense(p.Large, opts...)

	best := make(map[crossKey]bestMatch)

	ndim := b.Ndim()
	for idx := start; idx < end; idx++ {
		smallIdx := idx
		point := p.Small[idx]
		if len(point) != ndim {
			return zero, fmt.Errorf("%w: point %d has %d dims, box has %d", ErrDimensionMismatch, idx, len(point), ndim)
		}
		for _, img := range replicate(b, point) {
			cell := b.CellOf(img)
			for _, off := range offsets {
				cart := make([]int, len(cell))
				for i := range cell {
					cart[i] = cell[i] + off[i]
				}
				if !b.InGrid(cart) {
					continue
				}
				linear := cellindex.Linear(cart, nc)

				visit := func(a celllist.AtomRecord) {
					d2 := squaredDistance(img, a.Position)
					if d2 > cutoffSq {
						return
					}

					var key crossKey
					if p.Swap {
						key = crossKey{x: a.OriginalIndex, y: smallIdx + 1}
					} else {
						key = crossKey{x: smallIdx + 1, y: a.OriginalIndex}
					}

					if cur, ok := best[key]; !ok || d2 < cur.d2 {
						posX, posY := img, a.Position
						if p.Swap {
							posX, posY = a.Position, img
						}
						best[key] = bestMatch{d2: d2, posI: posX, posJ: posY}
					}
				}

				if dense {
					proj := collectProjected(p.Large, linear)
					lo := sort.Search(len(proj), func(k int) bool { return proj[k].proj >= img[0]-cutoff })
					for ; lo < len(proj) && proj[lo].proj <= img[0]+cutoff; lo++ {
						visit(celllist.AtomRecord{
							Index:         proj[lo].slot,
							OriginalIndex: proj[lo].original,
							Position:      proj[lo].position,
						})
					}
				} else {
					p.Large.Walk(linear, func(a celllist.AtomRecord) bool {
						visit(a)
						return true
					})
				}
			}
		}
	}

	return foldCross(best, zero, fn), nil
}

func foldCross[T any](best map[crossKey]bestMatch, zero T, fn Func[T]) T {
	keys := make([]crossKey, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(x, y int) bool {
		if keys[x].x != keys[y].x {
			return keys[x].x < keys[y].x
		}
		return keys[x].y < keys[y].y
	})

	acc := zero
	for _, k := range keys {
		m := best[k]
		acc = fn(acc, k.x, k.y, m.d2, m.posI, m.posJ)
	}

	return acc
}

// replicate wraps point and enumerates its surviving periodic images,
// mirroring celllist's own build-time replication so WalkPair probes
// exactly the same candidate set a CellList would have hashed the point
// into had it been part of Large.
func replicate(b *box.Box, point []float64) [][]float64 {
	wrapped, err := b.Wrap(point)
	if err != nil {
		return nil
	}

	ranges := b.ImageRanges()
	var out [][]float64
	r := make([]int, len(ranges))

	var walk func(axis int)
	walk = func(axis int) {
		if axis == len(ranges) {
			img := b.Image(wrapped, r)
			if b.InExpandedBox(img) {
				out = append(out, img)
			}
			return
		}
		for v := ranges[axis][0]; v <= ranges[axis][1]; v++ {
			r[axis] = v
			walk(axis + 1)
		}
		r[axis] = 0
	}
	walk(0)

	return out
}

// allOffsets returns the full (not forward-only) neighbor offset set:
// WalkPair has no "visit each unordered cell pair once" symmetry to
// exploit, since the two sides are disjoint, so it must look in every
// direction around each probe cell.
func allOffsets(b *box.Box) [][]int {
	forward := cellindex.ForwardOffsets(b.Ndim(), b.LCell()+1)
	seen := make(map[string]bool)
	var out [][]int
	add := func(d []int) {
		k := key(d)
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, d)
	}
	for _, d := range forward {
		add(d)
		neg := make([]int, len(d))
		for i, v := range d {
			neg[i] = -v
		}
		add(neg)
	}

	return out
}

func key(d []int) string {
	b := make([]byte, 0, len(d)*4)
	for _, v := range d {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return string(b)
}
