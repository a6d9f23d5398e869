package cellindex

import "sync"

// Linear maps a Cartesian cell coordinate to a row-major linear index.
// cart[0] is the fastest-varying axis, generalizing gridgraph's
// index(x,y) = y*Width + x to N dimensions.
// Complexity: O(ndim).
func Linear(cart []int, nc []int) int {
	idx := 0
	stride := 1
	for i := 0; i < len(cart); i++ {
		idx += cart[i] * stride
		stride *= nc[i]
	}

	return idx
}

// Cartesian converts a row-major linear index back to per-axis coordinates.
// Complexity: O(ndim).
func Cartesian(linear int, nc []int) []int {
	cart := make([]int, len(nc))
	for i := 0; i < len(nc); i++ {
		cart[i] = linear % nc[i]
		linear /= nc[i]
	}

	return cart
}

// offsetKey identifies a (dimension, radius) pair for memoization.
type offsetKey struct {
	ndim, radius int
}

var offsetCache sync.Map // offsetKey -> [][]int

// ForwardOffsets returns the fixed set of neighbor-cell offsets a cell must
// visit to enumerate every unordered cell pair exactly once: the zero
// offset (self) first, followed by every nonzero offset within radius
// (inclusive, per axis) that is "forward" under a fixed lexicographic
// order. radius is lcell+1 per the cutoff/lcell cell-edge relationship.
//
// Forward is defined by scanning axes from last to first and taking the
// sign of the first nonzero component; for any nonzero offset d exactly
// one of {d, -d} is forward, so neighbor_cells(A) union neighbor_cells(B)
// visits the unordered pair {A,B} exactly once.
//
// Results are memoized per (ndim, radius) since the same box reuses the
// same offset set for every non-empty cell.
func ForwardOffsets(ndim int, radius int) [][]int {
	key := offsetKey{ndim: ndim, radius: radius}
	if cached, ok := offsetCache.Load(key); ok {
		return cached.([][]int)
	}

	offsets := make([][]int, 0)
	offsets = append(offsets, make([]int, ndim)) // zero offset (self) first

	cur := make([]int, ndim)
	var rec func(axis int)
	rec = func(axis int) {
		if axis == ndim {
			if isZero(cur) {
				return // already appended above
			}
			if isForward(cur) {
				cp := make([]int, ndim)
				copy(cp, cur)
				offsets = append(offsets, cp)
			}
			return
		}
		for d := -radius; d <= radius; d++ {
			cur[axis] = d
			rec(axis + 1)
		}
		cur[axis] = 0
	}
	rec(0)

	offsetCache.Store(key, offsets)

	return offsets
}

func isZero(d []int) bool {
	for _, v := range d {
		if v != 0 {
			return false
		}
	}

	return true
}

// isForward reports whether d is "forward" under the last-axis-first
// lexicographic tie-break: the sign of the last nonzero component.
func isForward(d []int) bool {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] > 0 {
			return true
		}
		if d[i] < 0 {
			return false
		}
	}

	return true // all zero
}
