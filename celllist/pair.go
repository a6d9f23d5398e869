package celllist

import (
	"github.com/katalvlaran/cellmap/box"
)

// NewPair builds a two-set traversal input from xs and ys: whichever set
// is smaller is kept flat (Small), and the larger set is hashed into a
// CellList (Large), since hashing costs O(M) but probing a flat set
// against a hash costs O(1) per probe — the traversal engine should pay
// the hashing cost once on the larger side. Swap reports whether (xs, ys)
// were reversed to achieve that, so traversal callers can restore the
// caller's original index ordering in emitted pairs.
func NewPair(xs, ys [][]float64, b *box.Box, opts ...Option) (*Pair, error) {
	if len(xs) <= len(ys) {
		large, err := New(ys, b, opts...)
		if err != nil {
			return nil, err
		}

		return &Pair{Small: xs, Large: large, Swap: false}, nil
	}

	large, err := New(xs, b, opts...)
	if err != nil {
		return nil, err
	}

	return &Pair{Small: ys, Large: large, Swap: true}, nil
}
