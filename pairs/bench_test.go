package pairs_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/celllist"
	"github.com/katalvlaran/cellmap/pairs"
)

func randomCellList(b *testing.B, n int, side, cutoff float64) *celllist.CellList {
	b.Helper()
	rng := rand.New(rand.NewSource(11))
	positions := make([][]float64, n)
	for i := range positions {
		positions[i] = []float64{rng.Float64() * side, rng.Float64() * side, rng.Float64() * side}
	}
	bx, err := box.NewOrtho([]float64{side, side, side}, cutoff, box.WithLCell(1))
	if err != nil {
		b.Fatalf("setup box.NewOrtho failed: %v", err)
	}
	cl, err := celllist.New(positions, bx)
	if err != nil {
		b.Fatalf("setup celllist.New failed: %v", err)
	}
	return cl
}

// BenchmarkWalkSingle_Sparse measures traversal cost on a sparse 5000-particle
// cloud (cutoff well under average inter-particle spacing).
// Complexity: O(occupied_cells * avg_occupancy^2)
func BenchmarkWalkSingle_Sparse(b *testing.B) {
	cl := randomCellList(b, 5000, 100, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := pairs.WalkSingle(cl, cl.Box().CutoffSq(), 0, func(acc int, i, j int, d2 float64, pi, pj []float64) int {
			return acc + 1
		})
		if err != nil {
			b.Fatalf("WalkSingle failed: %v", err)
		}
	}
}

// BenchmarkWalkSingleDense measures the axis-projection-pruned path on the
// same cloud packed into a smaller box (forcing dense occupancy).
func BenchmarkWalkSingleDense(b *testing.B) {
	cl := randomCellList(b, 5000, 20, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := pairs.WalkSingleDense(cl, cl.Box().CutoffSq(), 0, func(acc int, i, j int, d2 float64, pi, pj []float64) int {
			return acc + 1
		})
		if err != nil {
			b.Fatalf("WalkSingleDense failed: %v", err)
		}
	}
}
