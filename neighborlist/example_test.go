package neighborlist_test

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/neighborlist"
)

// ExampleBuild finds every pair of particles within cutoff in a small
// periodic box, printing them in a stable order.
func ExampleBuild() {
	b, _ := box.NewOrtho([]float64{10, 10, 10}, 2, box.WithLCell(1))
	positions := [][]float64{
		{1, 1, 1},
		{1.5, 1, 1},
		{8, 8, 8},
	}

	found, _ := neighborlist.Build(positions, b, 2)
	sort.Slice(found, func(i, j int) bool {
		if found[i].I != found[j].I {
			return found[i].I < found[j].I
		}
		return found[i].J < found[j].J
	})
	for _, p := range found {
		fmt.Printf("pair (%d,%d) d2=%.2f\n", p.I, p.J, p.D2)
	}
	// Output:
	// pair (1,2) d2=0.25
}
