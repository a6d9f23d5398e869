package celllist

import (
	"fmt"

	"github.com/katalvlaran/cellmap/box"
)

// Update refreshes the CellList in place for a new set of positions
// (typically the next simulation step; the particle count and the box may
// differ from the previous build). If the
// box's cell grid dimensions are unchanged, Update clears only the cells
// that were previously non-empty instead of rescanning the whole grid;
// if the grid shape changed (e.g. the box resized), fp/npcell are
// reallocated fresh.
func (cl *CellList) Update(positions [][]float64, b *box.Box) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if len(positions) == 0 {
		return ErrEmptyPositions
	}
	if b == nil {
		return ErrNilBox
	}

	ndim := b.Ndim()
	for i, p := range positions {
		if len(p) != ndim {
			return fmt.Errorf("celllist: particle %d has %d dims, box has %d", i, len(p), ndim)
		}
	}

	nc := b.NC()
	total := 1
	for _, c := range nc {
		total *= c
	}

	if sameGrid(cl.fp, total) {
		cl.clearOccupied()
	} else {
		cl.fp = make([]int, total)
		cl.npcell = make([]int, total)
	}

	cl.box = b
	cl.atoms = cl.atoms[:1]
	cl.np = cl.np[:1]
	cl.ncp = 0

	if err := cl.insertAll(positions); err != nil {
		return err
	}
	cl.compact()

	return nil
}

func sameGrid(fp []int, total int) bool {
	return len(fp) == total
}

// clearOccupied resets fp/npcell only at the linear indices recorded in
// the current cwp, avoiding an O(total cells) scan when occupancy is
// sparse relative to the grid.
func (cl *CellList) clearOccupied() {
	for _, c := range cl.cwp {
		cl.fp[c.Linear] = 0
		cl.npcell[c.Linear] = 0
	}
}
