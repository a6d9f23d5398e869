package celllist

import (
	"fmt"

	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/cellindex"
)

// New builds a CellList from a flat set of particle positions and a Box
// geometry: every particle is wrapped into the primary cell, replicated
// across its periodic images within the box's image ranges, and each
// resulting copy is filed into the grid cell it falls in.
//
// Stage 1 (Validate): non-empty positions, non-nil box, uniform
// dimensionality.
// Stage 2 (Allocate): size fp/npcell to prod(nc), pre-size atoms/np.
// Stage 3 (Insert): for every particle, wrap then walk the Cartesian
// product of per-axis image offsets, keeping only copies that land inside
// the expanded box; each surviving copy is linked at the head of its
// cell's chain (ncp is counted as each copy is linked).
// Stage 4 (Compact): derive cwp, ncwp from the populated fp.
func New(positions [][]float64, b *box.Box, opts ...Option) (*CellList, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyPositions
	}
	if b == nil {
		return nil, ErrNilBox
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ndim := b.Ndim()
	for i, p := range positions {
		if len(p) != ndim {
			return nil, fmt.Errorf("celllist: particle %d has %d dims, box has %d", i, len(p), ndim)
		}
	}

	nc := b.NC()
	total := 1
	for _, c := range nc {
		total *= c
	}

	cl := &CellList{
		box:    b,
		atoms:  make([]AtomRecord, 1, len(positions)+1),
		np:     make([]int, 1, len(positions)+1),
		fp:     make([]int, total),
		npcell: make([]int, total),
		opts:   o,
	}

	if err := cl.insertAll(positions); err != nil {
		return nil, err
	}
	cl.compact()

	return cl, nil
}

// insertAll wraps and replicates every particle, linking surviving copies
// into their cells' chains. The per-particle candidate computation
// (wrap + image enumeration + expanded-box filter) is embarrassingly
// parallel; the link step that follows is kept strictly serial so that
// slot indices — and therefore traversal order — stay deterministic
// regardless of worker count.
func (cl *CellList) insertAll(positions [][]float64) error {
	candidates, err := cl.computeCandidates(positions)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		cl.link(c.originalIndex, c.position, c.linear)
	}

	return nil
}

type candidate struct {
	originalIndex int
	position      []float64
	linear        int
}

// computeCandidates produces, per particle, every periodic-image copy
// that lands inside the expanded box, tagged with its destination cell's
// linear index. Order within a single particle's image list is fixed
// (image-range iteration order), and particles are processed in input
// order, regardless of whether WithParallelBuild is set — parallelism
// only changes which goroutine computes a given particle's candidates,
// never the order they are appended in.
func (cl *CellList) computeCandidates(positions [][]float64) ([]candidate, error) {
	b := cl.box
	ranges := b.ImageRanges()
	nc := b.NC()

	perParticle := make([][]candidate, len(positions))

	compute := func(idx int) error {
		p := positions[idx]
		wrapped, werr := b.Wrap(p)
		if werr != nil {
			return werr
		}

		var out []candidate
		r := make([]int, len(ranges))
		var walk func(axis int)
		walk = func(axis int) {
			if axis == len(ranges) {
				point := b.Image(wrapped, r)
				if !b.InExpandedBox(point) {
					return
				}
				cart := b.CellOf(point)
				if !b.InGrid(cart) {
					return
				}
				out = append(out, candidate{
					originalIndex: idx + 1,
					position:      point,
					linear:        cellindex.Linear(cart, nc),
				})
				return
			}
			for v := ranges[axis][0]; v <= ranges[axis][1]; v++ {
				r[axis] = v
				walk(axis + 1)
			}
			r[axis] = 0
		}
		walk(0)

		perParticle[idx] = out
		return nil
	}

	if cl.opts.parallel {
		if err := runParallel(len(positions), cl.opts.batches, cl.opts.workers, compute); err != nil {
			return nil, err
		}
	} else {
		for i := range positions {
			if err := compute(i); err != nil {
				return nil, err
			}
		}
	}

	var total int
	for _, c := range perParticle {
		total += len(c)
	}
	all := make([]candidate, 0, total)
	for _, c := range perParticle {
		all = append(all, c...)
	}

	return all, nil
}

// link appends one new AtomRecord slot and inserts it at the head of the
// chain for linear cell idx.
func (cl *CellList) link(originalIndex int, position []float64, linear int) {
	slot := len(cl.atoms)
	cl.atoms = append(cl.atoms, AtomRecord{
		Index:         slot,
		OriginalIndex: originalIndex,
		Position:      position,
	})
	cl.np = append(cl.np, cl.fp[linear])
	cl.fp[linear] = slot
	cl.npcell[linear]++
	cl.ncp++
}

// compact rebuilds cwp/ncwp from fp/npcell.
func (cl *CellList) compact() {
	nc := cl.box.NC()
	cl.cwp = cl.cwp[:0]
	cl.ncwp = 0
	for linear, head := range cl.fp {
		if head == 0 {
			continue
		}
		cart := cellindex.Cartesian(linear, nc)
		cl.cwp = append(cl.cwp, Cell{
			Linear:    linear,
			Cartesian: cart,
			Center:    cl.cellCenter(cart),
		})
		cl.ncwp++
	}
}

// cellCenter computes the geometric center of a Cartesian cell in the
// expanded-box coordinate frame.
func (cl *CellList) cellCenter(cart []int) []float64 {
	b := cl.box
	edge := b.Cutoff() / float64(b.LCell())
	center := make([]float64, len(cart))
	for i, c := range cart {
		center[i] = -b.Cutoff() + (float64(c)+0.5)*edge
	}

	return center
}
