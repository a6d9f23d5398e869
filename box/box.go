package box

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cellmap/cellindex"
	"github.com/katalvlaran/cellmap/matrix"
	"github.com/katalvlaran/cellmap/matrix/ops"
)

// New constructs a Box from a general (orthorhombic or triclinic) N×N
// lattice matrix and a cutoff distance.
//
// Stage 1 (Validate): square matrix, non-negative entries, and the
// triclinic guard — every diagonal entry must be >= the sum of the
// magnitudes of the off-diagonal entries in its column, which keeps
// floor(frac) wrapping inside a bounded image range (§9 design note).
// Stage 2 (Derive): unit cell max corner, cell counts, image ranges.
// Stage 3 (Invert): cache the lattice inverse for Wrap.
func New(unitCell matrix.Matrix, cutoff float64, opts ...Option) (*Box, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if cutoff <= 0 {
		return nil, fmt.Errorf("%w: cutoff must be > 0, got %g", ErrInvalidCutoff, cutoff)
	}

	n := unitCell.Rows()
	if n != unitCell.Cols() {
		return nil, fmt.Errorf("%w: matrix is %dx%d, must be square", ErrInvalidBox, n, unitCell.Cols())
	}

	dense, err := toDense(unitCell)
	if err != nil {
		return nil, err
	}

	orthorhombic, err := validateLattice(dense, n)
	if err != nil {
		return nil, err
	}

	unitCellMax := make([]float64, n)
	for i := 0; i < n; i++ {
		col, cerr := dense.Column(i)
		if cerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBox, cerr)
		}
		for j := 0; j < n; j++ {
			unitCellMax[j] += col[j]
		}
	}

	var inv *matrix.Dense
	if invMat, ierr := ops.Inverse(dense); ierr == nil {
		d, ok := invMat.(*matrix.Dense)
		if !ok {
			return nil, fmt.Errorf("%w: inverse did not produce a Dense matrix", ErrInvalidBox)
		}
		inv = d
	} else {
		return nil, fmt.Errorf("%w: lattice matrix is singular: %v", ErrInvalidBox, ierr)
	}

	edge := cutoff / float64(o.lcell)
	nc := make([]int, n)
	for i := 0; i < n; i++ {
		span := unitCellMax[i] + 2*cutoff
		nc[i] = int(math.Ceil(math.Max(1, span/edge)))
		if nc[i] < 1 {
			nc[i] = 1
		}
	}

	imageRanges := make([][2]int, n)
	for i := 0; i < n; i++ {
		diag, derr := dense.At(i, i)
		if derr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBox, derr)
		}
		r := 1
		if diag > 0 {
			r = int(math.Ceil(cutoff/diag)) + 1
		}
		imageRanges[i] = [2]int{-r, r}
	}

	return &Box{
		ndim:         n,
		unitCell:     dense,
		unitCellInv:  inv,
		unitCellMax:  unitCellMax,
		cutoff:       cutoff,
		cutoffSq:     cutoff * cutoff,
		lcell:        o.lcell,
		nc:           nc,
		imageRanges:  imageRanges,
		orthorhombic: orthorhombic,
	}, nil
}

// NewOrtho is the orthorhombic shortcut: it builds the diagonal matrix
// from sides and delegates to New.
func NewOrtho(sides []float64, cutoff float64, opts ...Option) (*Box, error) {
	diag, err := matrix.NewDiagonal(sides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBox, err)
	}

	return New(diag, cutoff, opts...)
}

func toDense(m matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d, nil
	}
	d, err := matrix.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, verr := m.At(i, j)
			if verr != nil {
				return nil, verr
			}
			if serr := d.Set(i, j, v); serr != nil {
				return nil, serr
			}
		}
	}

	return d, nil
}

// validateLattice checks non-negativity and the triclinic diagonal-dominance
// guard, returning whether the matrix is orthorhombic (all off-diagonals
// zero).
func validateLattice(m *matrix.Dense, n int) (orthorhombic bool, err error) {
	orthorhombic = true
	for j := 0; j < n; j++ {
		col, cerr := m.Column(j)
		if cerr != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidBox, cerr)
		}
		var offDiagSum float64
		for i := 0; i < n; i++ {
			if col[i] < 0 {
				return false, fmt.Errorf("%w: negative entry at (%d,%d)", ErrInvalidBox, i, j)
			}
			if i == j {
				continue
			}
			if col[i] != 0 {
				orthorhombic = false
			}
			offDiagSum += col[i]
		}
		if col[j] < offDiagSum {
			return false, fmt.Errorf("%w: triclinic column %d diagonal %g < off-diagonal sum %g", ErrInvalidBox, j, col[j], offDiagSum)
		}
	}

	return orthorhombic, nil
}

// Wrap reduces point into the primary unit cell: frac = unitCell⁻¹·point,
// then point' = unitCell·(frac - floor(frac)).
// Complexity: O(ndim²).
func (b *Box) Wrap(point []float64) ([]float64, error) {
	if len(point) != b.ndim {
		return nil, &DimensionMismatchError{Want: b.ndim, Got: len(point)}
	}

	frac := make([]float64, b.ndim)
	for i := 0; i < b.ndim; i++ {
		var sum float64
		for j := 0; j < b.ndim; j++ {
			v, _ := b.unitCellInv.At(i, j)
			sum += v * point[j]
		}
		frac[i] = sum - math.Floor(sum)
	}

	wrapped := make([]float64, b.ndim)
	for i := 0; i < b.ndim; i++ {
		var sum float64
		for j := 0; j < b.ndim; j++ {
			v, _ := b.unitCell.At(i, j)
			sum += v * frac[j]
		}
		wrapped[i] = sum
	}

	return wrapped, nil
}

// Image translates a wrapped point by the lattice combination
// Σ r_i · unitCell[:,i] for the given per-axis integer coefficients r.
func (b *Box) Image(point []float64, r []int) []float64 {
	out := make([]float64, b.ndim)
	copy(out, point)
	for i := 0; i < b.ndim; i++ {
		if r[i] == 0 {
			continue
		}
		col, _ := b.unitCell.Column(i)
		for j := 0; j < b.ndim; j++ {
			out[j] += float64(r[i]) * col[j]
		}
	}

	return out
}

// InExpandedBox reports whether point lies within cutoff of the unit cell
// along every axis: point[i] in [-cutoff, unitCellMax[i]+cutoff].
func (b *Box) InExpandedBox(point []float64) bool {
	for i := 0; i < b.ndim; i++ {
		if point[i] < -b.cutoff || point[i] > b.unitCellMax[i]+b.cutoff {
			return false
		}
	}

	return true
}

// CellOf maps a point already known to lie in the expanded box to its
// Cartesian grid cell. The origin cell (cartesian index 0 per axis)
// encompasses [-cutoff, -cutoff+edge) on that axis.
func (b *Box) CellOf(point []float64) []int {
	edge := b.cutoff / float64(b.lcell)
	cart := make([]int, b.ndim)
	for i := 0; i < b.ndim; i++ {
		c := int(math.Floor((point[i] + b.cutoff) / edge))
		if c < 0 {
			c = 0
		}
		if c >= b.nc[i] {
			c = b.nc[i] - 1
		}
		cart[i] = c
	}

	return cart
}

// NeighborCells returns every forward neighbor cell (including c itself
// first) reachable from c within lcell+1 steps per axis, without bounds
// filtering — callers must discard coordinates outside [0, NC()).
func (b *Box) NeighborCells(c []int) [][]int {
	offsets := cellindex.ForwardOffsets(b.ndim, b.lcell+1)
	out := make([][]int, 0, len(offsets))
	for _, off := range offsets {
		n := make([]int, b.ndim)
		for i := range n {
			n[i] = c[i] + off[i]
		}
		out = append(out, n)
	}

	return out
}

// InGrid reports whether a Cartesian cell coordinate lies within [0, NC()).
func (b *Box) InGrid(cart []int) bool {
	for i, c := range cart {
		if c < 0 || c >= b.nc[i] {
			return false
		}
	}

	return true
}
