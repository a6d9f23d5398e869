package box

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cellmap/matrix"
)

// Sentinel errors for box construction.
var (
	// ErrInvalidBox indicates a non-square unit-cell matrix, negative
	// entries, a singular matrix, or a triclinic cell whose diagonal entry
	// is smaller than the sum of the off-diagonal entries in its column.
	ErrInvalidBox = errors.New("box: invalid unit cell")

	// ErrInvalidCutoff indicates cutoff <= 0.
	ErrInvalidCutoff = errors.New("box: invalid cutoff")

	// ErrDimensionMismatch indicates a positions vector's dimensionality
	// differs from the box's dimensionality.
	ErrDimensionMismatch = errors.New("box: dimension mismatch")
)

// DimensionMismatchError carries the expected and observed dimensionality
// when ErrDimensionMismatch is returned, so callers can report provenance
// instead of a bare sentinel.
type DimensionMismatchError struct {
	Want, Got int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("box: dimension mismatch: want %d, got %d: %v", e.Want, e.Got, ErrDimensionMismatch)
}

// Unwrap lets errors.Is(err, ErrDimensionMismatch) succeed.
func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// Option configures Box construction.
type Option func(*options)

type options struct {
	lcell int
}

func defaultOptions() options {
	return options{lcell: 1}
}

// WithLCell sets the integer cell-subdivision factor (cell edge =
// cutoff/lcell). Must be >= 1; values < 1 are silently clamped to 1, since
// lcell is a performance tuning knob, not a correctness-affecting input.
func WithLCell(lcell int) Option {
	return func(o *options) {
		if lcell >= 1 {
			o.lcell = lcell
		}
	}
}

// Box is the immutable cell geometry a CellList is built against.
type Box struct {
	ndim         int
	unitCell     *matrix.Dense // N x N, columns are lattice vectors
	unitCellInv  *matrix.Dense // cached inverse, used by Wrap
	unitCellMax  []float64     // sum of lattice column vectors
	cutoff       float64
	cutoffSq     float64
	lcell        int
	nc           []int     // per-axis cell count covering [-cutoff, unitCellMax+cutoff]
	imageRanges  [][2]int  // per-axis [a,b] integer image range
	orthorhombic bool
}

// Ndim returns the box's dimensionality.
func (b *Box) Ndim() int { return b.ndim }

// Cutoff returns the interaction cutoff distance.
func (b *Box) Cutoff() float64 { return b.cutoff }

// CutoffSq returns the squared cutoff distance.
func (b *Box) CutoffSq() float64 { return b.cutoffSq }

// LCell returns the configured cell-subdivision factor.
func (b *Box) LCell() int { return b.lcell }

// NC returns a copy of the per-axis cell counts.
func (b *Box) NC() []int {
	out := make([]int, len(b.nc))
	copy(out, b.nc)
	return out
}

// UnitCellMax returns a copy of the unit cell's upper-right corner
// (sum of lattice column vectors) in lattice-aligned coordinates.
func (b *Box) UnitCellMax() []float64 {
	out := make([]float64, len(b.unitCellMax))
	copy(out, b.unitCellMax)
	return out
}

// UnitCell returns the lattice matrix (columns are lattice vectors).
func (b *Box) UnitCell() matrix.Matrix { return b.unitCell }

// ImageRanges returns a copy of the per-axis periodic image ranges.
func (b *Box) ImageRanges() [][2]int {
	out := make([][2]int, len(b.imageRanges))
	copy(out, b.imageRanges)
	return out
}

// Orthorhombic reports whether the unit cell is diagonal.
func (b *Box) Orthorhombic() bool { return b.orthorhombic }
