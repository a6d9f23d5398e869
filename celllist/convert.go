package celllist

import (
	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/matrix"
)

// FromMatrix reads m row-by-row into a [][]float64, one row per particle,
// for callers that keep positions in a matrix.Dense (e.g. loaded straight
// from a trajectory frame) rather than already split into per-particle
// slices.
func FromMatrix(m matrix.Matrix) ([][]float64, error) {
	rows, cols := m.Rows(), m.Cols()
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		row := make([]float64, cols)
		for c := 0; c < cols; c++ {
			v, err := m.At(r, c)
			if err != nil {
				return nil, err
			}
			row[c] = v
		}
		out[r] = row
	}

	return out, nil
}

// ToMatrix packs positions into a dense row-major matrix.Dense, one row per
// particle. All rows must share the same length.
func ToMatrix(positions [][]float64) (*matrix.Dense, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyPositions
	}

	ndim := len(positions[0])
	m, err := matrix.NewDense(len(positions), ndim)
	if err != nil {
		return nil, err
	}
	for r, p := range positions {
		if len(p) != ndim {
			return nil, box.ErrDimensionMismatch
		}
		for c, v := range p {
			if err := m.Set(r, c, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
