package ops

import (
	"fmt"

	"github.com/katalvlaran/cellmap/matrix"
)

// Inverse returns the inverse of the square matrix m, or an error if m is
// not square or singular.
// Blueprint:
//
//	Stage 1 (Validate): ensure m is square.
//	Stage 2 (Decompose): A = L·U via Doolittle.
//	Stage 3 (Prepare): allocate result matrix and scratch slices.
//	Stage 4 (Execute): for each identity column eᵢ, solve L·y = eᵢ then U·x = y.
//	Stage 5 (Finalize): assemble columns into the inverse and return.
//
// Complexity: O(n³) time, O(n²) memory, where n = m.Rows().
func Inverse(m matrix.Matrix) (matrix.Matrix, error) {
	// Stage 1: Validate input shape
	rows, cols := m.Rows(), m.Cols()
	if rows != cols {
		return nil, fmt.Errorf("Inverse: non-square %dx%d: %w", rows, cols, matrix.ErrNonSquare)
	}

	// Stage 2: LU decomposition
	L, U, err := LU(m)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	// Stage 3: Prepare result container and workspaces
	inv, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	y := make([]float64, rows)
	x := make([]float64, rows)

	// Stage 4: Compute each column of the inverse
	var (
		col, i, k  int
		sum, pivot float64
		aVal       float64
	)
	for col = 0; col < cols; col++ {
		// Forward substitution: L·y = e_col
		for i = 0; i < rows; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				aVal, _ = L.At(i, k)
				sum += aVal * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward substitution: U·x = y
		for i = rows - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k < rows; k++ {
				aVal, _ = U.At(i, k)
				sum += aVal * x[k]
			}
			pivot, _ = U.At(i, i)
			if pivot == 0 {
				return nil, fmt.Errorf("Inverse: %w", matrix.ErrSingular)
			}
			x[i] = (y[i] - sum) / pivot
		}
		// Stage 5: Write this column into the result
		for i = 0; i < rows; i++ {
			_ = inv.Set(i, col, x[i])
		}
	}

	return inv, nil
}
