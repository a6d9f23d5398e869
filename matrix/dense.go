package matrix

import (
	"fmt"
	"strings"
)

// Matrix is the minimal dense-matrix surface cellmap needs: shape, element
// access, and a deep copy. It exists mainly so ops and box can be written
// against an interface instead of *Dense directly.
type Matrix interface {
	Rows() int
	Cols() int
	At(row, col int) (float64, error)
	Set(row, col int, v float64) error
	Clone() Matrix
}

// denseErrorf wraps an underlying error with Dense method context.
// Example message shape: "Dense.Set(3,7): matrix: index out of range".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values: data[i*c+j] holds (i,j).
type Dense struct {
	r, c int
	data []float64
}

// Compile-time assertion: *Dense implements Matrix.
var _ Matrix = (*Dense)(nil)

// NewDense creates an r×c Dense matrix initialized to zeros.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	data := make([]float64, rows*cols)

	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDiagonal builds a square Dense matrix with diag on the main diagonal
// and zero elsewhere — the orthorhombic lattice-matrix shortcut.
func NewDiagonal(diag []float64) (*Dense, error) {
	n := len(diag)
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		_ = m.Set(i, i, diag[i])
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// inBounds reports whether (row,col) addresses a real element of m.
func (m *Dense) inBounds(row, col int) bool {
	return row >= 0 && row < m.r && col >= 0 && col < m.c
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	if !m.inBounds(row, col) {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set writes value v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	if !m.inBounds(row, col) {
		return denseErrorf("Set", row, col, ErrOutOfRange)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Clone returns a deep copy of the matrix.
func (m *Dense) Clone() Matrix {
	cp := append([]float64(nil), m.data...)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Column returns a copy of column j as a plain slice — used by box to read
// lattice vectors out of the unit-cell matrix.
func (m *Dense) Column(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf("Column", 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// String provides a simple row-wise dump for debugging.
func (m *Dense) String() string {
	var sb strings.Builder
	row := make([]string, m.c)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			row[j] = fmt.Sprintf("%g", m.data[i*m.c+j])
		}
		sb.WriteByte('[')
		sb.WriteString(strings.Join(row, ", "))
		sb.WriteString("]\n")
	}

	return sb.String()
}
