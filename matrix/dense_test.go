package matrix_test

import (
	"testing"

	"github.com/katalvlaran/cellmap/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(3, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_SetAt(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)

	_, err = m.At(5, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_Clone(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))

	cp := m.Clone()
	require.NoError(t, m.Set(0, 0, 99))

	v, err := cp.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v, "clone must not observe mutations to the original")
}

func TestNewDiagonal(t *testing.T) {
	m, err := matrix.NewDiagonal([]float64{2, 3, 5})
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 3, m.Cols())

	for i, want := range []float64{2, 3, 5} {
		v, err := m.At(i, i)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
	off, err := m.At(0, 1)
	require.NoError(t, err)
	require.Zero(t, off)
}

func TestDense_Column(t *testing.T) {
	m, err := matrix.NewDiagonal([]float64{2, 3, 5})
	require.NoError(t, err)

	col, err := m.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 3, 0}, col)

	_, err = m.Column(9)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}
