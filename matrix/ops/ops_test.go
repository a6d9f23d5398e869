package ops_test

import (
	"testing"

	"github.com/katalvlaran/cellmap/matrix"
	"github.com/katalvlaran/cellmap/matrix/ops"
	"github.com/stretchr/testify/require"
)

func diagonal(t *testing.T, diag []float64) matrix.Matrix {
	t.Helper()
	m, err := matrix.NewDiagonal(diag)
	require.NoError(t, err)
	return m
}

func TestLU_Diagonal(t *testing.T) {
	m := diagonal(t, []float64{2, 4})
	L, U, err := ops.LU(m)
	require.NoError(t, err)

	lDiag, _ := L.At(0, 0)
	require.Equal(t, 1.0, lDiag)
	u00, _ := U.At(0, 0)
	u11, _ := U.At(1, 1)
	require.Equal(t, 2.0, u00)
	require.Equal(t, 4.0, u11)
}

func TestLU_NonSquare(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	_, _, err = ops.LU(m)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestInverse_Identity(t *testing.T) {
	m := diagonal(t, []float64{1, 1, 1})
	inv, err := ops.Inverse(m)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, err := inv.At(i, j)
			require.NoError(t, err)
			if i == j {
				require.InDelta(t, 1.0, v, 1e-12)
			} else {
				require.InDelta(t, 0.0, v, 1e-12)
			}
		}
	}
}

func TestInverse_GeneralTriclinicLikeMatrix(t *testing.T) {
	m, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	rows := [][]float64{
		{250, 10, 0},
		{0, 250, 0},
		{10, 0, 250},
	}
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	inv, err := ops.Inverse(m)
	require.NoError(t, err)

	// m * inv should reproduce the identity within tolerance.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				a, _ := m.At(i, k)
				b, _ := inv.At(k, j)
				sum += a * b
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, sum, 1e-9)
		}
	}
}

func TestInverse_Singular(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 2))
	require.NoError(t, m.Set(1, 0, 2))
	require.NoError(t, m.Set(1, 1, 4))

	_, err = ops.Inverse(m)
	require.ErrorIs(t, err, matrix.ErrSingular)
}
