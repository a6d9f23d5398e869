package parallel_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/celllist"
	"github.com/katalvlaran/cellmap/pairs"
	"github.com/katalvlaran/cellmap/parallel"
	"github.com/stretchr/testify/require"
)

func TestRunSum_MatchesSerialSum(t *testing.T) {
	n := 100
	mapFn := func(start, end int) (int, error) {
		sum := 0
		for i := start; i < end; i++ {
			sum += i
		}
		return sum, nil
	}

	got, err := parallel.RunSum(n, mapFn, parallel.WithWorkers(4), parallel.WithNBatches(7))
	require.NoError(t, err)

	want := 0
	for i := 0; i < n; i++ {
		want += i
	}
	require.Equal(t, want, got)
}

func TestRunSum_ResultIndependentOfBatchCount(t *testing.T) {
	n := 97
	mapFn := func(start, end int) (int, error) {
		sum := 0
		for i := start; i < end; i++ {
			sum += i * i
		}
		return sum, nil
	}

	r1, err := parallel.RunSum(n, mapFn, parallel.WithNBatches(1))
	require.NoError(t, err)
	r2, err := parallel.RunSum(n, mapFn, parallel.WithNBatches(11))
	require.NoError(t, err)
	r3, err := parallel.RunSum(n, mapFn, parallel.WithNBatches(97))
	require.NoError(t, err)

	require.Equal(t, r1, r2)
	require.Equal(t, r2, r3)
}

func TestRun_PropagatesBatchError(t *testing.T) {
	boom := errors.New("boom")
	mapFn := func(start, end int) (int, error) {
		if start == 0 {
			return 0, boom
		}
		return end - start, nil
	}

	_, err := parallel.Run(10, 0, mapFn, func(a, b int) int { return a + b }, parallel.WithNBatches(5))
	require.Error(t, err)

	var aborted *parallel.AbortedError
	require.ErrorAs(t, err, &aborted)
	require.ErrorIs(t, err, boom)
}

func TestRunSingle_MatchesSerialWalkSingle(t *testing.T) {
	b, err := box.NewOrtho([]float64{10, 10, 10}, 2, box.WithLCell(1))
	require.NoError(t, err)

	positions := make([][]float64, 0, 50)
	for i := 0; i < 50; i++ {
		v := float64(i%9) + 0.3
		positions = append(positions, []float64{v, v, float64(i%5) + 0.2})
	}
	cl, err := celllist.New(positions, b)
	require.NoError(t, err)

	countFn := func(acc int, i, j int, d2 float64, pi, pj []float64) int { return acc + 1 }
	combine := func(a, b int) int { return a + b }

	serial, err := pairs.WalkSingle(cl, b.CutoffSq(), 0, countFn)
	require.NoError(t, err)

	parallelCount, err := parallel.RunSingle(cl, b.CutoffSq(), 0, countFn, combine, nil, parallel.WithWorkers(4), parallel.WithNBatches(6))
	require.NoError(t, err)

	require.Equal(t, serial, parallelCount)
}

func TestRunSingle_DenseOptionMatchesSerialWalkSingleDense(t *testing.T) {
	b, err := box.NewOrtho([]float64{10, 10, 10}, 2, box.WithLCell(1))
	require.NoError(t, err)

	positions := make([][]float64, 0, 60)
	for i := 0; i < 60; i++ {
		v := float64(i%8) + 0.25
		positions = append(positions, []float64{v, v, float64(i%4) + 0.1})
	}
	cl, err := celllist.New(positions, b)
	require.NoError(t, err)

	countFn := func(acc int, i, j int, d2 float64, pi, pj []float64) int { return acc + 1 }
	combine := func(a, b int) int { return a + b }

	serial, err := pairs.WalkSingle(cl, b.CutoffSq(), 0, countFn, pairs.WithDensePruning())
	require.NoError(t, err)

	// A plain (non-dense) parallel run must still agree, and the dense
	// option must be threaded all the way into the parallel path rather
	// than silently falling back to the sparse chain walk.
	sparseParallel, err := parallel.RunSingle(cl, b.CutoffSq(), 0, countFn, combine, nil,
		parallel.WithWorkers(4), parallel.WithNBatches(5))
	require.NoError(t, err)
	require.Equal(t, serial, sparseParallel)

	denseParallel, err := parallel.RunSingle(cl, b.CutoffSq(), 0, countFn, combine,
		[]pairs.Option{pairs.WithDensePruning()}, parallel.WithWorkers(4), parallel.WithNBatches(5))
	require.NoError(t, err)
	require.Equal(t, serial, denseParallel)
}
