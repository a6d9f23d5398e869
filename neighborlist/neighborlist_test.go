package neighborlist_test

import (
	"testing"

	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/neighborlist"
	"github.com/stretchr/testify/require"
)

func TestBuild_TinyScenario(t *testing.T) {
	b, err := box.NewOrtho([]float64{10, 10, 10}, 2, box.WithLCell(1))
	require.NoError(t, err)

	positions := [][]float64{{1, 1, 1}, {1.5, 1, 1}, {8, 8, 8}}
	pairsOut, err := neighborlist.Build(positions, b, 2)
	require.NoError(t, err)
	require.Len(t, pairsOut, 1)
	require.Equal(t, 1, pairsOut[0].I)
	require.Equal(t, 2, pairsOut[0].J)
}

func TestBuild_ForcedParallelMatchesSerial(t *testing.T) {
	b, err := box.NewOrtho([]float64{20, 20, 20}, 2, box.WithLCell(1))
	require.NoError(t, err)

	positions := make([][]float64, 0, 80)
	for i := 0; i < 80; i++ {
		v := float64(i%18) + 0.5
		positions = append(positions, []float64{v, v, float64(i%7) + 0.5})
	}

	serial, err := neighborlist.Build(positions, b, 2)
	require.NoError(t, err)

	parallelOut, err := neighborlist.Build(positions, b, 2, neighborlist.WithParallel(4))
	require.NoError(t, err)

	require.Equal(t, len(serial), len(parallelOut))
}
