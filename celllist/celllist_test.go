package celllist_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/celllist"
	"github.com/stretchr/testify/require"
)

func testBox(t *testing.T) *box.Box {
	t.Helper()
	b, err := box.NewOrtho([]float64{10, 10, 10}, 2, box.WithLCell(1))
	require.NoError(t, err)
	return b
}

func TestNew_RejectsEmptyPositions(t *testing.T) {
	_, err := celllist.New(nil, testBox(t))
	require.ErrorIs(t, err, celllist.ErrEmptyPositions)
}

func TestNew_RejectsNilBox(t *testing.T) {
	_, err := celllist.New([][]float64{{1, 1, 1}}, nil)
	require.ErrorIs(t, err, celllist.ErrNilBox)
}

func TestNew_RejectsDimensionMismatch(t *testing.T) {
	_, err := celllist.New([][]float64{{1, 1}}, testBox(t))
	require.Error(t, err)
}

func TestNew_EveryOriginalParticleHasAtLeastOneCopy(t *testing.T) {
	b := testBox(t)
	positions := [][]float64{
		{1, 1, 1},
		{5, 5, 5},
		{9, 9, 9},
		{0.1, 9.9, 5},
	}
	cl, err := celllist.New(positions, b)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, c := range cl.OccupiedCells() {
		cl.Walk(c.Linear, func(a celllist.AtomRecord) bool {
			seen[a.OriginalIndex] = true
			return true
		})
	}
	for i := range positions {
		require.True(t, seen[i+1], "particle %d missing from grid", i+1)
	}
}

func TestNew_NearBoundaryParticleHasMultipleImages(t *testing.T) {
	b := testBox(t)
	// Near the (0,0,0) corner: periodic images near the opposite faces
	// should also fall inside the expanded box.
	positions := [][]float64{{0.1, 0.1, 0.1}}
	cl, err := celllist.New(positions, b)
	require.NoError(t, err)

	count := 0
	for _, c := range cl.OccupiedCells() {
		cl.Walk(c.Linear, func(a celllist.AtomRecord) bool {
			count++
			return true
		})
	}
	require.Greater(t, count, 1, "corner particle should replicate into >1 cell")
}

func TestNew_ChainEntriesAreUniquePerCell(t *testing.T) {
	b := testBox(t)
	positions := [][]float64{{1, 1, 1}, {1.01, 1.01, 1.01}, {8, 8, 8}}
	cl, err := celllist.New(positions, b)
	require.NoError(t, err)

	for _, c := range cl.OccupiedCells() {
		slots := make(map[int]bool)
		cl.Walk(c.Linear, func(a celllist.AtomRecord) bool {
			require.False(t, slots[a.Index], "duplicate slot in chain")
			slots[a.Index] = true
			return true
		})
	}
}

func TestNew_OccupiedCellCountMatchesCompactList(t *testing.T) {
	b := testBox(t)
	positions := [][]float64{{1, 1, 1}, {5, 5, 5}, {9, 1, 1}}
	cl, err := celllist.New(positions, b)
	require.NoError(t, err)
	require.Equal(t, len(cl.OccupiedCells()), cl.NumOccupiedCells())
}

func TestUpdate_RefreshMatchesFreshBuild(t *testing.T) {
	b := testBox(t)
	initial := [][]float64{{1, 1, 1}, {5, 5, 5}}
	cl, err := celllist.New(initial, b)
	require.NoError(t, err)

	moved := [][]float64{{2, 2, 2}, {7, 7, 7}, {9, 0.5, 0.5}}
	require.NoError(t, cl.Update(moved, b))

	fresh, err := celllist.New(moved, b)
	require.NoError(t, err)

	require.Equal(t, fresh.NumOccupiedCells(), cl.NumOccupiedCells())
	require.Equal(t, fresh.NumParticleEntries(), cl.NumParticleEntries())

	freshOriginals := collectOriginals(fresh)
	updatedOriginals := collectOriginals(cl)
	require.Equal(t, freshOriginals, updatedOriginals,
		"fresh:\n%s\nupdated:\n%s", spew.Sdump(freshOriginals), spew.Sdump(updatedOriginals))
}

func TestUpdate_RejectsMismatchedDims(t *testing.T) {
	b := testBox(t)
	cl, err := celllist.New([][]float64{{1, 1, 1}}, b)
	require.NoError(t, err)

	err = cl.Update([][]float64{{1, 1}}, b)
	require.Error(t, err)
}

func TestParallelBuild_MatchesSerialBuild(t *testing.T) {
	b := testBox(t)
	positions := make([][]float64, 0, 40)
	for i := 0; i < 40; i++ {
		v := float64(i%10) + 0.5
		positions = append(positions, []float64{v, v, v})
	}

	serial, err := celllist.New(positions, b)
	require.NoError(t, err)

	parallel, err := celllist.New(positions, b, celllist.WithParallelBuild(4))
	require.NoError(t, err)

	require.Equal(t, serial.NumParticleEntries(), parallel.NumParticleEntries())
	require.Equal(t, serial.NumOccupiedCells(), parallel.NumOccupiedCells())
	require.Equal(t, collectOriginals(serial), collectOriginals(parallel))
}

func TestWithBatches_MatchesSerialBuildRegardlessOfBatchCount(t *testing.T) {
	b := testBox(t)
	positions := make([][]float64, 0, 50)
	for i := 0; i < 50; i++ {
		v := float64(i%11) + 0.3
		positions = append(positions, []float64{v, v, v})
	}

	serial, err := celllist.New(positions, b)
	require.NoError(t, err)

	for _, batches := range []int{1, 3, 17, 50} {
		built, err := celllist.New(positions, b, celllist.WithParallelBuild(4), celllist.WithBatches(batches))
		require.NoError(t, err)

		require.Equal(t, serial.NumParticleEntries(), built.NumParticleEntries())
		require.Equal(t, serial.NumOccupiedCells(), built.NumOccupiedCells())
		require.Equal(t, collectOriginals(serial), collectOriginals(built))
	}
}

func collectOriginals(cl *celllist.CellList) map[int]int {
	counts := make(map[int]int)
	for _, c := range cl.OccupiedCells() {
		cl.Walk(c.Linear, func(a celllist.AtomRecord) bool {
			counts[a.OriginalIndex]++
			return true
		})
	}
	return counts
}

func TestNewPair_PicksSmallerSetAsSmall(t *testing.T) {
	b := testBox(t)
	xs := [][]float64{{1, 1, 1}}
	ys := [][]float64{{2, 2, 2}, {3, 3, 3}, {4, 4, 4}}

	p, err := celllist.NewPair(xs, ys, b)
	require.NoError(t, err)
	require.False(t, p.Swap)
	require.Equal(t, xs, p.Small)

	p2, err := celllist.NewPair(ys, xs, b)
	require.NoError(t, err)
	require.True(t, p2.Swap)
	require.Equal(t, xs, p2.Small)
}
