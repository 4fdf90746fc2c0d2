package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

func TestGreedy_BottomLeftFillsGrid(t *testing.T) {
	p := mustProblem(t, 20, 20, 10, 10, false)
	sol := NewGreedySolver(model.GreedyBottomLeft).Solve(p)

	assert.Equal(t, 4, sol.NumTiles())
	assertValidArrangement(t, sol, p)
	assert.Equal(t, model.GreedyBottomLeft, sol.Metadata["strategy"])
}

func TestGreedy_BottomLeftDeterministicOrder(t *testing.T) {
	p := mustProblem(t, 30, 10, 10, 10, false)
	sol := NewGreedySolver(model.GreedyBottomLeft).Solve(p)

	require.Equal(t, 3, sol.NumTiles())
	assert.Equal(t, 0, sol.Placements[0].X)
	assert.Equal(t, 10, sol.Placements[1].X)
	assert.Equal(t, 20, sol.Placements[2].X)
}

func TestGreedy_CenterOutPlacesFirstTileCentrally(t *testing.T) {
	p := mustProblem(t, 30, 30, 10, 10, false)
	sol := NewGreedySolver(model.GreedyCenterOut).Solve(p)

	require.GreaterOrEqual(t, sol.NumTiles(), 1)
	first := sol.Placements[0]
	// The first anchor minimizes tile-center distance from the container
	// center, so the tile center (x+5, y+5) sits at (15, 15).
	assert.Equal(t, 10, first.X)
	assert.Equal(t, 10, first.Y)
	assertValidArrangement(t, sol, p)
}

func TestGreedy_BottomLeftPerfectFillAcrossRows(t *testing.T) {
	// Filling the second row only works if the free space carved out by
	// the first row is tracked correctly through splits and merges.
	p := mustProblem(t, 30, 20, 10, 10, false)
	sol := NewGreedySolver(model.GreedyBottomLeft).Solve(p)

	require.Equal(t, 6, sol.NumTiles())
	assert.InDelta(t, 100.0, sol.Efficiency(), 0.001)
	assertValidArrangement(t, sol, p)
}

func TestGreedy_NameReflectsStrategy(t *testing.T) {
	assert.Equal(t, "Greedy_center_out", NewGreedySolver(model.GreedyCenterOut).Name())
	assert.Equal(t, "Greedy_bottom_left", NewGreedySolver(model.GreedyBottomLeft).Name())
	assert.Equal(t, "Greedy_bottom_left", NewGreedySolver("bogus").Name(), "unknown strategies fall back")
}

func TestGreedy_NoFitYieldsEmptySolution(t *testing.T) {
	p := model.Problem{ContainerW: 5, ContainerH: 5, TileW: 10, TileH: 10}
	sol := NewGreedySolver(model.GreedyBottomLeft).Solve(p)
	assert.Equal(t, 0, sol.NumTiles())
}

func TestGreedy_RespectsMaxTiles(t *testing.T) {
	p := mustProblem(t, 20, 20, 10, 10, false)
	p.MaxTiles = 3

	sol := NewGreedySolver(model.GreedyBottomLeft).Solve(p)
	assert.Equal(t, 3, sol.NumTiles())
}
