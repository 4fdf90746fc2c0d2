package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahal-neema/2D-Packing/internal/model"
	"github.com/chahal-neema/2D-Packing/internal/symmetry"
)

func testSettings() model.SolveSettings {
	s := model.DefaultSettings()
	s.TimeLimit = 30 * time.Second
	s.BacktrackTimeLimit = 10 * time.Second
	s.ILPTimeLimit = 10 * time.Second
	return s
}

func newTestHybrid(t *testing.T) *HybridSolver {
	t.Helper()
	return NewHybridSolver(testSettings(), zerolog.Nop())
}

func TestHybrid_PerfectGrid(t *testing.T) {
	p := mustProblem(t, 20, 20, 10, 10, false)
	sol := newTestHybrid(t).Solve(p)

	assert.Equal(t, 4, sol.NumTiles())
	assert.InDelta(t, 100.0, sol.Efficiency(), 0.001)
	assert.Equal(t, "Hybrid(Mathematical)", sol.SolverName)
	assertValidArrangement(t, sol, p)
}

func TestHybrid_SingleTileRemainder(t *testing.T) {
	p := mustProblem(t, 15, 15, 10, 10, false)
	sol := newTestHybrid(t).Solve(p)

	assert.Equal(t, 1, sol.NumTiles())
	assert.InDelta(t, 44.4, sol.Efficiency(), 0.1)
	assertValidArrangement(t, sol, p)
}

func TestHybrid_RotationStrictlyHelps(t *testing.T) {
	solver := newTestHybrid(t)

	withRotation := solver.Solve(mustProblem(t, 25, 15, 5, 10, true))
	withoutRotation := newTestHybrid(t).Solve(mustProblem(t, 25, 15, 5, 10, false))

	assert.GreaterOrEqual(t, withRotation.NumTiles(), 6)
	assert.Equal(t, 5, withoutRotation.NumTiles(),
		"a single unrotated band of five is the best the grid tiers reach")
	assert.Greater(t, withRotation.NumTiles(), withoutRotation.NumTiles())

	for _, placement := range withoutRotation.Placements {
		assert.Equal(t, model.Original, placement.Orientation)
	}
}

func TestHybrid_ProvenanceAlwaysWrapped(t *testing.T) {
	problems := []model.Problem{
		mustProblem(t, 20, 20, 10, 10, false),
		mustProblem(t, 15, 15, 10, 10, false),
		mustProblem(t, 25, 15, 5, 10, true),
	}
	for _, p := range problems {
		sol := newTestHybrid(t).Solve(p)
		assert.True(t, strings.HasPrefix(sol.SolverName, "Hybrid("), "got %q", sol.SolverName)
		assert.False(t, strings.HasPrefix(sol.SolverName, "Hybrid(Hybrid("), "double wrap in %q", sol.SolverName)
	}
}

func TestHybrid_SolveAllOptimal(t *testing.T) {
	p := mustProblem(t, 20, 20, 10, 10, false)
	solutions := newTestHybrid(t).SolveAllOptimal(p, 10)

	require.NotEmpty(t, solutions)
	seen := map[string]bool{}
	for _, sol := range solutions {
		assert.Equal(t, 4, sol.NumTiles())
		assert.True(t, sol.IsCentered())
		assert.True(t, strings.HasPrefix(sol.SolverName, "Hybrid("))

		key := symmetry.CanonicalKey(sol.Placements, p.ContainerW, p.ContainerH)
		assert.False(t, seen[key], "duplicate canonical form returned")
		seen[key] = true
	}
}

func TestHybrid_SolveAllOptimalFallsBackToSingleBest(t *testing.T) {
	// The exhaustive tier cannot exhaust the area-bound budget here, so
	// enumeration falls back to the single best arrangement.
	p := mustProblem(t, 15, 15, 10, 10, false)
	solutions := newTestHybrid(t).SolveAllOptimal(p, 10)

	require.Len(t, solutions, 1)
	assert.Equal(t, 1, solutions[0].NumTiles())
	assert.True(t, solutions[0].IsCentered())
}

func TestHybrid_CentersWhenRequired(t *testing.T) {
	// The raw enumeration anchors both tiles at the left edge; centering
	// shifts the pair into the middle of the 25-wide container.
	p := mustProblem(t, 25, 10, 10, 10, false)
	require.True(t, p.RequireCentering)

	solutions := newTestHybrid(t).SolveAllOptimal(p, 5)
	require.NotEmpty(t, solutions)
	for _, sol := range solutions {
		require.Equal(t, 2, sol.NumTiles())
		assert.True(t, sol.IsCentered())
		minX, _, maxX, _ := sol.BoundingBox()
		assert.Equal(t, 2, minX)
		assert.Equal(t, 22, maxX)
	}
}

func TestHybrid_TierPanicIsContained(t *testing.T) {
	h := newTestHybrid(t)
	h.ilp = panicStrategy{}

	p := mustProblem(t, 15, 15, 10, 10, false)
	sol := h.Solve(p)
	assert.Equal(t, 1, sol.NumTiles(), "a failing tier must not lose earlier results")
}

type panicStrategy struct{}

func (panicStrategy) Name() string                       { return "Panic" }
func (panicStrategy) Solve(model.Problem) model.Solution { panic("boom") }

func TestHybrid_StrategyInterfaces(t *testing.T) {
	var _ Strategy = (*MathematicalSolver)(nil)
	var _ Strategy = (*GreedySolver)(nil)
	var _ Strategy = (*BacktrackSolver)(nil)
	var _ Strategy = (*ILPSolver)(nil)
	var _ Strategy = (*HybridSolver)(nil)

	var _ Enumerator = (*MathematicalSolver)(nil)
	var _ Enumerator = (*BacktrackSolver)(nil)
	var _ Enumerator = (*HybridSolver)(nil)
}

func TestCompareScenarios(t *testing.T) {
	p := mustProblem(t, 25, 15, 5, 10, false)
	settings := testSettings()

	scenarios := BuildDefaultScenarios(p, settings)
	require.GreaterOrEqual(t, len(scenarios), 3)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, "Rotation Enabled", scenarios[1].Name)

	results := CompareScenarios(scenarios, zerolog.Nop())
	require.Len(t, results, len(scenarios))

	assert.Equal(t, 5, results[0].Tiles)
	assert.GreaterOrEqual(t, results[1].Tiles, 6, "rotation scenario packs more tiles")
}
