package engine

import (
	"time"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// GreedySolver is a fast heuristic fill over the free-rectangle manager.
// Each step asks the manager for the valid anchors in the remaining free
// space and commits the best one under the configured ordering:
// bottom-left (lowest row, then lowest column) or center-out (smallest
// Manhattan distance of the tile center from the container center). Both
// place tiles in the original orientation only.
type GreedySolver struct {
	strategy string
}

// NewGreedySolver returns a greedy fill using the given ordering
// (model.GreedyBottomLeft or model.GreedyCenterOut). Unknown values fall
// back to bottom-left.
func NewGreedySolver(strategy string) *GreedySolver {
	if strategy != model.GreedyCenterOut {
		strategy = model.GreedyBottomLeft
	}
	return &GreedySolver{strategy: strategy}
}

func (s *GreedySolver) Name() string { return "Greedy_" + s.strategy }

// Solve fills the container greedily and returns the result. A tile that
// fits nowhere yields an empty solution.
func (s *GreedySolver) Solve(p model.Problem) model.Solution {
	start := time.Now()

	better := bottomLeftBetter
	if s.strategy == model.GreedyCenterOut {
		better = centerOutBetter(p)
	}

	free := NewFreeRectManager(p.ContainerW, p.ContainerH)
	maxTiles := p.EffectiveMaxTiles()

	var placements []model.Placement
	for len(placements) < maxTiles {
		candidates := free.ValidPlacements(p.TileW, p.TileH, false)
		if len(candidates) == 0 {
			break
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if better(c, best) {
				best = c
			}
		}
		free.PlaceTile(best.X, best.Y, best.W, best.H)
		placements = append(placements, best)
	}

	sol := model.NewSolution(placements, p.ContainerW, p.ContainerH, s.Name())
	sol.SolveTime = time.Since(start)
	sol.Metadata["strategy"] = s.strategy
	return sol
}

// bottomLeftBetter orders anchors by row, then column.
func bottomLeftBetter(a, b model.Placement) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// centerOutBetter orders anchors by Manhattan distance of the tile center
// from the container center, breaking ties by (x, y) for determinism.
func centerOutBetter(p model.Problem) func(a, b model.Placement) bool {
	centerX := p.ContainerW / 2
	centerY := p.ContainerH / 2
	distance := func(c model.Placement) int {
		return absInt(c.X+c.W/2-centerX) + absInt(c.Y+c.H/2-centerY)
	}
	return func(a, b model.Placement) bool {
		da, db := distance(a), distance(b)
		if da != db {
			return da < db
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
