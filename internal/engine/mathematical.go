package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// MathematicalSolver finds perfect rows x cols grid arrangements
// analytically. Arrangements are centered by construction. It can also
// enumerate every grid factorization achieving the maximum tile count.
type MathematicalSolver struct{}

// NewMathematicalSolver returns the analytic grid strategy.
func NewMathematicalSolver() *MathematicalSolver {
	return &MathematicalSolver{}
}

func (s *MathematicalSolver) Name() string { return "Mathematical" }

// gridArrangement is one candidate rows x cols tiling with its centered
// origin.
type gridArrangement struct {
	rows, cols     int
	startX, startY int
	total          int
}

// Solve returns the grid arrangement with the most tiles, or an empty
// solution when no single tile fits.
func (s *MathematicalSolver) Solve(p model.Problem) model.Solution {
	start := time.Now()

	arrangements := rectangularArrangements(p)
	if len(arrangements) == 0 {
		sol := model.NewSolution(nil, p.ContainerW, p.ContainerH, s.Name())
		sol.SolveTime = time.Since(start)
		return sol
	}

	best := arrangements[0]
	sol := model.NewSolution(gridPlacements(best, p), p.ContainerW, p.ContainerH, s.Name())
	sol.SolveTime = time.Since(start)
	sol.Metadata["arrangement"] = "rectangular"
	sol.Metadata["grid_size"] = fmt.Sprintf("%dx%d", best.rows, best.cols)
	return sol
}

// SolveAllOptimal enumerates every grid factorization that reaches the
// maximum tile count, up to maxSolutions.
func (s *MathematicalSolver) SolveAllOptimal(p model.Problem, maxSolutions int) []model.Solution {
	start := time.Now()

	arrangements := rectangularArrangements(p)
	if len(arrangements) == 0 {
		return nil
	}

	maxTiles := arrangements[0].total
	var solutions []model.Solution
	for _, arr := range arrangements {
		if arr.total != maxTiles {
			break // sorted descending, only sub-maximal grids remain
		}
		if len(solutions) >= maxSolutions {
			break
		}
		sol := model.NewSolution(gridPlacements(arr, p), p.ContainerW, p.ContainerH, s.Name())
		sol.Metadata["arrangement"] = "rectangular"
		sol.Metadata["grid_size"] = fmt.Sprintf("%dx%d", arr.rows, arr.cols)
		solutions = append(solutions, sol)
	}

	elapsed := time.Since(start)
	for i := range solutions {
		solutions[i].SolveTime = elapsed
	}
	return solutions
}

// gridPlacements expands an arrangement into concrete placements, all in
// the original orientation.
func gridPlacements(arr gridArrangement, p model.Problem) []model.Placement {
	placements := make([]model.Placement, 0, arr.total)
	for r := 0; r < arr.rows; r++ {
		for c := 0; c < arr.cols; c++ {
			placements = append(placements, model.Placement{
				X:           arr.startX + c*p.TileW,
				Y:           arr.startY + r*p.TileH,
				W:           p.TileW,
				H:           p.TileH,
				Orientation: model.Original,
			})
		}
	}
	return placements
}

// rectangularArrangements lists every rows x cols grid of unrotated tiles
// that fits the container within the tile budget, each centered, sorted
// by tile count descending.
func rectangularArrangements(p model.Problem) []gridArrangement {
	maxTiles := p.EffectiveMaxTiles()

	var arrangements []gridArrangement
	for rows := 1; rows <= maxTiles; rows++ {
		for cols := 1; cols <= maxTiles/rows; cols++ {
			totalW := cols * p.TileW
			totalH := rows * p.TileH
			if totalW > p.ContainerW || totalH > p.ContainerH {
				continue
			}
			arrangements = append(arrangements, gridArrangement{
				rows:   rows,
				cols:   cols,
				startX: (p.ContainerW - totalW) / 2,
				startY: (p.ContainerH - totalH) / 2,
				total:  rows * cols,
			})
		}
	}

	sort.SliceStable(arrangements, func(i, j int) bool {
		return arrangements[i].total > arrangements[j].total
	})
	return arrangements
}
