package engine

import (
	"time"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// BacktrackSolver is the exhaustive depth-first search. It enumerates
// every arrangement reachable by anchoring tiles at the first empty grid
// cell in row-major order, trying both legal orientations, up to the
// solution cap and wall-clock budget. Exceeding the budget truncates the
// result set rather than erroring.
//
// The budget fields are mutated by the orchestrator between calls, so an
// instance must not be shared across concurrent callers.
type BacktrackSolver struct {
	MaxSolutions int
	TimeLimit    time.Duration
}

// NewBacktrackSolver returns an exhaustive search bounded by the given
// solution cap and wall-clock budget.
func NewBacktrackSolver(maxSolutions int, timeLimit time.Duration) *BacktrackSolver {
	return &BacktrackSolver{MaxSolutions: maxSolutions, TimeLimit: timeLimit}
}

func (s *BacktrackSolver) Name() string { return "Backtrack" }

// Solve returns the single best arrangement found, or an empty solution
// when no tile fits.
func (s *BacktrackSolver) Solve(p model.Problem) model.Solution {
	start := time.Now()
	solutions := s.SolveAllOptimal(p, 1)
	if len(solutions) > 0 {
		return solutions[0]
	}
	sol := model.NewSolution(nil, p.ContainerW, p.ContainerH, s.Name())
	sol.SolveTime = time.Since(start)
	return sol
}

// SolveAllOptimal runs the full recursive exploration and returns the
// arrangements whose tile count equals the observed maximum.
// Sub-maximal arrangements recorded when the tile budget ran out are
// discarded.
func (s *BacktrackSolver) SolveAllOptimal(p model.Problem, maxSolutions int) []model.Solution {
	start := time.Now()
	if maxSolutions <= 0 {
		maxSolutions = s.MaxSolutions
	}

	st := &backtrackState{
		grid:          make([]int, p.ContainerW*p.ContainerH),
		width:         p.ContainerW,
		height:        p.ContainerH,
		tileW:         p.TileW,
		tileH:         p.TileH,
		tileArea:      p.TileArea(),
		allowRotation: p.AllowRotation && p.TileW != p.TileH,
		emptyCells:    p.ContainerW * p.ContainerH,
		deadline:      start.Add(s.TimeLimit),
		maxSolutions:  maxSolutions,
	}
	st.search(p.EffectiveMaxTiles(), 1)

	elapsed := time.Since(start)
	if len(st.found) == 0 {
		return nil
	}

	maxTiles := 0
	for _, placements := range st.found {
		if len(placements) > maxTiles {
			maxTiles = len(placements)
		}
	}

	var solutions []model.Solution
	totalOptimal := 0
	for _, placements := range st.found {
		if len(placements) == maxTiles {
			totalOptimal++
		}
	}
	for _, placements := range st.found {
		if len(placements) != maxTiles {
			continue
		}
		if len(solutions) >= maxSolutions {
			break
		}
		sol := model.NewSolution(placements, p.ContainerW, p.ContainerH, s.Name())
		sol.SolveTime = elapsed
		sol.Metadata["method"] = "backtrack"
		sol.Metadata["total_found"] = totalOptimal
		solutions = append(solutions, sol)
	}
	return solutions
}

// backtrackState is the private mutable search state of one invocation:
// the occupancy grid plus bookkeeping for pruning and recording.
type backtrackState struct {
	grid          []int // row-major, 0 = empty, else 1-based tile label
	width, height int
	tileW, tileH  int
	tileArea      int
	allowRotation bool
	emptyCells    int
	deadline      time.Time
	maxSolutions  int
	found         [][]model.Placement
	bestCount     int
}

// search explores all placements for the next tile label given the
// remaining tile budget. Placement and undo are symmetric: place writes
// exactly the cells that undo clears.
func (st *backtrackState) search(tilesLeft, tileID int) {
	if time.Now().After(st.deadline) {
		return
	}
	if len(st.found) >= st.maxSolutions {
		return
	}

	// Area bound: even filling all empty cells perfectly cannot beat the
	// best recorded arrangement. Strict comparison keeps every arrangement
	// that ties the maximum enumerable.
	placed := tileID - 1
	if placed+st.emptyCells/st.tileArea < st.bestCount {
		return
	}

	row, col, ok := st.firstEmpty()
	if !ok {
		st.record()
		return
	}
	if tilesLeft == 0 {
		st.record()
		return
	}

	// Original footprint: tileH rows by tileW columns.
	if st.canPlace(row, col, st.tileH, st.tileW) {
		st.place(row, col, st.tileH, st.tileW, tileID)
		st.search(tilesLeft-1, tileID+1)
		st.unplace(row, col, st.tileH, st.tileW)
	}

	// Rotated footprint at the same anchor.
	if st.allowRotation && st.canPlace(row, col, st.tileW, st.tileH) {
		st.place(row, col, st.tileW, st.tileH, tileID)
		st.search(tilesLeft-1, tileID+1)
		st.unplace(row, col, st.tileW, st.tileH)
	}
}

func (st *backtrackState) firstEmpty() (row, col int, ok bool) {
	for i, v := range st.grid {
		if v == 0 {
			return i / st.width, i % st.width, true
		}
	}
	return 0, 0, false
}

func (st *backtrackState) canPlace(row, col, h, w int) bool {
	if row+h > st.height || col+w > st.width {
		return false
	}
	for r := row; r < row+h; r++ {
		base := r * st.width
		for c := col; c < col+w; c++ {
			if st.grid[base+c] != 0 {
				return false
			}
		}
	}
	return true
}

func (st *backtrackState) place(row, col, h, w, tileID int) {
	for r := row; r < row+h; r++ {
		base := r * st.width
		for c := col; c < col+w; c++ {
			st.grid[base+c] = tileID
		}
	}
	st.emptyCells -= h * w
}

func (st *backtrackState) unplace(row, col, h, w int) {
	for r := row; r < row+h; r++ {
		base := r * st.width
		for c := col; c < col+w; c++ {
			st.grid[base+c] = 0
		}
	}
	st.emptyCells += h * w
}

// record extracts the current grid into a placement list and stores it.
func (st *backtrackState) record() {
	placements := st.extract()
	st.found = append(st.found, placements)
	if len(placements) > st.bestCount {
		st.bestCount = len(placements)
	}
}

// extract rebuilds one Placement per distinct label by finding its
// maximal run from the top-left cell: expand width while the label
// matches, then expand height. Orientation is classified by comparing
// the discovered footprint to the tile dimensions; square tiles are
// always Original.
func (st *backtrackState) extract() []model.Placement {
	seen := make(map[int]model.Placement)
	order := make([]int, 0, st.bestCount)

	for r := 0; r < st.height; r++ {
		for c := 0; c < st.width; c++ {
			id := st.grid[r*st.width+c]
			if id == 0 {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			w := 1
			for c+w < st.width && st.grid[r*st.width+c+w] == id {
				w++
			}
			h := 1
			for r+h < st.height && st.grid[(r+h)*st.width+c] == id {
				h++
			}
			orientation := model.Original
			if !(w == st.tileW && h == st.tileH) {
				orientation = model.Rotated
			}
			seen[id] = model.Placement{X: c, Y: r, W: w, H: h, Orientation: orientation}
			order = append(order, id)
		}
	}

	// Placement order follows the tile labels, i.e. insertion order.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j-1] > order[j]; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	placements := make([]model.Placement, 0, len(order))
	for _, id := range order {
		placements = append(placements, seen[id])
	}
	return placements
}
