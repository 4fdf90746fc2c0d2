package engine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/crillab/gophersat/solver"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// ILPSolver formulates the packing problem as 0/1 pseudo-Boolean
// optimization and delegates to the gophersat solver. One Boolean
// variable stands for each candidate (x, y, orientation) placement; cell
// constraints forbid overlap and a cardinality constraint enforces the
// tile budget. The objective rewards each placed tile and adds a
// compactness bonus that shrinks with the tile's Manhattan distance from
// the container center.
//
// Infeasibility is not an error: it yields an empty solution with
// metadata status "no_solution". Hitting the time budget returns the best
// model found so far with status "feasible".
type ILPSolver struct {
	TimeLimit         time.Duration
	CompactnessWeight float64
}

// NewILPSolver returns the optimization-backed strategy.
func NewILPSolver(timeLimit time.Duration, compactnessWeight float64) *ILPSolver {
	return &ILPSolver{TimeLimit: timeLimit, CompactnessWeight: compactnessWeight}
}

func (s *ILPSolver) Name() string { return "ILP" }

// ilpCandidate is one candidate placement, bound to a Boolean variable.
type ilpCandidate struct {
	placement model.Placement
	coeff     int
}

// Solve builds and optimizes the pseudo-Boolean model.
func (s *ILPSolver) Solve(p model.Problem) model.Solution {
	start := time.Now()

	candidates := s.buildCandidates(p)
	sol := model.NewSolution(nil, p.ContainerW, p.ContainerH, s.Name())
	if len(candidates) == 0 {
		sol.SolveTime = time.Since(start)
		sol.Metadata["status"] = "no_solution"
		sol.Metadata["variable_count"] = 0
		return sol
	}

	prob := s.buildProblem(p, candidates)

	// The stop channel implements the wall-clock budget: the solver
	// returns its best model so far when the channel closes.
	var timedOut atomic.Bool
	stop := make(chan struct{})
	timer := time.AfterFunc(s.TimeLimit, func() {
		timedOut.Store(true)
		close(stop)
	})
	defer timer.Stop()

	res := solver.New(prob).Optimal(nil, stop)
	sol.SolveTime = time.Since(start)
	sol.Metadata["variable_count"] = len(candidates)

	if res.Status != solver.Sat {
		sol.Metadata["status"] = "no_solution"
		return sol
	}

	objective := 0
	var placements []model.Placement
	for i, cand := range candidates {
		// Model is zero-indexed: Model[i] holds variable i+1.
		if res.Model[i] {
			placements = append(placements, cand.placement)
			objective += cand.coeff
		}
	}
	sol.Placements = placements

	status := "optimal"
	if timedOut.Load() {
		status = "feasible"
	}
	sol.Metadata["status"] = status
	sol.Metadata["objective_value"] = float64(objective)
	sol.Metadata["compactness_weight"] = s.CompactnessWeight
	return sol
}

// buildCandidates enumerates every legal (x, y, orientation) placement
// with its objective coefficient.
func (s *ILPSolver) buildCandidates(p model.Problem) []ilpCandidate {
	centerX := float64(p.ContainerW) / 2
	centerY := float64(p.ContainerH) / 2

	footprints := []model.Placement{{W: p.TileW, H: p.TileH, Orientation: model.Original}}
	if p.AllowRotation && p.TileW != p.TileH {
		footprints = append(footprints, model.Placement{W: p.TileH, H: p.TileW, Orientation: model.Rotated})
	}

	var candidates []ilpCandidate
	for _, f := range footprints {
		for x := 0; x+f.W <= p.ContainerW; x++ {
			for y := 0; y+f.H <= p.ContainerH; y++ {
				tileCenterX := float64(x) + float64(f.W)/2
				tileCenterY := float64(y) + float64(f.H)/2
				distance := math.Abs(tileCenterX-centerX) + math.Abs(tileCenterY-centerY)

				coeff := int(math.Round(1000 + s.CompactnessWeight*(50-distance)))
				if coeff < 1 {
					coeff = 1
				}
				candidates = append(candidates, ilpCandidate{
					placement: model.Placement{X: x, Y: y, W: f.W, H: f.H, Orientation: f.Orientation},
					coeff:     coeff,
				})
			}
		}
	}
	return candidates
}

// buildProblem assembles the cell non-overlap constraints, the tile-count
// cardinality constraint, and the maximization objective (expressed as
// minimizing the reward of unchosen placements).
func (s *ILPSolver) buildProblem(p model.Problem, candidates []ilpCandidate) *solver.Problem {
	// Covering index: which candidate variables occupy each cell.
	covering := make([][]int, p.ContainerW*p.ContainerH)
	for i, cand := range candidates {
		v := i + 1
		pl := cand.placement
		for cy := pl.Y; cy < pl.Y+pl.H; cy++ {
			for cx := pl.X; cx < pl.X+pl.W; cx++ {
				idx := cy*p.ContainerW + cx
				covering[idx] = append(covering[idx], v)
			}
		}
	}

	var constrs []solver.PBConstr
	for _, vars := range covering {
		if len(vars) < 2 {
			continue
		}
		constrs = append(constrs, solver.LtEq(vars, onesOf(len(vars)), 1))
	}

	all := make([]int, len(candidates))
	for i := range candidates {
		all[i] = i + 1
	}
	constrs = append(constrs, solver.LtEq(all, onesOf(len(candidates)), p.EffectiveMaxTiles()))

	prob := solver.ParsePBConstrs(constrs)

	// Minimize the total reward of placements left unchosen, which
	// maximizes the reward of chosen ones.
	costLits := make([]solver.Lit, len(candidates))
	costWeights := make([]int, len(candidates))
	for i, cand := range candidates {
		costLits[i] = solver.IntToLit(int32(-(i + 1)))
		costWeights[i] = cand.coeff
	}
	prob.SetCostFunc(costLits, costWeights)
	return prob
}

// onesOf returns a weight slice of n ones for unit-coefficient
// pseudo-Boolean constraints.
func onesOf(n int) []int {
	ones := make([]int, n)
	for i := range ones {
		ones[i] = 1
	}
	return ones
}
