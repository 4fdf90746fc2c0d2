package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chahal-neema/2D-Packing/internal/geometry"
	"github.com/chahal-neema/2D-Packing/internal/model"
	"github.com/chahal-neema/2D-Packing/internal/symmetry"
)

// HybridSolver escalates across strategies in order of cost under one
// wall-clock budget: the analytic grid solver, the center-out greedy
// fill, exhaustive backtracking, and finally the pseudo-Boolean
// optimization backend. The best solution so far is kept between tiers
// and returned as soon as the theoretical maximum (or a high-efficiency
// threshold) is reached.
//
// Budgets are recomputed from elapsed wall time at tier boundaries, and
// the backtracking tier's limit fields are mutated per call, so a
// HybridSolver serves one solve at a time.
type HybridSolver struct {
	settings model.SolveSettings
	log      zerolog.Logger

	mathematical *MathematicalSolver
	greedy       *GreedySolver
	backtrack    *BacktrackSolver
	ilp          Strategy // nil skips the optimization tier
}

// NewHybridSolver builds the orchestrator from explicit settings. Pass
// zerolog.Nop() to silence tier progress.
func NewHybridSolver(settings model.SolveSettings, logger zerolog.Logger) *HybridSolver {
	return &HybridSolver{
		settings:     settings,
		log:          logger.With().Str("module", "engine").Logger(),
		mathematical: NewMathematicalSolver(),
		greedy:       NewGreedySolver(settings.GreedyStrategy),
		backtrack:    NewBacktrackSolver(settings.BacktrackMaxSolutions, settings.BacktrackTimeLimit),
		ilp:          NewILPSolver(settings.ILPTimeLimit, settings.CompactnessWeight),
	}
}

func (h *HybridSolver) Name() string { return "Hybrid" }

// efficiencyTarget is the early-exit efficiency threshold for the
// analytic tier, in percent.
const efficiencyTarget = 95.0

// Solve runs the tiers in order and returns the best arrangement. The
// winning tier is recorded in the provenance as Hybrid(<tier name>).
func (h *HybridSolver) Solve(p model.Problem) model.Solution {
	start := time.Now()
	budget := h.settings.TimeLimit
	target := p.TheoreticalMaxTiles()

	h.log.Info().
		Int("container_w", p.ContainerW).Int("container_h", p.ContainerH).
		Int("tile_w", p.TileW).Int("tile_h", p.TileH).
		Int("theoretical_max", target).
		Msg("hybrid solve started")

	best := model.NewSolution(nil, p.ContainerW, p.ContainerH, h.Name())

	// Tier 1: analytic grid arrangements.
	if sol, ok := h.runTier("mathematical", func() model.Solution { return h.mathematical.Solve(p) }); ok {
		if sol.NumTiles() > 0 {
			h.logTier("mathematical", sol)
			best = sol
			if sol.NumTiles() >= target || sol.Efficiency() >= efficiencyTarget {
				return h.finish(best, start, "optimal or high-efficiency grid")
			}
		}
	}

	// Tier 2: greedy center-out fill.
	if sol, ok := h.runTier("greedy", func() model.Solution { return h.greedy.Solve(p) }); ok {
		if sol.NumTiles() > best.NumTiles() {
			h.logTier("greedy", sol)
			best = sol
		}
	}
	if best.NumTiles() >= target {
		return h.finish(best, start, "theoretical maximum reached")
	}
	if elapsed := time.Since(start); elapsed > budget*7/10 {
		return h.finish(best, start, "time budget nearly exhausted")
	}

	// Tier 3: exhaustive backtracking with the remaining budget, keeping
	// a reservation for the optimization tier.
	remaining := budget - time.Since(start) - 10*time.Second
	if remaining < 5*time.Second {
		remaining = 5 * time.Second
	}
	h.backtrack.TimeLimit = remaining
	if sol, ok := h.runTier("backtrack", func() model.Solution { return h.backtrack.Solve(p) }); ok {
		if sol.NumTiles() > best.NumTiles() {
			h.logTier("backtrack", sol)
			best = sol
		}
	}
	if best.NumTiles() >= target {
		return h.finish(best, start, "theoretical maximum reached")
	}

	// Tier 4: optimization backend, only with enough budget left.
	if elapsed := time.Since(start); h.ilp == nil || elapsed > budget*8/10 {
		return h.finish(best, start, "skipping optimization tier")
	}
	if ilp, ok := h.ilp.(*ILPSolver); ok {
		ilpBudget := budget - time.Since(start)
		if ilpBudget < 5*time.Second {
			ilpBudget = 5 * time.Second
		}
		ilp.TimeLimit = ilpBudget
	}
	if sol, ok := h.runTier("ilp", func() model.Solution { return h.ilp.Solve(p) }); ok {
		if sol.NumTiles() > best.NumTiles() {
			h.logTier("ilp", sol)
			best = sol
		}
	}

	return h.finish(best, start, "all tiers done")
}

// SolveAllOptimal finds up to maxSolutions distinct optimal arrangements:
// solve once for the target tile count, enumerate candidates at that
// count, deduplicate under symmetry, and center the survivors.
func (h *HybridSolver) SolveAllOptimal(p model.Problem, maxSolutions int) []model.Solution {
	start := time.Now()
	if maxSolutions <= 0 {
		maxSolutions = h.settings.MaxSolutions
	}

	bestSingle := h.Solve(p)
	if bestSingle.NumTiles() == 0 {
		return nil
	}
	target := bestSingle.NumTiles()
	h.log.Info().Int("target_tiles", target).Msg("enumerating optimal arrangements")

	var solutions []model.Solution
	if target <= 10 {
		// Small enough for full exhaustive enumeration. The exhaustive
		// search records arrangements only at its tile budget, so when the
		// area bound is unreachable it finds nothing and the single best
		// stands in.
		solutions = h.backtrack.SolveAllOptimal(p, maxSolutions)
		if len(solutions) == 0 || solutions[0].NumTiles() < target {
			solutions = []model.Solution{bestSingle}
		}
	} else {
		// Large targets: grid factorizations first, backtracking only if
		// they fall short of the target.
		solutions = h.mathematical.SolveAllOptimal(p, maxSolutions)
		if len(solutions) == 0 || solutions[0].NumTiles() < target {
			solutions = h.backtrack.SolveAllOptimal(p, maxSolutions)
			if len(solutions) == 0 || solutions[0].NumTiles() < target {
				solutions = []model.Solution{bestSingle}
			}
		}
	}

	if len(solutions) > 1 {
		before := len(solutions)
		solutions = symmetry.Deduplicate(solutions, p.ContainerW, p.ContainerH)
		h.log.Debug().Int("before", before).Int("after", len(solutions)).Msg("deduplicated arrangements")
	}

	elapsed := time.Since(start)
	for i := range solutions {
		if p.RequireCentering && !solutions[i].IsCentered() {
			solutions[i].Placements = geometry.Center(solutions[i].Placements, p.ContainerW, p.ContainerH)
		}
		solutions[i].SolveTime = elapsed
		solutions[i].SolverName = wrapProvenance(solutions[i].SolverName)
	}
	return solutions
}

// runTier executes one tier behind a fault boundary: an unexpected panic
// inside a strategy is demoted to "tier produced no improvement" instead
// of aborting the pipeline.
func (h *HybridSolver) runTier(name string, fn func() model.Solution) (sol model.Solution, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Warn().Str("tier", name).Interface("panic", r).Msg("tier failed, continuing without it")
			ok = false
		}
	}()
	return fn(), true
}

func (h *HybridSolver) logTier(tier string, sol model.Solution) {
	h.log.Info().
		Str("tier", tier).
		Int("tiles", sol.NumTiles()).
		Float64("efficiency", sol.Efficiency()).
		Msg("tier improved best solution")
}

func (h *HybridSolver) finish(best model.Solution, start time.Time, reason string) model.Solution {
	best.SolveTime = time.Since(start)
	best.SolverName = wrapProvenance(best.SolverName)
	h.log.Info().
		Str("solver", best.SolverName).
		Int("tiles", best.NumTiles()).
		Float64("efficiency", best.Efficiency()).
		Dur("elapsed", best.SolveTime).
		Str("reason", reason).
		Msg("hybrid solve finished")
	return best
}

// wrapProvenance records the winning tier as Hybrid(<name>). Names that
// already carry the orchestrator's provenance are left as-is so chains
// never double-wrap.
func wrapProvenance(name string) string {
	if name == "Hybrid" || strings.HasPrefix(name, "Hybrid(") {
		return name
	}
	return fmt.Sprintf("Hybrid(%s)", name)
}
