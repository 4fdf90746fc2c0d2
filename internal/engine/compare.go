package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// ComparisonScenario is a named variation of problem and solver settings
// to evaluate side by side.
type ComparisonScenario struct {
	Name     string
	Problem  model.Problem
	Settings model.SolveSettings
}

// ComparisonResult holds the solution and headline statistics for one
// scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Solution   model.Solution
	Tiles      int
	Efficiency float64
	Centered   bool
}

// CompareScenarios solves each scenario with a fresh orchestrator and
// returns the results in scenario order, enabling what-if comparison of
// rotation, centering, and budget choices.
func CompareScenarios(scenarios []ComparisonScenario, logger zerolog.Logger) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		solver := NewHybridSolver(scenario.Settings, logger)
		sol := solver.Solve(scenario.Problem)
		results = append(results, ComparisonResult{
			Scenario:   scenario,
			Solution:   sol,
			Tiles:      sol.NumTiles(),
			Efficiency: sol.Efficiency(),
			Centered:   sol.IsCentered(),
		})
	}
	return results
}

// BuildDefaultScenarios derives what-if variations from a base problem:
// the opposite rotation policy, centering disabled, and a halved time
// budget.
func BuildDefaultScenarios(p model.Problem, settings model.SolveSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Problem: p, Settings: settings},
	}

	altRotation := p
	altRotation.AllowRotation = !p.AllowRotation
	if altRotation.Validate() == nil {
		name := "Rotation Enabled"
		if !altRotation.AllowRotation {
			name = "Rotation Disabled"
		}
		scenarios = append(scenarios, ComparisonScenario{Name: name, Problem: altRotation, Settings: settings})
	}

	if p.RequireCentering {
		noCenter := p
		noCenter.RequireCentering = false
		scenarios = append(scenarios, ComparisonScenario{Name: "No Centering", Problem: noCenter, Settings: settings})
	}

	if settings.TimeLimit > 2*time.Second {
		quick := settings
		quick.TimeLimit = settings.TimeLimit / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Budget %s (half)", quick.TimeLimit),
			Problem:  p,
			Settings: quick,
		})
	}

	return scenarios
}
