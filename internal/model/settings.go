package model

import "time"

// SolveSettings holds solver configuration. It is an explicit value passed
// into each strategy constructor; there is no process-wide configuration
// state.
type SolveSettings struct {
	// TimeLimit is the overall wall-clock budget for a hybrid solve.
	TimeLimit time.Duration `json:"time_limit"`

	// MaxSolutions caps how many arrangements enumeration returns.
	MaxSolutions int `json:"max_solutions"`

	// BacktrackMaxSolutions and BacktrackTimeLimit bound the exhaustive
	// search tier when it runs standalone inside the orchestrator.
	BacktrackMaxSolutions int           `json:"backtrack_max_solutions"`
	BacktrackTimeLimit    time.Duration `json:"backtrack_time_limit"`

	// ILPTimeLimit bounds the optimization-backed tier.
	ILPTimeLimit time.Duration `json:"ilp_time_limit"`

	// CompactnessWeight trades tile count against distance from the
	// container center in the ILP objective.
	CompactnessWeight float64 `json:"compactness_weight"`

	// GreedyStrategy selects the greedy fill ordering: "bottom_left" or
	// "center_out".
	GreedyStrategy string `json:"greedy_strategy"`
}

// Greedy fill orderings.
const (
	GreedyBottomLeft = "bottom_left"
	GreedyCenterOut  = "center_out"
)

// DefaultSettings returns the standard solver configuration.
func DefaultSettings() SolveSettings {
	return SolveSettings{
		TimeLimit:             60 * time.Second,
		MaxSolutions:          10,
		BacktrackMaxSolutions: 50,
		BacktrackTimeLimit:    30 * time.Second,
		ILPTimeLimit:          30 * time.Second,
		CompactnessWeight:     0.1,
		GreedyStrategy:        GreedyCenterOut,
	}
}
