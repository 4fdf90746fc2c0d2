// Package engine contains the packing strategies and the tiered
// orchestrator that composes them: an analytic grid solver, greedy fills,
// an exhaustive backtracking search, and a pseudo-Boolean optimization
// backend, all working over the shared data model.
package engine

import "github.com/chahal-neema/2D-Packing/internal/model"

// Strategy solves one packing problem and returns the best arrangement it
// can find. Infeasibility and deadline overrun are never errors: both
// yield the best (possibly empty) solution found.
//
// A strategy instance holds private mutable search state and budget
// fields, so it is safe for one in-flight solve at a time.
type Strategy interface {
	Name() string
	Solve(p model.Problem) model.Solution
}

// Enumerator is the optional capability of strategies that can enumerate
// multiple optimal arrangements rather than a single best. The
// orchestrator queries for this capability instead of relying on a
// default that silently wraps Solve.
type Enumerator interface {
	Strategy
	SolveAllOptimal(p model.Problem, maxSolutions int) []model.Solution
}
