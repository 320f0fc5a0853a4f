package tui

import "github.com/wealthsim/wealthsim/internal/domain"

// ProgressMsg reports the completed fraction of the running simulation.
type ProgressMsg float64

// ResultMsg carries the finished simulation result or its error.
type ResultMsg struct {
	Result *domain.SimulationResult
	Err    error
}
