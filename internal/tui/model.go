// Package tui provides an interactive terminal front end for running a
// simulation with live progress and browsing the finished report.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wealthsim/wealthsim/internal/domain"
	"github.com/wealthsim/wealthsim/internal/simulation"
)

// Model drives one simulation run from launch to rendered report.
type Model struct {
	scenario *domain.InvestmentScenario
	cfg      simulation.Config
	engine   *simulation.Engine

	progressBar progress.Model
	percent     float64
	updates     chan float64

	result *domain.SimulationResult
	err    error
	done   bool

	width  int
	height int
}

// NewModel prepares a run of scenario under cfg. The engine is shared with
// the CLI path so both produce identical results for the same seed.
func NewModel(engine *simulation.Engine, scenario *domain.InvestmentScenario, cfg simulation.Config) Model {
	return Model{
		scenario:    scenario,
		cfg:         cfg,
		engine:      engine,
		progressBar: progress.New(progress.WithDefaultGradient()),
		updates:     make(chan float64, 64),
		width:       80,
		height:      24,
	}
}

// Init launches the simulation and starts listening for progress.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runSimulationCmd(), waitForProgress(m.updates))
}

// runSimulationCmd runs the engine in a command goroutine. Progress updates
// flow through the channel; a full channel drops updates rather than stalling
// the simulation.
func (m Model) runSimulationCmd() tea.Cmd {
	scenario, cfg, engine, updates := m.scenario, m.cfg, m.engine, m.updates
	cfg.OnProgress = func(fraction float64) {
		select {
		case updates <- fraction:
		default:
		}
	}

	return func() tea.Msg {
		var result *domain.SimulationResult
		var err error
		if cfg.Workers > 1 {
			result, err = engine.RunParallel(context.Background(), scenario, cfg)
		} else {
			result, err = engine.Run(context.Background(), scenario, cfg)
		}
		close(updates)
		return ResultMsg{Result: result, Err: err}
	}
}

// waitForProgress blocks until the next progress update arrives.
func waitForProgress(updates chan float64) tea.Cmd {
	return func() tea.Msg {
		fraction, ok := <-updates
		if !ok {
			return nil
		}
		return ProgressMsg(fraction)
	}
}
