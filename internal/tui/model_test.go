package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthsim/wealthsim/internal/domain"
	"github.com/wealthsim/wealthsim/internal/simulation"
)

func testModel() Model {
	scenario := &domain.InvestmentScenario{
		Name:           "Test",
		InitialValue:   1000,
		ExpectedReturn: 0.05,
		Volatility:     0.1,
		TimeHorizon:    10,
	}
	return NewModel(simulation.NewEngine(), scenario, simulation.Config{Iterations: 100, Seed: 1})
}

func TestModel_ProgressAdvances(t *testing.T) {
	m := testModel()

	next, cmd := m.Update(ProgressMsg(0.25))
	m = next.(Model)

	assert.Equal(t, 0.25, m.percent)
	assert.NotNil(t, cmd, "must keep listening for updates")
	assert.False(t, m.done)
}

func TestModel_ResultCompletes(t *testing.T) {
	m := testModel()

	next, _ := m.Update(ResultMsg{Result: &domain.SimulationResult{Iterations: 100}})
	m = next.(Model)

	require.True(t, m.done)
	assert.Equal(t, 1.0, m.percent)
	assert.NoError(t, m.err)
}

func TestModel_ResultError(t *testing.T) {
	m := testModel()

	next, _ := m.Update(ResultMsg{Err: errors.New("boom")})
	m = next.(Model)

	require.True(t, m.done)
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "simulation failed")
}

func TestModel_QuitKeys(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
