package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and advances the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.progressBar.Width = barWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case ProgressMsg:
		m.percent = float64(msg)
		return m, waitForProgress(m.updates)

	case ResultMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		if m.err == nil {
			m.percent = 1.0
		}
		return m, nil
	}

	return m, nil
}
