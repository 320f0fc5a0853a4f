package tui

import (
	"fmt"
	"strings"

	"github.com/wealthsim/wealthsim/internal/output"
)

// View renders the current state.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("wealthsim") + "\n")

	switch {
	case m.err != nil:
		sb.WriteString(ErrorStyle.Render("simulation failed") + "\n\n")
		sb.WriteString(m.err.Error() + "\n")

	case !m.done:
		sb.WriteString(StatusStyle.Render(fmt.Sprintf(
			"Simulating %q: %d iterations over %d years",
			m.scenario.Name, m.cfg.Iterations, m.scenario.TimeHorizon)) + "\n\n")
		sb.WriteString(m.progressBar.ViewAs(m.percent) + "\n")

	default:
		sb.WriteString(DoneStyle.Render("simulation complete") + "\n\n")
		formatter := &output.ConsoleFormatter{}
		report, err := formatter.FormatResult(m.result)
		if err != nil {
			sb.WriteString(ErrorStyle.Render(err.Error()) + "\n")
		} else {
			sb.WriteString(PanelStyle.Render(report) + "\n")
		}
	}

	sb.WriteString(HelpStyle.Render("q: quit"))
	return sb.String()
}
