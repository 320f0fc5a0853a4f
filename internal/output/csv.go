package output

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/wealthsim/wealthsim/internal/domain"
)

// CSVFormatter renders results as CSV for spreadsheet import.
type CSVFormatter struct{}

// FormatResult generates a single-row summary of one simulation run.
func (cf *CSVFormatter) FormatResult(result *domain.SimulationResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Iterations",
		"Seed",
		"Mean",
		"Median",
		"Std Dev",
		"Minimum",
		"Maximum",
		"P5",
		"P95",
		"Skewness",
		"Kurtosis",
		"Goal Success Probability",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	s := result.Statistics
	goal := ""
	if result.GoalSuccessProbability != nil {
		goal = formatFloat(*result.GoalSuccessProbability)
	}
	row := []string{
		result.Scenario.Name,
		fmt.Sprintf("%d", result.Iterations),
		fmt.Sprintf("%d", result.Seed),
		formatFloat(s.Mean),
		formatFloat(s.Median),
		formatFloat(s.StandardDeviation),
		formatFloat(s.Minimum),
		formatFloat(s.Maximum),
		formatFloat(s.Percentiles.P5),
		formatFloat(s.Percentiles.P95),
		formatFloat(s.Skewness),
		formatFloat(s.Kurtosis),
		goal,
	}
	if err := writer.Write(row); err != nil {
		return "", err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatComparison generates one CSV row per regime.
func (cf *CSVFormatter) FormatComparison(comparison *domain.ScenarioComparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario ID",
		"Scenario",
		"Mean Return",
		"Volatility",
		"VaR 95",
		"CVaR 95",
		"Mean Max Drawdown",
		"Worst Drawdown",
		"Sharpe Ratio",
		"Sortino Ratio",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range comparison.Results {
		row := []string{
			r.Scenario.ID,
			r.Scenario.Name,
			formatFloat(r.MeanReturn),
			formatFloat(r.Volatility),
			formatFloat(r.Risk.ValueAtRisk95),
			formatFloat(r.Risk.ConditionalVaR95),
			formatFloat(r.Risk.MeanMaxDrawdown),
			formatFloat(r.Risk.WorstDrawdown),
			formatFloat(r.Risk.SharpeRatio),
			formatFloat(r.Risk.SortinoRatio),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
