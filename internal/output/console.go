package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wealthsim/wealthsim/internal/domain"
)

// ConsoleFormatter renders results as plain-text console tables.
type ConsoleFormatter struct{}

// FormatResult generates a readable report for one simulation run.
func (cf *ConsoleFormatter) FormatResult(result *domain.SimulationResult) (string, error) {
	var sb strings.Builder

	sb.WriteString("WEALTH PROJECTION\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Scenario:    %s\n", result.Scenario.Name))
	sb.WriteString(fmt.Sprintf("Run ID:      %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Iterations:  %d (seed %d)\n", result.Iterations, result.Seed))
	sb.WriteString(fmt.Sprintf("Horizon:     %d years\n", result.Scenario.TimeHorizon))
	sb.WriteString(fmt.Sprintf("Elapsed:     %s\n", result.ExecutionTime.Round(1e6)))
	sb.WriteString("\n")

	cf.writeStats(&sb, "TERMINAL VALUE (NOMINAL)", &result.Statistics)
	if result.RealStatistics != nil {
		sb.WriteString("\n")
		cf.writeStats(&sb, "TERMINAL VALUE (TODAY'S DOLLARS)", result.RealStatistics)
	}

	if result.GoalSuccessProbability != nil {
		sb.WriteString("\nGOAL\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		target := "-"
		if result.Scenario.TargetValue != nil {
			target = "$" + formatAmount(*result.Scenario.TargetValue)
		}
		sb.WriteString(fmt.Sprintf("  Target:              %s\n", target))
		sb.WriteString(fmt.Sprintf("  Success Probability: %.1f%%\n", *result.GoalSuccessProbability*100))
	}

	if len(result.ConfidenceIntervals) > 0 {
		sb.WriteString("\nCONFIDENCE INTERVALS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, ci := range result.ConfidenceIntervals {
			sb.WriteString(fmt.Sprintf("  %2.0f%%: $%s - $%s\n",
				ci.Level*100, formatAmount(ci.Lower), formatAmount(ci.Upper)))
		}
	}

	sb.WriteString(strings.Repeat("=", 72) + "\n")
	return sb.String(), nil
}

// FormatComparison renders the multi-regime analysis.
func (cf *ConsoleFormatter) FormatComparison(comparison *domain.ScenarioComparison) (string, error) {
	var sb strings.Builder

	sb.WriteString("ECONOMIC SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n\n", comparison.BaseScenario.Name))

	nameWidth := 20
	numWidth := 11
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Regime",
		numWidth, "Mean Ret",
		numWidth, "Volatility",
		numWidth, "VaR 95%",
		numWidth, "CVaR 95%",
		numWidth, "Sharpe",
		numWidth, "Max DD"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	for _, r := range comparison.Results {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
			nameWidth, truncate(r.Scenario.Name, nameWidth),
			numWidth, formatPct(r.MeanReturn),
			numWidth, formatPct(r.Volatility),
			numWidth, formatPct(r.Risk.ValueAtRisk95),
			numWidth, formatPct(r.Risk.ConditionalVaR95),
			numWidth, fmt.Sprintf("%.2f", r.Risk.SharpeRatio),
			numWidth, formatPct(r.Risk.WorstDrawdown)))
	}
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	sb.WriteString("\nRANKINGS\n")
	sb.WriteString(strings.Repeat("-", 88) + "\n")
	sb.WriteString(fmt.Sprintf("  By Raw Return:    %s\n", strings.Join(comparison.Rankings.ByRawReturn, " > ")))
	sb.WriteString(fmt.Sprintf("  By Risk-Adjusted: %s\n", strings.Join(comparison.Rankings.ByRiskAdjusted, " > ")))
	sb.WriteString(fmt.Sprintf("  By Downside Risk: %s\n", strings.Join(comparison.Rankings.ByDownsideRisk, " > ")))

	if len(comparison.ScenarioIDs) > 1 {
		sb.WriteString("\nRETURN CORRELATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		sb.WriteString(fmt.Sprintf("%-*s", nameWidth, ""))
		for _, id := range comparison.ScenarioIDs {
			sb.WriteString(fmt.Sprintf(" %*s", numWidth, truncate(id, numWidth)))
		}
		sb.WriteString("\n")
		for i, id := range comparison.ScenarioIDs {
			sb.WriteString(fmt.Sprintf("%-*s", nameWidth, truncate(id, nameWidth)))
			for j := range comparison.ScenarioIDs {
				sb.WriteString(fmt.Sprintf(" %*s", numWidth, fmt.Sprintf("%.3f", comparison.CorrelationMatrix[i][j])))
			}
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("\nDiversification Benefit: %s volatility reduction (equal weights)\n",
			formatPct(comparison.DiversificationBenefit)))
	}

	if len(comparison.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range comparison.Recommendations {
			sb.WriteString(fmt.Sprintf("  - %s\n", rec))
		}
	}

	return sb.String(), nil
}

func (cf *ConsoleFormatter) writeStats(sb *strings.Builder, title string, s *domain.SimulationStats) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("  Mean:     $%-14s Median:   $%s\n",
		formatAmount(s.Mean), formatAmount(s.Median)))
	sb.WriteString(fmt.Sprintf("  Std Dev:  $%-14s Range:    $%s - $%s\n",
		formatAmount(s.StandardDeviation), formatAmount(s.Minimum), formatAmount(s.Maximum)))
	sb.WriteString(fmt.Sprintf("  Skewness: %-15.3f Kurtosis: %.3f\n", s.Skewness, s.Kurtosis))
	sb.WriteString("  Percentiles:\n")
	sb.WriteString(fmt.Sprintf("    5th: $%-12s 10th: $%-12s 25th: $%s\n",
		formatAmount(s.Percentiles.P5), formatAmount(s.Percentiles.P10), formatAmount(s.Percentiles.P25)))
	sb.WriteString(fmt.Sprintf("    75th: $%-11s 90th: $%-12s 95th: $%s\n",
		formatAmount(s.Percentiles.P75), formatAmount(s.Percentiles.P90), formatAmount(s.Percentiles.P95)))
}

// formatAmount renders a dollar amount compactly, scaling to K/M.
func formatAmount(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	}
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(2)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
