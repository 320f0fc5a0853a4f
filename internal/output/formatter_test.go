package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthsim/wealthsim/internal/domain"
)

func sampleResult() *domain.SimulationResult {
	goal := 0.72
	target := 500000.0
	return &domain.SimulationResult{
		RunID: uuid.New(),
		Scenario: domain.InvestmentScenario{
			Name:           "Retirement Portfolio",
			InitialValue:   100000,
			ExpectedReturn: 0.07,
			Volatility:     0.15,
			TimeHorizon:    30,
			TargetValue:    &target,
		},
		Iterations:    5000,
		Seed:          12345,
		EngineVersion: "1.0.0",
		StartedAt:     time.Now(),
		ExecutionTime: 120 * time.Millisecond,
		Results:       []float64{400000, 600000, 800000},
		Statistics: domain.SimulationStats{
			Mean:              612345.67,
			Median:            580000,
			StandardDeviation: 250000,
			Variance:          6.25e10,
			Minimum:           90000,
			Maximum:           2400000,
			Skewness:          1.2,
			Kurtosis:          2.1,
			Percentiles: domain.Percentiles{
				P5: 250000, P10: 300000, P25: 420000,
				P75: 760000, P90: 950000, P95: 1100000,
			},
		},
		GoalSuccessProbability: &goal,
		ConfidenceIntervals: []domain.ConfidenceInterval{
			{Level: 0.90, Lower: 260000, Upper: 1050000},
			{Level: 0.95, Lower: 240000, Upper: 1150000},
		},
	}
}

func sampleComparison() *domain.ScenarioComparison {
	return &domain.ScenarioComparison{
		BaseScenario: domain.InvestmentScenario{Name: "Retirement Portfolio", InitialValue: 100000, TimeHorizon: 30},
		Results: []domain.ScenarioResult{
			{
				Scenario:   domain.EconomicScenario{ID: "recession", Name: "Recession"},
				Returns:    []float64{-0.2, 0.1},
				MeanReturn: -0.05,
				Volatility: 0.15,
				Risk:       domain.RiskMetrics{ValueAtRisk95: 0.35, ConditionalVaR95: 0.42, SharpeRatio: -0.4, WorstDrawdown: 0.5},
			},
			{
				Scenario:   domain.EconomicScenario{ID: "bull", Name: "Bull Market"},
				Returns:    []float64{0.8, 1.2},
				MeanReturn: 1.0,
				Volatility: 0.2,
				Risk:       domain.RiskMetrics{ValueAtRisk95: 0.05, ConditionalVaR95: 0.08, SharpeRatio: 1.3, WorstDrawdown: 0.2},
			},
		},
		Rankings: domain.ScenarioRankings{
			ByRawReturn:    []string{"bull", "recession"},
			ByRiskAdjusted: []string{"bull", "recession"},
			ByDownsideRisk: []string{"bull", "recession"},
		},
		ScenarioIDs:            []string{"recession", "bull"},
		CorrelationMatrix:      [][]float64{{1, 0.3}, {0.3, 1}},
		DiversificationBenefit: 0.02,
		Recommendations:        []string{"Best Return: Bull Market averages 100.0% cumulative return"},
	}
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "table", "", "json", "csv"} {
		f, err := GetFormatterByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := GetFormatterByName("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestConsoleFormatter_FormatResult(t *testing.T) {
	f := &ConsoleFormatter{}

	out, err := f.FormatResult(sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out, "WEALTH PROJECTION")
	assert.Contains(t, out, "Retirement Portfolio")
	assert.Contains(t, out, "5000 (seed 12345)")
	assert.Contains(t, out, "Success Probability: 72.0%")
	assert.Contains(t, out, "CONFIDENCE INTERVALS")
	assert.Contains(t, out, "90%")
}

func TestConsoleFormatter_RealStatsSection(t *testing.T) {
	f := &ConsoleFormatter{}

	result := sampleResult()
	out, err := f.FormatResult(result)
	require.NoError(t, err)
	assert.NotContains(t, out, "TODAY'S DOLLARS")

	real := result.Statistics
	real.Mean = 300000
	result.RealStatistics = &real
	out, err = f.FormatResult(result)
	require.NoError(t, err)
	assert.Contains(t, out, "TODAY'S DOLLARS")
}

func TestConsoleFormatter_FormatComparison(t *testing.T) {
	f := &ConsoleFormatter{}

	out, err := f.FormatComparison(sampleComparison())
	require.NoError(t, err)

	assert.Contains(t, out, "ECONOMIC SCENARIO COMPARISON")
	assert.Contains(t, out, "Recession")
	assert.Contains(t, out, "Bull Market")
	assert.Contains(t, out, "By Raw Return:    bull > recession")
	assert.Contains(t, out, "RETURN CORRELATIONS")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	f := &JSONFormatter{Pretty: true}

	out, err := f.FormatResult(sampleResult())
	require.NoError(t, err)

	var decoded domain.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 5000, decoded.Iterations)
	assert.Equal(t, int64(12345), decoded.Seed)
	require.NotNil(t, decoded.GoalSuccessProbability)
	assert.Equal(t, 0.72, *decoded.GoalSuccessProbability)
}

func TestJSONFormatter_Comparison(t *testing.T) {
	f := &JSONFormatter{}

	out, err := f.FormatComparison(sampleComparison())
	require.NoError(t, err)

	var decoded domain.ScenarioComparison
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []string{"recession", "bull"}, decoded.ScenarioIDs)
	assert.Equal(t, [][]float64{{1, 0.3}, {0.3, 1}}, decoded.CorrelationMatrix)
}

func TestCSVFormatter_FormatResult(t *testing.T) {
	f := &CSVFormatter{}

	out, err := f.FormatResult(sampleResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, "Retirement Portfolio", records[1][0])
	assert.Equal(t, "5000", records[1][1])
}

func TestCSVFormatter_FormatComparison(t *testing.T) {
	f := &CSVFormatter{}

	out, err := f.FormatComparison(sampleComparison())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "recession", records[1][0])
	assert.Equal(t, "bull", records[2][0])
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2.40M", formatAmount(2400000))
	assert.Equal(t, "612.3K", formatAmount(612345.67))
	assert.Equal(t, "950.00", formatAmount(950))
	assert.Equal(t, "-1.5K", formatAmount(-1500))
}
