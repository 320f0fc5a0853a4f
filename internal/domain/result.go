package domain

import (
	"time"

	"github.com/google/uuid"
)

// SimulationStats are the descriptive statistics of one run's terminal values.
type SimulationStats struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standardDeviation"`
	Variance          float64 `json:"variance"` // population variance (divide by N)
	Minimum           float64 `json:"minimum"`
	Maximum           float64 `json:"maximum"`
	Skewness          float64 `json:"skewness"` // third standardized moment
	Kurtosis          float64 `json:"kurtosis"` // excess kurtosis (normal = 0)

	Percentiles Percentiles `json:"percentiles"`
}

// Percentiles holds the fixed percentile table reported with every run.
type Percentiles struct {
	P5  float64 `json:"p5"`
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// ConfidenceInterval is an empirical interval taken from the outcome
// distribution itself, not from a parametric assumption.
type ConfidenceInterval struct {
	Level float64 `json:"level"` // e.g. 0.95
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// SimulationResult is the complete, serializable output of one Monte Carlo
// run. It carries no generator state and no closures.
type SimulationResult struct {
	RunID         uuid.UUID          `json:"runId"`
	Scenario      InvestmentScenario `json:"scenario"`
	Iterations    int                `json:"iterations"`
	Seed          int64              `json:"seed"`
	EngineVersion string             `json:"engineVersion"`
	StartedAt     time.Time          `json:"startedAt"`
	ExecutionTime time.Duration      `json:"executionTime"`

	// Results holds one terminal value per iteration, in iteration order.
	Results []float64 `json:"results"`

	Statistics SimulationStats `json:"statistics"`

	// RealStatistics is present when the scenario carries an inflation rate:
	// the same statistics over terminals deflated by (1+inflation)^horizon.
	// Nominal compounding is never altered.
	RealStatistics *SimulationStats `json:"realStatistics,omitempty"`

	// GoalSuccessProbability is present when the scenario has a target value.
	GoalSuccessProbability *float64 `json:"goalSuccessProbability,omitempty"`

	ConfidenceIntervals []ConfidenceInterval `json:"confidenceIntervals"`
}

// RiskMetrics summarizes the downside profile of one regime's outcome set.
// VaR and CVaR are losses at 95% confidence expressed as positive fractions
// of the initial value; drawdowns are true path-dependent maxima.
type RiskMetrics struct {
	ValueAtRisk95    float64 `json:"valueAtRisk95"`
	ConditionalVaR95 float64 `json:"conditionalVaR95"`
	MeanMaxDrawdown  float64 `json:"meanMaxDrawdown"`
	WorstDrawdown    float64 `json:"worstDrawdown"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	SortinoRatio     float64 `json:"sortinoRatio"`
}

// ScenarioResult is one regime's outcome within a multi-scenario analysis.
type ScenarioResult struct {
	Scenario   EconomicScenario  `json:"scenario"`
	Simulation *SimulationResult `json:"simulation"`

	// Returns holds the per-iteration cumulative return over the horizon
	// (terminal/initial - 1), retained for cross-regime correlation.
	Returns []float64 `json:"returns"`

	MeanReturn float64     `json:"meanReturn"`
	Volatility float64     `json:"volatility"`
	Risk       RiskMetrics `json:"risk"`
}

// ScenarioRankings orders regime IDs three independent ways. Ties break by
// lexical scenario ID so repeated analyses rank identically.
type ScenarioRankings struct {
	ByRawReturn    []string `json:"byRawReturn"`    // highest mean return first
	ByRiskAdjusted []string `json:"byRiskAdjusted"` // highest Sharpe first
	ByDownsideRisk []string `json:"byDownsideRisk"` // lowest CVaR first
}

// ScenarioComparison aggregates per-regime results with cross-regime
// rankings, a Pearson correlation matrix over return series, and an
// equal-allocation diversification benefit.
type ScenarioComparison struct {
	BaseScenario InvestmentScenario `json:"baseScenario"`
	Results      []ScenarioResult   `json:"results"`
	Rankings     ScenarioRankings   `json:"rankings"`

	// ScenarioIDs gives the row/column order of CorrelationMatrix.
	ScenarioIDs       []string    `json:"scenarioIds"`
	CorrelationMatrix [][]float64 `json:"correlationMatrix"`

	// DiversificationBenefit is the reduction in blended volatility versus
	// the average of individual volatilities under equal allocation.
	DiversificationBenefit float64 `json:"diversificationBenefit"`

	Recommendations []string `json:"recommendations"`
}
