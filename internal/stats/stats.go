// Package stats reduces simulated outcome sets to descriptive statistics and
// goal probabilities. All reductions are pure functions over float64 slices.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/wealthsim/wealthsim/internal/domain"
)

// DefaultConfidenceLevels are the intervals reported with every run unless
// the caller asks for others.
var DefaultConfidenceLevels = []float64{0.90, 0.95}

// Summarize reduces results to descriptive statistics. The input slice is not
// modified; percentile work happens on a sorted copy. Empty input is reported
// as ErrInvalidInput.
func Summarize(results []float64) (domain.SimulationStats, error) {
	if len(results) == 0 {
		return domain.SimulationStats{}, fmt.Errorf("%w: cannot summarize empty results", domain.ErrInvalidInput)
	}

	n := float64(len(results))
	sorted := sortedCopy(results)

	mean := 0.0
	for _, v := range results {
		mean += v
	}
	mean /= n

	variance := 0.0
	for _, v := range results {
		d := v - mean
		variance += d * d
	}
	variance /= n // population variance, by convention
	stdDev := math.Sqrt(variance)

	// Standardized moments are defined as 0 for a degenerate distribution.
	skewness := 0.0
	kurtosis := 0.0
	if stdDev > 0 {
		for _, v := range results {
			z := (v - mean) / stdDev
			z3 := z * z * z
			skewness += z3
			kurtosis += z3 * z
		}
		skewness /= n
		kurtosis = kurtosis/n - 3 // excess kurtosis
	}

	return domain.SimulationStats{
		Mean:              mean,
		Median:            medianSorted(sorted),
		StandardDeviation: stdDev,
		Variance:          variance,
		Minimum:           sorted[0],
		Maximum:           sorted[len(sorted)-1],
		Skewness:          skewness,
		Kurtosis:          kurtosis,
		Percentiles: domain.Percentiles{
			P5:  percentileSorted(sorted, 5),
			P10: percentileSorted(sorted, 10),
			P25: percentileSorted(sorted, 25),
			P75: percentileSorted(sorted, 75),
			P90: percentileSorted(sorted, 90),
			P95: percentileSorted(sorted, 95),
		},
	}, nil
}

// Percentile returns the p-th percentile (0..100) of results using linear
// interpolation between adjacent order statistics.
func Percentile(results []float64, p float64) (float64, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("%w: cannot take percentile of empty results", domain.ErrInvalidInput)
	}
	return percentileSorted(sortedCopy(results), p), nil
}

// ConfidenceIntervals computes empirical intervals for each requested level:
// [(1-level)/2, 1-(1-level)/2] percentiles of the outcome distribution.
func ConfidenceIntervals(results []float64, levels []float64) ([]domain.ConfidenceInterval, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: cannot compute confidence intervals of empty results", domain.ErrInvalidInput)
	}

	sorted := sortedCopy(results)
	intervals := make([]domain.ConfidenceInterval, 0, len(levels))
	for _, level := range levels {
		tail := (1 - level) / 2 * 100
		intervals = append(intervals, domain.ConfidenceInterval{
			Level: level,
			Lower: percentileSorted(sorted, tail),
			Upper: percentileSorted(sorted, 100-tail),
		})
	}
	return intervals, nil
}

// SuccessProbability is the fraction of outcomes meeting or exceeding target.
func SuccessProbability(results []float64, target float64) (float64, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("%w: cannot evaluate goal against empty results", domain.ErrInvalidInput)
	}

	count := 0
	for _, v := range results {
		if v >= target {
			count++
		}
	}
	return float64(count) / float64(len(results)), nil
}

// PearsonCorrelation computes the correlation coefficient of two equal-length
// series. A series with zero variance correlates at 0 with everything.
func PearsonCorrelation(x, y []float64) (float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, fmt.Errorf("%w: correlation requires equal-length non-empty series (%d vs %d)",
			domain.ErrInvalidInput, len(x), len(y))
	}

	n := float64(len(x))
	meanX, meanY := 0.0, 0.0
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= n
	meanY /= n

	cov, varX, varY := 0.0, 0.0, 0.0
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, nil
	}
	return cov / math.Sqrt(varX*varY), nil
}

// MeanStdDev returns the arithmetic mean and population standard deviation.
func MeanStdDev(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	n := float64(len(values))
	for _, v := range values {
		mean += v
	}
	mean /= n

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / n)
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

func medianSorted(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// percentileSorted interpolates linearly between adjacent order statistics
// for sub-integer ranks; nearest-rank is deliberately not used.
func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(rank)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	if lower < 0 {
		return sorted[0]
	}

	fraction := rank - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*fraction
}
