package random

import "math"

const (
	validateBins = 10
	// Significance threshold for the uniformity self-check.
	significanceLevel = 0.05
)

// ValidationResult reports the chi-square goodness-of-fit self-check.
type ValidationResult struct {
	ChiSquare float64 `json:"chiSquare"`
	PValue    float64 `json:"pValue"`
	IsValid   bool    `json:"isValid"`
}

// Validate draws sampleSize uniforms from the source, bins them into 10
// equal-width buckets and tests the counts against a uniform distribution.
// IsValid is true when the approximate p-value exceeds 0.05. This is a
// self-check for implementers, not a production code path; a degenerate
// generator (constant output) fails it.
func (s *Source) Validate(sampleSize int) ValidationResult {
	samples := make([]float64, sampleSize)
	for i := range samples {
		samples[i] = s.Next()
	}
	return validateUniform(samples)
}

func validateUniform(samples []float64) ValidationResult {
	if len(samples) == 0 {
		return ValidationResult{}
	}

	var counts [validateBins]int
	for _, v := range samples {
		bin := int(v * validateBins)
		if bin >= validateBins {
			bin = validateBins - 1
		}
		counts[bin]++
	}

	expected := float64(len(samples)) / validateBins
	chi2 := 0.0
	for _, c := range counts {
		diff := float64(c) - expected
		chi2 += diff * diff / expected
	}

	p := chiSquarePValue(chi2, validateBins-1)
	return ValidationResult{
		ChiSquare: chi2,
		PValue:    p,
		IsValid:   p > significanceLevel,
	}
}

// chiSquarePValue approximates the upper tail of the chi-square distribution
// with df degrees of freedom using the Wilson-Hilferty cube-root transform,
// which maps the statistic onto a standard normal.
func chiSquarePValue(chi2 float64, df int) float64 {
	if chi2 <= 0 {
		return 1
	}
	k := float64(df)
	z := (math.Cbrt(chi2/k) - (1 - 2/(9*k))) / math.Sqrt(2/(9*k))
	return 0.5 * math.Erfc(z/math.Sqrt2)
}
