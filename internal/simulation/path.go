package simulation

import "github.com/wealthsim/wealthsim/internal/domain"

// RandomSource is the draw interface the path simulator consumes. The
// concrete implementation is internal/random.Source; tests substitute
// counting spies.
type RandomSource interface {
	// Next returns the next uniform value in [0, 1).
	Next() float64
	// NextGaussian returns a normally distributed value.
	NextGaussian(mean, stdDev float64) float64
}

// PathOutcome is the result of simulating one trajectory: the terminal value
// and the largest peak-to-trough decline observed along the path.
type PathOutcome struct {
	TerminalValue float64
	MaxDrawdown   float64 // fraction of the running peak, 0 when the path never declines
}

// SimulatePath runs one iteration of the investment scenario against the
// shared random source.
//
// Per year: one gaussian draw for the return, then one uniform draw per
// configured shock (always consumed, so the draw sequence is identical
// whether or not shocks trigger). Zero volatility likewise consumes the same
// draws and yields the expected return deterministically. Values are not
// clamped; arbitrarily small or negative terminals mean financial ruin and
// are the caller's to interpret. Inflation never enters the compounding here;
// real values are derived only at reporting time.
func SimulatePath(scenario *domain.InvestmentScenario, rng RandomSource) PathOutcome {
	value := scenario.InitialValue
	peak := value
	maxDrawdown := 0.0

	for year := 0; year < scenario.TimeHorizon; year++ {
		r := rng.NextGaussian(scenario.ExpectedReturn, scenario.Volatility)

		for _, shock := range scenario.MarketShocks {
			if rng.Next() < shock.Probability {
				r += shock.Impact
			}
		}

		value *= 1 + r

		if value > peak {
			peak = value
		} else if peak > 0 {
			dd := (peak - value) / peak
			if dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}

	return PathOutcome{TerminalValue: value, MaxDrawdown: maxDrawdown}
}
