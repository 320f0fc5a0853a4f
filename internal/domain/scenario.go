package domain

import "fmt"

// MarketShock is an exogenous one-time perturbation applied to a single
// simulated year's return. Each year every shock is tested independently:
// a uniform draw under Probability adds Impact to that year's return.
type MarketShock struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Probability float64 `json:"probability" yaml:"probability"`
	Impact      float64 `json:"impact" yaml:"impact"`
}

// InvestmentScenario describes one investment plan to be simulated. It is a
// plain value object; once handed to the engine it is never mutated.
type InvestmentScenario struct {
	Name           string        `json:"name" yaml:"name"`
	InitialValue   float64       `json:"initialValue" yaml:"initial_value"`
	ExpectedReturn float64       `json:"expectedReturn" yaml:"expected_return"` // annualized, decimal
	Volatility     float64       `json:"volatility" yaml:"volatility"`          // annualized stddev, decimal
	TimeHorizon    int           `json:"timeHorizon" yaml:"time_horizon"`       // years
	InflationRate  *float64      `json:"inflationRate,omitempty" yaml:"inflation_rate,omitempty"`
	TargetValue    *float64      `json:"targetValue,omitempty" yaml:"target_value,omitempty"`
	MarketShocks   []MarketShock `json:"marketShocks,omitempty" yaml:"market_shocks,omitempty"`
}

// Validate checks the scenario for structural problems. All violations are
// reported as ErrInvalidConfiguration.
func (s *InvestmentScenario) Validate() error {
	if s.InitialValue <= 0 {
		return fmt.Errorf("%w: initial value must be positive, got %v", ErrInvalidConfiguration, s.InitialValue)
	}
	if s.TimeHorizon < 0 {
		return fmt.Errorf("%w: time horizon cannot be negative, got %d", ErrInvalidConfiguration, s.TimeHorizon)
	}
	if s.Volatility < 0 {
		return fmt.Errorf("%w: volatility cannot be negative, got %v", ErrInvalidConfiguration, s.Volatility)
	}
	for i, shock := range s.MarketShocks {
		if shock.Probability < 0 || shock.Probability > 1 {
			return fmt.Errorf("%w: shock %d probability must be between 0 and 1, got %v",
				ErrInvalidConfiguration, i, shock.Probability)
		}
	}
	return nil
}

// EconomicScenario is a named bundle of macro assumptions (a regime) under
// which the same investment plan can be re-simulated.
type EconomicScenario struct {
	ID               string        `json:"id" yaml:"id"`
	Name             string        `json:"name" yaml:"name"`
	Description      string        `json:"description,omitempty" yaml:"description,omitempty"`
	MarketReturn     float64       `json:"marketReturn" yaml:"market_return"`
	MarketVolatility float64       `json:"marketVolatility" yaml:"market_volatility"`
	InflationRate    float64       `json:"inflationRate" yaml:"inflation_rate"`
	InterestRate     float64       `json:"interestRate" yaml:"interest_rate"` // risk-free proxy
	UnemploymentRate float64       `json:"unemploymentRate,omitempty" yaml:"unemployment_rate,omitempty"`
	Shocks           []MarketShock `json:"shocks,omitempty" yaml:"shocks,omitempty"`
}

// Apply derives the investment scenario actually simulated under this regime:
// the base plan with the regime's return distribution, inflation and shocks.
func (e *EconomicScenario) Apply(base InvestmentScenario) InvestmentScenario {
	derived := base
	derived.Name = base.Name + " / " + e.Name
	derived.ExpectedReturn = e.MarketReturn
	derived.Volatility = e.MarketVolatility
	inflation := e.InflationRate
	derived.InflationRate = &inflation
	derived.MarketShocks = e.Shocks
	return derived
}

// Validate checks the regime definition.
func (e *EconomicScenario) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: economic scenario id is required", ErrInvalidConfiguration)
	}
	if e.MarketVolatility < 0 {
		return fmt.Errorf("%w: economic scenario %s volatility cannot be negative", ErrInvalidConfiguration, e.ID)
	}
	for i, shock := range e.Shocks {
		if shock.Probability < 0 || shock.Probability > 1 {
			return fmt.Errorf("%w: economic scenario %s shock %d probability must be between 0 and 1",
				ErrInvalidConfiguration, e.ID, i)
		}
	}
	return nil
}
