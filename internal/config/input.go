// Package config loads and validates simulation definitions from YAML files.
// Monetary amounts and rates are parsed as decimals and converted to float64
// at the domain boundary, where the simulation math lives.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/wealthsim/wealthsim/internal/domain"
)

// SimulationFile is the on-disk shape of one analysis request.
type SimulationFile struct {
	Scenario          ScenarioConfig         `yaml:"scenario"`
	Simulation        SimulationSettings     `yaml:"simulation"`
	EconomicScenarios []EconomicRegimeConfig `yaml:"economic_scenarios,omitempty"`
}

// ScenarioConfig is the YAML form of an investment scenario.
type ScenarioConfig struct {
	Name           string           `yaml:"name"`
	InitialValue   decimal.Decimal  `yaml:"initial_value"`
	ExpectedReturn decimal.Decimal  `yaml:"expected_return"`
	Volatility     decimal.Decimal  `yaml:"volatility"`
	TimeHorizon    int              `yaml:"time_horizon"`
	InflationRate  *decimal.Decimal `yaml:"inflation_rate,omitempty"`
	TargetValue    *decimal.Decimal `yaml:"target_value,omitempty"`
	MarketShocks   []ShockConfig    `yaml:"market_shocks,omitempty"`
}

// ShockConfig is the YAML form of a market shock.
type ShockConfig struct {
	Name        string          `yaml:"name,omitempty"`
	Probability decimal.Decimal `yaml:"probability"`
	Impact      decimal.Decimal `yaml:"impact"`
}

// SimulationSettings controls the run itself.
type SimulationSettings struct {
	Iterations       int       `yaml:"iterations"`
	Seed             int64     `yaml:"seed,omitempty"`
	Workers          int       `yaml:"workers,omitempty"`
	ConfidenceLevels []float64 `yaml:"confidence_levels,omitempty"`
}

// EconomicRegimeConfig is the YAML form of an economic scenario.
type EconomicRegimeConfig struct {
	ID               string          `yaml:"id"`
	Name             string          `yaml:"name"`
	Description      string          `yaml:"description,omitempty"`
	MarketReturn     decimal.Decimal `yaml:"market_return"`
	MarketVolatility decimal.Decimal `yaml:"market_volatility"`
	InflationRate    decimal.Decimal `yaml:"inflation_rate,omitempty"`
	InterestRate     decimal.Decimal `yaml:"interest_rate,omitempty"`
	UnemploymentRate decimal.Decimal `yaml:"unemployment_rate,omitempty"`
	Shocks           []ShockConfig   `yaml:"shocks,omitempty"`
}

// InputParser handles parsing of simulation input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a simulation definition from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*SimulationFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse unmarshals and validates a simulation definition.
func (ip *InputParser) Parse(data []byte) (*SimulationFile, error) {
	var file SimulationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Validate(&file); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &file, nil
}

// Validate checks the whole file for structural problems.
func (ip *InputParser) Validate(file *SimulationFile) error {
	if err := ip.validateScenario(&file.Scenario); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	if err := ip.validateSettings(&file.Simulation); err != nil {
		return fmt.Errorf("simulation settings validation failed: %w", err)
	}

	seen := make(map[string]bool, len(file.EconomicScenarios))
	for i, regime := range file.EconomicScenarios {
		if err := ip.validateRegime(&regime); err != nil {
			return fmt.Errorf("economic scenario %d validation failed: %w", i, err)
		}
		if seen[regime.ID] {
			return fmt.Errorf("economic scenario %d: duplicate id %q", i, regime.ID)
		}
		seen[regime.ID] = true
	}
	return nil
}

func (ip *InputParser) validateScenario(sc *ScenarioConfig) error {
	if sc.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if sc.InitialValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("initial value must be positive")
	}
	if sc.TimeHorizon < 0 {
		return fmt.Errorf("time horizon cannot be negative")
	}
	if sc.Volatility.LessThan(decimal.Zero) {
		return fmt.Errorf("volatility cannot be negative")
	}
	if sc.ExpectedReturn.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("expected return cannot be less than -100%%")
	}
	if sc.TargetValue != nil && sc.TargetValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("target value must be positive")
	}
	for i, shock := range sc.MarketShocks {
		if err := validateShock(&shock); err != nil {
			return fmt.Errorf("market shock %d: %w", i, err)
		}
	}
	return nil
}

func (ip *InputParser) validateSettings(s *SimulationSettings) error {
	if s.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive")
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	for _, level := range s.ConfidenceLevels {
		if level <= 0 || level >= 1 {
			return fmt.Errorf("confidence level must be between 0 and 1, got %v", level)
		}
	}
	return nil
}

func (ip *InputParser) validateRegime(r *EconomicRegimeConfig) error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.MarketVolatility.LessThan(decimal.Zero) {
		return fmt.Errorf("market volatility cannot be negative")
	}
	for i, shock := range r.Shocks {
		if err := validateShock(&shock); err != nil {
			return fmt.Errorf("shock %d: %w", i, err)
		}
	}
	return nil
}

func validateShock(s *ShockConfig) error {
	if s.Probability.LessThan(decimal.Zero) || s.Probability.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("probability must be between 0 and 1")
	}
	return nil
}

// ToScenario converts the YAML scenario into the domain value object.
func (sc *ScenarioConfig) ToScenario() domain.InvestmentScenario {
	scenario := domain.InvestmentScenario{
		Name:           sc.Name,
		InitialValue:   sc.InitialValue.InexactFloat64(),
		ExpectedReturn: sc.ExpectedReturn.InexactFloat64(),
		Volatility:     sc.Volatility.InexactFloat64(),
		TimeHorizon:    sc.TimeHorizon,
		MarketShocks:   toShocks(sc.MarketShocks),
	}
	if sc.InflationRate != nil {
		v := sc.InflationRate.InexactFloat64()
		scenario.InflationRate = &v
	}
	if sc.TargetValue != nil {
		v := sc.TargetValue.InexactFloat64()
		scenario.TargetValue = &v
	}
	return scenario
}

// ToEconomicScenarios converts the YAML regimes into domain values.
func (f *SimulationFile) ToEconomicScenarios() []domain.EconomicScenario {
	regimes := make([]domain.EconomicScenario, 0, len(f.EconomicScenarios))
	for _, r := range f.EconomicScenarios {
		regimes = append(regimes, domain.EconomicScenario{
			ID:               r.ID,
			Name:             r.Name,
			Description:      r.Description,
			MarketReturn:     r.MarketReturn.InexactFloat64(),
			MarketVolatility: r.MarketVolatility.InexactFloat64(),
			InflationRate:    r.InflationRate.InexactFloat64(),
			InterestRate:     r.InterestRate.InexactFloat64(),
			UnemploymentRate: r.UnemploymentRate.InexactFloat64(),
			Shocks:           toShocks(r.Shocks),
		})
	}
	return regimes
}

func toShocks(configs []ShockConfig) []domain.MarketShock {
	if len(configs) == 0 {
		return nil
	}
	shocks := make([]domain.MarketShock, len(configs))
	for i, s := range configs {
		shocks[i] = domain.MarketShock{
			Name:        s.Name,
			Probability: s.Probability.InexactFloat64(),
			Impact:      s.Impact.InexactFloat64(),
		}
	}
	return shocks
}
