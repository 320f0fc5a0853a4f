// Package simulation contains the Monte Carlo engine: the per-path simulator
// and the orchestrator that turns an investment scenario plus an iteration
// count into statistical summaries, goal probabilities and risk metrics.
package simulation

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wealthsim/wealthsim/internal/domain"
	"github.com/wealthsim/wealthsim/internal/random"
	"github.com/wealthsim/wealthsim/internal/stats"
)

// EngineVersion is stamped into every SimulationResult.
const EngineVersion = "1.0.0"

// Logger is the minimal logging interface the engine accepts. The default is
// a no-op; the CLI wires a structured logger behind it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// ProgressFunc receives the completed fraction in [0,1]. It is invoked
// synchronously at fixed iteration intervals; it is a cooperative progress
// report, not a cancellation point.
type ProgressFunc func(fraction float64)

// Config controls one simulation run.
type Config struct {
	Iterations int

	// Seed initializes the single random source shared by every iteration
	// of the run. Zero means derive one from wall-clock time, which forfeits
	// reproducibility.
	Seed int64

	// Workers > 1 partitions iterations across independently seeded sources
	// (see RunParallel). Run itself ignores this field.
	Workers int

	// ConfidenceLevels defaults to stats.DefaultConfidenceLevels when empty.
	ConfidenceLevels []float64

	OnProgress ProgressFunc
}

// seedFunc returns a clock-derived seed (override in tests for determinism).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the fallback seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// Engine orchestrates Monte Carlo runs. One engine may serve many runs; each
// run owns its own random source.
type Engine struct {
	logger Logger

	// newSource is the source factory, overridable in tests to count draws.
	newSource func(seed int64) RandomSource
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{
		logger:    nopLogger{},
		newSource: func(seed int64) RandomSource { return random.New(seed) },
	}
}

// SetLogger installs a logger. Passing nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = nopLogger{}
		return
	}
	e.logger = l
}

// Run executes one Monte Carlo simulation: a single random source seeded
// once, a strictly sequential iteration loop, then summary statistics. Two
// runs with the same seed, scenario and iteration count produce bit-identical
// results slices.
func (e *Engine) Run(ctx context.Context, scenario *domain.InvestmentScenario, cfg Config) (*domain.SimulationResult, error) {
	result, _, err := e.run(ctx, scenario, cfg)
	return result, err
}

// run is the shared implementation; it additionally returns the per-path max
// drawdowns consumed by scenario analysis.
func (e *Engine) run(ctx context.Context, scenario *domain.InvestmentScenario, cfg Config) (*domain.SimulationResult, []float64, error) {
	if err := validateRunConfig(scenario, cfg); err != nil {
		return nil, nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = seedFunc()
		e.logger.Debugf("no seed provided, derived %d from clock", seed)
	}

	rng := e.newSource(seed)
	started := time.Now()

	terminals := make([]float64, cfg.Iterations)
	drawdowns := make([]float64, cfg.Iterations)
	progressEvery := progressInterval(cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		outcome := SimulatePath(scenario, rng)
		terminals[i] = outcome.TerminalValue
		drawdowns[i] = outcome.MaxDrawdown

		if (i+1)%progressEvery == 0 || i+1 == cfg.Iterations {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			if cfg.OnProgress != nil {
				cfg.OnProgress(float64(i+1) / float64(cfg.Iterations))
			}
		}
	}

	result, err := e.assemble(scenario, cfg, seed, started, terminals)
	if err != nil {
		return nil, nil, err
	}
	return result, drawdowns, nil
}

// RunParallel executes the same simulation partitioned across worker
// goroutines. The iteration range is split into contiguous blocks, each block
// simulated by its own source seeded with random.SubSeed(master, block), and
// results concatenate in block order. A parallel run is therefore
// reproducible for a fixed worker count, though its draw sequence differs
// from the sequential run's by construction. A single source is never shared
// across goroutines.
func (e *Engine) RunParallel(ctx context.Context, scenario *domain.InvestmentScenario, cfg Config) (*domain.SimulationResult, error) {
	if err := validateRunConfig(scenario, cfg); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 1 {
		return e.Run(ctx, scenario, cfg)
	}
	if workers > cfg.Iterations {
		workers = cfg.Iterations
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	e.logger.Infof("running %d iterations across %d workers", cfg.Iterations, workers)
	started := time.Now()

	terminals := make([]float64, cfg.Iterations)
	var completed int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	base := cfg.Iterations / workers
	rem := cfg.Iterations % workers
	offset := 0

	for w := 0; w < workers; w++ {
		count := base
		if w < rem {
			count++
		}
		start := offset
		offset += count

		wg.Add(1)
		go func(block, start, count int) {
			defer wg.Done()

			rng := e.newSource(random.SubSeed(seed, block))
			for i := 0; i < count; i++ {
				outcome := SimulatePath(scenario, rng)
				terminals[start+i] = outcome.TerminalValue
			}

			if cfg.OnProgress != nil {
				mu.Lock()
				completed += int64(count)
				cfg.OnProgress(float64(completed) / float64(cfg.Iterations))
				mu.Unlock()
			}
		}(w, start, count)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.assemble(scenario, cfg, seed, started, terminals)
}

// assemble reduces terminal values into the final serializable result.
func (e *Engine) assemble(scenario *domain.InvestmentScenario, cfg Config, seed int64, started time.Time, terminals []float64) (*domain.SimulationResult, error) {
	statistics, err := stats.Summarize(terminals)
	if err != nil {
		return nil, err
	}

	levels := cfg.ConfidenceLevels
	if len(levels) == 0 {
		levels = stats.DefaultConfidenceLevels
	}
	intervals, err := stats.ConfidenceIntervals(terminals, levels)
	if err != nil {
		return nil, err
	}

	result := &domain.SimulationResult{
		RunID:               uuid.New(),
		Scenario:            *scenario,
		Iterations:          cfg.Iterations,
		Seed:                seed,
		EngineVersion:       EngineVersion,
		StartedAt:           started,
		ExecutionTime:       time.Since(started),
		Results:             terminals,
		Statistics:          statistics,
		ConfidenceIntervals: intervals,
	}

	if scenario.TargetValue != nil {
		p, err := stats.SuccessProbability(terminals, *scenario.TargetValue)
		if err != nil {
			return nil, err
		}
		result.GoalSuccessProbability = &p
	}

	if scenario.InflationRate != nil {
		deflator := math.Pow(1+*scenario.InflationRate, float64(scenario.TimeHorizon))
		real := make([]float64, len(terminals))
		for i, v := range terminals {
			real[i] = v / deflator
		}
		realStats, err := stats.Summarize(real)
		if err != nil {
			return nil, err
		}
		result.RealStatistics = &realStats
	}

	e.logger.Debugf("run %s finished: %d iterations in %s", result.RunID, cfg.Iterations, result.ExecutionTime)
	return result, nil
}

func validateRunConfig(scenario *domain.InvestmentScenario, cfg Config) error {
	if scenario == nil {
		return fmt.Errorf("%w: scenario is required", domain.ErrInvalidConfiguration)
	}
	if err := scenario.Validate(); err != nil {
		return err
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", domain.ErrInvalidConfiguration, cfg.Iterations)
	}
	for _, level := range cfg.ConfidenceLevels {
		if level <= 0 || level >= 1 {
			return fmt.Errorf("%w: confidence level must be in (0,1), got %v", domain.ErrInvalidConfiguration, level)
		}
	}
	return nil
}

// progressInterval reports every iteration for small runs and roughly every
// percent for large ones.
func progressInterval(iterations int) int {
	every := iterations / 100
	if every < 1 {
		every = 1
	}
	return every
}
