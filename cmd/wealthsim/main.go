package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wealthsim/wealthsim/internal/config"
	"github.com/wealthsim/wealthsim/internal/domain"
	"github.com/wealthsim/wealthsim/internal/output"
	"github.com/wealthsim/wealthsim/internal/random"
	"github.com/wealthsim/wealthsim/internal/simulation"
	"github.com/wealthsim/wealthsim/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// zerologAdapter bridges the engine's logging interface onto zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...any) { z.log.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.log.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.log.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.log.Error().Msgf(format, args...) }

func newLogger(debugMode bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debugMode {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

var rootCmd = &cobra.Command{
	Use:   "wealthsim",
	Short: "Monte Carlo wealth projection",
	Long:  "Deterministic Monte Carlo simulator for long-horizon investment outcomes",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run a Monte Carlo simulation for one scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, runCfg, err := loadInput(cmd, args[0])
		if err != nil {
			return err
		}
		scenario := file.Scenario.ToScenario()

		debugMode, _ := cmd.Flags().GetBool("debug")
		logger := newLogger(debugMode)

		engine := simulation.NewEngine()
		if debugMode {
			engine.SetLogger(zerologAdapter{log: logger})
		}

		if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
			program := tea.NewProgram(tui.NewModel(engine, &scenario, runCfg), tea.WithAltScreen())
			_, err := program.Run()
			return err
		}

		start := time.Now()
		var res *domain.SimulationResult
		if runCfg.Workers > 1 {
			res, err = engine.RunParallel(cmd.Context(), &scenario, runCfg)
		} else {
			res, err = engine.Run(cmd.Context(), &scenario, runCfg)
		}
		if err != nil {
			return err
		}
		logger.Debug().
			Int("iterations", res.Iterations).
			Int64("seed", res.Seed).
			Dur("elapsed", time.Since(start)).
			Msg("simulation finished")

		formatName, _ := cmd.Flags().GetString("format")
		formatter, err := output.GetFormatterByName(formatName)
		if err != nil {
			return err
		}
		text, err := formatter.FormatResult(res)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, text)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Run the scenario under each configured economic regime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, runCfg, err := loadInput(cmd, args[0])
		if err != nil {
			return err
		}
		if len(file.EconomicScenarios) == 0 {
			return fmt.Errorf("input file defines no economic_scenarios to compare")
		}
		scenario := file.Scenario.ToScenario()
		regimes := file.ToEconomicScenarios()

		debugMode, _ := cmd.Flags().GetBool("debug")
		engine := simulation.NewEngine()
		if debugMode {
			engine.SetLogger(zerologAdapter{log: newLogger(true)})
		}

		comparison, err := engine.RunScenarioAnalysis(cmd.Context(), &scenario, regimes, runCfg)
		if err != nil {
			return err
		}

		formatName, _ := cmd.Flags().GetString("format")
		formatter, err := output.GetFormatterByName(formatName)
		if err != nil {
			return err
		}
		text, err := formatter.FormatComparison(comparison)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, text)
		return nil
	},
}

var validateRNGCmd = &cobra.Command{
	Use:   "validate-rng",
	Short: "Check the random source's uniformity with a chi-square test",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")
		samples, _ := cmd.Flags().GetInt("samples")

		src := random.New(seed)
		result := src.Validate(samples)

		fmt.Fprintf(os.Stdout, "seed:       %d\n", seed)
		fmt.Fprintf(os.Stdout, "samples:    %d\n", samples)
		fmt.Fprintf(os.Stdout, "chi-square: %.4f\n", result.ChiSquare)
		fmt.Fprintf(os.Stdout, "p-value:    %.4f\n", result.PValue)
		if !result.IsValid {
			return fmt.Errorf("uniformity check failed at the 0.05 significance level")
		}
		fmt.Fprintln(os.Stdout, "uniformity check passed")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "wealthsim %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Fprintf(os.Stdout, "go: %s\n", bi.GoVersion)
		}
	},
}

// loadInput parses the YAML file and folds CLI flag overrides into the run
// configuration. Flags beat file settings when both are present.
func loadInput(cmd *cobra.Command, path string) (*config.SimulationFile, simulation.Config, error) {
	parser := config.NewInputParser()
	file, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, simulation.Config{}, err
	}

	runCfg := simulation.Config{
		Iterations:       file.Simulation.Iterations,
		Seed:             file.Simulation.Seed,
		Workers:          file.Simulation.Workers,
		ConfidenceLevels: file.Simulation.ConfidenceLevels,
	}
	if cmd.Flags().Changed("iterations") {
		runCfg.Iterations, _ = cmd.Flags().GetInt("iterations")
	}
	if cmd.Flags().Changed("seed") {
		runCfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("workers") {
		runCfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	return file, runCfg, nil
}

func main() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(validateRNGCmd)
	rootCmd.AddCommand(versionCmd)

	for _, c := range []*cobra.Command{simulateCmd, compareCmd} {
		c.Flags().String("format", "console", "Output format (console, json, csv)")
		c.Flags().Int("iterations", 0, "Override iteration count from the input file")
		c.Flags().Int64("seed", 0, "Override random seed from the input file")
		c.Flags().Int("workers", 0, "Override worker count from the input file")
		c.Flags().Bool("debug", false, "Enable debug logging")
	}
	simulateCmd.Flags().Bool("tui", false, "Run interactively with live progress")

	validateRNGCmd.Flags().Int64("seed", 12345, "Seed for the source under test")
	validateRNGCmd.Flags().Int("samples", 10000, "Number of samples to draw")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
