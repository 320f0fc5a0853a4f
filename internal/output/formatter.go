// Package output renders simulation and comparison results for the console
// and for machine-readable export.
package output

import (
	"fmt"

	"github.com/wealthsim/wealthsim/internal/domain"
)

// ResultFormatter renders a single simulation result.
type ResultFormatter interface {
	FormatResult(result *domain.SimulationResult) (string, error)
	FormatComparison(comparison *domain.ScenarioComparison) (string, error)
}

// GetFormatterByName returns the formatter registered under name.
func GetFormatterByName(name string) (ResultFormatter, error) {
	switch name {
	case "console", "table", "":
		return &ConsoleFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	case "csv":
		return &CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want console, json or csv)", name)
	}
}
