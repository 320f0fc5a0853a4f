package output

import (
	"encoding/json"

	"github.com/wealthsim/wealthsim/internal/domain"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Pretty bool
}

// FormatResult generates JSON output for one simulation run. The raw outcome
// slice is included so downstream tools can recompute statistics.
func (jf *JSONFormatter) FormatResult(result *domain.SimulationResult) (string, error) {
	return jf.marshal(result)
}

// FormatComparison generates JSON output for a multi-regime analysis.
func (jf *JSONFormatter) FormatComparison(comparison *domain.ScenarioComparison) (string, error) {
	return jf.marshal(comparison)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
