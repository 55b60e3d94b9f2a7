package output

import (
	"encoding/json"

	"github.com/sambabib/depstale/pkg/analyzer"
)

// GenerateJSONReport converts the report to JSON format
func GenerateJSONReport(report *analyzer.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
