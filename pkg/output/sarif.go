package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sambabib/depstale/pkg/analyzer"
)

// SARIF format specification: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

// SarifReport represents the top-level SARIF report structure
type SarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

// SarifRun represents a single run of the analysis tool
type SarifRun struct {
	Tool        SarifTool         `json:"tool"`
	Results     []SarifResult     `json:"results"`
	Invocations []SarifInvocation `json:"invocations"`
}

// SarifTool represents the tool that performed the analysis
type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

// SarifDriver represents the driver of the tool
type SarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SarifRule `json:"rules"`
}

// SarifRule represents a rule that was evaluated during the analysis
type SarifRule struct {
	ID               string            `json:"id"`
	ShortDescription SarifMessage      `json:"shortDescription"`
	FullDescription  SarifMessage      `json:"fullDescription"`
	Help             SarifMessage      `json:"help"`
	Properties       map[string]string `json:"properties,omitempty"`
}

// SarifResult represents a result of the analysis
type SarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SarifMessage    `json:"message"`
	Locations []SarifLocation `json:"locations"`
}

// SarifMessage represents a message in the SARIF report
type SarifMessage struct {
	Text string `json:"text"`
}

// SarifLocation represents a location in the code
type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
}

// SarifPhysicalLocation represents a physical location in the code
type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
	Region           *SarifRegion          `json:"region,omitempty"`
}

// SarifArtifactLocation represents the location of an artifact
type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

// SarifRegion represents a region in the code
type SarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

// SarifInvocation represents an invocation of the tool
type SarifInvocation struct {
	ExecutionSuccessful bool   `json:"executionSuccessful"`
	StartTimeUtc        string `json:"startTimeUtc"`
	EndTimeUtc          string `json:"endTimeUtc"`
}

// GenerateSarifReport converts the stale dependencies to SARIF format.
// manifestPath is the artifact every result points at.
func GenerateSarifReport(report *analyzer.Report, manifestPath, toolVersion string) ([]byte, error) {
	rules := []SarifRule{
		{
			ID:               "stale-dependency",
			ShortDescription: SarifMessage{Text: "Dependency has not been released recently"},
			FullDescription:  SarifMessage{Text: "The newest release of this dependency is older than the configured threshold, which may mean it is no longer maintained."},
			Help:             SarifMessage{Text: "Check whether the package is still maintained and consider an alternative."},
			Properties:       map[string]string{"thresholdMonths": fmt.Sprint(report.ThresholdMonths)},
		},
		{
			ID:               "lookup-failed",
			ShortDescription: SarifMessage{Text: "Registry lookup failed"},
			FullDescription:  SarifMessage{Text: "Release history for this dependency could not be fetched, so its staleness is unknown."},
			Help:             SarifMessage{Text: "Verify the package name and registry availability."},
		},
	}

	location := []SarifLocation{
		{
			PhysicalLocation: SarifPhysicalLocation{
				ArtifactLocation: SarifArtifactLocation{URI: manifestPath},
			},
		},
	}

	results := make([]SarifResult, 0, len(report.Stale)+len(report.Skipped))
	for _, s := range report.Stale {
		results = append(results, SarifResult{
			RuleID: "stale-dependency",
			Level:  "warning",
			Message: SarifMessage{
				Text: fmt.Sprintf("%s has not been updated in the last %d months (latest %s, released %s)",
					s.Name, report.ThresholdMonths, s.Version, s.LastUpdate()),
			},
			Locations: location,
		})
	}
	for _, name := range report.Skipped {
		results = append(results, SarifResult{
			RuleID:    "lookup-failed",
			Level:     "note",
			Message:   SarifMessage{Text: fmt.Sprintf("could not fetch release history for %s", name)},
			Locations: location,
		})
	}

	end := time.Now().UTC()
	sarifReport := SarifReport{
		Schema:  "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Version: "2.1.0",
		Runs: []SarifRun{
			{
				Tool: SarifTool{
					Driver: SarifDriver{
						Name:           "depstale",
						Version:        toolVersion,
						InformationURI: "https://github.com/sambabib/depstale",
						Rules:          rules,
					},
				},
				Results: results,
				Invocations: []SarifInvocation{
					{
						ExecutionSuccessful: true,
						StartTimeUtc:        report.GeneratedAt.UTC().Format(time.RFC3339),
						EndTimeUtc:          end.Format(time.RFC3339),
					},
				},
			},
		},
	}

	return json.MarshalIndent(sarifReport, "", "  ")
}
