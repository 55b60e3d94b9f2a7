package analyzer

import (
	"context"
	"time"

	"github.com/sambabib/depstale/pkg/registry"
)

// DaysPerMonth is the fixed month length used for ages.
const DaysPerMonth = 30

// StaleDependency is a dependency whose newest release is older than the threshold
type StaleDependency struct {
	Name        string    `json:"name"`         // package name
	Version     string    `json:"version"`      // newest valid version in the registry
	LastRelease time.Time `json:"last_release"` // publish time of that version
	AgeMonths   float64   `json:"age_months"`   // elapsed months at check time
	URL         string    `json:"url"`          // registry page for humans
}

// LastUpdate is the publish date without time of day.
func (s StaleDependency) LastUpdate() string {
	return s.LastRelease.UTC().Format(time.DateOnly)
}

// Report is the outcome of one run
type Report struct {
	ThresholdMonths int               `json:"threshold_months"`
	Checked         int               `json:"checked"` // dependencies looked up
	Stale           []StaleDependency `json:"stale"`   // in manifest declaration order
	Skipped         []string          `json:"skipped"` // lookups that failed
	GeneratedAt     time.Time         `json:"generated_at"`
}

// ReleaseFetcher returns the newest release of a package. ok is false when the
// lookup failed; the fetcher reports the reason itself.
type ReleaseFetcher interface {
	FetchLastRelease(ctx context.Context, name string) (registry.Release, bool)
}

// Analyzer defines the interface for staleness analyzers
type Analyzer interface {
	// Analyze checks each named dependency and returns the report
	Analyze(ctx context.Context, names []string) (*Report, error)
}
