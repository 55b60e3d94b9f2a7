package analyzer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/sambabib/depstale/pkg/logger"
	"github.com/sambabib/depstale/pkg/registry"
)

// StaleAnalyzer flags dependencies that have not released within ThresholdMonths
type StaleAnalyzer struct {
	Fetcher         ReleaseFetcher
	ThresholdMonths int
	Concurrency     int              // lookups in flight; values below 2 mean sequential
	Now             func() time.Time // clock, replaceable in tests
}

// NewStaleAnalyzer creates a sequential StaleAnalyzer
func NewStaleAnalyzer(fetcher ReleaseFetcher, thresholdMonths int) *StaleAnalyzer {
	return &StaleAnalyzer{
		Fetcher:         fetcher,
		ThresholdMonths: thresholdMonths,
		Concurrency:     1,
		Now:             time.Now,
	}
}

type lookup struct {
	release registry.Release
	ok      bool
}

// Analyze looks up every name and collects the stale ones. The order of
// Stale and Skipped follows names regardless of Concurrency.
func (a *StaleAnalyzer) Analyze(ctx context.Context, names []string) (*Report, error) {
	now := a.Now()
	results, err := a.fetchAll(ctx, names)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ThresholdMonths: a.ThresholdMonths,
		Checked:         len(names),
		GeneratedAt:     now,
	}
	for i, name := range names {
		res := results[i]
		if !res.ok {
			report.Skipped = append(report.Skipped, name)
			continue
		}
		age := MonthsSince(res.release.PublishedAt, now)
		logger.Debugf("%s: last release %s, %.1f months ago", name, res.release.Version, age)
		if !IsStale(age, a.ThresholdMonths) {
			continue
		}
		report.Stale = append(report.Stale, StaleDependency{
			Name:        name,
			Version:     res.release.Version,
			LastRelease: res.release.PublishedAt,
			AgeMonths:   age,
			URL:         registry.PageURL(name),
		})
	}
	return report, nil
}

func (a *StaleAnalyzer) fetchAll(ctx context.Context, names []string) ([]lookup, error) {
	results := make([]lookup, len(names))

	if a.Concurrency < 2 {
		for i, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rel, ok := a.Fetcher.FetchLastRelease(ctx, name)
			results[i] = lookup{release: rel, ok: ok}
		}
		return results, nil
	}

	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(a.Concurrency))
	for i, name := range names {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer sem.Release(1)
			rel, ok := a.Fetcher.FetchLastRelease(ctx, name)
			// Each goroutine owns its slot.
			results[i] = lookup{release: rel, ok: ok}
		}(i, name)
	}
	wg.Wait()
	return results, nil
}

// MonthsSince is the time between published and now in 30-day months.
func MonthsSince(published, now time.Time) float64 {
	return now.Sub(published).Hours() / 24 / DaysPerMonth
}

// IsStale reports whether age strictly exceeds the threshold.
func IsStale(ageMonths float64, thresholdMonths int) bool {
	return ageMonths/float64(thresholdMonths) > 1
}
