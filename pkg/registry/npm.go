package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/sambabib/depstale/pkg/logger"
	"github.com/sambabib/depstale/pkg/version"
)

const defaultNpmRegistryURL = "https://registry.npmjs.org"

var (
	// ErrNotFound is returned when the registry has no such package.
	ErrNotFound = errors.New("package not found")
	// ErrUnexpectedStatus is returned for any other non-200 response.
	ErrUnexpectedStatus = errors.New("unexpected registry status")
	// ErrNoValidVersions is returned when no key of the time map is a release version.
	ErrNoValidVersions = errors.New("no valid versions found")
)

// Release is the most recent release of a package.
type Release struct {
	Name        string
	Version     string
	PublishedAt time.Time
}

// NpmClient looks up publish times in an npm-compatible registry.
type NpmClient struct {
	RegistryURL string            // Allow overriding the registry URL for testing
	Valid       version.Predicate // nil means version.IsValidVersionTag

	http *http.Client
}

// NewNpmClient creates a client for registryURL. An empty URL selects the public registry.
func NewNpmClient(registryURL string) *NpmClient {
	return &NpmClient{
		RegistryURL: registryURL,
		http:        &http.Client{},
	}
}

// packument is the subset of the registry document used here. The time map
// holds one entry per published version plus "created" and "modified".
type packument struct {
	Name string            `json:"name"`
	Time map[string]string `json:"time"`
}

// PackageURL is the registry endpoint for name.
func (c *NpmClient) PackageURL(name string) string {
	base := c.RegistryURL
	if base == "" {
		base = defaultNpmRegistryURL
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(name)
}

// LastRelease fetches the registry document for name and returns its newest
// valid version together with that version's publish time.
func (c *NpmClient) LastRelease(ctx context.Context, name string) (Release, error) {
	endpoint := c.PackageURL(name)
	logger.Debugf("NPM: Fetching from registry: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Release{}, err
	}
	req.Header.Set("Accept", "application/json")

	client := c.http
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Release{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return Release{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Release{}, fmt.Errorf("decoding registry response: %w", err)
	}

	keys := slices.Collect(maps.Keys(doc.Time))
	// Map iteration is random; sort first so ties resolve the same way every run.
	slices.Sort(keys)
	latest, ok := version.SelectLatest(keys, c.Valid)
	if !ok {
		return Release{}, ErrNoValidVersions
	}

	published, err := time.Parse(time.RFC3339, doc.Time[latest])
	if err != nil {
		return Release{}, fmt.Errorf("invalid publish time for %s: %w", latest, err)
	}

	logger.Debugf("NPM: %s latest version %s published %s", name, latest, published.Format(time.RFC3339))
	return Release{Name: name, Version: latest, PublishedAt: published}, nil
}

// FetchLastRelease is LastRelease for callers that skip failed lookups: the
// failure is logged as a warning and ok is false.
func (c *NpmClient) FetchLastRelease(ctx context.Context, name string) (Release, bool) {
	rel, err := c.LastRelease(ctx, name)
	if err != nil {
		logger.Warnf("Could not fetch %s: %v", name, err)
		return Release{}, false
	}
	return rel, true
}

// FetchLastReleaseTime is the time-only convenience over FetchLastRelease for
// callers that need just the publish time, not the version. Failures are
// logged the same way and reported as ok == false.
func (c *NpmClient) FetchLastReleaseTime(ctx context.Context, name string) (time.Time, bool) {
	rel, ok := c.FetchLastRelease(ctx, name)
	return rel.PublishedAt, ok
}

// PageURL is the human-facing npm page for a package, used in reports.
func PageURL(name string) string {
	return "https://www.npmjs.com/package/" + name
}
