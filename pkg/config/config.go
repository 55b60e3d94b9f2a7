package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMonthsThreshold is how long a dependency may go without a release.
	DefaultMonthsThreshold = 36
	// DefaultRegistryURL is the public npm registry.
	DefaultRegistryURL = "https://registry.npmjs.org"
	// DefaultFileName is looked up in the project directory when no --config is given.
	DefaultFileName = ".depstale.yaml"

	// EnvMonthsThreshold overrides MonthsThreshold.
	EnvMonthsThreshold = "MONTHS_THRESHOLD"
)

// ErrInvalidThreshold is returned when a threshold override is not a positive integer.
var ErrInvalidThreshold = errors.New("threshold must be a positive integer")

// Config represents the configuration for the staleness checker
type Config struct {
	// Months without a release before a dependency is reported
	MonthsThreshold int `yaml:"monthsThreshold"`

	// Registry base URL, package names are appended as a path segment
	Registry string `yaml:"registry"`

	// Number of registry lookups in flight; 1 keeps them sequential
	Concurrency int `yaml:"concurrency"`

	// Check devDependencies too
	IncludeDev bool `yaml:"includeDev"`

	// Only full MAJOR.MINOR.PATCH versions count as releases
	StrictSemver bool `yaml:"strictSemver"`

	// Output configuration
	Output struct {
		Format string `yaml:"format"` // markdown, table, json, sarif
		File   string `yaml:"file"`   // Output file path (stdout if empty)
	} `yaml:"output"`

	// Ignore specific packages
	IgnorePackages []string `yaml:"ignorePackages"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	config := &Config{
		MonthsThreshold: DefaultMonthsThreshold,
		Registry:        DefaultRegistryURL,
		Concurrency:     1,
	}
	config.Output.Format = "markdown"
	return config
}

// LoadConfig loads the configuration from the specified file path, layered
// over DefaultConfig. The file must exist; callers without a config file use
// DefaultConfig directly.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return nil, errors.New("no config file given")
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// ApplyEnv overrides fields from the environment. An invalid MONTHS_THRESHOLD
// leaves the current threshold untouched and is reported through the returned error.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	raw := strings.TrimSpace(getenv(EnvMonthsThreshold))
	if raw == "" {
		return nil
	}
	months, err := ParseThreshold(raw)
	if err != nil {
		return fmt.Errorf("ignoring %s=%q: %w", EnvMonthsThreshold, raw, err)
	}
	c.MonthsThreshold = months
	return nil
}

// ParseThreshold parses a month count, accepting only positive integers.
func ParseThreshold(raw string) (int, error) {
	months, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || months <= 0 {
		return 0, ErrInvalidThreshold
	}
	return months, nil
}

// Validate checks the values a config file may have set.
func (c *Config) Validate() error {
	if c.MonthsThreshold <= 0 {
		return ErrInvalidThreshold
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Registry == "" {
		return errors.New("registry must not be empty")
	}
	switch c.Output.Format {
	case "markdown", "table", "json", "sarif":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}

// IsPackageIgnored checks if a package should be ignored based on the configuration
func (c *Config) IsPackageIgnored(packageName string) bool {
	for _, ignoredPackage := range c.IgnorePackages {
		if ignoredPackage == packageName {
			return true
		}
	}
	return false
}
