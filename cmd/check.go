package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sambabib/depstale/pkg/analyzer"
	"github.com/sambabib/depstale/pkg/config"
	"github.com/sambabib/depstale/pkg/logger"
	"github.com/sambabib/depstale/pkg/manifest"
	"github.com/sambabib/depstale/pkg/output"
	"github.com/sambabib/depstale/pkg/registry"
	"github.com/sambabib/depstale/pkg/version"
)

// checkOptions holds the flag values of one command instance.
type checkOptions struct {
	path         string
	configFile   string
	months       int
	registry     string
	concurrency  int
	includeDev   bool
	strictSemver bool
	format       string
	outputFile   string
	verbose      bool
}

// register adds the flags as persistent flags so they work before or after
// the subcommand name.
func (o *checkOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.path, "path", "p", ".", "Path to project directory containing package.json")
	f.StringVar(&o.configFile, "config", "", "Config file (default .depstale.yaml in the project directory)")
	f.IntVarP(&o.months, "months", "m", 0, "Months without a release before a dependency is reported")
	f.StringVar(&o.registry, "registry", "", "npm registry base URL")
	f.IntVar(&o.concurrency, "concurrency", 0, "Registry lookups in flight (1 is sequential)")
	f.BoolVar(&o.includeDev, "include-dev", false, "Also check devDependencies")
	f.BoolVar(&o.strictSemver, "strict-semver", false, "Only count full MAJOR.MINOR.PATCH versions as releases")
	f.StringVarP(&o.format, "format", "f", "", "Output format: markdown, table, json or sarif")
	f.StringVarP(&o.outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
}

// newCheckCmd represents the check subcommand. It reads the flags registered
// on the root command into opts.
func newCheckCmd(opts *checkOptions) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check dependencies for stale releases",
		Long:  "Check every dependency in package.json against the npm registry and report the ones without a recent release.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}
	return checkCmd
}

// resolveConfig layers the config file, the environment and the flags.
func (o *checkOptions) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath := o.configFile
	if cfgPath == "" {
		candidate := filepath.Join(o.path, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			cfgPath = candidate
		}
	}
	cfg := config.DefaultConfig()
	if cfgPath != "" {
		var err error
		if cfg, err = config.LoadConfig(cfgPath); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal; existing environment variables win.
	envFile := filepath.Join(o.path, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Could not load %s: %v", envFile, err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		logger.Warnf("%v, using %d months", err, cfg.MonthsThreshold)
	}

	flags := cmd.Flags()
	if flags.Changed("months") {
		if o.months <= 0 {
			return nil, fmt.Errorf("--months: %w", config.ErrInvalidThreshold)
		}
		cfg.MonthsThreshold = o.months
	}
	if flags.Changed("registry") {
		cfg.Registry = o.registry
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if flags.Changed("include-dev") {
		cfg.IncludeDev = o.includeDev
	}
	if flags.Changed("strict-semver") {
		cfg.StrictSemver = o.strictSemver
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("output") {
		cfg.Output.File = o.outputFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, o *checkOptions) error {
	logger.SetVerbose(o.verbose)

	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Read(o.path)
	if err != nil {
		return err
	}

	var names []string
	for _, name := range m.Names(cfg.IncludeDev) {
		if cfg.IsPackageIgnored(name) {
			logger.Debugf("Ignoring %s", name)
			continue
		}
		names = append(names, name)
	}

	stdout := cmd.OutOrStdout()
	progress := fmt.Sprintf("Checking %d dependencies...", len(names))
	if cfg.Output.Format == "markdown" || cfg.Output.Format == "table" {
		fmt.Fprintln(stdout, progress)
	} else {
		// Keep machine-readable output parseable.
		logger.Infof("%s", progress)
	}

	client := registry.NewNpmClient(cfg.Registry)
	if cfg.StrictSemver {
		client.Valid = version.IsStrictSemver
	}
	stale := analyzer.NewStaleAnalyzer(client, cfg.MonthsThreshold)
	stale.Concurrency = cfg.Concurrency

	var a analyzer.Analyzer = stale
	report, err := a.Analyze(cmd.Context(), names)
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(o.path, manifest.FileName)
	if cfg.Output.File == "" {
		return writeReport(stdout, report, cfg.Output.Format, manifestPath)
	}
	return writeReportFile(cfg.Output.File, report, cfg.Output.Format, manifestPath)
}

// writeReportFile writes the report to path. A failed close fails the run.
func writeReportFile(path string, report *analyzer.Report, format, manifestPath string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeReport(f, report, format, manifestPath); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func writeReport(w io.Writer, report *analyzer.Report, format, manifestPath string) error {
	switch format {
	case "markdown":
		body := output.GenerateMarkdownReport(report)
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		_, err := io.WriteString(w, body)
		return err
	case "table":
		return output.PrintTextReport(w, report)
	case "json":
		data, err := output.GenerateJSONReport(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "sarif":
		data, err := output.GenerateSarifReport(report, manifestPath, Version)
		if err != nil {
			return fmt.Errorf("failed to marshal report to SARIF: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return errors.New("unknown output format " + format)
}
