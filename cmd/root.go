package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sambabib/depstale/pkg/logger"
)

// Version is set during build using ldflags
var Version = "dev"

// newRootCmd builds the command tree. Running the root command without a
// subcommand performs the staleness check.
func newRootCmd() *cobra.Command {
	opts := &checkOptions{}
	rootCmd := &cobra.Command{
		Use:   "depstale",
		Short: "Reports dependencies that have not released in a long time",
		Long: `depstale reads the dependencies declared in package.json, looks up each one in the npm registry
and prints a markdown report of the packages whose newest release is older than a threshold
(36 months by default, MONTHS_THRESHOLD or --months to change it).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}
	opts.register(rootCmd)
	rootCmd.AddCommand(newCheckCmd(opts))
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
