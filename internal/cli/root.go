// Package cli wires the apsummary command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command. Running it without a subcommand runs a
// fresh profile (or analyzes an existing file with --analyze) and prints the
// report.
func NewRootCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "apsummary",
		Short: "Profile the rule engine benchmark and summarize the result",
		Long: `apsummary runs the rule engine benchmark under async-profiler via the
Gradle build, then condenses the collapsed call stacks into a text report:
top methods by self and total time, an application-code view, a package
breakdown, and the hottest caller → callee edges.

Examples:
  # Run the profiler and print the report
  apsummary

  # Analyze an existing collapsed stacks file
  apsummary --analyze profile.collapsed

  # Profile allocations instead of CPU, show 40 rows per section
  apsummary --event alloc --top 40

  # Also export the samples as a pprof profile
  apsummary --analyze profile.collapsed --pprof-out profile.pb.gz

Set AP_LIB to override the async-profiler library path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.analyzePath, "analyze", "", "analyze an existing collapsed stacks file instead of profiling")
	flags.StringVar(&opts.event, "event", "cpu", "async-profiler event type (cpu, alloc, wall, ...)")
	flags.IntVar(&opts.topN, "top", 25, "number of entries per method section")
	flags.StringVar(&opts.appMarker, "app-marker", defaultAppMarker, "namespace marker identifying application code")
	flags.StringVar(&opts.pprofOut, "pprof-out", "", "also write the samples as a gzipped pprof profile")
	flags.StringVar(&opts.projectRoot, "project-root", ".", "Gradle project root for fresh profiling runs")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
