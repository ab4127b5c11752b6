package cli

import "github.com/spf13/cobra"

// version is overridable at build time via -ldflags "-X apsummary/internal/cli.version=...".
var version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("apsummary version %s\n", version)
		},
	}
}
