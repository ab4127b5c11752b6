package main

import (
	"errors"
	"fmt"
	"os"

	"apsummary/internal/cli"
	"apsummary/internal/runner"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)

		// A failed build propagates its own exit status.
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
