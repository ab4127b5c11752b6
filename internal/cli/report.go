package cli

import (
	"context"
	"fmt"
	"os"

	"apsummary/internal/analyzer"
	"apsummary/internal/collapsed"
	"apsummary/internal/frames"
	"apsummary/internal/logging"
	"apsummary/internal/pprofio"
	"apsummary/internal/report"
	"apsummary/internal/runner"
)

const defaultAppMarker = frames.DefaultAppMarker

type reportOptions struct {
	analyzePath string
	event       string
	topN        int
	appMarker   string
	pprofOut    string
	projectRoot string
	logLevel    string
}

func runReport(ctx context.Context, opts *reportOptions) error {
	logger := logging.New(logging.Config{Level: opts.logLevel})

	var path string
	if opts.analyzePath != "" {
		if _, err := os.Stat(opts.analyzePath); err != nil {
			return fmt.Errorf("%s not found", opts.analyzePath)
		}
		path = opts.analyzePath
	} else {
		r := runner.New(runner.Config{
			ProjectRoot: opts.projectRoot,
			Event:       opts.event,
			LibPath:     runner.ResolveLibPath(),
		}, nil, os.Stdout, logger)

		freshPath, err := r.Run(ctx)
		if err != nil {
			return err
		}
		path = freshPath
	}

	profile, err := collapsed.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("path", path).
		Int("stacks", len(profile.Stacks)).
		Int("samples", profile.TotalSamples).
		Msg("parsed collapsed stacks")

	if opts.pprofOut != "" {
		prof := pprofio.Build(profile, opts.event)
		if err := pprofio.WriteFile(opts.pprofOut, prof); err != nil {
			return err
		}
		logger.Info().Str("path", opts.pprofOut).Msg("wrote pprof profile")
	}

	agg := analyzer.Aggregate(profile)
	fmt.Println()
	report.Write(os.Stdout, agg, profile.TotalSamples, report.Options{
		TopN:       opts.topN,
		AppMatcher: frames.NewMatcher(opts.appMarker),
	})
	return nil
}
