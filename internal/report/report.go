// Package report renders the aggregated profile as a fixed-width text report.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"apsummary/internal/analyzer"
	"apsummary/internal/frames"
)

// Width is the column width of every report section.
const Width = 80

const (
	defaultTopN     = 25
	breakdownTopN   = 15
	noSamplesNotice = "No samples found in profile."
)

// Options controls report rendering.
type Options struct {
	// TopN limits the method sections. Zero means the default of 25.
	TopN int
	// AppMatcher selects the frames counted as application code.
	AppMatcher frames.Matcher
}

// Write prints the full report for a profile. A profile with zero samples
// produces only the no-samples notice.
func Write(w io.Writer, agg *analyzer.Aggregates, totalSamples int, opts Options) {
	if totalSamples == 0 {
		fmt.Fprintln(w, noSamplesNotice)
		return
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	rule := strings.Repeat("=", Width)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  PROFILE SUMMARY — %s samples\n", group(totalSamples))
	fmt.Fprintln(w, rule)

	header(w, "Top Methods (self time)", "name")
	rows(w, analyzer.Rank(agg.SelfTime, topN), totalSamples, frames.Short)

	header(w, "Top Methods (total time)", "name")
	rows(w, analyzer.Rank(agg.TotalTime, topN), totalSamples, frames.Short)

	appSelf := analyzer.FilterApp(agg.SelfTime, opts.AppMatcher)
	if len(appSelf) > 0 {
		appTotal := 0
		for _, count := range appSelf {
			appTotal += count
		}
		header(w, "Application Code (self time)", "name")
		fmt.Fprintf(w, "  App code: %s samples (%.1f%% of total)\n",
			group(appTotal), 100.0*float64(appTotal)/float64(totalSamples))
		rows(w, analyzer.Rank(appSelf, topN), totalSamples, frames.Short)
	}

	header(w, "Package Breakdown (self time)", "name")
	rows(w, analyzer.Rank(agg.PackageTime, breakdownTopN), totalSamples, func(s string) string { return s })

	appEdges := analyzer.FilterAppEdges(agg.Edges, opts.AppMatcher)
	if len(appEdges) > 0 {
		header(w, "Hot Call Edges (app code)", "caller → callee")
		for _, e := range analyzer.RankEdges(appEdges, breakdownTopN) {
			pct := 100.0 * float64(e.Count) / float64(totalSamples)
			fmt.Fprintf(w, "  %5.1f%%  %8s  %s → %s\n",
				pct, group(e.Count), frames.Short(e.Edge.Caller), frames.Short(e.Edge.Callee))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
}

// header prints a section title padded to the full report width, followed by
// the column headings.
func header(w io.Writer, title, nameCol string) {
	line := "— " + title + " "
	if pad := Width - utf8.RuneCountInString(line); pad > 0 {
		line += strings.Repeat("—", pad)
	}
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  %6s  %8s  %s\n", "%", "samples", nameCol)
	fmt.Fprintf(w, "  %s  %s  %s\n",
		strings.Repeat("—", 6), strings.Repeat("—", 8), strings.Repeat("—", 40))
}

func rows(w io.Writer, entries []analyzer.Entry, totalSamples int, display func(string) string) {
	for _, e := range entries {
		pct := 100.0 * float64(e.Count) / float64(totalSamples)
		fmt.Fprintf(w, "  %5.1f%%  %8s  %s\n", pct, group(e.Count), display(e.Key))
	}
}

// group formats an integer with comma digit grouping.
func group(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
