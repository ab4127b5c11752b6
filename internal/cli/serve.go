package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"apsummary/internal/analyzer"
	"apsummary/internal/collapsed"
	"apsummary/internal/frames"
)

// NewServeCmd exposes the profile analyses as MCP tools over stdio, so MCP
// clients can interrogate collapsed-stack files conversationally.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the profile analyses as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveMCP()
		},
	}
}

// profileEntry is one loaded profile with its precomputed aggregates.
type profileEntry struct {
	profile *collapsed.Profile
	agg     *analyzer.Aggregates
}

func serveMCP() error {
	cache := make(map[string]*profileEntry)

	load := func(request mcp.CallToolRequest) (*profileEntry, string, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return nil, "", err
		}
		entry, ok := cache[filePath]
		if !ok {
			return nil, filePath, fmt.Errorf("profile not loaded, use load_profile first")
		}
		return entry, filePath, nil
	}

	s := server.NewMCPServer(
		"apsummary",
		version,
		server.WithLogging(),
	)

	loadProfileTool := mcp.NewTool("load_profile",
		mcp.WithDescription("Load a collapsed call-stacks file (async-profiler collapsed format) for analysis"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the collapsed stacks file"),
		),
	)

	s.AddTool(loadProfileTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		profile, err := collapsed.ParseFile(filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load profile: %v", err)), nil
		}
		cache[filePath] = &profileEntry{
			profile: profile,
			agg:     analyzer.Aggregate(profile),
		}

		stats := analyzer.ComputeStats(profile)
		result := fmt.Sprintf(`Profile loaded.

File: %s
Samples: %d
Stacks: %d
Unique frames: %d
Stack depth: min %d / avg %.1f / max %d

Use top_methods, package_breakdown, hot_edges or profile_stats to analyze it.
`,
			filePath,
			stats.TotalSamples,
			stats.TotalStacks,
			stats.UniqueFrames,
			stats.MinDepth, stats.AvgDepth, stats.MaxDepth,
		)
		return mcp.NewToolResultText(result), nil
	})

	topMethodsTool := mcp.NewTool("top_methods",
		mcp.WithDescription("Rank methods by self time (samples where the method was executing) or total time (samples where it was anywhere on the stack)"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to a loaded collapsed stacks file"),
		),
		mcp.WithString("mode",
			mcp.Description("Ranking mode: \"self\" (default) or \"total\""),
		),
		mcp.WithNumber("top_n",
			mcp.Description("Number of entries to return (default: 10)"),
		),
	)

	s.AddTool(topMethodsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, _, err := load(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		topN := int(request.GetFloat("top_n", 10))

		mode := request.GetString("mode", "self")
		var ranked []analyzer.Entry
		switch mode {
		case "self":
			ranked = analyzer.Rank(entry.agg.SelfTime, topN)
		case "total":
			ranked = analyzer.Rank(entry.agg.TotalTime, topN)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q, want \"self\" or \"total\"", mode)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "TOP METHODS (%s time)\n\n", mode)
		writeRanked(&sb, ranked, entry.profile.TotalSamples)
		return mcp.NewToolResultText(sb.String()), nil
	})

	packageBreakdownTool := mcp.NewTool("package_breakdown",
		mcp.WithDescription("Break self time down by the leaf frame's package/namespace"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to a loaded collapsed stacks file"),
		),
		mcp.WithNumber("top_n",
			mcp.Description("Number of packages to return (default: 15)"),
		),
	)

	s.AddTool(packageBreakdownTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, _, err := load(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		topN := int(request.GetFloat("top_n", 15))

		var sb strings.Builder
		sb.WriteString("PACKAGE BREAKDOWN (self time)\n\n")
		for i, e := range analyzer.Rank(entry.agg.PackageTime, topN) {
			pct := 100.0 * float64(e.Count) / float64(entry.profile.TotalSamples)
			fmt.Fprintf(&sb, "%d. %s\n   %d samples (%.1f%%)\n", i+1, e.Key, e.Count, pct)
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	hotEdgesTool := mcp.NewTool("hot_edges",
		mcp.WithDescription("Rank caller → callee edges by weight, optionally restricted to edges touching application code"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to a loaded collapsed stacks file"),
		),
		mcp.WithString("app_marker",
			mcp.Description("Restrict to edges touching this namespace marker (empty: all edges)"),
		),
		mcp.WithNumber("top_n",
			mcp.Description("Number of edges to return (default: 15)"),
		),
	)

	s.AddTool(hotEdgesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, _, err := load(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		topN := int(request.GetFloat("top_n", 15))

		edges := entry.agg.Edges
		if marker := request.GetString("app_marker", ""); marker != "" {
			edges = analyzer.FilterAppEdges(edges, frames.NewMatcher(marker))
		}

		var sb strings.Builder
		sb.WriteString("HOT CALL EDGES\n\n")
		if len(edges) == 0 {
			sb.WriteString("No matching edges.\n")
		}
		for _, e := range analyzer.RankEdges(edges, topN) {
			pct := 100.0 * float64(e.Count) / float64(entry.profile.TotalSamples)
			fmt.Fprintf(&sb, "%5.1f%%  %8d  %s → %s\n",
				pct, e.Count, frames.Short(e.Edge.Caller), frames.Short(e.Edge.Callee))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	profileStatsTool := mcp.NewTool("profile_stats",
		mcp.WithDescription("Summary statistics: sample and stack totals, unique frames, stack depth distribution"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to a loaded collapsed stacks file"),
		),
	)

	s.AddTool(profileStatsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, filePath, err := load(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		stats := analyzer.ComputeStats(entry.profile)
		var sb strings.Builder
		sb.WriteString("PROFILE STATISTICS\n\n")
		fmt.Fprintf(&sb, "File: %s\n", filePath)
		fmt.Fprintf(&sb, "Total samples: %d\n", stats.TotalSamples)
		fmt.Fprintf(&sb, "Total stacks: %d\n", stats.TotalStacks)
		fmt.Fprintf(&sb, "Unique frames: %d\n\n", stats.UniqueFrames)
		sb.WriteString("Stack depth:\n")
		fmt.Fprintf(&sb, "  Average: %.2f frames\n", stats.AvgDepth)
		fmt.Fprintf(&sb, "  Maximum: %d frames\n", stats.MaxDepth)
		fmt.Fprintf(&sb, "  Minimum: %d frames\n", stats.MinDepth)
		return mcp.NewToolResultText(sb.String()), nil
	})

	return server.ServeStdio(s)
}

func writeRanked(sb *strings.Builder, ranked []analyzer.Entry, totalSamples int) {
	if len(ranked) == 0 {
		sb.WriteString("No samples.\n")
		return
	}
	for i, e := range ranked {
		pct := 100.0 * float64(e.Count) / float64(totalSamples)
		fmt.Fprintf(sb, "#%d: %s\n", i+1, frames.Short(e.Key))
		fmt.Fprintf(sb, "    Samples: %d (%.1f%%)\n", e.Count, pct)
	}
}
