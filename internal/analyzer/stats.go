package analyzer

import (
	"math"

	"apsummary/internal/collapsed"
)

// Stats contains summary statistics about a parsed profile.
type Stats struct {
	TotalSamples int
	TotalStacks  int
	UniqueFrames int
	MinDepth     int
	MaxDepth     int
	AvgDepth     float64
}

// ComputeStats calculates summary statistics for the profile.
func ComputeStats(profile *collapsed.Profile) Stats {
	stats := Stats{
		TotalSamples: profile.TotalSamples,
		TotalStacks:  len(profile.Stacks),
	}
	if stats.TotalStacks == 0 {
		return stats
	}

	totalDepth := 0
	stats.MinDepth = math.MaxInt32

	frameSet := make(map[string]bool)
	for i := range profile.Stacks {
		st := &profile.Stacks[i]

		depth := len(st.Frames)
		totalDepth += depth
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if depth < stats.MinDepth {
			stats.MinDepth = depth
		}

		for _, frame := range st.Frames {
			frameSet[frame] = true
		}
	}

	stats.AvgDepth = float64(totalDepth) / float64(stats.TotalStacks)
	stats.UniqueFrames = len(frameSet)
	return stats
}
