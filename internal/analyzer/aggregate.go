// Package analyzer aggregates collapsed-stack samples into the groupings the
// report is built from.
package analyzer

import (
	"sort"

	"apsummary/internal/collapsed"
	"apsummary/internal/frames"
)

// Edge is one caller→callee step of a call stack.
type Edge struct {
	Caller string
	Callee string
}

// Aggregates holds the four groupings computed from a profile. All values are
// cumulative sample counts.
type Aggregates struct {
	// SelfTime counts samples where the frame was the leaf of the stack.
	SelfTime map[string]int
	// TotalTime counts samples where the frame appeared anywhere on the
	// stack, at most once per stack regardless of recursion depth.
	TotalTime map[string]int
	// PackageTime groups self time by the leaf frame's package.
	PackageTime map[string]int
	// Edges counts samples per adjacent (caller, callee) frame pair.
	Edges map[Edge]int
}

// Aggregate computes all four groupings in a single pass over the stacks.
func Aggregate(profile *collapsed.Profile) *Aggregates {
	agg := &Aggregates{
		SelfTime:    make(map[string]int),
		TotalTime:   make(map[string]int),
		PackageTime: make(map[string]int),
		Edges:       make(map[Edge]int),
	}

	for i := range profile.Stacks {
		st := &profile.Stacks[i]
		if len(st.Frames) == 0 {
			continue
		}

		leaf := st.Leaf()
		agg.SelfTime[leaf] += st.Count
		agg.PackageTime[frames.Package(leaf)] += st.Count

		// A frame recurring via recursion counts once per stack, not
		// once per appearance.
		seenInThisStack := make(map[string]bool, len(st.Frames))
		for _, frame := range st.Frames {
			if seenInThisStack[frame] {
				continue
			}
			seenInThisStack[frame] = true
			agg.TotalTime[frame] += st.Count
		}

		for j := 0; j < len(st.Frames)-1; j++ {
			agg.Edges[Edge{Caller: st.Frames[j], Callee: st.Frames[j+1]}] += st.Count
		}
	}

	return agg
}

// Entry is one ranked row of an aggregate map.
type Entry struct {
	Key   string
	Count int
}

// Rank returns the entries of m sorted by descending count, truncated to the
// top n. n <= 0 returns all entries.
func Rank(m map[string]int, n int) []Entry {
	entries := make([]Entry, 0, len(m))
	for key, count := range m {
		entries = append(entries, Entry{Key: key, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && n < len(entries) {
		return entries[:n]
	}
	return entries
}

// EdgeEntry is one ranked row of the edge map.
type EdgeEntry struct {
	Edge  Edge
	Count int
}

// RankEdges returns the edges sorted by descending count, truncated to the
// top n. n <= 0 returns all edges.
func RankEdges(m map[Edge]int, n int) []EdgeEntry {
	entries := make([]EdgeEntry, 0, len(m))
	for edge, count := range m {
		entries = append(entries, EdgeEntry{Edge: edge, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && n < len(entries) {
		return entries[:n]
	}
	return entries
}

// FilterApp returns the subset of m whose frames belong to application code.
func FilterApp(m map[string]int, matcher frames.Matcher) map[string]int {
	out := make(map[string]int)
	for frame, count := range m {
		if matcher.Match(frame) {
			out[frame] = count
		}
	}
	return out
}

// FilterAppEdges returns the subset of edges touching application code as
// either caller or callee.
func FilterAppEdges(m map[Edge]int, matcher frames.Matcher) map[Edge]int {
	out := make(map[Edge]int)
	for edge, count := range m {
		if matcher.Match(edge.Caller) || matcher.Match(edge.Callee) {
			out[edge] = count
		}
	}
	return out
}
