// Package pprofio converts collapsed stacks into pprof protobuf profiles so
// the same data can feed `go tool pprof` and flame-graph tooling.
package pprofio

import (
	"fmt"
	"os"

	"github.com/google/pprof/profile"

	"apsummary/internal/collapsed"
)

// Build converts a collapsed-stack profile into a pprof profile. Each stack
// becomes one sample whose locations run leaf-first, as pprof expects; one
// synthetic Function and Location is created per unique frame name.
func Build(p *collapsed.Profile, event string) *profile.Profile {
	prof := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: event, Unit: "count"},
		},
	}

	locs := make(map[string]*profile.Location)
	nextID := uint64(1)
	locFor := func(frame string) *profile.Location {
		if loc, ok := locs[frame]; ok {
			return loc
		}
		fn := &profile.Function{
			ID:         nextID,
			Name:       frame,
			SystemName: frame,
		}
		loc := &profile.Location{
			ID:   nextID,
			Line: []profile.Line{{Function: fn}},
		}
		nextID++
		prof.Function = append(prof.Function, fn)
		prof.Location = append(prof.Location, loc)
		locs[frame] = loc
		return loc
	}

	for i := range p.Stacks {
		st := &p.Stacks[i]
		if len(st.Frames) == 0 {
			continue
		}
		sampleLocs := make([]*profile.Location, 0, len(st.Frames))
		for j := len(st.Frames) - 1; j >= 0; j-- {
			sampleLocs = append(sampleLocs, locFor(st.Frames[j]))
		}
		prof.Sample = append(prof.Sample, &profile.Sample{
			Location: sampleLocs,
			Value:    []int64{int64(st.Count)},
		})
	}

	return prof
}

// WriteFile writes a pprof profile to path in the gzipped protobuf format.
func WriteFile(path string, prof *profile.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pprof output: %w", err)
	}
	defer f.Close()

	if err := prof.Write(f); err != nil {
		return fmt.Errorf("failed to write pprof profile: %w", err)
	}
	return f.Close()
}
