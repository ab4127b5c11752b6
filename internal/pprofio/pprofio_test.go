package pprofio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apsummary/internal/collapsed"
)

func TestBuild(t *testing.T) {
	p := &collapsed.Profile{
		Stacks: []collapsed.Stack{
			{Frames: []string{"A", "B", "C"}, Count: 3},
			{Frames: []string{"A", "C"}, Count: 2},
		},
		TotalSamples: 5,
	}

	prof := Build(p, "cpu")
	require.NoError(t, prof.CheckValid())

	require.Len(t, prof.SampleType, 1)
	assert.Equal(t, "cpu", prof.SampleType[0].Type)
	assert.Equal(t, "count", prof.SampleType[0].Unit)

	require.Len(t, prof.Sample, 2)
	assert.Equal(t, []int64{3}, prof.Sample[0].Value)
	assert.Equal(t, []int64{2}, prof.Sample[1].Value)

	// pprof locations run leaf-first: C, B, A for the first stack.
	names := func(s *profile.Sample) []string {
		var out []string
		for _, loc := range s.Location {
			out = append(out, loc.Line[0].Function.Name)
		}
		return out
	}
	assert.Equal(t, []string{"C", "B", "A"}, names(prof.Sample[0]))
	assert.Equal(t, []string{"C", "A"}, names(prof.Sample[1]))

	// One function and location per unique frame name.
	assert.Len(t, prof.Function, 3)
	assert.Len(t, prof.Location, 3)
	assert.Same(t, prof.Sample[0].Location[2], prof.Sample[1].Location[1], "frame A shares one location")
}

func TestBuild_Empty(t *testing.T) {
	prof := Build(&collapsed.Profile{}, "cpu")
	assert.Empty(t, prof.Sample)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	p := &collapsed.Profile{
		Stacks:       []collapsed.Stack{{Frames: []string{"X", "Y"}, Count: 7}},
		TotalSamples: 7,
	}
	path := filepath.Join(t.TempDir(), "profile.pb.gz")

	require.NoError(t, WriteFile(path, Build(p, "alloc")))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	parsed, err := profile.Parse(f)
	require.NoError(t, err)
	require.NoError(t, parsed.CheckValid())
	require.Len(t, parsed.Sample, 1)
	assert.Equal(t, []int64{7}, parsed.Sample[0].Value)
}
