package collapsed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	profile, err := Parse(strings.NewReader("X;Y;Z 7\n"))
	require.NoError(t, err)

	require.Len(t, profile.Stacks, 1)
	assert.Equal(t, []string{"X", "Y", "Z"}, profile.Stacks[0].Frames)
	assert.Equal(t, 7, profile.Stacks[0].Count)
	assert.Equal(t, 7, profile.TotalSamples)
}

func TestParse_SkipsBlankAndCommentLines(t *testing.T) {
	input := `# produced by async-profiler

a;b 3
# trailing annotation
c 2
`
	profile, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, profile.Stacks, 2)
	assert.Equal(t, 5, profile.TotalSamples)
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"non-integer count", "a;b notanumber"},
		{"float count", "a;b 3.5"},
		{"no whitespace separator", "a;b;c"},
		{"bare word", "warmup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := Parse(strings.NewReader(tt.line + "\n"))
			require.NoError(t, err)
			assert.Empty(t, profile.Stacks)
			assert.Equal(t, 0, profile.TotalSamples)
		})
	}
}

func TestParse_MalformedLinesCoexistWithValidData(t *testing.T) {
	input := "a;b 3\nbogus line here\nc;d 4\n"
	profile, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, profile.Stacks, 2)
	assert.Equal(t, 7, profile.TotalSamples)
}

func TestParse_SplitsAtLastWhitespaceRun(t *testing.T) {
	// Frame text may contain spaces; only the trailing token is the count.
	profile, err := Parse(strings.NewReader("java.lang.Thread run;Lambda x 12\n"))
	require.NoError(t, err)

	require.Len(t, profile.Stacks, 1)
	assert.Equal(t, []string{"java.lang.Thread run", "Lambda x"}, profile.Stacks[0].Frames)
	assert.Equal(t, 12, profile.Stacks[0].Count)
}

func TestParse_MultipleSpacesBeforeCount(t *testing.T) {
	profile, err := Parse(strings.NewReader("a;b\t  42\n"))
	require.NoError(t, err)

	require.Len(t, profile.Stacks, 1)
	assert.Equal(t, []string{"a", "b"}, profile.Stacks[0].Frames)
	assert.Equal(t, 42, profile.Stacks[0].Count)
}

func TestParse_PreservesEmptyFrames(t *testing.T) {
	profile, err := Parse(strings.NewReader("a;;b 2\n"))
	require.NoError(t, err)

	require.Len(t, profile.Stacks, 1)
	assert.Equal(t, []string{"a", "", "b"}, profile.Stacks[0].Frames)
}

func TestParse_EmptyInput(t *testing.T) {
	profile, err := Parse(strings.NewReader(""))
	require.NoError(t, err)

	assert.Empty(t, profile.Stacks)
	assert.Equal(t, 0, profile.TotalSamples)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.collapsed")
	require.NoError(t, os.WriteFile(path, []byte("X;Y 5\nZ 1\n"), 0o644))

	profile, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, profile.TotalSamples)
	assert.Len(t, profile.Stacks, 2)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.collapsed"))
	require.Error(t, err)
}

func TestStack_Leaf(t *testing.T) {
	st := Stack{Frames: []string{"root", "mid", "leaf"}}
	assert.Equal(t, "leaf", st.Leaf())

	empty := Stack{}
	assert.Equal(t, "", empty.Leaf())
}
