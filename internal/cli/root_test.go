package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_AnalyzeMissingFile(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--analyze", filepath.Join(t.TempDir(), "nope.collapsed")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRoot_RejectsUnknownFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--no-such-flag"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.Error(t, cmd.Execute())
}

func TestRoot_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "apsummary version")
}

func TestRoot_DefaultFlags(t *testing.T) {
	cmd := NewRootCmd()

	event, err := cmd.Flags().GetString("event")
	require.NoError(t, err)
	assert.Equal(t, "cpu", event)

	topN, err := cmd.Flags().GetInt("top")
	require.NoError(t, err)
	assert.Equal(t, 25, topN)

	marker, err := cmd.Flags().GetString("app-marker")
	require.NoError(t, err)
	assert.Equal(t, "com/ruleengine", marker)
}
