package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SWIMLANE_CONFIG", "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "swimlane version ")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", filepath.Join("..", "..", "pkg", "registry", "testdata", "support.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `Board "support" is valid!`)
	assert.Contains(t, out, "3 lanes")

	_, err = run(t, "validate", filepath.Join("..", "..", "pkg", "registry", "testdata", "dangling.yaml"))
	assert.ErrorContains(t, err, "validation failed")
}

func TestLanes(t *testing.T) {
	out, err := run(t, "lanes")
	require.NoError(t, err)
	assert.Contains(t, out, "todo (To Do)")
	assert.Contains(t, out, "assignee:text")
	assert.Contains(t, out, "completionDate:date")
}

func TestGraph(t *testing.T) {
	out, err := run(t, "graph", "--block", "block-3")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	_, err = run(t, "graph", "--block", "ghost")
	assert.Error(t, err)
}

func TestMCP_UnknownTransport(t *testing.T) {
	_, err := run(t, "mcp", "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport: carrier-pigeon")
}
