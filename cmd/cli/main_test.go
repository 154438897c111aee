package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0600), "failed to set up test file")
	return path
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// A syntax error makes app.NewApp panic while loading.
	path := writeDoc(t, `
		document "doc" {
			p "intro" {
		// Missing closing brace here
	`)
	out := &bytes.Buffer{}

	runErr := run(context.Background(), out, &bytes.Buffer{}, []string{path})

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_RendersAfterActions(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, `
document "doc" {
  booleanInput "bi" {}
  boolean "b" { copy = bi.value }
}
`)
	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{
		"--action", `{"componentName":"bi","actionName":"updateBoolean","args":{"boolean":true}}`,
		path,
	})
	require.NoError(t, err)

	var nodes []struct {
		ComponentName string         `json:"componentName"`
		StateValues   map[string]any `json:"stateValues"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &nodes))
	values := map[string]any{}
	for _, n := range nodes {
		values[n.ComponentName] = n.StateValues["value"]
	}
	assert.Equal(t, true, values["bi"])
	assert.Equal(t, true, values["b"])
}

func TestRun_Dump(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, `
document "doc" {
  number "n" { children = "1 + 1" }
}
`)
	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, &bytes.Buffer{}, []string{"--dump", path}))
	assert.Contains(t, out.String(), "variables:")
}
