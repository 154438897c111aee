package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional path and repeated actions", func(t *testing.T) {
		cfg, exit, err := Parse([]string{
			"--action", `{"componentName":"a","actionName":"x"}`,
			"--action", `{"componentName":"b","actionName":"y"}`,
			"--log-format", "TEXT",
			"doc.hcl",
		}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "doc.hcl", cfg.DocumentPath)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Len(t, cfg.Actions, 2)
	})

	t.Run("doc flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-d", "a.hcl", "b.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.DocumentPath)
	})

	t.Run("no path prints usage", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"bad log level", []string{"--log-level", "loud", "doc.hcl"}, "invalid log-level"},
		{"bad log format", []string{"--log-format", "xml", "doc.hcl"}, "invalid log-format"},
		{"actions while listening", []string{"--listen", ":0", "--dump", "doc.hcl"}, "only apply when not listening"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
