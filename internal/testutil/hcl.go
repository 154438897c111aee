package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/specialistvlad/doccore/internal/core"
	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/hcldoc"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/specialistvlad/doccore/internal/session"
	"github.com/specialistvlad/doccore/modules/catalog"
	"github.com/stretchr/testify/require"
)

// Context returns a context whose logger writes debug output to logs.
func Context(logs *SafeBuffer) context.Context {
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

// LoadTree parses an inline HCL document.
func LoadTree(t *testing.T, src string) *model.Tree {
	t.Helper()
	tree, err := hcldoc.LoadSource(context.Background(), "test.hcl", []byte(src))
	require.NoError(t, err)
	return tree
}

// NewCore builds a core over the default catalogue from an inline document.
func NewCore(t *testing.T, src string) (*core.Core, []docerr.Warning) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	c, warnings, err := core.New(context.Background(), LoadTree(t, src), cat)
	require.NoError(t, err)
	return c, warnings
}

// NewSession builds a session over the default catalogue from an inline
// document.
func NewSession(t *testing.T, src string) *session.Session {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, _, err := session.New(context.Background(), LoadTree(t, src), cat)
	require.NoError(t, err)
	return s
}
