// Package session owns one live document and serializes every call into it.
// The core itself is single-threaded; hosts that serve several clients share
// a Session instead of a core.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/specialistvlad/doccore/internal/core"
	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/dump"
	"github.com/specialistvlad/doccore/internal/model"
)

// Session is a mutex-guarded core.
type Session struct {
	mu   sync.Mutex
	cat  definition.Catalogue
	core *core.Core
}

// New builds the core for tree.
func New(ctx context.Context, tree *model.Tree, cat definition.Catalogue) (*Session, []docerr.Warning, error) {
	c, warnings, err := core.New(ctx, tree, cat)
	if err != nil {
		return nil, nil, err
	}
	return &Session{cat: cat, core: c}, warnings, nil
}

// Render returns the current render tree.
func (s *Session) Render(ctx context.Context) ([]core.RenderNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.UpdateRenderers(ctx)
}

// HandleAction applies an action and returns the render tree that follows
// from it.
func (s *Session) HandleAction(ctx context.Context, a core.Action) ([]core.RenderNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.core.HandleAction(ctx, a); err != nil {
		return nil, err
	}
	return s.core.UpdateRenderers(ctx)
}

// HandleActionJSON decodes and applies an action sent by a renderer.
func (s *Session) HandleActionJSON(ctx context.Context, data []byte) ([]core.RenderNode, error) {
	a, err := core.ParseAction(data)
	if err != nil {
		return nil, err
	}
	return s.HandleAction(ctx, a)
}

// Reload replaces the document, keeping the essential data of the current
// one so edits survive.
func (s *Session) Reload(ctx context.Context, tree *model.Tree) ([]docerr.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, warnings, err := core.New(ctx, tree, s.cat, core.WithEssential(s.core.Essential()))
	if err != nil {
		return nil, fmt.Errorf("failed to reload document: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Session: Document reloaded.", "root", tree.Root)
	s.core = c
	return warnings, nil
}

// Dump writes the compiled graph and essential data as YAML.
func (s *Session) Dump(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := dump.Build(s.core.Graph(), s.core.Essential())
	if err != nil {
		return err
	}
	return dump.Write(w, doc)
}
