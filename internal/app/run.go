package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/hcldoc"
	"github.com/specialistvlad/doccore/internal/server"
	"github.com/specialistvlad/doccore/internal/session"
)

// Run builds the session and executes the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	sess, warnings, err := session.New(ctx, a.tree, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}
	for _, w := range warnings {
		a.logger.Warn("Document warning.", "warning", w.String())
	}

	if a.config.Listen != "" {
		return a.serve(ctx, sess)
	}
	return a.runOnce(ctx, sess)
}

// runOnce applies the configured actions and prints the render tree, or the
// state dump when requested.
func (a *App) runOnce(ctx context.Context, sess *session.Session) error {
	for i, raw := range a.config.Actions {
		if _, err := sess.HandleActionJSON(ctx, []byte(raw)); err != nil {
			return fmt.Errorf("action %d failed: %w", i+1, err)
		}
	}
	a.logger.Debug("Actions applied.", "count", len(a.config.Actions))

	if a.config.Dump {
		return sess.Dump(a.outW)
	}
	nodes, err := sess.Render(ctx)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(nodes)
}

// serve hosts the session until ctx is canceled. SIGHUP reloads the document
// from disk, keeping what renderers have changed.
func (a *App) serve(ctx context.Context, sess *session.Session) error {
	srv := server.New(ctx, sess)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				a.reload(ctx, sess, srv)
			}
		}
	}()

	return srv.ListenAndServe(ctx, a.config.Listen)
}

func (a *App) reload(ctx context.Context, sess *session.Session, srv *server.Server) {
	a.logger.Info("Reloading document...", "path", a.config.DocumentPath)
	tree, err := hcldoc.Load(ctx, a.config.DocumentPath)
	if err != nil {
		a.logger.Error("Reload failed, keeping the current document.", "error", err)
		return
	}
	warnings, err := sess.Reload(ctx, tree)
	if err != nil {
		a.logger.Error("Reload failed, keeping the current document.", "error", err)
		return
	}
	for _, w := range warnings {
		a.logger.Warn("Document warning.", "warning", w.String())
	}
	if err := srv.Broadcast(ctx); err != nil {
		a.logger.Error("Failed to send reloaded document.", "error", err)
	}
}
