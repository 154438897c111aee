package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/doccore/internal/core"
	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/session"
	"github.com/zishang520/engine.io/v2/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

const (
	EventRender      = "render"
	EventAction      = "action"
	EventActionError = "action_error"

	shutdownTimeout = 5 * time.Second
)

// Server is the socket.io host of one session.
type Server struct {
	session *session.Session
	io      *socket.Server
	ctx     context.Context
	logger  *slog.Logger
}

// New creates a server for sess. ctx carries the logger and bounds the
// lifetime of action handling.
func New(ctx context.Context, sess *session.Session) *Server {
	opts := socket.DefaultServerOptions()
	opts.SetServeClient(false)
	opts.SetTransports(types.NewSet(transports.POLLING, transports.WEBSOCKET))

	s := &Server{
		session: sess,
		io:      socket.NewServer(nil, opts),
		ctx:     ctx,
		logger:  ctxlog.FromContext(ctx).With("component", "server"),
	}
	s.io.On("connection", s.onConnection)
	return s
}

// Handler serves socket.io under /socket.io/ and a health probe under
// /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io.ServeHandler(nil))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})
	return mux
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Renderer server listening.", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down renderer server...")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("renderer server shutdown failed: %w", err)
	}
	return nil
}

// Close disconnects every renderer.
func (s *Server) Close() {
	s.io.Close(nil)
}

// Broadcast sends the current render tree to every renderer. Hosts call it
// after changing the session outside of an action, for example on reload.
func (s *Server) Broadcast(ctx context.Context) error {
	nodes, err := s.session.Render(ctx)
	if err != nil {
		return err
	}
	wire, err := toWire(nodes)
	if err != nil {
		return err
	}
	s.io.Emit(EventRender, wire)
	return nil
}

func (s *Server) onConnection(args ...any) {
	if len(args) == 0 {
		return
	}
	client, ok := args[0].(*socket.Socket)
	if !ok {
		return
	}
	ctx := ctxlog.With(s.ctx, "client", string(client.Id()))
	logger := s.logger.With("client", string(client.Id()))
	logger.Debug("Renderer connected.")

	nodes, err := s.session.Render(ctx)
	if err != nil {
		logger.Error("Failed to render document.", "error", err)
		s.reject(client, err)
		return
	}
	if err := s.emitTo(client, nodes); err != nil {
		logger.Error("Failed to send render tree.", "error", err)
	}

	client.On(EventAction, func(data ...any) {
		s.onAction(ctx, client, logger, data)
	})
	client.On("disconnect", func(reason ...any) {
		logger.Debug("Renderer disconnected.", "reason", fmt.Sprint(reason...))
	})
}

func (s *Server) onAction(ctx context.Context, client *socket.Socket, logger *slog.Logger, data []any) {
	if len(data) == 0 {
		s.reject(client, errors.New("action event carries no payload"))
		return
	}
	raw, err := payloadBytes(data[0])
	if err != nil {
		s.reject(client, err)
		return
	}
	nodes, err := s.session.HandleActionJSON(ctx, raw)
	if err != nil {
		logger.Warn("Rejected action.", "error", err)
		s.reject(client, err)
		return
	}
	wire, err := toWire(nodes)
	if err != nil {
		logger.Error("Failed to encode render tree.", "error", err)
		return
	}
	s.io.Emit(EventRender, wire)
}

func (s *Server) emitTo(client *socket.Socket, nodes []core.RenderNode) error {
	wire, err := toWire(nodes)
	if err != nil {
		return err
	}
	return client.Emit(EventRender, wire)
}

func (s *Server) reject(client *socket.Socket, err error) {
	if emitErr := client.Emit(EventActionError, err.Error()); emitErr != nil {
		s.logger.Error("Failed to send action error.", "error", emitErr)
	}
}

// payloadBytes returns an action payload as JSON. Renderers may send the
// object itself or its JSON text.
func payloadBytes(p any) ([]byte, error) {
	switch v := p.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode action payload: %w", err)
	}
	return b, nil
}

// toWire converts the render tree into plain maps and slices, the only
// shapes the socket.io encoder walks.
func toWire(nodes []core.RenderNode) ([]any, error) {
	b, err := json.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	var out []any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
