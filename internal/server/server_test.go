package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	client "github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/doccore/internal/server"
	"github.com/specialistvlad/doccore/internal/testutil"
)

const doc = `
document "doc" {
  booleanInput "bi" {}
  boolean "b" { copy = bi.value }
}
`

func startServer(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithCancel(testutil.Context(&testutil.SafeBuffer{}))
	srv := server.New(ctx, testutil.NewSession(t, doc))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		cancel()
		srv.Close()
		ts.Close()
	})
	return ts.URL
}

// valuesOf maps component names of a render event to their "value".
func valuesOf(args []any) map[string]any {
	out := map[string]any{}
	if len(args) == 0 {
		return out
	}
	nodes, _ := args[0].([]any)
	for _, n := range nodes {
		node, ok := n.(map[string]any)
		if !ok {
			continue
		}
		name, _ := node["componentName"].(string)
		values, _ := node["stateValues"].(map[string]any)
		out[name] = values["value"]
	}
	return out
}

func TestHealthz(t *testing.T) {
	url := startServer(t)
	resp, err := http.Get(url + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRenderAndAction(t *testing.T) {
	url := startServer(t)

	opts := socket.DefaultOptions()
	opts.SetTransports(types.NewSet(client.Polling, client.WebSocket))
	opts.SetAutoConnect(false)
	io, err := socket.Connect(url+"/", opts)
	require.NoError(t, err)
	defer io.Close()

	renders := make(chan map[string]any, 4)
	failures := make(chan string, 4)
	io.On(server.EventRender, func(args ...any) {
		renders <- valuesOf(args)
	})
	io.On(server.EventActionError, func(args ...any) {
		if len(args) > 0 {
			msg, _ := args[0].(string)
			failures <- msg
		}
	})

	io.Connect()

	select {
	case got := <-renders:
		assert.Equal(t, false, got["bi"])
		assert.Equal(t, false, got["b"])
	case <-time.After(5 * time.Second):
		t.Fatal("no initial render")
	}

	require.NoError(t, io.Emit(server.EventAction, map[string]any{
		"componentName": "bi",
		"actionName":    "updateBoolean",
		"args":          map[string]any{"boolean": true},
	}))
	select {
	case got := <-renders:
		assert.Equal(t, true, got["bi"])
		assert.Equal(t, true, got["b"])
	case <-time.After(5 * time.Second):
		t.Fatal("no render after action")
	}

	require.NoError(t, io.Emit(server.EventAction, map[string]any{
		"componentName": "nobody",
		"actionName":    "updateBoolean",
	}))
	select {
	case msg := <-failures:
		assert.Contains(t, msg, "nobody")
	case <-time.After(5 * time.Second):
		t.Fatal("no error for unknown component")
	}
}
