package preview

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const buttonFixtures = `component: Button
title: Primary
props:
  text: Schedule a tour
  variant: primary
---
component: button
title: Outline small
props:
  text: Save
  variant: outline
  size: sm
---
title: ignored without a component
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadDir_MultiDocumentFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "button.yaml", buttonFixtures)
	writeFile(t, dir, "card-grid.yml", "component: card-grid\nprops:\n  columns: 4\n  query:\n    city: Austin\n")
	writeFile(t, dir, "notes.txt", "component: badge")

	fixtures, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, fixtures, 3)

	assert.Equal(t, "button-1", fixtures[0].ID)
	assert.Equal(t, "button", fixtures[0].Component, "component names are lowercased")
	assert.Equal(t, "Schedule a tour", fixtures[0].Props.String("text"))
	assert.Equal(t, "button-2", fixtures[1].ID)

	grid := fixtures[2]
	assert.Equal(t, "card-grid", grid.Title, "title defaults to the component")
	assert.Equal(t, 4, grid.Props.Int("columns", 0))
	query, ok := grid.Props["query"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Austin", query["city"])
}

func TestLoadDir_MissingAndBroken(t *testing.T) {
	fixtures, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, fixtures)

	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "component: badge\nprops: {text: New}\n")
	writeFile(t, dir, "b.yaml", "component: [unclosed\n")

	fixtures, err = LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.yaml")
	assert.Len(t, fixtures, 1, "good files survive a broken sibling")
}

func TestStore_Lookup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "button.yaml", buttonFixtures)

	s, err := NewStore(dir)
	require.NoError(t, err)
	assert.Len(t, s.ForComponent("BUTTON"), 2)
	assert.Empty(t, s.ForComponent("badge"))

	fx, ok := s.Get("button-2")
	require.True(t, ok)
	assert.Equal(t, "Outline small", fx.Title)
	_, ok = s.Get("button-9")
	assert.False(t, ok)
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn
}

func TestHub_BroadcastAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Type: "reload", Files: []string{"button.yaml"}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "reload", msg.Type)
	assert.Equal(t, []string{"button.yaml"}, msg.Files)
	assert.False(t, msg.Timestamp.IsZero())

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "clients get a going-away close: %v", err)
	assert.Zero(t, hub.Clients())
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	w := NewWatcher(store, nil, nil)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory before writing.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, dir, "badge.yaml", "component: badge\nprops: {text: Sold}\n")

	require.Eventually(t, func() bool { return len(store.All()) == 1 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
