package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	websocket "github.com/gorilla/websocket"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"

	config "github.com/inference-gateway/editor-assistant/config"
	domain "github.com/inference-gateway/editor-assistant/internal/domain"
)

type inlineDispatcher struct{}

func (inlineDispatcher) Post(fn func()) { fn() }

// heldDispatcher runs tasks inline until held, then queues them until
// released.
type heldDispatcher struct {
	mu     sync.Mutex
	held   bool
	queued []func()
}

func (d *heldDispatcher) Post(fn func()) {
	d.mu.Lock()
	if d.held {
		d.queued = append(d.queued, fn)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	fn()
}

func (d *heldDispatcher) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

func (d *heldDispatcher) Release() {
	d.mu.Lock()
	queued := d.queued
	d.queued = nil
	d.held = false
	d.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

type echoObject struct{}

func (echoObject) NativeMethods() map[string]domain.NativeMethod {
	return map[string]domain.NativeMethod{
		"Echo": func(args []json.RawMessage) (json.RawMessage, error) {
			if len(args) != 1 {
				return nil, errors.New("expected one argument")
			}
			return args[0], nil
		},
		"Fail": func([]json.RawMessage) (json.RawMessage, error) {
			return nil, errors.New("boom")
		},
	}
}

type recordingHandler struct {
	view domain.WebView

	mu         sync.Mutex
	events     []string
	messages   [][2]string
	closed     int
	loadState  domain.LoadState
	blockMatch string
	navBlocked bool
}

func (h *recordingHandler) record(event string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func (h *recordingHandler) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func (h *recordingHandler) Open() error {
	if err := h.view.BindObject("AIAssistantSubsystem", echoObject{}, true); err != nil {
		return err
	}
	return h.view.LoadURL("https://assistant.example/")
}

func (h *recordingHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed++
}

func (h *recordingHandler) ClosedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *recordingHandler) OnBeforeNavigation(url string, isRedirect bool) bool {
	h.record("navigate " + url)
	blocked := h.blockMatch != "" && strings.Contains(url, h.blockMatch)
	h.mu.Lock()
	h.navBlocked = blocked
	h.mu.Unlock()
	return blocked
}

func (h *recordingHandler) CanCallNative(object string) bool {
	if object == "aiassistantresultdelegate" {
		return true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.navBlocked
}

func (h *recordingHandler) OnBeforePopup(url string) bool {
	h.record("popup " + url)
	return true
}

func (h *recordingHandler) OnConsoleMessage(severity domain.ConsoleSeverity, message, source string, line int) {
	h.record("console " + message)
}

func (h *recordingHandler) OnLoadStarted() { h.record("load_started") }

func (h *recordingHandler) OnLoadCompleted() {
	h.mu.Lock()
	h.loadState = domain.LoadStateComplete
	h.mu.Unlock()
	h.record("load_completed")
}

func (h *recordingHandler) OnLoadError() { h.record("load_error") }
func (h *recordingHandler) OnClosed()    { h.record("closed") }

func (h *recordingHandler) CreateConversation() { h.record("create_conversation") }

func (h *recordingHandler) AddUserMessageToConversation(visible, hidden string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, [2]string{visible, hidden})
}

func (h *recordingHandler) LoadState() domain.LoadState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadState
}

func (h *recordingHandler) IsAssistantPageLoaded() bool {
	return h.LoadState() == domain.LoadStateComplete
}

func (h *recordingHandler) PendingMessages() int { return 0 }

type serverFixture struct {
	server   *PageServer
	http     *httptest.Server
	mu       sync.Mutex
	handlers []*recordingHandler
}

const testAssistantURL = "https://assistant.example/"

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	return newServerFixtureWith(t, inlineDispatcher{})
}

func newServerFixtureWith(t *testing.T, dispatcher domain.Dispatcher) *serverFixture {
	t.Helper()
	f := &serverFixture{}
	cfg := config.DefaultConfig()
	assistant := &config.AssistantConfig{MainURL: testAssistantURL}
	f.server = NewPageServer(cfg, assistant, dispatcher, func(view domain.WebView) (PageHandler, error) {
		h := &recordingHandler{view: view, blockMatch: "blocked"}
		f.mu.Lock()
		f.handlers = append(f.handlers, h)
		f.mu.Unlock()
		return h, nil
	})
	f.http = httptest.NewServer(f.server.Handler())
	t.Cleanup(func() {
		f.server.Shutdown()
		f.http.Close()
	})
	return f
}

func (f *serverFixture) handler(t *testing.T, i int) *recordingHandler {
	t.Helper()
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.handlers) > i
	}, time.Second, 10*time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handlers[i]
}

func (f *serverFixture) wsURL() string {
	return "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
}

func (f *serverFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// bind and load_url are always sent on open
	readMessage(t, conn)
	readMessage(t, conn)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func TestPageServer_OpenBindsThenLoads(t *testing.T) {
	f := newServerFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(), nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	bind := readMessage(t, conn)
	assert.Equal(t, "bind", bind["type"])
	assert.Equal(t, "aiassistantsubsystem", bind["name"])
	assert.Equal(t, []any{"echo", "fail"}, bind["methods"])
	assert.Equal(t, true, bind["permanent"])

	load := readMessage(t, conn)
	assert.Equal(t, "load_url", load["type"])
	assert.Equal(t, testAssistantURL, load["url"])
}

func TestPageServer_OriginCheck(t *testing.T) {
	f := newServerFixture(t)

	tests := []struct {
		name   string
		origin string
		ok     bool
	}{
		{name: "no origin", origin: "", ok: true},
		{name: "main url origin", origin: "https://assistant.example", ok: true},
		{name: "allow-listed origin", origin: "https://dev.epicgames.com", ok: true},
		{name: "origin case is ignored", origin: "HTTPS://Assistant.Example", ok: true},
		{name: "foreign origin", origin: "https://evil.example", ok: false},
		{name: "main host on another scheme", origin: "http://assistant.example", ok: false},
		{name: "lookalike host", origin: "https://assistant.example.evil.example", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(f.wsURL(), header)
			if tt.ok {
				require.NoError(t, err)
				_ = conn.Close()
				return
			}
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestPageServer_RoutesPageEvents(t *testing.T) {
	f := newServerFixture(t)
	conn := f.dial(t)
	h := f.handler(t, 0)

	sendMessage(t, conn, map[string]any{"type": "load_started"})
	sendMessage(t, conn, map[string]any{"type": "console", "severity": "error", "message": "oops", "source": "app.js", "line": 3})
	sendMessage(t, conn, map[string]any{"type": "before_popup", "url": "https://docs.example/"})
	sendMessage(t, conn, map[string]any{"type": "something_new"})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	sendMessage(t, conn, map[string]any{"type": "load_completed"})

	assert.Eventually(t, func() bool {
		return len(h.Events()) == 4
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"load_started", "console oops", "popup https://docs.example/", "load_completed"}, h.Events())
}

func TestPageServer_NavigationDecision(t *testing.T) {
	f := newServerFixture(t)
	conn := f.dial(t)

	tests := []struct {
		name  string
		id    float64
		url   string
		block bool
	}{
		{name: "allowed", id: 1, url: "https://assistant.example/chat", block: false},
		{name: "blocked", id: 2, url: "https://blocked.example/", block: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sendMessage(t, conn, map[string]any{"type": "before_navigation", "id": tt.id, "url": tt.url})
			reply := readMessage(t, conn)
			assert.Equal(t, "navigation_decision", reply["type"])
			assert.Equal(t, tt.id, reply["id"])
			assert.Equal(t, tt.block, reply["block"])
		})
	}
}

func TestPageServer_NativeCalls(t *testing.T) {
	f := newServerFixture(t)
	conn := f.dial(t)

	t.Run("method names are case-insensitive", func(t *testing.T) {
		sendMessage(t, conn, map[string]any{"type": "call", "id": 3, "object": "aiassistantsubsystem", "method": "echo", "args": []any{"hi"}})
		reply := readMessage(t, conn)
		assert.Equal(t, "call_result", reply["type"])
		assert.Equal(t, float64(3), reply["id"])
		assert.Equal(t, "hi", reply["result"])
		assert.Nil(t, reply["error"])
	})

	t.Run("method error", func(t *testing.T) {
		sendMessage(t, conn, map[string]any{"type": "call", "id": 4, "object": "aiassistantsubsystem", "method": "fail"})
		reply := readMessage(t, conn)
		assert.Equal(t, float64(4), reply["id"])
		assert.Contains(t, reply["error"], "boom")
	})

	t.Run("unknown method", func(t *testing.T) {
		sendMessage(t, conn, map[string]any{"type": "call", "id": 5, "object": "aiassistantsubsystem", "method": "missing"})
		reply := readMessage(t, conn)
		assert.Contains(t, reply["error"], domain.ErrUnknownNativeMethod.Error())
	})

	t.Run("unknown object", func(t *testing.T) {
		sendMessage(t, conn, map[string]any{"type": "call", "id": 6, "object": "nobody", "method": "echo"})
		reply := readMessage(t, conn)
		assert.Contains(t, reply["error"], domain.ErrUnknownNativeObject.Error())
	})
}

func TestPageServer_NativeCallsRefusedAfterBlockedNavigation(t *testing.T) {
	f := newServerFixture(t)
	conn := f.dial(t)

	sendMessage(t, conn, map[string]any{"type": "before_navigation", "id": 1, "url": "https://blocked.example/"})
	reply := readMessage(t, conn)
	require.Equal(t, true, reply["block"])

	sendMessage(t, conn, map[string]any{"type": "call", "id": 2, "object": "aiassistantsubsystem", "method": "echo", "args": []any{"hi"}})
	reply = readMessage(t, conn)
	assert.Equal(t, float64(2), reply["id"])
	assert.Nil(t, reply["result"])
	assert.Contains(t, reply["error"], domain.ErrNativeCallRefused.Error())

	sendMessage(t, conn, map[string]any{"type": "before_navigation", "id": 3, "url": testAssistantURL})
	reply = readMessage(t, conn)
	require.Equal(t, false, reply["block"])

	sendMessage(t, conn, map[string]any{"type": "call", "id": 4, "object": "aiassistantsubsystem", "method": "echo", "args": []any{"hi"}})
	reply = readMessage(t, conn)
	assert.Equal(t, "hi", reply["result"])
	assert.Nil(t, reply["error"])
}

func TestPageServer_Status(t *testing.T) {
	f := newServerFixture(t)
	conn := f.dial(t)
	sendMessage(t, conn, map[string]any{"type": "load_completed"})
	h := f.handler(t, 0)
	require.Eventually(t, h.IsAssistantPageLoaded, time.Second, 10*time.Millisecond)

	resp, err := http.Get(f.http.URL + "/api/status")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count    int             `json:"count"`
		Sessions []SessionStatus `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Sessions, 1)
	assert.Equal(t, "LoadComplete", body.Sessions[0].LoadState)
	assert.True(t, body.Sessions[0].AssistantPageLoaded)
	assert.Equal(t, []string{"aiassistantsubsystem"}, body.Sessions[0].Bound)

	post, err := http.Post(f.http.URL+"/api/status", "application/json", nil)
	require.NoError(t, err)
	_ = post.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
}

const saveButtonSnapshot = `
cursor: save-text
main_window: main
windows:
  - id: main
    type: SWindow
    title: Unreal Editor
    children:
      - id: save
        type: SButton
        children:
          - {id: save-text, type: STextBlock, text: Save}
`

func TestPageServer_Inspect(t *testing.T) {
	f := newServerFixture(t)

	t.Run("no page connected", func(t *testing.T) {
		resp, err := http.Post(f.http.URL+"/api/inspect", "application/yaml", strings.NewReader(saveButtonSnapshot))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	f.dial(t)
	h := f.handler(t, 0)

	t.Run("malformed snapshot", func(t *testing.T) {
		resp, err := http.Post(f.http.URL+"/api/inspect", "application/yaml", strings.NewReader("cursor: [unterminated"))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("nothing to describe", func(t *testing.T) {
		doc := "cursor: w\nwindows:\n  - {id: w, type: SWindow}\n"
		resp, err := http.Post(f.http.URL+"/api/inspect", "application/yaml", strings.NewReader(doc))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("describes and submits the query", func(t *testing.T) {
		resp, err := http.Post(f.http.URL+"/api/inspect", "application/yaml", bytes.NewBufferString(saveButtonSnapshot))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body InspectResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, `I would like to know what the "Save" button does.`, body.Visible)
		assert.Contains(t, body.Hidden, "(Context: ")

		assert.Contains(t, h.Events(), "create_conversation")
		h.mu.Lock()
		defer h.mu.Unlock()
		require.Len(t, h.messages, 1)
		assert.Equal(t, body.Visible, h.messages[0][0])
		assert.Equal(t, body.Hidden, h.messages[0][1])
	})
}

func TestPageServer_InspectAbandonedOnTimeoutNeverRuns(t *testing.T) {
	dispatcher := &heldDispatcher{}
	f := newServerFixtureWith(t, dispatcher)
	f.server.dispatchTimeout = 20 * time.Millisecond
	f.dial(t)
	h := f.handler(t, 0)

	dispatcher.Hold()
	resp, err := http.Post(f.http.URL+"/api/inspect", "application/yaml", strings.NewReader(saveButtonSnapshot))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	dispatcher.Release()

	assert.NotContains(t, h.Events(), "create_conversation")
	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Empty(t, h.messages)
}

func TestPageServer_DisconnectClosesHost(t *testing.T) {
	f := newServerFixture(t)
	conn := f.dial(t)
	h := f.handler(t, 0)
	require.Equal(t, 1, f.server.Sessions().ActiveSessionCount())

	sendMessage(t, conn, map[string]any{"type": "closed"})

	assert.Eventually(t, func() bool {
		return f.server.Sessions().ActiveSessionCount() == 0 && h.ClosedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, h.Events(), "closed")
}

func TestSessionManager_InactiveSessionsAreClosed(t *testing.T) {
	f := newServerFixture(t)
	conn := f.dial(t)
	h := f.handler(t, 0)
	sessions := f.server.Sessions()

	sessions.cleanupInactiveSessions(time.Now())
	assert.Equal(t, 1, sessions.ActiveSessionCount())

	sessions.cleanupInactiveSessions(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 0, sessions.ActiveSessionCount())
	assert.Eventually(t, func() bool { return h.ClosedCount() >= 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "expected normal closure, got %v", err)
}

func TestSessionManager_ZeroThresholdDisablesCleanup(t *testing.T) {
	f := newServerFixture(t)
	f.server.cfg.Server.SessionInactivityMins = 0
	f.dial(t)

	f.server.Sessions().cleanupInactiveSessions(time.Now().Add(24 * time.Hour))
	assert.Equal(t, 1, f.server.Sessions().ActiveSessionCount())
}

func TestSessionManager_Latest(t *testing.T) {
	f := newServerFixture(t)
	_, ok := f.server.Sessions().Latest()
	assert.False(t, ok)

	f.dial(t)
	first := f.handler(t, 0)
	time.Sleep(5 * time.Millisecond)
	f.dial(t)
	second := f.handler(t, 1)

	latest, ok := f.server.Sessions().Latest()
	require.True(t, ok)
	assert.Same(t, second, latest.Handler())
	assert.NotSame(t, first, latest.Handler())

	entries := f.server.Sessions().Entries()
	require.Len(t, entries, 2)
	assert.Same(t, first, entries[0].Handler())
}
