package web

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	websocket "github.com/gorilla/websocket"
	gjson "github.com/tidwall/gjson"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const (
	writeWait         = 10 * time.Second
	navigationTimeout = 5 * time.Second
)

// Page message types
const (
	msgLoadURL            = "load_url"
	msgExecuteScript      = "execute_script"
	msgBind               = "bind"
	msgUnbind             = "unbind"
	msgNavigationDecision = "navigation_decision"
	msgCallResult         = "call_result"

	msgBeforeNavigation = "before_navigation"
	msgBeforePopup      = "before_popup"
	msgConsole          = "console"
	msgLoadStarted      = "load_started"
	msgLoadCompleted    = "load_completed"
	msgLoadError        = "load_error"
	msgCall             = "call"
	msgClosed           = "closed"
)

// PageEvents receives what the page reports. Calls arrive on the
// dispatcher goroutine.
type PageEvents interface {
	OnBeforeNavigation(url string, isRedirect bool) bool
	OnBeforePopup(url string) bool
	OnConsoleMessage(severity domain.ConsoleSeverity, message, source string, line int)
	OnLoadStarted()
	OnLoadCompleted()
	OnLoadError()
	OnClosed()

	// CanCallNative reports whether the page may call the named bound
	// object. It is called from the session's own goroutines.
	CanCallNative(object string) bool
}

type outboundMessage struct {
	Type      string          `json:"type"`
	ID        int64           `json:"id,omitempty"`
	URL       string          `json:"url,omitempty"`
	Script    string          `json:"script,omitempty"`
	Name      string          `json:"name,omitempty"`
	Methods   []string        `json:"methods,omitempty"`
	Permanent bool            `json:"permanent,omitempty"`
	Block     *bool           `json:"block,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// PageSession is a connected assistant page. It implements domain.WebView
// over a websocket and routes the page's events to PageEvents.
type PageSession struct {
	id         string
	conn       *websocket.Conn
	dispatcher domain.Dispatcher

	writeMu sync.Mutex

	eventsMu sync.RWMutex
	events   PageEvents

	bindMu   sync.RWMutex
	bindings map[string]domain.NativeObject

	activity func()
	closed   chan struct{}
	once     sync.Once
}

// NewPageSession wraps an upgraded connection
func NewPageSession(id string, conn *websocket.Conn, dispatcher domain.Dispatcher) *PageSession {
	return &PageSession{
		id:         id,
		conn:       conn,
		dispatcher: dispatcher,
		bindings:   make(map[string]domain.NativeObject),
		activity:   func() {},
		closed:     make(chan struct{}),
	}
}

// ID returns the session id
func (s *PageSession) ID() string {
	return s.id
}

// SetEvents sets the receiver of page events
func (s *PageSession) SetEvents(events PageEvents) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	s.events = events
}

func (s *PageSession) currentEvents() PageEvents {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	return s.events
}

func (s *PageSession) send(msg outboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", msg.Type, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	select {
	case <-s.closed:
		return domain.ErrPageNotConnected
	default:
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// LoadURL navigates the page
func (s *PageSession) LoadURL(url string) error {
	return s.send(outboundMessage{Type: msgLoadURL, URL: url})
}

// ExecuteScript runs script in the page without waiting for it
func (s *PageSession) ExecuteScript(script string) {
	if err := s.send(outboundMessage{Type: msgExecuteScript, Script: script}); err != nil {
		logger.Warn("Failed to send script to page", "session_id", s.id, "error", err)
	}
}

// BindObject exposes object's methods to the page under name. Names are
// lowercased the way the page sees them.
func (s *PageSession) BindObject(name string, object domain.NativeObject, permanent bool) error {
	key := strings.ToLower(name)
	methods := make([]string, 0)
	for method := range object.NativeMethods() {
		methods = append(methods, strings.ToLower(method))
	}
	sort.Strings(methods)

	s.bindMu.Lock()
	s.bindings[key] = object
	s.bindMu.Unlock()

	return s.send(outboundMessage{Type: msgBind, Name: key, Methods: methods, Permanent: permanent})
}

// UnbindObject removes a binding
func (s *PageSession) UnbindObject(name string, _ domain.NativeObject, permanent bool) error {
	key := strings.ToLower(name)

	s.bindMu.Lock()
	_, bound := s.bindings[key]
	delete(s.bindings, key)
	s.bindMu.Unlock()

	if !bound {
		return nil
	}
	err := s.send(outboundMessage{Type: msgUnbind, Name: key, Permanent: permanent})
	if err == domain.ErrPageNotConnected {
		return nil
	}
	return err
}

// Bound returns the names of the bound objects
func (s *PageSession) Bound() []string {
	s.bindMu.RLock()
	defer s.bindMu.RUnlock()
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run reads page messages until the connection ends or ctx is done.
// OnClosed is delivered before Run returns.
func (s *PageSession) Run(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.closed:
		}
	}()
	defer s.post(func(events PageEvents) { events.OnClosed() })
	defer s.Close()

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			select {
			case <-s.closed:
				return nil
			default:
			}
			return fmt.Errorf("read page message: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}
		s.activity()

		if done := s.handleMessage(data); done {
			return nil
		}
	}
}

// handleMessage routes one page message. It reports whether the page closed.
func (s *PageSession) handleMessage(data []byte) bool {
	if !gjson.ValidBytes(data) {
		logger.Warn("Ignoring malformed page message", "session_id", s.id)
		return false
	}
	msg := gjson.ParseBytes(data)

	switch kind := msg.Get("type").String(); kind {
	case msgBeforeNavigation:
		s.handleNavigation(msg)
	case msgBeforePopup:
		url := msg.Get("url").String()
		s.post(func(events PageEvents) { events.OnBeforePopup(url) })
	case msgConsole:
		severity := domain.ParseConsoleSeverity(msg.Get("severity").String())
		message, source, line := msg.Get("message").String(), msg.Get("source").String(), int(msg.Get("line").Int())
		s.post(func(events PageEvents) { events.OnConsoleMessage(severity, message, source, line) })
	case msgLoadStarted:
		s.post(func(events PageEvents) { events.OnLoadStarted() })
	case msgLoadCompleted:
		s.post(func(events PageEvents) { events.OnLoadCompleted() })
	case msgLoadError:
		s.post(func(events PageEvents) { events.OnLoadError() })
	case msgCall:
		go s.handleCall(msg)
	case msgClosed:
		return true
	default:
		logger.Debug("Ignoring unknown page message", "session_id", s.id, "type", kind)
	}
	return false
}

func (s *PageSession) post(fn func(events PageEvents)) {
	events := s.currentEvents()
	if events == nil {
		return
	}
	s.dispatcher.Post(func() { fn(events) })
}

// handleNavigation asks the events receiver whether to block and replies.
// Navigation is blocked when no decision arrives in time.
func (s *PageSession) handleNavigation(msg gjson.Result) {
	id := msg.Get("id").Int()
	url := msg.Get("url").String()
	redirect := msg.Get("redirect").Bool()

	decision := make(chan bool, 1)
	if events := s.currentEvents(); events != nil {
		s.dispatcher.Post(func() { decision <- events.OnBeforeNavigation(url, redirect) })
	} else {
		decision <- true
	}

	var block bool
	select {
	case block = <-decision:
	case <-time.After(navigationTimeout):
		logger.Warn("Navigation decision timed out", "session_id", s.id, "url", url)
		block = true
	case <-s.closed:
		return
	}

	if err := s.send(outboundMessage{Type: msgNavigationDecision, ID: id, Block: &block}); err != nil {
		logger.Warn("Failed to send navigation decision", "session_id", s.id, "error", err)
	}
}

// handleCall invokes a bound native method and replies with its result
func (s *PageSession) handleCall(msg gjson.Result) {
	id := msg.Get("id").Int()
	objectName := strings.ToLower(msg.Get("object").String())
	methodName := strings.ToLower(msg.Get("method").String())

	var args []json.RawMessage
	for _, arg := range msg.Get("args").Array() {
		args = append(args, json.RawMessage(arg.Raw))
	}

	reply := outboundMessage{Type: msgCallResult, ID: id}
	result, err := s.invoke(objectName, methodName, args)
	if err != nil {
		logger.Warn("Native call failed", "session_id", s.id, "object", objectName, "method", methodName, "error", err)
		reply.Error = err.Error()
	} else {
		reply.Result = result
	}

	if id == 0 {
		return
	}
	if err := s.send(reply); err != nil {
		logger.Debug("Failed to send call result", "session_id", s.id, "error", err)
	}
}

func (s *PageSession) invoke(objectName, methodName string, args []json.RawMessage) (json.RawMessage, error) {
	events := s.currentEvents()
	if events == nil || !events.CanCallNative(objectName) {
		return nil, &domain.NativeCallError{Object: objectName, Method: methodName, Err: domain.ErrNativeCallRefused}
	}

	s.bindMu.RLock()
	object, ok := s.bindings[objectName]
	s.bindMu.RUnlock()
	if !ok {
		return nil, &domain.NativeCallError{Object: objectName, Method: methodName, Err: domain.ErrUnknownNativeObject}
	}

	for name, method := range object.NativeMethods() {
		if strings.ToLower(name) == methodName {
			result, err := method(args)
			if err != nil {
				return nil, &domain.NativeCallError{Object: objectName, Method: methodName, Err: err}
			}
			return result, nil
		}
	}
	return nil, &domain.NativeCallError{Object: objectName, Method: methodName, Err: domain.ErrUnknownNativeMethod}
}

// Close ends the session. Safe to call more than once.
func (s *PageSession) Close() {
	s.once.Do(func() {
		s.writeMu.Lock()
		close(s.closed)
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		s.writeMu.Unlock()

		if err := s.conn.Close(); err != nil {
			logger.Debug("Failed to close page connection", "session_id", s.id, "error", err)
		}
	})
}

// Done is closed when the session ends
func (s *PageSession) Done() <-chan struct{} {
	return s.closed
}
