package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	uuid "github.com/google/uuid"
	websocket "github.com/gorilla/websocket"

	config "github.com/inference-gateway/editor-assistant/config"
	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	inspector "github.com/inference-gateway/editor-assistant/internal/inspector"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const (
	dispatchTimeout  = 5 * time.Second
	maxSnapshotBytes = 4 << 20
)

// PageHandler drives one connected page. All methods run on the dispatcher.
type PageHandler interface {
	PageEvents
	inspector.ConversationSink

	Open() error
	Close()
	LoadState() domain.LoadState
	IsAssistantPageLoaded() bool
	PendingMessages() int
}

// HandlerFactory builds the host for a newly connected page
type HandlerFactory func(view domain.WebView) (PageHandler, error)

// SessionStatus is the /api/status view of one page
type SessionStatus struct {
	ID                  string    `json:"id"`
	LoadState           string    `json:"load_state"`
	AssistantPageLoaded bool      `json:"assistant_page_loaded"`
	PendingMessages     int       `json:"pending_messages"`
	Bound               []string  `json:"bound"`
	LastActive          time.Time `json:"last_active"`
}

// InspectResponse is the /api/inspect reply
type InspectResponse struct {
	SessionID string `json:"session_id"`
	Visible   string `json:"visible"`
	Hidden    string `json:"hidden"`
}

// PageServer accepts assistant page connections over websocket
type PageServer struct {
	cfg             *config.Config
	allowList       *config.URLAllowList
	dispatcher      domain.Dispatcher
	dispatchTimeout time.Duration
	factory         HandlerFactory
	server          *http.Server
	upgrader        websocket.Upgrader
	sessionManager  *SessionManager
}

// NewPageServer creates a server whose hosts run on dispatcher. Browser
// pages may only connect from an origin the assistant allow-list admits.
func NewPageServer(cfg *config.Config, assistant *config.AssistantConfig, dispatcher domain.Dispatcher, factory HandlerFactory) *PageServer {
	if assistant == nil {
		assistant = config.DefaultAssistantConfig()
	}
	s := &PageServer{
		cfg:             cfg,
		allowList:       assistant.AllowList(),
		dispatcher:      dispatcher,
		dispatchTimeout: dispatchTimeout,
		factory:         factory,
		sessionManager:  NewSessionManager(cfg, dispatcher),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// checkOrigin admits clients that send no Origin (not a browser) and
// browser pages served from an allowed origin.
func (s *PageServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if s.allowList.AllowsOrigin(origin) {
		return true
	}
	logger.Warn("Rejected page connection from disallowed origin", "origin", origin, "remote", r.RemoteAddr)
	return false
}

// Sessions returns the session manager
func (s *PageServer) Sessions() *SessionManager {
	return s.sessionManager
}

// Handler returns the HTTP routes
func (s *PageServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Addr returns the configured listen address
func (s *PageServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
}

// Start serves until ctx is done, then closes every session
func (s *PageServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Page server started", "url", fmt.Sprintf("http://%s", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.sessionManager.Shutdown()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down page server...", "active_sessions", s.sessionManager.ActiveSessionCount())
	s.sessionManager.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		return err
	}

	logger.Info("Page server stopped")
	return nil
}

// Shutdown closes every session without stopping the listener
func (s *PageServer) Shutdown() {
	s.sessionManager.Shutdown()
}

func (s *PageServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	sessionID := uuid.New().String()
	logger.Info("Page connected", "remote", r.RemoteAddr, "session_id", sessionID)

	session := NewPageSession(sessionID, conn, s.dispatcher)
	handler, err := s.factory(session)
	if err != nil {
		logger.Error("Failed to create page host", "session_id", sessionID, "error", err)
		session.Close()
		return
	}
	session.SetEvents(handler)

	s.sessionManager.RegisterSession(session, handler)
	defer s.sessionManager.RemoveSession(sessionID)

	s.dispatcher.Post(func() {
		if err := handler.Open(); err != nil {
			logger.Error("Failed to open assistant page", "session_id", sessionID, "error", err)
		}
	})

	if err := session.Run(r.Context()); err != nil {
		logger.Warn("Page connection error", "session_id", sessionID, "error", err)
	}

	logger.Info("Page disconnected", "session_id", sessionID)
}

const (
	taskPending int32 = iota
	taskStarted
	taskAbandoned
)

// onDispatcher runs fn on the dispatcher and waits for it. When the wait
// gives up before fn has started, fn never runs; once started it is always
// waited for.
func (s *PageServer) onDispatcher(ctx context.Context, fn func()) error {
	var state atomic.Int32
	done := make(chan struct{})
	s.dispatcher.Post(func() {
		defer close(done)
		if !state.CompareAndSwap(taskPending, taskStarted) {
			return
		}
		fn()
	})

	timer := time.NewTimer(s.dispatchTimeout)
	defer timer.Stop()

	var err error
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		err = ctx.Err()
	case <-timer.C:
		err = fmt.Errorf("dispatcher did not respond within %s", s.dispatchTimeout)
	}

	if state.CompareAndSwap(taskPending, taskAbandoned) {
		return err
	}
	<-done
	return nil
}

func (s *PageServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := s.sessionManager.Entries()
	statuses := make([]SessionStatus, len(entries))
	err := s.onDispatcher(r.Context(), func() {
		for i, entry := range entries {
			statuses[i] = SessionStatus{
				ID:                  entry.session.ID(),
				LoadState:           entry.handler.LoadState().String(),
				AssistantPageLoaded: entry.handler.IsAssistantPageLoaded(),
				PendingMessages:     entry.handler.PendingMessages(),
				Bound:               entry.session.Bound(),
				LastActive:          entry.LastActive(),
			}
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(statuses),
		"sessions": statuses,
	})
}

// handleInspect describes the widget under the cursor of a posted UI
// snapshot and submits the query to the most recently connected page.
func (s *PageServer) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		http.Error(w, "failed to read snapshot", http.StatusBadRequest)
		return
	}

	snapshot, err := inspector.ParseSnapshot(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, ok := s.sessionManager.Latest()
	if !ok {
		http.Error(w, domain.ErrPageNotConnected.Error(), http.StatusConflict)
		return
	}

	var query inspector.Query
	var queryErr error
	err = s.onDispatcher(r.Context(), func() {
		query, queryErr = inspector.NewInspector(snapshot, entry.handler).QueryWidgetUnderCursor()
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if queryErr != nil {
		status := http.StatusInternalServerError
		if errors.Is(queryErr, domain.ErrNothingToDescribe) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, queryErr.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		SessionID: entry.session.ID(),
		Visible:   query.Visible(),
		Hidden:    query.Hidden(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write JSON response", "error", err)
	}
}
