package web

import (
	"sort"
	"sync"
	"time"

	config "github.com/inference-gateway/editor-assistant/config"
	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

// SessionManager tracks connected pages and closes idle ones
type SessionManager struct {
	cfg        *config.Config
	dispatcher domain.Dispatcher
	sessions   map[string]*SessionEntry
	mu         sync.RWMutex
	done       chan struct{}
	stopOnce   sync.Once
}

// SessionEntry tracks a page session, its host and its activity
type SessionEntry struct {
	session     *PageSession
	handler     PageHandler
	connectedAt time.Time
	lastActive  time.Time
	mu          sync.Mutex
}

// Session returns the page transport
func (e *SessionEntry) Session() *PageSession {
	return e.session
}

// Handler returns the host driving the page
func (e *SessionEntry) Handler() PageHandler {
	return e.handler
}

// LastActive returns when the page last sent a message
func (e *SessionEntry) LastActive() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastActive
}

// NewSessionManager starts a manager. Handlers are closed on dispatcher.
func NewSessionManager(cfg *config.Config, dispatcher domain.Dispatcher) *SessionManager {
	sm := &SessionManager{
		cfg:        cfg,
		dispatcher: dispatcher,
		sessions:   make(map[string]*SessionEntry),
		done:       make(chan struct{}),
	}

	go sm.cleanupLoop()

	return sm
}

// RegisterSession registers a connected page and its host
func (sm *SessionManager) RegisterSession(session *PageSession, handler PageHandler) *SessionEntry {
	now := time.Now()
	entry := &SessionEntry{
		session:     session,
		handler:     handler,
		connectedAt: now,
		lastActive:  now,
	}

	id := session.ID()
	session.activity = func() { sm.UpdateActivity(id) }

	sm.mu.Lock()
	sm.sessions[id] = entry
	total := len(sm.sessions)
	sm.mu.Unlock()

	logger.Info("Session registered", "id", id, "total", total)
	return entry
}

// UpdateActivity updates the last activity time for a session
func (sm *SessionManager) UpdateActivity(sessionID string) {
	sm.mu.RLock()
	entry, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if exists {
		entry.mu.Lock()
		entry.lastActive = time.Now()
		entry.mu.Unlock()
	}
}

// RemoveSession removes a session, closes its host and its connection
func (sm *SessionManager) RemoveSession(sessionID string) {
	sm.mu.Lock()
	entry, exists := sm.sessions[sessionID]
	delete(sm.sessions, sessionID)
	total := len(sm.sessions)
	sm.mu.Unlock()

	if !exists {
		return
	}
	sm.stop(entry)
	logger.Info("Session removed", "id", sessionID, "total", total)
}

func (sm *SessionManager) stop(entry *SessionEntry) {
	entry.session.Close()
	handler := entry.handler
	sm.dispatcher.Post(handler.Close)
}

// Get returns the entry for sessionID
func (sm *SessionManager) Get(sessionID string) (*SessionEntry, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	entry, ok := sm.sessions[sessionID]
	return entry, ok
}

// Latest returns the most recently connected session
func (sm *SessionManager) Latest() (*SessionEntry, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var latest *SessionEntry
	for _, entry := range sm.sessions {
		if latest == nil || entry.connectedAt.After(latest.connectedAt) {
			latest = entry
		}
	}
	return latest, latest != nil
}

// Entries returns the registered sessions ordered by connection time
func (sm *SessionManager) Entries() []*SessionEntry {
	sm.mu.RLock()
	entries := make([]*SessionEntry, 0, len(sm.sessions))
	for _, entry := range sm.sessions {
		entries = append(entries, entry)
	}
	sm.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].connectedAt.Before(entries[j].connectedAt)
	})
	return entries
}

// cleanupLoop periodically cleans up inactive sessions
func (sm *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-sm.done:
			return
		case <-ticker.C:
			sm.cleanupInactiveSessions(time.Now())
		}
	}
}

func (sm *SessionManager) inactivityThreshold() time.Duration {
	return time.Duration(sm.cfg.Server.SessionInactivityMins) * time.Minute
}

// cleanupInactiveSessions removes sessions idle for longer than the
// configured threshold. A zero threshold disables cleanup.
func (sm *SessionManager) cleanupInactiveSessions(now time.Time) {
	threshold := sm.inactivityThreshold()
	if threshold <= 0 {
		return
	}

	sm.mu.Lock()
	var inactive []*SessionEntry
	for sessionID, entry := range sm.sessions {
		entry.mu.Lock()
		idle := now.Sub(entry.lastActive)
		entry.mu.Unlock()

		if idle > threshold {
			logger.Info("Cleaning up inactive session", "id", sessionID, "inactive_duration", idle, "threshold", threshold)
			inactive = append(inactive, entry)
			delete(sm.sessions, sessionID)
		}
	}
	remaining := len(sm.sessions)
	sm.mu.Unlock()

	for _, entry := range inactive {
		sm.stop(entry)
	}

	if len(inactive) > 0 {
		logger.Info("Inactive sessions cleaned up", "count", len(inactive), "remaining", remaining, "threshold", threshold)
	}
}

// ActiveSessionCount returns the number of currently active sessions
func (sm *SessionManager) ActiveSessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Shutdown stops all sessions and the cleanup goroutine
func (sm *SessionManager) Shutdown() {
	sm.stopOnce.Do(func() { close(sm.done) })

	sm.mu.Lock()
	entries := sm.sessions
	sm.sessions = make(map[string]*SessionEntry)
	sm.mu.Unlock()

	logger.Info("Shutting down session manager", "active_sessions", len(entries))

	for sessionID, entry := range entries {
		logger.Debug("Stopping session", "id", sessionID)
		sm.stop(entry)
	}
}
