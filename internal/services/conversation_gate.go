package services

import (
	"sync"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
)

// ConversationGate holds conversation operations until the agent
// environment is configured and no conversation is being created.
type ConversationGate struct {
	*ReadyGate

	mu                    sync.RWMutex
	environmentConfigured bool
	creatingConversation  bool
	external              ReadinessFunc
}

// NewConversationGate creates a gate. external, when set, is consulted
// first and wins whenever it does not answer Execute.
func NewConversationGate(external ReadinessFunc) *ConversationGate {
	g := &ConversationGate{external: external}
	g.ReadyGate = NewReadyGate(g.readinessState)
	return g
}

func (g *ConversationGate) readinessState() domain.ReadinessState {
	if g.external != nil {
		if state := g.external(); state != domain.ReadinessExecute {
			return state
		}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.environmentConfigured || g.creatingConversation {
		return domain.ReadinessWait
	}
	return domain.ReadinessExecute
}

// NotifyEnvironmentConfigured marks the agent environment ready and pumps the queue.
func (g *ConversationGate) NotifyEnvironmentConfigured() {
	g.mu.Lock()
	g.environmentConfigured = true
	g.mu.Unlock()

	g.Pump()
}

// SetCreatingConversation records whether a conversation is being created
// and returns the previous value. Starting creation drops queued work;
// finishing it pumps the queue.
func (g *ConversationGate) SetCreatingConversation(creating bool) bool {
	g.mu.Lock()
	previous := g.creatingConversation
	g.creatingConversation = creating
	g.mu.Unlock()

	switch {
	case !previous && creating:
		g.Reset()
	case previous && !creating:
		g.Pump()
	}
	return previous
}

// IsEnvironmentConfigured reports whether the agent environment has been configured
func (g *ConversationGate) IsEnvironmentConfigured() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.environmentConfigured
}

// IsCreatingConversation reports whether a conversation is being created
func (g *ConversationGate) IsCreatingConversation() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.creatingConversation
}

// Submit queues op behind the current conversation. Work queued against a
// conversation that is being replaced is dropped first.
func (g *ConversationGate) Submit(op DeferredOperation) {
	if g.IsCreatingConversation() {
		g.Reset()
	}
	g.ReadyGate.Submit(op)
}
