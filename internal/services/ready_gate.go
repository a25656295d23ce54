package services

import (
	"sync"
	"unsafe"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
)

// DeferredOperation is a unit of work held by a ReadyGate until it may run
type DeferredOperation func()

// ReadinessFunc reports whether a gate may run its queued work
type ReadinessFunc func() domain.ReadinessState

// ReadyGate queues operations until its readiness predicate allows them to run.
type ReadyGate struct {
	mu        sync.RWMutex
	queue     []DeferredOperation
	readiness ReadinessFunc
}

// NewReadyGate creates a gate driven by readiness. A nil predicate always waits.
func NewReadyGate(readiness ReadinessFunc) *ReadyGate {
	if readiness == nil {
		readiness = func() domain.ReadinessState { return domain.ReadinessWait }
	}
	return &ReadyGate{readiness: readiness}
}

// Submit runs op now if the gate is ready, otherwise queues it.
func (g *ReadyGate) Submit(op DeferredOperation) {
	if op == nil {
		return
	}

	if g.readiness() == domain.ReadinessExecute {
		op()
		return
	}

	g.mu.Lock()
	g.queue = append(g.queue, op)
	g.mu.Unlock()
}

// Pump re-evaluates readiness. Execute drains the queue in submission
// order, Reject discards it, Wait leaves it alone.
func (g *ReadyGate) Pump() {
	switch g.readiness() {
	case domain.ReadinessExecute:
		g.mu.Lock()
		drained := g.queue
		g.queue = nil
		g.mu.Unlock()

		for _, op := range drained {
			op()
		}
	case domain.ReadinessReject:
		g.Reset()
	}
}

// Reset drops all queued operations without running them.
func (g *ReadyGate) Reset() {
	g.mu.Lock()
	g.queue = nil
	g.mu.Unlock()
}

// PendingCount returns the number of queued operations
func (g *ReadyGate) PendingCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.queue)
}

// HasPending reports whether any operation is queued
func (g *ReadyGate) HasPending() bool {
	return g.PendingCount() > 0
}

// MoveFrom takes over other's queue, leaving other empty. Locks are taken
// in address order so concurrent moves in opposite directions cannot deadlock.
func (g *ReadyGate) MoveFrom(other *ReadyGate) {
	if other == nil || other == g {
		return
	}

	first, second := g, other
	if uintptr(unsafe.Pointer(second)) < uintptr(unsafe.Pointer(first)) {
		first, second = second, first
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	g.queue = other.queue
	other.queue = nil
}
