package services

import (
	"context"
	"sync"

	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

// UIDispatcher serializes work onto a single goroutine. Everything that
// touches the browser host runs there.
type UIDispatcher struct {
	tasks  chan func()
	done   chan struct{}
	closed sync.Once
}

// NewUIDispatcher creates a dispatcher with room for buffer queued tasks
func NewUIDispatcher(buffer int) *UIDispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &UIDispatcher{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post queues fn. Tasks posted after Close are dropped.
func (d *UIDispatcher) Post(fn func()) {
	select {
	case <-d.done:
		logger.Debug("Dropping task posted to closed dispatcher")
		return
	default:
	}

	select {
	case d.tasks <- fn:
	case <-d.done:
	}
}

// Run executes tasks until ctx ends or Close is called
func (d *UIDispatcher) Run(ctx context.Context) {
	for {
		select {
		case fn := <-d.tasks:
			d.invoke(fn)
		case <-ctx.Done():
			return
		case <-d.done:
			return
		}
	}
}

func (d *UIDispatcher) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("UI task panicked", "panic", r)
		}
	}()
	fn()
}

// Drain runs the tasks still queued on the caller's goroutine. Call it
// only after Run has returned.
func (d *UIDispatcher) Drain() int {
	count := 0
	for {
		select {
		case fn := <-d.tasks:
			d.invoke(fn)
			count++
		default:
			return count
		}
	}
}

// Close stops Run
func (d *UIDispatcher) Close() {
	d.closed.Do(func() { close(d.done) })
}

// InlineDispatcher runs posted work immediately on the caller's goroutine
type InlineDispatcher struct{}

// Post runs fn
func (InlineDispatcher) Post(fn func()) {
	fn()
}
