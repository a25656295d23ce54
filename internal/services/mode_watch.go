package services

import (
	"container/list"
	"sync"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

// ModeVariableName is the configuration key selecting the assistant's
// UEFN operating mode.
const ModeVariableName = "ai.assistant.uefn"

// ModeWatch follows a boolean configuration value and tells subscribers
// when it changes.
type ModeWatch struct {
	source domain.ConfigSource
	name   string
	detach func()

	mu          sync.Mutex
	subscribers *list.List
	previous    bool
}

// ModeSubscription is a handle returned by ModeWatch.Subscribe
type ModeSubscription struct {
	watch   *ModeWatch
	element *list.Element
	once    sync.Once
}

// NewModeWatch starts watching name on source. The caller owns the watch
// and must Close it on shutdown.
func NewModeWatch(source domain.ConfigSource, name string) *ModeWatch {
	if name == "" {
		name = ModeVariableName
	}
	w := &ModeWatch{
		source:      source,
		name:        name,
		subscribers: list.New(),
		previous:    source.GetBool(name),
	}
	w.detach = source.OnChange(w.notify)
	return w
}

// Name returns the watched configuration key
func (w *ModeWatch) Name() string {
	return w.name
}

// Enabled returns the current value
func (w *ModeWatch) Enabled() bool {
	return w.source.GetBool(w.name)
}

// Subscribe registers fn. It is called right away with the current value
// and again after every change.
func (w *ModeWatch) Subscribe(fn func(enabled bool)) *ModeSubscription {
	enabled, sub := w.Follow(fn)
	fn(enabled)
	return sub
}

// Follow registers fn for changes only and returns the value current at
// registration. fn may run on any goroutine, including before Follow
// returns.
func (w *ModeWatch) Follow(fn func(enabled bool)) (bool, *ModeSubscription) {
	w.mu.Lock()
	element := w.subscribers.PushBack(fn)
	w.mu.Unlock()

	return w.Enabled(), &ModeSubscription{watch: w, element: element}
}

// SubscriberCount returns the number of live subscriptions
func (w *ModeWatch) SubscriberCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.subscribers.Len()
}

func (w *ModeWatch) notify() {
	current := w.source.GetBool(w.name)

	w.mu.Lock()
	if current == w.previous {
		w.mu.Unlock()
		return
	}
	w.previous = current
	callbacks := make([]func(bool), 0, w.subscribers.Len())
	for e := w.subscribers.Front(); e != nil; e = e.Next() {
		callbacks = append(callbacks, e.Value.(func(bool)))
	}
	w.mu.Unlock()

	logger.Debug("Assistant mode changed", "variable", w.name, "enabled", current)
	for _, callback := range callbacks {
		callback(current)
	}
}

// Close detaches the watch from its source
func (w *ModeWatch) Close() {
	if w.detach != nil {
		w.detach()
	}
}

// Close removes the subscription. Safe to call more than once.
func (s *ModeSubscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.watch.mu.Lock()
		s.watch.subscribers.Remove(s.element)
		s.watch.mu.Unlock()
	})
}
