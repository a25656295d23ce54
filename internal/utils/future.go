package utils

import (
	"context"
	"sync"
)

// Promise is the write side of a single-assignment value.
type Promise[T any] struct {
	state *futureState[T]
}

// Future is the read side of a Promise.
type Future[T any] struct {
	state *futureState[T]
}

type futureState[T any] struct {
	mu            sync.Mutex
	done          chan struct{}
	completed     bool
	value         T
	err           error
	continuations []func(T, error)
}

// NewPromise creates an unfulfilled promise
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{state: &futureState[T]{done: make(chan struct{})}}
}

// Future returns the read side of the promise
func (p *Promise[T]) Future() *Future[T] {
	return &Future[T]{state: p.state}
}

// Resolve fulfils the promise with a value. Returns false if it was already fulfilled.
func (p *Promise[T]) Resolve(value T) bool {
	return p.state.complete(value, nil)
}

// Reject fulfils the promise with an error. Returns false if it was already fulfilled.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.state.complete(zero, err)
}

func (s *futureState[T]) complete(value T, err error) bool {
	s.mu.Lock()
	if s.completed {
		s.mu.Unlock()
		return false
	}
	s.completed = true
	s.value = value
	s.err = err
	continuations := s.continuations
	s.continuations = nil
	close(s.done)
	s.mu.Unlock()

	for _, fn := range continuations {
		fn(value, err)
	}
	return true
}

// ResolvedFuture returns an already fulfilled future
func ResolvedFuture[T any](value T) *Future[T] {
	p := NewPromise[T]()
	p.Resolve(value)
	return p.Future()
}

// RejectedFuture returns a future already fulfilled with err
func RejectedFuture[T any](err error) *Future[T] {
	p := NewPromise[T]()
	p.Reject(err)
	return p.Future()
}

// Then registers fn to run once the future completes. If it already has,
// fn runs immediately on the calling goroutine; otherwise it runs on the
// goroutine that fulfils the promise.
func (f *Future[T]) Then(fn func(T, error)) {
	s := f.state
	s.mu.Lock()
	if !s.completed {
		s.continuations = append(s.continuations, fn)
		s.mu.Unlock()
		return
	}
	value, err := s.value, s.err
	s.mu.Unlock()
	fn(value, err)
}

// IsReady reports whether the future has completed
func (f *Future[T]) IsReady() bool {
	select {
	case <-f.state.done:
		return true
	default:
		return false
	}
}

// Done is closed once the future completes
func (f *Future[T]) Done() <-chan struct{} {
	return f.state.done
}

// Get blocks until the future completes or ctx ends
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.state.done:
		return f.state.value, f.state.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
