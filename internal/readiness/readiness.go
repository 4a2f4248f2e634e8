// Package readiness provides a value that becomes available exactly once,
// used to hand the backend client to callers that may start before it is
// constructed.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotReady is returned by Wait when the caller gives up before the handle
// is settled.
var ErrNotReady = errors.New("not ready")

type Status int

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "unavailable"
	default:
		return "pending"
	}
}

// Handle is settled once, either with a value or with an error. Later
// Resolve or Fail calls are ignored.
type Handle[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func New[T any]() *Handle[T] {
	return &Handle[T]{done: make(chan struct{})}
}

// Resolve settles the handle with v. It reports whether this call settled it.
func (h *Handle[T]) Resolve(v T) bool {
	settled := false
	h.once.Do(func() {
		h.val = v
		close(h.done)
		settled = true
	})
	return settled
}

// Fail settles the handle with err.
func (h *Handle[T]) Fail(err error) bool {
	if err == nil {
		err = errors.New("readiness: failed without cause")
	}
	settled := false
	h.once.Do(func() {
		h.err = err
		close(h.done)
		settled = true
	})
	return settled
}

// Wait blocks until the handle is settled or ctx is done.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.val, h.err
	default:
	}

	select {
	case <-h.done:
		return h.val, h.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	}
}

// Done is closed once the handle is settled.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

func (h *Handle[T]) Status() Status {
	select {
	case <-h.done:
		if h.err != nil {
			return Failed
		}
		return Ready
	default:
		return Pending
	}
}
