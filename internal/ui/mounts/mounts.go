// Package mounts tracks the live layout shells and routes viewport and
// control events to them.
//
// Each rendered shell opens one long-lived stream; the stream subscribes
// here when it starts and releases the subscription when it ends. Event
// endpoints never mutate layout state themselves: they deliver events to
// the subscription and the stream goroutine applies them.
package mounts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/leapstack-labs/adminshell/internal/layout"
)

// eventBuffer bounds how many events may queue for a mount before Deliver blocks.
const eventBuffer = 16

var (
	// ErrUnknownMount is returned when delivering to a mount that is not subscribed.
	ErrUnknownMount = errors.New("unknown mount")
	// ErrDuplicateMount is returned when a mount id is already subscribed.
	ErrDuplicateMount = errors.New("mount already subscribed")
	// ErrInvalidMount is returned for an empty mount id.
	ErrInvalidMount = errors.New("invalid mount id")
)

// Registry holds one subscription per live mount.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		subs: make(map[string]*Subscription),
	}
}

// Subscribe registers the viewport listener for a mount.
// The caller must call Close on the returned subscription when the mount ends.
func (r *Registry) Subscribe(id string) (*Subscription, error) {
	if id == "" {
		return nil, ErrInvalidMount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateMount, id)
	}
	return r.add(id), nil
}

// Takeover registers the listener for a mount that may already have one,
// as when a page reopens its stream before the old connection is noticed
// gone. The previous subscription is closed and its Done channel fires.
func (r *Registry) Takeover(id string) (*Subscription, error) {
	if id == "" {
		return nil, ErrInvalidMount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.subs[id]; ok {
		old.once.Do(func() { close(old.done) })
		delete(r.subs, id)
	}
	return r.add(id), nil
}

// add must be called with r.mu held.
func (r *Registry) add(id string) *Subscription {
	sub := &Subscription{
		id:       id,
		events:   make(chan layout.Event, eventBuffer),
		done:     make(chan struct{}),
		registry: r,
	}
	r.subs[id] = sub
	return sub
}

// Deliver hands an event to the mount's owner. It blocks while the mount's
// queue is full, and gives up when ctx is done or the mount goes away.
// A nil error means the event was queued on a subscription that was still open.
func (r *Registry) Deliver(ctx context.Context, id string, ev layout.Event) error {
	r.mu.RLock()
	sub, ok := r.subs[id]
	if !ok {
		r.mu.RUnlock()
		return fmt.Errorf("%w: %s", ErrUnknownMount, id)
	}
	queued, err := sub.tryEnqueue(ev)
	r.mu.RUnlock()
	if queued || err != nil {
		return err
	}

	return sub.enqueue(ctx, ev)
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Subscription is a mount's registration in the Registry.
type Subscription struct {
	id       string
	events   chan layout.Event
	done     chan struct{}
	once     sync.Once
	registry *Registry
}

// ID returns the mount id.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the channel the mount's events arrive on.
// It is never closed; select on it together with a context.
func (s *Subscription) Events() <-chan layout.Event {
	return s.events
}

// Done is closed once the subscription is closed or taken over.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close deregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	r := s.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	s.once.Do(func() { close(s.done) })
	if r.subs[s.id] == s {
		delete(r.subs, s.id)
	}
}

// tryEnqueue queues ev without blocking. Callers hold the registry read
// lock, so Close cannot run between the done check and the send.
func (s *Subscription) tryEnqueue(ev layout.Event) (bool, error) {
	select {
	case <-s.done:
		return false, fmt.Errorf("%w: %s", ErrUnknownMount, s.id)
	default:
	}

	select {
	case s.events <- ev:
		return true, nil
	default:
		return false, nil
	}
}

// enqueue waits for room in a full queue. Once done is closed the owner no
// longer reads, so the queue stays full and the done case is the only one
// that can fire.
func (s *Subscription) enqueue(ctx context.Context, ev layout.Event) error {
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return fmt.Errorf("%w: %s", ErrUnknownMount, s.id)
	case <-ctx.Done():
		return ctx.Err()
	}
}
