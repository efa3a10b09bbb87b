// Package audit captures who did what to which record. Remediation is the
// only part of the engine that mutates data, so every fix attempt emits an
// event regardless of outcome.
package audit

import (
	"context"
	"sync"
	"time"

	"preflight/pkg/requestcontext"
)

// Actions emitted by the remediation service.
const (
	ActionFixAttempted = "auto_fix.attempted"
	ActionFixSucceeded = "auto_fix.succeeded"
	ActionFixFailed    = "auto_fix.failed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity,omitempty"`
	RecordID  int64     `json:"record_id,omitempty"`
	ErrorID   int64     `json:"error_id,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Store is an append-only event sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses a
// pluggable sink so tests can swap stores easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.OperatorID(ctx)
	}
	return p.store.Append(ctx, event)
}

// InMemory keeps events in a slice, for development and tests.
type InMemory struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of everything appended so far.
func (s *InMemory) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
