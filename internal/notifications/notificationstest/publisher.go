// Package notificationstest provides an event publisher that records events for tests
package notificationstest

import (
	"context"
	"sync"

	"padang/internal/notifications"
)

type RecordingPublisher struct {
	mu     sync.Mutex
	events []*notifications.BookingEvent
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, event *notifications.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Types returns the types of the recorded events in publish order
func (p *RecordingPublisher) Types() []notifications.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notifications.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *RecordingPublisher) Events() []*notifications.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*notifications.BookingEvent(nil), p.events...)
}

var _ notifications.EventPublisher = (*RecordingPublisher)(nil)
