package event

import (
	"sync"
	"sync/atomic"
)

// GameEvent is one published room event
type GameEvent struct {
	Type    EventType
	Payload any
	// Frame is the room tick the event was raised on
	Frame int64
}

// Handler receives events synchronously on the publishing goroutine
type Handler func(GameEvent)

// Token identifies a subscription for Unsubscribe
type Token uint64

type subscription struct {
	token   Token
	types   map[EventType]struct{}
	handler Handler
}

// Bus is a synchronous publish/subscribe hub
//
// Architecture:
//   - Publish dispatches before returning, so listeners never lag a tick
//   - Handlers run outside the lock and may (un)subscribe or publish re-entrantly
//   - Delivery order among handlers is registration order, callers must not rely on it
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
	next Token

	frame atomic.Int64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for the listed types, all types when none are given
func (b *Bus) Subscribe(h Handler, types ...EventType) Token {
	var filter map[EventType]struct{}
	if len(types) > 0 {
		filter = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			filter[t] = struct{}{}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.subs = append(b.subs, subscription{token: b.next, types: filter, handler: h})
	return b.next
}

// Unsubscribe removes a subscription, false when the token is unknown
func (b *Bus) Unsubscribe(token Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.token == token {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers ev to every matching handler subscribed at call time
func (b *Bus) Publish(ev GameEvent) {
	b.mu.RLock()
	targets := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.types == nil {
			targets = append(targets, s.handler)
			continue
		}
		if _, ok := s.types[ev.Type]; ok {
			targets = append(targets, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range targets {
		h(ev)
	}
}

// SetFrame sets the tick stamped on events raised through Emit
func (b *Bus) SetFrame(frame int64) {
	b.frame.Store(frame)
}

// Frame returns the current stamp
func (b *Bus) Frame() int64 {
	return b.frame.Load()
}

// Emit publishes payload stamped with the current frame
func (b *Bus) Emit(et EventType, payload any) {
	b.Publish(GameEvent{Type: et, Payload: payload, Frame: b.frame.Load()})
}

// HandlerCount returns the number of live subscriptions
func (b *Bus) HandlerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
