package apiclient

import "sync"

type Reason string

const (
	ReasonSessionExpired Reason = "session_expired"
	ReasonDeactivated    Reason = "account_deactivated"
)

// AuthEvent is published when a rejected response requires the session layer
// to react (clear stored keys, move the operator to another route).
type AuthEvent struct {
	Reason  Reason
	Status  int
	Message string
}

func authEventFor(e *APIError) (AuthEvent, bool) {
	switch {
	case e.Kind == KindDeactivated:
		return AuthEvent{Reason: ReasonDeactivated, Status: e.StatusCode, Message: e.Message}, true
	case e.Kind == KindSession:
		return AuthEvent{Reason: ReasonSessionExpired, Status: e.StatusCode, Message: e.Message}, true
	default:
		return AuthEvent{}, false
	}
}

// EventBus fans auth events out to subscribers synchronously, in subscription order.
type EventBus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(AuthEvent)
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers fn and returns a function removing it.
func (b *EventBus) Subscribe(fn func(AuthEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *EventBus) Publish(event AuthEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(event)
	}
}
