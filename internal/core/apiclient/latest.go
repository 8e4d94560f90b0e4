package apiclient

import (
	"context"
	"sync"
)

// Ticket identifies one request issued through Latest.
type Ticket uint64

// Latest keeps only the most recent data fetch alive. Starting a new fetch
// cancels the previous one, and results for superseded tickets must be dropped.
type Latest struct {
	mu     sync.Mutex
	seq    Ticket
	cancel context.CancelFunc
}

// Begin cancels any in-flight fetch and returns the context and ticket for a new one.
func (l *Latest) Begin(parent context.Context) (context.Context, Ticket) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.seq++
	l.cancel = cancel
	return ctx, l.seq
}

// Current reports whether t is still the latest fetch.
func (l *Latest) Current(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return t == l.seq
}

// Done releases the context of t once its result has been handled.
func (l *Latest) Done(t Ticket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t == l.seq && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Apply runs fn only when t is still current, returning whether it ran.
func (l *Latest) Apply(t Ticket, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t != l.seq {
		return false
	}
	fn()
	return true
}
