package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Routes the session layer moves the operator between.
const (
	RouteLogin       = "/"
	RouteDeactivated = "/account-deactivated"
	RouteDashboard   = "/dashboard"
)

// Navigator tracks where the operator is and moves them on auth failures.
// Enter records a route the operator moved to on their own, without
// telling them anything.
type Navigator interface {
	Location() string
	Navigate(path string)
	Enter(path string)
}

// TerminalNavigator persists the current route in the session store and
// prints what the operator has to do next.
type TerminalNavigator struct {
	store  *Store
	out    io.Writer
	logger zerolog.Logger
}

func NewTerminalNavigator(store *Store, out io.Writer, logger zerolog.Logger) *TerminalNavigator {
	return &TerminalNavigator{store: store, out: out, logger: logger}
}

func (n *TerminalNavigator) Location() string {
	loc, err := n.store.Get(context.Background(), KeyLocation)
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to read location")
	}
	return loc
}

func (n *TerminalNavigator) Enter(path string) {
	if err := n.store.Set(context.Background(), KeyLocation, path); err != nil {
		n.logger.Error().Err(err).Str("path", path).Msg("failed to persist location")
	}
}

func (n *TerminalNavigator) Navigate(path string) {
	n.Enter(path)

	switch path {
	case RouteLogin:
		fmt.Fprintln(n.out, "Your session has expired. Run `troika-admin login` to sign in again.")
	case RouteDeactivated:
		fmt.Fprintln(n.out, "This account has been deactivated. Contact the platform administrator to reactivate it.")
	}
}

// MemoryNavigator keeps the route in memory. Used by tests and one-shot tools.
type MemoryNavigator struct {
	mu      sync.Mutex
	current string
	visits  []string
}

func NewMemoryNavigator(start string) *MemoryNavigator {
	return &MemoryNavigator{current: start}
}

func (n *MemoryNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *MemoryNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
	n.visits = append(n.visits, path)
}

func (n *MemoryNavigator) Enter(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
}

// Visits returns every route navigated to, in order.
func (n *MemoryNavigator) Visits() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visits...)
}
