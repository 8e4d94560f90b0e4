package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
)

// User is the logged-in operator as stored under KeyUser.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Manager is the session layer: it owns the stored keys and reacts to auth
// events published by the API client.
type Manager struct {
	store  *Store
	nav    Navigator
	logger zerolog.Logger
}

func NewManager(store *Store, nav Navigator, logger zerolog.Logger) *Manager {
	return &Manager{store: store, nav: nav, logger: logger}
}

// Attach subscribes the manager to bus and returns the unsubscribe function.
func (m *Manager) Attach(bus *apiclient.EventBus) func() {
	return bus.Subscribe(m.HandleAuthEvent)
}

// HandleAuthEvent clears session keys and moves the operator:
//   - deactivated on 401: clear token, user and role, go to /account-deactivated
//     unless already there or on the login route;
//   - expired on 401: clear token, go to the login route unless already there;
//   - deactivated on 403: clear token, go to /account-deactivated unless already there.
func (m *Manager) HandleAuthEvent(e apiclient.AuthEvent) {
	ctx := context.Background()
	loc := m.nav.Location()

	switch {
	case e.Reason == apiclient.ReasonDeactivated && e.Status == http.StatusUnauthorized:
		m.clear(ctx, KeyToken, KeyUser, KeyRole)
		if loc != RouteDeactivated && loc != RouteLogin {
			m.nav.Navigate(RouteDeactivated)
		}
	case e.Reason == apiclient.ReasonSessionExpired:
		m.clear(ctx, KeyToken)
		if loc != RouteLogin {
			m.nav.Navigate(RouteLogin)
		}
	case e.Reason == apiclient.ReasonDeactivated && e.Status == http.StatusForbidden:
		m.clear(ctx, KeyToken)
		if loc != RouteDeactivated {
			m.nav.Navigate(RouteDeactivated)
		}
	}
}

func (m *Manager) clear(ctx context.Context, keys ...string) {
	if err := m.store.Delete(ctx, keys...); err != nil {
		m.logger.Error().Err(err).Strs("keys", keys).Msg("failed to clear session keys")
	}
}

// BeginLogin puts the operator on the login route before credentials are
// posted, so a rejected password is not reported as an expired session.
func (m *Manager) BeginLogin() {
	m.nav.Enter(RouteLogin)
}

// SaveLogin stores the dashboard token and the operator profile after login.
func (m *Manager) SaveLogin(ctx context.Context, token string, user User) error {
	if token == "" {
		return fmt.Errorf("login response did not include a token")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyUser, string(raw)); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyRole, user.Role); err != nil {
		return err
	}
	m.nav.Navigate(RouteDashboard)
	return nil
}

// SetAdminToken stores the elevated token used for admin-only actions.
func (m *Manager) SetAdminToken(ctx context.Context, token string) error {
	if token == "" {
		return m.store.Delete(ctx, KeyAdminToken)
	}
	return m.store.Set(ctx, KeyAdminToken, token)
}

// Logout removes every stored key and returns to the login route.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyToken, KeyAdminToken, KeyUser, KeyRole); err != nil {
		return err
	}
	m.nav.Navigate(RouteLogin)
	return nil
}

// CurrentUser returns the stored profile, or nil when nobody is logged in.
func (m *Manager) CurrentUser(ctx context.Context) (*User, error) {
	raw, err := m.store.Get(ctx, KeyUser)
	if err != nil || raw == "" {
		return nil, err
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("stored user is corrupt: %w", err)
	}
	return &user, nil
}

// Status summarises the stored session for display.
type Status struct {
	Location      string
	User          *User
	Role          string
	HasToken      bool
	HasAdminToken bool
	Claims        *Claims
}

func (m *Manager) Status(ctx context.Context) (*Status, error) {
	token, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	adminToken, err := m.store.Get(ctx, KeyAdminToken)
	if err != nil {
		return nil, err
	}
	role, err := m.store.Get(ctx, KeyRole)
	if err != nil {
		return nil, err
	}
	user, err := m.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{
		Location:      m.nav.Location(),
		User:          user,
		Role:          role,
		HasToken:      token != "",
		HasAdminToken: adminToken != "",
	}
	if token != "" {
		if claims, err := ParseClaims(token); err == nil {
			st.Claims = claims
		}
	}
	return st, nil
}
