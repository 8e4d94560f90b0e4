package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/audit"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/session"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

type AuthService struct {
	api     *endpoints.Endpoints
	session *session.Manager
	audit   *audit.Service
	logger  zerolog.Logger
}

func NewAuthService(api *endpoints.Endpoints, manager *session.Manager, auditLog *audit.Service, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, session: manager, audit: auditLog, logger: logger}
}

// Login exchanges credentials for a session and stores it
func (s *AuthService) Login(ctx context.Context, email, password string) (*session.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, forms.ValidationErrors{{Field: "Email", Message: "email and password are required"}}
	}

	s.session.BeginLogin()
	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	out, err := decodeObject[models.LoginResponse](resp, "")
	if err != nil {
		return nil, err
	}

	user := session.User{ID: out.User.ID, Name: out.User.Name, Email: out.User.Email, Role: out.User.Role}
	if user.Role == "" {
		user.Role = out.Role
	}
	if user.Email == "" {
		user.Email = email
	}
	if err := s.session.SaveLogin(ctx, out.Token, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Change{
		Actor:    user.Email,
		Action:   audit.ActionLogin,
		Entity:   "session",
		EntityID: user.ID,
		Method:   http.MethodPost,
		Endpoint: "/auth/login",
		Status:   resp.StatusCode(),
	})
	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("logged in")
	return &user, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	actor := s.Actor(ctx)
	if err := s.session.Logout(ctx); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Change{Actor: actor, Action: audit.ActionLogout, Entity: "session"})
	return nil
}

// Actor names the logged-in operator; it is the ActorFunc for the other services
func (s *AuthService) Actor(ctx context.Context) string {
	user, err := s.session.CurrentUser(ctx)
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}
