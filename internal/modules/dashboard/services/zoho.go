package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/audit"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/oauth"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

// Authorizer runs a browser authorization; *oauth.Flow satisfies it
type Authorizer interface {
	Run(ctx context.Context, authURL string) (string, error)
}

// ZohoService links a chatbot's Zoho CRM integration
type ZohoService struct {
	api    *endpoints.Endpoints
	audit  *audit.Service
	actor  ActorFunc
	logger zerolog.Logger
}

func NewZohoService(api *endpoints.Endpoints, auditLog *audit.Service, actor ActorFunc, logger zerolog.Logger) *ZohoService {
	return &ZohoService{api: api, audit: auditLog, actor: actor, logger: logger}
}

// Load returns a form seeded with the chatbot's stored Zoho config. A
// chatbot without one gets an empty, disabled form.
func (s *ZohoService) Load(ctx context.Context, chatbotID string) (*forms.ZohoConfigForm, error) {
	resp, err := s.api.GetZohoConfig(ctx, chatbotID)
	if err != nil {
		if apiclient.StatusCode(err) == http.StatusNotFound {
			return &forms.ZohoConfigForm{}, nil
		}
		return nil, err
	}
	cfg, err := decodeObject[models.ZohoConfig](resp, "zoho_config")
	if err != nil {
		return nil, err
	}
	return forms.NewZohoConfigForm(*cfg), nil
}

// Exchanger returns the code exchanger for one chatbot's form
func (s *ZohoService) Exchanger(chatbotID string, form *forms.ZohoConfigForm, redirectURI string) oauth.ExchangerFunc {
	return func(ctx context.Context, code string) (string, error) {
		resp, err := s.api.ExchangeZohoCode(ctx, models.ZohoExchangeRequest{
			Code:         code,
			ChatbotID:    chatbotID,
			ClientID:     form.ClientID,
			ClientSecret: form.ClientSecret,
			RedirectURI:  redirectURI,
			Domain:       form.Domain,
		})
		if err != nil {
			return "", err
		}
		out, err := decodeObject[models.ZohoExchangeResponse](resp, "")
		if err != nil {
			return "", err
		}
		return out.RefreshToken, nil
	}
}

// Link runs the authorization and puts the refresh token into the form. The
// form is not saved; Save does that.
func (s *ZohoService) Link(ctx context.Context, form *forms.ZohoConfigForm, flow Authorizer, redirectURI string) error {
	if form.ClientID == "" || form.ClientSecret == "" {
		return forms.ValidationErrors{{Field: "ClientID", Message: "client id and secret are required before linking"}}
	}
	authURL, err := oauth.BuildAuthorizationURL(form.Domain, form.ClientID, redirectURI, nil)
	if err != nil {
		return err
	}

	token, err := flow.Run(ctx, authURL)
	if err != nil {
		return err
	}
	form.RefreshToken = token
	s.logger.Info().Msg("zoho refresh token received")
	return nil
}

// Save validates and persists the Zoho config
func (s *ZohoService) Save(ctx context.Context, chatbotID string, form *forms.ZohoConfigForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if form.Enabled && form.RefreshToken == "" {
		return forms.ValidationErrors{{Field: "RefreshToken", Message: "link the Zoho account before enabling"}}
	}

	cfg := form.Config()
	resp, err := s.api.UpdateZohoConfig(ctx, chatbotID, cfg)
	if err != nil {
		return err
	}
	cfg.ClientSecret = ""
	cfg.RefreshToken = ""
	s.audit.Record(ctx, audit.Change{
		Actor:    s.actor.name(ctx),
		Action:   audit.ActionUpdate,
		Entity:   "zoho_config",
		EntityID: chatbotID,
		New:      cfg,
		Method:   http.MethodPut,
		Endpoint: "/chatbot/" + chatbotID + "/zoho-config",
		Status:   resp.StatusCode(),
	})
	return nil
}

// TestConnection asks the backend to call Zoho with the stored credentials
func (s *ZohoService) TestConnection(ctx context.Context, chatbotID string) (string, error) {
	resp, err := s.api.TestZohoConnection(ctx, chatbotID)
	if err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode zoho test result: %w", err)
	}
	if out.Message == "" {
		out.Message = "connection ok"
	}
	return out.Message, nil
}
