package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/audit"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

type ChatbotService struct {
	api    *endpoints.Endpoints
	audit  *audit.Service
	actor  ActorFunc
	logger zerolog.Logger
}

func NewChatbotService(api *endpoints.Endpoints, auditLog *audit.Service, actor ActorFunc, logger zerolog.Logger) *ChatbotService {
	return &ChatbotService{api: api, audit: auditLog, actor: actor, logger: logger}
}

func (s *ChatbotService) record(ctx context.Context, action, chatbotID, method, endpoint string, status int, value any) {
	s.audit.Record(ctx, audit.Change{
		Actor:    s.actor.name(ctx),
		Action:   action,
		Entity:   "chatbot",
		EntityID: chatbotID,
		New:      value,
		Method:   method,
		Endpoint: endpoint,
		Status:   status,
	})
}

func (s *ChatbotService) Create(ctx context.Context, form *forms.ChatbotForm) (*models.Chatbot, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	resp, err := s.api.CreateChatbot(ctx, form.Request())
	if err != nil {
		return nil, err
	}
	bot, err := decodeObject[models.Chatbot](resp, "chatbot")
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionCreate, bot.ID, http.MethodPost, "/chatbot/create", resp.StatusCode(), bot)
	return bot, nil
}

func (s *ChatbotService) Rename(ctx context.Context, chatbotID, name string) (*models.Chatbot, error) {
	if name == "" {
		return nil, forms.ValidationErrors{{Field: "Name", Message: "is required"}}
	}
	resp, err := s.api.UpdateChatbot(ctx, chatbotID, models.UpdateChatbotRequest{Name: name})
	if err != nil {
		return nil, err
	}
	bot, err := decodeObject[models.Chatbot](resp, "chatbot")
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionUpdate, chatbotID, http.MethodPut, "/chatbot/"+chatbotID, resp.StatusCode(), bot)
	return bot, nil
}

func (s *ChatbotService) Delete(ctx context.Context, chatbotID string) error {
	resp, err := s.api.DeleteChatbot(ctx, chatbotID)
	if err != nil {
		return err
	}
	s.record(ctx, audit.ActionDelete, chatbotID, http.MethodDelete, "/chatbot/"+chatbotID, resp.StatusCode(), nil)
	return nil
}

func (s *ChatbotService) Renew(ctx context.Context, chatbotID string, form *forms.RenewForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	resp, err := s.api.RenewChatbot(ctx, chatbotID, form.Request())
	if err != nil {
		return err
	}
	s.record(ctx, audit.ActionUpdate, chatbotID, http.MethodPost, "/chatbot/"+chatbotID+"/renew", resp.StatusCode(), form.Request())
	return nil
}

// SetStatus switches a chatbot between active and inactive
func (s *ChatbotService) SetStatus(ctx context.Context, chatbotID, status string) error {
	if status != models.ChatbotActive && status != models.ChatbotInactive {
		return forms.ValidationErrors{{Field: "Status", Message: fmt.Sprintf("must be %s or %s", models.ChatbotActive, models.ChatbotInactive)}}
	}
	body := models.ChatbotStatusRequest{Status: status}
	resp, err := s.api.ToggleChatbotStatus(ctx, chatbotID, body)
	if err != nil {
		return err
	}
	s.record(ctx, audit.ActionUpdate, chatbotID, http.MethodPatch, "/chatbot/"+chatbotID+"/status", resp.StatusCode(), body)
	return nil
}

func (s *ChatbotService) Persona(ctx context.Context, chatbotID string) (*models.Persona, error) {
	resp, err := s.api.GetPersona(ctx, chatbotID)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Persona](resp, "persona")
}

func (s *ChatbotService) UpdatePersona(ctx context.Context, chatbotID string, persona models.Persona) error {
	if persona.SystemPrompt == "" {
		return forms.ValidationErrors{{Field: "SystemPrompt", Message: "is required"}}
	}
	resp, err := s.api.UpdatePersona(ctx, chatbotID, persona)
	if err != nil {
		return err
	}
	s.record(ctx, audit.ActionUpdate, chatbotID, http.MethodPut, "/chatbot/"+chatbotID+"/persona", resp.StatusCode(), persona)
	return nil
}
