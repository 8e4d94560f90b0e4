package endpoints

import (
	"context"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

func (e *Endpoints) ListChatbots(ctx context.Context, params map[string]any) (*apiclient.Response, error) {
	return e.client.Get(ctx, "/chatbot/all", params)
}

func (e *Endpoints) GetChatbot(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.client.Get(ctx, path("/chatbot/%s", chatbotID), nil)
}

func (e *Endpoints) CreateChatbot(ctx context.Context, body models.CreateChatbotRequest) (*apiclient.Response, error) {
	return e.client.Post(ctx, "/chatbot/create", body)
}

func (e *Endpoints) UpdateChatbot(ctx context.Context, chatbotID string, body models.UpdateChatbotRequest) (*apiclient.Response, error) {
	return e.client.Put(ctx, path("/chatbot/%s", chatbotID), body)
}

// DeleteChatbot is an admin-only action
func (e *Endpoints) DeleteChatbot(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.client.Delete(ctx, path("/chatbot/%s", chatbotID), apiclient.AsAdmin())
}

func (e *Endpoints) RenewChatbot(ctx context.Context, chatbotID string, body models.RenewChatbotRequest) (*apiclient.Response, error) {
	return e.client.Post(ctx, path("/chatbot/%s/renew", chatbotID), body)
}

func (e *Endpoints) ToggleChatbotStatus(ctx context.Context, chatbotID string, body models.ChatbotStatusRequest) (*apiclient.Response, error) {
	return e.client.Patch(ctx, path("/chatbot/%s/status", chatbotID), body)
}

func (e *Endpoints) GetPersona(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.client.Get(ctx, path("/chatbot/%s/persona", chatbotID), nil)
}

func (e *Endpoints) UpdatePersona(ctx context.Context, chatbotID string, body models.Persona) (*apiclient.Response, error) {
	return e.client.Put(ctx, path("/chatbot/%s/persona", chatbotID), body)
}

func (e *Endpoints) ListPlans(ctx context.Context) (*apiclient.Response, error) {
	return e.client.Get(ctx, "/plans", nil)
}

func (e *Endpoints) ListSubscriptions(ctx context.Context, params map[string]any) (*apiclient.Response, error) {
	return e.client.Get(ctx, "/subscriptions", params)
}
