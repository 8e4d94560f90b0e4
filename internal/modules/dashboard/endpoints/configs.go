package endpoints

import (
	"context"
	"fmt"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

func configPath(chatbotID string, feature models.Feature) (string, error) {
	if !feature.Valid() {
		return "", fmt.Errorf("unknown config feature %q", feature)
	}
	return path("/chatbot/%s/", chatbotID) + string(feature) + "-config", nil
}

// GetConfig returns the admin view of a feature config
func (e *Endpoints) GetConfig(ctx context.Context, chatbotID string, feature models.Feature) (*apiclient.Response, error) {
	p, err := configPath(chatbotID, feature)
	if err != nil {
		return nil, err
	}
	return e.client.Get(ctx, p, nil)
}

// GetPublicConfig returns what the end-user widget sees
func (e *Endpoints) GetPublicConfig(ctx context.Context, chatbotID string, feature models.Feature) (*apiclient.Response, error) {
	p, err := configPath(chatbotID, feature)
	if err != nil {
		return nil, err
	}
	return e.client.Get(ctx, p+"/public", nil)
}

func (e *Endpoints) UpdateConfig(ctx context.Context, chatbotID string, feature models.Feature, body any) (*apiclient.Response, error) {
	p, err := configPath(chatbotID, feature)
	if err != nil {
		return nil, err
	}
	return e.client.Put(ctx, p, body)
}

func (e *Endpoints) GetUIConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetConfig(ctx, chatbotID, models.FeatureUI)
}

func (e *Endpoints) GetPublicUIConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetPublicConfig(ctx, chatbotID, models.FeatureUI)
}

func (e *Endpoints) UpdateUIConfig(ctx context.Context, chatbotID string, body models.UIConfig) (*apiclient.Response, error) {
	return e.UpdateConfig(ctx, chatbotID, models.FeatureUI, body)
}

func (e *Endpoints) GetSidebarConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetConfig(ctx, chatbotID, models.FeatureSidebar)
}

func (e *Endpoints) GetPublicSidebarConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetPublicConfig(ctx, chatbotID, models.FeatureSidebar)
}

func (e *Endpoints) UpdateSidebarConfig(ctx context.Context, chatbotID string, body models.SidebarConfig) (*apiclient.Response, error) {
	return e.UpdateConfig(ctx, chatbotID, models.FeatureSidebar, body)
}

func (e *Endpoints) GetAuthConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetConfig(ctx, chatbotID, models.FeatureAuth)
}

func (e *Endpoints) GetPublicAuthConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetPublicConfig(ctx, chatbotID, models.FeatureAuth)
}

func (e *Endpoints) UpdateAuthConfig(ctx context.Context, chatbotID string, body models.AuthConfig) (*apiclient.Response, error) {
	return e.UpdateConfig(ctx, chatbotID, models.FeatureAuth, body)
}

func (e *Endpoints) GetIntentConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetConfig(ctx, chatbotID, models.FeatureIntent)
}

func (e *Endpoints) GetPublicIntentConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetPublicConfig(ctx, chatbotID, models.FeatureIntent)
}

func (e *Endpoints) UpdateIntentConfig(ctx context.Context, chatbotID string, body models.IntentConfig) (*apiclient.Response, error) {
	return e.UpdateConfig(ctx, chatbotID, models.FeatureIntent, body)
}

func (e *Endpoints) GetTranscriptConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetConfig(ctx, chatbotID, models.FeatureTranscript)
}

func (e *Endpoints) GetPublicTranscriptConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetPublicConfig(ctx, chatbotID, models.FeatureTranscript)
}

func (e *Endpoints) UpdateTranscriptConfig(ctx context.Context, chatbotID string, body models.TranscriptConfig) (*apiclient.Response, error) {
	return e.UpdateConfig(ctx, chatbotID, models.FeatureTranscript, body)
}

func (e *Endpoints) GetZohoConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetConfig(ctx, chatbotID, models.FeatureZoho)
}

func (e *Endpoints) GetPublicZohoConfig(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.GetPublicConfig(ctx, chatbotID, models.FeatureZoho)
}

func (e *Endpoints) UpdateZohoConfig(ctx context.Context, chatbotID string, body models.ZohoConfig) (*apiclient.Response, error) {
	return e.UpdateConfig(ctx, chatbotID, models.FeatureZoho, body)
}

// ExchangeZohoCode trades an OAuth authorization code for a refresh token
func (e *Endpoints) ExchangeZohoCode(ctx context.Context, body models.ZohoExchangeRequest) (*apiclient.Response, error) {
	return e.client.Post(ctx, "/zoho/exchange-token", body)
}

func (e *Endpoints) TestZohoConnection(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.client.Post(ctx, path("/chatbot/%s/zoho-config/test", chatbotID), nil)
}
