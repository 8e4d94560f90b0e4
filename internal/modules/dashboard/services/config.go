package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/audit"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

// ConfigService reads and writes the per-chatbot feature configs
type ConfigService struct {
	api    *endpoints.Endpoints
	audit  *audit.Service
	actor  ActorFunc
	logger zerolog.Logger
}

func NewConfigService(api *endpoints.Endpoints, auditLog *audit.Service, actor ActorFunc, logger zerolog.Logger) *ConfigService {
	return &ConfigService{api: api, audit: auditLog, actor: actor, logger: logger}
}

// Get returns the admin view, or the end-user view when public is set
func (s *ConfigService) Get(ctx context.Context, chatbotID string, feature models.Feature, public bool) (json.RawMessage, error) {
	get := s.api.GetConfig
	if public {
		get = s.api.GetPublicConfig
	}
	resp, err := get(ctx, chatbotID, feature)
	if err != nil {
		return nil, err
	}
	return unwrap(resp, "")
}

// Set decodes raw into the feature's type, rejecting unknown fields, runs
// the feature's checks and saves it.
func (s *ConfigService) Set(ctx context.Context, chatbotID string, feature models.Feature, raw []byte) error {
	value, err := decodeConfig(feature, raw)
	if err != nil {
		return err
	}

	resp, err := s.api.UpdateConfig(ctx, chatbotID, feature, value)
	if err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Change{
		Actor:    s.actor.name(ctx),
		Action:   audit.ActionUpdate,
		Entity:   string(feature) + "-config",
		EntityID: chatbotID,
		New:      value,
		Method:   http.MethodPut,
		Endpoint: "/chatbot/" + chatbotID + "/" + string(feature) + "-config",
		Status:   resp.StatusCode(),
	})
	return nil
}

func decodeConfig(feature models.Feature, raw []byte) (any, error) {
	var value any
	switch feature {
	case models.FeatureUI:
		value = &models.UIConfig{}
	case models.FeatureSidebar:
		value = &models.SidebarConfig{}
	case models.FeatureAuth:
		value = &models.AuthConfig{}
	case models.FeatureIntent:
		value = &models.IntentConfig{}
	case models.FeatureTranscript:
		value = &models.TranscriptConfig{}
	case models.FeatureZoho:
		value = &models.ZohoConfig{}
	default:
		return nil, fmt.Errorf("unknown config feature %q", feature)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return nil, forms.ValidationErrors{{Field: string(feature), Message: "invalid config: " + err.Error()}}
	}

	if ui, ok := value.(*models.UIConfig); ok && len(ui.InputPlaceholders) > 0 {
		p := forms.NewPlaceholders(ui.InputPlaceholders)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		ui.InputPlaceholders = p.Items
	}
	return value, nil
}
