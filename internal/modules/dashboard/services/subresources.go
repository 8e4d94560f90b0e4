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

// SubResourceService manages the chatbot-scoped collections
type SubResourceService struct {
	api    *endpoints.Endpoints
	audit  *audit.Service
	actor  ActorFunc
	logger zerolog.Logger
}

func NewSubResourceService(api *endpoints.Endpoints, auditLog *audit.Service, actor ActorFunc, logger zerolog.Logger) *SubResourceService {
	return &SubResourceService{api: api, audit: auditLog, actor: actor, logger: logger}
}

func (s *SubResourceService) List(ctx context.Context, chatbotID string, kind models.SubResourceKind) ([]json.RawMessage, error) {
	resp, err := s.api.ListSubResources(ctx, chatbotID, kind)
	if err != nil {
		return nil, err
	}
	return decodeList[json.RawMessage](resp, listKey(kind))
}

// Create decodes raw into the kind's type; social links get their platform
// filled in from the URL when it is missing.
func (s *SubResourceService) Create(ctx context.Context, chatbotID string, kind models.SubResourceKind, raw []byte) (json.RawMessage, error) {
	value, err := decodeSubResource(kind, raw)
	if err != nil {
		return nil, err
	}
	resp, err := s.api.CreateSubResource(ctx, chatbotID, kind, value)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionCreate, chatbotID, kind, "", http.MethodPost, resp.StatusCode(), value)
	return unwrap(resp, "")
}

func (s *SubResourceService) Update(ctx context.Context, chatbotID string, kind models.SubResourceKind, itemID string, raw []byte) (json.RawMessage, error) {
	value, err := decodeSubResource(kind, raw)
	if err != nil {
		return nil, err
	}
	resp, err := s.api.UpdateSubResource(ctx, chatbotID, kind, itemID, value)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionUpdate, chatbotID, kind, itemID, http.MethodPut, resp.StatusCode(), value)
	return unwrap(resp, "")
}

func (s *SubResourceService) Delete(ctx context.Context, chatbotID string, kind models.SubResourceKind, itemID string) error {
	resp, err := s.api.DeleteSubResource(ctx, chatbotID, kind, itemID)
	if err != nil {
		return err
	}
	s.record(ctx, audit.ActionDelete, chatbotID, kind, itemID, http.MethodDelete, resp.StatusCode(), nil)
	return nil
}

func (s *SubResourceService) record(ctx context.Context, action, chatbotID string, kind models.SubResourceKind, itemID, method string, status int, value any) {
	endpoint := "/chatbot/" + chatbotID + "/" + string(kind)
	if itemID != "" {
		endpoint += "/" + itemID
	}
	s.audit.Record(ctx, audit.Change{
		Actor:    s.actor.name(ctx),
		Action:   action,
		Entity:   string(kind),
		EntityID: itemID,
		New:      value,
		Method:   method,
		Endpoint: endpoint,
		Status:   status,
	})
}

func listKey(kind models.SubResourceKind) string {
	switch kind {
	case models.KindEmailTemplates:
		return "templates"
	case models.KindWhatsAppProposals:
		return "proposals"
	case models.KindSocialLinks:
		return "links"
	case models.KindCustomNavItems:
		return "items"
	}
	return ""
}

func decodeSubResource(kind models.SubResourceKind, raw []byte) (any, error) {
	var value any
	switch kind {
	case models.KindEmailTemplates:
		value = &models.EmailTemplate{}
	case models.KindWhatsAppProposals:
		value = &models.WhatsAppProposal{}
	case models.KindSocialLinks:
		value = &models.SocialLink{}
	case models.KindCustomNavItems:
		value = &models.CustomNavItem{}
	default:
		return nil, fmt.Errorf("unknown sub-resource %q", kind)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return nil, forms.ValidationErrors{{Field: string(kind), Message: "invalid body: " + err.Error()}}
	}

	if link, ok := value.(*models.SocialLink); ok {
		form := forms.SocialLinkForm{Platform: link.Platform, URL: link.URL, Order: link.Order}
		if err := form.Validate(); err != nil {
			return nil, err
		}
		if link.Platform == "" {
			link.Platform = DetectPlatform(link.URL)
		}
	}
	return value, nil
}
