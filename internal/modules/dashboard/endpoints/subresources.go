package endpoints

import (
	"context"
	"fmt"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

func collectionPath(chatbotID string, kind models.SubResourceKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown sub-resource %q", kind)
	}
	return path("/chatbot/%s/", chatbotID) + string(kind), nil
}

func itemPath(chatbotID string, kind models.SubResourceKind, itemID string) (string, error) {
	p, err := collectionPath(chatbotID, kind)
	if err != nil {
		return "", err
	}
	return p + path("/%s", itemID), nil
}

func (e *Endpoints) ListSubResources(ctx context.Context, chatbotID string, kind models.SubResourceKind) (*apiclient.Response, error) {
	p, err := collectionPath(chatbotID, kind)
	if err != nil {
		return nil, err
	}
	return e.client.Get(ctx, p, nil)
}

func (e *Endpoints) CreateSubResource(ctx context.Context, chatbotID string, kind models.SubResourceKind, body any) (*apiclient.Response, error) {
	p, err := collectionPath(chatbotID, kind)
	if err != nil {
		return nil, err
	}
	return e.client.Post(ctx, p, body)
}

func (e *Endpoints) UpdateSubResource(ctx context.Context, chatbotID string, kind models.SubResourceKind, itemID string, body any) (*apiclient.Response, error) {
	p, err := itemPath(chatbotID, kind, itemID)
	if err != nil {
		return nil, err
	}
	return e.client.Put(ctx, p, body)
}

func (e *Endpoints) DeleteSubResource(ctx context.Context, chatbotID string, kind models.SubResourceKind, itemID string) (*apiclient.Response, error) {
	p, err := itemPath(chatbotID, kind, itemID)
	if err != nil {
		return nil, err
	}
	return e.client.Delete(ctx, p)
}

// Email templates

func (e *Endpoints) ListEmailTemplates(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.ListSubResources(ctx, chatbotID, models.KindEmailTemplates)
}

func (e *Endpoints) CreateEmailTemplate(ctx context.Context, chatbotID string, body models.EmailTemplate) (*apiclient.Response, error) {
	return e.CreateSubResource(ctx, chatbotID, models.KindEmailTemplates, body)
}

func (e *Endpoints) UpdateEmailTemplate(ctx context.Context, chatbotID, templateID string, body models.EmailTemplate) (*apiclient.Response, error) {
	return e.UpdateSubResource(ctx, chatbotID, models.KindEmailTemplates, templateID, body)
}

func (e *Endpoints) DeleteEmailTemplate(ctx context.Context, chatbotID, templateID string) (*apiclient.Response, error) {
	return e.DeleteSubResource(ctx, chatbotID, models.KindEmailTemplates, templateID)
}

// WhatsApp proposals

func (e *Endpoints) ListWhatsAppProposals(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.ListSubResources(ctx, chatbotID, models.KindWhatsAppProposals)
}

func (e *Endpoints) CreateWhatsAppProposal(ctx context.Context, chatbotID string, body models.WhatsAppProposal) (*apiclient.Response, error) {
	return e.CreateSubResource(ctx, chatbotID, models.KindWhatsAppProposals, body)
}

func (e *Endpoints) UpdateWhatsAppProposal(ctx context.Context, chatbotID, proposalID string, body models.WhatsAppProposal) (*apiclient.Response, error) {
	return e.UpdateSubResource(ctx, chatbotID, models.KindWhatsAppProposals, proposalID, body)
}

func (e *Endpoints) DeleteWhatsAppProposal(ctx context.Context, chatbotID, proposalID string) (*apiclient.Response, error) {
	return e.DeleteSubResource(ctx, chatbotID, models.KindWhatsAppProposals, proposalID)
}

// Social links

func (e *Endpoints) ListSocialLinks(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.ListSubResources(ctx, chatbotID, models.KindSocialLinks)
}

func (e *Endpoints) CreateSocialLink(ctx context.Context, chatbotID string, body models.SocialLink) (*apiclient.Response, error) {
	return e.CreateSubResource(ctx, chatbotID, models.KindSocialLinks, body)
}

func (e *Endpoints) UpdateSocialLink(ctx context.Context, chatbotID, linkID string, body models.SocialLink) (*apiclient.Response, error) {
	return e.UpdateSubResource(ctx, chatbotID, models.KindSocialLinks, linkID, body)
}

func (e *Endpoints) DeleteSocialLink(ctx context.Context, chatbotID, linkID string) (*apiclient.Response, error) {
	return e.DeleteSubResource(ctx, chatbotID, models.KindSocialLinks, linkID)
}

// Custom navigation items

func (e *Endpoints) ListCustomNavItems(ctx context.Context, chatbotID string) (*apiclient.Response, error) {
	return e.ListSubResources(ctx, chatbotID, models.KindCustomNavItems)
}

func (e *Endpoints) CreateCustomNavItem(ctx context.Context, chatbotID string, body models.CustomNavItem) (*apiclient.Response, error) {
	return e.CreateSubResource(ctx, chatbotID, models.KindCustomNavItems, body)
}

func (e *Endpoints) UpdateCustomNavItem(ctx context.Context, chatbotID, itemID string, body models.CustomNavItem) (*apiclient.Response, error) {
	return e.UpdateSubResource(ctx, chatbotID, models.KindCustomNavItems, itemID, body)
}

func (e *Endpoints) DeleteCustomNavItem(ctx context.Context, chatbotID, itemID string) (*apiclient.Response, error) {
	return e.DeleteSubResource(ctx, chatbotID, models.KindCustomNavItems, itemID)
}
