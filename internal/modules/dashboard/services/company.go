package services

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/audit"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

type CompanyService struct {
	api    *endpoints.Endpoints
	audit  *audit.Service
	actor  ActorFunc
	logger zerolog.Logger
}

func NewCompanyService(api *endpoints.Endpoints, auditLog *audit.Service, actor ActorFunc, logger zerolog.Logger) *CompanyService {
	return &CompanyService{api: api, audit: auditLog, actor: actor, logger: logger}
}

// Create validates the form before any request is made
func (s *CompanyService) Create(ctx context.Context, form *forms.AddCompany) (*models.Company, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.api.CreateCompany(ctx, form.Request())
	if err != nil {
		return nil, err
	}
	company, err := decodeObject[models.Company](resp, "company")
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Change{
		Actor:    s.actor.name(ctx),
		Action:   audit.ActionCreate,
		Entity:   "company",
		EntityID: company.ID,
		New:      company,
		Method:   http.MethodPost,
		Endpoint: "/company/create",
		Status:   resp.StatusCode(),
	})
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, companyID string, form *forms.EditCompany) (*models.Company, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.api.UpdateCompany(ctx, companyID, form.Request())
	if err != nil {
		return nil, err
	}
	company, err := decodeObject[models.Company](resp, "company")
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Change{
		Actor:    s.actor.name(ctx),
		Action:   audit.ActionUpdate,
		Entity:   "company",
		EntityID: companyID,
		New:      company,
		Method:   http.MethodPut,
		Endpoint: "/company/" + companyID,
		Status:   resp.StatusCode(),
	})
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, companyID string) error {
	resp, err := s.api.DeleteCompany(ctx, companyID)
	if err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Change{
		Actor:    s.actor.name(ctx),
		Action:   audit.ActionDelete,
		Entity:   "company",
		EntityID: companyID,
		Method:   http.MethodDelete,
		Endpoint: "/company/" + companyID,
		Status:   resp.StatusCode(),
	})
	return nil
}

// ResetPassword sets a new login password for the company
func (s *CompanyService) ResetPassword(ctx context.Context, companyID string, form *forms.ResetPassword) error {
	if err := form.Validate(); err != nil {
		return err
	}
	resp, err := s.api.UpdateCompany(ctx, companyID, models.UpdateCompanyRequest{Password: form.Password})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Change{
		Actor:       s.actor.name(ctx),
		Action:      audit.ActionUpdate,
		Entity:      "company",
		EntityID:    companyID,
		Method:      http.MethodPut,
		Endpoint:    "/company/" + companyID,
		Status:      resp.StatusCode(),
		Description: "password reset",
	})
	return nil
}
