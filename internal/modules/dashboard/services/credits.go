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

type CreditService struct {
	api    *endpoints.Endpoints
	audit  *audit.Service
	actor  ActorFunc
	logger zerolog.Logger
}

func NewCreditService(api *endpoints.Endpoints, auditLog *audit.Service, actor ActorFunc, logger zerolog.Logger) *CreditService {
	return &CreditService{api: api, audit: auditLog, actor: actor, logger: logger}
}

func (s *CreditService) Balance(ctx context.Context, companyID string) (*models.CreditBalance, error) {
	resp, err := s.api.GetCompanyCredits(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.CreditBalance](resp, "credits")
}

func (s *CreditService) History(ctx context.Context, companyID string, page, limit int) ([]models.CreditLedgerEntry, error) {
	resp, err := s.api.CreditHistory(ctx, companyID, map[string]any{"page": page, "limit": limit})
	if err != nil {
		return nil, err
	}
	return decodeList[models.CreditLedgerEntry](resp, "history")
}

// Adjust validates the form, checks removals against the current balance and
// only then posts the adjustment. It returns the new balance.
func (s *CreditService) Adjust(ctx context.Context, companyID string, form *forms.CreditAdjustment) (*models.CreditBalance, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var before *models.CreditBalance
	if form.Operation == models.CreditRemove {
		var err error
		if before, err = s.Balance(ctx, companyID); err != nil {
			return nil, err
		}
		if err := form.ValidateAgainst(*before); err != nil {
			return nil, err
		}
	}

	resp, err := s.api.AdjustCredits(ctx, companyID, form.Operation, form.Request())
	if err != nil {
		return nil, err
	}
	after, err := decodeObject[models.CreditBalance](resp, "credits")
	if err != nil {
		return nil, err
	}

	var old any
	if before != nil {
		old = before
	}
	s.audit.Record(ctx, audit.Change{
		Actor:       s.actor.name(ctx),
		Action:      audit.ActionUpdate,
		Entity:      "credits",
		EntityID:    companyID,
		Old:         old,
		New:         after,
		Method:      http.MethodPost,
		Endpoint:    "/company/" + companyID + "/credits/" + string(form.Operation),
		Status:      resp.StatusCode(),
		Description: string(form.Operation) + ": " + form.Reason,
	})
	s.logger.Info().Str("company_id", companyID).Str("operation", string(form.Operation)).Int("amount", form.Amount).Msg("credits adjusted")
	return after, nil
}
