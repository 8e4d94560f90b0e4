package endpoints

import (
	"context"
	"fmt"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

func (e *Endpoints) ListCompanies(ctx context.Context, params map[string]any) (*apiclient.Response, error) {
	return e.client.Get(ctx, "/company/all", params)
}

func (e *Endpoints) GetCompany(ctx context.Context, companyID string) (*apiclient.Response, error) {
	return e.client.Get(ctx, path("/company/%s", companyID), nil)
}

func (e *Endpoints) CreateCompany(ctx context.Context, body models.CreateCompanyRequest) (*apiclient.Response, error) {
	return e.client.Post(ctx, "/company/create", body)
}

func (e *Endpoints) UpdateCompany(ctx context.Context, companyID string, body models.UpdateCompanyRequest) (*apiclient.Response, error) {
	return e.client.Put(ctx, path("/company/%s", companyID), body)
}

// DeleteCompany is an admin-only action
func (e *Endpoints) DeleteCompany(ctx context.Context, companyID string) (*apiclient.Response, error) {
	return e.client.Delete(ctx, path("/company/%s", companyID), apiclient.AsAdmin())
}

func (e *Endpoints) GetCompanyCredits(ctx context.Context, companyID string) (*apiclient.Response, error) {
	return e.client.Get(ctx, path("/company/%s/credits", companyID), nil)
}

// AdjustCredits posts {amount, reason} to the assign, add or remove route.
// The backend answers with the new {total_credits, used_credits, remaining_credits}.
func (e *Endpoints) AdjustCredits(ctx context.Context, companyID string, op models.CreditOperation, body models.CreditAdjustmentRequest) (*apiclient.Response, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("unknown credit operation %q", op)
	}
	return e.client.Post(ctx, path("/company/%s/credits/", companyID)+string(op), body, apiclient.AsAdmin())
}

func (e *Endpoints) AssignCredits(ctx context.Context, companyID string, body models.CreditAdjustmentRequest) (*apiclient.Response, error) {
	return e.AdjustCredits(ctx, companyID, models.CreditAssign, body)
}

func (e *Endpoints) AddCredits(ctx context.Context, companyID string, body models.CreditAdjustmentRequest) (*apiclient.Response, error) {
	return e.AdjustCredits(ctx, companyID, models.CreditAdd, body)
}

func (e *Endpoints) RemoveCredits(ctx context.Context, companyID string, body models.CreditAdjustmentRequest) (*apiclient.Response, error) {
	return e.AdjustCredits(ctx, companyID, models.CreditRemove, body)
}

func (e *Endpoints) CreditHistory(ctx context.Context, companyID string, params map[string]any) (*apiclient.Response, error) {
	return e.client.Get(ctx, path("/company/%s/credits/history", companyID), params)
}
