package endpoints

import (
	"context"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

func (e *Endpoints) Login(ctx context.Context, body models.LoginRequest) (*apiclient.Response, error) {
	return e.client.Post(ctx, "/auth/login", body)
}

func (e *Endpoints) CurrentUser(ctx context.Context) (*apiclient.Response, error) {
	return e.client.Get(ctx, "/auth/me", nil)
}
