package services

import (
	"context"
	"errors"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
)

// ActorFunc names the operator performing an action, for the audit log
type ActorFunc func(ctx context.Context) string

func (f ActorFunc) name(ctx context.Context) string {
	if f == nil {
		return ""
	}
	return f(ctx)
}

// IsRejectedLocally reports whether err came from form validation, meaning
// no request was sent
func IsRejectedLocally(err error) bool {
	var v forms.ValidationErrors
	return errors.As(err, &v)
}
