package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the display subset of a session token. The signature is not
// verified here; the backend remains the only authority on validity.
type Claims struct {
	Subject   string
	Email     string
	Role      string
	CompanyID string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

func ParseClaims(token string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims := &Claims{
		Subject:   firstString(mapClaims, "sub", "id", "userId", "user_id"),
		Email:     firstString(mapClaims, "email"),
		Role:      firstString(mapClaims, "role"),
		CompanyID: firstString(mapClaims, "companyId", "company_id"),
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		claims.ExpiresAt = &t
	}
	return claims, nil
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
