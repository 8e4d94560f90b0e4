// Package oauth links a chatbot to Zoho CRM: it opens the provider consent
// page, waits for the authorization code on a loopback callback server and
// hands the code to the backend for a refresh token.
package oauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Message types posted by the callback page
const (
	MessageCallback     = "zoho-oauth-callback"
	MessageError        = "zoho-oauth-error"
	MessageRefreshToken = "zoho-refresh-token"
)

// Message is what the authorization window reports back
type Message struct {
	Type         string `json:"type"`
	Code         string `json:"code,omitempty"`
	Error        string `json:"error,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (m Message) Known() bool {
	switch m.Type {
	case MessageCallback, MessageError, MessageRefreshToken:
		return true
	}
	return false
}

var (
	ErrPopupClosed    = errors.New("authorization window was closed before completing")
	ErrTimeout        = errors.New("authorization timed out")
	ErrInProgress     = errors.New("an authorization is already in progress")
	ErrNoRefreshToken = errors.New("no refresh token was returned")
)

// ProviderError is an error reported by Zoho on the callback
type ProviderError struct {
	Reason string
}

func (e *ProviderError) Error() string {
	if e.Reason == "" {
		return "zoho authorization failed"
	}
	return "zoho authorization failed: " + e.Reason
}

const DefaultScope = "ZohoCRM.modules.ALL,ZohoCRM.settings.ALL"

// BuildAuthorizationURL returns the consent page URL for the given Zoho data
// center ("zoho.com", "zoho.in", "zoho.eu"...). Offline access with forced
// consent makes Zoho issue a refresh token on every link.
func BuildAuthorizationURL(domain, clientID, redirectURI string, scopes []string) (string, error) {
	if clientID == "" {
		return "", fmt.Errorf("client id is required")
	}
	if redirectURI == "" {
		return "", fmt.Errorf("redirect uri is required")
	}
	domain = strings.TrimPrefix(strings.TrimSpace(domain), "accounts.")
	if domain == "" {
		domain = "zoho.com"
	}
	scope := DefaultScope
	if len(scopes) > 0 {
		scope = strings.Join(scopes, ",")
	}

	q := url.Values{}
	q.Set("scope", scope)
	q.Set("client_id", clientID)
	q.Set("response_type", "code")
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	q.Set("redirect_uri", redirectURI)
	return "https://accounts." + domain + "/oauth/v2/auth?" + q.Encode(), nil
}
