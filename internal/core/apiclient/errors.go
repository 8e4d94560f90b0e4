package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the client-side error taxonomy for rejected responses.
type Kind string

const (
	// KindSession is a 401 without deactivation wording: expired or invalid token.
	KindSession Kind = "session"
	// KindDeactivated is a 401 or 403 reporting a deactivated tenant.
	KindDeactivated Kind = "deactivated"
	// KindOther covers every other rejection.
	KindOther Kind = "other"
)

// Machine-readable reason codes accepted from the backend ahead of message matching.
var deactivationCodes = map[string]bool{
	"ACCOUNT_DEACTIVATED": true,
	"TENANT_DEACTIVATED":  true,
	"TENANT_INACTIVE":     true,
}

var deactivationPhrases = []string{"deactivated", "inactive", "currently inactive"}

// APIError is returned for every response with status >= 400.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Kind       Kind
	Method     string
	URL        string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Deactivation reports whether the backend signalled a deactivated tenant,
// independent of the status code.
func (e *APIError) Deactivation() bool {
	return isDeactivation(e.Code, e.Message)
}

func newAPIError(status int, body []byte) *APIError {
	message, code := parseErrorBody(body)
	if message == "" {
		message = http.StatusText(status)
	}

	e := &APIError{
		StatusCode: status,
		Message:    message,
		Code:       code,
		Body:       body,
	}
	e.Kind = classify(status, code, message)
	return e
}

func classify(status int, code, message string) Kind {
	deactivated := isDeactivation(code, message)
	switch {
	case status == http.StatusUnauthorized && deactivated:
		return KindDeactivated
	case status == http.StatusUnauthorized:
		return KindSession
	case status == http.StatusForbidden && deactivated:
		return KindDeactivated
	default:
		return KindOther
	}
}

func isDeactivation(code, message string) bool {
	if deactivationCodes[strings.ToUpper(code)] {
		return true
	}
	lower := strings.ToLower(message)
	for _, phrase := range deactivationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// parseErrorBody pulls message and code out of the usual error envelopes:
// {"message": "..."}, {"error": "..."}, {"error": {"message": "...", "code": "..."}}.
func parseErrorBody(body []byte) (message, code string) {
	var envelope struct {
		Message   string          `json:"message"`
		Error     json.RawMessage `json:"error"`
		Code      string          `json:"code"`
		ErrorCode string          `json:"error_code"`
	}
	if len(body) == 0 || json.Unmarshal(body, &envelope) != nil {
		return "", ""
	}

	message = envelope.Message
	code = envelope.Code
	if code == "" {
		code = envelope.ErrorCode
	}

	if len(envelope.Error) > 0 {
		var s string
		if json.Unmarshal(envelope.Error, &s) == nil {
			if message == "" {
				message = s
			}
		} else {
			var nested struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			}
			if json.Unmarshal(envelope.Error, &nested) == nil {
				if message == "" {
					message = nested.Message
				}
				if code == "" {
					code = nested.Code
				}
			}
		}
	}
	return message, code
}

// IsSessionExpired reports whether err is a 401 treated as an expired session.
func IsSessionExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindSession
}

// IsDeactivated reports whether err signals a deactivated tenant.
func IsDeactivated(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindDeactivated
}

// StatusCode returns the HTTP status of an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// MessageOr returns the backend message carried by err, or fallback when the
// backend provided none.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.StatusCode) {
		return apiErr.Message
	}
	return fallback
}
