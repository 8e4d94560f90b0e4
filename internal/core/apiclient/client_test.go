package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu     sync.Mutex
	values map[string]string
	reads  int
}

func (m *memTokens) Token(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.values[key], nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) (*Client, *EventBus) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	bus := NewEventBus()
	c := New(Options{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second, WithCredentials: true}, tokens, bus, zerolog.Nop())
	return c, bus
}

func respond(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func TestAttachesBearerTokenWhenPresent(t *testing.T) {
	var gotAuth, gotPath string
	tokens := &memTokens{values: map[string]string{TokenKey: "abc123"}}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		respond(http.StatusOK, map[string]any{"ok": true})(w, r)
	}, tokens)

	resp, err := c.Get(context.Background(), "/company/all", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "/api/company/all", gotPath)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var hasAuth bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		respond(http.StatusOK, map[string]any{})(w, r)
	}, &memTokens{values: map[string]string{}})

	_, err := c.Get(context.Background(), "/plans", nil)
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestTokenIsReadOnEveryRequest(t *testing.T) {
	var seen []string
	tokens := &memTokens{values: map[string]string{TokenKey: "first"}}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		respond(http.StatusOK, map[string]any{})(w, r)
	}, tokens)

	_, err := c.Get(context.Background(), "/plans", nil)
	require.NoError(t, err)

	tokens.mu.Lock()
	tokens.values[TokenKey] = "second"
	tokens.mu.Unlock()

	_, err = c.Get(context.Background(), "/plans", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestAdminRequestsPreferAdminToken(t *testing.T) {
	var gotAuth string
	tokens := &memTokens{values: map[string]string{TokenKey: "user", AdminTokenKey: "admin"}}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		respond(http.StatusOK, map[string]any{})(w, r)
	}, tokens)

	_, err := c.Delete(context.Background(), "/company/c1", AsAdmin())
	require.NoError(t, err)
	assert.Equal(t, "Bearer admin", gotAuth)

	tokens.mu.Lock()
	delete(tokens.values, AdminTokenKey)
	tokens.mu.Unlock()

	_, err = c.Delete(context.Background(), "/company/c1", AsAdmin())
	require.NoError(t, err)
	assert.Equal(t, "Bearer user", gotAuth)
}

func TestRejectedResponsesPublishAuthEvents(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      map[string]any
		wantKind  Kind
		wantEvent *Reason
	}{
		{"401 deactivated", 401, map[string]any{"message": "Your company account has been deactivated"}, KindDeactivated, reasonPtr(ReasonDeactivated)},
		{"401 inactive uppercase", 401, map[string]any{"error": "Company is INACTIVE"}, KindDeactivated, reasonPtr(ReasonDeactivated)},
		{"401 currently inactive", 401, map[string]any{"message": "This account is currently inactive"}, KindDeactivated, reasonPtr(ReasonDeactivated)},
		{"401 expired", 401, map[string]any{"message": "jwt expired"}, KindSession, reasonPtr(ReasonSessionExpired)},
		{"401 empty body", 401, nil, KindSession, reasonPtr(ReasonSessionExpired)},
		{"401 reason code", 401, map[string]any{"message": "denied", "code": "TENANT_INACTIVE"}, KindDeactivated, reasonPtr(ReasonDeactivated)},
		{"403 deactivated", 403, map[string]any{"message": "Account deactivated"}, KindDeactivated, reasonPtr(ReasonDeactivated)},
		{"403 forbidden", 403, map[string]any{"message": "Insufficient permissions"}, KindOther, nil},
		{"400 inactive wording", 400, map[string]any{"message": "chatbot is inactive"}, KindOther, nil},
		{"500", 500, map[string]any{"error": "boom"}, KindOther, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newTestClient(t, respond(tt.status, tt.body), nil)

			var events []AuthEvent
			bus.Subscribe(func(e AuthEvent) { events = append(events, e) })

			resp, err := c.Get(context.Background(), "/company/all", nil)
			require.Error(t, err)
			assert.Nil(t, resp)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantKind, apiErr.Kind)

			if tt.wantEvent == nil {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, *tt.wantEvent, events[0].Reason)
			assert.Equal(t, tt.status, events[0].Status)
		})
	}
}

func reasonPtr(r Reason) *Reason { return &r }

func TestErrorMessageExtraction(t *testing.T) {
	assert.Equal(t, "bad input", newAPIError(400, []byte(`{"message":"bad input"}`)).Message)
	assert.Equal(t, "bad", newAPIError(400, []byte(`{"error":"bad"}`)).Message)

	nested := newAPIError(403, []byte(`{"error":{"message":"nope","code":"ACCOUNT_DEACTIVATED"}}`))
	assert.Equal(t, "nope", nested.Message)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", nested.Code)
	assert.Equal(t, KindDeactivated, nested.Kind)

	assert.Equal(t, "Bad Gateway", newAPIError(502, []byte("<html>")).Message)
}

func TestHelpers(t *testing.T) {
	session := newAPIError(401, []byte(`{"message":"expired"}`))
	deactivated := newAPIError(401, []byte(`{"message":"deactivated"}`))
	wrapped := errors.Join(errors.New("context"), deactivated)

	assert.True(t, IsSessionExpired(session))
	assert.False(t, IsSessionExpired(deactivated))
	assert.True(t, IsDeactivated(wrapped))
	assert.Equal(t, 401, StatusCode(wrapped))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))

	assert.Equal(t, "expired", MessageOr(session, "fallback"))
	assert.Equal(t, "fallback", MessageOr(newAPIError(500, nil), "fallback"))
}

func TestQueryParametersAreFiltered(t *testing.T) {
	var rawQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		respond(http.StatusOK, map[string]any{})(w, r)
	}, nil)

	_, err := c.Get(context.Background(), "/chatbot/all", map[string]any{
		"company_id": "c1",
		"status":     "",
		"search":     nil,
		"page":       2,
	})
	require.NoError(t, err)
	assert.Equal(t, "company_id=c1&page=2", rawQuery)
}

func TestPostSendsJSONBody(t *testing.T) {
	var got map[string]any
	var contentType string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		respond(http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": "c9"}})(w, r)
	}, nil)

	resp, err := c.Post(context.Background(), "/company/create", map[string]any{"name": "Acme"})
	require.NoError(t, err)
	assert.Contains(t, contentType, "application/json")
	assert.Equal(t, "Acme", got["name"])

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, resp.DecodeData(&created))
	assert.Equal(t, "c9", created.ID)
}

func TestUploadSendsMultipartFields(t *testing.T) {
	var chatbotID, filename, content string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		chatbotID = r.FormValue("chatbotId")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, f)
		filename, content = hdr.Filename, buf.String()
		respond(http.StatusOK, map[string]any{"success": true})(w, r)
	}, nil)

	_, err := c.Upload(context.Background(), "/upload", "file", "faq.txt", strings.NewReader("hello"), map[string]string{"chatbotId": "bot-1"})
	require.NoError(t, err)
	assert.Equal(t, "bot-1", chatbotID)
	assert.Equal(t, "faq.txt", filename)
	assert.Equal(t, "hello", content)
}

func TestContextCancellationPropagates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, "/plans", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
