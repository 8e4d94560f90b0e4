package services

import (
	"bytes"
	"context"
	"encoding/json"
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

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/export"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/oauth"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type reply struct {
	status int
	body   string
}

// fakeBackend answers "METHOD /path" routes with canned JSON and records
// every request it sees
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []call
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/api")

	b.mu.Lock()
	b.calls = append(b.calls, call{Method: r.Method, Path: path, Query: r.URL.RawQuery, Body: string(body)})
	rep, ok := b.routes[r.Method+" "+path]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no route"}`))
		return
	}
	if rep.status != 0 {
		w.WriteHeader(rep.status)
	}
	_, _ = w.Write([]byte(rep.body))
}

func (b *fakeBackend) called(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *fakeBackend) callsTo(method, path string) []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []call
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func newBackend(t *testing.T, routes map[string]reply) (*endpoints.Endpoints, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(srv.Close)

	tokens := apiclient.TokenSourceFunc(func(context.Context, string) (string, error) { return "tok", nil })
	client := apiclient.New(apiclient.Options{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}, tokens, nil, zerolog.Nop())
	return endpoints.New(client), b
}

func ok(body string) reply {
	return reply{body: body}
}

func TestRemoveAboveRemainingSendsNothing(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"GET /company/c1/credits":         ok(`{"success":true,"data":{"credits":{"total_credits":100,"used_credits":90,"remaining_credits":10}}}`),
		"POST /company/c1/credits/remove": ok(`{"success":true,"data":{"credits":{"remaining_credits":0}}}`),
	})
	svc := NewCreditService(api, nil, nil, zerolog.Nop())

	_, err := svc.Adjust(context.Background(), "c1", &forms.CreditAdjustment{
		Operation: models.CreditRemove,
		Amount:    11,
		Reason:    "refund",
	})
	require.Error(t, err)
	assert.True(t, IsRejectedLocally(err))
	assert.Equal(t, 1, b.called(http.MethodGet, "/company/c1/credits"))
	assert.Zero(t, b.called(http.MethodPost, "/company/c1/credits/remove"))
}

func TestRemoveWithinRemainingPosts(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"GET /company/c1/credits":         ok(`{"data":{"credits":{"total_credits":100,"used_credits":90,"remaining_credits":10}}}`),
		"POST /company/c1/credits/remove": ok(`{"data":{"credits":{"total_credits":90,"used_credits":90,"remaining_credits":0}}}`),
	})
	svc := NewCreditService(api, nil, nil, zerolog.Nop())

	after, err := svc.Adjust(context.Background(), "c1", &forms.CreditAdjustment{
		Operation: models.CreditRemove,
		Amount:    10,
		Reason:    "refund",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, after.RemainingCredits)

	posts := b.callsTo(http.MethodPost, "/company/c1/credits/remove")
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"amount":10,"reason":"refund"}`, posts[0].Body)
}

func TestAddSkipsBalanceLookup(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"POST /company/c1/credits/add": ok(`{"data":{"total_credits":150,"used_credits":0,"remaining_credits":150}}`),
	})
	svc := NewCreditService(api, nil, nil, zerolog.Nop())

	after, err := svc.Adjust(context.Background(), "c1", &forms.CreditAdjustment{Operation: models.CreditAdd, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, 150, after.RemainingCredits)
	assert.Zero(t, b.called(http.MethodGet, "/company/c1/credits"))
}

func TestCreateCompanyPasswordMismatchSendsNothing(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"POST /company/create": ok(`{"data":{"company":{"id":"c9"}}}`),
	})
	svc := NewCompanyService(api, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), &forms.AddCompany{
		Name:            "Acme",
		URL:             "https://acme.example",
		Email:           "ops@acme.example",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	require.Error(t, err)
	assert.True(t, IsRejectedLocally(err))
	assert.Contains(t, err.Error(), "passwords do not match")
	assert.Zero(t, b.called(http.MethodPost, "/company/create"))
}

func TestCreateCompany(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"POST /company/create": ok(`{"success":true,"data":{"company":{"id":"c9","name":"Acme"}}}`),
	})
	svc := NewCompanyService(api, nil, func(context.Context) string { return "ops" }, zerolog.Nop())

	company, err := svc.Create(context.Background(), &forms.AddCompany{
		Name:            " Acme ",
		URL:             "https://acme.example",
		Email:           "ops@acme.example",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", company.ID)

	posts := b.callsTo(http.MethodPost, "/company/create")
	require.Len(t, posts, 1)
	assert.NotContains(t, posts[0].Body, "ConfirmPassword")
	assert.Contains(t, posts[0].Body, `"name":"Acme"`)
}

func TestOverviewCompaniesKeepsFailedBalances(t *testing.T) {
	api, _ := newBackend(t, map[string]reply{
		"GET /company/all":        ok(`{"data":[{"id":"c1","name":"One"},{"id":"c2","name":"Two"}]}`),
		"GET /company/c1/credits": ok(`{"data":{"remaining_credits":5}}`),
		"GET /company/c2/credits": {status: http.StatusInternalServerError, body: `{"message":"boom"}`},
	})
	svc := NewOverviewService(api, zerolog.Nop())

	rows, err := svc.Companies(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "c1", rows[0].Company.ID)
	require.NotNil(t, rows[0].Credits)
	assert.Equal(t, 5, rows[0].Credits.RemainingCredits)
	assert.NoError(t, rows[0].CreditsErr)

	assert.Nil(t, rows[1].Credits)
	assert.Error(t, rows[1].CreditsErr)
}

func TestOverviewChatbotsMergesLatestSubscription(t *testing.T) {
	api, _ := newBackend(t, map[string]reply{
		"GET /chatbot/all": ok(`{"data":{"chatbots":[{"id":"b2","name":"Zeta"},{"id":"b1","name":"Alpha"}]}}`),
		"GET /subscriptions": ok(`{"data":{"subscriptions":[
			{"chatbot_id":"b1","plan_id":"p1","end_date":"2026-01-10T00:00:00Z"},
			{"chatbot_id":"b1","plan_id":"p2","end_date":"2026-03-01T00:00:00Z"}
		]}}`),
		"GET /plans": ok(`{"data":[{"id":"p1","name":"Basic"},{"id":"p2","name":"Pro"}]}`),
	})
	svc := NewOverviewService(api, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC) }

	rows, err := svc.Chatbots(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alpha", rows[0].Chatbot.Name)
	assert.Equal(t, "Pro", rows[0].PlanName)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), rows[0].ExpiresAt)
	assert.Positive(t, rows[0].DaysLeft)

	assert.Equal(t, "Zeta", rows[1].Chatbot.Name)
	assert.Nil(t, rows[1].Subscription)
	assert.Empty(t, rows[1].PlanName)
}

func TestOverviewChatbotsFailsWhenAnyListFails(t *testing.T) {
	api, _ := newBackend(t, map[string]reply{
		"GET /chatbot/all":   ok(`{"data":[]}`),
		"GET /subscriptions": ok(`{"data":[]}`),
	})
	svc := NewOverviewService(api, zerolog.Nop())

	_, err := svc.Chatbots(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plans")
}

const messagesPage = `{"data":{"messages":[
	{"sender":"user","content":"hi","timestamp":"2026-05-01T10:00:00Z","session_id":"s1"},
	{"sender":"bot","content":"hello","timestamp":"2026-05-01T10:00:02Z","session_id":"s1"},
	{"sender":"bot","content":"anything else?","timestamp":"2026-05-01T10:00:03Z","session_id":"s1"},
	{"sender":"user","content":"price?","timestamp":"2026-05-01T10:01:00Z","email":"a@b.c","session_id":"s2"},
	{"sender":"bot","content":"10 USD","timestamp":"2026-05-01T10:01:01Z","email":"a@b.c","session_id":"s2"}
],"total":5,"page":1,"limit":100,"total_pages":1}}`

func TestMessageExportPairsTurns(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"GET /chatbot/b1/messages": ok(messagesPage),
	})
	svc := NewMessageService(api, export.NewService(), zerolog.Nop())

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), "b1", MessageFilter{Email: ""}, export.FormatCSV, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], `"hi"`)
	assert.Contains(t, lines[1], `"hello"`)
	assert.Contains(t, lines[2], `"price?"`)
	assert.NotContains(t, buf.String(), "anything else?")

	calls := b.callsTo(http.MethodGet, "/chatbot/b1/messages")
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].Query, "email")
	assert.NotContains(t, calls[0].Query, "startDate")
	assert.Contains(t, calls[0].Query, "page=1")
}

func TestMessageHistoryGuestOnly(t *testing.T) {
	api, _ := newBackend(t, map[string]reply{
		"GET /chatbot/b1/messages": ok(messagesPage),
	})
	svc := NewMessageService(api, export.NewService(), zerolog.Nop())

	msgs, err := svc.History(context.Background(), "b1", MessageFilter{GuestOnly: true})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		assert.True(t, export.IsGuestUser(m))
	}
}

func TestMessageHistoryStopsAtMaxPages(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"GET /chatbot/b1/messages": ok(`{"data":{"messages":[{"sender":"user","content":"x"}],"total_pages":99}}`),
	})
	svc := NewMessageService(api, export.NewService(), zerolog.Nop())

	msgs, err := svc.History(context.Background(), "b1", MessageFilter{MaxPages: 3, PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
	assert.Equal(t, 3, b.called(http.MethodGet, "/chatbot/b1/messages"))
}

func TestConfigSetRejectsUnknownFields(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"PUT /chatbot/b1/ui-config": ok(`{"success":true}`),
	})
	svc := NewConfigService(api, nil, nil, zerolog.Nop())

	err := svc.Set(context.Background(), "b1", models.FeatureUI, []byte(`{"bot_name":"Ava","colour":"red"}`))
	require.Error(t, err)
	assert.True(t, IsRejectedLocally(err))
	assert.Zero(t, b.called(http.MethodPut, "/chatbot/b1/ui-config"))
}

func TestConfigSetValidatesPlaceholders(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"PUT /chatbot/b1/ui-config": ok(`{"success":true}`),
	})
	svc := NewConfigService(api, nil, nil, zerolog.Nop())

	err := svc.Set(context.Background(), "b1", models.FeatureUI, []byte(`{"input_placeholders":["a","  "]}`))
	require.Error(t, err)
	assert.Zero(t, b.called(http.MethodPut, "/chatbot/b1/ui-config"))

	err = svc.Set(context.Background(), "b1", models.FeatureUI, []byte(`{"input_placeholders":[" a ","b","c",""]}`))
	require.NoError(t, err)
	puts := b.callsTo(http.MethodPut, "/chatbot/b1/ui-config")
	require.Len(t, puts, 1)
	assert.Contains(t, puts[0].Body, `["a","b","c"]`)
}

func TestDetectPlatform(t *testing.T) {
	tests := map[string]string{
		"https://www.facebook.com/acme":   "facebook",
		"instagram.com/acme":              "instagram",
		"https://in.linkedin.com/in/acme": "linkedin",
		"https://x.com/acme":              "twitter",
		"https://youtu.be/abc":            "youtube",
		"https://wa.me/15551234567":       "whatsapp",
		"https://t.me/acme":               "telegram",
		"https://github.com/acme":         "github",
		"https://notx.com/acme":           PlatformOther,
		"https://acme.example":            PlatformOther,
		"":                                PlatformOther,
	}
	for in, want := range tests {
		assert.Equal(t, want, DetectPlatform(in), in)
	}
}

func TestCreateSocialLinkFillsPlatform(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"POST /chatbot/b1/social-links": ok(`{"data":{"id":"l1"}}`),
	})
	svc := NewSubResourceService(api, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), "b1", models.KindSocialLinks, []byte(`{"url":"https://instagram.com/acme","enabled":true}`))
	require.NoError(t, err)

	posts := b.callsTo(http.MethodPost, "/chatbot/b1/social-links")
	require.Len(t, posts, 1)
	assert.Contains(t, posts[0].Body, `"platform":"instagram"`)

	_, err = svc.Create(context.Background(), "b1", models.KindSocialLinks, []byte(`{"url":"not a url"}`))
	require.Error(t, err)
	assert.Len(t, b.callsTo(http.MethodPost, "/chatbot/b1/social-links"), 1)
}

func TestListSubResourcesAcceptsBothShapes(t *testing.T) {
	api, _ := newBackend(t, map[string]reply{
		"GET /chatbot/b1/email-templates":    ok(`{"data":{"templates":[{"id":"t1"},{"id":"t2"}]}}`),
		"GET /chatbot/b1/whatsapp-proposals": ok(`{"data":[{"id":"p1"}]}`),
	})
	svc := NewSubResourceService(api, nil, nil, zerolog.Nop())

	items, err := svc.List(context.Background(), "b1", models.KindEmailTemplates)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.List(context.Background(), "b1", models.KindWhatsAppProposals)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

type fakeAuthorizer struct {
	authURL string
	run     func(ctx context.Context) (string, error)
}

func (f *fakeAuthorizer) Run(ctx context.Context, authURL string) (string, error) {
	f.authURL = authURL
	return f.run(ctx)
}

func TestZohoLinkFillsFormWithoutSaving(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"POST /zoho/exchange-token":  ok(`{"success":true,"data":{"refresh_token":"rt-1","access_token":"at"}}`),
		"PUT /chatbot/b1/zoho-config": ok(`{"success":true}`),
	})
	svc := NewZohoService(api, nil, nil, zerolog.Nop())
	form := &forms.ZohoConfigForm{Enabled: true, ClientID: "cid", ClientSecret: "sec", Domain: "zoho.in"}
	redirect := "http://127.0.0.1:8765/zoho/callback"

	exchange := svc.Exchanger("b1", form, redirect)
	auth := &fakeAuthorizer{run: func(ctx context.Context) (string, error) {
		return exchange.Exchange(ctx, "the-code")
	}}

	require.NoError(t, svc.Link(context.Background(), form, auth, redirect))
	assert.Equal(t, "rt-1", form.RefreshToken)
	assert.True(t, strings.HasPrefix(auth.authURL, "https://accounts.zoho.in/oauth/v2/auth?"))
	assert.Contains(t, auth.authURL, "client_id=cid")

	exchanges := b.callsTo(http.MethodPost, "/zoho/exchange-token")
	require.Len(t, exchanges, 1)
	assert.Contains(t, exchanges[0].Body, `"code":"the-code"`)
	assert.Zero(t, b.called(http.MethodPut, "/chatbot/b1/zoho-config"))

	require.NoError(t, svc.Save(context.Background(), "b1", form))
	puts := b.callsTo(http.MethodPut, "/chatbot/b1/zoho-config")
	require.Len(t, puts, 1)
	assert.Contains(t, puts[0].Body, "rt-1")
}

func TestZohoSaveAfterLinkKeepsStoredSettings(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"GET /chatbot/b1/zoho-config": ok(`{"success":true,"data":{"enabled":false,"client_id":"cid","client_secret":"sec",` +
			`"domain":"zoho.com","module":"Contacts","field_mapping":{"name":"Last_Name"},"keywords":["quote"]}}`),
		"POST /zoho/exchange-token":  ok(`{"success":true,"data":{"refresh_token":"rt"}}`),
		"PUT /chatbot/b1/zoho-config": ok(`{"success":true}`),
	})
	svc := NewZohoService(api, nil, nil, zerolog.Nop())
	ctx := context.Background()

	form, err := svc.Load(ctx, "b1")
	require.NoError(t, err)
	redirect := "http://127.0.0.1:8765/zoho/callback"
	exchange := svc.Exchanger("b1", form, redirect)
	auth := &fakeAuthorizer{run: func(ctx context.Context) (string, error) {
		return exchange.Exchange(ctx, "the-code")
	}}
	require.NoError(t, svc.Link(ctx, form, auth, redirect))
	require.NoError(t, svc.Save(ctx, "b1", form))

	puts := b.callsTo(http.MethodPut, "/chatbot/b1/zoho-config")
	require.Len(t, puts, 1)
	var saved models.ZohoConfig
	require.NoError(t, json.Unmarshal([]byte(puts[0].Body), &saved))
	assert.Equal(t, models.ZohoConfig{
		Enabled:      false,
		ClientID:     "cid",
		ClientSecret: "sec",
		RefreshToken: "rt",
		Domain:       "zoho.com",
		Module:       "Contacts",
		FieldMapping: map[string]string{"name": "Last_Name"},
		Keywords:     []string{"quote"},
	}, saved)
}

func TestZohoLoadWithoutStoredConfig(t *testing.T) {
	api, _ := newBackend(t, nil)
	svc := NewZohoService(api, nil, nil, zerolog.Nop())

	form, err := svc.Load(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, &forms.ZohoConfigForm{}, form)
}

func TestZohoLinkErrorLeavesFormUntouched(t *testing.T) {
	api, _ := newBackend(t, nil)
	svc := NewZohoService(api, nil, nil, zerolog.Nop())
	form := &forms.ZohoConfigForm{ClientID: "cid", ClientSecret: "sec", RefreshToken: "old"}

	auth := &fakeAuthorizer{run: func(context.Context) (string, error) { return "", oauth.ErrPopupClosed }}
	err := svc.Link(context.Background(), form, auth, "http://127.0.0.1:1/cb")
	assert.ErrorIs(t, err, oauth.ErrPopupClosed)
	assert.Equal(t, "old", form.RefreshToken)

	err = svc.Link(context.Background(), &forms.ZohoConfigForm{}, auth, "http://127.0.0.1:1/cb")
	assert.True(t, IsRejectedLocally(err))
}

func TestZohoSaveRequiresTokenWhenEnabled(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"PUT /chatbot/b1/zoho-config": ok(`{"success":true}`),
	})
	svc := NewZohoService(api, nil, nil, zerolog.Nop())

	err := svc.Save(context.Background(), "b1", &forms.ZohoConfigForm{Enabled: true, ClientID: "cid", ClientSecret: "sec"})
	require.Error(t, err)
	assert.True(t, IsRejectedLocally(err))
	assert.Zero(t, b.called(http.MethodPut, "/chatbot/b1/zoho-config"))
}

func TestCreditWatcherReportsLowCompanies(t *testing.T) {
	api, _ := newBackend(t, map[string]reply{
		"GET /company/all":        ok(`{"data":[{"id":"c1","name":"One"},{"id":"c2","name":"Two"}]}`),
		"GET /company/c1/credits": ok(`{"data":{"remaining_credits":5}}`),
		"GET /company/c2/credits": ok(`{"data":{"remaining_credits":500}}`),
	})
	w := NewCreditWatcher(NewOverviewService(api, zerolog.Nop()), 50, zerolog.Nop())

	var notified []CompanyRow
	w.OnLow = func(rows []CompanyRow) { notified = rows }

	low, err := w.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "c1", low[0].Company.ID)
	assert.Equal(t, low, notified)
}

func TestResetPasswordMismatchSendsNothing(t *testing.T) {
	api, b := newBackend(t, map[string]reply{
		"PUT /company/c1": ok(`{"success":true}`),
	})
	svc := NewCompanyService(api, nil, nil, zerolog.Nop())

	err := svc.ResetPassword(context.Background(), "c1", &forms.ResetPassword{Password: "secret1", ConfirmPassword: "secret9"})
	require.Error(t, err)
	assert.Zero(t, b.called(http.MethodPut, "/company/c1"))

	require.NoError(t, svc.ResetPassword(context.Background(), "c1", &forms.ResetPassword{Password: "secret1", ConfirmPassword: "secret1"}))
	puts := b.callsTo(http.MethodPut, "/company/c1")
	require.Len(t, puts, 1)
	assert.JSONEq(t, `{"password":"secret1"}`, puts[0].Body)
}
