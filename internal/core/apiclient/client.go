// Package apiclient is the single point of HTTP communication with the chatbot
// platform backend. It owns base URL selection, credential mode, bearer token
// attachment and classification of rejected responses into auth events.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Storage keys read by the request interceptor.
const (
	TokenKey      = "token"
	AdminTokenKey = "adminToken"
)

// TokenSource supplies bearer tokens at request time. Implementations must not
// cache: a token cleared by the session layer is gone for the next request.
type TokenSource interface {
	Token(ctx context.Context, key string) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context, key string) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context, key string) (string, error) {
	return f(ctx, key)
}

type Options struct {
	BaseURL         string
	Timeout         time.Duration
	WithCredentials bool
	UserAgent       string
}

type Client struct {
	http   *resty.Client
	tokens TokenSource
	events *EventBus
	logger zerolog.Logger
}

// New builds the client and installs the request and response interceptors.
func New(opts Options, tokens TokenSource, events *EventBus, logger zerolog.Logger) *Client {
	if tokens == nil {
		tokens = TokenSourceFunc(func(context.Context, string) (string, error) { return "", nil })
	}
	if events == nil {
		events = NewEventBus()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "troika-admin"
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", opts.UserAgent)

	// resty installs a cookie jar by default, which matches withCredentials.
	if !opts.WithCredentials {
		httpClient.SetCookieJar(nil)
	}

	c := &Client{
		http:   httpClient,
		tokens: tokens,
		events: events,
		logger: logger,
	}

	httpClient.OnBeforeRequest(c.attachToken)
	httpClient.OnAfterResponse(c.logResponse)
	httpClient.OnAfterResponse(c.rejectErrors)

	return c
}

// Events exposes the bus auth-failure events are published on.
func (c *Client) Events() *EventBus {
	return c.events
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	tokenKey string
}

// AsAdmin authenticates the request with the elevated admin token, falling
// back to the dashboard token when no admin token is stored.
func AsAdmin() RequestOption {
	return func(o *requestOptions) {
		o.tokenKey = AdminTokenKey
	}
}

func (c *Client) Get(ctx context.Context, path string, params map[string]any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, func(r *resty.Request) {
		if q := FilterParams(params); len(q) > 0 {
			r.SetQueryParamsFromValues(q)
		}
	}, opts)
}

func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, jsonBody(body), opts)
}

func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, jsonBody(body), opts)
}

func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, jsonBody(body), opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, opts)
}

// GetBlob fetches a binary payload (PDF report, data export).
func (c *Client) GetBlob(ctx context.Context, path string, params map[string]any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, func(r *resty.Request) {
		r.SetHeader("Accept", "*/*")
		if q := FilterParams(params); len(q) > 0 {
			r.SetQueryParamsFromValues(q)
		}
	}, opts)
}

// Upload sends a multipart form with the file under fileField plus plain fields.
func (c *Client) Upload(ctx context.Context, path, fileField, filename string, file io.Reader, fields map[string]string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, func(r *resty.Request) {
		r.SetFileReader(fileField, filename, file)
		if len(fields) > 0 {
			r.SetFormData(fields)
		}
	}, opts)
}

func jsonBody(body any) func(*resty.Request) {
	return func(r *resty.Request) {
		if body != nil {
			r.SetHeader("Content-Type", "application/json").SetBody(body)
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, setup func(*resty.Request), opts []RequestOption) (*Response, error) {
	o := requestOptions{tokenKey: TokenKey}
	for _, opt := range opts {
		opt(&o)
	}

	req := c.http.R().SetContext(withTokenKey(ctx, o.tokenKey))
	if setup != nil {
		setup(req)
	}

	resp, err := req.Execute(method, path)

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil, apiErr
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		// response hooks always run, this only guards against a hook being skipped
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}
	return &Response{Response: resp}, nil
}

type tokenKeyCtx struct{}

func withTokenKey(ctx context.Context, key string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tokenKeyCtx{}, key)
}

func tokenKeyFrom(ctx context.Context) string {
	if ctx != nil {
		if key, ok := ctx.Value(tokenKeyCtx{}).(string); ok && key != "" {
			return key
		}
	}
	return TokenKey
}
