package apiclient

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// attachToken is the request interceptor: the token is read from the token
// source on every request and sent as a bearer credential when present.
func (c *Client) attachToken(_ *resty.Client, r *resty.Request) error {
	r.SetHeader("X-Request-ID", uuid.NewString())

	ctx := r.Context()
	key := tokenKeyFrom(ctx)

	token, err := c.tokens.Token(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if token == "" && key == AdminTokenKey {
		if token, err = c.tokens.Token(ctx, TokenKey); err != nil {
			return fmt.Errorf("failed to read %s: %w", TokenKey, err)
		}
	}

	if token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) logResponse(_ *resty.Client, resp *resty.Response) error {
	event := c.logger.Debug()
	if resp.IsError() {
		event = c.logger.Warn()
	}
	event.
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Str("request_id", resp.Request.Header.Get("X-Request-ID")).
		Msg("api response")
	return nil
}

// rejectErrors is the response interceptor. It never swallows a rejection: side
// effects are delegated to auth event subscribers and the error is returned as is.
func (c *Client) rejectErrors(_ *resty.Client, resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}

	apiErr := newAPIError(resp.StatusCode(), resp.Body())
	apiErr.Method = resp.Request.Method
	apiErr.URL = resp.Request.URL

	if event, ok := authEventFor(apiErr); ok {
		c.logger.Warn().
			Str("reason", string(event.Reason)).
			Int("status", event.Status).
			Str("message", event.Message).
			Msg("auth failure")
		c.events.Publish(event)
	}
	return apiErr
}
