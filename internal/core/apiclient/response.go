package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Response is the backend response passed through unchanged; callers pick the
// payload out themselves.
type Response struct {
	*resty.Response
}

// Data returns the raw response body.
func (r *Response) Data() json.RawMessage {
	return json.RawMessage(r.Body())
}

// Decode unmarshals the whole body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body(), v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// DecodeData unmarshals the "data" member of a {success, data, message}
// envelope into v, or the whole body when there is no such member.
func (r *Response) DecodeData(v any) error {
	body := bytes.TrimSpace(r.Body())
	if len(body) > 0 && body[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err == nil {
			if data, ok := envelope["data"]; ok {
				if err := json.Unmarshal(data, v); err != nil {
					return fmt.Errorf("failed to decode response data: %w", err)
				}
				return nil
			}
		}
	}
	return r.Decode(v)
}

// ContentType returns the response Content-Type header.
func (r *Response) ContentType() string {
	return r.Header().Get("Content-Type")
}
