package apiclient

import (
	"fmt"
	"net/url"
	"time"
)

// FilterParams serializes query parameters, omitting keys whose value is nil,
// an empty string, a nil pointer or a zero time. Slices become repeated keys.
func FilterParams(params map[string]any) url.Values {
	values := url.Values{}
	for key, raw := range params {
		switch v := raw.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
			values.Set(key, v)
		case *string:
			if v == nil || *v == "" {
				continue
			}
			values.Set(key, *v)
		case *int:
			if v == nil {
				continue
			}
			values.Set(key, fmt.Sprint(*v))
		case *bool:
			if v == nil {
				continue
			}
			values.Set(key, fmt.Sprint(*v))
		case time.Time:
			if v.IsZero() {
				continue
			}
			values.Set(key, v.Format(time.RFC3339))
		case *time.Time:
			if v == nil || v.IsZero() {
				continue
			}
			values.Set(key, v.Format(time.RFC3339))
		case []string:
			for _, item := range v {
				if item != "" {
					values.Add(key, item)
				}
			}
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values
}
