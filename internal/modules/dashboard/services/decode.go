package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
)

// unwrap returns the payload of the response envelope, descending into key
// when the payload is an object that carries it
func unwrap(resp *apiclient.Response, key string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := resp.DecodeData(&raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if key == "" || len(raw) == 0 || raw[0] != '{' {
		return raw, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if inner, ok := obj[key]; ok {
		return inner, nil
	}
	return raw, nil
}

// decodeList accepts both a bare array and {key: [...]}
func decodeList[T any](resp *apiclient.Response, key string) ([]T, error) {
	raw, err := unwrap(resp, key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("response has no %s list", key)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return out, nil
}

// decodeObject accepts both the object itself and {key: {...}}
func decodeObject[T any](resp *apiclient.Response, key string) (*T, error) {
	raw, err := unwrap(resp, key)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return &out, nil
}
