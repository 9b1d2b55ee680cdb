// Package client implements the session side of the profile flow: the
// API client, the session state and the sign-in-and-sync orchestration.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// API is a thin client for the author endpoints.
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CreateAuthor posts a new author record. The assertion travels along as
// a bearer token so the server can cross-check the identity.
func (a *API) CreateAuthor(ctx context.Context, assertion, name, email, summary string) error {
	body := map[string]string{
		"name":    name,
		"email":   email,
		"summary": summary,
	}

	headers := map[string]string{}
	if assertion != "" {
		headers["Authorization"] = "Bearer " + assertion
	}

	_, err := a.do(ctx, http.MethodPost, "/catalog/authors", body, headers)
	return err
}

// FetchSummary retrieves the stored summary for an email.
func (a *API) FetchSummary(ctx context.Context, email string) (string, error) {
	data, err := a.do(ctx, http.MethodPost, "/catalog/authors/summary/lookup",
		map[string]string{"email": email}, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode summary response: %w", err)
	}
	return resp.Summary, nil
}

// UpdateSummary replaces the stored summary for an email and returns the
// value the server persisted.
func (a *API) UpdateSummary(ctx context.Context, email, summary string) (string, error) {
	data, err := a.do(ctx, http.MethodPut, "/catalog/authors/summary",
		map[string]string{"email": email, "summary": summary}, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode updated author: %w", err)
	}
	return resp.Summary, nil
}

func (a *API) do(ctx context.Context, method, path string, body interface{}, headers map[string]string) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", res.StatusCode, err)
	}

	if !env.Success {
		if env.Error != nil {
			return nil, env.Error
		}
		return nil, fmt.Errorf("request failed with status %d", res.StatusCode)
	}

	return env.Data, nil
}
