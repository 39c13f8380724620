package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// DispatchPoster forwards routed decisions to the notification dispatcher.
type DispatchPoster interface {
	PostDecision(ctx context.Context, payload any, requestID string) error
}

// DispatchClient posts JSON payloads to the dispatcher worker.
type DispatchClient struct {
	client  *http.Client
	baseURL string
}

// NewDispatchClient builds a dispatcher client, auto-configuring an ID token
// client for service-to-service calls when none is supplied.
func NewDispatchClient(client *http.Client, baseURL string) *DispatchClient {
	if baseURL == "" {
		panic("dispatcher baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), baseURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &DispatchClient{client: client, baseURL: baseURL}
}

// PostDecision posts the decision payload to the dispatcher's notify endpoint.
func (c *DispatchClient) PostDecision(ctx context.Context, payload any, requestID string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal decision payload: %w", err)
	}

	url := c.baseURL + "/notify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatcher request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("dispatcher error: %s", extractDispatchError(resp.Body))
	}
	return nil
}

func extractDispatchError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "dispatcher returned an error"
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}

var _ DispatchPoster = (*DispatchClient)(nil)
