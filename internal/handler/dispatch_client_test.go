package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDispatchClientPostDecision(t *testing.T) {
	var gotPath, gotRequestID string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewDispatchClient(srv.Client(), srv.URL)
	payload := map[string]any{"lead_id": "abc", "priority": "critical"}
	if err := client.PostDecision(context.Background(), payload, "req-123"); err != nil {
		t.Fatalf("PostDecision returned error: %v", err)
	}

	if gotPath != "/notify" {
		t.Errorf("path = %q, want /notify", gotPath)
	}
	if gotRequestID != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", gotRequestID)
	}
	if gotPayload["priority"] != "critical" {
		t.Errorf("payload = %v, want priority critical", gotPayload)
	}
}

func TestDispatchClientErrorResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"structured error", `{"error": "queue is full"}`, "queue is full"},
		{"plain text error", "upstream unavailable", "upstream unavailable"},
		{"empty body", "", "dispatcher returned an error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				if tc.body != "" {
					w.Write([]byte(tc.body))
				}
			}))
			defer srv.Close()

			client := NewDispatchClient(srv.Client(), srv.URL)
			err := client.PostDecision(context.Background(), map[string]any{}, "")
			if err == nil {
				t.Fatal("expected error for 502 response")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want to contain %q", err, tc.want)
			}
		})
	}
}

func TestDispatchClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewDispatchClient(srv.Client(), srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := client.PostDecision(ctx, map[string]any{}, ""); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDispatchClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notify" {
			t.Errorf("path = %q, want /notify", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewDispatchClient(srv.Client(), srv.URL+"/")
	if err := client.PostDecision(context.Background(), nil, ""); err != nil {
		t.Fatalf("PostDecision returned error: %v", err)
	}
}
