package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_ROUTE", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("PHONE_REGION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.JWTSecret != "dev-secret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "dev-secret")
	}
	if cfg.PhoneRegion != "SA" {
		t.Errorf("PhoneRegion = %q, want %q", cfg.PhoneRegion, "SA")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 24*time.Hour)
	}
	if cfg.RateLimitRoute.Requests != 30 || cfg.RateLimitRoute.Interval != time.Minute {
		t.Errorf("RateLimitRoute = %+v, want 30/min", cfg.RateLimitRoute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/leadrouter")
	t.Setenv("JWT_SECRET", "topsecret")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_ROUTE", "5/sec")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("DISPATCH_WORKER_URL", "https://dispatch.internal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://localhost/leadrouter" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.TokenTTL)
	}
	if cfg.RateLimitRoute.Requests != 5 || cfg.RateLimitRoute.Interval != time.Second {
		t.Errorf("RateLimitRoute = %+v, want 5/sec", cfg.RateLimitRoute)
	}
	if cfg.DispatchWorkerURL != "https://dispatch.internal" {
		t.Errorf("DispatchWorkerURL = %q", cfg.DispatchWorkerURL)
	}
}

func TestLoadInvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_ROUTE", "banana")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed rate limit")
	}
}

func TestParseRateLimit(t *testing.T) {
	tests := []struct {
		input    string
		requests int
		interval time.Duration
		wantErr  bool
	}{
		{"10/min", 10, time.Minute, false},
		{"1/second", 1, time.Second, false},
		{"100/h", 100, time.Hour, false},
		{"20 / min", 20, time.Minute, false},
		{"0/min", 0, 0, true},
		{"-5/min", 0, 0, true},
		{"ten/min", 0, 0, true},
		{"10/fortnight", 0, 0, true},
		{"10", 0, 0, true},
	}

	for _, tc := range tests {
		got, err := parseRateLimit(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseRateLimit(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseRateLimit(%q) returned error: %v", tc.input, err)
			continue
		}
		if got.Requests != tc.requests || got.Interval != tc.interval {
			t.Errorf("parseRateLimit(%q) = %+v, want %d/%v", tc.input, got, tc.requests, tc.interval)
		}
	}
}

func TestParseDuration(t *testing.T) {
	if got := parseDuration("30m"); got != 30*time.Minute {
		t.Errorf("parseDuration(30m) = %v", got)
	}
	if got := parseDuration("not-a-duration"); got != 24*time.Hour {
		t.Errorf("parseDuration fallback = %v, want 24h", got)
	}
}
