package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		PublicDir:           "public",
		SessionKey:          strings.Repeat("k", 40),
		SessionMaxAge:       time.Hour,
		FormRelayURL:        formrelay.DefaultURL,
		FormAccessKey:       "key",
		FormFromName:        formrelay.DefaultFromName,
		FormRelayTimeout:    10 * time.Second,
		ContactRateLimit:    5,
		ContactRateWindow:   10 * time.Minute,
		FormStateTTL:        30 * time.Minute,
		FormCleanupInterval: 5 * time.Minute,
		BaseURL:             "http://localhost:8080",
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", "dev", func(*AppConfig) {}, ""},
		{"empty access key only warns", "dev", func(c *AppConfig) { c.FormAccessKey = "" }, ""},
		{"empty session key", "dev", func(c *AppConfig) { c.SessionKey = "" }, "session_key is required"},
		{"dev key in prod", "prod", func(c *AppConfig) { c.SessionKey = devSessionKey }, "must be changed"},
		{"dev key in dev", "dev", func(c *AppConfig) { c.SessionKey = devSessionKey }, ""},
		{"relative relay url", "dev", func(c *AppConfig) { c.FormRelayURL = "/submit" }, "form_relay_url"},
		{"bad base url", "dev", func(c *AppConfig) { c.BaseURL = "localhost" }, "base_url"},
		{"zero rate limit", "dev", func(c *AppConfig) { c.ContactRateLimit = 0 }, "contact_rate_limit"},
		{"zero ttl", "dev", func(c *AppConfig) { c.FormStateTTL = 0 }, "form_state_ttl"},
		{"bad otel endpoint", "dev", func(c *AppConfig) { c.OtelEndpoint = "collector:4318" }, "otel_endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(tt.env, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAppConfigKeys_TrustProxyOffByDefault(t *testing.T) {
	for _, k := range appConfigKeys {
		if k.Name != "trust_proxy" {
			continue
		}
		if k.Default != false {
			t.Errorf("trust_proxy default: got %v, want false", k.Default)
		}
		return
	}
	t.Fatal("trust_proxy key not registered")
}
