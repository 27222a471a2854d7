// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
	"github.com/dalemusser/portfolio/internal/app/system/timeouts"
	"github.com/dalemusser/portfolio/internal/app/system/visitor"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// devSessionKey is the default signing key. It is rejected in production.
const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the portfolio.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: content_path, form_access_key, etc.
//   - Environment variables: PORTFOLIO_CONTENT_PATH, PORTFOLIO_FORM_ACCESS_KEY, etc.
//   - Command-line flags: --content_path, --form_access_key, etc.
var appConfigKeys = []config.AppKey{
	// Content
	{Name: "content_path", Default: "", Desc: "YAML content file (blank uses built-in content)"},
	{Name: "posts_path", Default: "", Desc: "Directory with blog/ and work/ markdown posts (blank uses built-in posts)"},
	{Name: "public_dir", Default: "public", Desc: "Static assets directory"},

	// Visitor session
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: visitor.DefaultSessionName, Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime (e.g., 720h)"},

	// Contact form relay
	{Name: "form_relay_url", Default: formrelay.DefaultURL, Desc: "Contact form relay endpoint"},
	{Name: "form_access_key", Default: "", Desc: "Contact form relay access key"},
	{Name: "form_from_name", Default: formrelay.DefaultFromName, Desc: "Sender name on relayed messages"},
	{Name: "form_relay_timeout", Default: "10s", Desc: "Timeout for one relay request"},

	// Contact form limits
	{Name: "contact_rate_limit", Default: 5, Desc: "Contact submissions allowed per client IP per window"},
	{Name: "contact_rate_window", Default: "10m", Desc: "Contact rate limit window"},
	{Name: "form_state_ttl", Default: "30m", Desc: "Drop contact forms idle longer than this"},
	{Name: "form_cleanup_interval", Default: "5m", Desc: "How often idle contact forms are swept"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public URL of the site (canonical links)"},
	{Name: "trust_proxy", Default: false, Desc: "Read the client IP from X-Forwarded-For/X-Real-IP (enable only behind a reverse proxy)"},
	{Name: "otel_endpoint", Default: "", Desc: "OTLP/HTTP trace endpoint (blank disables tracing)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PORTFOLIO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PORTFOLIO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		ContentPath: appValues.String("content_path"),
		PostsPath:   appValues.String("posts_path"),
		PublicDir:   appValues.String("public_dir"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		FormRelayURL:     appValues.String("form_relay_url"),
		FormAccessKey:    appValues.String("form_access_key"),
		FormFromName:     appValues.String("form_from_name"),
		FormRelayTimeout: appValues.Duration("form_relay_timeout", timeouts.DefaultRelay),

		ContactRateLimit:    appValues.Int("contact_rate_limit"),
		ContactRateWindow:   appValues.Duration("contact_rate_window", 10*time.Minute),
		FormStateTTL:        appValues.Duration("form_state_ttl", 30*time.Minute),
		FormCleanupInterval: appValues.Duration("form_cleanup_interval", 5*time.Minute),

		BaseURL:      appValues.String("base_url"),
		TrustProxy:   appValues.Bool("trust_proxy"),
		OtelEndpoint: appValues.String("otel_endpoint"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	return validateAppConfig(coreCfg.Env, appCfg, logger)
}

func validateAppConfig(env string, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	if env == "prod" && appCfg.SessionKey == devSessionKey {
		return fmt.Errorf("session_key must be changed in production")
	}
	if !urlutil.IsValidAbsHTTPURL(appCfg.FormRelayURL) {
		return fmt.Errorf("form_relay_url must be an absolute http(s) URL, got %q", appCfg.FormRelayURL)
	}
	if appCfg.BaseURL != "" && !urlutil.IsValidAbsHTTPURL(appCfg.BaseURL) {
		return fmt.Errorf("base_url must be an absolute http(s) URL, got %q", appCfg.BaseURL)
	}
	if appCfg.ContactRateLimit <= 0 {
		return fmt.Errorf("contact_rate_limit must be positive, got %d", appCfg.ContactRateLimit)
	}
	for name, d := range map[string]time.Duration{
		"contact_rate_window":   appCfg.ContactRateWindow,
		"form_relay_timeout":    appCfg.FormRelayTimeout,
		"form_state_ttl":        appCfg.FormStateTTL,
		"form_cleanup_interval": appCfg.FormCleanupInterval,
		"session_max_age":       appCfg.SessionMaxAge,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if appCfg.OtelEndpoint != "" && !urlutil.IsValidAbsHTTPURL(appCfg.OtelEndpoint) {
		return fmt.Errorf("otel_endpoint must be an absolute http(s) URL, got %q", appCfg.OtelEndpoint)
	}

	if appCfg.FormAccessKey == "" {
		logger.Warn("form_access_key is empty; contact form submissions will be rejected by the relay")
	}
	return nil
}
