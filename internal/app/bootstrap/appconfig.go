// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig carries what is specific to the portfolio: where content lives,
// the visitor cookie, the contact form relay and its limits.
type AppConfig struct {
	// Content
	ContentPath string // YAML content file (blank uses the built-in content)
	PostsPath   string // directory with blog/ and work/ markdown (blank uses built-in posts)
	PublicDir   string // static assets served at /static and /images

	// Visitor session cookie
	SessionKey    string        // Secret key for signing the cookie (must be strong in production)
	SessionName   string        // Cookie name (default: portfolio-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Contact form relay
	FormRelayURL     string        // e.g. https://api.web3forms.com/submit
	FormAccessKey    string        // relay access key
	FormFromName     string        // from_name sent with every message
	FormRelayTimeout time.Duration // bound on one relay call

	// Contact form limits
	ContactRateLimit    int           // submissions per window per client IP
	ContactRateWindow   time.Duration // rate limit window
	FormStateTTL        time.Duration // idle forms older than this are dropped
	FormCleanupInterval time.Duration // how often idle forms are swept

	// Public URL of the site, used for canonical links
	BaseURL string

	// TrustProxy takes the client address from X-Forwarded-For or X-Real-IP.
	// Enable it only when a reverse proxy that sets those headers is the
	// sole way in; otherwise any client can pick its own rate limit key.
	TrustProxy bool

	// OTLP/HTTP endpoint for traces (blank disables tracing)
	OtelEndpoint string
}
