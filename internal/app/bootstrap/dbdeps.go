// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/contactform"
	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
	"github.com/dalemusser/portfolio/internal/app/system/ratelimit"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/app/system/sitemetrics"
	"github.com/dalemusser/portfolio/internal/app/system/telemetry"
	"github.com/dalemusser/portfolio/internal/app/system/workers"
	"github.com/dalemusser/portfolio/internal/domain/models"
)

// DBDeps holds the back-end dependencies for the app. The portfolio has no
// database: its backends are the loaded content, the in-memory contact form
// registry and the outbound form relay.
type DBDeps struct {
	Site   *models.Site
	Posts  *postsstore.Store
	Routes *routeguard.Config

	Relay   *formrelay.Client
	Forms   *contactform.Registry
	Limiter *ratelimit.Limiter
	Cleanup *workers.FormCleanup

	Metrics *sitemetrics.Metrics
	Tracing telemetry.ShutdownFunc
}
