// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/portfolio/internal/app/resources"
	"github.com/dalemusser/portfolio/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backends are
// built but before the HTTP handler is. It registers the shared templates,
// applies configured timeouts and starts the form cleanup worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Relay: appCfg.FormRelayTimeout,
	})

	if deps.Cleanup != nil {
		deps.Cleanup.Start()
	}
	return nil
}
