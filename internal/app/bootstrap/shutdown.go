// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/portfolio/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background workers and flushes pending traces.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Cleanup != nil {
		deps.Cleanup.Stop()
	}
	if deps.Limiter != nil {
		deps.Limiter.Stop()
	}

	if deps.Tracing != nil {
		ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Shutdown(), logger, "telemetry shutdown")
		defer cancel()
		logger.Info("flushing traces")
		if err := deps.Tracing(ctx); err != nil {
			logger.Error("telemetry shutdown failed", zap.Error(err))
			return err
		}
	}
	return nil
}
