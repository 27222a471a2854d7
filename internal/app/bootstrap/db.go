// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	contentstore "github.com/dalemusser/portfolio/internal/app/store/content"
	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/contactform"
	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
	"github.com/dalemusser/portfolio/internal/app/system/ratelimit"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/app/system/sitemetrics"
	"github.com/dalemusser/portfolio/internal/app/system/telemetry"
	"github.com/dalemusser/portfolio/internal/app/system/workers"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// serviceName identifies this app in traces.
const serviceName = "portfolio"

// defaultDynamicRoutes is used when the content file lists none.
var defaultDynamicRoutes = []string{"/blog", "/work"}

// ConnectDB builds the app's backends: it loads content and posts, builds the
// route table, and creates the relay client and in-memory form registry.
// Tracing is set up first so the relay client's transport is instrumented.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	tracing, err := telemetry.Setup(ctx, serviceName, appCfg.OtelEndpoint)
	if err != nil {
		logger.Error("telemetry setup failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("telemetry: %w", err)
	}

	site, posts, routes, err := LoadContent(appCfg.ContentPath, appCfg.PostsPath)
	if err != nil {
		logger.Error("content load failed", zap.Error(err))
		_ = tracing(ctx)
		return DBDeps{}, err
	}
	logger.Info("content loaded",
		zap.String("person", site.Person.DisplayName()),
		zap.Int("work_posts", posts.Count(models.PostKindWork)),
		zap.Int("blog_posts", posts.Count(models.PostKindBlog)),
		zap.Strings("enabled_routes", routes.EnabledPaths()))

	forms := contactform.NewRegistry()

	return DBDeps{
		Site:    site,
		Posts:   posts,
		Routes:  routes,
		Relay:   formrelay.New(appCfg.FormRelayURL, appCfg.FormAccessKey, appCfg.FormFromName, nil),
		Forms:   forms,
		Limiter: ratelimit.New(appCfg.ContactRateLimit, appCfg.ContactRateWindow),
		Cleanup: workers.NewFormCleanup(forms, logger, appCfg.FormCleanupInterval, appCfg.FormStateTTL),
		Metrics: sitemetrics.New(),
		Tracing: tracing,
	}, nil
}

// LoadContent loads the site content and posts and builds the route table.
// Blank paths use the content built into the binary. It is shared by the
// server and the static exporter.
func LoadContent(contentPath, postsPath string) (*models.Site, *postsstore.Store, *routeguard.Config, error) {
	site, err := contentstore.Load(contentPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load content: %w", err)
	}
	posts, err := postsstore.New(postsPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load posts: %w", err)
	}

	prefixes := site.DynamicRoutes
	if len(prefixes) == 0 {
		prefixes = defaultDynamicRoutes
	}
	return site, posts, routeguard.NewConfig(site.Routes, prefixes), nil
}

// EnsureSchema cross-checks the content against the route table. A dynamic
// prefix with no route entry would hide every post under it, so it is an
// error; a menu page without an entry is only logged, since it just drops
// out of the menu.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return checkRoutes(deps.Site, logger)
}

func checkRoutes(site *models.Site, logger *zap.Logger) error {
	prefixes := site.DynamicRoutes
	if len(prefixes) == 0 {
		prefixes = defaultDynamicRoutes
	}
	for _, prefix := range prefixes {
		if _, ok := site.Routes[prefix]; !ok {
			return fmt.Errorf("dynamic route %q has no entry in routes", prefix)
		}
	}

	for _, p := range site.NavPages() {
		if p.Path == "" {
			continue
		}
		if _, ok := site.Routes[p.Path]; !ok {
			logger.Warn("page has no route entry and will not be served",
				zap.String("page", p.Label),
				zap.String("path", p.Path))
		}
	}
	return nil
}
