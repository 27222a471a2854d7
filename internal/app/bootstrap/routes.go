// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"path/filepath"

	aboutfeature "github.com/dalemusser/portfolio/internal/app/features/about"
	contactfeature "github.com/dalemusser/portfolio/internal/app/features/contact"
	errorsfeature "github.com/dalemusser/portfolio/internal/app/features/errors"
	galleryfeature "github.com/dalemusser/portfolio/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/portfolio/internal/app/features/health"
	homefeature "github.com/dalemusser/portfolio/internal/app/features/home"
	postsfeature "github.com/dalemusser/portfolio/internal/app/features/posts"
	"github.com/dalemusser/portfolio/internal/app/resources"
	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/app/system/sitemetrics"
	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/portfolio/internal/app/system/visitor"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup and the Startup hook
// have completed. The router has two halves:
//   - infrastructure (/health, /metrics, /static, /images) served as is
//   - the site (pages and /contact) behind the visitor session and CSRF
//     protection, with every page behind the route guard
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	visitors, err := visitor.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("visitor session manager init failed", zap.Error(err))
		return nil, err
	}

	// Dev mode enables template reloading for faster iteration.
	if err := BootTemplates(coreCfg.Env == "dev", logger); err != nil {
		return nil, err
	}

	view := &viewdata.Env{
		Site:    deps.Site,
		Routes:  deps.Routes,
		Forms:   deps.Forms,
		BaseURL: appCfg.BaseURL,
	}

	r := newRouter(routerDeps{
		view:       view,
		deps:       deps,
		publicDir:  appCfg.PublicDir,
		visitors:   visitors,
		csrf:       csrfProtect(appCfg.SessionKey, secure, logger),
		trustProxy: appCfg.TrustProxy,
	}, logger)

	return otelhttp.NewHandler(r, serviceName), nil
}

// routerDeps is what newRouter needs beyond DBDeps.
type routerDeps struct {
	view       *viewdata.Env
	deps       DBDeps
	publicDir  string
	visitors   *visitor.Manager
	csrf       func(http.Handler) http.Handler
	trustProxy bool
}

func newRouter(rd routerDeps, logger *zap.Logger) chi.Router {
	deps := rd.deps

	errorsHandler := errorsfeature.NewHandler(rd.view, logger)
	errLog := errorsfeature.NewErrorLogger(logger, errorsHandler)

	r := chi.NewRouter()
	if rd.trustProxy {
		// RemoteAddr becomes the forwarded client address, which is what the
		// contact rate limit keys on.
		r.Use(middleware.RealIP)
	}
	r.Use(errLog.Recover)
	r.Use(middleware.StripSlashes)
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Site, deps.Posts, deps.Routes, map[string]healthfeature.Check{
		"public_dir": publicDirCheck(rd.publicDir),
	}, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", deps.Metrics.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	mountAssets(r, rd.publicDir)

	r.Group(func(site chi.Router) {
		site.Use(rd.visitors.LoadVisitor)
		site.Use(rd.csrf)

		contactHandler := contactfeature.NewHandler(deps.Forms, deps.Relay, deps.Limiter, deps.Metrics, rd.view.Deploy, logger)
		site.Mount("/contact", contactfeature.Routes(contactHandler))

		mountPages(site, rd.view, deps.Posts, errorsHandler, deps.Metrics, logger)
	})

	return r
}

// mountPages registers every content page behind the route guard. A page the
// guard rejects, and any path no page claims, gets the not-found view.
func mountPages(r chi.Router, view *viewdata.Env, posts *postsstore.Store, errs *errorsfeature.Handler, metrics *sitemetrics.Metrics, logger *zap.Logger) {
	guard := &routeguard.Guard{
		Config:   view.Routes,
		NotFound: http.HandlerFunc(errs.NotFound),
		Log:      logger,
		OnCheck:  func(a routeguard.Access) { metrics.Route(a.Enabled) },
	}

	r.Group(func(pages chi.Router) {
		pages.Use(guard.Middleware)

		homeHandler := homefeature.NewHandler(view, posts, logger)
		pages.Mount("/", homefeature.Routes(homeHandler))

		aboutHandler := aboutfeature.NewHandler(view, logger)
		pages.Mount("/about", aboutfeature.Routes(aboutHandler))

		workHandler := postsfeature.NewHandler(view, posts, models.PostKindWork, errs.NotFound, logger)
		pages.Mount("/work", postsfeature.Routes(workHandler))

		blogHandler := postsfeature.NewHandler(view, posts, models.PostKindBlog, errs.NotFound, logger)
		pages.Mount("/blog", postsfeature.Routes(blogHandler))

		galleryHandler := galleryfeature.NewHandler(view, logger)
		pages.Mount("/gallery", galleryfeature.Routes(galleryHandler))
	})
}

func mountAssets(r chi.Router, publicDir string) {
	r.Handle("/static/*", fileserver.Handler("/static", filepath.Join(publicDir, "static")))
	r.Handle("/images/*", fileserver.Handler("/images", filepath.Join(publicDir, "images")))
}

// NewExportHandler builds the page router the static exporter renders
// through. It has no sessions, CSRF or contact endpoints; view.Static makes
// the contact form post straight to the relay instead.
func NewExportHandler(view *viewdata.Env, posts *postsstore.Store, logger *zap.Logger) http.Handler {
	errorsHandler := errorsfeature.NewHandler(view, logger)

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.NotFound(errorsHandler.NotFound)
	mountPages(r, view, posts, errorsHandler, nil, logger)
	return r
}

// BootTemplates registers the shared templates, then initializes and boots
// the template engine once.
func BootTemplates(dev bool, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	eng := templates.New(dev)
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return err
	}
	templates.UseEngine(eng, logger)
	return nil
}

// csrfProtect guards every unsafe request under the site group. The token
// key is derived from the session key so one secret configures both.
func csrfProtect(sessionKey string, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.CookieName("portfolio-csrf"),
		csrf.FieldName("csrf_token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			http.Error(w, "Forbidden - invalid or missing form token", http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		// Outside production the site is served over plain HTTP, where the
		// strict TLS referer check cannot pass.
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
