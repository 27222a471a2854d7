package health

import (
	"context"
	"encoding/json"
	"net/http"

	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/app/system/timeouts"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"go.uber.org/zap"
)

// Check is an optional readiness check run on every health request.
type Check func(ctx context.Context) error

// Handler holds dependencies needed for health checks.
type Handler struct {
	Site   *models.Site
	Posts  *postsstore.Store
	Routes *routeguard.Config
	Checks map[string]Check
	Log    *zap.Logger
}

// NewHandler constructs a health Handler over the loaded content.
func NewHandler(site *models.Site, posts *postsstore.Store, routes *routeguard.Config, checks map[string]Check, logger *zap.Logger) *Handler {
	return &Handler{
		Site:   site,
		Posts:  posts,
		Routes: routes,
		Checks: checks,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string            `json:"status"`
	Person  string            `json:"person,omitempty"`
	Posts   map[string]int    `json:"posts,omitempty"`
	Routes  []string          `json:"routes"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "person":"Selene Yu", "posts":{"blog":2,"work":2}, "routes":["/","/about",…] }
//
// When content is missing or a check fails: 503 and
//
//	{ "status":"error", "message":"…", "errors":{"static":"…"} }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Health())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		Routes: h.Routes.EnabledPaths(),
	}
	if resp.Routes == nil {
		resp.Routes = []string{}
	}

	if h.Site == nil || h.Posts == nil {
		h.Log.Error("health-check: content not loaded")
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Message = "Content not loaded"
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	resp.Person = h.Site.Person.DisplayName()
	resp.Posts = make(map[string]int, len(models.PostKinds))
	for _, k := range models.PostKinds {
		resp.Posts[string(k)] = h.Posts.Count(k)
	}

	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			h.Log.Error("health-check failed", zap.String("check", name), zap.Error(err))
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[name] = err.Error()
		}
	}
	if len(resp.Errors) > 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Message = "Checks failed"
	}

	_ = json.NewEncoder(w).Encode(resp)
}
