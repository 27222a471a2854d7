package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/portfolio/internal/app/features/health"
	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

type response struct {
	Status  string            `json:"status"`
	Person  string            `json:"person"`
	Posts   map[string]int    `json:"posts"`
	Routes  []string          `json:"routes"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func newTestHandler(t *testing.T, checks map[string]health.Check) *health.Handler {
	t.Helper()
	posts, err := postsstore.New("")
	if err != nil {
		t.Fatalf("load posts: %v", err)
	}
	site := &models.Site{Person: models.Person{FirstName: "Ada", LastName: "Lovelace"}}
	routes := routeguard.NewConfig(map[string]bool{"/": true, "/blog": true, "/gallery": false}, []string{"/blog"})
	return health.NewHandler(site, posts, routes, checks, zap.NewNop())
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", ct)
	}
	var resp response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec, resp
}

func TestServe_OK(t *testing.T) {
	rec, resp := serve(t, newTestHandler(t, nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	want := response{
		Status: "ok",
		Person: "Ada Lovelace",
		Posts:  map[string]int{"blog": 2, "work": 2},
		Routes: []string{"/", "/blog"},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestServe_FailedCheck(t *testing.T) {
	checks := map[string]health.Check{
		"static": func(ctx context.Context) error { return errors.New("public dir missing") },
		"ok":     func(ctx context.Context) error { return nil },
	}
	rec, resp := serve(t, newTestHandler(t, checks))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Status != "error" || resp.Errors["static"] != "public dir missing" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if _, ok := resp.Errors["ok"]; ok {
		t.Error("passing check reported as error")
	}
}

func TestServe_ContentMissing(t *testing.T) {
	h := health.NewHandler(nil, nil, nil, nil, zap.NewNop())
	rec, resp := serve(t, h)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Status != "error" || len(resp.Routes) != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRoutes_HeadMatchesGet(t *testing.T) {
	failing := map[string]health.Check{"disk": func(context.Context) error { return errors.New("gone") }}
	r := health.Routes(newTestHandler(t, failing))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("HEAD status: got %d, want 503", rec.Code)
	}
}
