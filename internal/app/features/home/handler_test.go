package home_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/dalemusser/portfolio/internal/app/features/home"
	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/portfolio/internal/testutil"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	if err := testutil.BootTemplates(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestHandler(t *testing.T, routes map[string]bool) *home.Handler {
	t.Helper()
	posts, err := postsstore.New("")
	if err != nil {
		t.Fatalf("load posts: %v", err)
	}
	site := &models.Site{Routes: routes}
	site.Home.Path, site.Home.Label = "/", "Home"
	site.About.Path, site.About.Label = "/about", "About"
	view := &viewdata.Env{
		Site:   site,
		Routes: routeguard.NewConfig(routes, []string{"/blog", "/work"}),
	}
	return home.NewHandler(view, posts, zap.NewNop())
}

func TestNewHandler(t *testing.T) {
	h := newTestHandler(t, map[string]bool{"/": true})
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestServeRoot(t *testing.T) {
	handler := newTestHandler(t, map[string]bool{"/": true, "/work": true, "/blog": true})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeRoot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(strings.TrimSpace(body), "<!DOCTYPE html>") {
		t.Errorf("expected a full page, got:\n%s", body)
	}
	if !strings.Contains(body, `class="post-card"`) {
		t.Error("home page has no post cards")
	}
}

func TestBuildData_SectionsFollowRoutes(t *testing.T) {
	tests := []struct {
		name      string
		routes    map[string]bool
		spotlight int
		more      int
		blog      int
		about     string
	}{
		{"all enabled", map[string]bool{"/": true, "/about": true, "/work": true, "/blog": true}, 1, 1, 2, "/about"},
		{"blog disabled", map[string]bool{"/": true, "/work": true, "/blog": false}, 1, 1, 0, ""},
		{"work disabled", map[string]bool{"/": true, "/blog": true}, 0, 0, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.routes)
			spot, more, blog, about := h.BuildDataForTest(httptest.NewRequest("GET", "/", nil))
			if spot != tt.spotlight || more != tt.more || blog != tt.blog || about != tt.about {
				t.Errorf("got spotlight=%d more=%d blog=%d about=%q", spot, more, blog, about)
			}
		})
	}
}
