package home

import (
	"net/http"

	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Number of posts of each kind shown on the landing page.
const (
	latestWork = 3
	latestBlog = 2
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	View  *viewdata.Env
	Posts *postsstore.Store
	Log   *zap.Logger
}

func NewHandler(view *viewdata.Env, posts *postsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		View:  view,
		Posts: posts,
		Log:   logger,
	}
}

type homeData struct {
	viewdata.BaseVM
	Home         models.Home
	AboutHref    string
	FeaturedHref string
	Spotlight    []viewdata.PostCard // newest work post
	MoreWork     []viewdata.PostCard
	Blog         []viewdata.PostCard
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "home", h.buildData(r))
}

func (h *Handler) buildData(r *http.Request) homeData {
	site := h.View.Site
	base := h.View.Deploy.BasePath

	data := homeData{
		BaseVM:       viewdata.NewBaseVM(r, h.View, site.Home.Title, site.Home.Description, "/"),
		Home:         site.Home,
		FeaturedHref: h.View.Deploy.Link(site.Home.Featured.Href),
	}
	if h.View.Routes.Enabled(site.About.Path) {
		data.AboutHref = h.View.Deploy.Link(site.About.Path)
	}

	if h.View.Routes.Enabled("/work") {
		work := viewdata.Cards(base, h.Posts.Latest(models.PostKindWork, latestWork))
		if len(work) > 0 {
			data.Spotlight, data.MoreWork = work[:1], work[1:]
		}
	}
	if h.View.Routes.Enabled("/blog") {
		data.Blog = viewdata.Cards(base, h.Posts.Latest(models.PostKindBlog, latestBlog))
	}
	return data
}
