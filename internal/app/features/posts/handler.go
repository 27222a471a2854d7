// Package posts serves the blog and work sections. One Handler is mounted
// per kind; both share the same templates.
package posts

import (
	"errors"
	"net/http"

	postsstore "github.com/dalemusser/portfolio/internal/app/store/posts"
	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// relatedCount is how many other posts are suggested under a post.
const relatedCount = 2

type Handler struct {
	View  *viewdata.Env
	Posts *postsstore.Store
	Kind  models.PostKind
	Log   *zap.Logger

	// NotFound renders the 404 page for unknown slugs.
	NotFound http.HandlerFunc
}

func NewHandler(view *viewdata.Env, posts *postsstore.Store, kind models.PostKind, notFound http.HandlerFunc, logger *zap.Logger) *Handler {
	return &Handler{
		View:     view,
		Posts:    posts,
		Kind:     kind,
		Log:      logger,
		NotFound: notFound,
	}
}

type listData struct {
	viewdata.BaseVM
	Kind  models.PostKind
	Cards []viewdata.PostCard
}

type showData struct {
	viewdata.BaseVM
	Post      models.Post
	Image     string
	Images    []string
	Link      string
	Related   []viewdata.PostCard
	ListHref  string
	ListLabel string
}

func (h *Handler) section() models.Section {
	if h.Kind == models.PostKindWork {
		return h.View.Site.Work
	}
	return h.View.Site.Blog
}

// ServeList handles GET /blog and GET /work.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	sec := h.section()
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, h.View, sec.Title, sec.Description, "/"),
		Kind:   h.Kind,
		Cards:  viewdata.Cards(h.View.Deploy.BasePath, h.Posts.List(h.Kind)),
	}
	templates.Render(w, r, "posts_list", data)
}

// ServeShow handles GET /blog/{slug} and GET /work/{slug}.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	data, err := h.buildShow(r, slug)
	if err != nil {
		if !errors.Is(err, postsstore.ErrNotFound) {
			h.Log.Warn("load post failed", zap.String("kind", string(h.Kind)), zap.String("slug", slug), zap.Error(err))
		}
		h.notFound(w, r)
		return
	}

	templates.Render(w, r, "posts_show", data)
}

func (h *Handler) buildShow(r *http.Request, slug string) (showData, error) {
	p, err := h.Posts.Get(h.Kind, slug)
	if err != nil {
		return showData{}, err
	}

	d := h.View.Deploy
	sec := h.section()
	data := showData{
		BaseVM:    viewdata.NewBaseVM(r, h.View, p.Title, p.Summary, sec.Path),
		Post:      p,
		Image:     d.Asset(p.Image),
		Link:      p.Link,
		ListHref:  d.Link(sec.Path),
		ListLabel: sec.Label,
	}
	for _, img := range p.Images {
		data.Images = append(data.Images, d.Asset(img))
	}

	var related []models.Post
	for _, other := range h.Posts.List(h.Kind) {
		if other.Slug == slug {
			continue
		}
		related = append(related, other)
		if len(related) == relatedCount {
			break
		}
	}
	data.Related = viewdata.Cards(d.BasePath, related)
	return data, nil
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	if h.NotFound != nil {
		h.NotFound(w, r)
		return
	}
	http.NotFound(w, r)
}
