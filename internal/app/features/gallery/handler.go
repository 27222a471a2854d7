package gallery

import (
	"net/http"

	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	View *viewdata.Env
	Log  *zap.Logger
}

func NewHandler(view *viewdata.Env, logger *zap.Logger) *Handler {
	return &Handler{View: view, Log: logger}
}

type pageData struct {
	viewdata.BaseVM
	Images []models.GalleryImage
}

func (h *Handler) ServeGallery(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "gallery", h.buildData(r))
}

func (h *Handler) buildData(r *http.Request) pageData {
	g := h.View.Site.Gallery
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, h.View, g.Title, g.Description, "/"),
		Images: make([]models.GalleryImage, len(g.Images)),
	}
	for i, img := range g.Images {
		img.Src = h.View.Deploy.Asset(img.Src)
		data.Images[i] = img
	}
	return data
}
