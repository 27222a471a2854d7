// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading string
	Message string
}

// Handler renders the site's error pages.
type Handler struct {
	View *viewdata.Env
	Log  *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(view *viewdata.Env, logger *zap.Logger) *Handler {
	return &Handler{View: view, Log: logger}
}

// NotFound renders the fixed "not found" view with status 404. It is the
// fallback for disabled routes, unknown paths and missing posts.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error_not_found", pageData{
		BaseVM:  viewdata.NewBaseVM(r, h.View, "Page not found", "", "/"),
		Heading: "404",
		Message: "The page you are looking for does not exist.",
	})
}

// ServerError renders a generic failure page with status 500.
func (h *Handler) ServerError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, "error_server", pageData{
		BaseVM:  viewdata.NewBaseVM(r, h.View, "Something went wrong", "", "/"),
		Heading: "Something went wrong",
		Message: "Please try again in a moment.",
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	templates.Render(w, r, name, data)
}
