package contact

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	r.Post("/reset", h.Reset)
	r.Get("/state", h.State)
	return r
}
