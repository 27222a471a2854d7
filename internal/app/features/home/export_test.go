package home

import "net/http"

// BuildDataForTest exposes the view model so tests can check it without a
// template engine.
func (h *Handler) BuildDataForTest(r *http.Request) (spotlight, more, blog int, aboutHref string) {
	d := h.buildData(r)
	return len(d.Spotlight), len(d.MoreWork), len(d.Blog), d.AboutHref
}
