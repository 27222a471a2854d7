package posts

import "net/http"

// ShowForTest exposes the post view model without rendering it.
func (h *Handler) ShowForTest(r *http.Request, slug string) (image string, related []string, listHref string, err error) {
	d, err := h.buildShow(r, slug)
	if err != nil {
		return "", nil, "", err
	}
	for _, c := range d.Related {
		related = append(related, c.Post.Slug)
	}
	return d.Image, related, d.ListHref, nil
}
