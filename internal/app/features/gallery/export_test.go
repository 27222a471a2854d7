package gallery

import (
	"net/http"

	"github.com/dalemusser/portfolio/internal/domain/models"
)

func (h *Handler) ImagesForTest(r *http.Request) []models.GalleryImage { return h.buildData(r).Images }
