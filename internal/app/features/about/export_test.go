package about

import (
	"net/http"
	"time"
)

func (h *Handler) SetClockForTest(now func() time.Time) { h.now = now }

func (h *Handler) TOCForTest(r *http.Request) []TOCEntry { return h.buildData(r).TOC }

func (h *Handler) LocalTimeForTest(r *http.Request) string { return h.buildData(r).LocalTime }
