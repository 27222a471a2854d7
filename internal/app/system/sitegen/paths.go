package sitegen

import (
	"sort"

	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/domain/models"
)

// Paths lists every page the export should render: each enabled exact route
// plus each post the guard lets through. Disabled pages are never written,
// so a static host answers them with 404.html.
func Paths(routes *routeguard.Config, posts []models.Post) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range routes.EnabledPaths() {
		add(p)
	}
	for _, post := range posts {
		if routes.Enabled(post.Path()) {
			add(post.Path())
		}
	}
	sort.Strings(out)
	return out
}
