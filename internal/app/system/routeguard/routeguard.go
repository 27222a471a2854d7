// Package routeguard decides whether a request path renders its page or the
// not-found view, using the static route table from the site content.
package routeguard

import (
	"sort"
	"strings"
)

// Config is the route-enablement table. It is built once at startup and
// never mutated, so a single *Config is shared by every request.
type Config struct {
	routes   map[string]bool
	prefixes []string
}

// Access is the result of checking one path.
type Access struct {
	Path    string // normalized
	Enabled bool
	Loading bool
}

// NewConfig copies routes and prefixes into an immutable Config.
func NewConfig(routes map[string]bool, prefixes []string) *Config {
	c := &Config{
		routes:   make(map[string]bool, len(routes)),
		prefixes: make([]string, 0, len(prefixes)),
	}
	for path, enabled := range routes {
		c.routes[path] = enabled
	}
	for _, p := range prefixes {
		if p != "" {
			c.prefixes = append(c.prefixes, p)
		}
	}
	return c
}

// Normalize strips one trailing slash. The root path stays "/".
func Normalize(path string) string {
	if path == "/" || path == "" {
		return path
	}
	return strings.TrimSuffix(path, "/")
}

// Check computes the Access for path. The returned Access always has
// Loading false; Loading is only true while Check is running.
func (c *Config) Check(path string) Access {
	a := Access{Loading: true}
	a.Path = Normalize(path)
	a.Enabled = c.enabled(a.Path)
	a.Loading = false
	return a
}

func (c *Config) enabled(path string) bool {
	if c == nil || path == "" {
		return false
	}

	// An exact entry wins, even for a path under a dynamic prefix.
	if v, ok := c.routes[path]; ok {
		return v
	}

	for _, prefix := range c.prefixes {
		if strings.HasPrefix(path, prefix) && c.routes[prefix] {
			return true
		}
	}
	return false
}

// Enabled reports whether path is enabled.
func (c *Config) Enabled(path string) bool {
	return c.Check(path).Enabled
}

// EnabledPaths returns the enabled exact paths, sorted.
func (c *Config) EnabledPaths() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.routes))
	for path, enabled := range c.routes {
		if enabled {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// Prefixes returns the dynamic prefixes whose own entry is enabled.
func (c *Config) Prefixes() []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, p := range c.prefixes {
		if c.routes[p] {
			out = append(out, p)
		}
	}
	return out
}
