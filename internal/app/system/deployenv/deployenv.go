// Package deployenv derives the base path and asset prefix for a static
// export from the CI environment.
package deployenv

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env is the CI environment the exporter reads.
type Env struct {
	GitHubActions string `env:"GITHUB_ACTIONS"`
	RepoName      string `env:"REPO_NAME"`
}

// Deploy is where the exported site is served from.
type Deploy struct {
	// BasePath prefixes every routed link, e.g. "/magic-portfolio". Empty at the host root.
	BasePath string
	// AssetPrefix prefixes static asset URLs, e.g. "/magic-portfolio/". Empty at the host root.
	AssetPrefix string
}

// Parse reads Env from the process environment.
func Parse() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Resolve maps e to a Deploy. A sub-path is only used when running under
// GitHub Actions with a repository name set.
func (e Env) Resolve() Deploy {
	repo := strings.Trim(strings.TrimSpace(e.RepoName), "/")
	if e.GitHubActions != "true" || repo == "" {
		return Deploy{}
	}
	return Deploy{
		BasePath:    "/" + repo,
		AssetPrefix: "/" + repo + "/",
	}
}

// Link prefixes an absolute site path with the base path.
func (d Deploy) Link(path string) string {
	if d.BasePath == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	if path == "/" {
		return d.BasePath + "/"
	}
	return d.BasePath + path
}

// Asset prefixes a static asset path ("/static/...", "/images/...").
func (d Deploy) Asset(path string) string {
	if d.AssetPrefix == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	return d.AssetPrefix + strings.TrimPrefix(path, "/")
}
