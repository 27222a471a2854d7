// internal/app/store/content/contentstore.go
package contentstore

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dalemusser/portfolio/internal/domain/models"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/content.yaml
var defaultsFS embed.FS

const defaultFile = "defaults/content.yaml"

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid content")

// Load reads the site content from path. An empty path loads the built-in
// content that ships with the binary.
func Load(path string) (*models.Site, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = defaultsFS.ReadFile(defaultFile)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML content, expands placeholders and validates the result.
// Unknown keys are rejected so typos in the content file surface at startup.
func Parse(raw []byte) (*models.Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var site models.Site
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	expand(&site)
	applyDefaults(&site)

	if err := Validate(&site); err != nil {
		return nil, err
	}
	return &site, nil
}

// Validate checks the invariants handlers rely on.
func Validate(site *models.Site) error {
	var problems []string

	if site.Person.DisplayName() == "" {
		problems = append(problems, "person.name is required")
	}
	if len(site.Routes) == 0 {
		problems = append(problems, "routes must list at least one path")
	}
	for path := range site.Routes {
		if !strings.HasPrefix(path, "/") {
			problems = append(problems, fmt.Sprintf("route %q must start with /", path))
		}
	}
	for _, prefix := range site.DynamicRoutes {
		if !strings.HasPrefix(prefix, "/") || prefix == "/" {
			problems = append(problems, fmt.Sprintf("dynamic route %q must be a sub-path", prefix))
		}
	}
	for _, p := range site.NavPages() {
		if p.Path != "" && !strings.HasPrefix(p.Path, "/") {
			problems = append(problems, fmt.Sprintf("page %q has invalid path %q", p.Label, p.Path))
		}
	}
	for i, l := range site.Social {
		if l.Name == "" || l.Link == "" {
			problems = append(problems, fmt.Sprintf("social[%d] needs name and link", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// expand replaces {name}-style placeholders in page text.
func expand(site *models.Site) {
	p := site.Person
	r := strings.NewReplacer(
		"{name}", p.DisplayName(),
		"{firstName}", p.FirstName,
		"{role}", p.Role,
		"{location}", p.Location,
	)

	for _, page := range []*models.Page{
		&site.Home.Page, &site.About.Page, &site.Blog.Page, &site.Work.Page, &site.Gallery.Page,
	} {
		page.Title = r.Replace(page.Title)
		page.Description = r.Replace(page.Description)
	}
	site.Home.Headline = r.Replace(site.Home.Headline)
	site.Home.Subline = r.Replace(site.Home.Subline)
	site.About.Intro.Description = r.Replace(site.About.Intro.Description)
	site.Newsletter.Title = r.Replace(site.Newsletter.Title)
	site.Newsletter.Description = r.Replace(site.Newsletter.Description)
}

func applyDefaults(site *models.Site) {
	if site.Person.Name == "" {
		site.Person.Name = site.Person.DisplayName()
	}
	// An email link without a target points at the person's address.
	for i := range site.Social {
		if site.Social[i].Link == "" && site.Social[i].Icon == "email" && site.Person.Email != "" {
			site.Social[i].Link = "mailto:" + site.Person.Email
		}
	}
	if site.Home.Path == "" {
		site.Home.Path = "/"
	}
}
