// internal/domain/models/post.go
package models

import (
	"html/template"
	"time"
)

// PostKind is the section a post belongs to.
type PostKind string

const (
	PostKindBlog PostKind = "blog"
	PostKindWork PostKind = "work"
)

// PostKinds lists every kind in display order.
var PostKinds = []PostKind{PostKindWork, PostKindBlog}

// Valid reports whether k is a known kind.
func (k PostKind) Valid() bool {
	return k == PostKindBlog || k == PostKindWork
}

// Post is a markdown document from the blog or work directories.
// Body has already been rendered and sanitized.
type Post struct {
	Kind        PostKind      `json:"kind"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary,omitempty"`
	Image       string        `json:"image,omitempty"`
	Images      []string      `json:"images,omitempty"`
	Tag         string        `json:"tag,omitempty"`
	Link        string        `json:"link,omitempty"`
	Team        []TeamMember  `json:"team,omitempty"`
	PublishedAt time.Time     `json:"published_at"`
	Body        template.HTML `json:"-"`
}

// TeamMember is a collaborator credited on a work post.
type TeamMember struct {
	Name     string `yaml:"name" json:"name"`
	Role     string `yaml:"role" json:"role"`
	Avatar   string `yaml:"avatar" json:"avatar"`
	LinkedIn string `yaml:"linkedIn" json:"linked_in,omitempty"`
}

// Path returns the routed path of the post, e.g. "/blog/my-post".
func (p Post) Path() string {
	return "/" + string(p.Kind) + "/" + p.Slug
}
