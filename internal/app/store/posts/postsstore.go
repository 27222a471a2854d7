// internal/app/store/posts/postsstore.go
package postsstore

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

//go:embed defaults
var defaultsFS embed.FS

// ErrNotFound is returned by Get when no post has the requested slug.
var ErrNotFound = errors.New("post not found")

// Store holds every post, parsed and rendered once at load time.
// It is read-only after Load and safe for concurrent use.
type Store struct {
	byKind map[models.PostKind][]models.Post
}

type frontMatter struct {
	Title       string              `yaml:"title"`
	PublishedAt string              `yaml:"publishedAt"`
	Summary     string              `yaml:"summary"`
	Image       string              `yaml:"image"`
	Images      []string            `yaml:"images"`
	Tag         string              `yaml:"tag"`
	Link        string              `yaml:"link"`
	Team        []models.TeamMember `yaml:"team"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// New loads posts from dir, or the built-in posts when dir is empty.
// dir must contain blog/ and/or work/ sub-directories of markdown files.
func New(dir string) (*Store, error) {
	if dir == "" {
		sub, err := fs.Sub(defaultsFS, "defaults")
		if err != nil {
			return nil, err
		}
		return Load(sub)
	}
	return Load(os.DirFS(dir))
}

// Load parses every *.md and *.mdx file under <kind>/ in fsys.
func Load(fsys fs.FS) (*Store, error) {
	s := &Store{byKind: make(map[models.PostKind][]models.Post)}

	for _, kind := range models.PostKinds {
		var files []string
		for _, pattern := range []string{"*.md", "*.mdx"} {
			matches, err := fs.Glob(fsys, path.Join(string(kind), pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}

		posts := make([]models.Post, 0, len(files))
		for _, name := range files {
			raw, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			p, err := Parse(kind, slugFromFile(name), raw)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			posts = append(posts, p)
		}

		// Newest first; slug breaks ties so the order is stable.
		sort.Slice(posts, func(i, j int) bool {
			if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
				return posts[i].PublishedAt.After(posts[j].PublishedAt)
			}
			return posts[i].Slug < posts[j].Slug
		})
		s.byKind[kind] = posts
	}

	return s, nil
}

// Parse turns one markdown document with YAML front matter into a Post.
func Parse(kind models.PostKind, slug string, raw []byte) (models.Post, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return models.Post{}, err
	}

	var fm frontMatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return models.Post{}, fmt.Errorf("front matter: %w", err)
		}
	}
	if fm.Title == "" {
		return models.Post{}, errors.New("front matter: title is required")
	}

	var published time.Time
	if fm.PublishedAt != "" {
		published, err = parseDate(fm.PublishedAt)
		if err != nil {
			return models.Post{}, fmt.Errorf("front matter: publishedAt: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return models.Post{}, fmt.Errorf("render markdown: %w", err)
	}

	return models.Post{
		Kind:        kind,
		Slug:        slug,
		Title:       fm.Title,
		Summary:     fm.Summary,
		Image:       fm.Image,
		Images:      fm.Images,
		Tag:         fm.Tag,
		Link:        fm.Link,
		Team:        fm.Team,
		PublishedAt: published,
		Body:        htmlsanitize.SanitizeToHTML(buf.String()),
	}, nil
}

// List returns the posts of a kind, newest first. The slice must not be modified.
func (s *Store) List(kind models.PostKind) []models.Post {
	return s.byKind[kind]
}

// Latest returns at most n posts of a kind, newest first.
func (s *Store) Latest(kind models.PostKind, n int) []models.Post {
	posts := s.byKind[kind]
	if n >= 0 && len(posts) > n {
		return posts[:n]
	}
	return posts
}

// Get returns the post with slug, or ErrNotFound.
func (s *Store) Get(kind models.PostKind, slug string) (models.Post, error) {
	for _, p := range s.byKind[kind] {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Post{}, ErrNotFound
}

// Count returns how many posts of a kind are loaded.
func (s *Store) Count(kind models.PostKind) int {
	return len(s.byKind[kind])
}

// All returns every post across kinds.
func (s *Store) All() []models.Post {
	var out []models.Post
	for _, kind := range models.PostKinds {
		out = append(out, s.byKind[kind]...)
	}
	return out
}

func slugFromFile(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

var delim = []byte("---")

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
// Documents without front matter return a nil meta block.
func splitFrontMatter(raw []byte) (meta, body []byte, err error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if !bytes.HasPrefix(trimmed, delim) {
		return nil, raw, nil
	}

	rest := trimmed[len(delim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 {
		return nil, nil, errors.New("front matter: unterminated block")
	}
	rest = rest[nl+1:]

	for offset := 0; offset < len(rest); {
		end := bytes.IndexByte(rest[offset:], '\n')
		var line []byte
		if end < 0 {
			line = rest[offset:]
			end = len(rest) - offset
		} else {
			line = rest[offset : offset+end]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), delim) {
			meta = rest[:offset]
			body = rest[min(offset+end+1, len(rest)):]
			return meta, body, nil
		}
		offset += end + 1
	}
	return nil, nil, errors.New("front matter: unterminated block")
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
