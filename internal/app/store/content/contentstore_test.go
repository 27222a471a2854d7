package contentstore_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	contentstore "github.com/dalemusser/portfolio/internal/app/store/content"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	site, err := contentstore.Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if site.Person.Name != "Quang Tran" {
		t.Errorf("Person.Name: got %q", site.Person.Name)
	}
	if site.About.Title != "About – Quang Tran" {
		t.Errorf("About.Title: got %q, want placeholder expanded", site.About.Title)
	}

	wantRoutes := map[string]bool{"/": true, "/about": true, "/work": true, "/blog": true, "/gallery": true}
	if diff := cmp.Diff(wantRoutes, site.Routes); diff != "" {
		t.Errorf("Routes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/blog", "/work"}, site.DynamicRoutes); diff != "" {
		t.Errorf("DynamicRoutes mismatch (-want +got):\n%s", diff)
	}
	if len(site.Gallery.Images) != 10 {
		t.Errorf("Gallery.Images: got %d, want 10", len(site.Gallery.Images))
	}
}

func TestLoad_EmailLinkDerivedFromPerson(t *testing.T) {
	site, err := contentstore.Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var email *models.SocialLink
	for i := range site.Social {
		if site.Social[i].Icon == "email" {
			email = &site.Social[i]
		}
	}
	if email == nil {
		t.Fatal("expected an email social link")
	}
	if email.Link != "mailto:dangquang1020@gmail.com" {
		t.Errorf("email link: got %q", email.Link)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	raw := `
person:
  firstName: Ada
  lastName: Lovelace
  role: Analyst
home:
  title: "{name}"
routes:
  /: true
  /about: false
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	site, err := contentstore.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if site.Person.Name != "Ada Lovelace" {
		t.Errorf("Person.Name: got %q, want derived from first/last", site.Person.Name)
	}
	if site.Home.Title != "Ada Lovelace" {
		t.Errorf("Home.Title: got %q", site.Home.Title)
	}
	if site.Home.Path != "/" {
		t.Errorf("Home.Path: got %q, want default /", site.Home.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := contentstore.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no person", "routes:\n  /: true\n"},
		{"no routes", "person:\n  name: A\n"},
		{"relative route", "person:\n  name: A\nroutes:\n  about: true\n"},
		{"root dynamic prefix", "person:\n  name: A\nroutes:\n  /: true\ndynamicRoutes: [/]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := contentstore.Parse([]byte(tt.raw))
			if !errors.Is(err, contentstore.ErrInvalid) {
				t.Errorf("Parse() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := contentstore.Parse([]byte("person:\n  name: A\n  nickname: B\nroutes:\n  /: true\n"))
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}
