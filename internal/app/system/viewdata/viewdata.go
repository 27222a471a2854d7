// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/contactform"
	"github.com/dalemusser/portfolio/internal/app/system/deployenv"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/app/system/visitor"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Env is what every page needs to build its BaseVM. One Env is built at
// startup (or per export run) and shared read-only by all handlers.
type Env struct {
	Site   *models.Site
	Routes *routeguard.Config
	Forms  *contactform.Registry
	Deploy deployenv.Deploy

	// BaseURL is the public origin used for canonical links, e.g.
	// "https://example.com". Empty omits them.
	BaseURL string

	// Static is true while rendering pages for a static export. The contact
	// form then posts straight to the relay instead of back to this server.
	Static bool
	Relay  RelayTarget
}

// RelayTarget is the public form-relay endpoint used by exported pages.
type RelayTarget struct {
	URL       string
	AccessKey string
	FromName  string
}

// NavItem is one entry in the header menu.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// ContactVM drives the contact form partial.
type ContactVM struct {
	Show        bool
	Title       string
	Description string
	Form        contactform.Snapshot

	Action      string // POST target
	ResetAction string
	Return      string // page to come back to after the post

	// Set only for static pages, rendered as hidden inputs.
	Static    bool
	AccessKey string
	FromName  string
	Subject   string
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, h.View, "Page Title", "Description", "/"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site owner
	SiteName string
	Role     string
	Avatar   string
	Location string
	Social   []models.SocialLink

	// Page context
	Title       string
	Description string
	BackURL     string
	CurrentPath string
	Canonical   string
	Base        string // prefix for every site link, "" at the host root
	Nav         []NavItem
	Year        int

	// CSRF protection
	CSRFToken string
	CSRFField template.HTML

	Contact ContactVM
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - env: shared site data
//   - title, description: page metadata
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, env *Env, title, description, backDefault string) BaseVM {
	site := env.Site
	current := routeguard.Normalize(httpnav.CurrentPath(r))
	if a, ok := routeguard.FromRequest(r); ok {
		current = a.Path
	}

	vm := BaseVM{
		SiteName:    site.Person.DisplayName(),
		Role:        site.Person.Role,
		Avatar:      env.Deploy.Asset(site.Person.Avatar),
		Location:    site.Person.Location,
		Social:      site.Social,
		Title:       title,
		Description: description,
		BackURL:     env.Deploy.Link(httpnav.ResolveBackURL(r, backDefault)),
		CurrentPath: current,
		Base:        env.Deploy.BasePath,
		Nav:         buildNav(env, current),
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrf.TemplateField(r),
	}
	if env.BaseURL != "" {
		vm.Canonical = strings.TrimSuffix(env.BaseURL, "/") + env.Deploy.Link(current)
	}
	vm.Contact = buildContact(r, env, current)
	return vm
}

func buildNav(env *Env, current string) []NavItem {
	var items []NavItem
	for _, p := range env.Site.NavPages() {
		if p.Path == "" || p.Label == "" || !env.Routes.Enabled(p.Path) {
			continue
		}
		active := current == p.Path
		if p.Path != "/" && strings.HasPrefix(current, p.Path+"/") {
			active = true
		}
		items = append(items, NavItem{
			Label:  p.Label,
			Href:   env.Deploy.Link(p.Path),
			Active: active,
		})
	}
	return items
}

func buildContact(r *http.Request, env *Env, current string) ContactVM {
	nl := env.Site.Newsletter
	c := ContactVM{
		Show:        nl.Display,
		Title:       nl.Title,
		Description: nl.Description,
		Form:        contactform.Snapshot{Status: contactform.StatusIdle},
		Return:      current,
	}
	if !c.Show {
		return c
	}

	if env.Static {
		c.Static = true
		c.Action = env.Relay.URL
		c.AccessKey = env.Relay.AccessKey
		c.FromName = env.Relay.FromName
		// No script copies the typed address, so there is no replyto and the
		// subject cannot name the sender as the server relay does.
		c.Subject = "New Contact Form Message"
		return c
	}

	c.Action = "/contact"
	c.ResetAction = "/contact/reset"
	if env.Forms != nil {
		if id, ok := visitor.ID(r); ok {
			if f, ok := env.Forms.Lookup(id); ok {
				c.Form = f.Snapshot()
			}
		}
	}
	return c
}

// LocalTime formats the current time in the site owner's time zone, or ""
// when the zone is unknown.
func LocalTime(location string, now time.Time) string {
	if location == "" {
		return ""
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return ""
	}
	return now.In(loc).Format("15:04 MST")
}

// PostCard pairs a post with the link base for the post_card partial.
type PostCard struct {
	Base string
	Post models.Post
}

// Cards wraps posts for the post_card partial.
func Cards(base string, posts []models.Post) []PostCard {
	out := make([]PostCard, len(posts))
	for i, p := range posts {
		out[i] = PostCard{Base: base, Post: p}
	}
	return out
}
