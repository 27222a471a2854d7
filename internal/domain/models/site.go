// internal/domain/models/site.go
package models

import "strings"

// Site is the full content configuration for the portfolio.
//
// It is loaded once at startup (see store/content) and treated as read-only
// by every handler. Nothing in Site computes behavior; it is pure data.
type Site struct {
	Person     Person       `yaml:"person" json:"person"`
	Newsletter Newsletter   `yaml:"newsletter" json:"newsletter"`
	Social     []SocialLink `yaml:"social" json:"social"`
	Home       Home         `yaml:"home" json:"home"`
	About      About        `yaml:"about" json:"about"`
	Blog       Section      `yaml:"blog" json:"blog"`
	Work       Section      `yaml:"work" json:"work"`
	Gallery    Gallery      `yaml:"gallery" json:"gallery"`

	// Routes maps an exact path ("/", "/about", ...) to whether the page is enabled.
	Routes map[string]bool `yaml:"routes" json:"routes"`

	// DynamicRoutes lists prefixes whose sub-paths inherit the parent's flag.
	DynamicRoutes []string `yaml:"dynamicRoutes" json:"dynamic_routes"`
}

// Person describes the site owner.
type Person struct {
	FirstName string   `yaml:"firstName" json:"first_name"`
	LastName  string   `yaml:"lastName" json:"last_name"`
	Name      string   `yaml:"name" json:"name"`
	Role      string   `yaml:"role" json:"role"`
	Avatar    string   `yaml:"avatar" json:"avatar"`
	Email     string   `yaml:"email" json:"email"`
	Location  string   `yaml:"location" json:"location"` // IANA time zone, e.g. "Europe/Vienna"
	Languages []string `yaml:"languages" json:"languages,omitempty"`
}

// DisplayName returns Name, falling back to "First Last".
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Newsletter is the heading block rendered above the contact form.
type Newsletter struct {
	Display     bool   `yaml:"display" json:"display"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// SocialLink is one entry in the social links list.
// Essential links are also shown on the about page.
type SocialLink struct {
	Name      string `yaml:"name" json:"name"`
	Icon      string `yaml:"icon" json:"icon"`
	Link      string `yaml:"link" json:"link"`
	Essential bool   `yaml:"essential" json:"essential"`
}

// Page holds the metadata every routed page carries.
type Page struct {
	Path        string `yaml:"path" json:"path"`
	Label       string `yaml:"label" json:"label"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image,omitempty"`
}

// Home is the landing page content.
type Home struct {
	Page     `yaml:",inline"`
	Headline string   `yaml:"headline" json:"headline"`
	Subline  string   `yaml:"subline" json:"subline"`
	Featured Featured `yaml:"featured" json:"featured"`
}

// Featured is the highlighted link shown above the home headline.
type Featured struct {
	Display bool   `yaml:"display" json:"display"`
	Title   string `yaml:"title" json:"title"`
	Href    string `yaml:"href" json:"href"`
}

// Toggle is a section that can be switched off from content.
type Toggle struct {
	Display bool `yaml:"display" json:"display"`
}

// About is the biography page.
type About struct {
	Page           `yaml:",inline"`
	TableOfContent TableOfContent `yaml:"tableOfContent" json:"table_of_content"`
	Avatar         Toggle         `yaml:"avatar" json:"avatar"`
	Calendar       Calendar       `yaml:"calendar" json:"calendar"`
	Intro          Intro          `yaml:"intro" json:"intro"`
	Work           WorkHistory    `yaml:"work" json:"work"`
	Studies        Studies        `yaml:"studies" json:"studies"`
	Technical      Technical      `yaml:"technical" json:"technical"`
}

type TableOfContent struct {
	Display  bool `yaml:"display" json:"display"`
	SubItems bool `yaml:"subItems" json:"sub_items"`
}

type Calendar struct {
	Display bool   `yaml:"display" json:"display"`
	Link    string `yaml:"link" json:"link"`
}

type Intro struct {
	Display     bool   `yaml:"display" json:"display"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// WorkHistory is the list of past roles on the about page.
type WorkHistory struct {
	Display     bool         `yaml:"display" json:"display"`
	Title       string       `yaml:"title" json:"title"`
	Experiences []Experience `yaml:"experiences" json:"experiences"`
}

type Experience struct {
	Company      string   `yaml:"company" json:"company"`
	Timeframe    string   `yaml:"timeframe" json:"timeframe"`
	Role         string   `yaml:"role" json:"role"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	Images       []Image  `yaml:"images" json:"images,omitempty"`
}

// Image is a sized image reference. Width and Height form an aspect ratio.
type Image struct {
	Src    string `yaml:"src" json:"src"`
	Alt    string `yaml:"alt" json:"alt"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
}

type Studies struct {
	Display      bool          `yaml:"display" json:"display"`
	Title        string        `yaml:"title" json:"title"`
	Institutions []Institution `yaml:"institutions" json:"institutions"`
}

type Institution struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

type Technical struct {
	Display bool    `yaml:"display" json:"display"`
	Title   string  `yaml:"title" json:"title"`
	Skills  []Skill `yaml:"skills" json:"skills"`
}

type Skill struct {
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Tags        []Tag   `yaml:"tags" json:"tags,omitempty"`
	Images      []Image `yaml:"images" json:"images,omitempty"`
}

type Tag struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}

// Section is the metadata for a post listing page (blog, work).
type Section struct {
	Page `yaml:",inline"`
}

// Gallery is the photo page.
type Gallery struct {
	Page   `yaml:",inline"`
	Images []GalleryImage `yaml:"images" json:"images"`
}

// GalleryImage orientation is "horizontal" or "vertical".
type GalleryImage struct {
	Src         string `yaml:"src" json:"src"`
	Alt         string `yaml:"alt" json:"alt"`
	Orientation string `yaml:"orientation" json:"orientation"`
}

// Vertical reports whether the image is taller than wide.
func (g GalleryImage) Vertical() bool {
	return g.Orientation == "vertical"
}

// EssentialSocial returns the social links flagged essential, in order.
func (s *Site) EssentialSocial() []SocialLink {
	var out []SocialLink
	for _, l := range s.Social {
		if l.Essential {
			out = append(out, l)
		}
	}
	return out
}

// NavPages returns the top-level pages in menu order.
func (s *Site) NavPages() []Page {
	return []Page{s.Home.Page, s.About.Page, s.Work.Page, s.Blog.Page, s.Gallery.Page}
}
