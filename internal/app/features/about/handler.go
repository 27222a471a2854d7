// internal/app/features/about/handler.go
package about

import (
	"net/http"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// TOCEntry is one link in the page's table of contents.
type TOCEntry struct {
	Anchor string
	Title  string
	Items  []string
}

type pageData struct {
	viewdata.BaseVM
	About     models.About
	Languages []string
	LocalTime string
	Essential []models.SocialLink
	Email     string
	TOC       []TOCEntry
}

type Handler struct {
	View *viewdata.Env
	Log  *zap.Logger

	now func() time.Time
}

func NewHandler(view *viewdata.Env, logger *zap.Logger) *Handler {
	return &Handler{View: view, Log: logger, now: time.Now}
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "about", h.buildData(r))
}

func (h *Handler) buildData(r *http.Request) pageData {
	site := h.View.Site
	a := site.About

	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, h.View, a.Title, a.Description, "/"),
		About:     a,
		Languages: site.Person.Languages,
		LocalTime: viewdata.LocalTime(site.Person.Location, h.now()),
		Essential: site.EssentialSocial(),
		Email:     site.Person.Email,
	}
	if a.TableOfContent.Display {
		data.TOC = tableOfContents(a)
	}
	return data
}

// tableOfContents lists the displayed sections in page order. Sub-items are
// only filled when the content asks for them.
func tableOfContents(a models.About) []TOCEntry {
	var toc []TOCEntry
	if a.Intro.Display {
		toc = append(toc, TOCEntry{Anchor: "intro", Title: a.Intro.Title})
	}
	if a.Work.Display {
		e := TOCEntry{Anchor: "work", Title: a.Work.Title}
		if a.TableOfContent.SubItems {
			for _, x := range a.Work.Experiences {
				e.Items = append(e.Items, x.Company)
			}
		}
		toc = append(toc, e)
	}
	if a.Studies.Display {
		e := TOCEntry{Anchor: "studies", Title: a.Studies.Title}
		if a.TableOfContent.SubItems {
			for _, x := range a.Studies.Institutions {
				e.Items = append(e.Items, x.Name)
			}
		}
		toc = append(toc, e)
	}
	if a.Technical.Display {
		e := TOCEntry{Anchor: "technical", Title: a.Technical.Title}
		if a.TableOfContent.SubItems {
			for _, x := range a.Technical.Skills {
				e.Items = append(e.Items, x.Title)
			}
		}
		toc = append(toc, e)
	}
	return toc
}
