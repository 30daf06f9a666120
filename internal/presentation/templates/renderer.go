// Package templates renders the public site and admin dashboard pages.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/casetypes"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
)

// Page names accepted by Render.
const (
	PageHome        = "home"
	PageCaseType    = "case"
	PageEvaluation  = "evaluation"
	PageNotFound    = "notfound"
	PageAdminLogin  = "admin_login"
	PageAdminList   = "admin_list"
	PageAdminDetail = "admin_detail"
)

// SiteInfo is shared by every page.
type SiteInfo struct {
	Name  string
	Phone string
}

// Page is the data passed to the layout. Body is page specific.
type Page struct {
	Title string
	Site  SiteInfo
	Admin bool
	Body  any
}

type HomeBody struct {
	CaseTypes []casetypes.CaseType
}

type CaseBody struct {
	CaseType casetypes.CaseType
}

type EvaluationBody struct {
	CaseTypes []casetypes.CaseType
	Selected  string
}

type NotFoundBody struct {
	Path string
}

type LoginBody struct {
	Email       string
	Error       string
	CallbackURL string
}

type ListBody struct {
	Submissions []*leads.Lead
	Pagination  leads.Pagination
	Search      string
	From        int
	To          int
	PrevURL     string
	NextURL     string
}

type DetailBody struct {
	Lead *leads.Lead
}

var funcs = template.FuncMap{
	"caseName": casetypes.DisplayName,
	"formatTime": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 2006 3:04 PM UTC")
	},
	"year": func() int { return time.Now().Year() },
	"css":  func() template.CSS { return siteCSS },
}

var pageSources = map[string]string{
	PageHome:        homeHTML,
	PageCaseType:    caseHTML,
	PageEvaluation:  evaluationHTML,
	PageNotFound:    notFoundHTML,
	PageAdminLogin:  adminLoginHTML,
	PageAdminList:   adminListHTML,
	PageAdminDetail: adminDetailHTML,
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	site  SiteInfo
	pages map[string]*template.Template
}

// NewRenderer parses every page.
func NewRenderer(site SiteInfo) (*Renderer, error) {
	base, err := template.New("layout").Funcs(funcs).Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageSources))
	for name, source := range pageSources {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		if _, err := clone.Parse(source); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		pages[name] = clone
	}

	return &Renderer{site: site, pages: pages}, nil
}

// Site returns the site info applied to every page.
func (r *Renderer) Site() SiteInfo {
	return r.site
}

// Render writes the named page. Output is buffered so a failed render
// writes nothing.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	page.Site = r.site

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
