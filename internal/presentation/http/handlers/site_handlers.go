package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/casetypes"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/templates"
	"github.com/gin-gonic/gin"
)

// SiteHandlers serves the public marketing pages and the evaluation form
type SiteHandlers struct {
	renderer *templates.Renderer
	logger   *logging.ChanneledLogger
}

// NewSiteHandlers creates site handlers with injected dependencies
func NewSiteHandlers(renderer *templates.Renderer, logger *logging.ChanneledLogger) *SiteHandlers {
	return &SiteHandlers{renderer: renderer, logger: logger}
}

// GetHome handles GET / - landing page listing every case type
func (h *SiteHandlers) GetHome(c *gin.Context) {
	renderHTML(c, h.renderer, h.logger, http.StatusOK, templates.PageHome, templates.Page{
		Body: templates.HomeBody{CaseTypes: casetypes.All()},
	})
}

// GetCaseType handles GET /cases/:slug - one case type landing page
func (h *SiteHandlers) GetCaseType(c *gin.Context) {
	caseType, ok := casetypes.BySlug(c.Param("slug"))
	if !ok {
		h.NotFound(c)
		return
	}
	renderHTML(c, h.renderer, h.logger, http.StatusOK, templates.PageCaseType, templates.Page{
		Title: caseType.Name,
		Body:  templates.CaseBody{CaseType: caseType},
	})
}

// GetEvaluation handles GET /evaluation - multi-step case evaluation form.
// An unknown caseType query value leaves the selection empty.
func (h *SiteHandlers) GetEvaluation(c *gin.Context) {
	selected := ""
	if caseType, ok := casetypes.BySlug(c.Query("caseType")); ok {
		selected = caseType.Slug
	}
	renderHTML(c, h.renderer, h.logger, http.StatusOK, templates.PageEvaluation, templates.Page{
		Title: "Free Case Evaluation",
		Body: templates.EvaluationBody{
			CaseTypes: casetypes.All(),
			Selected:  selected,
		},
	})
}

// GetCaseTypes handles GET /api/v1/case-types - the case type catalogue
func (h *SiteHandlers) GetCaseTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"caseTypes": casetypes.All()})
}

// NotFound renders the 404 page for browsers and a JSON body for API paths.
func (h *SiteHandlers) NotFound(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	renderHTML(c, h.renderer, h.logger, http.StatusNotFound, templates.PageNotFound, templates.Page{
		Title: "Page not found",
		Body:  templates.NotFoundBody{Path: c.Request.URL.Path},
	})
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

func renderHTML(c *gin.Context, renderer *templates.Renderer, logger *logging.ChanneledLogger, status int, name string, page templates.Page) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, page); err != nil {
		logger.WithContext(logging.ChannelHTTP, c.Request.Context()).Error("Failed to render page", "page", name, "error", err.Error())
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
