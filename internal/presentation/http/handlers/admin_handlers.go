package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AtRiskMedia/caseeval-go/internal/application/services"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/admin"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/templates"
	"github.com/gin-gonic/gin"
)

// AdminHandlers serves the server-rendered admin dashboard
type AdminHandlers struct {
	authService  *services.AuthService
	queries      *services.LeadQueryService
	renderer     *templates.Renderer
	logger       *logging.ChanneledLogger
	cookieSecure bool
}

// NewAdminHandlers creates admin dashboard handlers with injected dependencies
func NewAdminHandlers(authService *services.AuthService, queries *services.LeadQueryService, renderer *templates.Renderer, logger *logging.ChanneledLogger, cookieSecure bool) *AdminHandlers {
	return &AdminHandlers{
		authService:  authService,
		queries:      queries,
		renderer:     renderer,
		logger:       logger,
		cookieSecure: cookieSecure,
	}
}

// GetLogin handles GET /admin/login. A visitor who already holds a valid
// session is sent straight to the callback target.
func (h *AdminHandlers) GetLogin(c *gin.Context) {
	callback := middleware.SafeCallbackURL(c.Query("callbackUrl"))

	if token, _ := middleware.ExtractSessionToken(c); token != "" {
		if _, err := h.authService.ValidateToken(token); err == nil {
			c.Redirect(http.StatusFound, callback)
			return
		}
	}

	c.Header("Cache-Control", "no-store")
	h.renderLogin(c, http.StatusOK, templates.LoginBody{CallbackURL: callback})
}

// PostLogin handles POST /admin/login - form based sign in
func (h *AdminHandlers) PostLogin(c *gin.Context) {
	callback := middleware.SafeCallbackURL(c.PostForm("callbackUrl"))

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, http.StatusBadRequest, templates.LoginBody{
			Email:       c.PostForm("email"),
			Error:       "Email and password are required",
			CallbackURL: callback,
		})
		return
	}

	session, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		status, message := http.StatusInternalServerError, "Sign in failed. Please try again."
		if errors.Is(err, admin.ErrInvalidCredentials) {
			status, message = http.StatusUnauthorized, "Invalid credentials"
		}
		h.renderLogin(c, status, templates.LoginBody{
			Email:       req.Email,
			Error:       message,
			CallbackURL: callback,
		})
		return
	}

	setSessionCookie(c, session.Token, h.authService.SessionTTL(), h.cookieSecure)
	c.Redirect(http.StatusSeeOther, callback)
}

// PostLogout handles POST /admin/logout
func (h *AdminHandlers) PostLogout(c *gin.Context) {
	clearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// GetSubmissions handles GET /admin and /admin/submissions - paginated lead table
func (h *AdminHandlers) GetSubmissions(c *gin.Context) {
	req := leads.ParsePageRequest(c.Query("page"), c.Query("limit"), c.Query("search"))

	page, err := h.queries.List(c.Request.Context(), req)
	if err != nil {
		h.logger.WithContext(logging.ChannelLeads, c.Request.Context()).Error("Failed to list submissions", "error", err.Error())
		c.String(http.StatusInternalServerError, "Failed to fetch submissions")
		return
	}

	body := templates.ListBody{
		Submissions: page.Submissions,
		Pagination:  page.Pagination,
		Search:      req.Search,
	}
	if n := len(page.Submissions); n > 0 {
		body.From = req.Skip() + 1
		body.To = req.Skip() + n
	}
	if page.Pagination.HasPrev() {
		body.PrevURL = listURL(req, req.Page-1)
	}
	if page.Pagination.HasNext() {
		body.NextURL = listURL(req, req.Page+1)
	}

	renderHTML(c, h.renderer, h.logger, http.StatusOK, templates.PageAdminList, templates.Page{
		Title: "Submissions",
		Admin: true,
		Body:  body,
	})
}

// GetSubmission handles GET /admin/submissions/:id
func (h *AdminHandlers) GetSubmission(c *gin.Context) {
	lead, err := h.queries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, leads.ErrNotFound) {
			renderHTML(c, h.renderer, h.logger, http.StatusNotFound, templates.PageNotFound, templates.Page{
				Title: "Submission not found",
				Admin: true,
				Body:  templates.NotFoundBody{Path: c.Request.URL.Path},
			})
			return
		}
		h.logger.WithContext(logging.ChannelLeads, c.Request.Context()).Error("Failed to load submission", "error", err.Error())
		c.String(http.StatusInternalServerError, "Failed to fetch submission")
		return
	}

	renderHTML(c, h.renderer, h.logger, http.StatusOK, templates.PageAdminDetail, templates.Page{
		Title: lead.FullName(),
		Admin: true,
		Body:  templates.DetailBody{Lead: lead},
	})
}

func (h *AdminHandlers) renderLogin(c *gin.Context, status int, body templates.LoginBody) {
	renderHTML(c, h.renderer, h.logger, status, templates.PageAdminLogin, templates.Page{
		Title: "Admin sign in",
		Admin: true,
		Body:  body,
	})
}

func listURL(req leads.PageRequest, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if req.Limit != leads.DefaultLimit {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	return "/admin/submissions?" + q.Encode()
}
