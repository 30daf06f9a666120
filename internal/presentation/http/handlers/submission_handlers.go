package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/application/services"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// MaxSubmissionBytes bounds the JSON body accepted by PostSubmission.
const MaxSubmissionBytes = 64 << 10

// SubmissionHandlers contains the lead intake and admin listing endpoints
type SubmissionHandlers struct {
	submissions *services.SubmissionService
	queries     *services.LeadQueryService
	logger      *logging.ChanneledLogger
}

// NewSubmissionHandlers creates submission handlers with injected dependencies
func NewSubmissionHandlers(submissions *services.SubmissionService, queries *services.LeadQueryService, logger *logging.ChanneledLogger) *SubmissionHandlers {
	return &SubmissionHandlers{
		submissions: submissions,
		queries:     queries,
		logger:      logger,
	}
}

// PostSubmission handles POST /api/v1/submissions - public case evaluation intake
func (h *SubmissionHandlers) PostSubmission(c *gin.Context) {
	log := h.logger.WithContext(logging.ChannelLeads, c.Request.Context())
	log.Debug("Received submission request", "method", c.Request.Method, "path", c.Request.URL.Path)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxSubmissionBytes)

	var sub leads.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		log.Info("Submission body rejected", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if _, err := h.submissions.Submit(c.Request.Context(), sub, RequestMeta(c)); err != nil {
		var verr *leads.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Validation failed",
				"success": false,
				"error":   verr.Error(),
				"fields":  verr.Fields,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to save submission",
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Submission received",
		"success": true,
	})
}

// GetSubmissions handles GET /api/v1/submissions - paginated, searchable admin listing
func (h *SubmissionHandlers) GetSubmissions(c *gin.Context) {
	start := time.Now()
	req := leads.ParsePageRequest(c.Query("page"), c.Query("limit"), c.Query("search"))

	page, err := h.queries.List(c.Request.Context(), req)
	if err != nil {
		h.logger.WithContext(logging.ChannelLeads, c.Request.Context()).Error("Failed to list submissions", "error", err.Error(), "duration", time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch submissions",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetSubmission handles GET /api/v1/submissions/:id - one lead by ID
func (h *SubmissionHandlers) GetSubmission(c *gin.Context) {
	id := c.Param("id")

	lead, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, leads.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Submission not found"})
			return
		}
		h.logger.WithContext(logging.ChannelLeads, c.Request.Context()).Error("Failed to load submission", "leadId", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch submission",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": lead})
}
