package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/application/services"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/admin"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService  *services.AuthService
	logger       *logging.ChanneledLogger
	cookieSecure bool
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, cookieSecure bool) *AuthHandlers {
	return &AuthHandlers{
		authService:  authService,
		logger:       logger,
		cookieSecure: cookieSecure,
	}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// PostLogin handles POST /api/v1/auth/login - admin authentication
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
			"error":   err.Error(),
		})
		return
	}

	session, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			h.logger.Auth().Warn("Login attempt failed", "duration", time.Since(start))
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed",
		})
		return
	}

	setSessionCookie(c, session.Token, h.authService.SessionTTL(), h.cookieSecure)

	h.logger.Auth().Info("Login successful", "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Login successful",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

// PostLogout handles POST /api/v1/auth/logout - clears the session cookie.
// Issued tokens stay valid until they expire.
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	clearSessionCookie(c, h.cookieSecure)
	h.logger.Auth().Info("Logout completed")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// GetAuthStatus handles GET /api/v1/auth/status - checks current authentication status
func (h *AuthHandlers) GetAuthStatus(c *gin.Context) {
	token, source := middleware.ExtractSessionToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	response := gin.H{
		"authenticated": true,
		"subject":       claims.Subject,
		"method":        source,
	}
	if claims.ExpiresAt != nil {
		response["expiresAt"] = claims.ExpiresAt.Time
	}
	c.JSON(http.StatusOK, response)
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", secure, true)
}
