package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

// SessionCookieName is the HTTP-only cookie holding the admin session token.
const SessionCookieName = "admin_session"

// LoginPath is where unauthenticated admin UI requests are sent.
const LoginPath = "/admin/login"

const sessionClaimsKey = "adminSession"

// Token sources reported by ExtractSessionToken.
const (
	TokenSourceBearer = "bearer"
	TokenSourceCookie = "cookie"
)

// TokenValidator validates presented session tokens.
type TokenValidator interface {
	ValidateToken(token string) (*security.SessionClaims, error)
}

// ExtractSessionToken reads a bearer token, falling back to the session cookie.
func ExtractSessionToken(c *gin.Context) (token, source string) {
	if authHeader := c.GetHeader("Authorization"); len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		if token = strings.TrimSpace(authHeader[7:]); token != "" {
			return token, TokenSourceBearer
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, TokenSourceCookie
	}
	return "", ""
}

// CurrentSession returns the claims stored by one of the admin guards.
func CurrentSession(c *gin.Context) (*security.SessionClaims, bool) {
	value, ok := c.Get(sessionClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*security.SessionClaims)
	return claims, ok
}

func authenticate(c *gin.Context, validator TokenValidator) (*security.SessionClaims, bool) {
	token, _ := ExtractSessionToken(c)
	if token == "" {
		return nil, false
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	c.Set(sessionClaimsKey, claims)
	return claims, true
}

// RequireAdminAPI rejects requests without a valid session with 401 before
// the handler runs.
func RequireAdminAPI(validator TokenValidator, logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, validator); !ok {
			logger.WithContext(logging.ChannelAuth, c.Request.Context()).Warn("Unauthorized access attempt", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireAdminUI redirects requests without a valid session to the login
// page, carrying the original path and query as callbackUrl.
func RequireAdminUI(validator TokenValidator, logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, validator); !ok {
			logger.WithContext(logging.ChannelAuth, c.Request.Context()).Debug("Redirecting to admin login", "path", c.Request.URL.Path)
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// ForAdminPaths runs guard for unmatched paths under /admin other than the
// login page, so unknown dashboard URLs still require a session.
func ForAdminPaths(guard gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path != LoginPath && (path == "/admin" || strings.HasPrefix(path, "/admin/")) {
			guard(c)
			return
		}
		c.Next()
	}
}

// LoginRedirectURL builds the login URL for a callback target.
func LoginRedirectURL(callback string) string {
	if callback == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{"callbackUrl": {callback}}.Encode()
}

// SafeCallbackURL returns target when it is a local admin path, otherwise
// the dashboard root.
func SafeCallbackURL(target string) string {
	const fallback = "/admin"
	if target == "" || strings.ContainsAny(target, "\\\r\n") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}
	if strings.HasPrefix(target, "//") {
		return fallback
	}
	if u.Path != "/admin" && !strings.HasPrefix(u.Path, "/admin/") {
		return fallback
	}
	if u.Path == LoginPath {
		return fallback
	}
	return u.RequestURI()
}
