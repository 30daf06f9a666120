package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/security"
)

type stubValidator struct {
	valid string
	seen  []string
}

func (s *stubValidator) ValidateToken(token string) (*security.SessionClaims, error) {
	s.seen = append(s.seen, token)
	if token != s.valid {
		return nil, errors.New("bad token")
	}
	claims := &security.SessionClaims{Type: security.SessionTokenType}
	claims.Subject = "admin"
	return claims, nil
}

func newGuardedRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/*rest", guard, func(c *gin.Context) {
		claims, ok := CurrentSession(c)
		if !ok {
			c.String(http.StatusInternalServerError, "missing session")
			return
		}
		c.String(http.StatusOK, claims.Subject)
	})
	return r
}

func TestSafeCallbackURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/admin"},
		{"/admin", "/admin"},
		{"/admin/submissions", "/admin/submissions"},
		{"/admin/submissions?page=2&search=jane", "/admin/submissions?page=2&search=jane"},
		{"/admin/submissions/01HXYZ", "/admin/submissions/01HXYZ"},
		{"/administrator", "/admin"},
		{"/", "/admin"},
		{"/evaluation", "/admin"},
		{"/admin/login", "/admin"},
		{"https://evil.example.com/admin", "/admin"},
		{"//evil.example.com/admin", "/admin"},
		{"/\\evil.example.com", "/admin"},
		{"javascript:alert(1)", "/admin"},
		{"admin/submissions", "/admin"},
		{"/admin/\r\nLocation: x", "/admin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeCallbackURL(tt.in), "input %q", tt.in)
	}
}

func TestLoginRedirectURL(t *testing.T) {
	assert.Equal(t, LoginPath, LoginRedirectURL(""))
	assert.Equal(t, "/admin/login?callbackUrl=%2Fadmin%2Fsubmissions%3Fpage%3D3", LoginRedirectURL("/admin/submissions?page=3"))
}

func TestExtractSessionTokenPrefersBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantToken  string
		wantSource string
	}{
		{"none", "", "", "", ""},
		{"bearer", "Bearer abc", "", "abc", TokenSourceBearer},
		{"lowercase scheme", "bearer abc", "", "abc", TokenSourceBearer},
		{"cookie", "", "xyz", "xyz", TokenSourceCookie},
		{"both", "Bearer abc", "xyz", "abc", TokenSourceBearer},
		{"empty bearer falls back", "Bearer   ", "xyz", "xyz", TokenSourceCookie},
		{"basic ignored", "Basic Zm9vOmJhcg==", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			token, source := ExtractSessionToken(c)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestRequireAdminAPI(t *testing.T) {
	validator := &stubValidator{valid: "good"}
	r := newGuardedRouter(RequireAdminAPI(validator, logging.NewDiscardLogger()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/x?page=2", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
	assert.Empty(t, validator.seen, "no token means no validation attempt")

	req := httptest.NewRequest(http.MethodGet, "/admin/x", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/x", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestRequireAdminUI(t *testing.T) {
	validator := &stubValidator{valid: "good"}
	r := newGuardedRouter(RequireAdminUI(validator, logging.NewDiscardLogger()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/submissions?search=doe", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?callbackUrl=%2Fadmin%2Fsubmissions%3Fsearch%3Ddoe", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestForAdminPathsGuardsUnmatchedDashboardURLs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator := &stubValidator{valid: "good"}
	r := gin.New()
	r.NoRoute(ForAdminPaths(RequireAdminUI(validator, logging.NewDiscardLogger())), func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/unknown", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?callbackUrl=%2Fadmin%2Funknown", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/unknown", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", w.Body.String())

	for _, path := range []string{"/administrator", "/nowhere", LoginPath} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}
