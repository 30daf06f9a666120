// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"strings"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/gin-gonic/gin"
)

// ClientIPCookie is set by the edge when it knows the visitor address.
const ClientIPCookie = "client-ip"

// RequestMeta derives submission attribution from request headers. The
// client address is taken from the first X-Forwarded-For entry, then
// X-Real-IP, then the client-ip cookie.
func RequestMeta(c *gin.Context) leads.RequestMeta {
	return leads.RequestMeta{
		IPAddress: clientIP(c),
		UserAgent: userAgent(c),
	}
}

func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}
	if cookie, err := c.Cookie(ClientIPCookie); err == nil {
		if cookie = strings.TrimSpace(cookie); cookie != "" {
			return cookie
		}
	}
	return leads.UnknownIPAddress
}

func userAgent(c *gin.Context) string {
	if ua := strings.TrimSpace(c.GetHeader("User-Agent")); ua != "" {
		return ua
	}
	return leads.UnknownUserAgent
}
