package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/admin"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/metrics"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/security"
)

// AuthService handles admin authentication workflows and JWT operations
type AuthService struct {
	credentials admin.CredentialStore
	issuer      *security.SessionIssuer
	metrics     *metrics.Metrics
	logger      *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(credentials admin.CredentialStore, issuer *security.SessionIssuer, m *metrics.Metrics, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		credentials: credentials,
		issuer:      issuer,
		metrics:     m,
		logger:      logger,
	}
}

// Login verifies the credentials and issues a session. Every credential
// failure is reported as admin.ErrInvalidCredentials.
func (a *AuthService) Login(email, password string) (*security.Session, error) {
	account, err := a.credentials.Authenticate(email, password)
	if err != nil {
		a.metrics.LoginAttempted(metrics.ResultUnauthorized)
		a.logger.LogAuthOperation("login", email, false, nil)
		if errors.Is(err, admin.ErrInvalidCredentials) {
			return nil, admin.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential check failed: %w", err)
	}

	session, err := a.issuer.Issue(account.Subject, account.Email)
	if err != nil {
		a.metrics.LoginAttempted(metrics.ResultError)
		a.logger.Auth().Error("Failed to issue admin session", "error", err.Error())
		return nil, err
	}

	a.metrics.LoginAttempted(metrics.ResultSuccess)
	a.logger.LogAuthOperation("login", email, true, map[string]any{"expiresAt": session.ExpiresAt})
	return session, nil
}

// ValidateToken checks a presented session token.
func (a *AuthService) ValidateToken(token string) (*security.SessionClaims, error) {
	claims, err := a.issuer.Validate(token)
	if err != nil {
		a.logger.Auth().Debug("Session token rejected", "error", err.Error())
		return nil, err
	}
	return claims, nil
}

// SessionTTL is the lifetime of issued sessions.
func (a *AuthService) SessionTTL() time.Duration {
	return a.issuer.TTL()
}
