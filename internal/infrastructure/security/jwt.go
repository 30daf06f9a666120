// Package security provides admin session token utilities
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionTokenType marks tokens minted by the admin login.
const SessionTokenType = "admin_session"

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and wrong token types.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrTokenExpired is returned once the expiry has passed.
	ErrTokenExpired = errors.New("session token expired")
)

// SessionClaims are the claims carried by an admin session token.
type SessionClaims struct {
	Type  string `json:"typ"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Session is a freshly issued token and its expiry.
type Session struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// SessionIssuer signs and verifies stateless admin session tokens.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionIssuer creates an HS256 issuer. ttl is the session lifetime.
func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (s *SessionIssuer) WithClock(now func() time.Time) *SessionIssuer {
	clone := *s
	clone.now = now
	return &clone
}

// TTL returns the configured session lifetime.
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

// Issue mints a token for subject that expires ttl from now.
func (s *SessionIssuer) Issue(subject, email string) (*Session, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	claims := SessionClaims{
		Type:  SessionTokenType,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Session{Token: signed, Subject: subject, ExpiresAt: expiresAt}, nil
}

// Validate verifies the signature and expiry of a session token. No storage
// is consulted.
func (s *SessionIssuer) Validate(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != SessionTokenType || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(s.now(), true) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}
