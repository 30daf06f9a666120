// Package admin models administrator identities and the credential store the
// session gate authenticates against.
package admin

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the single failure returned for any bad login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is an administrator identity.
type Account struct {
	Subject string
	Email   string
}

// CredentialStore verifies an email/password pair.
type CredentialStore interface {
	Authenticate(email, password string) (*Account, error)
}

// DefaultSubject is the session subject of the single configured administrator.
const DefaultSubject = "admin"

// StaticCredentialStore holds exactly one account supplied from configuration.
// The configured password may be plain text or a bcrypt hash.
type StaticCredentialStore struct {
	account  Account
	password string
	isHash   bool
	// dummyHash keeps the failure path as slow as a real comparison.
	dummyHash []byte
}

// NewStaticCredentialStore creates the store for one administrator.
func NewStaticCredentialStore(email, password string) *StaticCredentialStore {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("caseeval-placeholder"), bcrypt.MinCost)
	return &StaticCredentialStore{
		account:   Account{Subject: DefaultSubject, Email: email},
		password:  password,
		isHash:    IsBcryptHash(password),
		dummyHash: dummy,
	}
}

// Authenticate compares the email case-sensitively and the password either
// exactly or against the bcrypt hash. Wrong email and wrong password return
// the same error.
func (s *StaticCredentialStore) Authenticate(email, password string) (*Account, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.account.Email)) == 1
	passwordOK := s.checkPassword(password)

	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}
	account := s.account
	return &account, nil
}

func (s *StaticCredentialStore) checkPassword(password string) bool {
	if s.isHash {
		return bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	}
	// Burn a comparable amount of time to the hashed path.
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
}

// IsBcryptHash reports whether value looks like a bcrypt hash.
func IsBcryptHash(value string) bool {
	if len(value) != 60 {
		return false
	}
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
