// Package leads defines the lead record, the query shapes used by the admin
// listing, and the repository contract for the append-only lead store.
package leads

import (
	"context"
	"errors"
	"time"
)

// Sentinel values recorded when request metadata is unavailable.
const (
	UnknownIPAddress = "0.0.0.0"
	UnknownUserAgent = "Unknown"
)

// ErrNotFound is returned when a lead ID does not exist.
var ErrNotFound = errors.New("lead not found")

// Lead is one persisted case evaluation submission.
type Lead struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	CaseType         string    `json:"caseType"`
	ExposurePeriod   string    `json:"exposurePeriod,omitempty"`
	MedicalCondition string    `json:"medicalCondition,omitempty"`
	AdditionalInfo   string    `json:"additionalInfo,omitempty"`
	IPAddress        string    `json:"ipAddress"`
	UserAgent        string    `json:"userAgent"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FullName joins first and last name for display.
func (l *Lead) FullName() string {
	switch {
	case l.FirstName == "":
		return l.LastName
	case l.LastName == "":
		return l.FirstName
	default:
		return l.FirstName + " " + l.LastName
	}
}

// Submission is the client-controlled part of a lead. Request metadata is
// deliberately absent so it can never be supplied by the caller.
type Submission struct {
	FirstName        string `json:"firstName" validate:"required,notblank,max=100"`
	LastName         string `json:"lastName" validate:"required,notblank,max=100"`
	Email            string `json:"email" validate:"required,notblank,email,max=254"`
	Phone            string `json:"phone" validate:"required,notblank,max=40"`
	CaseType         string `json:"caseType" validate:"required,notblank,max=100"`
	ExposurePeriod   string `json:"exposurePeriod" validate:"max=200"`
	MedicalCondition string `json:"medicalCondition" validate:"max=2000"`
	AdditionalInfo   string `json:"additionalInfo" validate:"max=5000"`
}

// RequestMeta is the server-derived attribution for a submission.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// NewLead builds a lead from a submission and its request metadata. Missing
// metadata falls back to the sentinel values.
func NewLead(id string, sub Submission, meta RequestMeta, now time.Time) *Lead {
	if meta.IPAddress == "" {
		meta.IPAddress = UnknownIPAddress
	}
	if meta.UserAgent == "" {
		meta.UserAgent = UnknownUserAgent
	}
	now = now.UTC()
	return &Lead{
		ID:               id,
		FirstName:        sub.FirstName,
		LastName:         sub.LastName,
		Email:            sub.Email,
		Phone:            sub.Phone,
		CaseType:         sub.CaseType,
		ExposurePeriod:   sub.ExposurePeriod,
		MedicalCondition: sub.MedicalCondition,
		AdditionalInfo:   sub.AdditionalInfo,
		IPAddress:        meta.IPAddress,
		UserAgent:        meta.UserAgent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Filter selects leads. An empty Search matches every lead; otherwise a lead
// matches when first name, last name, email or case type contains Search,
// ignoring case.
type Filter struct {
	Search string
}

// FindOptions is the window applied to a filtered, newest-first result set.
type FindOptions struct {
	Skip  int
	Limit int
}

// Repository is the append-and-query contract of the lead store. There is
// no update or delete.
type Repository interface {
	Insert(ctx context.Context, lead *Lead) (string, error)
	Count(ctx context.Context, filter Filter) (int, error)
	Find(ctx context.Context, filter Filter, opts FindOptions) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
}
