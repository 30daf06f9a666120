// Package services provides application-level orchestration services
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/metrics"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/security"
)

// SubmissionService turns a validated case evaluation into a stored lead.
type SubmissionService struct {
	repo     leads.Repository
	notifier email.LeadNotifier
	metrics  *metrics.Metrics
	logger   *logging.ChanneledLogger
	newID    func() string
	now      func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(repo leads.Repository, notifier email.LeadNotifier, m *metrics.Metrics, logger *logging.ChanneledLogger) *SubmissionService {
	if notifier == nil {
		notifier = email.NoopNotifier{}
	}
	return &SubmissionService{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		newID:    security.GenerateULID,
		now:      time.Now,
	}
}

// Submit normalizes and validates sub, then appends exactly one lead with
// the given request metadata. Identical payloads produce distinct leads.
// Returns *leads.ValidationError for bad input.
func (s *SubmissionService) Submit(ctx context.Context, sub leads.Submission, meta leads.RequestMeta) (*leads.Lead, error) {
	start := time.Now()
	sub = sub.Normalize()

	if err := leads.ValidateSubmission(sub); err != nil {
		var verr *leads.ValidationError
		if errors.As(err, &verr) {
			s.metrics.SubmissionRecorded(metrics.ResultInvalid)
			s.logger.WithContext(logging.ChannelLeads, ctx).Info("Submission rejected", "fields", len(verr.Fields))
		}
		return nil, err
	}

	lead := leads.NewLead(s.newID(), sub, meta, s.now())

	if _, err := s.repo.Insert(ctx, lead); err != nil {
		s.metrics.SubmissionRecorded(metrics.ResultError)
		s.logger.WithContext(logging.ChannelLeads, ctx).Error("Failed to store submission", "error", err.Error())
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.metrics.SubmissionRecorded(metrics.ResultSuccess)
	s.logger.WithContext(logging.ChannelLeads, ctx).Info("Submission stored",
		"leadId", lead.ID,
		"caseType", lead.CaseType,
		"ip", lead.IPAddress,
		"duration", time.Since(start))

	if err := s.notifier.NotifyNewLead(ctx, lead); err != nil {
		s.logger.Email().Warn("Lead notification failed", "leadId", lead.ID, "error", err.Error())
	}

	return lead, nil
}
