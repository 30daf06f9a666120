package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
)

// LeadPage is one page of the admin listing.
type LeadPage struct {
	Submissions []*leads.Lead    `json:"submissions"`
	Pagination  leads.Pagination `json:"pagination"`
}

// LeadQueryService serves the admin listing and detail views.
type LeadQueryService struct {
	repo   leads.Repository
	logger *logging.ChanneledLogger
}

// NewLeadQueryService creates a new lead query service
func NewLeadQueryService(repo leads.Repository, logger *logging.ChanneledLogger) *LeadQueryService {
	return &LeadQueryService{repo: repo, logger: logger}
}

// List counts the matching leads and loads the requested window, newest
// first. Any store error fails the whole call. Submissions is never nil.
func (s *LeadQueryService) List(ctx context.Context, req leads.PageRequest) (*LeadPage, error) {
	start := time.Now()
	filter := leads.Filter{Search: req.Search}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	page := &LeadPage{
		Submissions: []*leads.Lead{},
		Pagination:  leads.NewPagination(total, req.Page, req.Limit),
	}

	skip := req.Skip()
	if total > 0 && skip < total {
		found, err := s.repo.Find(ctx, filter, leads.FindOptions{Skip: skip, Limit: req.Limit})
		if err != nil {
			return nil, fmt.Errorf("failed to load submissions: %w", err)
		}
		if found != nil {
			page.Submissions = found
		}
	}

	s.logger.WithContext(logging.ChannelLeads, ctx).Debug("Submissions listed",
		"total", total,
		"page", req.Page,
		"limit", req.Limit,
		"returned", len(page.Submissions),
		"searched", req.Search != "",
		"duration", time.Since(start))

	return page, nil
}

// Get loads one lead. Returns leads.ErrNotFound for unknown IDs.
func (s *LeadQueryService) Get(ctx context.Context, id string) (*leads.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return lead, nil
}
