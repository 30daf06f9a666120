package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/admin"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/metrics"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu       sync.Mutex
	items    []*leads.Lead
	failWith error
	finds    int
}

func (r *memoryRepo) Insert(_ context.Context, lead *leads.Lead) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return "", r.failWith
	}
	copied := *lead
	r.items = append(r.items, &copied)
	return lead.ID, nil
}

func (r *memoryRepo) matching(filter leads.Filter) []*leads.Lead {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*leads.Lead
	for _, l := range r.items {
		if term == "" ||
			strings.Contains(strings.ToLower(l.FirstName), term) ||
			strings.Contains(strings.ToLower(l.LastName), term) ||
			strings.Contains(strings.ToLower(l.Email), term) ||
			strings.Contains(strings.ToLower(l.CaseType), term) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *memoryRepo) Count(_ context.Context, filter leads.Filter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return 0, r.failWith
	}
	return len(r.matching(filter)), nil
}

func (r *memoryRepo) Find(_ context.Context, filter leads.Filter, opts leads.FindOptions) ([]*leads.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if r.failWith != nil {
		return nil, r.failWith
	}
	all := r.matching(filter)
	if opts.Skip >= len(all) {
		return []*leads.Lead{}, nil
	}
	end := opts.Skip + opts.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[opts.Skip:end], nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*leads.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.items {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, leads.ErrNotFound
}

type countingNotifier struct {
	calls int
	err   error
}

func (n *countingNotifier) NotifyNewLead(context.Context, *leads.Lead) error {
	n.calls++
	return n.err
}

func validSubmission() leads.Submission {
	return leads.Submission{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-0100",
		CaseType:  "roundup",
	}
}

func newSubmissionService(repo leads.Repository, notifier *countingNotifier) *SubmissionService {
	return NewSubmissionService(repo, notifier, metrics.New(), logging.NewDiscardLogger())
}

func TestSubmitStoresLeadWithMetadata(t *testing.T) {
	repo := &memoryRepo{}
	notifier := &countingNotifier{}
	svc := newSubmissionService(repo, notifier)

	sub := validSubmission()
	sub.FirstName = "  Jane  "
	lead, err := svc.Submit(context.Background(), sub, leads.RequestMeta{IPAddress: "203.0.113.5", UserAgent: "curl/8"})
	require.NoError(t, err)

	require.Len(t, repo.items, 1)
	stored := repo.items[0]
	assert.Equal(t, lead.ID, stored.ID)
	assert.Equal(t, "Jane", stored.FirstName)
	assert.Equal(t, "203.0.113.5", stored.IPAddress)
	assert.Equal(t, "curl/8", stored.UserAgent)
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	assert.Equal(t, 1, notifier.calls)
}

func TestSubmitDuplicatesAreDistinct(t *testing.T) {
	repo := &memoryRepo{}
	svc := newSubmissionService(repo, &countingNotifier{})

	a, err := svc.Submit(context.Background(), validSubmission(), leads.RequestMeta{})
	require.NoError(t, err)
	b, err := svc.Submit(context.Background(), validSubmission(), leads.RequestMeta{})
	require.NoError(t, err)

	assert.Len(t, repo.items, 2)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, leads.UnknownIPAddress, a.IPAddress)
	assert.Equal(t, leads.UnknownUserAgent, a.UserAgent)
}

func TestSubmitRejectsInvalidWithoutWriting(t *testing.T) {
	repo := &memoryRepo{}
	notifier := &countingNotifier{}
	svc := newSubmissionService(repo, notifier)

	sub := validSubmission()
	sub.Email = "not-an-email"
	sub.Phone = "   "

	_, err := svc.Submit(context.Background(), sub, leads.RequestMeta{})
	var verr *leads.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "phone")
	assert.Empty(t, repo.items)
	assert.Zero(t, notifier.calls)
}

func TestSubmitStoreFailure(t *testing.T) {
	repo := &memoryRepo{failWith: errors.New("disk full")}
	notifier := &countingNotifier{}
	svc := newSubmissionService(repo, notifier)

	_, err := svc.Submit(context.Background(), validSubmission(), leads.RequestMeta{})
	assert.ErrorContains(t, err, "disk full")
	assert.Zero(t, notifier.calls)
}

func TestSubmitIgnoresNotificationFailure(t *testing.T) {
	repo := &memoryRepo{}
	svc := newSubmissionService(repo, &countingNotifier{err: errors.New("smtp down")})

	_, err := svc.Submit(context.Background(), validSubmission(), leads.RequestMeta{})
	assert.NoError(t, err)
	assert.Len(t, repo.items, 1)
}

func seedRepo(n int) *memoryRepo {
	repo := &memoryRepo{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.items = append(repo.items, &leads.Lead{
			ID:        fmt.Sprintf("%026d", i),
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  "Last",
			Email:     fmt.Sprintf("user%d@example.com", i),
			CaseType:  "roundup",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return repo
}

func TestListPagination(t *testing.T) {
	svc := NewLeadQueryService(seedRepo(23), logging.NewDiscardLogger())

	for _, limit := range []int{1, 3, 10, 23, 100} {
		for page := 1; page <= 5; page++ {
			result, err := svc.List(context.Background(), leads.PageRequest{Page: page, Limit: limit})
			require.NoError(t, err)

			want := 23 - (page-1)*limit
			if want < 0 {
				want = 0
			}
			if want > limit {
				want = limit
			}
			assert.Len(t, result.Submissions, want, "page=%d limit=%d", page, limit)
			assert.Equal(t, (23+limit-1)/limit, result.Pagination.Pages)
			assert.Equal(t, 23, result.Pagination.Total)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := NewLeadQueryService(seedRepo(3), logging.NewDiscardLogger())

	result, err := svc.List(context.Background(), leads.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Submissions, 3)
	assert.Equal(t, "First2", result.Submissions[0].FirstName)
	assert.Equal(t, "First0", result.Submissions[2].FirstName)
}

func TestListPageBeyondEnd(t *testing.T) {
	repo := seedRepo(5)
	svc := NewLeadQueryService(repo, logging.NewDiscardLogger())

	result, err := svc.List(context.Background(), leads.PageRequest{Page: 999, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, result.Submissions)
	assert.Empty(t, result.Submissions)
	assert.Equal(t, leads.Pagination{Total: 5, Page: 999, Limit: 10, Pages: 1}, result.Pagination)
	assert.Zero(t, repo.finds)
}

func TestListEmptyStore(t *testing.T) {
	svc := NewLeadQueryService(&memoryRepo{}, logging.NewDiscardLogger())

	result, err := svc.List(context.Background(), leads.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, result.Submissions)
	assert.Equal(t, 0, result.Pagination.Pages)
}

func TestListStoreFailure(t *testing.T) {
	repo := seedRepo(2)
	repo.failWith = errors.New("connection refused")
	svc := NewLeadQueryService(repo, logging.NewDiscardLogger())

	result, err := svc.List(context.Background(), leads.PageRequest{Page: 1, Limit: 10})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestGetLead(t *testing.T) {
	svc := NewLeadQueryService(seedRepo(2), logging.NewDiscardLogger())

	lead, err := svc.Get(context.Background(), fmt.Sprintf("%026d", 1))
	require.NoError(t, err)
	assert.Equal(t, "First1", lead.FirstName)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, leads.ErrNotFound)
}

func newAuthService() *AuthService {
	return NewAuthService(
		admin.NewStaticCredentialStore("admin@example.com", "correct horse"),
		security.NewSessionIssuer("test-secret", 24*time.Hour),
		metrics.New(),
		logging.NewDiscardLogger(),
	)
}

func TestLoginIssuesValidSession(t *testing.T) {
	svc := newAuthService()

	session, err := svc.Login("admin@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.DefaultSubject, claims.Subject)
	assert.Equal(t, 24*time.Hour, svc.SessionTTL())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService()

	_, wrongPassword := svc.Login("admin@example.com", "nope")
	_, wrongEmail := svc.Login("someone@example.com", "correct horse")
	_, wrongCase := svc.Login("Admin@example.com", "correct horse")

	assert.ErrorIs(t, wrongPassword, admin.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongEmail, admin.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongCase, admin.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), wrongEmail.Error())
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := newAuthService().ValidateToken("garbage")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
