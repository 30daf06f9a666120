package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/pkg/config"
	"github.com/resendlabs/resend-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (s *recordingSender) Send(params *resend.SendEmailRequest) (resend.SendEmailResponse, error) {
	s.sent = append(s.sent, params)
	return resend.SendEmailResponse{}, s.err
}

func testLead() *leads.Lead {
	return leads.NewLead("01HXTESTLEAD0000000000000", leads.Submission{
		FirstName:      "Jane",
		LastName:       "<b>Doe</b>",
		Email:          "jane@example.com",
		Phone:          "555-0100",
		CaseType:       "roundup",
		ExposurePeriod: "1-5 years",
	}, leads.RequestMeta{IPAddress: "203.0.113.9"}, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
}

func notifyConfig() *config.Config {
	return &config.Config{
		ResendAPIKey:    "re_test",
		EmailFrom:       "noreply@example.com",
		EmailFromName:   "Case Evaluation",
		LeadNotifyEmail: "intake@example.com",
		SiteName:        "Case Evaluation Center",
		SiteURL:         "https://cases.example.com",
	}
}

func TestNewNotifierDisabledWithoutConfig(t *testing.T) {
	n := NewNotifier(&config.Config{}, logging.NewDiscardLogger())
	assert.IsType(t, NoopNotifier{}, n)
	assert.NoError(t, n.NotifyNewLead(context.Background(), testLead()))
}

func TestNewNotifierEnabled(t *testing.T) {
	n := NewNotifier(notifyConfig(), logging.NewDiscardLogger())
	assert.IsType(t, &ResendNotifier{}, n)
}

func TestNotifyNewLeadSendsMessage(t *testing.T) {
	sender := &recordingSender{}
	n := NewResendNotifier(sender, notifyConfig(), logging.NewDiscardLogger())

	require.NoError(t, n.NotifyNewLead(context.Background(), testLead()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "Case Evaluation <noreply@example.com>", msg.From)
	assert.Equal(t, []string{"intake@example.com"}, msg.To)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "Roundup")
	assert.Contains(t, msg.Html, "https://cases.example.com/admin/submissions/01HXTESTLEAD0000000000000")
}

func TestNotifyNewLeadReportsSendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("rate limited")}
	n := NewResendNotifier(sender, notifyConfig(), logging.NewDiscardLogger())

	err := n.NotifyNewLead(context.Background(), testLead())
	assert.ErrorContains(t, err, "rate limited")
}

func TestBuildNewLeadEmailEscapesLeadFields(t *testing.T) {
	_, html, err := BuildNewLeadEmail(testLead(), "Case Evaluation Center", "")
	require.NoError(t, err)

	assert.NotContains(t, html, "<b>Doe</b>")
	assert.Contains(t, html, "&lt;b&gt;Doe&lt;/b&gt;")
	assert.Contains(t, html, "1-5 years")
	assert.NotContains(t, html, "Medical condition")
	assert.NotContains(t, html, "Open in dashboard")
}
