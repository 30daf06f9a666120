// Package email provides the email client for sending transactional emails.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/casetypes"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/email/templates"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/pkg/config"
	"github.com/resendlabs/resend-go"
)

// LeadNotifier tells staff about a newly stored lead.
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *leads.Lead) error
}

// NoopNotifier is used when email is not configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyNewLead(context.Context, *leads.Lead) error { return nil }

// Sender delivers one message. It is satisfied by the Resend emails service.
type Sender interface {
	Send(params *resend.SendEmailRequest) (resend.SendEmailResponse, error)
}

// ResendNotifier is the concrete implementation of LeadNotifier using the Resend API.
type ResendNotifier struct {
	sender    Sender
	fromEmail string
	fromName  string
	toEmail   string
	siteName  string
	siteURL   string
	logger    *logging.ChanneledLogger
}

// NewNotifier returns a Resend-backed notifier, or a NoopNotifier when
// RESEND_API_KEY or LEAD_NOTIFY_EMAIL is unset.
func NewNotifier(cfg *config.Config, logger *logging.ChanneledLogger) LeadNotifier {
	if !cfg.NotificationsEnabled() {
		logger.Email().Info("Lead notifications disabled", "reason", "RESEND_API_KEY or LEAD_NOTIFY_EMAIL not set")
		return NoopNotifier{}
	}
	client := resend.NewClient(cfg.ResendAPIKey)
	return NewResendNotifier(client.Emails, cfg, logger)
}

// NewResendNotifier creates a notifier that sends through sender.
func NewResendNotifier(sender Sender, cfg *config.Config, logger *logging.ChanneledLogger) *ResendNotifier {
	return &ResendNotifier{
		sender:    sender,
		fromEmail: cfg.EmailFrom,
		fromName:  cfg.EmailFromName,
		toEmail:   cfg.LeadNotifyEmail,
		siteName:  cfg.SiteName,
		siteURL:   cfg.SiteURL,
		logger:    logger,
	}
}

// NotifyNewLead composes and sends the new-lead email.
func (n *ResendNotifier) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	subject, htmlContent, err := BuildNewLeadEmail(lead, n.siteName, n.siteURL)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail),
		To:      []string{n.toEmail},
		Subject: subject,
		Html:    htmlContent,
		ReplyTo: lead.Email,
	}

	if _, err := n.sender.Send(params); err != nil {
		return fmt.Errorf("failed to send lead notification via Resend: %w", err)
	}

	n.logger.Email().Info("Lead notification sent", "leadId", lead.ID, "duration", time.Since(start))
	return nil
}

// BuildNewLeadEmail renders the subject and HTML body for a new lead.
func BuildNewLeadEmail(lead *leads.Lead, siteName, siteURL string) (string, string, error) {
	caseName := casetypes.DisplayName(lead.CaseType)
	subject := fmt.Sprintf("New case evaluation: %s (%s)", lead.FullName(), caseName)

	intro, err := templates.GetParagraph(fmt.Sprintf("A new %s case evaluation was submitted on %s.", caseName, siteName))
	if err != nil {
		return "", "", err
	}

	details, err := templates.GetDetailsTable([]templates.DetailRow{
		{Label: "Name", Value: lead.FullName()},
		{Label: "Email", Value: lead.Email},
		{Label: "Phone", Value: lead.Phone},
		{Label: "Case type", Value: caseName},
		{Label: "Exposure period", Value: lead.ExposurePeriod},
		{Label: "Medical condition", Value: lead.MedicalCondition},
		{Label: "Additional info", Value: lead.AdditionalInfo},
		{Label: "Submitted", Value: lead.CreatedAt.UTC().Format("Jan 2, 2006 15:04 MST")},
		{Label: "IP address", Value: lead.IPAddress},
	})
	if err != nil {
		return "", "", err
	}

	var content strings.Builder
	content.WriteString(intro)
	content.WriteString(details)

	if siteURL != "" {
		button, err := templates.GetButton(templates.ButtonProps{
			Text: "Open in dashboard",
			URL:  siteURL + "/admin/submissions/" + lead.ID,
		})
		if err != nil {
			return "", "", err
		}
		content.WriteString(button)
	}

	htmlContent, err := templates.GetEmailLayout(templates.EmailLayoutProps{
		Title:     subject,
		Preheader: fmt.Sprintf("%s submitted a %s evaluation", lead.FullName(), caseName),
		Content:   content.String(),
	})
	if err != nil {
		return "", "", err
	}

	return subject, htmlContent, nil
}
