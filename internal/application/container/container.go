// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"

	"github.com/AtRiskMedia/caseeval-go/internal/application/services"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/admin"
	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/metrics"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/persistence/database"
	persistenceleads "github.com/AtRiskMedia/caseeval-go/internal/infrastructure/persistence/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/templates"
	"github.com/AtRiskMedia/caseeval-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services
	SubmissionService *services.SubmissionService
	LeadQueryService  *services.LeadQueryService
	AuthService       *services.AuthService

	// Presentation
	Renderer *templates.Renderer

	// Infrastructure Dependencies
	Config         *config.Config
	Logger         *logging.ChanneledLogger
	Metrics        *metrics.Metrics
	DBProvider     *database.Provider
	LeadRepository leads.Repository
	Notifier       email.LeadNotifier
}

// NewContainer creates and wires all singleton services. The lead store is
// opened lazily on first use.
func NewContainer(cfg *config.Config, logger *logging.ChanneledLogger) (*Container, error) {
	m := metrics.New()
	provider := database.NewProvider(cfg, logger)
	repo := persistenceleads.NewSQLLeadRepository(provider, logger)
	notifier := email.NewNotifier(cfg, logger)

	renderer, err := templates.NewRenderer(templates.SiteInfo{Name: cfg.SiteName, Phone: cfg.SitePhone})
	if err != nil {
		return nil, fmt.Errorf("failed to build page renderer: %w", err)
	}

	return NewContainerWith(cfg, logger, m, provider, repo, notifier, renderer), nil
}

// NewContainerWith wires services around already constructed infrastructure.
func NewContainerWith(
	cfg *config.Config,
	logger *logging.ChanneledLogger,
	m *metrics.Metrics,
	provider *database.Provider,
	repo leads.Repository,
	notifier email.LeadNotifier,
	renderer *templates.Renderer,
) *Container {
	credentials := admin.NewStaticCredentialStore(cfg.AdminEmail, cfg.AdminPassword)
	issuer := security.NewSessionIssuer(cfg.JWTSecret, cfg.SessionTTL)

	return &Container{
		SubmissionService: services.NewSubmissionService(repo, notifier, m, logger),
		LeadQueryService:  services.NewLeadQueryService(repo, logger),
		AuthService:       services.NewAuthService(credentials, issuer, m, logger),

		Renderer: renderer,

		Config:         cfg,
		Logger:         logger,
		Metrics:        m,
		DBProvider:     provider,
		LeadRepository: repo,
		Notifier:       notifier,
	}
}

// Close releases the lead store.
func (c *Container) Close() error {
	if c.DBProvider == nil {
		return nil
	}
	return c.DBProvider.Close()
}
