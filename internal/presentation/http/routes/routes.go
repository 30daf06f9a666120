// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/AtRiskMedia/caseeval-go/internal/application/container"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	logger := container.Logger

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.AccessLogMiddleware(logger))
	r.Use(middleware.MetricsMiddleware(container.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Startup().Warn("Invalid trusted proxy list, trusting none", "error", err.Error())
		_ = r.SetTrustedProxies(nil)
	}

	// Initialize handlers
	siteHandlers := handlers.NewSiteHandlers(container.Renderer, logger)
	submissionHandlers := handlers.NewSubmissionHandlers(container.SubmissionService, container.LeadQueryService, logger)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, logger, cfg.CookieSecure)
	adminHandlers := handlers.NewAdminHandlers(container.AuthService, container.LeadQueryService, container.Renderer, logger, cfg.CookieSecure)
	healthHandlers := handlers.NewHealthHandlers(container.DBProvider, logger)
	logHandlers := handlers.NewLogHandlers(logger)

	requireAPI := middleware.RequireAdminAPI(container.AuthService, logger)
	requireUI := middleware.RequireAdminUI(container.AuthService, logger)

	r.GET("/healthz", healthHandlers.GetHealth)
	r.GET("/metrics", gin.WrapH(container.Metrics.Handler()))

	// Public site
	r.GET("/", siteHandlers.GetHome)
	r.GET("/cases/:slug", siteHandlers.GetCaseType)
	r.GET("/evaluation", siteHandlers.GetEvaluation)

	api := r.Group("/api/v1")
	{
		api.GET("/case-types", siteHandlers.GetCaseTypes)

		api.POST("/submissions", submissionHandlers.PostSubmission)
		api.GET("/submissions", requireAPI, submissionHandlers.GetSubmissions)
		api.GET("/submissions/:id", requireAPI, submissionHandlers.GetSubmission)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		adminAPI := api.Group("/admin", requireAPI)
		{
			adminAPI.GET("/log-levels", logHandlers.GetLogLevels)
			adminAPI.POST("/log-levels", logHandlers.SetLogLevel)
			adminAPI.GET("/logs/stream", logHandlers.StreamLogs)
		}
	}

	// Admin dashboard. Login and logout sit outside the guarded group.
	r.GET(middleware.LoginPath, adminHandlers.GetLogin)
	r.POST(middleware.LoginPath, adminHandlers.PostLogin)
	r.POST("/admin/logout", adminHandlers.PostLogout)

	dashboard := r.Group("/admin", requireUI)
	{
		dashboard.GET("", adminHandlers.GetSubmissions)
		dashboard.GET("/submissions", adminHandlers.GetSubmissions)
		dashboard.GET("/submissions/:id", adminHandlers.GetSubmission)
	}

	r.NoRoute(middleware.ForAdminPaths(requireUI), siteHandlers.NotFound)

	return r
}
