// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/application/container"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/caseeval-go/internal/presentation/http/server"
	"github.com/AtRiskMedia/caseeval-go/pkg/config"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 30 * time.Second

// NewLogger builds the channeled logger described by cfg.
func NewLogger(cfg *config.Config) (*logging.ChanneledLogger, error) {
	return logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    cfg.LogToFile,
		OutputToConsole: true,
		LogDirectory:    cfg.LogDirectory,
		JSONFormat:      cfg.LogJSON,
		Broadcast:       cfg.LogJSON,
		DefaultLevel:    logging.ParseLevel(cfg.LogLevel),
		ChannelLevels:   make(map[logging.Channel]slog.Level),
	})
}

// Initialize runs the server until SIGINT or SIGTERM.
func Initialize(cfg *config.Config) error {
	setupGin(cfg)
	start := time.Now().UTC()

	logger, err := NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	if cfg.JWTSecret == "" {
		secret, err := security.GenerateSecureKey(32)
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		cfg.JWTSecret = secret
		logger.Startup().Warn("JWT_SECRET is not set; using a random secret, sessions will not survive a restart")
	}

	phaseStart := time.Now()
	appContainer, err := container.NewContainer(cfg, logger)
	if err != nil {
		logger.LogStartupPhase("container", time.Since(phaseStart), false)
		return err
	}
	logger.LogStartupPhase("container", time.Since(phaseStart), true)

	// The store opens lazily; probing here only reports problems early.
	phaseStart = time.Now()
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 5*time.Second)
	if err := appContainer.DBProvider.Ping(probeCtx); err != nil {
		logger.Startup().Warn("Lead store not reachable at startup; will retry on first request", "error", err.Error())
		logger.LogStartupPhase("database", time.Since(phaseStart), false)
	} else {
		logger.LogStartupPhase("database", time.Since(phaseStart), true)
	}
	cancelProbe()

	if !cfg.NotificationsEnabled() {
		logger.Startup().Info("Lead notifications disabled; set RESEND_API_KEY and LEAD_NOTIFY_EMAIL to enable")
	}

	httpServer := server.New(cfg.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", cfg.Port,
		"databaseType", cfg.DatabaseType,
		"ginMode", cfg.GinMode)

	select {
	case <-gracefulShutdown:
		logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	case err := <-serverErr:
		if err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
			_ = appContainer.Close()
			return err
		}
	}

	shutdownStart := time.Now()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	if err := appContainer.Close(); err != nil {
		logger.Shutdown().Error("Error closing lead store", "error", err.Error())
	} else {
		logger.Shutdown().Info("Lead store closed successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupGin configures gin and the standard logger
func setupGin(cfg *config.Config) {
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.GinMode == gin.TestMode {
		gin.SetMode(gin.TestMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
