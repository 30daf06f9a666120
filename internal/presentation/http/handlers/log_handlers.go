package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// LogHandlers lets an admin inspect and change per-channel log levels and
// follow the live log stream.
type LogHandlers struct {
	logger *logging.ChanneledLogger
}

// NewLogHandlers creates log handlers
func NewLogHandlers(logger *logging.ChanneledLogger) *LogHandlers {
	return &LogHandlers{logger: logger}
}

// GetLogLevels handles GET /api/v1/admin/log-levels - current level of every channel.
func (h *LogHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}

// SetLogLevel handles POST /api/v1/admin/log-levels - sets the level for one channel.
func (h *LogHandlers) SetLogLevel(c *gin.Context) {
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	level, ok := parseStrictLevel(req.Level)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log level specified"})
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to set log level", "details": err.Error()})
		return
	}

	h.logger.System().Info("Log level changed", "channel", req.Channel, "level", level.String())
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": fmt.Sprintf("Log level for channel '%s' set to '%s'", req.Channel, level.String())})
}

// StreamLogs handles GET /api/v1/admin/logs/stream - server-sent events of
// live log records, filtered by ?channel= and ?level=.
func (h *LogHandlers) StreamLogs(c *gin.Context) {
	broadcaster := h.logger.Broadcaster()
	if broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live log streaming is disabled"})
		return
	}

	level, ok := parseStrictLevel(c.DefaultQuery("level", "INFO"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log level specified"})
		return
	}
	sub := broadcaster.Subscribe(logging.StreamFilter{
		Channel: logging.Channel(c.DefaultQuery("channel", "all")),
		Level:   level,
	})
	defer broadcaster.Unsubscribe(sub)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	fmt.Fprint(c.Writer, ": connection established\n\n")
	c.Writer.Flush()

	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			return
		case message, open := <-sub.Messages:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", message)
			c.Writer.Flush()
		}
	}
}

func parseStrictLevel(value string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
