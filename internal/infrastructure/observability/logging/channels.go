// Package logging provides structured logging channels for the lead intake
// service, one slog.Logger per logical component.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Channel represents a logical logging channel for different system components
type Channel string

const (
	// System channels
	ChannelSystem   Channel = "system"   // General system operations
	ChannelStartup  Channel = "startup"  // Application startup and initialization
	ChannelShutdown Channel = "shutdown" // Application shutdown and cleanup

	// Business logic channels
	ChannelAuth  Channel = "auth"  // Admin authentication and session checks
	ChannelLeads Channel = "leads" // Lead intake and retrieval

	// Infrastructure channels
	ChannelDatabase  Channel = "database"   // Database operations and queries
	ChannelSlowQuery Channel = "slow-query" // Slow database queries
	ChannelHTTP      Channel = "http"       // Request access log
	ChannelEmail     Channel = "email"      // Outbound notifications
)

var allChannels = []Channel{
	ChannelSystem, ChannelStartup, ChannelShutdown,
	ChannelAuth, ChannelLeads,
	ChannelDatabase, ChannelSlowQuery, ChannelHTTP, ChannelEmail,
}

type contextKey string

// RequestIDKey is the context key carrying the per-request correlation ID.
const RequestIDKey contextKey = "requestId"

// ChanneledLogger provides structured logging with multiple channels
type ChanneledLogger struct {
	channels    map[Channel]*slog.Logger
	files       map[Channel]*os.File
	config      *LoggerConfig
	configMu    sync.RWMutex
	broadcaster *LogBroadcaster
}

// LoggerConfig contains configuration options for the channeled logger
type LoggerConfig struct {
	OutputToFile    bool   `json:"outputToFile"`    // Whether to write logs to files
	OutputToConsole bool   `json:"outputToConsole"` // Whether to write logs to console
	LogDirectory    string `json:"logDirectory"`    // Directory for log files

	JSONFormat    bool `json:"jsonFormat"`    // Use JSON format for structured logging
	IncludeSource bool `json:"includeSource"` // Include source file and line in logs

	DefaultLevel  slog.Level             `json:"defaultLevel"`  // Default log level
	ChannelLevels map[Channel]slog.Level `json:"channelLevels"` // Per-channel log levels

	// Broadcast tees every record to live stream subscribers. Requires JSONFormat.
	Broadcast bool `json:"broadcast"`

	// Output overrides console and file output when set. Used by tests.
	Output io.Writer `json:"-"`
}

// DefaultLoggerConfig returns a sensible default configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: true,
		LogDirectory:    "logs",
		JSONFormat:      true,
		IncludeSource:   false,
		DefaultLevel:    slog.LevelInfo,
		ChannelLevels:   make(map[Channel]slog.Level),
	}
}

// NewChanneledLogger creates a new channeled logger with the given configuration
func NewChanneledLogger(config *LoggerConfig) (*ChanneledLogger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}
	if config.ChannelLevels == nil {
		config.ChannelLevels = make(map[Channel]slog.Level)
	}

	logger := &ChanneledLogger{
		channels: make(map[Channel]*slog.Logger),
		files:    make(map[Channel]*os.File),
		config:   config,
	}

	if config.Broadcast && config.JSONFormat {
		logger.broadcaster = NewLogBroadcaster(100)
	}

	if config.OutputToFile && config.Output == nil {
		if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	for _, channel := range allChannels {
		channelLogger, err := logger.createChannelLogger(channel)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger for channel %s: %w", channel, err)
		}
		logger.channels[channel] = channelLogger
	}

	return logger, nil
}

// NewDiscardLogger returns a logger that drops everything.
func NewDiscardLogger() *ChanneledLogger {
	logger, _ := NewChanneledLogger(&LoggerConfig{
		Output:       io.Discard,
		DefaultLevel: slog.LevelError,
	})
	return logger
}

// createChannelLogger creates a slog.Logger for a specific channel
func (cl *ChanneledLogger) createChannelLogger(channel Channel) (*slog.Logger, error) {
	level := cl.config.DefaultLevel
	if channelLevel, exists := cl.config.ChannelLevels[channel]; exists {
		level = channelLevel
	}

	var writers []io.Writer

	if cl.config.Output != nil {
		writers = append(writers, cl.config.Output)
	} else {
		if cl.config.OutputToConsole {
			writers = append(writers, os.Stdout)
		}

		if cl.config.OutputToFile {
			file, err := cl.channelFile(channel)
			if err != nil {
				return nil, err
			}
			writers = append(writers, file)
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = os.Stdout
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}

	if cl.broadcaster != nil {
		writer = io.MultiWriter(writer, broadcastWriter{broadcaster: cl.broadcaster})
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cl.config.IncludeSource,
	}

	var handler slog.Handler
	if cl.config.JSONFormat {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	return slog.New(handler).With(slog.String("channel", string(channel))), nil
}

// channelFile opens (once) the append-only file backing a channel.
func (cl *ChanneledLogger) channelFile(channel Channel) (*os.File, error) {
	if file, ok := cl.files[channel]; ok {
		return file, nil
	}
	path := filepath.Join(cl.config.LogDirectory, string(channel)+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	cl.files[channel] = file
	return file, nil
}

func (cl *ChanneledLogger) channel(channel Channel) *slog.Logger {
	cl.configMu.RLock()
	defer cl.configMu.RUnlock()
	return cl.channels[channel]
}

func (cl *ChanneledLogger) System() *slog.Logger    { return cl.channel(ChannelSystem) }
func (cl *ChanneledLogger) Startup() *slog.Logger   { return cl.channel(ChannelStartup) }
func (cl *ChanneledLogger) Shutdown() *slog.Logger  { return cl.channel(ChannelShutdown) }
func (cl *ChanneledLogger) Auth() *slog.Logger      { return cl.channel(ChannelAuth) }
func (cl *ChanneledLogger) Leads() *slog.Logger     { return cl.channel(ChannelLeads) }
func (cl *ChanneledLogger) Database() *slog.Logger  { return cl.channel(ChannelDatabase) }
func (cl *ChanneledLogger) SlowQuery() *slog.Logger { return cl.channel(ChannelSlowQuery) }
func (cl *ChanneledLogger) HTTP() *slog.Logger      { return cl.channel(ChannelHTTP) }
func (cl *ChanneledLogger) Email() *slog.Logger     { return cl.channel(ChannelEmail) }

// GetChannel returns a logger for a specific channel
func (cl *ChanneledLogger) GetChannel(channel Channel) *slog.Logger {
	if logger := cl.channel(channel); logger != nil {
		return logger
	}
	return cl.System()
}

// WithContext returns a channel logger carrying the request ID found in ctx.
func (cl *ChanneledLogger) WithContext(channel Channel, ctx context.Context) *slog.Logger {
	logger := cl.GetChannel(channel)
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.With(slog.String("requestId", requestID))
	}
	return logger
}

// LogSlowQuery logs a slow database query
func (cl *ChanneledLogger) LogSlowQuery(query string, duration time.Duration) {
	cl.SlowQuery().Warn("Slow query detected",
		slog.String("query", sanitizeQuery(query)),
		slog.Duration("duration", duration),
	)
}

// LogAuthOperation logs authentication operations with security context
func (cl *ChanneledLogger) LogAuthOperation(operation, subject string, success bool, metadata map[string]any) {
	logger := cl.Auth().With(
		slog.String("operation", operation),
		slog.String("subject", MaskIdentifier(subject)),
		slog.Bool("success", success),
	)
	for key, value := range metadata {
		logger = logger.With(slog.Any(key, value))
	}

	if success {
		logger.Info("Authentication operation completed")
	} else {
		logger.Warn("Authentication operation failed")
	}
}

// LogStartupPhase logs application startup phases
func (cl *ChanneledLogger) LogStartupPhase(phase string, duration time.Duration, success bool) {
	logger := cl.Startup().With(
		slog.String("phase", phase),
		slog.Duration("duration", duration),
		slog.Bool("success", success),
	)
	if success {
		logger.Info("Startup phase completed")
	} else {
		logger.Error("Startup phase failed")
	}
}

// sanitizeQuery flattens whitespace and truncates long queries.
func sanitizeQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > 500 {
		query = query[:500] + "..."
	}
	return query
}

// MaskIdentifier partially masks emails and IDs for privacy
func MaskIdentifier(id string) string {
	if len(id) <= 4 {
		return "****"
	}
	return id[:2] + "****" + id[len(id)-2:]
}

// Broadcaster returns the live stream broadcaster, or nil when disabled.
func (cl *ChanneledLogger) Broadcaster() *LogBroadcaster {
	return cl.broadcaster
}

// Close closes all file handles and live stream subscribers.
func (cl *ChanneledLogger) Close() error {
	cl.configMu.Lock()
	defer cl.configMu.Unlock()

	if cl.broadcaster != nil {
		cl.broadcaster.Close()
	}

	var firstErr error
	for channel, file := range cl.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(cl.files, channel)
	}
	return firstErr
}

// SetChannelLevel dynamically sets the log level for a specific channel
func (cl *ChanneledLogger) SetChannelLevel(channel Channel, level slog.Level) error {
	cl.configMu.Lock()
	defer cl.configMu.Unlock()

	if _, exists := cl.channels[channel]; !exists {
		return fmt.Errorf("channel %s does not exist", channel)
	}

	cl.config.ChannelLevels[channel] = level

	newLogger, err := cl.createChannelLogger(channel)
	if err != nil {
		return fmt.Errorf("failed to recreate logger for channel %s: %w", channel, err)
	}
	cl.channels[channel] = newLogger
	return nil
}

// GetChannelLevels returns the current log levels for all channels.
func (cl *ChanneledLogger) GetChannelLevels() map[string]string {
	cl.configMu.RLock()
	defer cl.configMu.RUnlock()

	levels := make(map[string]string, len(cl.channels))
	for channel := range cl.channels {
		if level, ok := cl.config.ChannelLevels[channel]; ok {
			levels[string(channel)] = level.String()
		} else {
			levels[string(channel)] = cl.config.DefaultLevel.String()
		}
	}
	return levels
}

// ParseLevel maps a LOG_LEVEL string to a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
