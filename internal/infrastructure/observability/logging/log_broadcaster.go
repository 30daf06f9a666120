package logging

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// LogEntry is one log record as sent to live stream subscribers.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Channel   string `json:"channel"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// StreamFilter selects the entries a subscriber receives. An empty or "all"
// channel matches every channel.
type StreamFilter struct {
	Channel Channel
	Level   slog.Level
}

func (f StreamFilter) matches(entry LogEntry) bool {
	if f.Channel != "" && f.Channel != "all" && f.Channel != Channel(entry.Channel) {
		return false
	}
	return ParseLevel(entry.Level) >= f.Level
}

// Subscriber receives encoded LogEntry values on Messages. Messages is
// closed on Unsubscribe.
type Subscriber struct {
	Messages chan []byte
	filter   StreamFilter
}

// LogBroadcaster fans log entries out to live subscribers. Slow subscribers
// miss entries rather than blocking the logger.
type LogBroadcaster struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	buffer      int
}

// NewLogBroadcaster creates a broadcaster with a per-subscriber buffer.
func NewLogBroadcaster(buffer int) *LogBroadcaster {
	if buffer < 1 {
		buffer = 100
	}
	return &LogBroadcaster{
		subscribers: make(map[*Subscriber]struct{}),
		buffer:      buffer,
	}
}

// Subscribe registers a new subscriber.
func (b *LogBroadcaster) Subscribe(filter StreamFilter) *Subscriber {
	s := &Subscriber{Messages: make(chan []byte, b.buffer), filter: filter}
	b.mu.Lock()
	b.subscribers[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Unsubscribe removes s and closes its channel. Safe to call twice.
func (b *LogBroadcaster) Unsubscribe(s *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[s]; ok {
		delete(b.subscribers, s)
		close(s.Messages)
	}
}

// Subscribers is the number of connected subscribers.
func (b *LogBroadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Publish delivers entry to every matching subscriber without blocking.
func (b *LogBroadcaster) Publish(entry LogEntry) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.subscribers) == 0 {
		return
	}

	message, err := json.Marshal(entry)
	if err != nil {
		return
	}
	for s := range b.subscribers {
		if !s.filter.matches(entry) {
			continue
		}
		select {
		case s.Messages <- message:
		default:
		}
	}
}

// Close unsubscribes everyone.
func (b *LogBroadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subscribers {
		delete(b.subscribers, s)
		close(s.Messages)
	}
}

// broadcastWriter is an io.Writer fed by a JSON slog handler. Each write is
// one record.
type broadcastWriter struct {
	broadcaster *LogBroadcaster
}

func (w broadcastWriter) Write(p []byte) (int, error) {
	var raw map[string]any
	if err := json.Unmarshal(p, &raw); err != nil {
		return len(p), nil
	}
	w.broadcaster.Publish(LogEntry{
		Timestamp: stringField(raw, slog.TimeKey),
		Level:     strings.ToUpper(stringField(raw, slog.LevelKey)),
		Channel:   stringField(raw, "channel"),
		Message:   stringField(raw, slog.MessageKey),
		RequestID: stringField(raw, "requestId"),
	})
	return len(p), nil
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
