package coach

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// TranscriptEvent is one NDJSON line in a session transcript log.
type TranscriptEvent struct {
	Timestamp string `json:"ts"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Direction string `json:"direction"`
	EventType string `json:"event_type"`
	Content   string `json:"content,omitempty"`
}

// TranscriptLogConfig controls transcript logging.
type TranscriptLogConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// TranscriptLogger writes per-session NDJSON transcript files asynchronously.
// Events are dropped, not blocked on, when the queue is full: transcript
// logging must never slow down a coach request.
type TranscriptLogger struct {
	cfg    TranscriptLogConfig
	logger *slog.Logger
	queue  chan TranscriptEvent
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewTranscriptLogger creates a transcript logger. When logging is disabled
// the returned logger accepts and discards events.
func NewTranscriptLogger(cfg TranscriptLogConfig, logger *slog.Logger) (*TranscriptLogger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	t := &TranscriptLogger{
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
	if !cfg.Enabled {
		return t, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript log directory: %w", err)
	}

	t.queue = make(chan TranscriptEvent, cfg.QueueSize)
	t.wg.Add(1)
	go t.writeLoop()
	return t, nil
}

// Log enqueues an event. Never blocks.
func (t *TranscriptLogger) Log(event TranscriptEvent) {
	if t.queue == nil {
		return
	}
	select {
	case t.queue <- event:
	default:
		t.logger.Warn("transcript log queue full, dropping event",
			"user_id", event.UserID,
			"session_id", event.SessionID,
		)
	}
}

// Close drains the queue and stops the writer.
func (t *TranscriptLogger) Close() error {
	close(t.done)
	t.wg.Wait()
	return nil
}

func (t *TranscriptLogger) writeLoop() {
	defer t.wg.Done()
	for {
		select {
		case event := <-t.queue:
			t.writeEvent(event)
		case <-t.done:
			// Drain whatever is left before exiting.
			for {
				select {
				case event := <-t.queue:
					t.writeEvent(event)
				default:
					return
				}
			}
		}
	}
}

func (t *TranscriptLogger) writeEvent(event TranscriptEvent) {
	userDir := filepath.Join(t.cfg.Dir, sanitizePathComponent(event.UserID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.logger.Warn("failed to create transcript directory", "dir", userDir, "error", err)
		return
	}

	path := filepath.Join(userDir, sanitizePathComponent(event.SessionID)+".ndjson")
	line, err := json.Marshal(event)
	if err != nil {
		t.logger.Warn("failed to marshal transcript event", "error", err)
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.logger.Warn("failed to open transcript file", "path", path, "error", err)
		return
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			t.logger.Warn("failed to close transcript file", "path", path, "error", closeErr)
		}
	}()

	if _, err := f.Write(append(line, '\n')); err != nil {
		t.logger.Warn("failed to write transcript event", "path", path, "error", err)
	}
}

// sanitizePathComponent keeps transcript file names safe to place on disk.
func sanitizePathComponent(s string) string {
	if s == "" {
		return "unknown"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
