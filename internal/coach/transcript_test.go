package coach

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTranscriptLoggerWritesPerSessionNDJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger, err := NewTranscriptLogger(TranscriptLogConfig{
		Enabled:   true,
		Dir:       dir,
		QueueSize: 16,
	}, slog.Default())
	if err != nil {
		t.Fatalf("NewTranscriptLogger failed: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.Log(TranscriptEvent{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UserID:    "anon_0123",
		SessionID: "sess-1",
		Direction: "inbound",
		EventType: "coach_answer",
		Content:   "I like building things",
	})

	path := filepath.Join(dir, "anon_0123", "sess-1.ndjson")
	line := waitForTranscriptLine(t, path)
	var got TranscriptEvent
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("failed to unmarshal log line: %v", err)
	}
	if got.Content != "I like building things" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
	if got.EventType != "coach_answer" {
		t.Fatalf("unexpected event type: %q", got.EventType)
	}
}

func TestTranscriptLoggerDisabledDiscardsEvents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger, err := NewTranscriptLogger(TranscriptLogConfig{Enabled: false, Dir: dir}, slog.Default())
	if err != nil {
		t.Fatalf("NewTranscriptLogger failed: %v", err)
	}

	logger.Log(TranscriptEvent{UserID: "anon_0123", SessionID: "sess-1"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no transcript files when disabled, got %d entries", len(entries))
	}
}

func TestTranscriptLoggerCloseDrainsQueue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger, err := NewTranscriptLogger(TranscriptLogConfig{
		Enabled:   true,
		Dir:       dir,
		QueueSize: 64,
	}, slog.Default())
	if err != nil {
		t.Fatalf("NewTranscriptLogger failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		logger.Log(TranscriptEvent{
			UserID:    "anon_0123",
			SessionID: "sess-1",
			EventType: "coach_message",
			Content:   "hello",
		})
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "anon_0123", "sess-1.ndjson"))
	if err != nil {
		t.Fatalf("transcript file missing after Close: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 drained lines, got %d", len(lines))
	}
}

func TestSanitizePathComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"anon_abc123", "anon_abc123"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"", "unknown"},
		{"sess 1/2", "sess_1_2"},
	}
	for _, tt := range tests {
		if got := sanitizePathComponent(tt.in); got != tt.want {
			t.Errorf("sanitizePathComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func waitForTranscriptLine(t *testing.T, path string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			if len(lines) > 0 {
				return lines[len(lines)-1]
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for transcript file %s", path)
	return ""
}
