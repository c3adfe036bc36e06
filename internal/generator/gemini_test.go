package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func geminiTestConfig(serverURL string) GeminiConfig {
	return GeminiConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Model:   "gemini-2.0-flash",
		Timeout: 5 * time.Second,
	}
}

func geminiReply(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGeminiGenerateReturnsText(t *testing.T) {
	t.Parallel()

	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(geminiReply("  hello there  "))); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client, err := NewGeminiClient(geminiTestConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}

	out, err := client.Generate(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "hello there" {
		t.Errorf("expected trimmed text, got %q", out)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "say hello" {
		t.Errorf("unexpected request body %+v", gotBody)
	}
	if gotBody.GenerationConfig.ResponseMimeType != "" {
		t.Error("plain prompt must not request a JSON mime type")
	}
}

func TestGeminiGenerateSetsJSONMimeType(t *testing.T) {
	t.Parallel()

	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, err := w.Write([]byte(geminiReply(`{"ok":true}`))); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client, err := NewGeminiClient(geminiTestConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}

	if _, err := client.Generate(context.Background(), "Return only valid JSON with this shape"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if gotBody.GenerationConfig.ResponseMimeType != "application/json" {
		t.Errorf("expected application/json mime type, got %q", gotBody.GenerationConfig.ResponseMimeType)
	}
}

func TestGeminiGenerateRetriesOn429(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		if _, err := w.Write([]byte(geminiReply("recovered"))); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client, err := NewGeminiClient(geminiTestConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}

	out, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "recovered" {
		t.Errorf("unexpected output %q", out)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestGeminiGenerateFailsFastOnServerError(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewGeminiClient(geminiTestConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}

	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("4xx responses must not be retried, got %d calls", calls)
	}
}

func TestGeminiGenerateReportsAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"error":{"message":"quota exhausted"}}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client, err := NewGeminiClient(geminiTestConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}

	_, err = client.Generate(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "quota exhausted") {
		t.Fatalf("expected API error message, got %v", err)
	}
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGeminiClient(GeminiConfig{}, nil); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestWantsJSONOutput(t *testing.T) {
	t.Parallel()

	if !wantsJSONOutput("Return only valid JSON, no prose.") {
		t.Error("expected JSON marker to be detected")
	}
	if wantsJSONOutput("Tell me a story.") {
		t.Error("plain prompt must not request JSON")
	}
}
