package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/pathlight-labs/pathlight/internal/coach"
	"github.com/pathlight-labs/pathlight/internal/domain"
	"github.com/pathlight-labs/pathlight/internal/identity"
)

// CoachSocketHandler handles WebSocket-based coach conversations. It carries
// the same chat operation as the HTTP handler over a persistent connection.
type CoachSocketHandler struct {
	engine        *coach.Engine
	rateLimiter   *RateLimiter
	allowedOrigin string
	isDev         bool
}

// NewCoachSocketHandler creates a new coach WebSocket handler.
func NewCoachSocketHandler(engine *coach.Engine, rl *RateLimiter, allowedOrigin string, isDev bool) *CoachSocketHandler {
	return &CoachSocketHandler{
		engine:        engine,
		rateLimiter:   rl,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// coachSocketMessage is the frame format in both directions.
type coachSocketMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Text      string          `json:"text,omitempty"`
	Session   *domain.Session `json:"session,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *CoachSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	slog.Info("Coach WebSocket connection request", "user_id", userID, "ip", r.RemoteAddr)

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "conversation ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.readLoop(ctx, ws, userID)
	slog.Info("Coach WebSocket session ended", "user_id", userID)
}

func (h *CoachSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" {
		return true
	}
	if origin == h.allowedOrigin {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

func (h *CoachSocketHandler) readLoop(ctx context.Context, ws *websocket.Conn, userID string) {
	for {
		_, raw, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "user_id", userID)
			} else if ctx.Err() == nil {
				slog.Warn("WebSocket read error", "error", err, "user_id", userID)
			}
			return
		}

		var msg coachSocketMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			if err := h.writeJSON(ctx, ws, coachSocketMessage{Type: "error", Error: "invalid message"}); err != nil {
				return
			}
			continue
		}

		switch msg.Type {
		case "ping":
			if err := h.writeJSON(ctx, ws, coachSocketMessage{Type: "pong"}); err != nil {
				slog.Debug("Failed to send pong", "error", err)
				return
			}
		case "session":
			sess := h.engine.Load(ctx, strings.TrimSpace(msg.SessionID), userID)
			if err := h.writeJSON(ctx, ws, coachSocketMessage{Type: "session", Session: sess}); err != nil {
				return
			}
		case "message":
			h.handleChatMessage(ctx, ws, userID, msg)
		default:
			if err := h.writeJSON(ctx, ws, coachSocketMessage{Type: "error", Error: "unknown message type"}); err != nil {
				return
			}
		}
	}
}

func (h *CoachSocketHandler) handleChatMessage(ctx context.Context, ws *websocket.Conn, userID string, msg coachSocketMessage) {
	if h.rateLimiter != nil && !h.rateLimiter.Allow(userID) {
		if err := h.writeJSON(ctx, ws, coachSocketMessage{Type: "error", Error: "rate limit exceeded"}); err != nil {
			slog.Debug("Failed to send rate limit error", "error", err)
		}
		return
	}

	sess, err := h.engine.SendMessage(ctx, strings.TrimSpace(msg.SessionID), msg.Text)
	if err != nil {
		reply := coachSocketMessage{Type: "error", Error: coachErrorMessage(err)}
		if writeErr := h.writeJSON(ctx, ws, reply); writeErr != nil {
			slog.Debug("Failed to send chat error", "error", writeErr)
		}
		return
	}

	if err := h.writeJSON(ctx, ws, coachSocketMessage{Type: "session", Session: sess}); err != nil {
		slog.Debug("Failed to send chat reply", "error", err, "user_id", userID)
	}
}

func coachErrorMessage(err error) string {
	var genErr *coach.GenerationError
	switch {
	case errors.Is(err, coach.ErrInvalidInput):
		return "message cannot be empty"
	case errors.Is(err, coach.ErrNotFound):
		return "session not found"
	case errors.Is(err, coach.ErrWrongStage):
		return "chat is not available at this stage"
	case errors.Is(err, coach.ErrBusy):
		return "another request for this session is in progress"
	case errors.As(err, &genErr):
		return "the coach is temporarily unavailable, please retry"
	default:
		return "internal error"
	}
}

func (h *CoachSocketHandler) writeJSON(ctx context.Context, ws *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}
