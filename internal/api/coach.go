package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pathlight-labs/pathlight/internal/coach"
	"github.com/pathlight-labs/pathlight/internal/domain"
	"github.com/pathlight-labs/pathlight/internal/identity"
	"github.com/pathlight-labs/pathlight/internal/store"
)

// CoachHandler exposes the assessment conversation engine over HTTP.
type CoachHandler struct {
	engine      *coach.Engine
	repo        store.Repository
	rateLimiter *RateLimiter
	transcript  *coach.TranscriptLogger
}

// NewCoachHandler creates a coach handler. transcript may be nil.
func NewCoachHandler(engine *coach.Engine, repo store.Repository, limiter *RateLimiter, transcript *coach.TranscriptLogger) *CoachHandler {
	return &CoachHandler{
		engine:      engine,
		repo:        repo,
		rateLimiter: limiter,
		transcript:  transcript,
	}
}

// RegisterRoutes registers coach routes.
func (h *CoachHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/coach", func(r chi.Router) {
		r.Get("/session", h.HandleGetSession)
		r.Post("/start", h.HandleStart)
		r.Post("/answer", h.HandleAnswer)
		r.Post("/recommendations", h.HandleViewRecommendations)
		r.Post("/select", h.HandleSelect)
		r.Post("/message", h.HandleMessage)
		r.Post("/reset", h.HandleReset)
		r.Post("/accept", h.HandleAccept)
	})
}

type coachRequest struct {
	SessionID        string `json:"session_id"`
	Text             string `json:"text,omitempty"`
	RecommendationID string `json:"recommendation_id,omitempty"`
}

type coachResponse struct {
	Session *domain.Session `json:"session"`
	Warning string          `json:"warning,omitempty"`
}

// writeCoachError maps engine errors onto HTTP statuses.
func writeCoachError(w http.ResponseWriter, err error) {
	var genErr *coach.GenerationError
	switch {
	case errors.Is(err, coach.ErrInvalidInput):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, coach.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, coach.ErrWrongStage):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, coach.ErrBusy):
		Error(w, http.StatusConflict, err.Error())
	case errors.As(err, &genErr):
		Error(w, http.StatusBadGateway, genErr.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *CoachHandler) allow(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	if !h.rateLimiter.Allow(userID) {
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return "", false
	}
	return userID, true
}

// HandleGetSession restores a session snapshot. Unknown or unreadable
// sessions degrade to a fresh welcome-stage session rather than failing.
func (h *CoachHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sess := h.engine.Load(r.Context(), r.URL.Query().Get("session_id"), userID)
	JSON(w, http.StatusOK, coachResponse{Session: sess})
}

// HandleStart begins the assessment.
func (h *CoachHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.allow(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.engine.Start(r.Context(), req.SessionID, userID)
	if err != nil {
		writeCoachError(w, err)
		return
	}

	slog.Info("Coach session started", "user_id", userID, "session_id", sess.SessionID)
	h.logTranscript(userID, sess.SessionID, "agent", assessmentStartEvent, "")
	JSON(w, http.StatusOK, coachResponse{Session: sess})
}

const assessmentStartEvent = "assessment_started"

// HandleAnswer records one assessment answer. When the final answer triggers
// recommendation generation and that generation fails, the session has still
// advanced; the response carries the committed session plus a warning instead
// of an error status.
func (h *CoachHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.allow(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.engine.SubmitAnswer(r.Context(), req.SessionID, req.Text)
	if err != nil {
		var genErr *coach.GenerationError
		if errors.As(err, &genErr) && sess != nil {
			h.logTranscript(userID, sess.SessionID, "user", "answer", req.Text)
			JSON(w, http.StatusOK, coachResponse{Session: sess, Warning: "recommendations unavailable, you can retry from chat"})
			return
		}
		writeCoachError(w, err)
		return
	}

	h.logTranscript(userID, sess.SessionID, "user", "answer", req.Text)
	JSON(w, http.StatusOK, coachResponse{Session: sess})
}

// HandleViewRecommendations moves the session to the recommendations stage.
func (h *CoachHandler) HandleViewRecommendations(w http.ResponseWriter, r *http.Request) {
	_, ok := h.allow(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.engine.ViewRecommendations(r.Context(), req.SessionID)
	if err != nil {
		writeCoachError(w, err)
		return
	}
	JSON(w, http.StatusOK, coachResponse{Session: sess})
}

// HandleSelect picks a recommendation and generates its roadmap.
func (h *CoachHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.allow(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.engine.SelectRecommendation(r.Context(), req.SessionID, req.RecommendationID)
	if err != nil {
		writeCoachError(w, err)
		return
	}

	slog.Info("Roadmap generated",
		"user_id", userID,
		"session_id", sess.SessionID,
		"career_path", sess.Roadmap.CareerPath,
	)
	JSON(w, http.StatusOK, coachResponse{Session: sess})
}

// HandleMessage handles freeform chat with the coach.
func (h *CoachHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.allow(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.engine.SendMessage(r.Context(), req.SessionID, req.Text)
	if err != nil {
		writeCoachError(w, err)
		return
	}

	h.logTranscript(userID, sess.SessionID, "user", "chat_message", req.Text)
	if n := len(sess.Messages); n > 0 {
		h.logTranscript(userID, sess.SessionID, "agent", "chat_reply", sess.Messages[n-1].Text)
	}
	JSON(w, http.StatusOK, coachResponse{Session: sess})
}

// HandleReset destroys the session and returns a fresh one.
func (h *CoachHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.allow(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.engine.Reset(r.Context(), req.SessionID, userID)
	if err != nil {
		writeCoachError(w, err)
		return
	}

	slog.Info("Coach session reset", "user_id", userID, "old_session_id", req.SessionID, "new_session_id", sess.SessionID)
	JSON(w, http.StatusOK, coachResponse{Session: sess})
}

type acceptResponse struct {
	Handoff         *domain.RoadmapHandoff `json:"handoff"`
	PortfolioItemID string                 `json:"portfolio_item_id"`
}

// HandleAccept hands the generated roadmap off to the user's portfolio.
func (h *CoachHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.allow(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	handoff, err := h.engine.Accept(r.Context(), req.SessionID)
	if err != nil {
		writeCoachError(w, err)
		return
	}

	item := &domain.PortfolioItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      domain.PortfolioKindRoadmap,
		Title:     handoff.CareerPath,
		CreatedAt: time.Now(),
	}
	if detail, err := handoffDetail(handoff); err == nil {
		item.DetailJSON = detail
	}
	if err := h.repo.AddPortfolioItem(r.Context(), item); err != nil {
		slog.Error("Failed to store accepted roadmap", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to save roadmap")
		return
	}

	slog.Info("Roadmap accepted", "user_id", userID, "career_path", handoff.CareerPath)
	JSON(w, http.StatusOK, acceptResponse{Handoff: handoff, PortfolioItemID: item.ID})
}

func handoffDetail(handoff *domain.RoadmapHandoff) (string, error) {
	data, err := json.Marshal(handoff)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (h *CoachHandler) logTranscript(userID, sessionID, direction, eventType, content string) {
	if h.transcript == nil {
		return
	}
	h.transcript.Log(coach.TranscriptEvent{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		UserID:    userID,
		SessionID: sessionID,
		Direction: direction,
		EventType: eventType,
		Content:   content,
	})
}
