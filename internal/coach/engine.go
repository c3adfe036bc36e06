// Package coach implements the guided assessment conversation state machine.
//
// Stages move forward only:
//
//	welcome -> assessment -> chat -> recommendations -> roadmap
//
// with reset returning to welcome from anywhere. The engine itself is a set
// of transition functions over a Session value; the session store is the sole
// durable owner of state between requests.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pathlight-labs/pathlight/internal/domain"
	"github.com/pathlight-labs/pathlight/internal/generator"
)

// SessionStore persists coach session snapshots. Get returns (nil, nil) for
// an unknown ID. Put is a full-snapshot overwrite keyed by session ID, so
// repeated writes of the same snapshot are idempotent.
type SessionStore interface {
	GetCoachSession(ctx context.Context, sessionID string) (*domain.Session, error)
	PutCoachSession(ctx context.Context, session *domain.Session) error
	DeleteCoachSession(ctx context.Context, sessionID string) error
}

// DefaultHistoryWindow bounds how much transcript history is sent with a
// freeform chat prompt.
const DefaultHistoryWindow = 12

// Engine drives the assessment conversation. It holds no per-session state
// of its own beyond an in-flight guard; each operation loads the committed
// snapshot, applies one transition to a clone, and commits the clone.
type Engine struct {
	store         SessionStore
	gen           generator.Generator
	logger        *slog.Logger
	historyWindow int
	now           func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistoryWindow overrides the chat history window size.
func WithHistoryWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.historyWindow = n
		}
	}
}

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a coach engine.
func NewEngine(store SessionStore, gen generator.Generator, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		store:         store,
		gen:           gen,
		logger:        logger,
		historyWindow: DefaultHistoryWindow,
		now:           time.Now,
		inflight:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// acquire takes the per-session single-flight guard. Two concurrent
// operations against the same session ID would race on question index and
// answer ordering, so the second one is rejected with ErrBusy.
func (e *Engine) acquire(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.inflight[sessionID]; ok {
		return fmt.Errorf("%w: %s", ErrBusy, sessionID)
	}
	e.inflight[sessionID] = struct{}{}
	return nil
}

func (e *Engine) release(sessionID string) {
	e.mu.Lock()
	delete(e.inflight, sessionID)
	e.mu.Unlock()
}

// persist writes the snapshot best-effort. A store failure is logged and does
// not roll back the in-memory transition.
func (e *Engine) persist(ctx context.Context, sess *domain.Session) {
	if err := e.store.PutCoachSession(ctx, sess); err != nil {
		e.logger.Error("failed to persist coach session",
			"session_id", sess.SessionID,
			"stage", sess.Stage,
			"error", err,
		)
	}
}

func (e *Engine) loadExisting(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: empty session id", ErrNotFound)
	}
	sess, err := e.store.GetCoachSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	sess.Normalize()
	return sess, nil
}

// Start begins the assessment. It creates a new session when sessionID is
// empty, requires the welcome stage otherwise, appends the first question as
// an agent message, and transitions to the assessment stage.
func (e *Engine) Start(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	now := e.now()
	var sess *domain.Session
	if sessionID == "" {
		sess = domain.NewSession(uuid.NewString(), userID, now)
	} else {
		existing, err := e.store.GetCoachSession(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("load session %s: %w", sessionID, err)
		}
		if existing == nil {
			sess = domain.NewSession(sessionID, userID, now)
		} else {
			existing.Normalize()
			sess = existing
		}
	}

	if err := e.acquire(sess.SessionID); err != nil {
		return nil, err
	}
	defer e.release(sess.SessionID)

	if sess.Stage != domain.StageWelcome {
		return nil, fmt.Errorf("%w: start requires welcome, session is in %s", ErrWrongStage, sess.Stage)
	}

	next := sess.Clone()
	next.AppendMessage(domain.RoleAgent, welcomeMessage, now)
	next.AppendMessage(domain.RoleAgent, assessmentQuestions[0], now)
	next.Stage = domain.StageAssessment
	next.QuestionIndex = 0
	next.UpdatedAt = now

	e.persist(ctx, next)
	return next, nil
}

// SubmitAnswer records one assessment answer. While questions remain, it
// appends the next question and stays in the assessment stage. On the final
// answer it requests recommendations and advances to chat regardless of the
// generation outcome: a GenerationError returned here is advisory and the
// returned session is still committed (degrade-gracefully policy).
func (e *Engine) SubmitAnswer(ctx context.Context, sessionID, text string) (*domain.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: answer must not be blank", ErrInvalidInput)
	}

	if err := e.acquire(sessionID); err != nil {
		return nil, err
	}
	defer e.release(sessionID)

	sess, err := e.loadExisting(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Stage != domain.StageAssessment {
		return nil, fmt.Errorf("%w: answer requires assessment, session is in %s", ErrWrongStage, sess.Stage)
	}

	now := e.now()
	next := sess.Clone()
	next.AppendMessage(domain.RoleUser, text, now)
	next.Answers = append(next.Answers, text)
	next.QuestionIndex++
	next.UpdatedAt = now

	if next.QuestionIndex < len(assessmentQuestions) {
		next.AppendMessage(domain.RoleAgent, assessmentQuestions[next.QuestionIndex], now)
		e.persist(ctx, next)
		return next, nil
	}

	// Final answer: generate recommendations, then advance to chat either way.
	next.AppendMessage(domain.RoleAgent, assessmentCompleteMessage, now)
	next.Stage = domain.StageChat

	var genErr error
	recs, err := e.requestRecommendations(ctx, next.Answers)
	if err != nil {
		genErr = &GenerationError{Op: "recommendations", Err: err}
		next.AppendMessage(domain.RoleAgent, recommendationsFailedMessage, e.now())
		e.logger.Warn("recommendation generation failed",
			"session_id", sessionID,
			"error", err,
		)
	} else {
		next.Recommendations = recs
		next.AppendMessage(domain.RoleAgent,
			fmt.Sprintf("I found %d career paths that match your answers. Ask me about any of them, or pick one to see a full roadmap.", len(recs)),
			e.now(),
		)
	}

	e.persist(ctx, next)
	return next, genErr
}

func (e *Engine) requestRecommendations(ctx context.Context, answers []string) ([]domain.Recommendation, error) {
	text, err := e.gen.Generate(ctx, buildRecommendationPrompt(answers))
	if err != nil {
		return nil, err
	}
	return parseRecommendations(text)
}

// ViewRecommendations moves a chat-stage session with available
// recommendations into the recommendations stage.
func (e *Engine) ViewRecommendations(ctx context.Context, sessionID string) (*domain.Session, error) {
	if err := e.acquire(sessionID); err != nil {
		return nil, err
	}
	defer e.release(sessionID)

	sess, err := e.loadExisting(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Stage != domain.StageChat {
		return nil, fmt.Errorf("%w: viewing recommendations requires chat, session is in %s", ErrWrongStage, sess.Stage)
	}
	if len(sess.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: no recommendations available", ErrInvalidInput)
	}

	next := sess.Clone()
	next.Stage = domain.StageRecommendations
	next.UpdatedAt = e.now()

	e.persist(ctx, next)
	return next, nil
}

// SelectRecommendation picks one recommended path and generates its roadmap.
// Unlike recommendation generation this is blocking: on any failure the
// session is unchanged and the call may be retried with no side effect
// beyond a new generator call.
func (e *Engine) SelectRecommendation(ctx context.Context, sessionID, recommendationID string) (*domain.Session, error) {
	if err := e.acquire(sessionID); err != nil {
		return nil, err
	}
	defer e.release(sessionID)

	sess, err := e.loadExisting(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Stage != domain.StageChat && sess.Stage != domain.StageRecommendations {
		return nil, fmt.Errorf("%w: selecting a path requires chat or recommendations, session is in %s", ErrWrongStage, sess.Stage)
	}
	rec := sess.FindRecommendation(recommendationID)
	if rec == nil {
		return nil, fmt.Errorf("%w: unknown recommendation %q", ErrInvalidInput, recommendationID)
	}

	text, err := e.gen.Generate(ctx, buildRoadmapPrompt(rec, sess.Answers))
	if err != nil {
		return nil, &GenerationError{Op: "roadmap", Err: err}
	}
	roadmap, err := parseRoadmap(text)
	if err != nil {
		return nil, &GenerationError{Op: "roadmap", Err: err}
	}

	now := e.now()
	next := sess.Clone()
	next.SelectedRecommendation = rec.ID
	next.Roadmap = roadmap
	next.Stage = domain.StageRoadmap
	next.AppendMessage(domain.RoleAgent,
		fmt.Sprintf("Here's your roadmap for %s. It covers %d phases over %s.", roadmap.CareerPath, len(roadmap.Phases), roadmap.TotalDuration),
		now,
	)
	next.UpdatedAt = now

	e.persist(ctx, next)
	return next, nil
}

// SendMessage handles freeform chat in the chat or roadmap stages. The stage
// does not change. On generator failure nothing is committed.
func (e *Engine) SendMessage(ctx context.Context, sessionID, text string) (*domain.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message must not be blank", ErrInvalidInput)
	}

	if err := e.acquire(sessionID); err != nil {
		return nil, err
	}
	defer e.release(sessionID)

	sess, err := e.loadExisting(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Stage != domain.StageChat && sess.Stage != domain.StageRoadmap {
		return nil, fmt.Errorf("%w: chat requires chat or roadmap, session is in %s", ErrWrongStage, sess.Stage)
	}

	reply, err := e.gen.Generate(ctx, buildChatPrompt(sess.RecentMessages(e.historyWindow), text))
	if err != nil {
		return nil, &GenerationError{Op: "chat", Err: err}
	}

	now := e.now()
	next := sess.Clone()
	next.AppendMessage(domain.RoleUser, text, now)
	next.AppendMessage(domain.RoleAgent, reply, now)
	next.UpdatedAt = now

	e.persist(ctx, next)
	return next, nil
}

// Reset destroys the persisted session and returns a fresh welcome-stage
// session under a new ID. Safe to call repeatedly and from any stage.
func (e *Engine) Reset(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	if sessionID != "" {
		if err := e.acquire(sessionID); err != nil {
			return nil, err
		}
		defer e.release(sessionID)

		if err := e.store.DeleteCoachSession(ctx, sessionID); err != nil {
			// Best-effort like persist: a stale row is cleaned up by the TTL
			// worker, and the caller still gets a fresh session.
			e.logger.Error("failed to delete coach session", "session_id", sessionID, "error", err)
		}
	}
	return domain.NewSession(uuid.NewString(), userID, e.now()), nil
}

// Load restores a persisted session. It never fails: an unknown ID, a store
// read error, or a partial snapshot all degrade to the most conservative
// valid state, a fresh welcome-stage session.
func (e *Engine) Load(ctx context.Context, sessionID, userID string) *domain.Session {
	if sessionID == "" {
		return domain.NewSession(uuid.NewString(), userID, e.now())
	}
	sess, err := e.store.GetCoachSession(ctx, sessionID)
	if err != nil {
		e.logger.Warn("failed to load coach session, starting fresh", "session_id", sessionID, "error", err)
		return domain.NewSession(uuid.NewString(), userID, e.now())
	}
	if sess == nil {
		return domain.NewSession(sessionID, userID, e.now())
	}
	sess.Normalize()
	return sess
}

// Accept hands off the generated roadmap. The coach's responsibility ends at
// producing the payload; what the caller does with it is not tracked.
func (e *Engine) Accept(ctx context.Context, sessionID string) (*domain.RoadmapHandoff, error) {
	sess, err := e.loadExisting(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Stage != domain.StageRoadmap || sess.Roadmap == nil {
		return nil, fmt.Errorf("%w: accepting requires a generated roadmap", ErrWrongStage)
	}
	return &domain.RoadmapHandoff{
		CareerPath: sess.Roadmap.CareerPath,
		Roadmap:    sess.Roadmap.Clone(),
	}, nil
}
