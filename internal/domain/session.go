package domain

import (
	"time"
)

// Stage is the coarse phase of the coach conversation state machine.
type Stage string

const (
	// StageWelcome is the initial stage before the assessment starts.
	StageWelcome Stage = "welcome"
	// StageAssessment is active while the fixed question list is being answered.
	StageAssessment Stage = "assessment"
	// StageChat follows the last answer; freeform chat with recommendations available.
	StageChat Stage = "chat"
	// StageRecommendations is entered when the user reviews generated paths.
	StageRecommendations Stage = "recommendations"
	// StageRoadmap is entered after a roadmap was generated for a selected path.
	StageRoadmap Stage = "roadmap"
)

// ValidStage reports whether s is one of the known stages.
func ValidStage(s Stage) bool {
	switch s {
	case StageWelcome, StageAssessment, StageChat, StageRecommendations, StageRoadmap:
		return true
	}
	return false
}

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	// RoleUser marks a message written by the student.
	RoleUser MessageRole = "user"
	// RoleAgent marks a message written by the coach.
	RoleAgent MessageRole = "agent"
)

// Message is one entry in a session's conversation transcript.
// The transcript is append-only; entries are never reordered or removed
// except by a full session reset.
type Message struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// Session is the durable record of one user's progress through the
// assessment / recommendation / roadmap flow. It is a plain value object;
// all transitions are performed by the coach engine and the full record is
// persisted as a JSON snapshot keyed by SessionID.
type Session struct {
	SessionID              string           `json:"sessionId"`
	UserID                 string           `json:"userId,omitempty"`
	Stage                  Stage            `json:"stage"`
	QuestionIndex          int              `json:"questionIndex"`
	Answers                []string         `json:"answers,omitempty"`
	Messages               []Message        `json:"messages,omitempty"`
	Recommendations        []Recommendation `json:"recommendations,omitempty"`
	SelectedRecommendation string           `json:"selectedRecommendation,omitempty"`
	Roadmap                *Roadmap         `json:"roadmap,omitempty"`
	CreatedAt              time.Time        `json:"createdAt"`
	UpdatedAt              time.Time        `json:"updatedAt"`
}

// NewSession returns a fresh session in the welcome stage.
func NewSession(sessionID, userID string, now time.Time) *Session {
	return &Session{
		SessionID: sessionID,
		UserID:    userID,
		Stage:     StageWelcome,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Normalize repairs a snapshot that was persisted with partial or missing
// optional fields. An unknown or empty stage degrades to welcome, which is
// the most conservative valid stage for a restored session.
func (s *Session) Normalize() {
	if !ValidStage(s.Stage) {
		s.Stage = StageWelcome
	}
	if s.QuestionIndex < 0 {
		s.QuestionIndex = 0
	}
	if s.QuestionIndex > len(s.Answers) {
		s.QuestionIndex = len(s.Answers)
	}
}

// AppendMessage appends a transcript entry.
func (s *Session) AppendMessage(role MessageRole, text string, now time.Time) {
	s.Messages = append(s.Messages, Message{Role: role, Text: text, Timestamp: now})
}

// RecentMessages returns the last n transcript entries.
func (s *Session) RecentMessages(n int) []Message {
	if n >= len(s.Messages) {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// FindRecommendation returns the recommendation with the given ID, or nil.
func (s *Session) FindRecommendation(id string) *Recommendation {
	for i := range s.Recommendations {
		if s.Recommendations[i].ID == id {
			return &s.Recommendations[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the session. The engine mutates a clone and
// swaps it in only when the whole transition succeeds, so a failed operation
// never leaves a partially updated session behind.
func (s *Session) Clone() *Session {
	c := *s
	c.Answers = append([]string(nil), s.Answers...)
	c.Messages = append([]Message(nil), s.Messages...)
	c.Recommendations = append([]Recommendation(nil), s.Recommendations...)
	if s.Roadmap != nil {
		r := s.Roadmap.Clone()
		c.Roadmap = r
	}
	return &c
}
