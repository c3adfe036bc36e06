package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSessionJSONFieldNames(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := NewSession("sess-1", "anon_abc", now)
	sess.Stage = StageChat
	sess.QuestionIndex = 8
	sess.Answers = []string{"a"}
	sess.Recommendations = []Recommendation{{ID: "rec-1", Title: "Software Developer", MatchScore: 92}}
	sess.SelectedRecommendation = "rec-1"
	sess.Roadmap = &Roadmap{CareerPath: "Software Developer", Phases: []RoadmapPhase{{Name: "Foundations"}}}

	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"sessionId", "stage", "questionIndex", "answers", "recommendations", "selectedRecommendation", "roadmap", "createdAt", "updatedAt"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected JSON key %q", key)
		}
	}
	if _, ok := m["SessionID"]; ok {
		t.Error("struct field names must not leak into JSON")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        Session
		wantStage Stage
		wantIndex int
	}{
		{"unknown stage", Session{Stage: "garbage", QuestionIndex: 2, Answers: []string{"a", "b"}}, StageWelcome, 2},
		{"empty stage", Session{}, StageWelcome, 0},
		{"negative index", Session{Stage: StageAssessment, QuestionIndex: -1}, StageAssessment, 0},
		{"index beyond answers", Session{Stage: StageAssessment, QuestionIndex: 9, Answers: []string{"a"}}, StageAssessment, 1},
		{"well formed", Session{Stage: StageChat, QuestionIndex: 1, Answers: []string{"a"}}, StageChat, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := tt.in
			s.Normalize()
			if s.Stage != tt.wantStage {
				t.Errorf("stage = %s, want %s", s.Stage, tt.wantStage)
			}
			if s.QuestionIndex != tt.wantIndex {
				t.Errorf("index = %d, want %d", s.QuestionIndex, tt.wantIndex)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	now := time.Now()
	orig := NewSession("sess-1", "anon_abc", now)
	orig.Answers = []string{"a"}
	orig.AppendMessage(RoleUser, "hello", now)
	orig.Recommendations = []Recommendation{{ID: "rec-1", Title: "Software Developer", Skills: []string{"Go"}}}
	orig.Roadmap = &Roadmap{CareerPath: "Software Developer", Phases: []RoadmapPhase{{Name: "Foundations", Milestones: []string{"ship"}}}}

	clone := orig.Clone()
	clone.Answers[0] = "changed"
	clone.Messages[0].Text = "changed"
	clone.Recommendations[0].Title = "changed"
	clone.Roadmap.Phases[0].Name = "changed"
	clone.Roadmap.Phases[0].Milestones[0] = "changed"

	if orig.Answers[0] != "a" {
		t.Error("answers were shared between clone and original")
	}
	if orig.Messages[0].Text != "hello" {
		t.Error("messages were shared between clone and original")
	}
	if orig.Recommendations[0].Title != "Software Developer" {
		t.Error("recommendations were shared between clone and original")
	}
	if orig.Roadmap.Phases[0].Name != "Foundations" {
		t.Error("roadmap phases were shared between clone and original")
	}
	if orig.Roadmap.Phases[0].Milestones[0] != "ship" {
		t.Error("roadmap milestones were shared between clone and original")
	}
}

func TestRecentMessages(t *testing.T) {
	t.Parallel()

	s := NewSession("sess-1", "anon_abc", time.Now())
	for i := 0; i < 5; i++ {
		s.AppendMessage(RoleUser, "msg", time.Now())
	}

	if got := s.RecentMessages(3); len(got) != 3 {
		t.Errorf("expected 3 messages, got %d", len(got))
	}
	if got := s.RecentMessages(10); len(got) != 5 {
		t.Errorf("expected all 5 messages, got %d", len(got))
	}
}

func TestFindRecommendation(t *testing.T) {
	t.Parallel()

	s := NewSession("sess-1", "anon_abc", time.Now())
	s.Recommendations = []Recommendation{{ID: "rec-1"}, {ID: "rec-2"}}

	if rec := s.FindRecommendation("rec-2"); rec == nil || rec.ID != "rec-2" {
		t.Errorf("unexpected result %+v", rec)
	}
	if rec := s.FindRecommendation("rec-9"); rec != nil {
		t.Errorf("expected nil for unknown ID, got %+v", rec)
	}
}
