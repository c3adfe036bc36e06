package coach

import (
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  \n```json\n{\"a\":1}\n```\n", `{"a":1}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRecommendations(t *testing.T) {
	t.Parallel()

	text := `{"recommendations":[
		{"id":"rec-1","title":"Software Developer","matchScore":92},
		{"title":"Data Analyst","matchScore":84}
	]}`
	recs, err := parseRecommendations(text)
	if err != nil {
		t.Fatalf("parseRecommendations failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].ID != "rec-1" {
		t.Errorf("expected explicit ID to be kept, got %q", recs[0].ID)
	}
	if recs[1].ID != "rec-2" {
		t.Errorf("expected missing ID to be autofilled as rec-2, got %q", recs[1].ID)
	}
}

func TestParseRecommendationsRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"not json", "sorry, I can't do that"},
		{"empty list", `{"recommendations":[]}`},
		{"missing list", `{"other":true}`},
		{"entry without title", `{"recommendations":[{"id":"rec-1"}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := parseRecommendations(tt.in); err == nil {
				t.Errorf("expected error for %q", tt.in)
			}
		})
	}
}

func TestParseRoadmap(t *testing.T) {
	t.Parallel()

	text := "```json\n" + `{
		"careerPath": "Software Developer",
		"totalDuration": "12 months",
		"phases": [{"name":"Foundations","duration":"3 months","milestones":["ship a CLI"]}]
	}` + "\n```"
	rm, err := parseRoadmap(text)
	if err != nil {
		t.Fatalf("parseRoadmap failed: %v", err)
	}
	if rm.CareerPath != "Software Developer" {
		t.Errorf("unexpected career path %q", rm.CareerPath)
	}
	if len(rm.Phases) != 1 || rm.Phases[0].Name != "Foundations" {
		t.Errorf("unexpected phases %+v", rm.Phases)
	}
}

func TestParseRoadmapRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"not json", "no roadmap today"},
		{"missing career path", `{"phases":[{"title":"x"}]}`},
		{"no phases", `{"careerPath":"Software Developer","phases":[]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := parseRoadmap(tt.in); err == nil {
				t.Errorf("expected error for %q", tt.in)
			}
		})
	}
}
