package coach

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pathlight-labs/pathlight/internal/domain"
)

// stripCodeFence removes a surrounding markdown code fence if the generator
// wrapped its JSON despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type recommendationsEnvelope struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// parseRecommendations validates generator output against the recommendation
// schema. Out-of-range scores are passed through; only JSON shape is checked.
func parseRecommendations(text string) ([]domain.Recommendation, error) {
	var env recommendationsEnvelope
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &env); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	if len(env.Recommendations) == 0 {
		return nil, fmt.Errorf("parse recommendations: empty recommendation list")
	}
	for i := range env.Recommendations {
		rec := &env.Recommendations[i]
		if rec.Title == "" {
			return nil, fmt.Errorf("parse recommendations: entry %d has no title", i)
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("rec-%d", i+1)
		}
	}
	return env.Recommendations, nil
}

// parseRoadmap validates generator output against the roadmap schema.
func parseRoadmap(text string) (*domain.Roadmap, error) {
	var rm domain.Roadmap
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &rm); err != nil {
		return nil, fmt.Errorf("parse roadmap: %w", err)
	}
	if rm.CareerPath == "" {
		return nil, fmt.Errorf("parse roadmap: missing careerPath")
	}
	if len(rm.Phases) == 0 {
		return nil, fmt.Errorf("parse roadmap: no phases")
	}
	return &rm, nil
}
