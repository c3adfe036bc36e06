package coach

import (
	"fmt"
	"strings"

	"github.com/pathlight-labs/pathlight/internal/domain"
)

// buildRecommendationPrompt embeds every question/answer pair in fixed order
// and instructs the generator to return only JSON matching the
// recommendation schema.
func buildRecommendationPrompt(answers []string) string {
	var b strings.Builder
	b.WriteString("You are a career guidance expert. A student completed a career assessment.\n\n")
	for i, q := range assessmentQuestions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, q, i+1, answer)
	}
	b.WriteString(`
Based on these answers, recommend exactly 3 career paths.
Return only valid JSON, no markdown, matching this shape:
{
  "recommendations": [
    {
      "id": "rec-1",
      "title": "...",
      "description": "...",
      "matchScore": 0,
      "salaryRange": "...",
      "growthOutlook": "...",
      "skills": ["..."],
      "tasks": ["..."],
      "learningSteps": ["..."],
      "difficulty": "Beginner|Intermediate|Advanced",
      "demand": "High|Medium|Low",
      "matchReasons": ["..."]
    }
  ]
}`)
	return b.String()
}

// buildRoadmapPrompt embeds the selected path plus all original answers.
func buildRoadmapPrompt(rec *domain.Recommendation, answers []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a career guidance expert. A student selected the career path %q.\n", rec.Title)
	b.WriteString("Their assessment answers were:\n")
	for i, a := range answers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a)
	}
	b.WriteString(`
Create a detailed learning roadmap for this path.
Return only valid JSON, no markdown, matching this shape:
{
  "careerPath": "...",
  "overview": "...",
  "totalDuration": "...",
  "phases": [
    {
      "name": "...",
      "duration": "...",
      "description": "...",
      "milestones": ["..."],
      "resources": ["..."],
      "projects": ["..."]
    }
  ],
  "skills": ["..."],
  "certifications": ["..."],
  "salaryProgression": {"entry": "...", "mid": "...", "senior": "..."},
  "nextSteps": ["..."]
}`)
	return b.String()
}

// buildChatPrompt sends a short rolling window of transcript history plus the
// new message. The window size is a tunable, not a correctness invariant.
func buildChatPrompt(history []domain.Message, text string) string {
	var b strings.Builder
	b.WriteString("You are a friendly career coach chatting with a student. Keep replies concise and practical.\n\nConversation so far:\n")
	for _, m := range history {
		role := "Student"
		if m.Role == domain.RoleAgent {
			role = "Coach"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Text)
	}
	fmt.Fprintf(&b, "Student: %s\nCoach:", text)
	return b.String()
}
