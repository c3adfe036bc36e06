package generator

import (
	"context"
	"strings"
)

// Scripted is a deterministic offline generator. It is used when no API key
// is configured so the assessment flow still works end to end, and it doubles
// as a predictable backend in tests. Prompt kind is detected from the schema
// markers the coach embeds in its structured prompts.
type Scripted struct{}

// NewScripted returns a scripted generator.
func NewScripted() *Scripted {
	return &Scripted{}
}

// Generate returns a canned response appropriate to the prompt kind.
func (s *Scripted) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, `"recommendations"`):
		return scriptedRecommendationsJSON, nil
	case strings.Contains(prompt, `"careerPath"`):
		return scriptedRoadmapJSON, nil
	default:
		return scriptedChatReply(prompt), nil
	}
}

func scriptedChatReply(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "salary"):
		return "Compensation varies a lot by region and seniority. The ranges in your recommendations are a good starting point; mentor sessions can give you local numbers."
	case strings.Contains(lower, "skill"):
		return "Focus on the first two skills in your recommended path and build one small project with each. Depth beats breadth early on."
	case strings.Contains(lower, "roadmap"):
		return "Pick the recommendation that resonates most and I will lay out a phased roadmap with milestones, resources, and projects."
	default:
		return "That's a good question. Based on your assessment answers, I'd suggest exploring the recommended paths and asking me anything about skills, salaries, or next steps."
	}
}

const scriptedRecommendationsJSON = `{
  "recommendations": [
    {
      "id": "rec-1",
      "title": "Software Developer",
      "description": "Design and build applications that solve real problems.",
      "matchScore": 92,
      "salaryRange": "$70k - $150k",
      "growthOutlook": "Much faster than average",
      "skills": ["Programming", "Problem solving", "System design"],
      "tasks": ["Write and review code", "Design features", "Debug issues"],
      "learningSteps": ["Learn a language", "Build projects", "Contribute to open source"],
      "difficulty": "Intermediate",
      "demand": "High",
      "matchReasons": ["You enjoy logical puzzles", "You like building things"]
    },
    {
      "id": "rec-2",
      "title": "Data Analyst",
      "description": "Turn raw data into insight that drives decisions.",
      "matchScore": 84,
      "salaryRange": "$55k - $110k",
      "growthOutlook": "Faster than average",
      "skills": ["SQL", "Statistics", "Visualization"],
      "tasks": ["Query datasets", "Build dashboards", "Present findings"],
      "learningSteps": ["Learn SQL", "Study statistics", "Practice with public datasets"],
      "difficulty": "Beginner",
      "demand": "High",
      "matchReasons": ["You like working with numbers", "You pay attention to detail"]
    },
    {
      "id": "rec-3",
      "title": "UX Designer",
      "description": "Shape how people experience digital products.",
      "matchScore": 76,
      "salaryRange": "$60k - $120k",
      "growthOutlook": "Average",
      "skills": ["User research", "Prototyping", "Visual design"],
      "tasks": ["Interview users", "Sketch flows", "Run usability tests"],
      "learningSteps": ["Study design principles", "Build a portfolio", "Redesign an existing app"],
      "difficulty": "Beginner",
      "demand": "Medium",
      "matchReasons": ["You care about how things feel to use"]
    }
  ]
}`

const scriptedRoadmapJSON = `{
  "careerPath": "Software Developer",
  "overview": "A phased plan taking you from fundamentals to a job-ready portfolio.",
  "totalDuration": "12 months",
  "phases": [
    {
      "name": "Foundations",
      "duration": "3 months",
      "description": "Core programming and computer science basics.",
      "milestones": ["Complete an intro course", "Solve 50 practice problems"],
      "resources": ["CS50", "Exercism"],
      "projects": ["Command-line todo app"]
    },
    {
      "name": "Building",
      "duration": "5 months",
      "description": "Web development and real projects.",
      "milestones": ["Ship a full-stack app", "Learn version control"],
      "resources": ["The Odin Project", "MDN"],
      "projects": ["Personal site", "API-backed web app"]
    },
    {
      "name": "Job readiness",
      "duration": "4 months",
      "description": "Portfolio, interview practice, open source.",
      "milestones": ["3 portfolio projects", "First open-source PR"],
      "resources": ["Pramp", "first-contributions"],
      "projects": ["Capstone project"]
    }
  ],
  "skills": ["JavaScript", "Git", "SQL", "Testing"],
  "certifications": ["AWS Cloud Practitioner"],
  "salaryProgression": {"entry": "$70k", "mid": "$105k", "senior": "$150k"},
  "nextSteps": ["Pick your first course", "Set a weekly study schedule", "Join a study community"]
}`
