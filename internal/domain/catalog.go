package domain

import (
	"time"
)

// Expert is a listed career expert available for guidance sessions.
type Expert struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Expertise []string `json:"expertise"`
	Rating    float64  `json:"rating"`
	Sessions  int      `json:"sessions"`
	Bio       string   `json:"bio"`
}

// MentorSession is a bookable one-on-one session with an expert.
type MentorSession struct {
	ID       string `json:"id"`
	ExpertID string `json:"expert_id"`
	Topic    string `json:"topic"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
	Mode     string `json:"mode"`
	Seats    int    `json:"seats"`
}

// Event is a community event (webinar, workshop, career fair).
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

// Story is a published success story.
type Story struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Path    string `json:"path"`
	Excerpt string `json:"excerpt"`
}

// Community is a topic community users can join.
type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Members     int    `json:"members"`
	Topic       string `json:"topic"`
}

// BoardProject is a project listed on the project board.
type BoardProject struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Difficulty  string   `json:"difficulty"`
	Duration    string   `json:"duration"`
}

// PortfolioItem is an entry in a user's project portfolio. Accepted roadmaps
// land here via the coach handoff.
type PortfolioItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	DetailJSON string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// PortfolioKindRoadmap marks a portfolio item created from an accepted roadmap.
const PortfolioKindRoadmap = "roadmap"

// PortfolioKindProject marks a portfolio item created from the project board.
const PortfolioKindProject = "project"
