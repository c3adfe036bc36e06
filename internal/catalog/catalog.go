// Package catalog serves the platform's curated content: experts, mentor
// sessions, events, stories, communities, and the project board. The data is
// a fixed in-memory sample set; filtering happens server-side on request.
package catalog

import (
	"strings"

	"github.com/pathlight-labs/pathlight/internal/domain"
)

// Catalog holds the curated content set.
type Catalog struct {
	experts     []domain.Expert
	sessions    []domain.MentorSession
	events      []domain.Event
	stories     []domain.Story
	communities []domain.Community
	projects    []domain.BoardProject
}

// New returns a catalog populated with the sample content set.
func New() *Catalog {
	return &Catalog{
		experts:     sampleExperts,
		sessions:    sampleSessions,
		events:      sampleEvents,
		stories:     sampleStories,
		communities: sampleCommunities,
		projects:    sampleProjects,
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Experts returns experts, optionally filtered by a free-text query matching
// name, title, company, or expertise.
func (c *Catalog) Experts(query string) []domain.Expert {
	if query == "" {
		return c.experts
	}
	var out []domain.Expert
	for _, e := range c.experts {
		if containsFold(e.Name, query) || containsFold(e.Title, query) || containsFold(e.Company, query) {
			out = append(out, e)
			continue
		}
		for _, skill := range e.Expertise {
			if containsFold(skill, query) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Expert returns the expert with the given ID, or nil.
func (c *Catalog) Expert(id string) *domain.Expert {
	for i := range c.experts {
		if c.experts[i].ID == id {
			return &c.experts[i]
		}
	}
	return nil
}

// MentorSessions returns sessions, optionally filtered by expert ID.
func (c *Catalog) MentorSessions(expertID string) []domain.MentorSession {
	if expertID == "" {
		return c.sessions
	}
	var out []domain.MentorSession
	for _, s := range c.sessions {
		if s.ExpertID == expertID {
			out = append(out, s)
		}
	}
	return out
}

// Events returns events, optionally filtered by category.
func (c *Catalog) Events(category string) []domain.Event {
	if category == "" {
		return c.events
	}
	var out []domain.Event
	for _, e := range c.events {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

// Stories returns all success stories.
func (c *Catalog) Stories() []domain.Story {
	return c.stories
}

// Communities returns communities, optionally filtered by topic.
func (c *Catalog) Communities(topic string) []domain.Community {
	if topic == "" {
		return c.communities
	}
	var out []domain.Community
	for _, cm := range c.communities {
		if strings.EqualFold(cm.Topic, topic) {
			out = append(out, cm)
		}
	}
	return out
}

// Community returns the community with the given ID, or nil.
func (c *Catalog) Community(id string) *domain.Community {
	for i := range c.communities {
		if c.communities[i].ID == id {
			return &c.communities[i]
		}
	}
	return nil
}

// Projects returns board projects, optionally filtered by difficulty and a
// free-text skill query.
func (c *Catalog) Projects(difficulty, skill string) []domain.BoardProject {
	var out []domain.BoardProject
	for _, p := range c.projects {
		if difficulty != "" && !strings.EqualFold(p.Difficulty, difficulty) {
			continue
		}
		if skill != "" {
			matched := false
			for _, s := range p.Skills {
				if containsFold(s, skill) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Project returns the board project with the given ID, or nil.
func (c *Catalog) Project(id string) *domain.BoardProject {
	for i := range c.projects {
		if c.projects[i].ID == id {
			return &c.projects[i]
		}
	}
	return nil
}
