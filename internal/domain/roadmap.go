package domain

// RoadmapPhase is one phase of a generated learning roadmap.
type RoadmapPhase struct {
	Name        string   `json:"name"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Milestones  []string `json:"milestones"`
	Resources   []string `json:"resources"`
	Projects    []string `json:"projects"`
}

// SalaryProgression gives expected compensation at three career points.
type SalaryProgression struct {
	Entry  string `json:"entry"`
	Mid    string `json:"mid"`
	Senior string `json:"senior"`
}

// Roadmap is the detailed, phased learning plan generated for a single
// selected recommendation. Immutable once produced; one roadmap per
// selected recommendation.
type Roadmap struct {
	CareerPath     string            `json:"careerPath"`
	Overview       string            `json:"overview"`
	TotalDuration  string            `json:"totalDuration"`
	Phases         []RoadmapPhase    `json:"phases"`
	Skills         []string          `json:"skills"`
	Certifications []string          `json:"certifications"`
	Salary         SalaryProgression `json:"salaryProgression"`
	NextSteps      []string          `json:"nextSteps"`
}

// Clone returns a deep copy of the roadmap.
func (r *Roadmap) Clone() *Roadmap {
	c := *r
	c.Phases = make([]RoadmapPhase, len(r.Phases))
	for i, p := range r.Phases {
		p.Milestones = append([]string(nil), p.Milestones...)
		p.Resources = append([]string(nil), p.Resources...)
		p.Projects = append([]string(nil), p.Projects...)
		c.Phases[i] = p
	}
	c.Skills = append([]string(nil), r.Skills...)
	c.Certifications = append([]string(nil), r.Certifications...)
	c.NextSteps = append([]string(nil), r.NextSteps...)
	return &c
}

// RoadmapHandoff is the payload handed to the portfolio when a user accepts
// a generated roadmap. The coach's responsibility ends at producing it.
type RoadmapHandoff struct {
	CareerPath string   `json:"careerPath"`
	Roadmap    *Roadmap `json:"roadmap"`
}
