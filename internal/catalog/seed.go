package catalog

import (
	"github.com/pathlight-labs/pathlight/internal/domain"
)

var sampleExperts = []domain.Expert{
	{
		ID:        "exp-1",
		Name:      "Priya Raman",
		Title:     "Staff Software Engineer",
		Company:   "Northwind",
		Expertise: []string{"Backend development", "System design", "Career switching"},
		Rating:    4.9,
		Sessions:  132,
		Bio:       "Fifteen years building distributed systems; mentors engineers moving into backend roles.",
	},
	{
		ID:        "exp-2",
		Name:      "Marcus Chen",
		Title:     "Lead Data Scientist",
		Company:   "Helix Analytics",
		Expertise: []string{"Data science", "Machine learning", "Statistics"},
		Rating:    4.8,
		Sessions:  98,
		Bio:       "Runs a data science team and teaches applied statistics on weekends.",
	},
	{
		ID:        "exp-3",
		Name:      "Sofia Alvarez",
		Title:     "Principal Product Designer",
		Company:   "Brightline",
		Expertise: []string{"UX design", "Design systems", "Portfolio reviews"},
		Rating:    4.7,
		Sessions:  76,
		Bio:       "Design leader who reviews junior portfolios and coaches interview prep.",
	},
	{
		ID:        "exp-4",
		Name:      "David Okoye",
		Title:     "Engineering Manager",
		Company:   "Ferrocene",
		Expertise: []string{"Leadership", "Interview preparation", "Resume reviews"},
		Rating:    4.9,
		Sessions:  154,
		Bio:       "Hires and grows early-career engineers; happy to share what interviewers look for.",
	},
}

var sampleSessions = []domain.MentorSession{
	{ID: "ses-1", ExpertID: "exp-1", Topic: "Breaking into backend development", Date: "2026-09-12", Duration: "45m", Mode: "video", Seats: 1},
	{ID: "ses-2", ExpertID: "exp-1", Topic: "System design office hours", Date: "2026-09-19", Duration: "60m", Mode: "video", Seats: 6},
	{ID: "ses-3", ExpertID: "exp-2", Topic: "First steps in data science", Date: "2026-09-14", Duration: "45m", Mode: "video", Seats: 1},
	{ID: "ses-4", ExpertID: "exp-3", Topic: "UX portfolio review", Date: "2026-09-21", Duration: "30m", Mode: "video", Seats: 1},
	{ID: "ses-5", ExpertID: "exp-4", Topic: "Mock technical interview", Date: "2026-09-25", Duration: "60m", Mode: "video", Seats: 1},
}

var sampleEvents = []domain.Event{
	{ID: "evt-1", Title: "Tech Careers Fair", Description: "Meet hiring teams from twenty companies.", Date: "2026-10-03", Location: "Online", Category: "career-fair"},
	{ID: "evt-2", Title: "Intro to Cloud Computing", Description: "Hands-on workshop covering cloud fundamentals.", Date: "2026-09-18", Location: "Online", Category: "workshop"},
	{ID: "evt-3", Title: "From Classroom to First Job", Description: "Panel of recent graduates on landing a first role.", Date: "2026-09-27", Location: "Community Hall, Pune", Category: "panel"},
	{ID: "evt-4", Title: "Open Source Saturday", Description: "Guided first contributions to open-source projects.", Date: "2026-10-10", Location: "Online", Category: "workshop"},
}

var sampleStories = []domain.Story{
	{ID: "sto-1", Author: "Ananya S.", Title: "From biology major to data analyst", Path: "Data Analyst", Excerpt: "I thought my degree locked me out of tech. Eight months of SQL and dashboards proved otherwise."},
	{ID: "sto-2", Author: "Rahul M.", Title: "Shipping my first app at 19", Path: "Software Developer", Excerpt: "The roadmap broke a huge goal into weeks I could actually finish."},
	{ID: "sto-3", Author: "Elena P.", Title: "Design was always there", Path: "UX Designer", Excerpt: "A portfolio review session changed how I presented my work, and the offers followed."},
}

var sampleCommunities = []domain.Community{
	{ID: "com-1", Name: "Backend Builders", Description: "APIs, databases, and everything server-side.", Members: 2381, Topic: "engineering"},
	{ID: "com-2", Name: "Data Crunchers", Description: "SQL, statistics, and analytics career talk.", Members: 1874, Topic: "data"},
	{ID: "com-3", Name: "Design Lounge", Description: "Critique, portfolios, and UX career advice.", Members: 1211, Topic: "design"},
	{ID: "com-4", Name: "First Jobbers", Description: "Support group for landing your first tech role.", Members: 3509, Topic: "careers"},
}

var sampleProjects = []domain.BoardProject{
	{ID: "prj-1", Title: "Personal finance tracker", Description: "Build a web app that tracks expenses and renders monthly charts.", Skills: []string{"JavaScript", "React", "Charts"}, Difficulty: "Beginner", Duration: "3 weeks"},
	{ID: "prj-2", Title: "REST API for a book club", Description: "Design and implement a small CRUD API with authentication.", Skills: []string{"Go", "SQL", "REST"}, Difficulty: "Intermediate", Duration: "4 weeks"},
	{ID: "prj-3", Title: "Sales data dashboard", Description: "Clean a messy dataset and present insights in a dashboard.", Skills: []string{"SQL", "Python", "Visualization"}, Difficulty: "Beginner", Duration: "2 weeks"},
	{ID: "prj-4", Title: "Realtime chat service", Description: "WebSocket chat with rooms, presence, and message history.", Skills: []string{"Go", "WebSocket", "Concurrency"}, Difficulty: "Advanced", Duration: "6 weeks"},
	{ID: "prj-5", Title: "Mobile-first recipe app design", Description: "Research, wireframe, and prototype a recipe discovery app.", Skills: []string{"Figma", "User research", "Prototyping"}, Difficulty: "Intermediate", Duration: "3 weeks"},
}
