package domain

// DifficultyTier grades how hard a career path is to enter.
type DifficultyTier string

const (
	DifficultyBeginner     DifficultyTier = "Beginner"
	DifficultyIntermediate DifficultyTier = "Intermediate"
	DifficultyAdvanced     DifficultyTier = "Advanced"
)

// DemandTier grades current market demand for a career path.
type DemandTier string

const (
	DemandHigh   DemandTier = "High"
	DemandMedium DemandTier = "Medium"
	DemandLow    DemandTier = "Low"
)

// Recommendation is one candidate career path surfaced after the assessment
// completes. Records are created in a batch by parsing generator output and
// are immutable afterwards; they are discarded only on session reset.
//
// MatchScore is expected to be 0-100 but out-of-range generator values are
// passed through unmodified.
type Recommendation struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	MatchScore    int            `json:"matchScore"`
	SalaryRange   string         `json:"salaryRange"`
	GrowthOutlook string         `json:"growthOutlook"`
	Skills        []string       `json:"skills"`
	Tasks         []string       `json:"tasks"`
	LearningSteps []string       `json:"learningSteps"`
	Difficulty    DifficultyTier `json:"difficulty"`
	Demand        DemandTier     `json:"demand"`
	MatchReasons  []string       `json:"matchReasons"`
}
