package recommendations

// Recommendation represents a deterministic suggestion derived from analysis results.
type Recommendation struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Order    int    `json:"order"`
}

// RuleCounts summarises rule engine findings by kind.
type RuleCounts struct {
	Spelling    int
	Grammar     int
	Punctuation int
	RunOn       int
	WeakVerbs   int
	Cliches     int
	Informal    int
	Duplicates  int
}

// ATSFinding is a minimal ATS issue representation used by the recommendation engine.
type ATSFinding struct {
	Category string
	Severity string
	Message  string
	Fix      string
}

// BulletStats describes the experience bullets of a resume.
type BulletStats struct {
	Total        int
	WeakOpeners  int
	Unquantified int
}

// Input is the normalized data needed for recommendation generation.
type Input struct {
	Resume          bool
	Rules           RuleCounts
	Bullets         BulletStats
	MissingKeywords []string
	ATS             []ATSFinding
}
