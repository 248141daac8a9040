package rules

// IssueType classifies the defect an Issue reports.
type IssueType string

const (
	TypeSpelling    IssueType = "spelling"
	TypeGrammar     IssueType = "grammar"
	TypePunctuation IssueType = "punctuation"
	TypeStyle       IssueType = "style"
)

// Severity ranks an Issue; it drives the score deduction.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Rank orders severities, higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMajor:
		return 2
	default:
		return 1
	}
}

// Span is a half-open byte range [Start, End) into the analyzed text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether the span lies within a text of the given length.
func (s Span) Valid(textLen int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= textLen
}

// Issue is a single detected defect.
type Issue struct {
	Type         IssueType `json:"type"`
	Severity     Severity  `json:"severity"`
	Text         string    `json:"text"`
	Span         Span      `json:"span"`
	Message      string    `json:"message"`
	Suggestion   string    `json:"suggestion"`
	Replacements []string  `json:"replacements,omitempty"`
	RuleID       string    `json:"ruleId"`
}

// Counts tallies issues by type and severity.
type Counts struct {
	Spelling    int `json:"spelling"`
	Grammar     int `json:"grammar"`
	Punctuation int `json:"punctuation"`
	Style       int `json:"style"`
	Critical    int `json:"critical"`
	Major       int `json:"major"`
	Minor       int `json:"minor"`
	Total       int `json:"total"`
}

// Result is the RuleEngine output for one document.
type Result struct {
	Issues    []Issue `json:"issues"`
	Score     int     `json:"score"`
	IsValid   bool    `json:"isValid"`
	Counts    Counts  `json:"counts"`
	WordCount int     `json:"wordCount"`
}

// CountByRule returns how many issues a rule produced.
func (r Result) CountByRule(ruleID string) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.RuleID == ruleID {
			n++
		}
	}
	return n
}
