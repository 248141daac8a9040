package analyses

import (
	"resume-quality/internal/analyses/recommendations"
	"resume-quality/internal/match"
	"resume-quality/internal/rules"
	"resume-quality/internal/segment"
)

// Request is one document to analyze.
type Request struct {
	Text         string            `json:"text"`
	DocumentType string            `json:"documentType" validate:"max=32"`
	Job          *match.JobContext `json:"job,omitempty"`
	// ReadabilityScore, when set, replaces the computed readability score.
	ReadabilityScore *int `json:"readabilityScore,omitempty" validate:"omitempty,min=0,max=100"`
}

// BatchRequest analyzes several documents in one call.
type BatchRequest struct {
	Documents []Request `json:"documents" validate:"required,min=1,max=50,dive"`
}

// TopIssue is a ranked finding from any analyzer.
type TopIssue struct {
	Source     string      `json:"source"`
	Type       string      `json:"type"`
	Severity   string      `json:"severity"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Text       string      `json:"text,omitempty"`
	Span       *rules.Span `json:"span,omitempty"`
	RuleID     string      `json:"ruleId,omitempty"`
}

// ScoreBreakdown is the complete, deterministic analysis output.
type ScoreBreakdown struct {
	DocumentType     segment.DocumentType `json:"documentType"`
	GrammarScore     int                  `json:"grammarScore"`
	ReadabilityScore int                  `json:"readabilityScore"`
	ATSScore         int                  `json:"atsScore"`
	MatchScore       *int                 `json:"matchScore"`
	CombinedScore    int                  `json:"combinedScore"`
	PassesQuality    bool                 `json:"passesQuality"`
	Threshold        int                  `json:"threshold"`
	GrammarValid     bool                 `json:"grammarValid"`

	Counts          rules.Counts       `json:"counts"`
	Metadata        segment.Metadata   `json:"metadata"`
	Sections        []string           `json:"sections"`
	Issues          []rules.Issue      `json:"issues"`
	ATS             match.ATSBreakdown `json:"ats"`
	Match           *match.Result      `json:"match,omitempty"`
	TopIssues       []TopIssue         `json:"topIssues"`
	Recommendations []Recommendation   `json:"recommendations"`
	Explanation     ScoreExplanation   `json:"explanation"`
}

// Recommendation is one ranked improvement suggestion.
type Recommendation = recommendations.Recommendation
