package match

import (
	"math"
	"strings"
)

// JobContext carries the target job's keyword data.
type JobContext struct {
	Keywords    []string `json:"keywords" validate:"omitempty,max=200,dive,max=100"`
	Description string   `json:"description,omitempty"`
}

// Candidate is the document side of a match: its text and extracted skills.
type Candidate struct {
	Text     string
	Keywords []string
}

// Result is the outcome of matching one document against one job.
type Result struct {
	Score    int      `json:"matchScore"`
	Required []string `json:"requiredKeywords"`
	Matched  []string `json:"matchedKeywords"`
	Missing  []string `json:"missingKeywords"`
}

// RequiredKeywords returns the job's canonical required keywords: the explicit list in
// order, then vocabulary skills derived from the description. Duplicates are dropped.
func RequiredKeywords(job JobContext) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(k string) {
		k = Canonical(k)
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		out = append(out, k)
	}
	for _, k := range job.Keywords {
		add(k)
	}
	if strings.TrimSpace(job.Description) != "" {
		for _, k := range VocabularyKeywords(job.Description) {
			add(k)
		}
	}
	return out
}

// Score compares the candidate's keywords with the job's required keywords. A keyword is
// matched when it is among the candidate's canonical keywords or appears literally in the
// candidate text; score is matched/(matched+missing)*100, or 0 when nothing is required.
func Score(c Candidate, job JobContext) Result {
	have := make(map[string]bool, len(c.Keywords))
	for _, k := range c.Keywords {
		have[Canonical(k)] = true
	}
	for _, k := range ExtractKeywords(c.Text) {
		have[k] = true
	}
	lower := strings.ToLower(c.Text)

	res := Result{
		Required: RequiredKeywords(job),
		Matched:  []string{},
		Missing:  []string{},
	}
	if res.Required == nil {
		res.Required = []string{}
	}
	for _, k := range res.Required {
		if have[k] || ContainsWord(lower, k) {
			res.Matched = append(res.Matched, k)
			continue
		}
		res.Missing = append(res.Missing, k)
	}
	if total := len(res.Matched) + len(res.Missing); total > 0 {
		res.Score = int(math.Round(float64(len(res.Matched)) / float64(total) * 100))
	}
	return res
}
