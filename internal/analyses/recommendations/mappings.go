package recommendations

import (
	"fmt"
	"strings"
)

const (
	spellingThreshold = 3
	grammarThreshold  = 2
	maxKeywordsListed = 10
)

func fromRuleCounts(c RuleCounts) []Recommendation {
	var out []Recommendation
	if c.Spelling > spellingThreshold {
		out = append(out, Recommendation{
			ID:       "SPELLING_PASS",
			Category: "SPELLING",
			Severity: "critical",
			Title:    "Run a spell-check pass",
			Why:      fmt.Sprintf("%d spelling issues were found; typos are an easy reason to reject a document.", c.Spelling),
			Action:   "Run a spell-checker and reread the document aloud before sending it.",
			Impact:   "high",
		})
	}
	if c.Grammar > grammarThreshold {
		out = append(out, Recommendation{
			ID:       "GRAMMAR_TENSE_AGREEMENT",
			Category: "GRAMMAR",
			Severity: "warning",
			Title:    "Review tense and agreement",
			Why:      fmt.Sprintf("%d grammar issues were found.", c.Grammar),
			Action:   "Check that verbs agree with their subjects and that each role uses one tense consistently.",
			Impact:   "medium",
		})
	}
	if c.RunOn > 0 {
		out = append(out, Recommendation{
			ID:       "GRAMMAR_SPLIT_SENTENCES",
			Category: "GRAMMAR",
			Severity: "warning",
			Title:    "Split long sentences",
			Why:      fmt.Sprintf("%d sentence(s) run past 150 characters and are hard to scan.", c.RunOn),
			Action:   "Break long sentences into two or more short ones, one idea each.",
			Impact:   "medium",
		})
	}
	return out
}

func fromStyleCounts(c RuleCounts) []Recommendation {
	var out []Recommendation
	if c.Cliches > 0 || c.Informal > 0 {
		out = append(out, Recommendation{
			ID:       "STYLE_PROFESSIONAL_TONE",
			Category: "EXPERIENCE",
			Severity: "info",
			Title:    "Replace clichés and informal wording",
			Why:      "Generic phrases and casual words dilute otherwise strong content.",
			Action:   "Swap each cliché for a concrete example and each informal word for a professional one.",
			Impact:   "low",
		})
	}
	if c.Duplicates > 0 {
		out = append(out, Recommendation{
			ID:       "STYLE_REMOVE_DUPLICATES",
			Category: "STRUCTURE",
			Severity: "warning",
			Title:    "Remove repeated sentences",
			Why:      "Repeated sentences waste space and look like copy-paste mistakes.",
			Action:   "Keep one copy of each repeated sentence.",
			Impact:   "medium",
		})
	}
	return out
}

// fromResumeTips always yields the action-verb and quantification tips for resumes; the
// bullet statistics only raise their priority.
func fromResumeTips(resume bool, b BulletStats) []Recommendation {
	if !resume {
		return nil
	}
	verbs := Recommendation{
		ID:       "RESUME_ACTION_VERBS",
		Category: "EXPERIENCE",
		Severity: "info",
		Title:    "Lead bullets with action verbs",
		Why:      "Strong verbs such as built, led, reduced or launched make ownership clear.",
		Action:   "Start every bullet with a past-tense action verb and drop phrases like \"responsible for\".",
		Impact:   "medium",
	}
	if b.Total > 0 && b.WeakOpeners*2 > b.Total {
		verbs.Severity = "warning"
		verbs.Why = fmt.Sprintf("%d of %d bullets do not open with an action verb.", b.WeakOpeners, b.Total)
	}
	numbers := Recommendation{
		ID:       "RESUME_QUANTIFY_IMPACT",
		Category: "EXPERIENCE",
		Severity: "info",
		Title:    "Quantify your impact",
		Why:      "Numbers such as percentages, revenue or users served make results concrete.",
		Action:   "Add a metric to each bullet where one truthfully exists.",
		Impact:   "medium",
	}
	if b.Total > 0 && b.Unquantified*2 > b.Total {
		numbers.Severity = "warning"
		numbers.Impact = "high"
		numbers.Why = fmt.Sprintf("%d of %d bullets have no numbers.", b.Unquantified, b.Total)
	}
	return []Recommendation{verbs, numbers}
}

func fromMissingKeywords(k []string) []Recommendation {
	keywords := distinctSorted(k)
	if len(keywords) == 0 {
		return nil
	}
	listed := keywords
	if len(listed) > maxKeywordsListed {
		listed = listed[:maxKeywordsListed]
	}
	return []Recommendation{
		{
			ID:       "ATS_MISSING_JD_KEYWORDS",
			Category: "ATS",
			Severity: "warning",
			Title:    "Add missing job keywords",
			Why:      "Improves ATS match and helps recruiters quickly spot relevant skills.",
			Action:   "Work the missing keywords naturally into Skills and Experience where they apply. Focus on: " + strings.Join(listed, ", "),
			Impact:   "high",
		},
	}
}

// fromATSFindings groups ATS issues by category; one recommendation per category.
func fromATSFindings(findings []ATSFinding) []Recommendation {
	type group struct {
		severity string
		fixes    []string
	}
	groups := map[string]*group{}
	var order []string
	for _, f := range findings {
		key := strings.ToLower(strings.TrimSpace(f.Category))
		if key == "" || key == "keywords" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{severity: "info"}
			groups[key] = g
			order = append(order, key)
		}
		if sev := mapATSSeverity(f.Severity); severityRank(sev) > severityRank(g.severity) {
			g.severity = sev
		}
		if fix := strings.TrimSpace(f.Fix); fix != "" {
			g.fixes = append(g.fixes, fix)
		}
	}

	out := make([]Recommendation, 0, len(order))
	for _, key := range order {
		g := groups[key]
		title, category, why := atsCategoryCopy(key)
		out = append(out, Recommendation{
			ID:       "ATS_" + idToken(key),
			Category: category,
			Severity: g.severity,
			Title:    title,
			Why:      why,
			Action:   strings.Join(distinctSorted(g.fixes), "; "),
			Impact:   impactFor(g.severity),
		})
	}
	return out
}

func mapATSSeverity(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return "critical"
	case "warning":
		return "warning"
	default:
		return "info"
	}
}

func impactFor(severity string) string {
	switch severity {
	case "critical":
		return "high"
	case "warning":
		return "medium"
	default:
		return "low"
	}
}

func atsCategoryCopy(category string) (title, group, why string) {
	switch category {
	case "structure":
		return "Fix section structure", "STRUCTURE", "Parsers rely on standard sections and contact details to file your application."
	case "formatting":
		return "Fix ATS formatting issues", "FORMATTING", "Formatting issues reduce ATS readability and can hide key details."
	case "compatibility":
		return "Use an ATS-safe layout", "ATS", "Tables, images and icons are often dropped or garbled by parsers."
	case "readability":
		return "Improve readability", "ATS", "Dense text is skimmed past by both parsers and recruiters."
	default:
		return "Fix ATS issues", "ATS", "Improves how applicant tracking systems read the document."
	}
}
