package analyses

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"resume-quality/internal/analyses/recommendations"
	"resume-quality/internal/match"
	"resume-quality/internal/rules"
	"resume-quality/internal/segment"
)

const (
	// DefaultThreshold is the combined score needed to pass.
	DefaultThreshold = 70
	// MaxTopIssues caps the ranked issue list.
	MaxTopIssues = 10
)

// Inputs are the analyzer outputs the aggregator combines.
type Inputs struct {
	Document    segment.Document
	Grammar     rules.Result
	Readability int
	ATS         match.ATSBreakdown
	Match       *match.Result
	Threshold   int
}

// Analyze runs the full pipeline on one request with the default threshold.
func Analyze(req Request) ScoreBreakdown {
	return AnalyzeWithThreshold(req, DefaultThreshold)
}

// AnalyzeWithThreshold runs segmentation, the rule engine, readability and the match
// scorer, then aggregates. It has no side effects. A nil Job omits job matching.
func AnalyzeWithThreshold(req Request, threshold int) ScoreBreakdown {
	docType := segment.NormalizeDocumentType(req.DocumentType)
	if strings.TrimSpace(req.Text) == "" {
		out := neutral(docType, threshold)
		if req.Job != nil {
			m := match.Score(match.Candidate{}, *req.Job)
			score := clamp(m.Score)
			out.MatchScore = &score
			out.Match = &m
		}
		return out
	}

	doc := segment.Segment(req.Text, docType)
	grammar := rules.Check(req.Text, docType)

	readability := Readability(req.Text)
	if req.ReadabilityScore != nil {
		readability = clamp(*req.ReadabilityScore)
	}

	var matched *match.Result
	if req.Job != nil {
		m := match.Score(match.Candidate{
			Text:     req.Text,
			Keywords: segment.SkillItems(doc.Sections),
		}, *req.Job)
		matched = &m
	}

	ats := match.ATS(match.ATSInput{
		Text:        req.Text,
		Document:    doc,
		Readability: readability,
		Match:       matched,
	})

	return Aggregate(Inputs{
		Document:    doc,
		Grammar:     grammar,
		Readability: readability,
		ATS:         ats,
		Match:       matched,
		Threshold:   threshold,
	})
}

// Aggregate combines analyzer outputs into one ScoreBreakdown:
// combined = round(0.4*ats + 0.3*readability + 0.3*grammar).
func Aggregate(in Inputs) ScoreBreakdown {
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	grammar := clamp(in.Grammar.Score)
	readability := clamp(in.Readability)
	ats := clamp(in.ATS.Score)
	combined := CombinedScore(ats, readability, grammar)

	out := ScoreBreakdown{
		DocumentType:     in.Document.Type,
		GrammarScore:     grammar,
		ReadabilityScore: readability,
		ATSScore:         ats,
		CombinedScore:    combined,
		PassesQuality:    combined >= threshold,
		Threshold:        threshold,
		GrammarValid:     in.Grammar.IsValid,
		Counts:           in.Grammar.Counts,
		Metadata:         in.Document.Metadata,
		Sections:         in.Document.Sections.Names(),
		Issues:           in.Grammar.Issues,
		ATS:              in.ATS,
		Match:            in.Match,
		TopIssues:        TopIssues(in.Grammar.Issues, in.ATS.Issues, MaxTopIssues),
		Explanation:      explain(in.Grammar, readability, in.ATS),
	}
	if out.Issues == nil {
		out.Issues = []rules.Issue{}
	}
	if in.Match != nil {
		score := clamp(in.Match.Score)
		out.MatchScore = &score
	}
	out.Recommendations = recommendations.Generate(recommendationInput(in))
	return out
}

// CombinedScore applies the fixed dimension weights.
func CombinedScore(ats, readability, grammar int) int {
	return clamp(int(math.Round(WeightATS*float64(ats) + WeightReadability*float64(readability) + WeightGrammar*float64(grammar))))
}

// TopIssues merges rule and ATS issues, ranks them critical/error over major/warning
// over minor/info, keeps the input order within a rank and truncates to limit.
func TopIssues(ruleIssues []rules.Issue, atsIssues []match.ATSIssue, limit int) []TopIssue {
	merged := make([]TopIssue, 0, len(ruleIssues)+len(atsIssues))
	for _, issue := range ruleIssues {
		span := issue.Span
		merged = append(merged, TopIssue{
			Source:     "grammar",
			Type:       string(issue.Type),
			Severity:   string(issue.Severity),
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
			Text:       issue.Text,
			Span:       &span,
			RuleID:     issue.RuleID,
		})
	}
	for _, issue := range atsIssues {
		merged = append(merged, TopIssue{
			Source:     "ats",
			Type:       issue.Category,
			Severity:   issue.Severity,
			Message:    issue.Message,
			Suggestion: issue.Fix,
		})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return severityRank(merged[i].Severity) > severityRank(merged[j].Severity)
	})
	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func severityRank(severity string) int {
	switch severity {
	case string(rules.SeverityCritical), match.SeverityError:
		return 3
	case string(rules.SeverityMajor), match.SeverityWarning:
		return 2
	default:
		return 1
	}
}

func neutral(docType segment.DocumentType, threshold int) ScoreBreakdown {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	n := rules.NeutralScore
	grammar := rules.Result{Issues: []rules.Issue{}, Score: n}
	ats := match.ATSBreakdown{
		Score: n, Formatting: n, Keywords: n, Structure: n, Readability: n, Compatibility: n,
		Issues:          []match.ATSIssue{},
		Recommendations: []string{},
	}
	combined := CombinedScore(n, n, n)
	return ScoreBreakdown{
		DocumentType:     docType,
		GrammarScore:     n,
		ReadabilityScore: n,
		ATSScore:         n,
		CombinedScore:    combined,
		PassesQuality:    combined >= threshold,
		Threshold:        threshold,
		Sections:         []string{},
		Issues:           []rules.Issue{},
		ATS:              ats,
		TopIssues:        []TopIssue{},
		Recommendations:  []Recommendation{},
		Explanation:      explain(grammar, n, ats),
	}
}

var (
	yearToken  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	digitToken = regexp.MustCompile(`\d`)
)

// strongVerbs are accepted bullet openers besides regular past-tense verbs.
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"delivered": true, "designed": true, "developed": true, "engineered": true,
	"implemented": true, "improved": true, "increased": true, "launched": true,
	"led": true, "optimized": true, "reduced": true, "scaled": true,
	"shipped": true, "transformed": true, "grew": true, "ran": true,
	"drove": true, "won": true, "wrote": true, "taught": true, "cut": true,
}

// weakOpeners end in -ed but do not describe an accomplishment.
var weakOpeners = map[string]bool{
	"worked": true, "helped": true, "assisted": true, "handled": true, "tasked": true,
}

func recommendationInput(in Inputs) recommendations.Input {
	counts := in.Grammar.Counts
	out := recommendations.Input{
		Resume: in.Document.Type == segment.DocumentResume,
		Rules: recommendations.RuleCounts{
			Spelling:    counts.Spelling,
			Grammar:     counts.Grammar,
			Punctuation: counts.Punctuation,
			RunOn:       in.Grammar.CountByRule("run-on-sentence"),
			WeakVerbs:   in.Grammar.CountByRule("weak-verb"),
			Cliches:     in.Grammar.CountByRule("cliche"),
			Informal:    in.Grammar.CountByRule("informal-language"),
			Duplicates:  in.Grammar.CountByRule("duplicate-sentence"),
		},
		Bullets: bulletStats(in.Document.Sections),
	}
	if in.Match != nil {
		out.MissingKeywords = in.Match.Missing
	}
	for _, issue := range in.ATS.Issues {
		out.ATS = append(out.ATS, recommendations.ATSFinding{
			Category: issue.Category,
			Severity: issue.Severity,
			Message:  issue.Message,
			Fix:      issue.Fix,
		})
	}
	return out
}

// bulletStats inspects experience and project items, skipping role and date lines.
func bulletStats(sections segment.ParsedSections) recommendations.BulletStats {
	var stats recommendations.BulletStats
	for _, name := range []segment.Section{segment.SectionExperience, segment.SectionProjects} {
		sec, ok := sections.Get(name)
		if !ok {
			continue
		}
		for _, item := range sec.Items {
			if yearToken.MatchString(item) {
				continue
			}
			stats.Total++
			if !strongOpener(item) {
				stats.WeakOpeners++
			}
			if !digitToken.MatchString(item) {
				stats.Unquantified++
			}
		}
	}
	return stats
}

func strongOpener(item string) bool {
	words := strings.Fields(strings.ToLower(item))
	if len(words) == 0 {
		return false
	}
	first := strings.TrimRight(words[0], ".,!?;:")
	if strongVerbs[first] {
		return true
	}
	return !weakOpeners[first] && strings.HasSuffix(first, "ed") && len(first) > 3
}
