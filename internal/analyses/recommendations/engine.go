package recommendations

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// Generate turns analyzer counts and findings into a ranked recommendation list.
// Entries sharing an ID are merged, then ordered by severity, impact, category and
// title, and numbered from 1.
func Generate(input Input) []Recommendation {
	var out []Recommendation
	out = append(out, fromRuleCounts(input.Rules)...)
	out = append(out, fromStyleCounts(input.Rules)...)
	out = append(out, fromResumeTips(input.Resume, input.Bullets)...)
	out = append(out, fromMissingKeywords(input.MissingKeywords)...)
	out = append(out, fromATSFindings(input.ATS)...)

	out = mergeByID(out)
	rank(out)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

// Rule severities (critical, major, minor) and ATS severities (error, warning, info)
// share one scale.
var severityWeight = map[string]int{
	"critical": 3,
	"error":    3,
	"major":    2,
	"warning":  2,
}

var impactWeight = map[string]int{
	"high":   3,
	"medium": 2,
}

// categoryWeight orders ties: text correctness first, presentation last.
var categoryWeight = map[string]int{
	"SPELLING":   7,
	"GRAMMAR":    6,
	"ATS":        5,
	"SKILLS":     4,
	"EXPERIENCE": 3,
	"STRUCTURE":  2,
	"FORMATTING": 1,
}

func severityRank(value string) int {
	if w, ok := severityWeight[strings.ToLower(strings.TrimSpace(value))]; ok {
		return w
	}
	return 1
}

func impactRank(value string) int {
	if w, ok := impactWeight[strings.ToLower(strings.TrimSpace(value))]; ok {
		return w
	}
	return 1
}

func categoryRank(value string) int {
	return categoryWeight[strings.ToUpper(strings.TrimSpace(value))]
}

func rank(items []Recommendation) {
	slices.SortStableFunc(items, func(a, b Recommendation) int {
		return cmp.Or(
			cmp.Compare(severityRank(b.Severity), severityRank(a.Severity)),
			cmp.Compare(impactRank(b.Impact), impactRank(a.Impact)),
			cmp.Compare(categoryRank(b.Category), categoryRank(a.Category)),
			strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
		)
	})
}

// mergeByID collapses entries with the same ID into the first one, keeping its
// position. Entries without an ID are dropped.
func mergeByID(items []Recommendation) []Recommendation {
	index := make(map[string]int, len(items))
	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if i, ok := index[id]; ok {
			out[i] = combine(out[i], item)
			continue
		}
		index[id] = len(out)
		out = append(out, item)
	}
	return out
}

// combine fills blank text fields of a from b and keeps the stronger severity and impact.
func combine(a, b Recommendation) Recommendation {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&a.Title, b.Title)
	fill(&a.Why, b.Why)
	fill(&a.Action, b.Action)
	fill(&a.Category, b.Category)
	if strings.TrimSpace(a.Severity) == "" || severityRank(b.Severity) > severityRank(a.Severity) {
		a.Severity = b.Severity
	}
	if strings.TrimSpace(a.Impact) == "" || impactRank(b.Impact) > impactRank(a.Impact) {
		a.Impact = b.Impact
	}
	return a
}

// idToken upper-cases s and joins its alphanumeric runs with underscores.
func idToken(s string) string {
	fields := strings.FieldsFunc(strings.ToUpper(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "ITEM"
	}
	return strings.Join(fields, "_")
}

// distinctSorted trims items, drops blanks and case-insensitive repeats, and sorts.
func distinctSorted(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}
