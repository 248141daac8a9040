package analyses

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"resume-quality/internal/match"
	"resume-quality/internal/rules"
)

// Combined score weights. They sum to 1.
const (
	WeightATS         = 0.4
	WeightReadability = 0.3
	WeightGrammar     = 0.3
)

// ScoreExplanation explains how the combined score is calculated.
type ScoreExplanation struct {
	Components []ScoreComponent `json:"components"`
}

// ScoreComponent represents a weighted score component.
type ScoreComponent struct {
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	Score        int      `json:"score"`
	Weight       int      `json:"weight"`
	Contribution float64  `json:"contribution"`
	Explanation  string   `json:"explanation"`
	Helped       []string `json:"helped"`
	Dragged      []string `json:"dragged"`
}

var scoreExplanationKeys = map[string]string{
	"ats":         "ATS Compatibility",
	"readability": "Readability",
	"grammar":     "Grammar & Style",
}

func explain(grammar rules.Result, readability int, ats match.ATSBreakdown) ScoreExplanation {
	components := []ScoreComponent{
		atsComponent(ats),
		readabilityComponent(readability),
		grammarComponent(grammar),
	}
	return normalizeScoreExplanation(ScoreExplanation{Components: components})
}

func component(key string, score int, weight float64, explanation string) ScoreComponent {
	return ScoreComponent{
		Key:          key,
		Label:        scoreExplanationKeys[key],
		Score:        score,
		Weight:       int(math.Round(weight * 100)),
		Contribution: math.Round(weight*float64(score)*10) / 10,
		Explanation:  explanation,
	}
}

func atsComponent(ats match.ATSBreakdown) ScoreComponent {
	c := component("ats", ats.Score, WeightATS,
		"Weighted average of formatting, keywords, structure, readability and layout compatibility.")
	dims := []struct {
		name  string
		score int
	}{
		{"formatting", ats.Formatting},
		{"keywords", ats.Keywords},
		{"structure", ats.Structure},
		{"compatibility", ats.Compatibility},
	}
	for _, d := range dims {
		if d.score >= 80 {
			c.Helped = append(c.Helped, fmt.Sprintf("%s scored %d", d.name, d.score))
		}
	}
	for _, issue := range ats.Issues {
		if issue.Severity == match.SeverityInfo {
			continue
		}
		c.Dragged = append(c.Dragged, issue.Message)
	}
	return c
}

func readabilityComponent(score int) ScoreComponent {
	c := component("readability", score, WeightReadability,
		"Flesch reading ease: shorter sentences and shorter words score higher.")
	switch {
	case score >= 60:
		c.Helped = append(c.Helped, "sentences are easy to follow")
	case score < 30:
		c.Dragged = append(c.Dragged, "sentences are long or use many multi-syllable words")
	default:
		c.Dragged = append(c.Dragged, "some sentences are dense")
	}
	return c
}

func grammarComponent(r rules.Result) ScoreComponent {
	c := component("grammar", r.Score, WeightGrammar,
		"Starts at 100; critical, major and minor issues deduct 10, 5 and 2 points.")
	if r.WordCount > 0 && r.Counts.Spelling == 0 {
		c.Helped = append(c.Helped, "no spelling issues")
	}
	if r.WordCount > 0 && r.Counts.Grammar == 0 {
		c.Helped = append(c.Helped, "no grammar issues")
	}
	kinds := []struct {
		label string
		n     int
	}{
		{"spelling", r.Counts.Spelling},
		{"grammar", r.Counts.Grammar},
		{"punctuation", r.Counts.Punctuation},
		{"style", r.Counts.Style},
	}
	for _, k := range kinds {
		if k.n > 0 {
			c.Dragged = append(c.Dragged, fmt.Sprintf("%d %s issue(s)", k.n, k.label))
		}
	}
	return c
}

func validateScoreExplanation(e *ScoreExplanation) error {
	if e == nil {
		return errors.New("explanation is required")
	}
	if len(e.Components) != len(scoreExplanationKeys) {
		return fmt.Errorf("explanation.components must contain %d items", len(scoreExplanationKeys))
	}
	seen := make(map[string]bool, len(scoreExplanationKeys))
	totalWeight := 0
	for i, c := range e.Components {
		key := strings.TrimSpace(c.Key)
		if _, ok := scoreExplanationKeys[key]; !ok {
			return fmt.Errorf("explanation.components[%d].key must be one of: ats, readability, grammar", i)
		}
		if seen[key] {
			return fmt.Errorf("explanation.components[%d].key must be unique", i)
		}
		seen[key] = true
		if c.Score < 0 || c.Score > 100 {
			return fmt.Errorf("explanation.components[%d].score must be between 0 and 100", i)
		}
		totalWeight += c.Weight
	}
	if totalWeight != 100 {
		return fmt.Errorf("explanation.components weights must total 100, got %d", totalWeight)
	}
	return nil
}

func normalizeScoreExplanation(value ScoreExplanation) ScoreExplanation {
	if value.Components == nil {
		value.Components = []ScoreComponent{}
	}
	for i := range value.Components {
		if value.Components[i].Helped == nil {
			value.Components[i].Helped = []string{}
		}
		if value.Components[i].Dragged == nil {
			value.Components[i].Dragged = []string{}
		}
	}
	return value
}
